// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package validate implements the Phase-1 (ledger-rule) validator pipeline:
// eight independent validators that each inspect a parsed transaction
// against a supplied context and report zero or more typed findings. No
// validator short-circuits another and none mutates the context.
package validate

import (
	"fmt"
	"sort"
	"sync"

	"github.com/blinklabs-io/txverify/ledger/common"
)

// Severity distinguishes findings that block acceptance from those that
// merely inform the caller.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable identifier for a finding's kind. Codes are part of the
// external contract: new codes may be added but existing ones never change
// meaning.
type Code string

// Finding is a single error or warning produced by a validator.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Hint     string   `json:"hint,omitempty"`
	Path     string   `json:"path"`
}

func errorf(code Code, path, format string, args ...any) Finding {
	return Finding{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
	}
}

func warnf(code Code, path, format string, args ...any) Finding {
	return Finding{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
	}
}

// Context carries everything a validator needs beyond the transaction
// itself: ledger state lookups, the active protocol parameters, and the
// point in time the transaction is being validated at.
type Context struct {
	LedgerState        common.LedgerState
	ProtocolParameters common.ProtocolParameters
	CurrentSlot        uint64
	CurrentEpoch       uint64
	NetworkId          uint
}

// Validator inspects a transaction against a context and reports findings.
// Validators never mutate tx or ctx and never panic by design; Run recovers
// any panic defensively and reports it as a finding rather than propagating
// it.
type Validator func(tx common.Transaction, ctx *Context) []Finding

// namedValidators is the fixed, ordered set of Phase-1 validators. Order
// here only controls goroutine launch order — output is always sorted
// deterministically before being returned.
var namedValidators = []Validator{
	AuxiliaryDataValidator,
	BalanceValidator,
	CollateralValidator,
	FeeValidator,
	OutputValidator,
	RegistrationValidator,
	TransactionLimitsValidator,
	WitnessValidator,
}

const unknownErrorCode Code = "UnknownError"

// Run fans every named validator out over a bounded worker set, recovers
// any panic into an UnknownError finding, and returns every finding sorted
// deterministically by code then path.
func Run(tx common.Transaction, ctx *Context) []Finding {
	results := make([][]Finding, len(namedValidators))
	var wg sync.WaitGroup
	wg.Add(len(namedValidators))
	for i, v := range namedValidators {
		go func(i int, v Validator) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = []Finding{
						errorf(unknownErrorCode, "", "validator panicked: %v", r),
					}
				}
			}()
			results[i] = v(tx, ctx)
		}(i, v)
	}
	wg.Wait()

	var all []Finding
	for _, r := range results {
		all = append(all, r...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Code != all[j].Code {
			return all[i].Code < all[j].Code
		}
		return all[i].Path < all[j].Path
	})
	return all
}

// Errors returns only the error-severity findings.
func Errors(findings []Finding) []Finding {
	return filterSeverity(findings, SeverityError)
}

// Warnings returns only the warning-severity findings.
func Warnings(findings []Finding) []Finding {
	return filterSeverity(findings, SeverityWarning)
}

func filterSeverity(findings []Finding, sev Severity) []Finding {
	var ret []Finding
	for _, f := range findings {
		if f.Severity == sev {
			ret = append(ret, f)
		}
	}
	return ret
}
