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

package validate

import (
	"fmt"
	"sort"

	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/conway"
)

const (
	CodeMaxTxSizeUTxO            Code = "MaxTxSizeUTxO"
	CodeExUnitsTooBigUTxO        Code = "ExUnitsTooBigUTxO"
	CodeRefScriptSizeTooBig      Code = "RefScriptSizeTooBig"
	CodeInputSetEmptyUTxO        Code = "InputSetEmptyUTxO"
	CodeOutsideValidityInterval  Code = "OutsideValidityIntervalUTxO"
	CodeBadInputsUTxO            Code = "BadInputsUTxO"
	CodeReferenceInputOverlap    Code = "ReferenceInputOverlapsSpendingInput"
	CodeInputsAreNotSorted       Code = "InputsAreNotSorted"
)

// TransactionLimitsValidator enforces protocol-level size and unit budgets,
// validity-interval membership, input-set well-formedness, and reports
// non-canonical input ordering as a warning.
func TransactionLimitsValidator(tx common.Transaction, ctx *Context) []Finding {
	var findings []Finding

	pp, _ := ctx.ProtocolParameters.(*conway.ConwayProtocolParameters)

	bodySize := len(tx.Cbor())
	if pp != nil && uint(bodySize) > pp.MaxTxSize {
		findings = append(findings, errorf(
			CodeMaxTxSizeUTxO,
			"body",
			"transaction size %d exceeds the maximum transaction size %d",
			bodySize, pp.MaxTxSize,
		))
	}

	if pp != nil {
		mem, steps := declaredExUnits(tx)
		if mem > pp.MaxTxExUnits.Memory || steps > pp.MaxTxExUnits.Steps {
			findings = append(findings, errorf(
				CodeExUnitsTooBigUTxO,
				"body.redeemers",
				"declared execution units (mem=%d, steps=%d) exceed the maximum per-transaction budget (mem=%d, steps=%d)",
				mem, steps, pp.MaxTxExUnits.Memory, pp.MaxTxExUnits.Steps,
			))
		}
		refBytes := referenceScriptBytes(tx, ctx.LedgerState)
		if pp.MaxRefScriptSizePerTx > 0 && uint64(refBytes) > pp.MaxRefScriptSizePerTx {
			findings = append(findings, errorf(
				CodeRefScriptSizeTooBig,
				"body",
				"cumulative reference script size %d exceeds the maximum %d",
				refBytes, pp.MaxRefScriptSizePerTx,
			))
		}
	}

	inputs := tx.Inputs()
	if len(inputs) == 0 {
		findings = append(findings, errorf(
			CodeInputSetEmptyUTxO,
			"body.inputs",
			"transaction has no inputs",
		))
	}

	start := tx.ValidityIntervalStart()
	ttl := tx.TTL()
	if start != 0 && ctx.CurrentSlot < start {
		findings = append(findings, errorf(
			CodeOutsideValidityInterval,
			"body.validity_interval_start",
			"current slot %d is before the validity interval start %d",
			ctx.CurrentSlot, start,
		))
	}
	if ttl != 0 && ctx.CurrentSlot >= ttl {
		findings = append(findings, errorf(
			CodeOutsideValidityInterval,
			"body.ttl",
			"current slot %d is at or after the validity interval end %d",
			ctx.CurrentSlot, ttl,
		))
	}

	if ctx.LedgerState != nil {
		for _, input := range inputs {
			if _, err := ctx.LedgerState.UtxoById(input); err != nil {
				findings = append(findings, errorf(
					CodeBadInputsUTxO,
					"body.inputs",
					"input %s does not resolve to a live UTxO: %v",
					input.String(), err,
				))
			}
		}
	}

	spending := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		spending[inputKey(input)] = struct{}{}
	}
	for _, refInput := range tx.ReferenceInputs() {
		if _, ok := spending[inputKey(refInput)]; ok {
			findings = append(findings, errorf(
				CodeReferenceInputOverlap,
				"body.reference_inputs",
				"reference input %s also appears as a spending input",
				refInput.String(),
			))
		}
	}

	if !sort.SliceIsSorted(inputs, func(i, j int) bool {
		return inputKey(inputs[i]) < inputKey(inputs[j])
	}) {
		findings = append(findings, warnf(
			CodeInputsAreNotSorted,
			"body.inputs",
			"inputs are not in canonical lexicographic order",
		))
	}

	return findings
}

func inputKey(input common.TransactionInput) string {
	return fmt.Sprintf("%s#%010d", input.Id().String(), input.Index())
}
