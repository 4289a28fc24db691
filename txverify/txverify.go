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

// Package txverify ties the transaction parser, the necessary-data
// extractor, the Phase-1 validator pipeline, and the Phase-2 script
// evaluator together into a single entry point that accepts a raw
// transaction and a ledger-state snapshot and returns a structured verdict.
package txverify

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"

	"github.com/blinklabs-io/txverify/ledger/conway"
	"github.com/blinklabs-io/txverify/necessarydata"
	"github.com/blinklabs-io/txverify/phase2"
	"github.com/blinklabs-io/txverify/validate"
)

// MalformedEncodingError is returned when a transaction cannot be parsed at
// all: bad hex, malformed CBOR, an unsupported era, or any other structural
// failure that precedes the Phase-1/Phase-2 pipelines. It is reported as a
// single fatal result rather than a validator finding.
type MalformedEncodingError struct {
	Reason string
}

func (e MalformedEncodingError) Error() string {
	return fmt.Sprintf("malformed transaction encoding: %s", e.Reason)
}

// ParsedTransaction is the output of the transaction parser: a decoded
// Conway-era transaction plus the encoded byte length of the whole
// transaction.
type ParsedTransaction struct {
	Transaction *conway.ConwayTransaction
	// BodySize is the encoded byte length of the whole transaction, as it
	// appeared on the wire.
	BodySize int
}

// ParseTransaction decodes hexCbor as a Conway-era transaction. Any failure
// to hex-decode, CBOR-decode, or recognize the era is reported as a
// MalformedEncodingError; this library validates Conway-era transactions
// only, matching the scope of the Phase-1/Phase-2 pipelines it ties
// together.
func ParseTransaction(hexCbor string) (*ParsedTransaction, error) {
	raw, err := hex.DecodeString(hexCbor)
	if err != nil {
		return nil, MalformedEncodingError{
			Reason: fmt.Sprintf("invalid hex: %s", err),
		}
	}
	tx, err := conway.NewConwayTransactionFromCbor(raw)
	if err != nil {
		return nil, MalformedEncodingError{
			Reason: fmt.Sprintf("invalid Conway transaction CBOR: %s", err),
		}
	}
	return &ParsedTransaction{
		Transaction: tx,
		BodySize:    len(raw),
	}, nil
}

// Utxorpc renders the parsed transaction as a utxorpc protobuf message, for
// callers that already speak utxorpc and want a protobuf view of the same
// parsed transaction without a second parse.
func (p *ParsedTransaction) Utxorpc() (*utxorpc.Tx, error) {
	if p == nil || p.Transaction == nil {
		return nil, fmt.Errorf("txverify: cannot render a nil transaction")
	}
	return p.Transaction.Utxorpc(), nil
}

// Result is the aggregated verdict of validating a transaction: Phase-1
// findings, Phase-2 findings (derived from the script evaluation results),
// and the raw per-redeemer evaluation results. Grounded on the original
// source's ValidationResult/append shape.
type Result struct {
	Errors              []validate.Finding       `json:"errors"`
	Warnings            []validate.Finding       `json:"warnings"`
	Phase2Errors        []validate.Finding       `json:"phase2_errors"`
	Phase2Warnings      []validate.Finding       `json:"phase2_warnings"`
	EvalRedeemerResults []phase2.RedeemerResult  `json:"evalRedeemerResults"`
}

// Append merges other into r in place, concatenating every field. It
// mirrors the original source's ValidationResult.append: combining two
// partial verdicts must never drop or reorder evidence.
func (r *Result) Append(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Phase2Errors = append(r.Phase2Errors, other.Phase2Errors...)
	r.Phase2Warnings = append(r.Phase2Warnings, other.Phase2Warnings...)
	r.EvalRedeemerResults = append(
		r.EvalRedeemerResults,
		other.EvalRedeemerResults...,
	)
}

// Accepted reports whether the transaction is acceptable: both error arrays
// must be empty. Warnings never affect acceptance.
func (r Result) Accepted() bool {
	return len(r.Errors) == 0 && len(r.Phase2Errors) == 0
}

const exUnitsWarnThreshold = 0.10

// exUnitsShortfallWarningCode flags a redeemer whose actual consumption
// falls well below its declared budget, which is informational only: it
// never blocks acceptance, but a caller may want to tighten the declared
// budget on resubmission.
const exUnitsShortfallWarningCode validate.Code = "ExUnitsFarBelowDeclaredBudget"

// Validate runs the full two-phase pipeline against an already-parsed
// transaction: the Phase-1 validator pipeline, a cost-model completeness
// check, and (when the transaction carries any redeemer) the Phase-2
// script evaluator. It never panics and never short-circuits; a partial
// verdict is always produced.
func Validate(
	tx *ParsedTransaction,
	ctx *validate.Context,
	evaluator phase2.ScriptEvaluator,
	logger *slog.Logger,
) Result {
	if logger == nil {
		logger = slog.Default()
	}
	var result Result

	findings := validate.Run(tx.Transaction, ctx)
	result.Errors = append(result.Errors, validate.Errors(findings)...)
	result.Warnings = append(result.Warnings, validate.Warnings(findings)...)
	logger.Debug("phase-1 validation complete", "findings", len(findings))

	costModelFindings := phase2.CheckCostModels(tx.Transaction, ctx)
	result.Phase2Errors = append(
		result.Phase2Errors,
		validate.Errors(costModelFindings)...,
	)
	result.Phase2Warnings = append(
		result.Phase2Warnings,
		validate.Warnings(costModelFindings)...,
	)

	evalResults, err := phase2.Evaluate(tx.Transaction, ctx, evaluator)
	if err != nil {
		logger.Warn("phase-2 evaluation failed", "error", err)
		result.Phase2Errors = append(result.Phase2Errors, validate.Finding{
			Severity: validate.SeverityError,
			Code:     "Phase2EvaluationFailed",
			Message:  err.Error(),
			Path:     "witnesses.redeemers",
		})
		return result
	}
	result.EvalRedeemerResults = evalResults
	result.Phase2Errors = append(
		result.Phase2Errors,
		phase2.Findings(evalResults)...,
	)
	for _, r := range evalResults {
		if !r.Success {
			continue
		}
		declared := r.ProvidedExUnits.Steps + r.ProvidedExUnits.Memory
		consumed := r.CalculatedExUnits.Steps + r.CalculatedExUnits.Memory
		if declared == 0 {
			continue
		}
		shortfall := float64(declared-consumed) / float64(declared)
		if shortfall > exUnitsWarnThreshold {
			result.Phase2Warnings = append(
				result.Phase2Warnings,
				validate.Finding{
					Severity: validate.SeverityWarning,
					Code:     exUnitsShortfallWarningCode,
					Message: fmt.Sprintf(
						"redeemer %s:%d consumed %d of %d declared execution units",
						r.Tag.String(),
						r.Index,
						consumed,
						declared,
					),
					Path: fmt.Sprintf(
						"witnesses.redeemers[%s:%d]",
						r.Tag.String(),
						r.Index,
					),
				},
			)
		}
	}

	return result
}

// ValidateHex is the top-level convenience entry point: parse hexCbor as a
// Conway-era transaction and run the full two-phase pipeline against ctx.
// A structural parse failure short-circuits before any validator runs and
// is returned as an error rather than folded into Result.
func ValidateHex(
	hexCbor string,
	ctx *validate.Context,
	evaluator phase2.ScriptEvaluator,
	logger *slog.Logger,
) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tx, err := ParseTransaction(hexCbor)
	if err != nil {
		logger.Warn("transaction parse failed", "error", err)
		return Result{}, err
	}
	return Validate(tx, ctx, evaluator, logger), nil
}

// ExtractNecessaryData extracts the minimal external context a caller must
// supply before calling Validate, per the necessary-data extractor.
func ExtractNecessaryData(
	tx *ParsedTransaction,
	logger *slog.Logger,
) necessarydata.NecessaryInputData {
	if logger == nil {
		logger = slog.Default()
	}
	data := necessarydata.Extract(tx.Transaction)
	logger.Debug("extracted necessary input data", "utxos", len(data.Utxos))
	return data
}
