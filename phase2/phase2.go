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

// Package phase2 evaluates every Plutus redeemer of a transaction against
// the real UPLC CEK machine and reports a result per redeemer instead of
// stopping at the first failure, so a caller can see every script that
// would fail rather than only the first.
package phase2

import (
	"fmt"

	"github.com/blinklabs-io/plutigo/data"

	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/common/script"
	"github.com/blinklabs-io/txverify/ledger/conway"
	"github.com/blinklabs-io/txverify/validate"
)

const (
	CodeMissingCostModel           validate.Code = "MissingCostModel"
	CodeMissingDatumForSpend       validate.Code = "MissingDatumForSpendingScript"
	CodeMissingScriptForPurpose    validate.Code = "MissingScriptForRedeemer"
	CodeScriptEvaluationFailed     validate.Code = "PlutusScriptEvaluationFailed"
	CodeExUnitsExceedDeclared      validate.Code = "ExUnitsExceedDeclaredBudget"
	CodeInvalidWithoutPlutusScript validate.Code = "InvalidFlagWithoutPlutusScript"
)

// RedeemerResult is the outcome of evaluating a single redeemer's script.
type RedeemerResult struct {
	Tag               common.RedeemerTag `json:"tag"`
	Index             uint32             `json:"index"`
	ScriptHash        common.ScriptHash  `json:"scriptHash"`
	ProvidedExUnits   common.ExUnits     `json:"provided_ex_units"`
	CalculatedExUnits common.ExUnits     `json:"calculated_ex_units"`
	Logs              []string           `json:"logs"`
	Success           bool               `json:"success"`
	Error             string             `json:"error,omitempty"`
}

// ScriptEvaluator runs a resolved Plutus script against its arguments and
// reports the execution units it consumed, along with any trace log entries
// emitted by the script. The default implementation delegates straight to
// the script's own CEK-backed Evaluate method; tests substitute a fake to
// avoid running real UPLC programs.
type ScriptEvaluator interface {
	Evaluate(
		s common.Script,
		purpose script.ScriptInfo,
		datum data.PlutusData,
		redeemerData data.PlutusData,
		ctxData data.PlutusData,
		budget common.ExUnits,
	) (common.ExUnits, []string, error)
}

type cekEvaluator struct{}

// DefaultEvaluator runs scripts on the real plutigo CEK machine via each
// PlutusVxScript's own Evaluate method.
var DefaultEvaluator ScriptEvaluator = cekEvaluator{}

func (cekEvaluator) Evaluate(
	s common.Script,
	purpose script.ScriptInfo,
	datum data.PlutusData,
	redeemerData data.PlutusData,
	ctxData data.PlutusData,
	budget common.ExUnits,
) (common.ExUnits, []string, error) {
	switch v := s.(type) {
	case *common.PlutusV3Script:
		return v.Evaluate(ctxData, budget)
	case common.PlutusV3Script:
		return v.Evaluate(ctxData, budget)
	case *common.PlutusV2Script:
		if _, isSpend := purpose.(script.ScriptInfoSpending); isSpend && datum == nil {
			return common.ExUnits{}, nil, fmt.Errorf("missing datum for spending script %s", s.Hash())
		}
		return v.Evaluate(datum, redeemerData, ctxData, budget)
	case common.PlutusV2Script:
		if _, isSpend := purpose.(script.ScriptInfoSpending); isSpend && datum == nil {
			return common.ExUnits{}, nil, fmt.Errorf("missing datum for spending script %s", s.Hash())
		}
		return v.Evaluate(datum, redeemerData, ctxData, budget)
	case *common.PlutusV1Script:
		if _, isSpend := purpose.(script.ScriptInfoSpending); isSpend && datum == nil {
			return common.ExUnits{}, nil, fmt.Errorf("missing datum for spending script %s", s.Hash())
		}
		return v.Evaluate(datum, redeemerData, ctxData, budget)
	case common.PlutusV1Script:
		if _, isSpend := purpose.(script.ScriptInfoSpending); isSpend && datum == nil {
			return common.ExUnits{}, nil, fmt.Errorf("missing datum for spending script %s", s.Hash())
		}
		return v.Evaluate(datum, redeemerData, ctxData, budget)
	default:
		return common.ExUnits{}, nil, fmt.Errorf("script %s is not a Plutus script", s.Hash())
	}
}

// CheckCostModels reports an error finding for every Plutus language version
// exercised by the transaction (via witness scripts or resolvable reference
// scripts) for which the active protocol parameters carry no cost model.
func CheckCostModels(tx common.Transaction, ctx *validate.Context) []validate.Finding {
	pp, ok := ctx.ProtocolParameters.(*conway.ConwayProtocolParameters)
	if !ok {
		return nil
	}
	wits := tx.Witnesses()
	if wits == nil {
		return nil
	}

	required := map[uint]struct{}{}
	if len(wits.PlutusV1Scripts()) > 0 {
		required[0] = struct{}{}
	}
	if len(wits.PlutusV2Scripts()) > 0 {
		required[1] = struct{}{}
	}
	if len(wits.PlutusV3Scripts()) > 0 {
		required[2] = struct{}{}
	}
	if ctx.LedgerState != nil {
		check := func(inputs []common.TransactionInput) {
			for _, input := range inputs {
				utxo, err := ctx.LedgerState.UtxoById(input)
				if err != nil || utxo.Output == nil {
					continue
				}
				switch utxo.Output.ScriptRef().(type) {
				case *common.PlutusV1Script, common.PlutusV1Script:
					required[0] = struct{}{}
				case *common.PlutusV2Script, common.PlutusV2Script:
					required[1] = struct{}{}
				case *common.PlutusV3Script, common.PlutusV3Script:
					required[2] = struct{}{}
				}
			}
		}
		check(tx.Inputs())
		check(tx.ReferenceInputs())
	}

	var findings []validate.Finding
	for version := range required {
		model, ok := pp.CostModels[version]
		if !ok || len(model) == 0 {
			findings = append(findings, validate.Finding{
				Severity: validate.SeverityError,
				Code:     CodeMissingCostModel,
				Message:  fmt.Sprintf("protocol parameters carry no cost model for Plutus v%d", version+1),
				Path:     "protocol_parameters.cost_models",
			})
		}
	}
	return findings
}

// Evaluate resolves every redeemer's script and purpose and runs it against
// the provided evaluator, returning one RedeemerResult per redeemer. A
// transaction with no redeemers returns no results and a nil error.
func Evaluate(
	tx common.Transaction,
	ctx *validate.Context,
	evaluator ScriptEvaluator,
) ([]RedeemerResult, error) {
	if evaluator == nil {
		evaluator = DefaultEvaluator
	}

	wits := tx.Witnesses()
	if wits == nil {
		return nil, nil
	}
	redeemers := wits.Redeemers()
	if redeemers == nil {
		return nil, nil
	}
	redeemerCount := 0
	for range redeemers.Iter() {
		redeemerCount++
	}
	if redeemerCount == 0 {
		return nil, nil
	}

	if !tx.IsValid() {
		return nil, common.InvalidIsValidFlagError{}
	}

	ls := ctx.LedgerState
	inputs := tx.Inputs()
	refInputs := tx.ReferenceInputs()
	resolvedInputs := make([]common.Utxo, 0, len(inputs)+len(refInputs))
	resolvedInputsMap := make(map[string]common.Utxo)
	if ls != nil {
		resolve := func(in []common.TransactionInput) {
			for _, input := range in {
				utxo, err := ls.UtxoById(input)
				if err != nil {
					continue
				}
				resolvedInputs = append(resolvedInputs, utxo)
				resolvedInputsMap[input.String()] = utxo
			}
		}
		resolve(inputs)
		resolve(refInputs)
	}

	txInfo := script.NewTxInfoV3FromTransaction(tx, resolvedInputs)

	availableScripts := make(map[common.ScriptHash]common.Script)
	for _, s := range wits.PlutusV1Scripts() {
		sCopy := common.PlutusV1Script(s)
		availableScripts[sCopy.Hash()] = sCopy
	}
	for _, s := range wits.PlutusV2Scripts() {
		sCopy := common.PlutusV2Script(s)
		availableScripts[sCopy.Hash()] = sCopy
	}
	for _, s := range wits.PlutusV3Scripts() {
		sCopy := common.PlutusV3Script(s)
		availableScripts[sCopy.Hash()] = sCopy
	}
	for _, utxo := range resolvedInputs {
		if utxo.Output == nil {
			continue
		}
		if scriptRef := utxo.Output.ScriptRef(); scriptRef != nil {
			availableScripts[scriptRef.Hash()] = scriptRef
		}
	}

	assetMint := tx.AssetMint()
	if assetMint == nil {
		assetMint = &common.MultiAsset[common.MultiAssetTypeMint]{}
	}
	withdrawals := tx.Withdrawals()
	votes := tx.VotingProcedures()
	proposalProcedures := tx.ProposalProcedures()
	certificates := tx.Certificates()

	witnessDatums := make(map[common.Blake2b256]*common.Datum)
	for _, datum := range wits.PlutusData() {
		d := datum
		witnessDatums[datum.Hash()] = &d
	}

	results := make([]RedeemerResult, 0, redeemerCount)
	for redeemerKey, redeemerValue := range redeemers.Iter() {
		purpose := script.BuildScriptPurpose(
			redeemerKey,
			resolvedInputsMap,
			inputs,
			*assetMint,
			certificates,
			withdrawals,
			votes,
			proposalProcedures,
			witnessDatums,
		)
		if purpose == nil {
			continue
		}

		scriptHash := purpose.ScriptHash()
		result := RedeemerResult{
			Tag:             redeemerKey.Tag,
			Index:           redeemerKey.Index,
			ScriptHash:      scriptHash,
			ProvidedExUnits: redeemerValue.ExUnits,
		}

		plutusScript, ok := availableScripts[scriptHash]
		if !ok {
			result.Success = false
			result.Error = fmt.Sprintf("no script witness or reference script for purpose hash %s", scriptHash.String())
			results = append(results, result)
			continue
		}

		redeemerCtx := script.Redeemer{
			Tag:     redeemerKey.Tag,
			Index:   redeemerKey.Index,
			Data:    redeemerValue.Data.Data,
			ExUnits: redeemerValue.ExUnits,
		}
		scriptContext := script.NewScriptContextV3(txInfo, redeemerCtx, purpose)
		ctxData := scriptContext.ToPlutusData()

		var datum data.PlutusData
		if spendPurpose, ok := purpose.(script.ScriptInfoSpending); ok {
			datum = spendPurpose.Datum
		}

		consumed, logs, err := evaluator.Evaluate(
			plutusScript,
			purpose,
			datum,
			redeemerValue.Data.Data,
			ctxData,
			redeemerValue.ExUnits,
		)
		result.CalculatedExUnits = consumed
		result.Logs = logs
		if err != nil {
			result.Success = false
			result.Error = err.Error()
		} else {
			result.Success = true
			if consumed.Memory > redeemerValue.ExUnits.Memory || consumed.Steps > redeemerValue.ExUnits.Steps {
				result.Success = false
				result.Error = fmt.Sprintf(
					"consumed execution units (mem=%d, steps=%d) exceed the declared budget (mem=%d, steps=%d)",
					consumed.Memory, consumed.Steps,
					redeemerValue.ExUnits.Memory, redeemerValue.ExUnits.Steps,
				)
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// Findings converts a slice of RedeemerResult into validator-shaped
// findings, one error per failed redeemer.
func Findings(results []RedeemerResult) []validate.Finding {
	var findings []validate.Finding
	for _, r := range results {
		if r.Success {
			continue
		}
		path := fmt.Sprintf("witnesses.redeemers[%s:%d]", r.Tag.String(), r.Index)
		findings = append(findings, validate.Finding{
			Severity: validate.SeverityError,
			Code:     CodeScriptEvaluationFailed,
			Message:  fmt.Sprintf("script %s failed: %s", r.ScriptHash.String(), r.Error),
			Path:     path,
		})
	}
	return findings
}
