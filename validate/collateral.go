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
	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/conway"
)

const (
	CodeNoCollateralInputs            Code = "NoCollateralInputs"
	CodeCollateralContainsNonAda      Code = "CollateralInputContainsNonAdaAssets"
	CodeCollateralIsScriptLocked      Code = "CollateralIsScriptLocked"
	CodeTooManyCollateralInputs       Code = "TooManyCollateralInputs"
	CodeInsufficientCollateral        Code = "InsufficientCollateral"
	CodeIncorrectTotalCollateralField Code = "IncorrectTotalCollateralField"
	CodeTotalCollateralNotDeclared    Code = "TotalCollateralNotDeclared"
	CodeCollateralIsUnnecessary       Code = "CollateralIsUnnecessary"
)

func txHasPlutusScripts(tx common.Transaction) bool {
	w := tx.Witnesses()
	if w == nil {
		return false
	}
	if len(w.PlutusV1Scripts()) > 0 ||
		len(w.PlutusV2Scripts()) > 0 ||
		len(w.PlutusV3Scripts()) > 0 {
		return true
	}
	if r := w.Redeemers(); r != nil {
		for range r.Iter() {
			return true
		}
	}
	return false
}

// CollateralValidator applies only when the transaction declares a Plutus
// script: it requires a well-formed collateral set sized to the declared
// fee and free of non-ada assets or script-locked inputs.
func CollateralValidator(tx common.Transaction, ctx *Context) []Finding {
	var findings []Finding

	hasScripts := txHasPlutusScripts(tx)
	collateral := tx.Collateral()

	if !hasScripts {
		if len(collateral) > 0 {
			findings = append(findings, warnf(
				CodeCollateralIsUnnecessary,
				"body.collateral",
				"transaction declares collateral inputs but has no Plutus scripts",
			))
		}
		return findings
	}

	if len(collateral) == 0 {
		findings = append(findings, errorf(
			CodeNoCollateralInputs,
			"body.collateral",
			"transaction declares Plutus scripts but no collateral inputs",
		))
		return findings
	}

	pp, _ := ctx.ProtocolParameters.(*conway.ConwayProtocolParameters)
	if pp != nil && uint(len(collateral)) > pp.MaxCollateralInputs {
		findings = append(findings, errorf(
			CodeTooManyCollateralInputs,
			"body.collateral",
			"%d collateral inputs exceeds the maximum of %d",
			len(collateral), pp.MaxCollateralInputs,
		))
	}

	var totalCollateral uint64
	if ctx.LedgerState != nil {
		for i, input := range collateral {
			utxo, err := ctx.LedgerState.UtxoById(input)
			if err != nil || utxo.Output == nil {
				continue
			}
			totalCollateral += utxo.Output.Amount()
			if assets := utxo.Output.Assets(); assets != nil && len(assets.Policies()) > 0 {
				findings = append(findings, errorf(
					CodeCollateralContainsNonAda,
					"body.collateral",
					"collateral input %d (%s) contains non-ada assets",
					i, input.String(),
				))
			}
			addr := utxo.Output.Address()
			cred := addr.PayloadPayload()
			if _, ok := cred.(common.AddressPayloadKeyHash); !ok {
				findings = append(findings, errorf(
					CodeCollateralIsScriptLocked,
					"body.collateral",
					"collateral input %d (%s) is script-locked",
					i, input.String(),
				))
			}
		}
	}

	if pp != nil {
		fee := tx.Fee()
		required := (fee*uint64(pp.CollateralPercentage) + 99) / 100
		if totalCollateral < required {
			findings = append(findings, errorf(
				CodeInsufficientCollateral,
				"body.collateral",
				"total collateral %d is below the required %d (fee %d at %d%%)",
				totalCollateral, required, fee, pp.CollateralPercentage,
			))
		}
	}

	declaredTotal := tx.TotalCollateral()
	hasCollateralReturn := tx.CollateralReturn() != nil
	switch {
	case declaredTotal != 0 && declaredTotal != totalCollateral:
		findings = append(findings, errorf(
			CodeIncorrectTotalCollateralField,
			"body.total_collateral",
			"declared total collateral %d does not match actual collateral sum %d",
			declaredTotal, totalCollateral,
		))
	case declaredTotal == 0 && hasCollateralReturn:
		findings = append(findings, warnf(
			CodeTotalCollateralNotDeclared,
			"body.total_collateral",
			"collateral return is present but total_collateral is not declared",
		))
	}

	return findings
}
