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

	"github.com/blinklabs-io/txverify/ledger/common"
)

const (
	CodeMissingVKeySignature        Code = "MissingVKeySignature"
	CodeMissingRequiredSigner       Code = "MissingRequiredSignerWitness"
	CodeMissingCollateralWitness    Code = "MissingCollateralWitness"
	CodeMissingInputWitness         Code = "MissingInputWitness"
	CodeMissingBootstrapWitness     Code = "MissingBootstrapWitness"
	CodeRedeemerScriptWitnessIssue  Code = "RedeemerScriptWitnessMismatch"
	CodeNativeScriptNotSatisfied    Code = "NativeScriptNotSatisfied"
)

// WitnessValidator checks that every vkey and bootstrap witness carries a
// valid signature over the transaction body, that every required signer
// (inputs, collateral, the required_signers field, redeemers) is backed by a
// witness, that the supplied native scripts are satisfied given the provided
// signatures and the current slot, and that redeemers and Plutus script
// witnesses agree with each other.
func WitnessValidator(tx common.Transaction, ctx *Context) []Finding {
	var findings []Finding

	if err := common.ValidateVKeyWitnesses(tx); err != nil {
		findings = append(findings, errorf(
			CodeMissingVKeySignature,
			"witnesses.vkey",
			"vkey witness signature verification failed: %v",
			err,
		))
	}

	if err := common.ValidateBootstrapWitnesses(tx); err != nil {
		findings = append(findings, errorf(
			CodeMissingBootstrapWitness,
			"witnesses.bootstrap",
			"bootstrap witness signature verification failed: %v",
			err,
		))
	}

	if err := common.ValidateRequiredVKeyWitnesses(tx); err != nil {
		findings = append(findings, errorf(
			CodeMissingRequiredSigner,
			"body.required_signers",
			"required signer check failed: %v",
			err,
		))
	}

	if ctx.LedgerState != nil {
		if err := common.ValidateInputVKeyWitnesses(tx, ctx.LedgerState); err != nil {
			findings = append(findings, errorf(
				CodeMissingInputWitness,
				"body.inputs",
				"input witness check failed: %v",
				err,
			))
		}
		if err := common.ValidateCollateralVKeyWitnesses(tx, ctx.LedgerState); err != nil {
			findings = append(findings, errorf(
				CodeMissingCollateralWitness,
				"body.collateral",
				"collateral witness check failed: %v",
				err,
			))
		}
	}

	if err := common.ValidateRedeemerAndScriptWitnesses(tx, ctx.LedgerState); err != nil {
		findings = append(findings, errorf(
			CodeRedeemerScriptWitnessIssue,
			"witnesses.redeemers",
			"redeemer/script witness check failed: %v",
			err,
		))
	}

	findings = append(findings, checkNativeScripts(tx, ctx)...)

	return findings
}

// checkNativeScripts verifies that every native script carried in the
// witness set would unlock given the vkey witnesses actually provided and
// the transaction's validity interval. A script that the witness set
// includes but which cannot be satisfied signals a malformed or
// will-fail-at-the-ledger transaction.
func checkNativeScripts(tx common.Transaction, ctx *Context) []Finding {
	w := tx.Witnesses()
	if w == nil {
		return nil
	}
	scripts := w.NativeScripts()
	if len(scripts) == 0 {
		return nil
	}

	signers := make(map[common.Blake2b224]struct{}, len(w.Vkey()))
	for _, vw := range w.Vkey() {
		signers[common.Blake2b224Hash(vw.Vkey)] = struct{}{}
	}

	var findings []Finding
	for i := range scripts {
		script := scripts[i]
		if !nativeScriptSatisfied(&script, signers, tx.ValidityIntervalStart(), tx.TTL()) {
			findings = append(findings, errorf(
				CodeNativeScriptNotSatisfied,
				fmt.Sprintf("witnesses.native_scripts[%d]", i),
				"native script %s is not satisfied by the provided witnesses and validity interval",
				script.Hash().String(),
			))
		}
	}
	return findings
}

// nativeScriptSatisfied recursively evaluates a native script the way the
// ledger does at spend time: all branches must agree, any branch may agree,
// N-of-K requires N agreeing sub-scripts, and the two timelock variants
// constrain the transaction's validity interval rather than the witness set.
func nativeScriptSatisfied(
	script *common.NativeScript,
	signers map[common.Blake2b224]struct{},
	validityStart, ttl uint64,
) bool {
	switch item := script.Item().(type) {
	case *common.NativeScriptPubkey:
		_, ok := signers[common.NewBlake2b224(item.Hash)]
		return ok
	case *common.NativeScriptAll:
		for i := range item.Scripts {
			if !nativeScriptSatisfied(&item.Scripts[i], signers, validityStart, ttl) {
				return false
			}
		}
		return true
	case *common.NativeScriptAny:
		for i := range item.Scripts {
			if nativeScriptSatisfied(&item.Scripts[i], signers, validityStart, ttl) {
				return true
			}
		}
		return len(item.Scripts) == 0
	case *common.NativeScriptNofK:
		matched := uint(0)
		for i := range item.Scripts {
			if nativeScriptSatisfied(&item.Scripts[i], signers, validityStart, ttl) {
				matched++
			}
		}
		return matched >= item.N
	case *common.NativeScriptInvalidBefore:
		return validityStart != 0 && validityStart >= item.Slot
	case *common.NativeScriptInvalidHereafter:
		return ttl != 0 && ttl <= item.Slot
	default:
		return false
	}
}
