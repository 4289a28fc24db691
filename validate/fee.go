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
	"math/big"

	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/conway"
)

const (
	CodeFeeTooSmallUTxO     Code = "FeeTooSmallUTxO"
	CodeFeeIsBiggerThanMinFee Code = "FeeIsBiggerThanMinFee"
)

// ratMul converts numerator*value/denominator using integer division,
// matching the teacher's existing Utxorpc rational-to-integer conversions.
func ratMul(amount int64, r *common.GenesisRat) *big.Int {
	ret := big.NewInt(amount)
	if r == nil || r.Rat == nil {
		return ret
	}
	ret.Mul(ret, r.Num())
	if r.Denom().Sign() != 0 {
		ret.Div(ret, r.Denom())
	}
	return ret
}

func referenceScriptBytes(tx common.Transaction, ls common.LedgerState) int64 {
	if ls == nil {
		return 0
	}
	seen := map[string]struct{}{}
	var total int64
	check := func(inputs []common.TransactionInput) {
		for _, input := range inputs {
			utxo, err := ls.UtxoById(input)
			if err != nil || utxo.Output == nil {
				continue
			}
			script := utxo.Output.ScriptRef()
			if script == nil {
				continue
			}
			key := script.Hash().String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			total += int64(len(script.RawScriptBytes()))
		}
	}
	check(tx.Inputs())
	check(tx.ReferenceInputs())
	return total
}

func declaredExUnits(tx common.Transaction) (mem, steps int64) {
	w := tx.Witnesses()
	if w == nil {
		return 0, 0
	}
	redeemers := w.Redeemers()
	if redeemers == nil {
		return 0, 0
	}
	for _, v := range redeemers.Iter() {
		mem += v.ExUnits.Memory
		steps += v.ExUnits.Steps
	}
	return mem, steps
}

// FeeValidator checks the declared fee against the minimum fee implied by
// the transaction's size, reference scripts, and declared execution units.
func FeeValidator(tx common.Transaction, ctx *Context) []Finding {
	pp, ok := ctx.ProtocolParameters.(*conway.ConwayProtocolParameters)
	if !ok {
		return nil
	}

	txSize := int64(len(tx.Cbor()))
	minFee := new(big.Int).SetInt64(int64(pp.MinFeeA)*txSize + int64(pp.MinFeeB))

	refBytes := referenceScriptBytes(tx, ctx.LedgerState)
	if refBytes > 0 && pp.MinFeeRefScriptCostPerByte != nil {
		minFee.Add(minFee, ratMul(refBytes, pp.MinFeeRefScriptCostPerByte))
	}

	mem, steps := declaredExUnits(tx)
	minFee.Add(minFee, ratMul(mem, pp.ExecutionCosts.MemPrice))
	minFee.Add(minFee, ratMul(steps, pp.ExecutionCosts.StepPrice))

	fee := new(big.Int).SetUint64(tx.Fee())

	var findings []Finding
	if fee.Cmp(minFee) < 0 {
		findings = append(findings, errorf(
			CodeFeeTooSmallUTxO,
			"body.fee",
			"declared fee %s is below the minimum fee %s",
			fee.String(), minFee.String(),
		))
		return findings
	}

	threshold := new(big.Int).Mul(minFee, big.NewInt(110))
	threshold.Div(threshold, big.NewInt(100))
	if fee.Cmp(threshold) > 0 {
		findings = append(findings, warnf(
			CodeFeeIsBiggerThanMinFee,
			"body.fee",
			"declared fee %s exceeds 1.10x the minimum fee %s (base %d*%d+%d, reference scripts %d bytes, execution units mem=%d steps=%d)",
			fee.String(), minFee.String(), pp.MinFeeA, txSize, pp.MinFeeB, refBytes, mem, steps,
		))
	}

	return findings
}
