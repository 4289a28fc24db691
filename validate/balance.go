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
	CodeValueNotConservedUTxO                   Code = "ValueNotConservedUTxO"
	CodeWithdrawalNotMatchingAvailableRewards    Code = "WithdrawalNotMatchingAvailableRewards"
	CodeStakeRegistrationDepositMismatch         Code = "StakeRegistrationDepositMismatch"
	CodeDRepDepositMismatch                      Code = "DRepDepositMismatch"
	CodePoolDepositMismatch                      Code = "PoolDepositMismatch"
	CodeProposalDepositMismatch                  Code = "ProposalDepositMismatch"
	CodeDeregistrationRefundMismatch             Code = "DeregistrationRefundMismatch"
	CodeCannotCheckDRepDeregistrationRefund      Code = "CannotCheckDRepDeregistrationRefund"
)

// assetKey uniquely identifies a native asset (policy id + asset name)
// within a balance accumulator. The zero value identifies ada.
type assetKey struct {
	policy string
	asset  string
}

type balanceSheet map[assetKey]*big.Int

func (b balanceSheet) add(key assetKey, amount *big.Int) {
	cur, ok := b[key]
	if !ok {
		cur = new(big.Int)
		b[key] = cur
	}
	cur.Add(cur, amount)
}

func (b balanceSheet) addAda(amount uint64) {
	b.add(assetKey{}, new(big.Int).SetUint64(amount))
}

func addMultiAssetMint(b balanceSheet, m *common.MultiAsset[common.MultiAssetTypeMint]) {
	if m == nil {
		return
	}
	for _, policy := range m.Policies() {
		for _, assetName := range m.Assets(policy) {
			amount := m.Asset(policy, assetName)
			if amount == nil {
				continue
			}
			b.add(assetKey{policy: policy.String(), asset: string(assetName)}, amount)
		}
	}
}

func addMultiAssetOutput(b balanceSheet, m *common.MultiAsset[common.MultiAssetTypeOutput]) {
	if m == nil {
		return
	}
	for _, policy := range m.Policies() {
		for _, assetName := range m.Assets(policy) {
			amount := m.Asset(policy, assetName)
			if amount == nil {
				continue
			}
			b.add(assetKey{policy: policy.String(), asset: string(assetName)}, amount)
		}
	}
}

// BalanceValidator asserts that the sum of a transaction's inputs,
// withdrawals, refunds, and positive minted amounts equals the sum of its
// outputs, fee, deposits, negative minted amounts, and treasury donation,
// for every asset.
func BalanceValidator(tx common.Transaction, ctx *Context) []Finding {
	var findings []Finding

	inSum := balanceSheet{}
	outSum := balanceSheet{}

	if ctx.LedgerState != nil {
		for _, input := range tx.Inputs() {
			utxo, err := ctx.LedgerState.UtxoById(input)
			if err != nil || utxo.Output == nil {
				continue
			}
			inSum.addAda(utxo.Output.Amount())
			addMultiAssetOutput(inSum, utxo.Output.Assets())
		}
	}

	for addr, amount := range tx.Withdrawals() {
		inSum.addAda(amount)
		if ctx.LedgerState != nil && addr != nil {
			cred := common.Credential{
				CredType:   common.CredentialTypeAddrKeyHash,
				Credential: addr.StakeKeyHash(),
			}
			available, err := ctx.LedgerState.RewardAccountBalance(cred)
			if err == nil && available != nil && *available != amount {
				findings = append(findings, errorf(
					CodeWithdrawalNotMatchingAvailableRewards,
					"body.withdrawals",
					"withdrawal of %d for account %s does not match available rewards %d",
					amount, addr.String(), *available,
				))
			}
		}
	}

	addMultiAssetMint(inSum, tx.AssetMint())

	for _, output := range tx.Outputs() {
		outSum.addAda(output.Amount())
		addMultiAssetOutput(outSum, output.Assets())
	}
	outSum.addAda(tx.Fee())
	outSum.addAda(tx.Donation())

	pp, _ := ctx.ProtocolParameters.(*conway.ConwayProtocolParameters)
	deposits, refunds := certificateDepositsAndRefunds(tx, pp, &findings)
	outSum.addAda(deposits)
	inSum.addAda(refunds)

	for _, proposal := range tx.ProposalProcedures() {
		outSum.addAda(proposal.Deposit)
		if pp != nil && proposal.Deposit != pp.GovActionDeposit {
			findings = append(findings, errorf(
				CodeProposalDepositMismatch,
				"body.proposal_procedures",
				"proposal deposit %d does not match protocol parameter %d",
				proposal.Deposit, pp.GovActionDeposit,
			))
		}
	}

	keys := map[assetKey]struct{}{}
	for k := range inSum {
		keys[k] = struct{}{}
	}
	for k := range outSum {
		keys[k] = struct{}{}
	}
	for k := range keys {
		in := inSum[k]
		if in == nil {
			in = new(big.Int)
		}
		out := outSum[k]
		if out == nil {
			out = new(big.Int)
		}
		if in.Cmp(out) != 0 {
			diff := new(big.Int).Sub(out, in)
			label := "ada"
			if k.policy != "" {
				label = k.policy + "." + k.asset
			}
			findings = append(findings, errorf(
				CodeValueNotConservedUTxO,
				"body",
				"value not conserved for %s: input sum %s, output sum %s, difference %s",
				label, in.String(), out.String(), diff.String(),
			))
		}
	}

	return findings
}

// certificateDepositsAndRefunds walks the certificate list computing the
// total deposit the transaction must pay and the total refund it is owed,
// emitting a deposit-mismatch finding per certificate whose declared or
// implied amount disagrees with the active protocol parameter.
func certificateDepositsAndRefunds(
	tx common.Transaction,
	pp *conway.ConwayProtocolParameters,
	findings *[]Finding,
) (deposits uint64, refunds uint64) {
	for _, cert := range tx.Certificates() {
		switch c := cert.(type) {
		case *common.StakeRegistrationCertificate:
			if pp != nil {
				deposits += uint64(pp.KeyDeposit)
			}
		case *common.RegistrationCertificate:
			deposits += uint64(c.Amount)
			if pp != nil && c.Amount >= 0 && uint64(c.Amount) != uint64(pp.KeyDeposit) {
				*findings = append(*findings, errorf(
					CodeStakeRegistrationDepositMismatch,
					"body.certificates",
					"stake registration deposit %d does not match protocol parameter %d",
					c.Amount, pp.KeyDeposit,
				))
			}
		case *common.StakeDeregistrationCertificate:
			if pp != nil {
				refunds += uint64(pp.KeyDeposit)
			}
		case *common.DeregistrationCertificate:
			if c.Amount >= 0 {
				refunds += uint64(c.Amount)
			}
			if pp != nil && c.Amount >= 0 && uint64(c.Amount) != uint64(pp.KeyDeposit) {
				*findings = append(*findings, errorf(
					CodeDeregistrationRefundMismatch,
					"body.certificates",
					"stake deregistration refund %d does not match protocol parameter %d",
					c.Amount, pp.KeyDeposit,
				))
			}
		case *common.PoolRegistrationCertificate:
			if pp != nil {
				deposits += uint64(pp.PoolDeposit)
			}
		case *common.StakeRegistrationDelegationCertificate:
			deposits += uint64(c.Amount)
		case *common.VoteRegistrationDelegationCertificate:
			deposits += uint64(c.Amount)
		case *common.StakeVoteRegistrationDelegationCertificate:
			deposits += uint64(c.Amount)
		case *common.RegistrationDrepCertificate:
			deposits += uint64(c.Amount)
			if pp != nil && c.Amount >= 0 && uint64(c.Amount) != pp.DRepDeposit {
				*findings = append(*findings, errorf(
					CodeDRepDepositMismatch,
					"body.certificates",
					"DRep registration deposit %d does not match protocol parameter %d",
					c.Amount, pp.DRepDeposit,
				))
			}
		case *common.DeregistrationDrepCertificate:
			if c.Amount >= 0 {
				refunds += uint64(c.Amount)
			} else {
				*findings = append(*findings, warnf(
					CodeCannotCheckDRepDeregistrationRefund,
					"body.certificates",
					"DRep deregistration declares a negative refund amount %d, cannot verify against deposit history",
					c.Amount,
				))
			}
		}
	}
	return deposits, refunds
}
