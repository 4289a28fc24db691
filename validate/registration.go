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
	"github.com/blinklabs-io/txverify/ledger/conway"
)

const (
	CodeStakeKeyAlreadyRegistered  Code = "StakeKeyAlreadyRegisteredDELEG"
	CodeStakeKeyNotRegistered      Code = "StakeKeyNotRegisteredDELEG"
	CodeNonZeroBalanceAtDeregistration Code = "NonZeroBalanceAtDeregistration"
	CodeUnknownPool                Code = "PoolNotRegistered"
	CodeRetirementEpochOutOfRange  Code = "PoolRetirementEpochOutOfRange"
	CodePoolCostTooLow             Code = "StakePoolCostTooLowPOOL"
	CodeUnknownCommitteeColdKey    Code = "UnknownCommitteeColdKey"
	CodeCommitteeAlreadyResigned   Code = "CommitteeMemberAlreadyResigned"
	CodeDuplicateRegistrationInTx  Code = "DuplicateRegistrationInTransaction"
	CodeDuplicateCommitteeHotRegistrationInTx Code = "DuplicateCommitteeHotRegistrationInTx"
)

// registrationScratch tracks per-transaction-local certificate effects so
// that a transaction which, say, registers and then deregisters the same
// stake credential in a single certificate list is judged against the
// cumulative effect of everything processed so far rather than only against
// ledger state, which certificates never observe mid-block.
type registrationScratch struct {
	registeredStakeCreds   map[common.Blake2b224]bool
	registeredDReps        map[common.Blake2b224]bool
	registeredPools        map[common.Blake2b224]bool
	retiringPools          map[common.Blake2b224]bool
	resignedCommitteeCold  map[common.Blake2b224]bool
	hotRegisteredAt        map[common.Blake2b224]int
}

func newRegistrationScratch() *registrationScratch {
	return &registrationScratch{
		registeredStakeCreds:  map[common.Blake2b224]bool{},
		registeredDReps:       map[common.Blake2b224]bool{},
		registeredPools:       map[common.Blake2b224]bool{},
		retiringPools:         map[common.Blake2b224]bool{},
		resignedCommitteeCold: map[common.Blake2b224]bool{},
		hotRegisteredAt:       map[common.Blake2b224]int{},
	}
}

// RegistrationValidator walks the transaction's certificates in order,
// checking each against ledger state and the cumulative effect of the
// certificates already processed earlier in the same transaction.
func RegistrationValidator(tx common.Transaction, ctx *Context) []Finding {
	var findings []Finding
	ls := ctx.LedgerState
	pp, _ := ctx.ProtocolParameters.(*conway.ConwayProtocolParameters)
	scratch := newRegistrationScratch()

	for i, cert := range tx.Certificates() {
		path := fmt.Sprintf("body.certificates[%d]", i)
		switch c := cert.(type) {
		case *common.StakeRegistrationCertificate:
			findings = append(findings, checkStakeRegistration(scratch, ls, c.StakeCredential.Credential, path)...)
		case *common.RegistrationCertificate:
			findings = append(findings, checkStakeRegistration(scratch, ls, c.StakeCredential.Credential, path)...)

		case *common.StakeDeregistrationCertificate:
			findings = append(findings, checkStakeDeregistration(scratch, ls, c.StakeCredential.Credential, path)...)
		case *common.DeregistrationCertificate:
			findings = append(findings, checkStakeDeregistration(scratch, ls, c.StakeCredential.Credential, path)...)

		case *common.PoolRegistrationCertificate:
			if pp != nil && c.Cost < pp.MinPoolCost {
				findings = append(findings, errorf(
					CodePoolCostTooLow,
					path+".cost",
					"pool cost %d is below the minimum pool cost %d",
					c.Cost, pp.MinPoolCost,
				))
			}
			scratch.registeredPools[common.Blake2b224(c.Operator)] = true
			delete(scratch.retiringPools, common.Blake2b224(c.Operator))

		case *common.PoolRetirementCertificate:
			poolKey := common.Blake2b224(c.PoolKeyHash)
			known := scratch.registeredPools[poolKey]
			if !known && ls != nil {
				known = ls.IsPoolRegistered(c.PoolKeyHash)
			}
			if !known {
				findings = append(findings, errorf(
					CodeUnknownPool,
					path+".pool_key_hash",
					"pool retirement certificate references unregistered pool %s",
					poolKey.String(),
				))
				break
			}
			if pp != nil {
				minEpoch := ctx.CurrentEpoch + 1
				maxEpoch := ctx.CurrentEpoch + uint64(pp.MaxEpoch)
				if c.Epoch < minEpoch || c.Epoch > maxEpoch {
					findings = append(findings, errorf(
						CodeRetirementEpochOutOfRange,
						path+".epoch",
						"pool retirement epoch %d is outside the allowed range [%d, %d]",
						c.Epoch, minEpoch, maxEpoch,
					))
				}
			}
			scratch.retiringPools[poolKey] = true

		case *common.RegistrationDrepCertificate:
			findings = append(findings, checkDRepRegistration(scratch, ls, c.DrepCredential.Credential, path)...)
		case *common.DeregistrationDrepCertificate:
			findings = append(findings, checkDRepDeregistration(scratch, ls, c.DrepCredential.Credential, path)...)
		case *common.UpdateDrepCertificate:
			cred := c.DrepCredential.Credential
			registered := scratch.registeredDReps[cred]
			if !registered && ls != nil {
				reg, err := ls.DRepRegistration(cred)
				registered = err == nil && reg != nil
			}
			if !registered {
				findings = append(findings, errorf(
					CodeStakeKeyNotRegistered,
					path+".drep_credential",
					"DRep update certificate references unregistered DRep %s",
					cred.String(),
				))
			}

		case *common.AuthCommitteeHotCertificate:
			findings = append(findings, checkCommitteeColdKey(scratch, ls, c.ColdCredential.Credential, path)...)
			findings = append(findings, checkDuplicateCommitteeHotRegistration(scratch, c.ColdCredential.Credential, i, path)...)
		case *common.ResignCommitteeColdCertificate:
			findings = append(findings, checkCommitteeColdKey(scratch, ls, c.ColdCredential.Credential, path)...)
			scratch.resignedCommitteeCold[c.ColdCredential.Credential] = true
		}
	}

	return findings
}

func checkStakeRegistration(
	scratch *registrationScratch,
	ls common.LedgerState,
	cred common.Blake2b224,
	path string,
) []Finding {
	alreadyRegistered := scratch.registeredStakeCreds[cred]
	if !alreadyRegistered && ls != nil {
		alreadyRegistered = ls.IsStakeCredentialRegistered(common.Credential{
			CredType:   common.CredentialTypeAddrKeyHash,
			Credential: cred,
		})
	}
	var findings []Finding
	if alreadyRegistered {
		findings = append(findings, warnf(
			CodeStakeKeyAlreadyRegistered,
			path+".stake_credential",
			"stake credential %s is already registered",
			cred.String(),
		))
	}
	scratch.registeredStakeCreds[cred] = true
	return findings
}

func checkStakeDeregistration(
	scratch *registrationScratch,
	ls common.LedgerState,
	cred common.Blake2b224,
	path string,
) []Finding {
	var findings []Finding
	registered := scratch.registeredStakeCreds[cred]
	if !registered && ls != nil {
		registered = ls.IsStakeCredentialRegistered(common.Credential{
			CredType:   common.CredentialTypeAddrKeyHash,
			Credential: cred,
		})
	}
	if !registered {
		findings = append(findings, errorf(
			CodeStakeKeyNotRegistered,
			path+".stake_credential",
			"stake deregistration certificate references unregistered stake credential %s",
			cred.String(),
		))
		return findings
	}
	if ls != nil {
		balance, err := ls.RewardAccountBalance(common.Credential{
			CredType:   common.CredentialTypeAddrKeyHash,
			Credential: cred,
		})
		if err == nil && balance != nil && *balance != 0 {
			findings = append(findings, errorf(
				CodeNonZeroBalanceAtDeregistration,
				path+".stake_credential",
				"stake credential %s has non-zero reward balance %d at deregistration",
				cred.String(), *balance,
			))
		}
	}
	delete(scratch.registeredStakeCreds, cred)
	return findings
}

func checkDRepRegistration(
	scratch *registrationScratch,
	ls common.LedgerState,
	cred common.Blake2b224,
	path string,
) []Finding {
	alreadyRegistered := scratch.registeredDReps[cred]
	if !alreadyRegistered && ls != nil {
		reg, err := ls.DRepRegistration(cred)
		alreadyRegistered = err == nil && reg != nil
	}
	var findings []Finding
	if alreadyRegistered {
		findings = append(findings, warnf(
			CodeDuplicateRegistrationInTx,
			path+".drep_credential",
			"DRep credential %s is already registered",
			cred.String(),
		))
	}
	scratch.registeredDReps[cred] = true
	return findings
}

func checkDRepDeregistration(
	scratch *registrationScratch,
	ls common.LedgerState,
	cred common.Blake2b224,
	path string,
) []Finding {
	var findings []Finding
	registered := scratch.registeredDReps[cred]
	if !registered && ls != nil {
		reg, err := ls.DRepRegistration(cred)
		registered = err == nil && reg != nil
	}
	if !registered {
		findings = append(findings, errorf(
			CodeStakeKeyNotRegistered,
			path+".drep_credential",
			"DRep deregistration certificate references unregistered DRep %s",
			cred.String(),
		))
	}
	delete(scratch.registeredDReps, cred)
	return findings
}

// checkDuplicateCommitteeHotRegistration flags a committee cold key that is
// authorized to a hot key more than once within the same transaction; the
// ledger only needs the last one, so every earlier one is redundant.
func checkDuplicateCommitteeHotRegistration(
	scratch *registrationScratch,
	coldKey common.Blake2b224,
	index int,
	path string,
) []Finding {
	var findings []Finding
	if earlier, ok := scratch.hotRegisteredAt[coldKey]; ok {
		findings = append(findings, warnf(
			CodeDuplicateCommitteeHotRegistrationInTx,
			path+".cold_credential",
			"committee cold key %s is authorized to a hot key more than once in this transaction (certificates %d and %d)",
			coldKey.String(), earlier, index,
		))
	}
	scratch.hotRegisteredAt[coldKey] = index
	return findings
}

func checkCommitteeColdKey(
	scratch *registrationScratch,
	ls common.LedgerState,
	coldKey common.Blake2b224,
	path string,
) []Finding {
	var findings []Finding
	if scratch.resignedCommitteeCold[coldKey] {
		findings = append(findings, errorf(
			CodeCommitteeAlreadyResigned,
			path+".cold_credential",
			"committee cold key %s has already resigned earlier in this transaction",
			coldKey.String(),
		))
		return findings
	}
	if ls == nil {
		return findings
	}
	member, err := ls.CommitteeMember(coldKey)
	if err != nil || member == nil {
		findings = append(findings, errorf(
			CodeUnknownCommitteeColdKey,
			path+".cold_credential",
			"committee cold key %s is not a known committee member",
			coldKey.String(),
		))
		return findings
	}
	if member.Resigned {
		findings = append(findings, errorf(
			CodeCommitteeAlreadyResigned,
			path+".cold_credential",
			"committee cold key %s has already resigned",
			coldKey.String(),
		))
	}
	return findings
}
