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

// Package necessarydata walks a parsed transaction and reports the external
// references a caller must resolve before Phase-1 validation can run: UTxO
// inputs, reward accounts, pool ids, DRep ids, governance action ids, and
// committee credentials. Extraction is purely syntactic: it never fails on a
// well-formed transaction and never evaluates whether a reference is valid.
package necessarydata

import (
	"sort"

	"github.com/blinklabs-io/txverify/ledger/common"
)

// OutPoint identifies a UTxO by its transaction id and output index.
type OutPoint struct {
	TransactionId string
	Index         uint32
}

// GovActionRef identifies a governance action by the id of the transaction
// that proposed it and its index within that transaction's proposals.
type GovActionRef struct {
	TransactionId string
	Index         uint32
}

// NecessaryInputData is the minimal external context a caller must supply so
// that the Phase-1 validator pipeline has complete information about a
// transaction's inputs, accounts, pools, DReps, and governance state.
type NecessaryInputData struct {
	Utxos                []OutPoint
	Accounts             []string
	Pools                []string
	DReps                []string
	GovActions           []GovActionRef
	LastEnactedGovAction []uint
	CommitteeMembers     []string
}

type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

func (s stringSet) sorted() []string {
	ret := make([]string, 0, len(s))
	for v := range s {
		ret = append(ret, v)
	}
	sort.Strings(ret)
	return ret
}

type uintSet map[uint]struct{}

func (s uintSet) sorted() []uint {
	ret := make([]uint, 0, len(s))
	for v := range s {
		ret = append(ret, v)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Extract returns the necessary-data record for the given transaction.
func Extract(tx common.Transaction) NecessaryInputData {
	utxos := extractUtxos(tx)
	accounts := stringSet{}
	pools := stringSet{}
	dReps := stringSet{}
	govActions := map[GovActionRef]struct{}{}
	lastEnacted := uintSet{}
	committeeMembers := stringSet{}

	for addr := range tx.Withdrawals() {
		accounts.add(stakeAccountKey(addr))
	}

	for _, cert := range tx.Certificates() {
		extractCertificate(cert, accounts, pools, dReps, committeeMembers)
	}

	votingProcedures := tx.VotingProcedures()
	for voter, votes := range votingProcedures {
		switch voter.Type {
		case common.VoterTypeDRepKeyHash, common.VoterTypeDRepScriptHash:
			dReps.add(hexString(voter.Hash[:]))
		case common.VoterTypeStakingPoolKeyHash:
			pools.add(hexString(voter.Hash[:]))
		}
		for actionId := range votes {
			govActions[govActionRef(actionId)] = struct{}{}
		}
	}

	for _, proposal := range tx.ProposalProcedures() {
		if actionId, kind, ok := proposalPreviousAction(proposal.GovAction); ok {
			lastEnacted[kind] = struct{}{}
			if actionId != nil {
				govActions[govActionRef(actionId)] = struct{}{}
			}
		}
	}

	govActionList := make([]GovActionRef, 0, len(govActions))
	for ref := range govActions {
		govActionList = append(govActionList, ref)
	}
	sort.Slice(govActionList, func(i, j int) bool {
		if govActionList[i].TransactionId != govActionList[j].TransactionId {
			return govActionList[i].TransactionId < govActionList[j].TransactionId
		}
		return govActionList[i].Index < govActionList[j].Index
	})

	return NecessaryInputData{
		Utxos:                utxos,
		Accounts:             accounts.sorted(),
		Pools:                pools.sorted(),
		DReps:                dReps.sorted(),
		GovActions:           govActionList,
		LastEnactedGovAction: lastEnacted.sorted(),
		CommitteeMembers:     committeeMembers.sorted(),
	}
}

func extractUtxos(tx common.Transaction) []OutPoint {
	seen := map[OutPoint]struct{}{}
	add := func(input common.TransactionInput) {
		seen[OutPoint{
			TransactionId: input.Id().String(),
			Index:         input.Index(),
		}] = struct{}{}
	}
	for _, input := range tx.Inputs() {
		add(input)
	}
	for _, input := range tx.ReferenceInputs() {
		add(input)
	}
	for _, input := range tx.Collateral() {
		add(input)
	}
	ret := make([]OutPoint, 0, len(seen))
	for op := range seen {
		ret = append(ret, op)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].TransactionId != ret[j].TransactionId {
			return ret[i].TransactionId < ret[j].TransactionId
		}
		return ret[i].Index < ret[j].Index
	})
	return ret
}

func stakeAccountKey(addr *common.Address) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}

func hexString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return common.NewBlake2b224(b).String()
}

func govActionRef(id *common.GovActionId) GovActionRef {
	if id == nil {
		return GovActionRef{}
	}
	return GovActionRef{
		TransactionId: common.Blake2b256(id.TransactionId).String(),
		Index:         id.GovActionIdx,
	}
}

// proposalPreviousAction returns the previous-action id a proposal
// implicitly depends on (when the action kind carries one), the action's
// own kind, and whether the kind participates in last-enacted tracking at
// all.
func proposalPreviousAction(
	action common.GovActionWrapper,
) (*common.GovActionId, uint, bool) {
	switch a := action.Action.(type) {
	case *common.ParameterChangeGovAction:
		return a.ActionId, action.Type, true
	case *common.HardForkInitiationGovAction:
		return a.ActionId, action.Type, true
	case *common.NoConfidenceGovAction:
		return a.ActionId, action.Type, true
	case *common.UpdateCommitteeGovAction:
		return a.ActionId, action.Type, true
	case *common.NewConstitutionGovAction:
		return a.ActionId, action.Type, true
	default:
		// TreasuryWithdrawalGovAction and InfoGovAction carry no
		// previous-action reference.
		return nil, 0, false
	}
}

func extractCertificate(
	cert common.Certificate,
	accounts, pools, dReps, committeeMembers stringSet,
) {
	switch c := cert.(type) {
	case *common.StakeDeregistrationCertificate:
		accounts.add(credentialKey(c.StakeCredential))
	case *common.StakeDelegationCertificate:
		if c.StakeCredential != nil {
			accounts.add(credentialKey(*c.StakeCredential))
		}
		pools.add(c.PoolKeyHash.String())
	case *common.PoolRegistrationCertificate:
		pools.add(c.Operator.String())
	case *common.PoolRetirementCertificate:
		pools.add(c.PoolKeyHash.String())
	case *common.DeregistrationCertificate:
		accounts.add(credentialKey(c.StakeCredential))
	case *common.VoteDelegationCertificate:
		accounts.add(credentialKey(c.StakeCredential))
		dReps.add(drepKey(c.Drep))
	case *common.StakeVoteDelegationCertificate:
		accounts.add(credentialKey(c.StakeCredential))
		pools.add(hexString(c.PoolKeyHash))
		dReps.add(drepKey(c.Drep))
	case *common.StakeRegistrationDelegationCertificate:
		pools.add(hexString(c.PoolKeyHash))
	case *common.VoteRegistrationDelegationCertificate:
		accounts.add(credentialKey(c.StakeCredential))
		dReps.add(drepKey(c.Drep))
	case *common.StakeVoteRegistrationDelegationCertificate:
		accounts.add(credentialKey(c.StakeCredential))
		pools.add(c.PoolKeyHash.String())
		dReps.add(drepKey(c.Drep))
	case *common.AuthCommitteeHotCertificate:
		committeeMembers.add(credentialKey(c.ColdCredential))
		committeeMembers.add(credentialKey(c.HotCredential))
	case *common.ResignCommitteeColdCertificate:
		committeeMembers.add(credentialKey(c.ColdCredential))
	// StakeRegistrationCertificate, RegistrationCertificate,
	// GenesisKeyDelegationCertificate, MoveInstantaneousRewardsCertificate,
	// RegistrationDrepCertificate, DeregistrationDrepCertificate and
	// UpdateDrepCertificate introduce or retire an entity rather than
	// referencing an existing one, so they contribute nothing here.
	default:
	}
}

func credentialKey(c common.Credential) string {
	return c.Hash().String()
}

func drepKey(d common.Drep) string {
	switch d.Type {
	case common.DrepTypeAddrKeyHash, common.DrepTypeScriptHash:
		return hexString(d.Credential)
	default:
		// Abstain and NoConfidence are not concrete DRep ids.
		return ""
	}
}
