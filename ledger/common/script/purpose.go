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

package script

import (
	"bytes"
	"math/big"
	"slices"

	lcommon "github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/plutigo/data"
)

type ScriptInfo interface {
	isScriptInfo()
	ScriptHash() lcommon.ScriptHash
	ToPlutusData
}

type ScriptInfoMinting struct {
	PolicyId lcommon.Blake2b224
}

func (ScriptInfoMinting) isScriptInfo() {}

func (s ScriptInfoMinting) ScriptHash() lcommon.ScriptHash {
	return s.PolicyId
}

func (s ScriptInfoMinting) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		0,
		data.NewByteString(s.PolicyId.Bytes()),
	)
}

type ScriptInfoSpending struct {
	Input lcommon.Utxo
	Datum data.PlutusData
}

func (ScriptInfoSpending) isScriptInfo() {}

func (s ScriptInfoSpending) ScriptHash() lcommon.ScriptHash {
	tmpAddr := s.Input.Output.Address()
	return tmpAddr.PaymentKeyHash()
}

func (s ScriptInfoSpending) ToPlutusData() data.PlutusData {
	if s.Datum == nil {
		return data.NewConstr(
			1,
			transactionInputToPlutusData(s.Input.Id),
		)
	}
	return data.NewConstr(
		1,
		transactionInputToPlutusData(s.Input.Id),
		data.NewConstr(
			0,
			s.Datum,
		),
	)
}

type ScriptInfoRewarding struct {
	StakeCredential lcommon.Credential
}

func (ScriptInfoRewarding) isScriptInfo() {}

func (s ScriptInfoRewarding) ScriptHash() lcommon.ScriptHash {
	return lcommon.ScriptHash(s.StakeCredential.Credential)
}

func (s ScriptInfoRewarding) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		2,
		s.StakeCredential.ToPlutusData(),
	)
}

type ScriptInfoCertifying struct {
	Index       uint32
	Certificate lcommon.Certificate
}

func (ScriptInfoCertifying) isScriptInfo() {}

func (s ScriptInfoCertifying) ScriptHash() lcommon.ScriptHash {
	var cred *lcommon.Credential
	switch c := s.Certificate.(type) {
	case *lcommon.StakeDeregistrationCertificate:
		cred = &c.StakeCredential
	case *lcommon.RegistrationCertificate:
		cred = &c.StakeCredential
	case *lcommon.DeregistrationCertificate:
		cred = &c.StakeCredential
	case *lcommon.VoteDelegationCertificate:
		cred = &c.StakeCredential
	case *lcommon.VoteRegistrationDelegationCertificate:
		cred = &c.StakeCredential
	case *lcommon.StakeVoteDelegationCertificate:
		cred = &c.StakeCredential
	case *lcommon.StakeRegistrationDelegationCertificate:
		cred = &c.StakeCredential
	case *lcommon.StakeVoteRegistrationDelegationCertificate:
		cred = &c.StakeCredential
	case *lcommon.RegistrationDrepCertificate:
		cred = &c.DrepCredential
	case *lcommon.DeregistrationDrepCertificate:
		cred = &c.DrepCredential
	case *lcommon.UpdateDrepCertificate:
		cred = &c.DrepCredential
	case *lcommon.AuthCommitteeHotCertificate:
		cred = &c.ColdCredential
	case *lcommon.ResignCommitteeColdCertificate:
		cred = &c.ColdCredential
	case *lcommon.StakeDelegationCertificate:
		cred = c.StakeCredential
	}
	if cred != nil {
		if cred.CredType == lcommon.CredentialTypeScriptHash {
			return cred.Credential
		}
	}
	return lcommon.ScriptHash{}
}

func (s ScriptInfoCertifying) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		3,
		data.NewInteger(new(big.Int).SetUint64(uint64(s.Index))),
		certificateToPlutusData(s.Certificate),
	)
}

type ScriptInfoVoting struct {
	Voter lcommon.Voter
}

func (ScriptInfoVoting) isScriptInfo() {}

func (s ScriptInfoVoting) ScriptHash() lcommon.ScriptHash {
	switch s.Voter.Type {
	case lcommon.VoterTypeConstitutionalCommitteeHotScriptHash,
		lcommon.VoterTypeDRepScriptHash:
		return lcommon.ScriptHash(s.Voter.Hash)
	default:
		return lcommon.ScriptHash{}
	}
}

func (s ScriptInfoVoting) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		4,
		voterToPlutusData(s.Voter),
	)
}

// voterToPlutusData encodes a governance voter the same way Credential does:
// a tagged constructor distinguishing a key-hash voter from a script-hash
// voter, since a Voter is itself just a typed 28-byte hash.
func voterToPlutusData(v lcommon.Voter) data.PlutusData {
	switch v.Type {
	case lcommon.VoterTypeConstitutionalCommitteeHotScriptHash,
		lcommon.VoterTypeDRepScriptHash:
		return data.NewConstr(1, data.NewByteString(v.Hash[:]))
	default:
		return data.NewConstr(0, data.NewByteString(v.Hash[:]))
	}
}

type ScriptInfoProposing struct {
	Size              uint64
	ProposalProcedure lcommon.ProposalProcedure
}

func (ScriptInfoProposing) isScriptInfo() {}

func (s ScriptInfoProposing) ScriptHash() lcommon.ScriptHash {
	// TODO
	return lcommon.ScriptHash{}
}

func (s ScriptInfoProposing) ToPlutusData() data.PlutusData {
	// TODO
	return nil
}

type toScriptPurposeFunc func(lcommon.RedeemerKey) ScriptInfo

// scriptPurposeBuilder creates a reusable function preloaded with information about a particular transaction
func scriptPurposeBuilder(
	resolvedInputs []lcommon.Utxo,
	inputs []lcommon.TransactionInput,
	mint lcommon.MultiAsset[lcommon.MultiAssetTypeMint],
	certificates []lcommon.Certificate,
	withdrawals KeyValuePairs[*lcommon.Address, uint64],
	// TODO: proposal procedures
	// TODO: votes
) toScriptPurposeFunc {
	return func(redeemerKey lcommon.RedeemerKey) ScriptInfo {
		// TODO: implement additional redeemer tags
		// https://github.com/aiken-lang/aiken/blob/af4e04b91e54dbba3340de03fc9e65a90f24a93b/crates/uplc/src/tx/script_context.rs#L771-L826
		switch redeemerKey.Tag {
		case lcommon.RedeemerTagSpend:
			var datum data.PlutusData
			tmpInput := inputs[redeemerKey.Index]
			var resolvedInput lcommon.Utxo
			for _, tmpResolvedInput := range resolvedInputs {
				if tmpResolvedInput.Id.String() == tmpInput.String() {
					resolvedInput = tmpResolvedInput
					if tmpDatum := resolvedInput.Output.Datum(); tmpDatum != nil {
						if decoded, err := data.Decode(tmpDatum.Cbor()); err == nil {
							datum = decoded
						}
					}
					break
				}
			}
			return ScriptInfoSpending{
				Input: resolvedInput,
				Datum: datum,
			}
		case lcommon.RedeemerTagMint:
			// TODO: fix this to work for more than one minted policy
			mintPolicies := mint.Policies()
			slices.SortFunc(
				mintPolicies,
				func(a, b lcommon.Blake2b224) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
			)
			return ScriptInfoMinting{
				PolicyId: mintPolicies[redeemerKey.Index],
			}
		case lcommon.RedeemerTagCert:
			return ScriptInfoCertifying{
				Index:       redeemerKey.Index,
				Certificate: certificates[redeemerKey.Index],
			}
		case lcommon.RedeemerTagReward:
			return ScriptInfoRewarding{
				StakeCredential: lcommon.Credential{
					CredType:   lcommon.CredentialTypeScriptHash,
					Credential: withdrawals[redeemerKey.Index].Key.StakeKeyHash(),
				},
			}
		case lcommon.RedeemerTagVoting:
			return nil
		case lcommon.RedeemerTagProposing:
			return nil
		}
		return nil
	}
}

// BuildScriptPurpose resolves the ScriptInfo a single redeemer applies to,
// given the full set of transaction-level inputs a purpose may reference.
// It generalizes scriptPurposeBuilder with reference-input-resolved UTxOs
// (via resolvedInputsMap) and witness datum lookups (via witnessDatums), so
// spending purposes can resolve a datum supplied only by hash.
func BuildScriptPurpose(
	redeemerKey lcommon.RedeemerKey,
	resolvedInputsMap map[string]lcommon.Utxo,
	inputs []lcommon.TransactionInput,
	mint lcommon.MultiAsset[lcommon.MultiAssetTypeMint],
	certificates []lcommon.Certificate,
	withdrawals map[*lcommon.Address]uint64,
	votes lcommon.VotingProcedures,
	proposalProcedures []lcommon.ProposalProcedure,
	witnessDatums map[lcommon.Blake2b256]*lcommon.Datum,
) ScriptInfo {
	switch redeemerKey.Tag {
	case lcommon.RedeemerTagSpend:
		if int(redeemerKey.Index) >= len(inputs) {
			return nil
		}
		tmpInput := inputs[redeemerKey.Index]
		resolvedInput, ok := resolvedInputsMap[tmpInput.String()]
		if !ok {
			return nil
		}
		var datum data.PlutusData
		if resolvedInput.Output != nil {
			if tmpDatum := resolvedInput.Output.Datum(); tmpDatum != nil {
				if decoded, err := data.Decode(tmpDatum.Cbor()); err == nil {
					datum = decoded
				}
			} else if hash := resolvedInput.Output.DatumHash(); hash != nil {
				if wd, ok := witnessDatums[*hash]; ok {
					datum = wd.Data
				}
			}
		}
		return ScriptInfoSpending{
			Input: resolvedInput,
			Datum: datum,
		}
	case lcommon.RedeemerTagMint:
		mintPolicies := mint.Policies()
		slices.SortFunc(
			mintPolicies,
			func(a, b lcommon.Blake2b224) int {
				return bytes.Compare(a.Bytes(), b.Bytes())
			},
		)
		if int(redeemerKey.Index) >= len(mintPolicies) {
			return nil
		}
		return ScriptInfoMinting{
			PolicyId: mintPolicies[redeemerKey.Index],
		}
	case lcommon.RedeemerTagCert:
		if int(redeemerKey.Index) >= len(certificates) {
			return nil
		}
		return ScriptInfoCertifying{
			Index:       redeemerKey.Index,
			Certificate: certificates[redeemerKey.Index],
		}
	case lcommon.RedeemerTagReward:
		sortedAccounts := make([]*lcommon.Address, 0, len(withdrawals))
		for addr := range withdrawals {
			sortedAccounts = append(sortedAccounts, addr)
		}
		slices.SortFunc(
			sortedAccounts,
			func(a, b *lcommon.Address) int {
				return bytes.Compare(a.StakeKeyHash().Bytes(), b.StakeKeyHash().Bytes())
			},
		)
		if int(redeemerKey.Index) >= len(sortedAccounts) {
			return nil
		}
		return ScriptInfoRewarding{
			StakeCredential: lcommon.Credential{
				CredType:   lcommon.CredentialTypeScriptHash,
				Credential: sortedAccounts[redeemerKey.Index].StakeKeyHash(),
			},
		}
	case lcommon.RedeemerTagVoting:
		sortedVoters := make([]*lcommon.Voter, 0, len(votes))
		for voter := range votes {
			sortedVoters = append(sortedVoters, voter)
		}
		slices.SortFunc(
			sortedVoters,
			func(a, b *lcommon.Voter) int {
				return bytes.Compare(a.Hash[:], b.Hash[:])
			},
		)
		if int(redeemerKey.Index) >= len(sortedVoters) {
			return nil
		}
		return ScriptInfoVoting{
			Voter: *sortedVoters[redeemerKey.Index],
		}
	case lcommon.RedeemerTagProposing:
		if int(redeemerKey.Index) >= len(proposalProcedures) {
			return nil
		}
		return ScriptInfoProposing{
			Size:              redeemerKey.Index,
			ProposalProcedure: proposalProcedures[redeemerKey.Index],
		}
	}
	return nil
}

func scriptPurposeStripDatum(purpose ScriptInfo) ScriptInfo {
	switch p := purpose.(type) {
	case ScriptInfoSpending:
		p.Datum = nil
		return p
	}
	return purpose
}
