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

package common

import (
	"encoding/hex"

	"github.com/blinklabs-io/txverify/cbor"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

// TransactionBodyBase supplies the hash/CBOR plumbing shared by every
// post-Byron transaction body. Eras embed it and define the rest of the
// TransactionBody interface themselves.
type TransactionBodyBase struct {
	cbor.DecodeStoreCbor
	hash *Blake2b256
}

// Id returns the raw transaction body hash.
func (b *TransactionBodyBase) Id() Blake2b256 {
	if b.hash == nil {
		tmpHash := Blake2b256Hash(b.Cbor())
		b.hash = &tmpHash
	}
	return *b.hash
}

// Hash returns the hex-encoded transaction body hash.
func (b *TransactionBodyBase) Hash() string {
	return b.Id().String()
}

// The following provide zero-value defaults for TransactionBody fields that
// didn't exist yet in earlier eras. Eras that do carry the field shadow
// these with their own method of the same name.

func (b *TransactionBodyBase) ReferenceInputs() []TransactionInput {
	return nil
}

func (b *TransactionBodyBase) Collateral() []TransactionInput {
	return nil
}

func (b *TransactionBodyBase) CollateralReturn() TransactionOutput {
	return nil
}

func (b *TransactionBodyBase) TotalCollateral() uint64 {
	return 0
}

func (b *TransactionBodyBase) RequiredSigners() []Blake2b224 {
	return nil
}

func (b *TransactionBodyBase) AssetMint() *MultiAsset[MultiAssetTypeMint] {
	return nil
}

func (b *TransactionBodyBase) ScriptDataHash() *Blake2b256 {
	return nil
}

func (b *TransactionBodyBase) VotingProcedures() VotingProcedures {
	return nil
}

func (b *TransactionBodyBase) ProposalProcedures() []ProposalProcedure {
	return nil
}

func (b *TransactionBodyBase) CurrentTreasuryValue() int64 {
	return 0
}

func (b *TransactionBodyBase) Donation() uint64 {
	return 0
}

// TransactionBodyToUtxorpc builds the shared utxorpc representation of a
// transaction body from its inputs, outputs, fee, and hash.
func TransactionBodyToUtxorpc(b TransactionBody) *utxorpc.Tx {
	txi := make([]*utxorpc.TxInput, 0, len(b.Inputs()))
	for _, i := range b.Inputs() {
		txi = append(txi, i.Utxorpc())
	}
	txo := make([]*utxorpc.TxOutput, 0, len(b.Outputs()))
	for _, o := range b.Outputs() {
		txo = append(txo, o.Utxorpc())
	}
	hashBytes, _ := hex.DecodeString(b.Hash())
	return &utxorpc.Tx{
		Inputs:  txi,
		Outputs: txo,
		Fee:     b.Fee(),
		Hash:    hashBytes,
	}
}
