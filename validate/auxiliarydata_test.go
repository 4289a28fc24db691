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

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/txverify/cbor"
	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/conway"
	"github.com/blinklabs-io/txverify/validate"
)

func newLazyMetadata(t *testing.T, contents map[int]int) *cbor.LazyValue {
	t.Helper()
	raw, err := cbor.Encode(contents)
	require.NoError(t, err)
	meta := &cbor.LazyValue{}
	require.NoError(t, meta.UnmarshalCBOR(raw))
	return meta
}

// TestAuxiliaryDataValidator_HashMismatchIsRejected confirms a declared
// auxiliary-data hash that doesn't match the attached metadata's actual
// hash is reported, carrying both hashes.
func TestAuxiliaryDataValidator_HashMismatchIsRejected(t *testing.T) {
	meta := newLazyMetadata(t, map[int]int{0: 1})
	wrongHash := common.Blake2b256Hash([]byte("not the metadata"))

	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			TxAuxDataHash: &wrongHash,
		},
		TxMetadata: meta,
		IsTxValid:  true,
	}
	ctx := &validate.Context{}

	findings := validate.AuxiliaryDataValidator(tx, ctx)
	require.Len(t, findings, 1)
	assert.Equal(t, validate.CodeAuxiliaryDataHashMismatch, findings[0].Code)
}

// TestAuxiliaryDataValidator_MatchingHashIsSilent is the positive
// counterpart: a declared hash that matches the attached metadata's
// computed hash produces no finding.
func TestAuxiliaryDataValidator_MatchingHashIsSilent(t *testing.T) {
	meta := newLazyMetadata(t, map[int]int{0: 1})
	correctHash := common.Blake2b256Hash(meta.Cbor())

	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			TxAuxDataHash: &correctHash,
		},
		TxMetadata: meta,
		IsTxValid:  true,
	}
	ctx := &validate.Context{}

	findings := validate.AuxiliaryDataValidator(tx, ctx)
	assert.Empty(t, findings)
}

// TestAuxiliaryDataValidator_HashPresentWithoutMetadata confirms a declared
// hash with no attached auxiliary data is rejected.
func TestAuxiliaryDataValidator_HashPresentWithoutMetadata(t *testing.T) {
	hash := common.Blake2b256Hash([]byte("orphaned hash"))
	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			TxAuxDataHash: &hash,
		},
		IsTxValid: true,
	}
	ctx := &validate.Context{}

	findings := validate.AuxiliaryDataValidator(tx, ctx)
	require.Len(t, findings, 1)
	assert.Equal(t, validate.CodeAuxiliaryDataHashPresentButNotExpected, findings[0].Code)
}

// TestAuxiliaryDataValidator_MetadataWithoutHashIsRejected confirms
// attached auxiliary data with no declared hash in the body is rejected.
func TestAuxiliaryDataValidator_MetadataWithoutHashIsRejected(t *testing.T) {
	meta := newLazyMetadata(t, map[int]int{0: 1})
	tx := &conway.ConwayTransaction{
		TxMetadata: meta,
		IsTxValid:  true,
	}
	ctx := &validate.Context{}

	findings := validate.AuxiliaryDataValidator(tx, ctx)
	require.Len(t, findings, 1)
	assert.Equal(t, validate.CodeAuxiliaryDataHashMissing, findings[0].Code)
}
