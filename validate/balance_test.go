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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/txverify/cbor"
	test_ledger "github.com/blinklabs-io/txverify/internal/test/ledger"
	"github.com/blinklabs-io/txverify/ledger/babbage"
	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/conway"
	"github.com/blinklabs-io/txverify/ledger/mary"
	"github.com/blinklabs-io/txverify/ledger/shelley"
	"github.com/blinklabs-io/txverify/validate"
)

// newSingleAssetMultiAsset builds a MultiAsset carrying a single policy and
// asset name at the given quantity, mirroring the construction pattern used
// throughout the mary package's own tests.
func newSingleAssetMultiAsset(
	policy common.Blake2b224,
	assetName []byte,
	qty int64,
) *common.MultiAsset[common.MultiAssetTypeOutput] {
	m := common.NewMultiAsset[common.MultiAssetTypeOutput](
		map[common.Blake2b224]map[cbor.ByteString]common.MultiAssetTypeOutput{
			policy: {
				cbor.NewByteString(assetName): big.NewInt(qty),
			},
		},
	)
	return &m
}

// TestBalanceValidator_ValueNotConserved covers the mandatory "value not
// conserved" scenario: inputs resolve to 2,000,000 lovelace, outputs sum to
// 1,500,000, and the fee is 200,000 — leaving a 300,000 lovelace shortfall
// that must be reported as a negative difference.
func TestBalanceValidator_ValueNotConserved(t *testing.T) {
	input := shelley.NewShelleyTransactionInput(
		"1111111111111111111111111111111111111111111111111111111111111111",
		0,
	)
	inputUtxo := common.Utxo{
		Id: input,
		Output: babbage.BabbageTransactionOutput{
			OutputAddress: keyLockedAddress(0x02),
			OutputAmount:  mary.MaryTransactionOutputValue{Amount: 2_000_000},
		},
	}
	ls := test_ledger.NewMockLedgerStateWithUtxos([]common.Utxo{inputUtxo})

	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			BabbageTransactionBody: babbage.BabbageTransactionBody{
				TxInputs: shelley.NewShelleyTransactionInputSet(
					[]shelley.ShelleyTransactionInput{input},
				),
				TxOutputs: []babbage.BabbageTransactionOutput{
					{
						OutputAddress: keyLockedAddress(0x03),
						OutputAmount:  mary.MaryTransactionOutputValue{Amount: 1_500_000},
					},
				},
				TxFee: 200_000,
			},
		},
		IsTxValid: true,
	}
	ctx := &validate.Context{LedgerState: ls, ProtocolParameters: newTestParams()}

	findings := validate.BalanceValidator(tx, ctx)
	require.Len(t, findings, 1)
	assert.Equal(t, validate.CodeValueNotConservedUTxO, findings[0].Code)
	assert.Equal(t, validate.SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "-300000")
}

// TestBalanceValidator_ConservedValueProducesNoFinding is the positive
// counterpart: when input sum equals output sum plus fee, the validator
// must stay silent.
func TestBalanceValidator_ConservedValueProducesNoFinding(t *testing.T) {
	input := shelley.NewShelleyTransactionInput(
		"2222222222222222222222222222222222222222222222222222222222222222",
		0,
	)
	inputUtxo := common.Utxo{
		Id: input,
		Output: babbage.BabbageTransactionOutput{
			OutputAddress: keyLockedAddress(0x02),
			OutputAmount:  mary.MaryTransactionOutputValue{Amount: 2_000_000},
		},
	}
	ls := test_ledger.NewMockLedgerStateWithUtxos([]common.Utxo{inputUtxo})

	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			BabbageTransactionBody: babbage.BabbageTransactionBody{
				TxInputs: shelley.NewShelleyTransactionInputSet(
					[]shelley.ShelleyTransactionInput{input},
				),
				TxOutputs: []babbage.BabbageTransactionOutput{
					{
						OutputAddress: keyLockedAddress(0x03),
						OutputAmount:  mary.MaryTransactionOutputValue{Amount: 1_800_000},
					},
				},
				TxFee: 200_000,
			},
		},
		IsTxValid: true,
	}
	ctx := &validate.Context{LedgerState: ls, ProtocolParameters: newTestParams()}

	findings := validate.BalanceValidator(tx, ctx)
	assert.Empty(t, findings)
}

// TestBalanceValidator_NativeAssetImbalanceIsReportedPerAsset confirms the
// balance check is per-asset: an ada-balanced transaction that drops a
// native asset along the way must still be flagged, under that asset's own
// label rather than folded into the ada difference.
func TestBalanceValidator_NativeAssetImbalanceIsReportedPerAsset(t *testing.T) {
	policy := blake2b224Seed(0xAA)
	assetName := []byte("TestAsset")

	inputAssets := newSingleAssetMultiAsset(policy, assetName, 100)
	outputAssets := newSingleAssetMultiAsset(policy, assetName, 40)

	input := shelley.NewShelleyTransactionInput(
		"3333333333333333333333333333333333333333333333333333333333333333",
		0,
	)
	inputUtxo := common.Utxo{
		Id: input,
		Output: babbage.BabbageTransactionOutput{
			OutputAddress: keyLockedAddress(0x02),
			OutputAmount: mary.MaryTransactionOutputValue{
				Amount: 2_000_000,
				Assets: inputAssets,
			},
		},
	}
	ls := test_ledger.NewMockLedgerStateWithUtxos([]common.Utxo{inputUtxo})

	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			BabbageTransactionBody: babbage.BabbageTransactionBody{
				TxInputs: shelley.NewShelleyTransactionInputSet(
					[]shelley.ShelleyTransactionInput{input},
				),
				TxOutputs: []babbage.BabbageTransactionOutput{
					{
						OutputAddress: keyLockedAddress(0x03),
						OutputAmount: mary.MaryTransactionOutputValue{
							Amount: 1_800_000,
							Assets: outputAssets,
						},
					},
				},
				TxFee: 200_000,
			},
		},
		IsTxValid: true,
	}
	ctx := &validate.Context{LedgerState: ls, ProtocolParameters: newTestParams()}

	findings := validate.BalanceValidator(tx, ctx)
	require.Len(t, findings, 1)
	assert.Equal(t, validate.CodeValueNotConservedUTxO, findings[0].Code)
	assert.NotContains(t, findings[0].Message, "ada:")
}
