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
	test_ledger "github.com/blinklabs-io/txverify/internal/test/ledger"
	"github.com/blinklabs-io/txverify/ledger/babbage"
	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/conway"
	"github.com/blinklabs-io/txverify/ledger/mary"
	"github.com/blinklabs-io/txverify/ledger/shelley"
	"github.com/blinklabs-io/txverify/validate"
)

func newCollateralTestTransaction(
	collateralInput shelley.ShelleyTransactionInput,
) *conway.ConwayTransaction {
	return &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			BabbageTransactionBody: babbage.BabbageTransactionBody{
				TxFee:        500_000,
				TxCollateral: []shelley.ShelleyTransactionInput{collateralInput},
			},
		},
		WitnessSet: conway.ConwayTransactionWitnessSet{
			BabbageTransactionWitnessSet: babbage.BabbageTransactionWitnessSet{},
			WsPlutusV3Scripts:            []cbor.RawMessage{cbor.RawMessage(common.PlutusV3Script([]byte{0x46, 0x01}))},
		},
		IsTxValid: true,
	}
}

// TestCollateralValidator_CollateralWithNativeTokens covers the mandatory
// "collateral with native tokens" scenario: a transaction carrying a Plutus
// script whose sole collateral input resolves to a UTxO holding a non-ada
// asset must be rejected, naming that input.
func TestCollateralValidator_CollateralWithNativeTokens(t *testing.T) {
	collateralInput := shelley.NewShelleyTransactionInput(
		"4444444444444444444444444444444444444444444444444444444444444444",
		0,
	)
	policy := blake2b224Seed(0xBB)
	assets := newSingleAssetMultiAsset(policy, []byte("Token"), 1)

	utxo := common.Utxo{
		Id: collateralInput,
		Output: babbage.BabbageTransactionOutput{
			OutputAddress: keyLockedAddress(0x04),
			OutputAmount: mary.MaryTransactionOutputValue{
				Amount: 5_000_000,
				Assets: assets,
			},
		},
	}
	ls := test_ledger.NewMockLedgerStateWithUtxos([]common.Utxo{utxo})

	tx := newCollateralTestTransaction(collateralInput)
	ctx := &validate.Context{LedgerState: ls, ProtocolParameters: newTestParams()}

	findings := validate.CollateralValidator(tx, ctx)

	var nonAda *validate.Finding
	for i := range findings {
		if findings[i].Code == validate.CodeCollateralContainsNonAda {
			nonAda = &findings[i]
		}
	}
	require.NotNil(t, nonAda, "expected a CollateralInputContainsNonAdaAssets finding")
	assert.Equal(t, validate.SeverityError, nonAda.Severity)
	assert.Contains(t, nonAda.Message, "0")
}

// TestCollateralValidator_PureAdaCollateralIsAccepted is the negative
// counterpart: sufficient ada-only collateral at a key-locked address
// produces no findings at all.
func TestCollateralValidator_PureAdaCollateralIsAccepted(t *testing.T) {
	collateralInput := shelley.NewShelleyTransactionInput(
		"5555555555555555555555555555555555555555555555555555555555555555",
		0,
	)
	utxo := common.Utxo{
		Id: collateralInput,
		Output: babbage.BabbageTransactionOutput{
			OutputAddress: keyLockedAddress(0x04),
			OutputAmount:  mary.MaryTransactionOutputValue{Amount: 5_000_000},
		},
	}
	ls := test_ledger.NewMockLedgerStateWithUtxos([]common.Utxo{utxo})

	tx := newCollateralTestTransaction(collateralInput)
	ctx := &validate.Context{LedgerState: ls, ProtocolParameters: newTestParams()}

	findings := validate.CollateralValidator(tx, ctx)
	assert.Empty(t, findings)
}

// TestCollateralValidator_ScriptLockedCollateralIsRejected confirms a
// collateral input at a script-locked address is flagged regardless of its
// asset composition.
func TestCollateralValidator_ScriptLockedCollateralIsRejected(t *testing.T) {
	collateralInput := shelley.NewShelleyTransactionInput(
		"6666666666666666666666666666666666666666666666666666666666666666",
		0,
	)
	utxo := common.Utxo{
		Id: collateralInput,
		Output: babbage.BabbageTransactionOutput{
			OutputAddress: scriptLockedAddress(0x05),
			OutputAmount:  mary.MaryTransactionOutputValue{Amount: 5_000_000},
		},
	}
	ls := test_ledger.NewMockLedgerStateWithUtxos([]common.Utxo{utxo})

	tx := newCollateralTestTransaction(collateralInput)
	ctx := &validate.Context{LedgerState: ls, ProtocolParameters: newTestParams()}

	findings := validate.CollateralValidator(tx, ctx)

	var scriptLocked bool
	for _, f := range findings {
		if f.Code == validate.CodeCollateralIsScriptLocked {
			scriptLocked = true
		}
	}
	assert.True(t, scriptLocked, "expected a CollateralIsScriptLocked finding")
}

// TestCollateralValidator_NoScriptsNoCollateralIsSilent confirms a
// transaction with neither Plutus scripts nor collateral inputs is a
// complete no-op for this validator.
func TestCollateralValidator_NoScriptsNoCollateralIsSilent(t *testing.T) {
	tx := &conway.ConwayTransaction{IsTxValid: true}
	ctx := &validate.Context{ProtocolParameters: newTestParams()}

	findings := validate.CollateralValidator(tx, ctx)
	assert.Empty(t, findings)
}
