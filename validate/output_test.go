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

	"github.com/blinklabs-io/txverify/ledger/babbage"
	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/conway"
	"github.com/blinklabs-io/txverify/ledger/mary"
	"github.com/blinklabs-io/txverify/validate"
)

// TestOutputValidator_WrongNetworkAddressIsRejected confirms an output
// addressed to the wrong network is flagged even when its value is well
// formed.
func TestOutputValidator_WrongNetworkAddressIsRejected(t *testing.T) {
	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			BabbageTransactionBody: babbage.BabbageTransactionBody{
				TxOutputs: []babbage.BabbageTransactionOutput{
					{
						OutputAddress: keyLockedAddress(0x07),
						OutputAmount:  mary.MaryTransactionOutputValue{Amount: 2_000_000},
					},
				},
			},
		},
		IsTxValid: true,
	}
	ctx := &validate.Context{
		ProtocolParameters: newTestParams(),
		NetworkId:          common.AddressNetworkMainnet,
	}

	findings := validate.OutputValidator(tx, ctx)

	var wrongNetwork *validate.Finding
	for i := range findings {
		if findings[i].Code == validate.CodeWrongNetworkAddress {
			wrongNetwork = &findings[i]
		}
	}
	require.NotNil(t, wrongNetwork, "expected a WrongNetworkAddress finding")
	assert.Equal(t, validate.SeverityError, wrongNetwork.Severity)
}

// TestOutputValidator_MatchingNetworkIsSilent is the positive counterpart:
// an output addressed to the context's configured network produces no
// network-mismatch finding.
func TestOutputValidator_MatchingNetworkIsSilent(t *testing.T) {
	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			BabbageTransactionBody: babbage.BabbageTransactionBody{
				TxOutputs: []babbage.BabbageTransactionOutput{
					{
						OutputAddress: keyLockedAddress(0x07),
						OutputAmount:  mary.MaryTransactionOutputValue{Amount: 2_000_000},
					},
				},
			},
		},
		IsTxValid: true,
	}
	ctx := &validate.Context{
		ProtocolParameters: newTestParams(),
		NetworkId:          common.AddressNetworkTestnet,
	}

	findings := validate.OutputValidator(tx, ctx)
	for _, f := range findings {
		assert.NotEqual(t, validate.CodeWrongNetworkAddress, f.Code)
	}
}

// TestOutputValidator_NonConwayParametersSkipsCheck confirms the validator
// is a no-op without Conway-shaped protocol parameters, mirroring the fee
// validator's behaviour.
func TestOutputValidator_NonConwayParametersSkipsCheck(t *testing.T) {
	tx := &conway.ConwayTransaction{
		Body: conway.ConwayTransactionBody{
			BabbageTransactionBody: babbage.BabbageTransactionBody{
				TxOutputs: []babbage.BabbageTransactionOutput{
					{
						OutputAddress: keyLockedAddress(0x07),
						OutputAmount:  mary.MaryTransactionOutputValue{Amount: 0},
					},
				},
			},
		},
		IsTxValid: true,
	}
	ctx := &validate.Context{}

	findings := validate.OutputValidator(tx, ctx)
	assert.Empty(t, findings)
}
