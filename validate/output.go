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
	CodeOutputTooBigUTxO    Code = "OutputTooBigUTxO"
	CodeOutputTooSmallUTxO  Code = "OutputTooSmallUTxO"
	CodeWrongNetworkAddress Code = "WrongNetworkAddress"
)

// OutputValidator checks each output's encoded size, minimum-ada
// requirement, and address network id.
func OutputValidator(tx common.Transaction, ctx *Context) []Finding {
	pp, ok := ctx.ProtocolParameters.(*conway.ConwayProtocolParameters)
	if !ok {
		return nil
	}

	var findings []Finding
	for i, output := range tx.Outputs() {
		path := fmt.Sprintf("body.outputs[%d]", i)
		encodedSize := len(output.Cbor())

		if uint(encodedSize) > pp.MaxValueSize {
			findings = append(findings, errorf(
				CodeOutputTooBigUTxO,
				path+".value",
				"output %d encoded size %d exceeds the maximum value size %d",
				i, encodedSize, pp.MaxValueSize,
			))
		}

		minAda := pp.AdaPerUtxoByte * uint64(encodedSize)
		if output.Amount() < minAda {
			findings = append(findings, errorf(
				CodeOutputTooSmallUTxO,
				path+".value",
				"output %d ada %d is below the minimum UTxO value %d",
				i, output.Amount(), minAda,
			))
		}

		if output.Address().NetworkId() != ctx.NetworkId {
			findings = append(findings, errorf(
				CodeWrongNetworkAddress,
				path+".address",
				"output %d address network id %d does not match expected network %d",
				i, output.Address().NetworkId(), ctx.NetworkId,
			))
		}
	}

	return findings
}
