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
	"github.com/blinklabs-io/txverify/ledger/common"
)

const (
	CodeAuxiliaryDataHashPresentButNotExpected Code = "AuxiliaryDataHashPresentButNotExpected"
	CodeAuxiliaryDataHashMissing                Code = "AuxiliaryDataHashMissing"
	CodeAuxiliaryDataHashMismatch                Code = "AuxiliaryDataHashMismatch"
)

// AuxiliaryDataValidator checks that the body's declared auxiliary-data
// hash and the attached auxiliary data (if any) agree.
func AuxiliaryDataValidator(tx common.Transaction, ctx *Context) []Finding {
	var findings []Finding

	declaredHash := tx.AuxDataHash()
	metadata := tx.Metadata()
	hasMetadata := metadata != nil && metadata.Value != nil && len(metadata.Cbor()) > 0

	switch {
	case declaredHash != nil && !hasMetadata:
		findings = append(findings, errorf(
			CodeAuxiliaryDataHashPresentButNotExpected,
			"body.auxiliary_data_hash",
			"auxiliary data hash %s declared but no auxiliary data is attached",
			declaredHash.String(),
		))
	case declaredHash == nil && hasMetadata:
		findings = append(findings, errorf(
			CodeAuxiliaryDataHashMissing,
			"body.auxiliary_data_hash",
			"auxiliary data is attached but the body omits its hash",
		))
	case declaredHash != nil && hasMetadata:
		actual := common.Blake2b256Hash(metadata.Cbor())
		if actual != *declaredHash {
			findings = append(findings, errorf(
				CodeAuxiliaryDataHashMismatch,
				"body.auxiliary_data_hash",
				"auxiliary data hash mismatch: declared %s, computed %s",
				declaredHash.String(),
				actual.String(),
			))
		}
	}

	return findings
}
