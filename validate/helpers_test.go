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

	"github.com/blinklabs-io/txverify/cbor"
	"github.com/blinklabs-io/txverify/ledger/common"
	"github.com/blinklabs-io/txverify/ledger/conway"
)

// newTestParams returns a ConwayProtocolParameters fixture with realistic,
// non-zero values for every field the validators inspect.
func newTestParams() *conway.ConwayProtocolParameters {
	return &conway.ConwayProtocolParameters{
		MinFeeA:              44,
		MinFeeB:              155381,
		MaxTxSize:            16384,
		MaxValueSize:         5000,
		AdaPerUtxoByte:       4310,
		CollateralPercentage: 150,
		MaxCollateralInputs:  3,
		KeyDeposit:           2_000_000,
		PoolDeposit:          500_000_000,
		DRepDeposit:          500_000_000,
		GovActionDeposit:     100_000_000_000,
		MaxEpoch:             18,
		MaxTxExUnits: common.ExUnits{
			Memory: 14_000_000,
			Steps:  10_000_000_000,
		},
		ExecutionCosts: common.ExUnitPrice{
			MemPrice:  &cbor.Rat{Rat: big.NewRat(577, 10000)},
			StepPrice: &cbor.Rat{Rat: big.NewRat(721, 10000000)},
		},
		MinFeeRefScriptCostPerByte: &cbor.Rat{Rat: big.NewRat(15, 1)},
		CostModels:                 map[uint][]int64{},
	}
}

// keyLockedAddress builds a testnet, key-hash-locked address whose payment
// credential is the given 28-byte seed, for outputs that a plain vkey
// witness (not collateral-disqualifying) can unlock.
func keyLockedAddress(seed byte) common.Address {
	hash := common.Blake2b224{}
	for i := range hash {
		hash[i] = seed
	}
	addr, err := common.NewAddressFromParts(
		common.AddressTypeKeyNone,
		common.AddressNetworkTestnet,
		hash[:],
		nil,
	)
	if err != nil {
		panic(err)
	}
	return addr
}

// scriptLockedAddress builds a testnet, script-hash-locked address, used to
// construct collateral inputs the CollateralValidator must reject.
func scriptLockedAddress(seed byte) common.Address {
	hash := common.Blake2b224{}
	for i := range hash {
		hash[i] = seed
	}
	addr, err := common.NewAddressFromParts(
		common.AddressTypeScriptNone,
		common.AddressNetworkTestnet,
		hash[:],
		nil,
	)
	if err != nil {
		panic(err)
	}
	return addr
}

// blake2b224Seed returns a Blake2b224 filled with a single repeated byte, a
// convenient way to build distinct deterministic hashes for fixtures.
func blake2b224Seed(b byte) common.Blake2b224 {
	var h common.Blake2b224
	for i := range h {
		h[i] = b
	}
	return h
}

