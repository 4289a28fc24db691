// Copyright 2024 Blink Labs Software
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

import "sync"

// Era identifies one of the Cardano ledger eras. Each era package registers
// its own Era value via RegisterEra in an init() function.
type Era struct {
	Id   uint8
	Name string
}

// EraInvalid is returned by EraById when no era is registered under the
// requested id.
var EraInvalid = Era{
	Id:   255,
	Name: "invalid",
}

var (
	eraMutex sync.Mutex
	eras     = map[uint8]Era{}
)

// RegisterEra records an era so that it can later be looked up by id. Era
// packages call this from an init() function; callers only need to
// blank-import the era packages they care about.
func RegisterEra(era Era) {
	eraMutex.Lock()
	defer eraMutex.Unlock()
	eras[era.Id] = era
}

// EraById returns the registered era with the given id, or EraInvalid if no
// era has been registered under that id.
func EraById(id uint8) Era {
	eraMutex.Lock()
	defer eraMutex.Unlock()
	era, ok := eras[id]
	if !ok {
		return EraInvalid
	}
	return era
}
