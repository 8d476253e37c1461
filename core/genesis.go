// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
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
package core

import (
	"fmt"
	"io/ioutil"

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v2"
)

// GenesisHeight is the lowest height a rollback may target.
const GenesisHeight uint64 = 1

type GenesisAllocation struct {
	Address string `yaml:"address"`
	// Balance is a decimal string in the smallest unit.
	Balance string `yaml:"balance"`
}

type Genesis struct {
	Timestamp   int64               `yaml:"timestamp"`
	Allocations []GenesisAllocation `yaml:"allocations"`
}

func DefaultGenesis() *Genesis {
	return &Genesis{
		Timestamp: 1560000000,
		Allocations: []GenesisAllocation{
			{Address: "0x643d534e15a315173a3c18cd13c9f95c7484a9bc", Balance: "10000000000"},
		},
	}
}

func LoadGenesis(path string) (*Genesis, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGenesis(data)
}

func ParseGenesis(data []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := yaml.UnmarshalStrict(data, g); err != nil {
		return nil, fmt.Errorf("parse genesis: %w", err)
	}
	if _, err := g.Wallets(); err != nil {
		return nil, err
	}
	return g, nil
}

// Block is the empty genesis block.
func (g *Genesis) Block() *types.Block {
	return types.NewBlock(GenesisHeight, types.Hash{}, g.Timestamp, nil)
}

// Wallets returns the funded wallets. Duplicate addresses are rejected.
func (g *Genesis) Wallets() ([]*state.Wallet, error) {
	seen := make(map[types.Address]struct{}, len(g.Allocations))
	wallets := make([]*state.Wallet, 0, len(g.Allocations))
	for i, alloc := range g.Allocations {
		addr, err := types.StringToAddress(alloc.Address)
		if err != nil {
			return nil, fmt.Errorf("genesis allocation %d: %w", i, err)
		}
		if _, ok := seen[addr]; ok {
			return nil, fmt.Errorf("genesis allocation %d: duplicate address %s", i, addr.Hex())
		}
		seen[addr] = struct{}{}
		balance, err := uint256.FromDecimal(alloc.Balance)
		if err != nil {
			return nil, fmt.Errorf("genesis allocation %d: balance %q: %w", i, alloc.Balance, err)
		}
		w := state.NewWallet(addr)
		w.Balance = *balance
		wallets = append(wallets, w)
	}
	return wallets, nil
}
