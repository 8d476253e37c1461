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
package transactions

import (
	"fmt"
	"sort"

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
	log "github.com/sirupsen/logrus"
)

// Registry maps every tx type to its service. It is built once at start up
// and passed by reference; lookups never mutate it.
type Registry struct {
	services map[types.TxType]TransactionService
}

// NewRegistry panics when two services claim the same type.
func NewRegistry(services ...TransactionService) *Registry {
	r := &Registry{services: make(map[types.TxType]TransactionService, len(services))}
	for _, s := range services {
		if _, ok := r.services[s.Type()]; ok {
			panic(fmt.Sprintf("duplicate service for tx type %s", s.Type()))
		}
		r.services[s.Type()] = s
	}
	return r
}

// DefaultRegistry holds a service for every known tx type.
func DefaultRegistry() *Registry {
	return NewRegistry(
		&TransferService{},
		&TimelockTransferService{},
		&BusinessRegistrationService{},
		&BridgechainRegistrationService{},
		&BridgechainUpdateService{},
		&BridgechainResignationService{},
	)
}

func (r *Registry) Resolve(t types.TxType) (TransactionService, error) {
	s, ok := r.services[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransactionType, t)
	}
	return s, nil
}

func (r *Registry) Types() []types.TxType {
	ts := make([]types.TxType, 0, len(r.services))
	for t := range r.services {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// CanBeApplied resolves the service and checks tx against the sender wallet.
func (r *Registry) CanBeApplied(tx *types.Transaction, wallet *state.Wallet) error {
	s, err := r.Resolve(tx.Type)
	if err != nil {
		log.WithField("tx", tx).WithError(err).Warn("rejected tx")
		return err
	}
	return s.CanBeApplied(tx, wallet)
}

func (r *Registry) Apply(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	s, err := r.Resolve(tx.Type)
	if err != nil {
		return err
	}
	return s.Apply(tx, wallets, ledger)
}

func (r *Registry) Revert(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	s, err := r.Resolve(tx.Type)
	if err != nil {
		return err
	}
	return s.Revert(tx, wallets, ledger)
}
