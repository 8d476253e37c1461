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
package state

import (
	"fmt"
	"sort"

	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	mapset "github.com/deckarep/golang-set"
	log "github.com/sirupsen/logrus"
)

// StateDB is a staging overlay over the committed wallets and mutation
// ledger. Block application and rollback mutate a StateDB and then flush it in
// a single batch, so an aborted run leaves the committed state untouched.
//
// A StateDB is used by one goroutine at a time.
type StateDB struct {
	store  *WalletStore
	ledger *PersistentLedger

	wallets map[types.Address]*Wallet
	dirty   mapset.Set

	// staged entries and the committed entries consumed by Take
	records map[types.Hash]*MutationEntry
	taken   map[types.Hash]struct{}
}

func NewStateDB(store *WalletStore, ledger *PersistentLedger) *StateDB {
	return &StateDB{
		store:   store,
		ledger:  ledger,
		wallets: make(map[types.Address]*Wallet),
		dirty:   mapset.NewThreadUnsafeSet(),
		records: make(map[types.Hash]*MutationEntry),
		taken:   make(map[types.Hash]struct{}),
	}
}

// Wallet returns the staged wallet for addr, loading it on first use. The
// wallet is marked dirty and will be written by CommitTo.
func (sd *StateDB) Wallet(addr types.Address) (*Wallet, error) {
	w, err := sd.Peek(addr)
	if err != nil {
		return nil, err
	}
	sd.dirty.Add(addr)
	return w, nil
}

// Peek returns the staged wallet without marking it dirty. Callers must not mutate it.
func (sd *StateDB) Peek(addr types.Address) (*Wallet, error) {
	if w, ok := sd.wallets[addr]; ok {
		return w, nil
	}
	w, err := sd.store.Get(addr)
	if err != nil {
		return nil, err
	}
	sd.wallets[addr] = w
	return w, nil
}

func (sd *StateDB) Record(entry *MutationEntry) error {
	if _, ok := sd.records[entry.TxId]; ok {
		return fmt.Errorf("%w: %s", ErrEntryExists, entry.TxId.Hex())
	}
	if _, ok := sd.taken[entry.TxId]; ok {
		// consumed in this overlay and now re-applied
		delete(sd.taken, entry.TxId)
		sd.records[entry.TxId] = entry
		return nil
	}
	has, err := sd.ledger.Has(entry.TxId)
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: %s", ErrEntryExists, entry.TxId.Hex())
	}
	sd.records[entry.TxId] = entry
	return nil
}

func (sd *StateDB) Take(txId types.Hash) (*MutationEntry, error) {
	if entry, ok := sd.records[txId]; ok {
		delete(sd.records, txId)
		// a committed entry with the same id may still exist if it was taken
		// and re-recorded earlier in this overlay
		has, err := sd.ledger.Has(txId)
		if err != nil {
			sd.records[txId] = entry
			return nil, err
		}
		if has {
			sd.taken[txId] = struct{}{}
		}
		return entry, nil
	}
	if _, ok := sd.taken[txId]; ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryMissing, txId.Hex())
	}
	entry, err := sd.ledger.Get(txId)
	if err != nil {
		return nil, err
	}
	sd.taken[txId] = struct{}{}
	return entry, nil
}

// Dirty returns the addresses to be written, in address order.
func (sd *StateDB) Dirty() []types.Address {
	addrs := make([]types.Address, 0, sd.dirty.Cardinality())
	for v := range sd.dirty.Iter() {
		addrs = append(addrs, v.(types.Address))
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Cmp(addrs[j]) < 0 })
	return addrs
}

// CommitTo stages every dirty wallet and ledger change into batch. Call
// Flushed once the batch has been written.
func (sd *StateDB) CommitTo(batch ogdb.Batch) error {
	for _, addr := range sd.Dirty() {
		if err := sd.store.PutInBatch(batch, sd.wallets[addr]); err != nil {
			return err
		}
	}
	for id := range sd.taken {
		if err := sd.ledger.DeleteInBatch(batch, id); err != nil {
			return err
		}
	}
	for _, entry := range sd.records {
		if err := sd.ledger.PutInBatch(batch, entry); err != nil {
			return err
		}
	}
	return nil
}

// Flushed publishes the written wallets to the store cache and resets the overlay.
func (sd *StateDB) Flushed() {
	for _, addr := range sd.Dirty() {
		sd.store.Cache(sd.wallets[addr])
	}
	log.WithField("wallets", sd.dirty.Cardinality()).
		WithField("recorded", len(sd.records)).
		WithField("taken", len(sd.taken)).
		Debug("state flushed")
	sd.Reset()
}

// Commit writes the overlay in its own batch.
func (sd *StateDB) Commit(db ogdb.Database) error {
	batch := db.NewBatch()
	if err := sd.CommitTo(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	sd.Flushed()
	return nil
}

// Reset drops every staged change.
func (sd *StateDB) Reset() {
	sd.wallets = make(map[types.Address]*Wallet)
	sd.dirty.Clear()
	sd.records = make(map[types.Hash]*MutationEntry)
	sd.taken = make(map[types.Hash]struct{})
}
