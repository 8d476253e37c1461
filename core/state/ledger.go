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
	"errors"
	"fmt"

	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
)

var prefixMutationEntry = []byte("ml")

func mutationEntryKey(txId types.Hash) []byte {
	return append(append([]byte{}, prefixMutationEntry...), txId.Bytes[:]...)
}

// PersistentLedger keeps the committed mutation entries in the kv store.
// It implements MutationLedger for direct writes; block application goes
// through a StateDB which stages entries and flushes them in one batch.
type PersistentLedger struct {
	db ogdb.Database
}

func NewPersistentLedger(db ogdb.Database) *PersistentLedger {
	return &PersistentLedger{db: db}
}

func (l *PersistentLedger) Get(txId types.Hash) (*MutationEntry, error) {
	data, err := l.db.Get(mutationEntryKey(txId))
	if errors.Is(err, ogdb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEntryMissing, txId.Hex())
	}
	if err != nil {
		return nil, err
	}
	entry := &MutationEntry{}
	if _, err := entry.UnmarshalMsg(data); err != nil {
		return nil, fmt.Errorf("decode mutation entry %s: %w", txId.Hex(), err)
	}
	return entry, nil
}

func (l *PersistentLedger) Has(txId types.Hash) (bool, error) {
	return l.db.Has(mutationEntryKey(txId))
}

func (l *PersistentLedger) Record(entry *MutationEntry) error {
	has, err := l.Has(entry.TxId)
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: %s", ErrEntryExists, entry.TxId.Hex())
	}
	return l.PutInBatch(l.db, entry)
}

func (l *PersistentLedger) Take(txId types.Hash) (*MutationEntry, error) {
	entry, err := l.Get(txId)
	if err != nil {
		return nil, err
	}
	return entry, l.DeleteInBatch(l.db, txId)
}

func (l *PersistentLedger) PutInBatch(p ogdb.Putter, entry *MutationEntry) error {
	data, err := entry.MarshalMsg(nil)
	if err != nil {
		return err
	}
	return p.Put(mutationEntryKey(entry.TxId), data)
}

func (l *PersistentLedger) DeleteInBatch(d ogdb.Deleter, txId types.Hash) error {
	return d.Delete(mutationEntryKey(txId))
}
