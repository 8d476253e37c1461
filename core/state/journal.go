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

	"github.com/annchain/ogledger/types"
)

// MutationEntry holds the pre-image of every field one applied transaction
// overwrote. It is recorded exactly once by Apply and consumed exactly once by
// the matching Revert. Balance changes are not captured: they are derived
// from the transaction itself on revert.
type MutationEntry struct {
	TxId types.Hash
	Type types.TxType

	// HadBusiness is false for the "no business before" marker of a business registration.
	HadBusiness bool

	PrevSeedNodes     []string
	PrevRepositoryURL string
	PrevResigned      bool
}

func NewMutationEntry(tx *types.Transaction) *MutationEntry {
	return &MutationEntry{TxId: tx.Id, Type: tx.Type}
}

func (e *MutationEntry) String() string {
	return fmt.Sprintf("entry-%s-%s", e.Type, e.TxId.TerminalString())
}

// MutationLedger is the per transaction undo store. Entries are independent
// diffs, so Take must be called in reverse apply order.
type MutationLedger interface {
	// Record stores the entry keyed by its tx id. A second record for the
	// same id fails with ErrEntryExists.
	Record(entry *MutationEntry) error
	// Take returns and deletes the entry. ErrEntryMissing if absent.
	Take(txId types.Hash) (*MutationEntry, error)
}

// WalletSet hands out the wallets touched by one transaction. The returned
// wallet is owned by the caller until the enclosing apply or revert returns.
type WalletSet interface {
	Wallet(addr types.Address) (*Wallet, error)
}
