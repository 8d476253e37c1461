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

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
	"github.com/holiman/uint256"
)

// TransactionService is the per type state transition. Services hold no
// mutable state and are safe for concurrent use on disjoint addresses.
type TransactionService interface {
	Type() types.TxType
	// CanBeApplied is a pure check against the sender wallet. It returns the
	// first violated rule as an *ApplicabilityError.
	CanBeApplied(tx *types.Transaction, wallet *state.Wallet) error
	// Apply mutates the touched wallets and records exactly one entry keyed
	// by tx.Id. Only valid after CanBeApplied succeeded.
	Apply(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error
	// Revert consumes the entry of tx and restores the pre-image. Reverts
	// must run in reverse apply order.
	Revert(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error
}

// checkGeneric applies the rules shared by every type: the wallet is the
// sender, it can pay amount plus fee and the asset is well formed.
func checkGeneric(tx *types.Transaction, wallet *state.Wallet) error {
	if wallet.Address != tx.Sender {
		return reject(tx, ErrSenderMismatch, "wallet %s sender %s", wallet.Address.Hex(), tx.Sender.Hex())
	}
	spend, overflow := new(uint256.Int).AddOverflow(&tx.Amount, &tx.Fee)
	if overflow || wallet.Balance.Lt(spend) {
		return reject(tx, ErrInsufficientBalance, "balance %s need %s+%s", wallet.Balance.Dec(), tx.Amount.Dec(), tx.Fee.Dec())
	}
	return checkAsset(tx)
}

func checkAsset(tx *types.Transaction) error {
	expected := tx.Type != types.TxTypeTransfer
	if !expected {
		if tx.Asset != nil {
			return reject(tx, ErrInvalidAsset, "transfer carries an asset")
		}
		if tx.Recipient.Empty() {
			return reject(tx, ErrInvalidAsset, "%v", types.ErrMissingRecipient)
		}
		return nil
	}
	if tx.Asset == nil {
		return reject(tx, ErrInvalidAsset, "%v", types.ErrAssetMissing)
	}
	if tx.Asset.AssetType() != tx.Type {
		return reject(tx, ErrInvalidAsset, "%v: %s", types.ErrAssetTypeMismatch, tx.Asset.AssetType())
	}
	if err := tx.Asset.Validate(); err != nil {
		return reject(tx, ErrInvalidAsset, "%v", err)
	}
	return nil
}

// takeEntry consumes the entry of tx and checks it was written by the same type.
func takeEntry(tx *types.Transaction, ledger state.MutationLedger) (*state.MutationEntry, error) {
	entry, err := ledger.Take(tx.Id)
	if err != nil {
		return nil, err
	}
	if entry.Type != tx.Type {
		return nil, fmt.Errorf("%w: entry %s tx %s", ErrEntryMismatch, entry, tx)
	}
	return entry, nil
}

// payFee debits the fee from the sender. Fees are burnt: block rewards
// belong to the forging path.
func payFee(tx *types.Transaction, sender *state.Wallet) error {
	return sender.SubBalance(&tx.Fee)
}

func refundFee(tx *types.Transaction, sender *state.Wallet) error {
	return sender.AddBalance(&tx.Fee)
}
