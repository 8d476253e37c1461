package transactions

import (
	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
)

// TimelockTransferService accepts timelocked transfers without touching any
// balance: settlement of the lock is not part of this ledger. Apply and
// Revert only record and consume a marker entry so ordering stays checked.
type TimelockTransferService struct{}

func (s *TimelockTransferService) Type() types.TxType { return types.TxTypeTimelockTransfer }

func (s *TimelockTransferService) CanBeApplied(tx *types.Transaction, wallet *state.Wallet) error {
	return checkGeneric(tx, wallet)
}

func (s *TimelockTransferService) Apply(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	return ledger.Record(state.NewMutationEntry(tx))
}

func (s *TimelockTransferService) Revert(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	_, err := takeEntry(tx, ledger)
	return err
}
