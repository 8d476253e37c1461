package transactions

import (
	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
)

// TransferService moves Amount from sender to recipient and burns Fee.
type TransferService struct{}

func (s *TransferService) Type() types.TxType { return types.TxTypeTransfer }

func (s *TransferService) CanBeApplied(tx *types.Transaction, wallet *state.Wallet) error {
	return checkGeneric(tx, wallet)
}

func (s *TransferService) Apply(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	sender, err := wallets.Wallet(tx.Sender)
	if err != nil {
		return err
	}
	recipient, err := wallets.Wallet(tx.Recipient)
	if err != nil {
		return err
	}
	if err := ledger.Record(state.NewMutationEntry(tx)); err != nil {
		return err
	}
	if err := sender.SubBalance(&tx.Amount); err != nil {
		return err
	}
	if err := payFee(tx, sender); err != nil {
		return err
	}
	return recipient.AddBalance(&tx.Amount)
}

func (s *TransferService) Revert(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	sender, err := wallets.Wallet(tx.Sender)
	if err != nil {
		return err
	}
	recipient, err := wallets.Wallet(tx.Recipient)
	if err != nil {
		return err
	}
	if _, err := takeEntry(tx, ledger); err != nil {
		return err
	}
	if err := recipient.SubBalance(&tx.Amount); err != nil {
		return err
	}
	if err := refundFee(tx, sender); err != nil {
		return err
	}
	return sender.AddBalance(&tx.Amount)
}
