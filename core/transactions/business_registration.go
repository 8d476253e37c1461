package transactions

import (
	"fmt"

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
)

type BusinessRegistrationService struct{}

func (s *BusinessRegistrationService) Type() types.TxType { return types.TxTypeBusinessRegistration }

func (s *BusinessRegistrationService) CanBeApplied(tx *types.Transaction, wallet *state.Wallet) error {
	if err := checkGeneric(tx, wallet); err != nil {
		return err
	}
	if wallet.Business != nil {
		return reject(tx, ErrBusinessAlreadyRegistered, "wallet %s owns %q", wallet.Address.Hex(), wallet.Business.Name)
	}
	return nil
}

func (s *BusinessRegistrationService) Apply(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	asset, ok := tx.Asset.(*types.BusinessRegistrationAsset)
	if !ok || asset == nil {
		return fmt.Errorf("%w: %s has asset %T", ErrInvalidAsset, tx, tx.Asset)
	}
	sender, err := wallets.Wallet(tx.Sender)
	if err != nil {
		return err
	}
	entry := state.NewMutationEntry(tx)
	entry.HadBusiness = sender.Business != nil
	if entry.HadBusiness {
		return fmt.Errorf("%w: %s", ErrBusinessAlreadyRegistered, tx)
	}
	if err := ledger.Record(entry); err != nil {
		return err
	}
	if err := payFee(tx, sender); err != nil {
		return err
	}
	sender.Business = &state.Business{
		Name:       asset.Name,
		Website:    asset.Website,
		Registered: true,
	}
	return nil
}

func (s *BusinessRegistrationService) Revert(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	sender, err := wallets.Wallet(tx.Sender)
	if err != nil {
		return err
	}
	// bridgechains registered under the business are reverted first in LIFO order
	if len(sender.Bridgechains) > 0 {
		return fmt.Errorf("revert %s: wallet still owns %d bridgechains", tx, len(sender.Bridgechains))
	}
	entry, err := takeEntry(tx, ledger)
	if err != nil {
		return err
	}
	if entry.HadBusiness {
		return fmt.Errorf("%w: %s claims a prior business", ErrEntryMismatch, entry)
	}
	sender.Business = nil
	return refundFee(tx, sender)
}
