package transactions

import (
	"fmt"

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
)

// BridgechainResignationService marks a bridgechain resigned. The transition
// is one way for every forward path; only Revert clears it.
type BridgechainResignationService struct{}

func (s *BridgechainResignationService) Type() types.TxType {
	return types.TxTypeBridgechainResignation
}

func (s *BridgechainResignationService) CanBeApplied(tx *types.Transaction, wallet *state.Wallet) error {
	if err := checkGeneric(tx, wallet); err != nil {
		return err
	}
	asset, ok := tx.Asset.(*types.BridgechainResignationAsset)
	if !ok || asset == nil {
		return reject(tx, ErrInvalidAsset, "asset %T", tx.Asset)
	}
	return checkLiveBridgechain(tx, wallet, asset.RegisteredBridgechainId)
}

func (s *BridgechainResignationService) Apply(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	asset, ok := tx.Asset.(*types.BridgechainResignationAsset)
	if !ok || asset == nil {
		return fmt.Errorf("%w: %s has asset %T", ErrInvalidAsset, tx, tx.Asset)
	}
	sender, err := wallets.Wallet(tx.Sender)
	if err != nil {
		return err
	}
	chain, ok := sender.Bridgechains[asset.RegisteredBridgechainId]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBridgechainNotFound, tx)
	}
	entry := state.NewMutationEntry(tx)
	entry.PrevResigned = chain.Resigned
	if entry.PrevResigned {
		return fmt.Errorf("%w: %s", ErrBridgechainResigned, tx)
	}
	if err := ledger.Record(entry); err != nil {
		return err
	}
	if err := payFee(tx, sender); err != nil {
		return err
	}
	chain.Resigned = true
	return nil
}

func (s *BridgechainResignationService) Revert(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	asset, ok := tx.Asset.(*types.BridgechainResignationAsset)
	if !ok || asset == nil {
		return fmt.Errorf("%w: %s has asset %T", ErrInvalidAsset, tx, tx.Asset)
	}
	sender, err := wallets.Wallet(tx.Sender)
	if err != nil {
		return err
	}
	chain, ok := sender.Bridgechains[asset.RegisteredBridgechainId]
	if !ok {
		return fmt.Errorf("%w: revert %s", ErrBridgechainNotFound, tx)
	}
	entry, err := takeEntry(tx, ledger)
	if err != nil {
		return err
	}
	chain.Resigned = entry.PrevResigned
	return refundFee(tx, sender)
}
