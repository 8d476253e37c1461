package transactions

import (
	"fmt"

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
)

// BridgechainRegistrationService inserts a bridgechain keyed by the tx id
// under the sender's business.
type BridgechainRegistrationService struct{}

func (s *BridgechainRegistrationService) Type() types.TxType {
	return types.TxTypeBridgechainRegistration
}

func (s *BridgechainRegistrationService) CanBeApplied(tx *types.Transaction, wallet *state.Wallet) error {
	if err := checkGeneric(tx, wallet); err != nil {
		return err
	}
	if !wallet.HasBusiness() {
		return reject(tx, ErrBusinessNotRegistered, "wallet %s", wallet.Address.Hex())
	}
	asset, ok := tx.Asset.(*types.BridgechainRegistrationAsset)
	if !ok || asset == nil {
		return reject(tx, ErrInvalidAsset, "asset %T", tx.Asset)
	}
	if id, ok := wallet.LiveBridgechainByName(asset.Name); ok {
		return reject(tx, ErrBridgechainAlreadyRegistered, "%q registered by %s", asset.Name, id.Hex())
	}
	if _, ok := wallet.Bridgechains[tx.Id]; ok {
		return reject(tx, ErrBridgechainAlreadyRegistered, "id %s", tx.Id.Hex())
	}
	return nil
}

func (s *BridgechainRegistrationService) Apply(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	asset, ok := tx.Asset.(*types.BridgechainRegistrationAsset)
	if !ok || asset == nil {
		return fmt.Errorf("%w: %s has asset %T", ErrInvalidAsset, tx, tx.Asset)
	}
	sender, err := wallets.Wallet(tx.Sender)
	if err != nil {
		return err
	}
	if !sender.HasBusiness() {
		return fmt.Errorf("%w: %s", ErrBusinessNotRegistered, tx)
	}
	if err := ledger.Record(state.NewMutationEntry(tx)); err != nil {
		return err
	}
	if err := payFee(tx, sender); err != nil {
		return err
	}
	sender.Bridgechains[tx.Id] = &state.Bridgechain{
		Name:          asset.Name,
		SeedNodes:     append([]string(nil), asset.SeedNodes...),
		GenesisHash:   asset.GenesisHash,
		RepositoryURL: asset.RepositoryURL,
	}
	return nil
}

func (s *BridgechainRegistrationService) Revert(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	sender, err := wallets.Wallet(tx.Sender)
	if err != nil {
		return err
	}
	if _, ok := sender.Bridgechains[tx.Id]; !ok {
		return fmt.Errorf("%w: revert %s", ErrBridgechainNotFound, tx)
	}
	if _, err := takeEntry(tx, ledger); err != nil {
		return err
	}
	delete(sender.Bridgechains, tx.Id)
	return refundFee(tx, sender)
}
