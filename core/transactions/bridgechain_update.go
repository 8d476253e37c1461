package transactions

import (
	"fmt"

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
)

// BridgechainUpdateService overwrites the seed nodes and, when present, the
// repository of a live bridgechain. The entry keeps the overwritten values.
type BridgechainUpdateService struct{}

func (s *BridgechainUpdateService) Type() types.TxType { return types.TxTypeBridgechainUpdate }

func (s *BridgechainUpdateService) CanBeApplied(tx *types.Transaction, wallet *state.Wallet) error {
	if err := checkGeneric(tx, wallet); err != nil {
		return err
	}
	asset, ok := tx.Asset.(*types.BridgechainUpdateAsset)
	if !ok || asset == nil {
		return reject(tx, ErrInvalidAsset, "asset %T", tx.Asset)
	}
	return checkLiveBridgechain(tx, wallet, asset.RegisteredBridgechainId)
}

// checkLiveBridgechain is shared by update and resignation. The bridgechain
// must sit in the sender's own registry under a registered business.
func checkLiveBridgechain(tx *types.Transaction, wallet *state.Wallet, id types.Hash) error {
	chain, ok := wallet.Bridgechains[id]
	if !ok {
		return reject(tx, ErrBridgechainNotFound, "id %s", id.Hex())
	}
	if !wallet.HasBusiness() {
		return reject(tx, ErrNotRecordOwner, "wallet %s has no registered business", wallet.Address.Hex())
	}
	if chain.Resigned {
		return reject(tx, ErrBridgechainResigned, "%q", chain.Name)
	}
	return nil
}

func (s *BridgechainUpdateService) Apply(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	asset, ok := tx.Asset.(*types.BridgechainUpdateAsset)
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
	if chain.Resigned {
		return fmt.Errorf("%w: %s", ErrBridgechainResigned, tx)
	}

	entry := state.NewMutationEntry(tx)
	entry.PrevSeedNodes = append([]string(nil), chain.SeedNodes...)
	entry.PrevRepositoryURL = chain.RepositoryURL
	if err := ledger.Record(entry); err != nil {
		return err
	}
	if err := payFee(tx, sender); err != nil {
		return err
	}
	if len(asset.SeedNodes) > 0 {
		chain.SeedNodes = append([]string(nil), asset.SeedNodes...)
	}
	if asset.RepositoryURL != "" {
		chain.RepositoryURL = asset.RepositoryURL
	}
	return nil
}

func (s *BridgechainUpdateService) Revert(tx *types.Transaction, wallets state.WalletSet, ledger state.MutationLedger) error {
	asset, ok := tx.Asset.(*types.BridgechainUpdateAsset)
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
	chain.SeedNodes = entry.PrevSeedNodes
	chain.RepositoryURL = entry.PrevRepositoryURL
	return refundFee(tx, sender)
}
