package types

import (
	"time"

	"github.com/holiman/uint256"
)

// TxCreator builds sealed transactions. Timestamps come from Now so tests can
// pin them.
type TxCreator struct {
	Now func() time.Time
}

func (c *TxCreator) now() int64 {
	if c.Now == nil {
		return time.Now().Unix()
	}
	return c.Now().Unix()
}

func (c *TxCreator) seal(tx *Transaction) *Transaction {
	tx.Timestamp = c.now()
	tx.Id = tx.CalcTxHash()
	return tx
}

func (c *TxCreator) NewTransferTx(from, to Address, amount, fee uint64, nonce uint64) *Transaction {
	return c.seal(&Transaction{
		Type:      TxTypeTransfer,
		Sender:    from,
		Recipient: to,
		Amount:    *uint256.NewInt(amount),
		Fee:       *uint256.NewInt(fee),
		Nonce:     nonce,
	})
}

func (c *TxCreator) NewTimelockTransferTx(from, to Address, amount, fee uint64, nonce uint64, lock TimelockTransferAsset) *Transaction {
	return c.seal(&Transaction{
		Type:      TxTypeTimelockTransfer,
		Sender:    from,
		Recipient: to,
		Amount:    *uint256.NewInt(amount),
		Fee:       *uint256.NewInt(fee),
		Nonce:     nonce,
		Asset:     &lock,
	})
}

// NewAssetTx builds one of the registry tx types; the type is taken from the asset.
func (c *TxCreator) NewAssetTx(from Address, fee uint64, nonce uint64, asset Asset) *Transaction {
	return c.seal(&Transaction{
		Type:   asset.AssetType(),
		Sender: from,
		Fee:    *uint256.NewInt(fee),
		Nonce:  nonce,
		Asset:  asset,
	})
}
