package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = HexToAddress("0x0b5d53f433b7e4a4f853a01e987f977497dda262")
	bob   = HexToAddress("0x3f3e2c3b1fd1e2d1f9b2e4d6c1a0b9e8d7c6b5a4")
)

func fixedCreator() *TxCreator {
	return &TxCreator{Now: func() time.Time { return time.Unix(1560000000, 0) }}
}

func TestTxIdExcludesBlockHeight(t *testing.T) {
	tx := fixedCreator().NewTransferTx(alice, bob, 10, 1, 1)
	id := tx.Id
	tx.BlockHeight = 99
	assert.Equal(t, id, tx.CalcTxHash())

	tx.Nonce = 2
	assert.NotEqual(t, id, tx.CalcTxHash())
}

func TestTxMarshal(t *testing.T) {
	c := fixedCreator()
	txs := []*Transaction{
		c.NewTransferTx(alice, bob, 10, 1, 1),
		c.NewTimelockTransferTx(alice, bob, 10, 1, 2, TimelockTransferAsset{Timelock: 77, TimelockType: TimelockByHeight}),
		c.NewAssetTx(alice, 5, 3, &BusinessRegistrationAsset{Name: "google", Website: "www.google.com"}),
		c.NewAssetTx(alice, 5, 4, &BridgechainRegistrationAsset{
			Name:          "cryptoProject",
			SeedNodes:     []string{"1.2.3.4", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
			GenesisHash:   "127e6fbfe24a750e72930c220a8e138275656b8e5d8f48a98c3c92df2caba935",
			RepositoryURL: "www.organizationRepository.com/myorg/myrepo",
		}),
		c.NewAssetTx(alice, 5, 5, &BridgechainUpdateAsset{RegisteredBridgechainId: Sha3Hash([]byte("b")), RepositoryURL: "x.org"}),
		c.NewAssetTx(alice, 5, 6, &BridgechainResignationAsset{RegisteredBridgechainId: Sha3Hash([]byte("b"))}),
	}
	block := NewBlock(3, Sha3Hash([]byte("prev")), 1560000001, txs)

	data, err := block.MarshalMsg(nil)
	require.NoError(t, err)

	back := &Block{}
	rest, err := back.UnmarshalMsg(data)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, block, back)
	assert.Equal(t, block.Hash, back.CalcHash())
	for _, tx := range back.Transactions {
		assert.Equal(t, uint64(3), tx.BlockHeight)
		assert.Equal(t, tx.Id, tx.CalcTxHash())
	}
}

func TestTxUnmarshalTruncated(t *testing.T) {
	tx := fixedCreator().NewTransferTx(alice, bob, 10, 1, 1)
	data, err := tx.MarshalMsg(nil)
	require.NoError(t, err)

	_, err = (&Transaction{}).UnmarshalMsg(data[:len(data)-4])
	assert.Error(t, err)
}

func TestTouched(t *testing.T) {
	c := fixedCreator()
	assert.Equal(t, []Address{alice, bob}, c.NewTransferTx(alice, bob, 1, 1, 1).Touched())
	assert.Equal(t, []Address{alice}, c.NewTransferTx(alice, alice, 1, 1, 1).Touched())
	assert.Equal(t, []Address{alice}, c.NewAssetTx(alice, 1, 1, &BusinessRegistrationAsset{Name: "n", Website: "w"}).Touched())
}
