package core_test

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/annchain/ogledger/core"
	"github.com/annchain/ogledger/core/transactions"
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = types.HexToAddress("0x643d534e15a315173a3c18cd13c9f95c7484a9bc")
	bob   = types.HexToAddress("0x3f3e2c3b1fd1e2d1f9b2e4d6c1a0b9e8d7c6b5a4")
)

func newTestLDB(t *testing.T) (*ogdb.LevelDB, func()) {
	dirname, err := ioutil.TempDir(os.TempDir(), "ogledger_test_")
	require.NoError(t, err)
	db, err := ogdb.NewLevelDB(dirname, 0, 0)
	require.NoError(t, err)
	return db, func() {
		db.Close()
		os.RemoveAll(dirname)
	}
}

func newTestChain(t *testing.T, db ogdb.Database) *core.Chain {
	chain, err := core.NewChain(db, transactions.DefaultRegistry(), core.DefaultChainConfig())
	require.NoError(t, err)
	require.NoError(t, chain.Init(core.DefaultGenesis()))
	return chain
}

func nextBlock(t *testing.T, chain *core.Chain, txs ...*types.Transaction) *types.Block {
	tip, err := chain.CurrentHeight()
	require.NoError(t, err)
	prev, err := chain.Block(tip)
	require.NoError(t, err)
	return types.NewBlock(tip+1, prev.Hash, prev.Timestamp+10, txs)
}

var creator = &types.TxCreator{Now: func() time.Time { return time.Unix(1560000100, 0) }}

func TestChain_Genesis(t *testing.T) {
	db, remove := newTestLDB(t)
	defer remove()
	chain := newTestChain(t, db)

	tip, err := chain.CurrentHeight()
	require.NoError(t, err)
	assert.Equal(t, core.GenesisHeight, tip)

	w, err := chain.Wallet(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10000000000), w.Balance.Uint64())

	// a second init keeps the existing chain
	require.NoError(t, chain.Init(&core.Genesis{}))
	w, err = chain.Wallet(alice)
	require.NoError(t, err)
	assert.False(t, w.Balance.IsZero())
}

func TestChain_ApplyBlock(t *testing.T) {
	db, remove := newTestLDB(t)
	defer remove()
	chain := newTestChain(t, db)

	block := nextBlock(t, chain,
		creator.NewTransferTx(alice, bob, 100, 1, 1),
		creator.NewTransferTx(bob, alice, 50, 1, 1),
	)
	require.NoError(t, chain.ApplyBlock(block))

	tip, _ := chain.CurrentHeight()
	assert.Equal(t, uint64(2), tip)
	w, _ := chain.Wallet(bob)
	assert.Equal(t, uint64(49), w.Balance.Uint64())
	stored, err := chain.Block(2)
	require.NoError(t, err)
	assert.Equal(t, block.Hash, stored.Hash)

	// reopening the store yields the same state
	chain2, err := core.NewChain(db, transactions.DefaultRegistry(), core.DefaultChainConfig())
	require.NoError(t, err)
	w2, err := chain2.Wallet(bob)
	require.NoError(t, err)
	assert.Equal(t, w, w2)
}

func TestChain_RejectedTxDropsBlock(t *testing.T) {
	db, remove := newTestLDB(t)
	defer remove()
	chain := newTestChain(t, db)
	before, _ := chain.Wallet(alice)

	block := nextBlock(t, chain,
		creator.NewTransferTx(alice, bob, 100, 1, 1),
		creator.NewTransferTx(bob, alice, 500, 1, 1),
	)
	err := chain.ApplyBlock(block)
	assert.True(t, errors.Is(err, transactions.ErrInsufficientBalance))
	assert.True(t, transactions.IsRejection(err))

	after, _ := chain.Wallet(alice)
	assert.Equal(t, before, after)
	tip, _ := chain.CurrentHeight()
	assert.Equal(t, core.GenesisHeight, tip)
}

func TestChain_BlockLinkage(t *testing.T) {
	db := ogdb.NewMemDatabase()
	chain := newTestChain(t, db)

	block := nextBlock(t, chain)
	bad := types.NewBlock(block.Height+1, block.PrevHash, block.Timestamp, nil)
	assert.True(t, errors.Is(chain.ApplyBlock(bad), core.ErrBlockHeight))

	bad = types.NewBlock(block.Height, types.Sha3Hash([]byte("x")), block.Timestamp, nil)
	assert.True(t, errors.Is(chain.ApplyBlock(bad), core.ErrBlockPrevHash))

	bad = nextBlock(t, chain)
	bad.Timestamp++
	assert.True(t, errors.Is(chain.ApplyBlock(bad), core.ErrBlockHash))

	tx := creator.NewTransferTx(alice, bob, 1, 1, 1)
	bad = nextBlock(t, chain, tx)
	tx.Nonce = 9
	assert.True(t, errors.Is(chain.ApplyBlock(bad), core.ErrTxHash))
}

func TestChain_SuspendBlocksApply(t *testing.T) {
	chain := newTestChain(t, ogdb.NewMemDatabase())
	resume := chain.Suspend()
	assert.True(t, chain.Suspended())
	assert.Equal(t, core.ErrChainSuspended, chain.ApplyBlock(nextBlock(t, chain)))
	resume()
	assert.False(t, chain.Suspended())
	assert.NoError(t, chain.ApplyBlock(nextBlock(t, chain)))
}

func TestChain_CheckTransaction(t *testing.T) {
	chain := newTestChain(t, ogdb.NewMemDatabase())
	assert.NoError(t, chain.CheckTransaction(creator.NewTransferTx(alice, bob, 1, 1, 1)))

	err := chain.CheckTransaction(creator.NewTransferTx(bob, alice, 1, 1, 1))
	assert.True(t, errors.Is(err, transactions.ErrInsufficientBalance))

	tx := creator.NewAssetTx(alice, 1, 2, &types.BusinessRegistrationAsset{Name: "google", Website: "www.google.com"})
	tx.Type = types.TxType(99)
	tx.Id = tx.CalcTxHash()
	assert.True(t, errors.Is(chain.CheckTransaction(tx), transactions.ErrUnknownTransactionType))
}

func TestAccessor_Truncate(t *testing.T) {
	db := ogdb.NewMemDatabase()
	chain := newTestChain(t, db)
	for i := 0; i < 3; i++ {
		require.NoError(t, chain.ApplyBlock(nextBlock(t, chain)))
	}
	acc := chain.Accessor()
	_, err := acc.ReadBlock(4)
	require.NoError(t, err)

	require.NoError(t, acc.TruncateTo(2))
	tip, _ := acc.CurrentHeight()
	assert.Equal(t, uint64(2), tip)
	_, err = acc.ReadBlock(4)
	assert.True(t, errors.Is(err, core.ErrBlockNotFound))
	_, err = acc.ReadBlock(2)
	assert.NoError(t, err)

	assert.Error(t, acc.TruncateTo(3))
}

func TestAccessor_StagedTruncateKeepsCacheCoherent(t *testing.T) {
	db := ogdb.NewMemDatabase()
	chain := newTestChain(t, db)
	for i := 0; i < 3; i++ {
		require.NoError(t, chain.ApplyBlock(nextBlock(t, chain)))
	}
	acc := chain.Accessor()
	old, err := acc.ReadBlock(3)
	require.NoError(t, err)

	batch := db.NewBatch()
	require.NoError(t, acc.TruncateInBatch(batch, 2))
	// a read between staging and writing reloads from the unchanged store
	staged, err := acc.ReadBlock(3)
	require.NoError(t, err)
	assert.Equal(t, old.Hash, staged.Hash)
	_, err = acc.ReadBlock(4)
	require.NoError(t, err)

	require.NoError(t, batch.Write())
	acc.Forget(4, 2)
	_, err = acc.ReadBlock(4)
	assert.True(t, errors.Is(err, core.ErrBlockNotFound))

	prev, err := chain.Block(2)
	require.NoError(t, err)
	replaced := types.NewBlock(3, prev.Hash, prev.Timestamp+20, nil)
	require.NotEqual(t, old.Hash, replaced.Hash)
	require.NoError(t, chain.ApplyBlock(replaced))

	got, err := chain.Block(3)
	require.NoError(t, err)
	assert.Equal(t, replaced.Hash, got.Hash)
}

func TestChain_ApplyBlockReplacesCachedHeight(t *testing.T) {
	db := ogdb.NewMemDatabase()
	chain := newTestChain(t, db)
	require.NoError(t, chain.ApplyBlock(nextBlock(t, chain)))
	old, err := chain.Block(2)
	require.NoError(t, err)

	// truncate without eviction so the cache still holds the old block
	acc := chain.Accessor()
	batch := db.NewBatch()
	require.NoError(t, acc.TruncateInBatch(batch, 1))
	require.NoError(t, batch.Write())

	prev, err := chain.Block(1)
	require.NoError(t, err)
	replaced := types.NewBlock(2, prev.Hash, prev.Timestamp+20, nil)
	require.NoError(t, chain.ApplyBlock(replaced))

	got, err := chain.Block(2)
	require.NoError(t, err)
	assert.NotEqual(t, old.Hash, got.Hash)
	assert.Equal(t, replaced.Hash, got.Hash)
}

func TestGenesis_Load(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.yaml")
	content := `timestamp: 1560000000
allocations:
  - address: "0x643d534e15a315173a3c18cd13c9f95c7484a9bc"
    balance: "100000000000000000000000"
`
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	g, err := core.LoadGenesis(path)
	require.NoError(t, err)
	wallets, err := g.Wallets()
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "100000000000000000000000", wallets[0].Balance.Dec())
	assert.Equal(t, core.GenesisHeight, g.Block().Height)

	_, err = core.ParseGenesis([]byte("allocations:\n  - address: nothex\n    balance: \"1\"\n"))
	assert.Error(t, err)
	_, err = core.ParseGenesis([]byte("allocations:\n  - address: \"0x643d534e15a315173a3c18cd13c9f95c7484a9bc\"\n    balance: \"abc\"\n"))
	assert.Error(t, err)
}
