package snapshot_test

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/annchain/ogledger/core"
	"github.com/annchain/ogledger/core/snapshot"
	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/core/transactions"
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	alice = types.HexToAddress("0x643d534e15a315173a3c18cd13c9f95c7484a9bc")
	bob   = types.HexToAddress("0x3f3e2c3b1fd1e2d1f9b2e4d6c1a0b9e8d7c6b5a4")

	originalSeeds = []string{"1.2.3.4", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"}
	updatedSeeds  = []string{"1.2.3.4", "127.0.0.1", "192.168.1.0", "131.107.0.89"}
)

type readyProbe struct {
	db, snapshot bool
}

func (p readyProbe) DatabaseReady() bool { return p.db }
func (p readyProbe) SnapshotReady() bool { return p.snapshot }

type fixture struct {
	t       *testing.T
	db      ogdb.Database
	chain   *core.Chain
	svc     *snapshot.RollbackService
	creator *types.TxCreator
	nonce   uint64
	blocks  []*types.Block
}

func newFixture(t *testing.T) *fixture {
	db := ogdb.NewMemDatabase()
	chain, err := core.NewChain(db, transactions.DefaultRegistry(), core.DefaultChainConfig())
	require.NoError(t, err)
	require.NoError(t, chain.Init(core.DefaultGenesis()))
	return &fixture{
		t:       t,
		db:      db,
		chain:   chain,
		svc:     snapshot.NewRollbackService(chain, readyProbe{true, true}, snapshot.NopExporter{}),
		creator: &types.TxCreator{Now: func() time.Time { return time.Unix(1560000100, 0) }},
	}
}

func (f *fixture) next() uint64 {
	f.nonce++
	return f.nonce
}

func (f *fixture) forge(txs ...*types.Transaction) *types.Block {
	tip := f.tip()
	prev, err := f.chain.Block(tip)
	require.NoError(f.t, err)
	block := types.NewBlock(tip+1, prev.Hash, prev.Timestamp+10, txs)
	require.NoError(f.t, f.chain.ApplyBlock(block))
	f.blocks = append(f.blocks, block)
	return block
}

func (f *fixture) tip() uint64 {
	tip, err := f.chain.CurrentHeight()
	require.NoError(f.t, err)
	return tip
}

func (f *fixture) wallet(addr types.Address) *state.Wallet {
	w, err := f.chain.Wallet(addr)
	require.NoError(f.t, err)
	return w
}

func (f *fixture) businessTx() *types.Transaction {
	return f.creator.NewAssetTx(alice, 10, f.next(), &types.BusinessRegistrationAsset{Name: "google", Website: "www.google.com"})
}

func (f *fixture) bridgechainTx() *types.Transaction {
	return f.creator.NewAssetTx(alice, 10, f.next(), &types.BridgechainRegistrationAsset{
		Name:          "cryptoProject",
		SeedNodes:     originalSeeds,
		GenesisHash:   "127e6fbfe24a750e72930c220a8e138275656b8e5d8f48a98c3c92df2caba935",
		RepositoryURL: "www.organizationRepository.com/myorg/myrepo",
	})
}

func (f *fixture) updateTx(id types.Hash, seeds []string) *types.Transaction {
	return f.creator.NewAssetTx(alice, 10, f.next(), &types.BridgechainUpdateAsset{RegisteredBridgechainId: id, SeedNodes: seeds})
}

// setup forges genesis(1) <- business(2) <- bridgechain(3) <- update(4).
func (f *fixture) setup() (chainTx, update *types.Transaction) {
	chainTx = f.bridgechainTx()
	update = f.updateTx(chainTx.Id, updatedSeeds)
	f.forge(f.businessTx())
	f.forge(chainTx, f.creator.NewTransferTx(alice, bob, 500, 1, f.next()))
	f.forge(update)
	return
}

func TestRollback_Scenario(t *testing.T) {
	f := newFixture(t)
	chainTx, _ := f.setup()
	require.Equal(t, uint64(4), f.tip())
	assert.Equal(t, updatedSeeds, f.wallet(alice).Bridgechains[chainTx.Id].SeedNodes)

	require.NoError(t, f.svc.RollbackToHeight(context.Background(), 3, false))

	assert.Equal(t, uint64(3), f.tip())
	assert.Equal(t, originalSeeds, f.wallet(alice).Bridgechains[chainTx.Id].SeedNodes)
	_, err := f.chain.Block(4)
	assert.True(t, errors.Is(err, core.ErrBlockNotFound))
}

func TestRollback_TwoUpdatesRestoreRegistrationSeeds(t *testing.T) {
	f := newFixture(t)
	chainTx, _ := f.setup()
	f.forge(f.updateTx(chainTx.Id, []string{"10.0.0.1", "10.0.0.2"}))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, f.wallet(alice).Bridgechains[chainTx.Id].SeedNodes)

	require.NoError(t, f.svc.RollbackByCount(context.Background(), 2, false))
	assert.Equal(t, uint64(3), f.tip())
	assert.Equal(t, originalSeeds, f.wallet(alice).Bridgechains[chainTx.Id].SeedNodes)
}

func TestRollback_ToGenesisClearsEverything(t *testing.T) {
	f := newFixture(t)
	genesisAlice := f.wallet(alice)
	f.setup()

	require.NoError(t, f.svc.RollbackToHeight(context.Background(), core.GenesisHeight, false))
	assert.Equal(t, genesisAlice, f.wallet(alice), spew.Sdump(f.wallet(alice)))
	assert.True(t, f.wallet(bob).Empty())
	for _, b := range f.blocks {
		for _, tx := range b.Transactions {
			has, err := f.chain.Ledger().Has(tx.Id)
			require.NoError(t, err)
			assert.False(t, has, "entry of %s left behind", tx)
		}
	}
}

func TestRollback_ReapplyIsDeterministic(t *testing.T) {
	f := newFixture(t)
	f.setup()
	f.forge(f.creator.NewTransferTx(bob, alice, 100, 1, f.next()))
	beforeAlice, beforeBob := f.wallet(alice), f.wallet(bob)
	tip := f.tip()

	require.NoError(t, f.svc.RollbackByCount(context.Background(), 3, false))
	assert.NotEqual(t, beforeAlice, f.wallet(alice))

	for _, block := range f.blocks[len(f.blocks)-3:] {
		require.NoError(t, f.chain.ApplyBlock(block))
	}
	assert.Equal(t, tip, f.tip())
	assert.Equal(t, beforeAlice, f.wallet(alice))
	assert.Equal(t, beforeBob, f.wallet(bob))
}

func TestRollback_InvalidTarget(t *testing.T) {
	f := newFixture(t)
	f.setup()
	before := f.wallet(alice)

	for _, target := range []uint64{0, 5, 100} {
		err := f.svc.RollbackToHeight(context.Background(), target, false)
		assert.True(t, errors.Is(err, snapshot.ErrInvalidTarget), "target %d: %v", target, err)
		var re *snapshot.RollbackError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, target, re.Height)
	}
	err := f.svc.RollbackByCount(context.Background(), 4, false)
	assert.True(t, errors.Is(err, snapshot.ErrInvalidTarget))

	assert.Equal(t, uint64(4), f.tip())
	assert.Equal(t, before, f.wallet(alice))

	// rolling back to the tip is a no-op
	assert.NoError(t, f.svc.RollbackToHeight(context.Background(), 4, false))
	assert.NoError(t, f.svc.RollbackByCount(context.Background(), 0, false))
	assert.Equal(t, uint64(4), f.tip())
}

func TestRollback_ServiceUnavailable(t *testing.T) {
	f := newFixture(t)
	f.setup()

	for _, probe := range []snapshot.ServiceProbe{nil, readyProbe{false, true}, readyProbe{true, false}} {
		f.svc.Probe = probe
		err := f.svc.RollbackToHeight(context.Background(), 2, false)
		assert.True(t, errors.Is(err, snapshot.ErrServiceUnavailable), "%v", probe)
	}

	f.svc.Probe = readyProbe{true, true}
	f.svc.Exporter = nil
	err := f.svc.RollbackToHeight(context.Background(), 2, true)
	assert.True(t, errors.Is(err, snapshot.ErrServiceUnavailable))
	assert.Equal(t, uint64(4), f.tip())
}

func TestRollback_ProbedOnce(t *testing.T) {
	f := newFixture(t)
	f.setup()
	ctrl := gomock.NewController(t)
	probe := snapshot.NewMockServiceProbe(ctrl)
	probe.EXPECT().DatabaseReady().Return(true).Times(1)
	probe.EXPECT().SnapshotReady().Return(true).Times(1)
	f.svc.Probe = probe

	require.NoError(t, f.svc.RollbackByCount(context.Background(), 3, false))
	assert.Equal(t, core.GenesisHeight, f.tip())
}

func TestRollback_Request(t *testing.T) {
	f := newFixture(t)
	f.setup()

	err := f.svc.Rollback(context.Background(), snapshot.Request{})
	assert.True(t, errors.Is(err, snapshot.ErrMissingTarget))

	height, count := uint64(3), uint64(3)
	require.NoError(t, f.svc.Rollback(context.Background(), snapshot.Request{Height: &height, Count: &count}))
	assert.Equal(t, uint64(3), f.tip(), "height takes precedence over count")

	count = 1
	require.NoError(t, f.svc.Rollback(context.Background(), snapshot.Request{Count: &count}))
	assert.Equal(t, uint64(2), f.tip())
}

func TestRollback_RevertFailureKeepsChain(t *testing.T) {
	f := newFixture(t)
	chainTx, update := f.setup()
	beforeAlice := f.wallet(alice)

	// corrupt the ledger: the update entry vanishes
	_, err := f.chain.Ledger().Take(update.Id)
	require.NoError(t, err)

	err = f.svc.RollbackToHeight(context.Background(), 2, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, snapshot.ErrRevertFailure))
	assert.True(t, errors.Is(err, state.ErrEntryMissing))
	var re *snapshot.RollbackError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, uint64(4), re.Height)
	assert.Equal(t, update.Id, re.TxId)

	assert.Equal(t, uint64(4), f.tip())
	assert.Equal(t, beforeAlice, f.wallet(alice))
	has, err := f.chain.Ledger().Has(chainTx.Id)
	require.NoError(t, err)
	assert.True(t, has)
	_, err = f.chain.Block(4)
	assert.NoError(t, err)
}

func TestRollback_CanceledBeforeFirstBlock(t *testing.T) {
	f := newFixture(t)
	f.setup()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.svc.RollbackToHeight(ctx, 2, false)
	assert.True(t, errors.Is(err, snapshot.ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(4), f.tip())
}

func TestRollback_ExportsInForgingOrder(t *testing.T) {
	f := newFixture(t)
	f.setup()
	b3, b4 := f.blocks[1], f.blocks[2]

	ctrl := gomock.NewController(t)
	exp := snapshot.NewMockExporter(ctrl)
	gomock.InOrder(
		exp.EXPECT().Export(b3.Transactions[0]).Return(nil),
		exp.EXPECT().Export(b3.Transactions[1]).Return(nil),
		exp.EXPECT().Export(b4.Transactions[0]).Return(nil),
		exp.EXPECT().Flush().Return(nil),
	)
	f.svc.Exporter = exp

	require.NoError(t, f.svc.RollbackToHeight(context.Background(), 2, true))
	assert.Equal(t, uint64(2), f.tip())
}

func TestRollback_ExportFailureKeepsChain(t *testing.T) {
	f := newFixture(t)
	f.setup()
	before := f.wallet(alice)

	ctrl := gomock.NewController(t)
	exp := snapshot.NewMockExporter(ctrl)
	exp.EXPECT().Export(gomock.Any()).Return(nil).AnyTimes()
	exp.EXPECT().Flush().Return(errors.New("disk full"))
	f.svc.Exporter = exp

	err := f.svc.RollbackToHeight(context.Background(), 2, true)
	assert.True(t, errors.Is(err, snapshot.ErrExportFailure))
	assert.Equal(t, uint64(4), f.tip())
	assert.Equal(t, before, f.wallet(alice))
}

func TestRollback_StoreWithoutBatchTruncate(t *testing.T) {
	f := newFixture(t)
	chainTx, _ := f.setup()
	acc := f.chain.Accessor()

	ctrl := gomock.NewController(t)
	blocks := snapshot.NewMockBlockStore(ctrl)
	blocks.EXPECT().CurrentHeight().DoAndReturn(acc.CurrentHeight).AnyTimes()
	blocks.EXPECT().GetBlock(gomock.Any()).DoAndReturn(acc.GetBlock).Times(2)
	blocks.EXPECT().TruncateTo(uint64(2)).DoAndReturn(acc.TruncateTo).Times(1)
	f.svc.Blocks = blocks

	require.NoError(t, f.svc.RollbackToHeight(context.Background(), 2, false))
	assert.Equal(t, uint64(2), f.tip())
	assert.Empty(t, f.wallet(alice).Bridgechains[chainTx.Id])
}

type truncatingStore struct {
	*snapshot.MockBlockStore
	*snapshot.MockBatchTruncater
}

func TestRollback_ForgetsCachedBlocksAfterWrite(t *testing.T) {
	f := newFixture(t)
	f.setup()
	acc := f.chain.Accessor()
	stale, err := f.chain.Block(4)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	blocks := snapshot.NewMockBlockStore(ctrl)
	blocks.EXPECT().CurrentHeight().DoAndReturn(acc.CurrentHeight).AnyTimes()
	blocks.EXPECT().GetBlock(gomock.Any()).DoAndReturn(acc.GetBlock).Times(2)
	truncater := snapshot.NewMockBatchTruncater(ctrl)
	truncater.EXPECT().TruncateInBatch(gomock.Any(), uint64(2)).DoAndReturn(acc.TruncateInBatch).Times(1)
	truncater.EXPECT().Forget(uint64(4), uint64(2)).Do(func(from, to uint64) {
		// the batch is already on disk
		tip, err := acc.ReadTip()
		require.NoError(t, err)
		assert.Equal(t, uint64(2), tip)
		acc.Forget(from, to)
	}).Times(1)
	f.svc.Blocks = truncatingStore{blocks, truncater}

	require.NoError(t, f.svc.RollbackToHeight(context.Background(), 2, false))
	_, err = f.chain.Block(4)
	assert.True(t, errors.Is(err, core.ErrBlockNotFound))

	f.forge()
	replaced := f.forge()
	assert.Equal(t, uint64(4), replaced.Height)
	got, err := f.chain.Block(4)
	require.NoError(t, err)
	assert.NotEqual(t, stale.Hash, got.Hash)
	assert.Equal(t, replaced.Hash, got.Hash)
}

func TestRollback_FileExport(t *testing.T) {
	dir, err := ioutil.TempDir("", "rollback_export")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	for _, skip := range []bool{false, true} {
		f := newFixture(t)
		f.setup()
		exporter := snapshot.NewFileExporter(dir, skip)
		f.svc.Exporter = exporter

		require.NoError(t, f.svc.RollbackByCount(context.Background(), 2, true))
		require.NotEmpty(t, exporter.LastFile())

		txs, err := snapshot.ReadExport(exporter.LastFile(), !skip)
		require.NoError(t, err)
		want := append(append([]*types.Transaction{}, f.blocks[1].Transactions...), f.blocks[2].Transactions...)
		assert.Equal(t, want, txs)
	}
}

// unencodableAsset fails to encode.
type unencodableAsset struct{}

func (unencodableAsset) AssetType() types.TxType { return types.TxTypeTransfer }
func (unencodableAsset) Validate() error { return nil }
func (unencodableAsset) MarshalMsg(b []byte) ([]byte, error) {
	return b, errors.New("cannot encode")
}
func (unencodableAsset) UnmarshalMsg(b []byte) ([]byte, error) { return b, nil }

func TestFileExporter_FailedExportIsDropped(t *testing.T) {
	creator := &types.TxCreator{Now: func() time.Time { return time.Unix(1560000100, 0) }}
	exporter := snapshot.NewFileExporter(t.TempDir(), true)

	aborted := creator.NewTransferTx(alice, bob, 1, 1, 1)
	aborted.BlockHeight = 2
	require.NoError(t, exporter.Export(aborted))
	broken := *aborted
	broken.Asset = unencodableAsset{}
	require.Error(t, exporter.Export(&broken))

	kept := creator.NewTransferTx(alice, bob, 2, 1, 2)
	kept.BlockHeight = 3
	require.NoError(t, exporter.Export(kept))
	require.NoError(t, exporter.Flush())

	assert.Contains(t, filepath.Base(exporter.LastFile()), "rollback-3-3-")
	txs, err := snapshot.ReadExport(exporter.LastFile(), false)
	require.NoError(t, err)
	assert.Equal(t, []*types.Transaction{kept}, txs, spew.Sdump(txs))
}
