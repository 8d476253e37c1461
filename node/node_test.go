package node

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/annchain/ogledger/core"
	"github.com/annchain/ogledger/core/snapshot"
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memConfig(t *testing.T) NodeConfig {
	return NodeConfig{
		Database:    ogdb.Config{Engine: ogdb.EngineMemory},
		Chain:       core.DefaultChainConfig(),
		SnapshotDir: filepath.Join(t.TempDir(), "snapshots"),
	}
}

func TestNode_Probe(t *testing.T) {
	n, err := NewNode(memConfig(t))
	require.NoError(t, err)
	defer n.Stop()

	assert.True(t, n.DatabaseReady())
	assert.True(t, n.SnapshotReady())

	unbound := &Node{}
	assert.False(t, unbound.DatabaseReady())
	assert.False(t, unbound.SnapshotReady())
}

func TestNode_RollbackExports(t *testing.T) {
	config := memConfig(t)
	n, err := NewNode(config)
	require.NoError(t, err)
	defer n.Stop()

	alice := types.HexToAddress("0x643d534e15a315173a3c18cd13c9f95c7484a9bc")
	bob := types.HexToAddress("0x3f3e2c3b1fd1e2d1f9b2e4d6c1a0b9e8d7c6b5a4")
	creator := &types.TxCreator{Now: func() time.Time { return time.Unix(1560000100, 0) }}
	genesis, err := n.Chain.Block(core.GenesisHeight)
	require.NoError(t, err)
	block := types.NewBlock(core.GenesisHeight+1, genesis.Hash, genesis.Timestamp+10,
		[]*types.Transaction{creator.NewTransferTx(alice, bob, 10, 1, 1)})
	require.NoError(t, n.Chain.ApplyBlock(block))

	service := n.RollbackService(true)
	require.NoError(t, service.RollbackByCount(context.Background(), 1, true))

	tip, err := n.Chain.CurrentHeight()
	require.NoError(t, err)
	assert.Equal(t, core.GenesisHeight, tip)

	files, err := filepath.Glob(filepath.Join(config.SnapshotDir, "rollback-2-2-*.txs"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	txs, err := snapshot.ReadExport(files[0], false)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, block.Transactions[0].Id, txs[0].Id)
}

func TestNode_LoadsGenesisFile(t *testing.T) {
	config := memConfig(t)
	config.GenesisFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewNode(config)
	assert.Error(t, err)
}
