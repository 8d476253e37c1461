package snapshot

//go:generate mockgen -source=interfaces.go -destination=mock_snapshot.go -package=snapshot

import (
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
)

// BlockStore serves blocks with their txs in forging order.
type BlockStore interface {
	GetBlock(height uint64) (*types.Block, error)
	CurrentHeight() (uint64, error)
	TruncateTo(height uint64) error
}

// BatchTruncater lets a BlockStore stage the truncation into the batch that
// carries the reverted state, making the rollback commit atomic. Forget drops
// any cached blocks in (to, from] and is called once the batch is written.
type BatchTruncater interface {
	TruncateInBatch(batch ogdb.Batch, height uint64) error
	Forget(from, to uint64)
}

// Exporter receives removed txs in forging order. Nothing may become visible
// before Flush.
type Exporter interface {
	Export(tx *types.Transaction) error
	Flush() error
}

// ServiceProbe is consulted once before a rollback starts.
type ServiceProbe interface {
	DatabaseReady() bool
	SnapshotReady() bool
}

// Suspender stops block application for the duration of a rollback.
type Suspender interface {
	Suspend() (resume func())
}
