// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package snapshot

import (
	"context"
	"fmt"

	"github.com/annchain/ogledger/core"
	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/core/transactions"
	"github.com/annchain/ogledger/mylog"
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Request selects the rollback target. Height wins over Count.
type Request struct {
	Height *uint64
	Count  *uint64
	Export bool
}

// RollbackService reverts the trailing blocks of the chain. All reverts are
// staged in memory; state, mutation ledger and chain truncation are only
// written once every tx of the range reverted and the export was flushed.
type RollbackService struct {
	Blocks   BlockStore
	Chain    Suspender
	Probe    ServiceProbe
	Registry *transactions.Registry
	Wallets  *state.WalletStore
	Ledger   *state.PersistentLedger
	Database ogdb.Database
	Exporter Exporter

	running atomic.Bool
}

func NewRollbackService(chain *core.Chain, probe ServiceProbe, exporter Exporter) *RollbackService {
	return &RollbackService{
		Blocks:   chain.Accessor(),
		Chain:    chain,
		Probe:    probe,
		Registry: chain.Registry(),
		Wallets:  chain.WalletStore(),
		Ledger:   chain.Ledger(),
		Database: chain.Database(),
		Exporter: exporter,
	}
}

// Rollback dispatches a request. Without height or count it fails with ErrMissingTarget.
func (s *RollbackService) Rollback(ctx context.Context, req Request) error {
	if err := s.checkServices(req.Export); err != nil {
		return err
	}
	switch {
	case req.Height != nil:
		return s.run(ctx, req.Export, toHeight(*req.Height))
	case req.Count != nil:
		return s.run(ctx, req.Export, byCount(*req.Count))
	default:
		return &RollbackError{Kind: ErrMissingTarget}
	}
}

// RollbackToHeight reverts every block above target.
func (s *RollbackService) RollbackToHeight(ctx context.Context, target uint64, export bool) error {
	if err := s.checkServices(export); err != nil {
		return err
	}
	return s.run(ctx, export, toHeight(target))
}

// RollbackByCount reverts the last count blocks.
func (s *RollbackService) RollbackByCount(ctx context.Context, count uint64, export bool) error {
	if err := s.checkServices(export); err != nil {
		return err
	}
	return s.run(ctx, export, byCount(count))
}

type targetResolver func(current uint64) (uint64, error)

func toHeight(target uint64) targetResolver {
	return func(current uint64) (uint64, error) {
		if target < core.GenesisHeight || target > current {
			return 0, &RollbackError{
				Kind:   ErrInvalidTarget,
				Height: target,
				Err:    fmt.Errorf("target outside [%d, %d]", core.GenesisHeight, current),
			}
		}
		return target, nil
	}
}

func byCount(count uint64) targetResolver {
	return func(current uint64) (uint64, error) {
		if count > current-core.GenesisHeight {
			return 0, newRollbackError(ErrInvalidTarget, "count %d from tip %d passes genesis %d", count, current, core.GenesisHeight)
		}
		return current - count, nil
	}
}

func (s *RollbackService) checkServices(export bool) error {
	if s.Probe == nil || !s.Probe.DatabaseReady() {
		return newRollbackError(ErrServiceUnavailable, "database service not bound")
	}
	if !s.Probe.SnapshotReady() || (export && s.Exporter == nil) {
		return newRollbackError(ErrServiceUnavailable, "snapshot service not bound")
	}
	return nil
}

func (s *RollbackService) run(ctx context.Context, export bool, resolve targetResolver) error {
	if !s.running.CAS(false, true) {
		return newRollbackError(ErrServiceUnavailable, "another rollback is running")
	}
	defer s.running.Store(false)

	resume := s.Chain.Suspend()
	defer resume()

	current, err := s.Blocks.CurrentHeight()
	if err != nil {
		return newRollbackError(ErrServiceUnavailable, "read tip: %v", err)
	}
	target, err := resolve(current)
	if err != nil {
		return err
	}
	logger := mylog.RollbackLogger.WithField("session", uuid.New().String()).
		WithField("from", current).
		WithField("to", target)
	if target == current {
		logger.Info("rollback target is the tip, nothing to do")
		return nil
	}
	logger.Info("rollback started")

	sd := state.NewStateDB(s.Wallets, s.Ledger)
	removed, err := s.revertRange(ctx, sd, current, target)
	if err != nil {
		logger.WithError(err).Error("rollback aborted, nothing persisted")
		return err
	}
	if export {
		if err := s.export(removed); err != nil {
			logger.WithError(err).Error("rollback aborted, nothing persisted")
			return err
		}
	}
	if err := s.commit(sd, current, target); err != nil {
		logger.WithError(err).Error("rollback commit failed")
		return err
	}
	logger.WithField("txs", len(removed)).WithField("exported", export).Info("rollback finished")
	return nil
}

// revertRange walks blocks from current down to target+1 and their txs in
// reverse order. It returns the removed txs in forging order.
func (s *RollbackService) revertRange(ctx context.Context, sd *state.StateDB, current, target uint64) ([]*types.Transaction, error) {
	var reversed []*types.Transaction
	for h := current; h > target; h-- {
		// cancellation is honoured between blocks only
		select {
		case <-ctx.Done():
			return nil, &RollbackError{Kind: ErrCanceled, Height: h, Err: ctx.Err()}
		default:
		}
		block, err := s.Blocks.GetBlock(h)
		if err != nil {
			return nil, &RollbackError{Kind: ErrRevertFailure, Height: h, Err: err}
		}
		if err := s.revertBlock(sd, block); err != nil {
			return nil, err
		}
		for i := len(block.Transactions) - 1; i >= 0; i-- {
			reversed = append(reversed, block.Transactions[i])
		}
		logrus.WithField("height", h).WithField("txs", len(block.Transactions)).Debug("block reverted")
	}
	removed := make([]*types.Transaction, len(reversed))
	for i, tx := range reversed {
		removed[len(reversed)-1-i] = tx
	}
	return removed, nil
}

func (s *RollbackService) revertBlock(sd *state.StateDB, block *types.Block) error {
	var touched []types.Address
	for _, tx := range block.Transactions {
		touched = append(touched, tx.Touched()...)
	}
	unlock := s.Wallets.Lock(touched...)
	defer unlock()

	for i := len(block.Transactions) - 1; i >= 0; i-- {
		tx := block.Transactions[i]
		if err := s.Registry.Revert(tx, sd, sd); err != nil {
			return &RollbackError{Kind: ErrRevertFailure, Height: block.Height, TxId: tx.Id, Err: err}
		}
	}
	return nil
}

func (s *RollbackService) export(removed []*types.Transaction) error {
	for _, tx := range removed {
		if err := s.Exporter.Export(tx); err != nil {
			return &RollbackError{Kind: ErrExportFailure, Height: tx.BlockHeight, TxId: tx.Id, Err: err}
		}
	}
	if err := s.Exporter.Flush(); err != nil {
		return &RollbackError{Kind: ErrExportFailure, Err: err}
	}
	return nil
}

// commit writes the staged state. With a BatchTruncater the truncation rides
// in the same batch; otherwise the chain is truncated right after the state
// write and a crash between the two leaves blocks above the reverted state.
func (s *RollbackService) commit(sd *state.StateDB, current, target uint64) error {
	batch := s.Database.NewBatch()
	if err := sd.CommitTo(batch); err != nil {
		return &RollbackError{Kind: ErrRevertFailure, Height: target, Err: err}
	}
	bt, atomicTruncate := s.Blocks.(BatchTruncater)
	if atomicTruncate {
		if err := bt.TruncateInBatch(batch, target); err != nil {
			return &RollbackError{Kind: ErrRevertFailure, Height: target, Err: err}
		}
	}
	if err := batch.Write(); err != nil {
		return &RollbackError{Kind: ErrRevertFailure, Height: target, Err: err}
	}
	sd.Flushed()
	if atomicTruncate {
		bt.Forget(current, target)
	} else if err := s.Blocks.TruncateTo(target); err != nil {
		return &RollbackError{Kind: ErrRevertFailure, Height: target, Err: err}
	}
	return nil
}
