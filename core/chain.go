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
package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/core/transactions"
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

type ChainConfig struct {
	Accessor AccessorConfig
	Wallets  state.WalletStoreConfig
}

func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		Accessor: DefaultAccessorConfig(),
		Wallets:  state.DefaultWalletStoreConfig(),
	}
}

// Chain applies blocks on top of the tip. Block application and rollback
// share one block level lock so they never overlap.
type Chain struct {
	db       ogdb.Database
	accessor *Accessor
	store    *state.WalletStore
	ledger   *state.PersistentLedger
	registry *transactions.Registry

	mu        sync.Mutex
	suspended atomic.Bool
}

func NewChain(db ogdb.Database, registry *transactions.Registry, config ChainConfig) (*Chain, error) {
	store, err := state.NewWalletStore(db, config.Wallets)
	if err != nil {
		return nil, err
	}
	return &Chain{
		db:       db,
		accessor: NewAccessor(db, config.Accessor),
		store:    store,
		ledger:   state.NewPersistentLedger(db),
		registry: registry,
	}, nil
}

// Init writes the genesis block and allocations unless the chain already has a tip.
func (c *Chain) Init(genesis *Genesis) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tip, err := c.accessor.ReadTip()
	if err == nil {
		log.WithField("tip", tip).Info("chain loaded")
		return nil
	}
	if !errors.Is(err, ErrNoTip) {
		return err
	}
	wallets, err := genesis.Wallets()
	if err != nil {
		return err
	}
	block := genesis.Block()
	batch := c.db.NewBatch()
	for _, w := range wallets {
		if err := c.store.PutInBatch(batch, w); err != nil {
			return err
		}
	}
	if err := c.accessor.WriteBlock(batch, block); err != nil {
		return err
	}
	if err := c.accessor.WriteTip(batch, block.Height); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	for _, w := range wallets {
		c.store.Cache(w)
	}
	log.WithField("hash", block.Hash).WithField("wallets", len(wallets)).Info("genesis written")
	return nil
}

func (c *Chain) CurrentHeight() (uint64, error) {
	return c.accessor.CurrentHeight()
}

func (c *Chain) Block(height uint64) (*types.Block, error) {
	return c.accessor.ReadBlock(height)
}

// Wallet returns a copy of the committed wallet.
func (c *Chain) Wallet(addr types.Address) (*state.Wallet, error) {
	return c.store.Get(addr)
}

func (c *Chain) Accessor() *Accessor             { return c.accessor }
func (c *Chain) WalletStore() *state.WalletStore  { return c.store }
func (c *Chain) Ledger() *state.PersistentLedger  { return c.ledger }
func (c *Chain) Registry() *transactions.Registry { return c.registry }
func (c *Chain) Database() ogdb.Database          { return c.db }
func (c *Chain) Suspended() bool                  { return c.suspended.Load() }

// Suspend stops block application until the returned resume func is called.
// It blocks until an in-flight ApplyBlock returns.
func (c *Chain) Suspend() (resume func()) {
	c.mu.Lock()
	c.suspended.Store(true)
	log.Info("block application suspended")
	return func() {
		c.suspended.Store(false)
		c.mu.Unlock()
		log.Info("block application resumed")
	}
}

// CheckTransaction is a dry run of CanBeApplied against the committed state.
func (c *Chain) CheckTransaction(tx *types.Transaction) error {
	if tx.Id != tx.CalcTxHash() {
		return fmt.Errorf("%w: %s", ErrTxHash, tx.Id.Hex())
	}
	unlock := c.store.Lock(tx.Sender)
	defer unlock()
	wallet, err := c.store.Get(tx.Sender)
	if err != nil {
		return err
	}
	return c.registry.CanBeApplied(tx, wallet)
}

// ApplyBlock validates the block against the tip, then checks and applies
// every tx in order on a staging overlay. The first rejection drops the whole
// block. State, mutation entries, block and tip are written in one batch.
func (c *Chain) ApplyBlock(block *types.Block) error {
	if c.suspended.Load() {
		return ErrChainSuspended
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.verifyBlock(block); err != nil {
		return err
	}

	var touched []types.Address
	for _, tx := range block.Transactions {
		touched = append(touched, tx.Touched()...)
	}
	unlock := c.store.Lock(touched...)
	defer unlock()

	sd := state.NewStateDB(c.store, c.ledger)
	for i, tx := range block.Transactions {
		wallet, err := sd.Peek(tx.Sender)
		if err != nil {
			return err
		}
		if err := c.registry.CanBeApplied(tx, wallet); err != nil {
			return fmt.Errorf("block %d tx %d: %w", block.Height, i, err)
		}
		if err := c.registry.Apply(tx, sd, sd); err != nil {
			log.WithError(err).WithField("tx", tx).Error("apply failed after check")
			return fmt.Errorf("block %d tx %d apply: %w", block.Height, i, err)
		}
	}

	batch := c.db.NewBatch()
	if err := sd.CommitTo(batch); err != nil {
		return err
	}
	if err := c.accessor.WriteBlock(batch, block); err != nil {
		return err
	}
	if err := c.accessor.WriteTip(batch, block.Height); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	sd.Flushed()
	c.accessor.CacheBlock(block)
	log.WithField("height", block.Height).WithField("txs", len(block.Transactions)).Info("block applied")
	return nil
}

func (c *Chain) verifyBlock(block *types.Block) error {
	tip, err := c.accessor.ReadTip()
	if err != nil {
		return err
	}
	if block.Height != tip+1 {
		return fmt.Errorf("%w: got %d tip %d", ErrBlockHeight, block.Height, tip)
	}
	prev, err := c.accessor.ReadBlock(tip)
	if err != nil {
		return err
	}
	if block.PrevHash != prev.Hash {
		return fmt.Errorf("%w: prev %s tip %s", ErrBlockPrevHash, block.PrevHash.Hex(), prev.Hash.Hex())
	}
	if block.Hash != block.CalcHash() {
		return fmt.Errorf("%w: %s", ErrBlockHash, block.Hash.Hex())
	}
	for i, tx := range block.Transactions {
		if tx.BlockHeight != block.Height {
			return fmt.Errorf("%w: tx %d at %d", ErrTxHeight, i, tx.BlockHeight)
		}
		if tx.Id != tx.CalcTxHash() {
			return fmt.Errorf("%w: tx %d %s", ErrTxHash, i, tx.Id.Hex())
		}
	}
	return nil
}
