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
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/annchain/gcache"
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	"github.com/sirupsen/logrus"
)

var (
	prefixBlockKey = []byte("bk")
	tipKey         = []byte("tip")
)

func blockKey(height uint64) []byte {
	key := make([]byte, len(prefixBlockKey)+8)
	copy(key, prefixBlockKey)
	binary.BigEndian.PutUint64(key[len(prefixBlockKey):], height)
	return key
}

type AccessorConfig struct {
	BlockCacheSize int
}

func DefaultAccessorConfig() AccessorConfig {
	return AccessorConfig{BlockCacheSize: 256}
}

// Accessor reads and writes blocks and the tip pointer. Recently read blocks
// are kept in an LRU that loads from the db on miss.
type Accessor struct {
	Config AccessorConfig

	db         ogdb.Database
	blockCache gcache.Cache
}

func NewAccessor(db ogdb.Database, config AccessorConfig) *Accessor {
	da := &Accessor{Config: config, db: db}
	da.InitDefault()
	return da
}

func (da *Accessor) InitDefault() {
	if da.Config.BlockCacheSize <= 0 {
		da.Config.BlockCacheSize = DefaultAccessorConfig().BlockCacheSize
	}
	da.blockCache = gcache.New(da.Config.BlockCacheSize).LRU().LoaderFunc(da.load).Build()
}

func (da *Accessor) load(key interface{}) (interface{}, error) {
	height := key.(uint64)
	data, err := da.db.Get(blockKey(height))
	if errors.Is(err, ogdb.ErrNotFound) {
		return nil, fmt.Errorf("%w: height %d", ErrBlockNotFound, height)
	}
	if err != nil {
		return nil, err
	}
	block := &types.Block{}
	if _, err := block.UnmarshalMsg(data); err != nil {
		return nil, fmt.Errorf("decode block %d: %w", height, err)
	}
	return block, nil
}

// ReadBlock returns the block at height. Callers must not mutate it.
func (da *Accessor) ReadBlock(height uint64) (*types.Block, error) {
	v, err := da.blockCache.Get(height)
	if err != nil {
		return nil, err
	}
	return v.(*types.Block), nil
}

// GetBlock is ReadBlock under the name the rollback service expects.
func (da *Accessor) GetBlock(height uint64) (*types.Block, error) {
	return da.ReadBlock(height)
}

// WriteBlock stages the block into p. Call CacheBlock once p is written.
func (da *Accessor) WriteBlock(p ogdb.Putter, block *types.Block) error {
	data, err := block.MarshalMsg(nil)
	if err != nil {
		return err
	}
	return p.Put(blockKey(block.Height), data)
}

func (da *Accessor) ReadTip() (uint64, error) {
	data, err := da.db.Get(tipKey)
	if errors.Is(err, ogdb.ErrNotFound) {
		return 0, ErrNoTip
	}
	if err != nil {
		return 0, err
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("corrupted tip pointer of %d bytes", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

// CurrentHeight is the tip height.
func (da *Accessor) CurrentHeight() (uint64, error) {
	return da.ReadTip()
}

func (da *Accessor) WriteTip(p ogdb.Putter, height uint64) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, height)
	return p.Put(tipKey, data)
}

// CacheBlock publishes a written block, replacing whatever the cache held
// for its height.
func (da *Accessor) CacheBlock(block *types.Block) {
	if err := da.blockCache.Set(block.Height, block); err != nil {
		logrus.WithError(err).WithField("height", block.Height).Warn("cache block failed")
	}
}

// Forget evicts the cached blocks in (to, from]. Call it after the batch
// carrying their deletion is written: a read in between would reload them.
func (da *Accessor) Forget(from, to uint64) {
	for h := from; h > to; h-- {
		da.blockCache.Remove(h)
	}
}

// TruncateTo deletes every block above height and moves the tip to height.
func (da *Accessor) TruncateTo(height uint64) error {
	tip, err := da.ReadTip()
	if err != nil {
		return err
	}
	batch := da.db.NewBatch()
	if err := da.TruncateInBatch(batch, height); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	da.Forget(tip, height)
	return nil
}

// TruncateInBatch stages the truncation into batch so it can be committed
// together with the reverted state. The cache is left alone until Forget.
func (da *Accessor) TruncateInBatch(batch ogdb.Batch, height uint64) error {
	tip, err := da.ReadTip()
	if err != nil {
		return err
	}
	if height > tip {
		return fmt.Errorf("truncate to %d above tip %d", height, tip)
	}
	for h := tip; h > height; h-- {
		if err := batch.Delete(blockKey(h)); err != nil {
			return err
		}
	}
	logrus.WithField("from", tip).WithField("to", height).Debug("truncating blocks")
	return da.WriteTip(batch, height)
}
