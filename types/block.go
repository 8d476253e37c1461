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
package types

import (
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// Block is an ordered list of transactions at a height. Blocks are produced
// elsewhere; this package only stores, hashes and replays them.
type Block struct {
	Height       uint64
	PrevHash     Hash
	Hash         Hash
	Timestamp    int64
	Transactions []*Transaction
}

// NewBlock stamps the height on every tx and seals the block hash.
func NewBlock(height uint64, prev Hash, timestamp int64, txs []*Transaction) *Block {
	for _, tx := range txs {
		tx.BlockHeight = height
	}
	b := &Block{
		Height:       height,
		PrevHash:     prev,
		Timestamp:    timestamp,
		Transactions: txs,
	}
	b.Hash = b.CalcHash()
	return b
}

// CalcHash commits to the header fields and the ordered tx ids.
func (b *Block) CalcHash() Hash {
	buf := msgp.AppendArrayHeader(nil, 4)
	buf = msgp.AppendUint64(buf, b.Height)
	buf = msgp.AppendBytes(buf, b.PrevHash.Bytes[:])
	buf = msgp.AppendInt64(buf, b.Timestamp)
	buf = msgp.AppendArrayHeader(buf, uint32(len(b.Transactions)))
	for _, tx := range b.Transactions {
		buf = msgp.AppendBytes(buf, tx.Id.Bytes[:])
	}
	return Sha3Hash(buf)
}

func (b *Block) String() string {
	return fmt.Sprintf("block-%d-%s-txs%d", b.Height, b.Hash.TerminalString(), len(b.Transactions))
}
