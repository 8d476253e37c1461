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

// do not use go gen msgp for this file, this is written by hand.
// Every record is a fixed length msgpack array so that a reader can reject
// truncated or foreign data early.

import (
	"github.com/holiman/uint256"
	"github.com/tinylib/msgp/msgp"
)

const (
	txFields    = 10
	txBodyField = 8
	blockFields = 5
)

// BodyBytes encodes every field except Id and BlockHeight.
func (t *Transaction) BodyBytes() ([]byte, error) {
	b := msgp.AppendArrayHeader(nil, txBodyField)
	b = msgp.AppendUint8(b, uint8(t.Type))
	b = msgp.AppendBytes(b, t.Sender.Bytes[:])
	b = msgp.AppendBytes(b, t.Recipient.Bytes[:])
	b = appendUint256(b, &t.Amount)
	b = appendUint256(b, &t.Fee)
	b = msgp.AppendUint64(b, t.Nonce)
	b = msgp.AppendInt64(b, t.Timestamp)
	return appendAsset(b, t.Asset)
}

func (t *Transaction) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, t.Msgsize())
	o = msgp.AppendArrayHeader(o, txFields)
	o = msgp.AppendBytes(o, t.Id.Bytes[:])
	o = msgp.AppendUint8(o, uint8(t.Type))
	o = msgp.AppendBytes(o, t.Sender.Bytes[:])
	o = msgp.AppendBytes(o, t.Recipient.Bytes[:])
	o = appendUint256(o, &t.Amount)
	o = appendUint256(o, &t.Fee)
	o = msgp.AppendUint64(o, t.Nonce)
	o = msgp.AppendInt64(o, t.Timestamp)
	o = msgp.AppendUint64(o, t.BlockHeight)
	return appendAsset(o, t.Asset)
}

func (t *Transaction) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var sz uint32
	sz, bts, err = msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return
	}
	if sz != txFields {
		err = msgp.ArrayError{Wanted: txFields, Got: sz}
		return
	}
	if bts, err = msgp.ReadExactBytes(bts, t.Id.Bytes[:]); err != nil {
		return
	}
	var tp uint8
	if tp, bts, err = msgp.ReadUint8Bytes(bts); err != nil {
		return
	}
	t.Type = TxType(tp)
	if bts, err = msgp.ReadExactBytes(bts, t.Sender.Bytes[:]); err != nil {
		return
	}
	if bts, err = msgp.ReadExactBytes(bts, t.Recipient.Bytes[:]); err != nil {
		return
	}
	if bts, err = readUint256(bts, &t.Amount); err != nil {
		return
	}
	if bts, err = readUint256(bts, &t.Fee); err != nil {
		return
	}
	if t.Nonce, bts, err = msgp.ReadUint64Bytes(bts); err != nil {
		return
	}
	if t.Timestamp, bts, err = msgp.ReadInt64Bytes(bts); err != nil {
		return
	}
	if t.BlockHeight, bts, err = msgp.ReadUint64Bytes(bts); err != nil {
		return
	}
	t.Asset, bts, err = readAsset(bts, t.Type)
	o = bts
	return
}

func (t *Transaction) Msgsize() (s int) {
	s = 1 + msgp.BytesPrefixSize + HashLength + msgp.Uint8Size +
		2*(msgp.BytesPrefixSize+AddressLength) + 2*(msgp.BytesPrefixSize+32) +
		msgp.Uint64Size + msgp.Int64Size + msgp.Uint64Size
	if t.Asset == nil {
		return s + msgp.NilSize
	}
	return s + 64 + MaxUrlLength + MaxNameLength + MaxSeedNodes*48
}

func (b *Block) MarshalMsg(bts []byte) (o []byte, err error) {
	o = msgp.AppendArrayHeader(bts, blockFields)
	o = msgp.AppendUint64(o, b.Height)
	o = msgp.AppendBytes(o, b.PrevHash.Bytes[:])
	o = msgp.AppendBytes(o, b.Hash.Bytes[:])
	o = msgp.AppendInt64(o, b.Timestamp)
	o = msgp.AppendArrayHeader(o, uint32(len(b.Transactions)))
	for _, tx := range b.Transactions {
		if o, err = tx.MarshalMsg(o); err != nil {
			return
		}
	}
	return
}

func (b *Block) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var sz uint32
	sz, bts, err = msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return
	}
	if sz != blockFields {
		err = msgp.ArrayError{Wanted: blockFields, Got: sz}
		return
	}
	if b.Height, bts, err = msgp.ReadUint64Bytes(bts); err != nil {
		return
	}
	if bts, err = msgp.ReadExactBytes(bts, b.PrevHash.Bytes[:]); err != nil {
		return
	}
	if bts, err = msgp.ReadExactBytes(bts, b.Hash.Bytes[:]); err != nil {
		return
	}
	if b.Timestamp, bts, err = msgp.ReadInt64Bytes(bts); err != nil {
		return
	}
	if sz, bts, err = msgp.ReadArrayHeaderBytes(bts); err != nil {
		return
	}
	b.Transactions = make([]*Transaction, sz)
	for i := range b.Transactions {
		tx := &Transaction{}
		if bts, err = tx.UnmarshalMsg(bts); err != nil {
			return
		}
		b.Transactions[i] = tx
	}
	o = bts
	return
}

func appendUint256(b []byte, v *uint256.Int) []byte {
	word := v.Bytes32()
	return msgp.AppendBytes(b, word[:])
}

func readUint256(bts []byte, v *uint256.Int) (o []byte, err error) {
	var word [32]byte
	if o, err = msgp.ReadExactBytes(bts, word[:]); err != nil {
		return
	}
	v.SetBytes32(word[:])
	return
}

func appendStrings(b []byte, ss []string) []byte {
	b = msgp.AppendArrayHeader(b, uint32(len(ss)))
	for _, s := range ss {
		b = msgp.AppendString(b, s)
	}
	return b
}

func readStrings(bts []byte) (ss []string, o []byte, err error) {
	var sz uint32
	if sz, bts, err = msgp.ReadArrayHeaderBytes(bts); err != nil {
		return
	}
	if sz > 0 {
		ss = make([]string, sz)
	}
	for i := range ss {
		if ss[i], bts, err = msgp.ReadStringBytes(bts); err != nil {
			return
		}
	}
	o = bts
	return
}

func appendAsset(b []byte, a Asset) ([]byte, error) {
	if a == nil {
		return msgp.AppendNil(b), nil
	}
	return a.MarshalMsg(b)
}

func readAsset(bts []byte, t TxType) (a Asset, o []byte, err error) {
	if msgp.IsNil(bts) {
		o, err = msgp.ReadNilBytes(bts)
		return
	}
	a = newAsset(t)
	if a == nil {
		err = ErrAssetTypeMismatch
		return
	}
	o, err = a.UnmarshalMsg(bts)
	return
}

func readHeader(bts []byte, want uint32) (o []byte, err error) {
	var sz uint32
	if sz, o, err = msgp.ReadArrayHeaderBytes(bts); err != nil {
		return
	}
	if sz != want {
		err = msgp.ArrayError{Wanted: want, Got: sz}
	}
	return
}

func (a *TimelockTransferAsset) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 2)
	b = msgp.AppendUint64(b, a.Timelock)
	return msgp.AppendUint8(b, uint8(a.TimelockType)), nil
}

func (a *TimelockTransferAsset) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readHeader(bts, 2); err != nil {
		return
	}
	if a.Timelock, bts, err = msgp.ReadUint64Bytes(bts); err != nil {
		return
	}
	var tp uint8
	tp, o, err = msgp.ReadUint8Bytes(bts)
	a.TimelockType = TimelockType(tp)
	return
}

func (a *BusinessRegistrationAsset) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 2)
	b = msgp.AppendString(b, a.Name)
	return msgp.AppendString(b, a.Website), nil
}

func (a *BusinessRegistrationAsset) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readHeader(bts, 2); err != nil {
		return
	}
	if a.Name, bts, err = msgp.ReadStringBytes(bts); err != nil {
		return
	}
	a.Website, o, err = msgp.ReadStringBytes(bts)
	return
}

func (a *BridgechainRegistrationAsset) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 4)
	b = msgp.AppendString(b, a.Name)
	b = appendStrings(b, a.SeedNodes)
	b = msgp.AppendString(b, a.GenesisHash)
	return msgp.AppendString(b, a.RepositoryURL), nil
}

func (a *BridgechainRegistrationAsset) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readHeader(bts, 4); err != nil {
		return
	}
	if a.Name, bts, err = msgp.ReadStringBytes(bts); err != nil {
		return
	}
	if a.SeedNodes, bts, err = readStrings(bts); err != nil {
		return
	}
	if a.GenesisHash, bts, err = msgp.ReadStringBytes(bts); err != nil {
		return
	}
	a.RepositoryURL, o, err = msgp.ReadStringBytes(bts)
	return
}

func (a *BridgechainUpdateAsset) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 3)
	b = msgp.AppendBytes(b, a.RegisteredBridgechainId.Bytes[:])
	b = appendStrings(b, a.SeedNodes)
	return msgp.AppendString(b, a.RepositoryURL), nil
}

func (a *BridgechainUpdateAsset) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readHeader(bts, 3); err != nil {
		return
	}
	if bts, err = msgp.ReadExactBytes(bts, a.RegisteredBridgechainId.Bytes[:]); err != nil {
		return
	}
	if a.SeedNodes, bts, err = readStrings(bts); err != nil {
		return
	}
	a.RepositoryURL, o, err = msgp.ReadStringBytes(bts)
	return
}

func (a *BridgechainResignationAsset) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 1)
	return msgp.AppendBytes(b, a.RegisteredBridgechainId.Bytes[:]), nil
}

func (a *BridgechainResignationAsset) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readHeader(bts, 1); err != nil {
		return
	}
	o, err = msgp.ReadExactBytes(bts, a.RegisteredBridgechainId.Bytes[:])
	return
}
