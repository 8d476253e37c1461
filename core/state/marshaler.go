package state

// written by hand, do not regenerate with msgp.

import (
	"github.com/annchain/ogledger/types"
	"github.com/tinylib/msgp/msgp"
)

const (
	walletFields      = 4
	businessFields    = 3
	bridgechainFields = 5
	entryFields       = 6
)

// MarshalMsg encodes bridgechains in key order so equal wallets encode equally.
func (w *Wallet) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.AppendArrayHeader(b, walletFields)
	o = msgp.AppendBytes(o, w.Address.Bytes[:])
	bal := w.Balance.Bytes32()
	o = msgp.AppendBytes(o, bal[:])
	if w.Business == nil {
		o = msgp.AppendNil(o)
	} else {
		o = msgp.AppendArrayHeader(o, businessFields)
		o = msgp.AppendString(o, w.Business.Name)
		o = msgp.AppendString(o, w.Business.Website)
		o = msgp.AppendBool(o, w.Business.Registered)
	}
	o = msgp.AppendMapHeader(o, uint32(len(w.Bridgechains)))
	for _, id := range w.BridgechainIds() {
		chain := w.Bridgechains[id]
		o = msgp.AppendBytes(o, id.Bytes[:])
		o = msgp.AppendArrayHeader(o, bridgechainFields)
		o = msgp.AppendString(o, chain.Name)
		o = appendStrings(o, chain.SeedNodes)
		o = msgp.AppendString(o, chain.GenesisHash)
		o = msgp.AppendString(o, chain.RepositoryURL)
		o = msgp.AppendBool(o, chain.Resigned)
	}
	return
}

func (w *Wallet) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readHeader(bts, walletFields); err != nil {
		return
	}
	if bts, err = msgp.ReadExactBytes(bts, w.Address.Bytes[:]); err != nil {
		return
	}
	var bal [32]byte
	if bts, err = msgp.ReadExactBytes(bts, bal[:]); err != nil {
		return
	}
	w.Balance.SetBytes32(bal[:])

	w.Business = nil
	if msgp.IsNil(bts) {
		if bts, err = msgp.ReadNilBytes(bts); err != nil {
			return
		}
	} else {
		if bts, err = readHeader(bts, businessFields); err != nil {
			return
		}
		biz := &Business{}
		if biz.Name, bts, err = msgp.ReadStringBytes(bts); err != nil {
			return
		}
		if biz.Website, bts, err = msgp.ReadStringBytes(bts); err != nil {
			return
		}
		if biz.Registered, bts, err = msgp.ReadBoolBytes(bts); err != nil {
			return
		}
		w.Business = biz
	}

	var sz uint32
	if sz, bts, err = msgp.ReadMapHeaderBytes(bts); err != nil {
		return
	}
	w.Bridgechains = make(map[types.Hash]*Bridgechain, sz)
	for i := uint32(0); i < sz; i++ {
		var id types.Hash
		if bts, err = msgp.ReadExactBytes(bts, id.Bytes[:]); err != nil {
			return
		}
		if bts, err = readHeader(bts, bridgechainFields); err != nil {
			return
		}
		chain := &Bridgechain{}
		if chain.Name, bts, err = msgp.ReadStringBytes(bts); err != nil {
			return
		}
		if chain.SeedNodes, bts, err = readStrings(bts); err != nil {
			return
		}
		if chain.GenesisHash, bts, err = msgp.ReadStringBytes(bts); err != nil {
			return
		}
		if chain.RepositoryURL, bts, err = msgp.ReadStringBytes(bts); err != nil {
			return
		}
		if chain.Resigned, bts, err = msgp.ReadBoolBytes(bts); err != nil {
			return
		}
		w.Bridgechains[id] = chain
	}
	o = bts
	return
}

func (e *MutationEntry) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.AppendArrayHeader(b, entryFields)
	o = msgp.AppendBytes(o, e.TxId.Bytes[:])
	o = msgp.AppendUint8(o, uint8(e.Type))
	o = msgp.AppendBool(o, e.HadBusiness)
	o = appendStrings(o, e.PrevSeedNodes)
	o = msgp.AppendString(o, e.PrevRepositoryURL)
	o = msgp.AppendBool(o, e.PrevResigned)
	return
}

func (e *MutationEntry) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readHeader(bts, entryFields); err != nil {
		return
	}
	if bts, err = msgp.ReadExactBytes(bts, e.TxId.Bytes[:]); err != nil {
		return
	}
	var tp uint8
	if tp, bts, err = msgp.ReadUint8Bytes(bts); err != nil {
		return
	}
	e.Type = types.TxType(tp)
	if e.HadBusiness, bts, err = msgp.ReadBoolBytes(bts); err != nil {
		return
	}
	if e.PrevSeedNodes, bts, err = readStrings(bts); err != nil {
		return
	}
	if e.PrevRepositoryURL, bts, err = msgp.ReadStringBytes(bts); err != nil {
		return
	}
	e.PrevResigned, o, err = msgp.ReadBoolBytes(bts)
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

// nil and empty both encode as an empty array and decode as nil.
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
