package state

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	lru "github.com/hashicorp/golang-lru"
)

var prefixWallet = []byte("wa")

func walletKey(addr types.Address) []byte {
	return append(append([]byte{}, prefixWallet...), addr.Bytes[:]...)
}

type WalletStoreConfig struct {
	CacheSize int
}

func DefaultWalletStoreConfig() WalletStoreConfig {
	return WalletStoreConfig{CacheSize: 4096}
}

// WalletStore owns the committed wallets. It hands out private copies and
// serialises mutation per address through Lock.
type WalletStore struct {
	db    ogdb.Database
	cache *lru.Cache

	mu    sync.Mutex
	locks map[types.Address]*addrLock
}

type addrLock struct {
	sync.Mutex
	refs int
}

func NewWalletStore(db ogdb.Database, conf WalletStoreConfig) (*WalletStore, error) {
	size := conf.CacheSize
	if size <= 0 {
		size = DefaultWalletStoreConfig().CacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &WalletStore{
		db:    db,
		cache: cache,
		locks: make(map[types.Address]*addrLock),
	}, nil
}

// Get returns a copy of the committed wallet, or a fresh empty wallet if the
// address was never persisted.
func (s *WalletStore) Get(addr types.Address) (*Wallet, error) {
	if v, ok := s.cache.Get(addr); ok {
		return v.(*Wallet).Copy(), nil
	}
	data, err := s.db.Get(walletKey(addr))
	if errors.Is(err, ogdb.ErrNotFound) {
		return NewWallet(addr), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load wallet %s: %w", addr.Hex(), err)
	}
	w := &Wallet{}
	if _, err := w.UnmarshalMsg(data); err != nil {
		return nil, fmt.Errorf("decode wallet %s: %w", addr.Hex(), err)
	}
	s.cache.Add(addr, w)
	return w.Copy(), nil
}

// PutInBatch stages w. Empty wallets are deleted rather than stored.
func (s *WalletStore) PutInBatch(batch ogdb.Batch, w *Wallet) error {
	if w.Empty() {
		return batch.Delete(walletKey(w.Address))
	}
	data, err := w.MarshalMsg(nil)
	if err != nil {
		return err
	}
	return batch.Put(walletKey(w.Address), data)
}

// Cache refreshes the cache after the batch carrying w has been written.
func (s *WalletStore) Cache(w *Wallet) {
	s.cache.Add(w.Address, w.Copy())
}

func (s *WalletStore) Purge() {
	s.cache.Purge()
}

// Lock acquires the per address locks in address order and returns the
// release func. Duplicates are collapsed.
func (s *WalletStore) Lock(addrs ...types.Address) (unlock func()) {
	sorted := make([]types.Address, 0, len(addrs))
	seen := make(map[types.Address]struct{}, len(addrs))
	for _, a := range addrs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		sorted = append(sorted, a)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })

	held := make([]*addrLock, 0, len(sorted))
	for _, a := range sorted {
		l := s.acquire(a)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
			s.release(sorted[i])
		}
	}
}

func (s *WalletStore) acquire(addr types.Address) *addrLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[addr]
	if !ok {
		l = &addrLock{}
		s.locks[addr] = l
	}
	l.refs++
	return l
}

func (s *WalletStore) release(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.locks[addr]
	l.refs--
	if l.refs == 0 {
		delete(s.locks, addr)
	}
}
