package state

import (
	"fmt"
	"sort"

	"github.com/annchain/ogledger/types"
	"github.com/holiman/uint256"
)

// Business is the organisation registered by a wallet. A wallet owns at most one.
type Business struct {
	Name       string
	Website    string
	Registered bool
}

// Bridgechain is a sub registration owned by the wallet's business, keyed in
// the wallet by the id of the registering transaction.
type Bridgechain struct {
	Name          string
	SeedNodes     []string
	GenesisHash   string
	RepositoryURL string
	// Resigned is terminal. Once true no transaction may mutate the record.
	Resigned bool
}

func (b *Bridgechain) Copy() *Bridgechain {
	c := *b
	c.SeedNodes = copyStrings(b.SeedNodes)
	return &c
}

// Wallet is the per address ledger state.
type Wallet struct {
	Address      types.Address
	Balance      uint256.Int
	Business     *Business
	Bridgechains map[types.Hash]*Bridgechain
}

func NewWallet(addr types.Address) *Wallet {
	return &Wallet{
		Address:      addr,
		Bridgechains: make(map[types.Hash]*Bridgechain),
	}
}

// Copy returns a deep copy. Staged mutations always work on copies so the
// cached committed wallet is never aliased.
func (w *Wallet) Copy() *Wallet {
	c := NewWallet(w.Address)
	c.Balance = w.Balance
	if w.Business != nil {
		b := *w.Business
		c.Business = &b
	}
	for id, chain := range w.Bridgechains {
		c.Bridgechains[id] = chain.Copy()
	}
	return c
}

func (w *Wallet) AddBalance(amount *uint256.Int) error {
	var sum uint256.Int
	if _, overflow := sum.AddOverflow(&w.Balance, amount); overflow {
		return fmt.Errorf("%w: credit %s to %s", ErrBalanceOverflow, amount.Dec(), w.Address.TerminalString())
	}
	w.Balance = sum
	return nil
}

func (w *Wallet) SubBalance(amount *uint256.Int) error {
	if w.Balance.Lt(amount) {
		return fmt.Errorf("%w: debit %s from %s", ErrBalanceUnderflow, amount.Dec(), w.Address.TerminalString())
	}
	w.Balance.Sub(&w.Balance, amount)
	return nil
}

// HasBusiness reports a registered business.
func (w *Wallet) HasBusiness() bool {
	return w.Business != nil && w.Business.Registered
}

// LiveBridgechainByName finds a non resigned bridgechain with the given name.
func (w *Wallet) LiveBridgechainByName(name string) (types.Hash, bool) {
	for id, chain := range w.Bridgechains {
		if !chain.Resigned && chain.Name == name {
			return id, true
		}
	}
	return types.Hash{}, false
}

// BridgechainIds returns the registry keys in byte order.
func (w *Wallet) BridgechainIds() []types.Hash {
	ids := make([]types.Hash, 0, len(w.Bridgechains))
	for id := range w.Bridgechains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return string(ids[i].Bytes[:]) < string(ids[j].Bytes[:])
	})
	return ids
}

// Empty wallets are not persisted.
func (w *Wallet) Empty() bool {
	return w.Balance.IsZero() && w.Business == nil && len(w.Bridgechains) == 0
}

func (w *Wallet) String() string {
	return fmt.Sprintf("wallet-%s-bal%s-biz%v-chains%d", w.Address.TerminalString(), w.Balance.Dec(), w.Business != nil, len(w.Bridgechains))
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
