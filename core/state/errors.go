package state

import "errors"

var (
	ErrBalanceUnderflow = errors.New("balance underflow")
	ErrBalanceOverflow  = errors.New("balance overflow")
	// ErrEntryExists means a mutation entry was recorded twice for one tx.
	ErrEntryExists = errors.New("mutation entry already recorded")
	// ErrEntryMissing means a revert found no entry: out of order revert or a corrupted ledger.
	ErrEntryMissing = errors.New("mutation entry missing")
)
