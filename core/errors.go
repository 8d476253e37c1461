package core

import "errors"

var (
	ErrBlockNotFound  = errors.New("block not found")
	ErrNoTip          = errors.New("chain has no tip, genesis not written")
	ErrChainSuspended = errors.New("chain suspended")

	ErrBlockHeight   = errors.New("block height does not extend the tip")
	ErrBlockPrevHash = errors.New("block does not link to the tip")
	ErrBlockHash     = errors.New("block hash mismatch")
	ErrTxHeight      = errors.New("tx block height mismatch")
	ErrTxHash        = errors.New("tx id mismatch")
)
