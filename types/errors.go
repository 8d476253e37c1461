package types

import (
	"errors"
)

var (
	ErrAssetMissing         = errors.New("asset missing")
	ErrAssetTypeMismatch    = errors.New("asset does not match tx type")
	ErrInvalidName          = errors.New("invalid name")
	ErrInvalidWebsite       = errors.New("invalid website")
	ErrInvalidSeedNodes     = errors.New("invalid seed nodes")
	ErrInvalidGenesisHash   = errors.New("invalid genesis hash")
	ErrInvalidRepository    = errors.New("invalid repository")
	ErrMissingBridgechainId = errors.New("registered bridgechain id missing")
	ErrEmptyUpdate          = errors.New("update carries no field")
	ErrMissingRecipient     = errors.New("recipient missing")
)
