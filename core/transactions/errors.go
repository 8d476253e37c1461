package transactions

import (
	"errors"
	"fmt"

	"github.com/annchain/ogledger/types"
)

var ErrUnknownTransactionType = errors.New("unknown transaction type")

// Applicability rules. CanBeApplied returns them wrapped in an ApplicabilityError.
var (
	ErrSenderMismatch               = errors.New("wallet is not the sender")
	ErrInsufficientBalance          = errors.New("insufficient balance")
	ErrInvalidAsset                 = errors.New("invalid asset")
	ErrBusinessAlreadyRegistered    = errors.New("business already registered")
	ErrBusinessNotRegistered        = errors.New("business not registered")
	ErrBridgechainAlreadyRegistered = errors.New("bridgechain already registered")
	ErrBridgechainNotFound          = errors.New("bridgechain not found")
	ErrBridgechainResigned          = errors.New("bridgechain resigned")
	ErrNotRecordOwner               = errors.New("sender does not own the record")
)

// ErrEntryMismatch is returned by Revert when the mutation entry under the tx
// id was written by a different tx type.
var ErrEntryMismatch = errors.New("mutation entry does not match tx")

// ApplicabilityError is a rejected transaction. It is expected and never fatal.
type ApplicabilityError struct {
	Type   types.TxType
	TxId   types.Hash
	Rule   error
	Detail string
}

func (e *ApplicabilityError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s tx %s rejected: %v", e.Type, e.TxId.Hex(), e.Rule)
	}
	return fmt.Sprintf("%s tx %s rejected: %v: %s", e.Type, e.TxId.Hex(), e.Rule, e.Detail)
}

func (e *ApplicabilityError) Unwrap() error { return e.Rule }

func reject(tx *types.Transaction, rule error, format string, args ...interface{}) *ApplicabilityError {
	return &ApplicabilityError{
		Type:   tx.Type,
		TxId:   tx.Id,
		Rule:   rule,
		Detail: fmt.Sprintf(format, args...),
	}
}

// IsRejection reports whether err means the transaction is not applicable,
// as opposed to a storage or invariant failure.
func IsRejection(err error) bool {
	var ae *ApplicabilityError
	return errors.As(err, &ae) || errors.Is(err, ErrUnknownTransactionType)
}
