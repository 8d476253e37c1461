package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/annchain/ogledger/types"
)

// Kinds of RollbackError. Match them with errors.Is.
var (
	ErrInvalidTarget      = errors.New("invalid rollback target")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrMissingTarget      = errors.New("neither height nor block count given")
	ErrRevertFailure      = errors.New("revert failure")
	ErrExportFailure      = errors.New("export failure")
	ErrCanceled           = errors.New("rollback canceled")
)

// RollbackError aborts a rollback. Nothing is persisted when it is returned.
// Height and TxId locate the failing block and tx when known.
type RollbackError struct {
	Kind   error
	Height uint64
	TxId   types.Hash
	Err    error
}

func (e *RollbackError) Error() string {
	var sb strings.Builder
	sb.WriteString("rollback: ")
	sb.WriteString(e.Kind.Error())
	if e.Height != 0 {
		fmt.Fprintf(&sb, " at height %d", e.Height)
	}
	if !e.TxId.Empty() {
		fmt.Fprintf(&sb, " tx %s", e.TxId.Hex())
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *RollbackError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newRollbackError(kind error, format string, args ...interface{}) *RollbackError {
	return &RollbackError{Kind: kind, Err: fmt.Errorf(format, args...)}
}
