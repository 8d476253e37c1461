package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Length of hash in bytes.
const (
	HashLength = 32
)

// Hash identifies transactions and blocks. It is the sha3-256 of the encoded body.
type Hash struct {
	Bytes [HashLength]byte
}

// BytesToHash sets b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h.Bytes[HashLength-len(b):], b)
	return h
}

// HexToHash parses s with or without 0x prefix. Invalid input yields an error.
func HexToHash(s string) (Hash, error) {
	b, err := fromHex(s)
	if err != nil {
		return Hash{}, err
	}
	if len(b) != HashLength {
		return Hash{}, fmt.Errorf("invalid hash length %d, want %d", len(b), HashLength)
	}
	return BytesToHash(b), nil
}

// Sha3Hash returns the sha3-256 digest of data.
func Sha3Hash(data []byte) Hash {
	return Hash{Bytes: sha3.Sum256(data)}
}

func (h Hash) Empty() bool {
	return h == Hash{}
}

func (h Hash) ToBytes() []byte { return h.Bytes[:] }

func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h.Bytes[:]) }

func (h Hash) String() string { return h.Hex() }

// TerminalString is a shortened form for log lines.
func (h Hash) TerminalString() string {
	return fmt.Sprintf("%x…%x", h.Bytes[:3], h.Bytes[HashLength-3:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

func (h *Hash) UnmarshalText(input []byte) error {
	parsed, err := HexToHash(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func fromHex(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}
