package types

import (
	"encoding/hex"
	"fmt"
)

// Length of Addresses in bytes.
const (
	AddressLength = 20
)

// Address represents the 20 byte of address. Derivation from public keys is
// outside of this package; addresses are taken as given.
type Address struct {
	Bytes [AddressLength]byte
}

// BytesToAddress sets b to address.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a.Bytes[AddressLength-len(b):], b)
	return a
}

// HexToAddress parses a hex address and panics on malformed input. Use
// StringToAddress for untrusted data.
func HexToAddress(s string) Address {
	a, err := StringToAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func StringToAddress(s string) (Address, error) {
	b, err := fromHex(s)
	if err != nil {
		return Address{}, err
	}
	if len(b) != AddressLength {
		return Address{}, fmt.Errorf("invalid address length %d, want %d", len(b), AddressLength)
	}
	return BytesToAddress(b), nil
}

func (a Address) Empty() bool {
	return a == Address{}
}

// ToBytes convers Address to []byte.
func (a Address) ToBytes() []byte { return a.Bytes[:] }

func (a Address) Hex() string { return "0x" + hex.EncodeToString(a.Bytes[:]) }

func (a Address) String() string { return a.Hex() }

func (a Address) TerminalString() string {
	return fmt.Sprintf("%x…%x", a.Bytes[:3], a.Bytes[AddressLength-3:])
}

func (a Address) Cmp(b Address) int {
	for i := 0; i < AddressLength; i++ {
		if a.Bytes[i] != b.Bytes[i] {
			if a.Bytes[i] < b.Bytes[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
