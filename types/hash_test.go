package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	var emHash Hash
	nHash, err := HexToHash("0xc770f1dccb00c0b845d36d3baee2590defee2d6894f853eb63a60270612271a3")
	require.NoError(t, err)
	mHash, err := HexToHash("c770f1dccb00c0b845d36d3baee2590defee2d6894f853eb63a60270612271a3")
	require.NoError(t, err)

	assert.True(t, emHash.Empty())
	assert.False(t, nHash.Empty())
	assert.Equal(t, nHash, mHash)
	assert.Equal(t, "0xc770f1dccb00c0b845d36d3baee2590defee2d6894f853eb63a60270612271a3", nHash.Hex())

	_, err = HexToHash("0x1234")
	assert.Error(t, err)
	_, err = HexToHash("zz")
	assert.Error(t, err)
}

func TestHashJson(t *testing.T) {
	h := Sha3Hash([]byte("ogledger"))
	data, err := json.Marshal(h)
	require.NoError(t, err)

	var back Hash
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, h, back)
}

func TestAddress(t *testing.T) {
	a := HexToAddress("0x0b5d53f433b7e4a4f853a01e987f977497dda262")
	assert.Equal(t, "0x0b5d53f433b7e4a4f853a01e987f977497dda262", a.Hex())

	b := BytesToAddress([]byte{1})
	assert.Equal(t, byte(1), b.Bytes[AddressLength-1])
	assert.Equal(t, -1, b.Cmp(a))

	_, err := StringToAddress("0x01")
	assert.Error(t, err)
	assert.Panics(t, func() { HexToAddress("nothex") })
}
