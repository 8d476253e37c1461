package types

import (
	"encoding/hex"
	"net"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength       = 40
	MaxUrlLength        = 80
	MaxSeedNodes        = 15
	GenesisHashHexChars = 64
)

// Asset is the type specific payload of a transaction.
type Asset interface {
	AssetType() TxType
	Validate() error
	MarshalMsg(b []byte) ([]byte, error)
	UnmarshalMsg(bts []byte) ([]byte, error)
}

// newAsset returns an empty asset for tx types that carry one, nil otherwise.
func newAsset(t TxType) Asset {
	switch t {
	case TxTypeTimelockTransfer:
		return &TimelockTransferAsset{}
	case TxTypeBusinessRegistration:
		return &BusinessRegistrationAsset{}
	case TxTypeBridgechainRegistration:
		return &BridgechainRegistrationAsset{}
	case TxTypeBridgechainUpdate:
		return &BridgechainUpdateAsset{}
	case TxTypeBridgechainResignation:
		return &BridgechainResignationAsset{}
	default:
		return nil
	}
}

type TimelockType uint8

const (
	TimelockByTimestamp TimelockType = iota
	TimelockByHeight
)

type TimelockTransferAsset struct {
	Timelock     uint64
	TimelockType TimelockType
}

func (a *TimelockTransferAsset) AssetType() TxType { return TxTypeTimelockTransfer }

func (a *TimelockTransferAsset) Validate() error {
	if a == nil {
		return ErrAssetMissing
	}
	return nil
}

type BusinessRegistrationAsset struct {
	Name    string
	Website string
}

func (a *BusinessRegistrationAsset) AssetType() TxType { return TxTypeBusinessRegistration }

func (a *BusinessRegistrationAsset) Validate() error {
	if a == nil {
		return ErrAssetMissing
	}
	if !validText(a.Name, MaxNameLength) {
		return ErrInvalidName
	}
	if !validText(a.Website, MaxUrlLength) {
		return ErrInvalidWebsite
	}
	return nil
}

type BridgechainRegistrationAsset struct {
	Name          string
	SeedNodes     []string
	GenesisHash   string
	RepositoryURL string
}

func (a *BridgechainRegistrationAsset) AssetType() TxType { return TxTypeBridgechainRegistration }

func (a *BridgechainRegistrationAsset) Validate() error {
	if a == nil {
		return ErrAssetMissing
	}
	if !validText(a.Name, MaxNameLength) {
		return ErrInvalidName
	}
	if err := ValidateSeedNodes(a.SeedNodes); err != nil {
		return err
	}
	if len(a.GenesisHash) != GenesisHashHexChars {
		return ErrInvalidGenesisHash
	}
	if _, err := hex.DecodeString(a.GenesisHash); err != nil {
		return ErrInvalidGenesisHash
	}
	if !validText(a.RepositoryURL, MaxUrlLength) {
		return ErrInvalidRepository
	}
	return nil
}

// BridgechainUpdateAsset overwrites the mutable fields of a registered
// bridgechain. Empty fields are left untouched.
type BridgechainUpdateAsset struct {
	RegisteredBridgechainId Hash
	SeedNodes               []string
	RepositoryURL           string
}

func (a *BridgechainUpdateAsset) AssetType() TxType { return TxTypeBridgechainUpdate }

func (a *BridgechainUpdateAsset) Validate() error {
	if a == nil {
		return ErrAssetMissing
	}
	if a.RegisteredBridgechainId.Empty() {
		return ErrMissingBridgechainId
	}
	if len(a.SeedNodes) == 0 && a.RepositoryURL == "" {
		return ErrEmptyUpdate
	}
	if len(a.SeedNodes) > 0 {
		if err := ValidateSeedNodes(a.SeedNodes); err != nil {
			return err
		}
	}
	if a.RepositoryURL != "" && !validText(a.RepositoryURL, MaxUrlLength) {
		return ErrInvalidRepository
	}
	return nil
}

type BridgechainResignationAsset struct {
	RegisteredBridgechainId Hash
}

func (a *BridgechainResignationAsset) AssetType() TxType { return TxTypeBridgechainResignation }

func (a *BridgechainResignationAsset) Validate() error {
	if a == nil {
		return ErrAssetMissing
	}
	if a.RegisteredBridgechainId.Empty() {
		return ErrMissingBridgechainId
	}
	return nil
}

// ValidateSeedNodes requires 1..MaxSeedNodes distinct IPv4 or IPv6 addresses.
func ValidateSeedNodes(nodes []string) error {
	if len(nodes) == 0 || len(nodes) > MaxSeedNodes {
		return ErrInvalidSeedNodes
	}
	seen := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		ip := net.ParseIP(node)
		if ip == nil {
			return ErrInvalidSeedNodes
		}
		key := ip.String()
		if _, ok := seen[key]; ok {
			return ErrInvalidSeedNodes
		}
		seen[key] = struct{}{}
	}
	return nil
}

func validText(s string, max int) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return utf8.RuneCountInString(s) <= max
}
