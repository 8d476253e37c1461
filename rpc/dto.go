package rpc

import (
	"fmt"

	"github.com/annchain/ogledger/core/state"
	"github.com/annchain/ogledger/types"
	"github.com/holiman/uint256"
)

// AssetJson is the flattened json form of every asset; only the fields of the
// tx type are read.
type AssetJson struct {
	Name                    string   `json:"name,omitempty"`
	Website                 string   `json:"website,omitempty"`
	SeedNodes               []string `json:"seed_nodes,omitempty"`
	GenesisHash             string   `json:"genesis_hash,omitempty"`
	RepositoryURL           string   `json:"repository_url,omitempty"`
	RegisteredBridgechainId string   `json:"registered_bridgechain_id,omitempty"`
	Timelock                uint64   `json:"timelock,omitempty"`
	TimelockType            uint8    `json:"timelock_type,omitempty"`
}

type TxJson struct {
	Id          string        `json:"id,omitempty"`
	Type        types.TxType  `json:"type"`
	Sender      types.Address `json:"sender"`
	Recipient   types.Address `json:"recipient"`
	Amount      string        `json:"amount"`
	Fee         string        `json:"fee"`
	Nonce       uint64        `json:"nonce"`
	Timestamp   int64         `json:"timestamp"`
	BlockHeight uint64        `json:"block_height,omitempty"`
	Asset       *AssetJson    `json:"asset,omitempty"`
}

type BlockJson struct {
	Height       uint64     `json:"height"`
	PrevHash     types.Hash `json:"prev_hash"`
	Hash         types.Hash `json:"hash"`
	Timestamp    int64      `json:"timestamp"`
	Transactions []TxJson   `json:"transactions"`
}

type BridgechainJson struct {
	Id            types.Hash `json:"id"`
	Name          string     `json:"name"`
	SeedNodes     []string   `json:"seed_nodes"`
	GenesisHash   string     `json:"genesis_hash"`
	RepositoryURL string     `json:"repository_url"`
	Resigned      bool       `json:"resigned"`
}

type BusinessJson struct {
	Name       string `json:"name"`
	Website    string `json:"website"`
	Registered bool   `json:"registered"`
}

type WalletJson struct {
	Address      types.Address     `json:"address"`
	Balance      string            `json:"balance"`
	Business     *BusinessJson     `json:"business,omitempty"`
	Bridgechains []BridgechainJson `json:"bridgechains"`
}

func NewWalletJson(w *state.Wallet) WalletJson {
	j := WalletJson{
		Address:      w.Address,
		Balance:      w.Balance.Dec(),
		Bridgechains: []BridgechainJson{},
	}
	if w.Business != nil {
		j.Business = &BusinessJson{Name: w.Business.Name, Website: w.Business.Website, Registered: w.Business.Registered}
	}
	for _, id := range w.BridgechainIds() {
		c := w.Bridgechains[id]
		j.Bridgechains = append(j.Bridgechains, BridgechainJson{
			Id:            id,
			Name:          c.Name,
			SeedNodes:     c.SeedNodes,
			GenesisHash:   c.GenesisHash,
			RepositoryURL: c.RepositoryURL,
			Resigned:      c.Resigned,
		})
	}
	return j
}

func NewTxJson(tx *types.Transaction) TxJson {
	j := TxJson{
		Id:          tx.Id.Hex(),
		Type:        tx.Type,
		Sender:      tx.Sender,
		Recipient:   tx.Recipient,
		Amount:      tx.Amount.Dec(),
		Fee:         tx.Fee.Dec(),
		Nonce:       tx.Nonce,
		Timestamp:   tx.Timestamp,
		BlockHeight: tx.BlockHeight,
	}
	switch a := tx.Asset.(type) {
	case *types.TimelockTransferAsset:
		j.Asset = &AssetJson{Timelock: a.Timelock, TimelockType: uint8(a.TimelockType)}
	case *types.BusinessRegistrationAsset:
		j.Asset = &AssetJson{Name: a.Name, Website: a.Website}
	case *types.BridgechainRegistrationAsset:
		j.Asset = &AssetJson{Name: a.Name, SeedNodes: a.SeedNodes, GenesisHash: a.GenesisHash, RepositoryURL: a.RepositoryURL}
	case *types.BridgechainUpdateAsset:
		j.Asset = &AssetJson{RegisteredBridgechainId: a.RegisteredBridgechainId.Hex(), SeedNodes: a.SeedNodes, RepositoryURL: a.RepositoryURL}
	case *types.BridgechainResignationAsset:
		j.Asset = &AssetJson{RegisteredBridgechainId: a.RegisteredBridgechainId.Hex()}
	}
	return j
}

// ToTx builds the transaction and seals its id. A supplied id must match.
func (j *TxJson) ToTx() (*types.Transaction, error) {
	tx := &types.Transaction{
		Type:        j.Type,
		Sender:      j.Sender,
		Recipient:   j.Recipient,
		Nonce:       j.Nonce,
		Timestamp:   j.Timestamp,
		BlockHeight: j.BlockHeight,
	}
	if err := parseAmount(j.Amount, &tx.Amount); err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	if err := parseAmount(j.Fee, &tx.Fee); err != nil {
		return nil, fmt.Errorf("fee: %w", err)
	}
	asset, err := j.asset()
	if err != nil {
		return nil, err
	}
	tx.Asset = asset
	tx.Id = tx.CalcTxHash()
	if j.Id != "" {
		id, err := types.HexToHash(j.Id)
		if err != nil {
			return nil, fmt.Errorf("id: %w", err)
		}
		if id != tx.Id {
			return nil, fmt.Errorf("id %s does not match body %s", id.Hex(), tx.Id.Hex())
		}
	}
	return tx, nil
}

func (j *TxJson) asset() (types.Asset, error) {
	if j.Asset == nil {
		return nil, nil
	}
	a := j.Asset
	switch j.Type {
	case types.TxTypeTimelockTransfer:
		return &types.TimelockTransferAsset{Timelock: a.Timelock, TimelockType: types.TimelockType(a.TimelockType)}, nil
	case types.TxTypeBusinessRegistration:
		return &types.BusinessRegistrationAsset{Name: a.Name, Website: a.Website}, nil
	case types.TxTypeBridgechainRegistration:
		return &types.BridgechainRegistrationAsset{Name: a.Name, SeedNodes: a.SeedNodes, GenesisHash: a.GenesisHash, RepositoryURL: a.RepositoryURL}, nil
	case types.TxTypeBridgechainUpdate:
		id, err := types.HexToHash(a.RegisteredBridgechainId)
		if err != nil {
			return nil, fmt.Errorf("registered_bridgechain_id: %w", err)
		}
		return &types.BridgechainUpdateAsset{RegisteredBridgechainId: id, SeedNodes: a.SeedNodes, RepositoryURL: a.RepositoryURL}, nil
	case types.TxTypeBridgechainResignation:
		id, err := types.HexToHash(a.RegisteredBridgechainId)
		if err != nil {
			return nil, fmt.Errorf("registered_bridgechain_id: %w", err)
		}
		return &types.BridgechainResignationAsset{RegisteredBridgechainId: id}, nil
	default:
		return nil, fmt.Errorf("%s carries no asset", j.Type)
	}
}

func parseAmount(s string, into *uint256.Int) error {
	if s == "" {
		into.Clear()
		return nil
	}
	return into.SetFromDecimal(s)
}

func NewBlockJson(b *types.Block) BlockJson {
	j := BlockJson{
		Height:       b.Height,
		PrevHash:     b.PrevHash,
		Hash:         b.Hash,
		Timestamp:    b.Timestamp,
		Transactions: make([]TxJson, 0, len(b.Transactions)),
	}
	for _, tx := range b.Transactions {
		j.Transactions = append(j.Transactions, NewTxJson(tx))
	}
	return j
}

// ToBlock stamps the block height on every tx. The hash is kept as sent so
// the chain can reject a mismatch.
func (j *BlockJson) ToBlock() (*types.Block, error) {
	b := &types.Block{
		Height:       j.Height,
		PrevHash:     j.PrevHash,
		Hash:         j.Hash,
		Timestamp:    j.Timestamp,
		Transactions: make([]*types.Transaction, 0, len(j.Transactions)),
	}
	for i := range j.Transactions {
		j.Transactions[i].BlockHeight = j.Height
		tx, err := j.Transactions[i].ToTx()
		if err != nil {
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
		b.Transactions = append(b.Transactions, tx)
	}
	return b, nil
}
