// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package types

import (
	"fmt"

	"github.com/holiman/uint256"
)

type TxType uint8

// add tx types here. The set is closed: every value below must have a
// service registered in the transaction registry.
const (
	TxTypeTransfer TxType = iota
	TxTypeTimelockTransfer
	TxTypeBusinessRegistration
	TxTypeBridgechainRegistration
	TxTypeBridgechainUpdate
	TxTypeBridgechainResignation
)

func AllTxTypes() []TxType {
	return []TxType{
		TxTypeTransfer,
		TxTypeTimelockTransfer,
		TxTypeBusinessRegistration,
		TxTypeBridgechainRegistration,
		TxTypeBridgechainUpdate,
		TxTypeBridgechainResignation,
	}
}

func (t TxType) String() string {
	switch t {
	case TxTypeTransfer:
		return "Transfer"
	case TxTypeTimelockTransfer:
		return "TimelockTransfer"
	case TxTypeBusinessRegistration:
		return "BusinessRegistration"
	case TxTypeBridgechainRegistration:
		return "BridgechainRegistration"
	case TxTypeBridgechainUpdate:
		return "BridgechainUpdate"
	case TxTypeBridgechainResignation:
		return "BridgechainResignation"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Transaction is consumed read-only by the state core. Id is the sha3 of the
// body (see BodyBytes); BlockHeight is stamped when the tx is forged into a
// block and is not part of the id.
type Transaction struct {
	Id          Hash
	Type        TxType
	Sender      Address
	Recipient   Address
	Amount      uint256.Int
	Fee         uint256.Int
	Nonce       uint64
	Timestamp   int64
	BlockHeight uint64
	Asset       Asset
}

// CalcTxHash computes the id from the body.
func (t *Transaction) CalcTxHash() Hash {
	body, err := t.BodyBytes()
	if err != nil {
		panic(fmt.Sprintf("encode tx body: %v", err))
	}
	return Sha3Hash(body)
}

// Touched returns the addresses whose wallets this tx may mutate, sender first.
func (t *Transaction) Touched() []Address {
	if t.Type == TxTypeTransfer && !t.Recipient.Empty() && t.Recipient != t.Sender {
		return []Address{t.Sender, t.Recipient}
	}
	return []Address{t.Sender}
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s-[%s]-%d-%s", t.Type, t.Sender.TerminalString(), t.Nonce, t.Id.TerminalString())
}
