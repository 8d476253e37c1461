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
package rpc

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/annchain/ogledger/common/goroutine"
	"github.com/annchain/ogledger/core"
	"github.com/annchain/ogledger/core/transactions"
	"github.com/annchain/ogledger/types"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RpcController struct {
	Chain *core.Chain
}

//NodeStatus
type NodeStatus struct {
	Height    uint64     `json:"height"`
	TipHash   types.Hash `json:"tip_hash"`
	Suspended bool       `json:"suspended"`
	TxTypes   []string   `json:"tx_types"`
	Routines  int32      `json:"routines"`
}

func cors(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
}

//Status node status
func (r *RpcController) Status(c *gin.Context) {
	cors(c)
	height, err := r.Chain.CurrentHeight()
	if err != nil {
		Response(c, http.StatusInternalServerError, err, nil)
		return
	}
	tip, err := r.Chain.Block(height)
	if err != nil {
		Response(c, http.StatusInternalServerError, err, nil)
		return
	}
	status := NodeStatus{
		Height:    height,
		TipHash:   tip.Hash,
		Suspended: r.Chain.Suspended(),
		Routines:  goroutine.Running(),
	}
	for _, t := range r.Chain.Registry().Types() {
		status.TxTypes = append(status.TxTypes, t.String())
	}
	Response(c, http.StatusOK, nil, status)
}

//QueryWallet returns the committed wallet of an address
func (r *RpcController) QueryWallet(c *gin.Context) {
	cors(c)
	addr, err := types.StringToAddress(c.Query("address"))
	if err != nil {
		Response(c, http.StatusBadRequest, fmt.Errorf("address format error: %w", err), nil)
		return
	}
	w, err := r.Chain.Wallet(addr)
	if err != nil {
		Response(c, http.StatusInternalServerError, err, nil)
		return
	}
	Response(c, http.StatusOK, nil, NewWalletJson(w))
}

func (r *RpcController) QueryBlock(c *gin.Context) {
	cors(c)
	height, err := strconv.ParseUint(c.Query("height"), 10, 64)
	if err != nil {
		Response(c, http.StatusBadRequest, fmt.Errorf("height format error: %w", err), nil)
		return
	}
	block, err := r.Chain.Block(height)
	if errors.Is(err, core.ErrBlockNotFound) {
		Response(c, http.StatusNotFound, err, nil)
		return
	}
	if err != nil {
		Response(c, http.StatusInternalServerError, err, nil)
		return
	}
	Response(c, http.StatusOK, nil, NewBlockJson(block))
}

//CheckTransaction dry runs a tx against the committed state
func (r *RpcController) CheckTransaction(c *gin.Context) {
	cors(c)
	var txReq TxJson
	if err := c.ShouldBindJSON(&txReq); err != nil {
		Response(c, http.StatusBadRequest, fmt.Errorf("request format error: %w", err), nil)
		return
	}
	tx, err := txReq.ToTx()
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return
	}
	if err := r.Chain.CheckTransaction(tx); err != nil {
		Response(c, statusOf(err), err, nil)
		return
	}
	Response(c, http.StatusOK, nil, tx.Id.Hex())
}

//SubmitBlock applies a forged block on top of the tip
func (r *RpcController) SubmitBlock(c *gin.Context) {
	cors(c)
	var blockReq BlockJson
	if err := c.ShouldBindJSON(&blockReq); err != nil {
		Response(c, http.StatusBadRequest, fmt.Errorf("request format error: %w", err), nil)
		return
	}
	block, err := blockReq.ToBlock()
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return
	}
	if err := r.Chain.ApplyBlock(block); err != nil {
		logrus.WithError(err).WithField("height", block.Height).Warn("block rejected")
		Response(c, statusOf(err), err, nil)
		return
	}
	Response(c, http.StatusOK, nil, block.Hash.Hex())
}

func statusOf(err error) int {
	switch {
	case transactions.IsRejection(err):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrChainSuspended):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrBlockHeight), errors.Is(err, core.ErrBlockPrevHash),
		errors.Is(err, core.ErrBlockHash), errors.Is(err, core.ErrTxHash), errors.Is(err, core.ErrTxHeight):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Response(c *gin.Context, status int, err error, data interface{}) {
	var msg string
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{
		"err":  msg,
		"data": data,
	})
}
