package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/annchain/ogledger/core"
	"github.com/annchain/ogledger/core/transactions"
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = types.HexToAddress("0x643d534e15a315173a3c18cd13c9f95c7484a9bc")
	bob   = types.HexToAddress("0x3f3e2c3b1fd1e2d1f9b2e4d6c1a0b9e8d7c6b5a4")
)

type testResponse struct {
	Err  string          `json:"err"`
	Data json.RawMessage `json:"data"`
}

func newTestController(t *testing.T) *RpcController {
	gin.SetMode(gin.TestMode)
	chain, err := core.NewChain(ogdb.NewMemDatabase(), transactions.DefaultRegistry(), core.DefaultChainConfig())
	require.NoError(t, err)
	require.NoError(t, chain.Init(core.DefaultGenesis()))
	return &RpcController{Chain: chain}
}

func do(t *testing.T, router *gin.Engine, method, url string, body interface{}) (int, testResponse) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestRpc_StatusAndQuery(t *testing.T) {
	c := newTestController(t)
	router := c.NewRouter()

	code, resp := do(t, router, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, code)
	var status NodeStatus
	require.NoError(t, json.Unmarshal(resp.Data, &status))
	assert.Equal(t, core.GenesisHeight, status.Height)
	assert.False(t, status.Suspended)
	assert.Len(t, status.TxTypes, len(types.AllTxTypes()))

	code, resp = do(t, router, http.MethodGet, "/query_wallet?address="+alice.Hex(), nil)
	require.Equal(t, http.StatusOK, code)
	var wallet WalletJson
	require.NoError(t, json.Unmarshal(resp.Data, &wallet))
	assert.Equal(t, "10000000000", wallet.Balance)
	assert.Nil(t, wallet.Business)

	code, _ = do(t, router, http.MethodGet, "/query_wallet?address=nope", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodGet, "/query_block?height=9", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRpc_SubmitBlock(t *testing.T) {
	c := newTestController(t)
	router := c.NewRouter()
	creator := &types.TxCreator{Now: func() time.Time { return time.Unix(1560000100, 0) }}

	genesis, err := c.Chain.Block(core.GenesisHeight)
	require.NoError(t, err)
	block := types.NewBlock(core.GenesisHeight+1, genesis.Hash, genesis.Timestamp+10, []*types.Transaction{
		creator.NewTransferTx(alice, bob, 100, 1, 1),
		creator.NewAssetTx(alice, 5, 2, &types.BusinessRegistrationAsset{Name: "acme", Website: "https://acme.example"}),
	})

	code, resp := do(t, router, http.MethodPost, "/submit_block", NewBlockJson(block))
	require.Equal(t, http.StatusOK, code, resp.Err)

	code, resp = do(t, router, http.MethodGet, "/query_wallet?address="+alice.Hex(), nil)
	require.Equal(t, http.StatusOK, code)
	var wallet WalletJson
	require.NoError(t, json.Unmarshal(resp.Data, &wallet))
	assert.Equal(t, "9999999894", wallet.Balance)
	require.NotNil(t, wallet.Business)
	assert.Equal(t, "acme", wallet.Business.Name)

	code, resp = do(t, router, http.MethodGet, "/query_block?height=2", nil)
	require.Equal(t, http.StatusOK, code)
	var got BlockJson
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, block.Hash, got.Hash)
	assert.Len(t, got.Transactions, 2)

	// same block again no longer links to the tip
	code, _ = do(t, router, http.MethodPost, "/submit_block", NewBlockJson(block))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRpc_CheckTransaction(t *testing.T) {
	c := newTestController(t)
	router := c.NewRouter()
	creator := &types.TxCreator{Now: func() time.Time { return time.Unix(1560000100, 0) }}

	ok := creator.NewTransferTx(alice, bob, 100, 1, 1)
	code, resp := do(t, router, http.MethodPost, "/check_transaction", NewTxJson(ok))
	require.Equal(t, http.StatusOK, code, resp.Err)

	broke := creator.NewTransferTx(bob, alice, 100, 1, 1)
	code, resp = do(t, router, http.MethodPost, "/check_transaction", NewTxJson(broke))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Err, transactions.ErrInsufficientBalance.Error())

	tampered := NewTxJson(ok)
	tampered.Amount = "101"
	code, _ = do(t, router, http.MethodPost, "/check_transaction", tampered)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRpc_SuspendedChain(t *testing.T) {
	c := newTestController(t)
	router := c.NewRouter()
	resume := c.Chain.Suspend()
	defer resume()

	genesis, err := c.Chain.Block(core.GenesisHeight)
	require.NoError(t, err)
	block := types.NewBlock(core.GenesisHeight+1, genesis.Hash, genesis.Timestamp+10, nil)
	code, _ := do(t, router, http.MethodPost, "/submit_block", NewBlockJson(block))
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
