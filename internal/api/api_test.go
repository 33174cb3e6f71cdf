package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sliink/chaincore/internal/model"
	"github.com/sliink/chaincore/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/time/rate"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func newTestAPI(t *testing.T, opts ...OptionFunc) (*API, *node.Node) {
	t.Helper()
	n, err := node.New(node.Options{Config: model.Config{
		NetworkID:   "testnet",
		APIEndpoint: "http://localhost:7777",
		APIKey:      "secret",
		Timeout:     time.Second,
	}})
	require.NoError(t, err)
	require.NoError(t, n.Start())
	t.Cleanup(func() { n.Stop() })
	return NewAPI(n, "localhost", 8080, opts...), n
}

func doRequest(t *testing.T, a *API, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	a, n := newTestAPI(t)

	t.Run("Ready node reports 200", func(t *testing.T) {
		w := doRequest(t, a, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var health model.HealthStatus
		decode(t, w, &health)
		assert.Equal(t, model.StatusReady, health.Status)
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})

	t.Run("Stopped node reports 503", func(t *testing.T) {
		require.NoError(t, n.Stop())
		w := doRequest(t, a, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Start brings the node back", func(t *testing.T) {
		w := doRequest(t, a, http.MethodPost, "/start", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		w = doRequest(t, a, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestComponents(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doRequest(t, a, http.MethodGet, "/components", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var components []ComponentResponse
	decode(t, w, &components)
	require.Len(t, components, len(node.DefaultComponents)+1)
	assert.Equal(t, "event_bus", components[0].Name)

	w = doRequest(t, a, http.MethodGet, "/components/transaction_signer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var component ComponentResponse
	decode(t, w, &component)
	assert.Equal(t, model.StatusReady, component.Status)

	w = doRequest(t, a, http.MethodGet, "/components/miner", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfig(t *testing.T) {
	a, n := newTestAPI(t)

	t.Run("API key is redacted", func(t *testing.T) {
		w := doRequest(t, a, http.MethodGet, "/config", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var cfg model.Config
		decode(t, w, &cfg)
		assert.Equal(t, "testnet", cfg.NetworkID)
		assert.Equal(t, "***", cfg.APIKey)
	})

	t.Run("Valid configuration is applied", func(t *testing.T) {
		w := doRequest(t, a, http.MethodPut, "/config", model.Config{NetworkID: "mainnet", APIEndpoint: "https://api.example.org"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "mainnet", n.Registry().Config().NetworkID)
	})

	t.Run("Invalid configuration is rejected", func(t *testing.T) {
		w := doRequest(t, a, http.MethodPut, "/config", model.Config{NetworkID: "devnet"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, string(model.CodeInvalidConfiguration), resp.Code)
		assert.Equal(t, "mainnet", n.Registry().Config().NetworkID)
	})
}

func TestTransactions(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doRequest(t, a, http.MethodPost, "/keys", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var key KeyResponse
	decode(t, w, &key)
	assert.NotEmpty(t, key.Address)

	t.Run("Submitted transaction is broadcast and can be confirmed", func(t *testing.T) {
		w := doRequest(t, a, http.MethodPost, "/transactions", SubmitRequest{
			ID: "tx1", Sender: "A", Recipient: "B", Amount: 100, Timestamp: 1000, PrivateKey: key.PrivateKey,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var tx model.Transaction
		decode(t, w, &tx)
		assert.Equal(t, model.TxStatusBroadcast, tx.Status)
		assert.NotEmpty(t, tx.Signature)

		w = doRequest(t, a, http.MethodPost, "/transactions/tx1/confirm", nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &tx)
		assert.Equal(t, model.TxStatusConfirmed, tx.Status)

		w = doRequest(t, a, http.MethodGet, "/transactions/tx1", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid transaction is rejected", func(t *testing.T) {
		w := doRequest(t, a, http.MethodPost, "/transactions", SubmitRequest{
			Sender: "A", Amount: -50, PrivateKey: "k",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Re-submitting a confirmed transaction conflicts", func(t *testing.T) {
		w := doRequest(t, a, http.MethodPost, "/transactions", SubmitRequest{
			ID: "tx1", Sender: "A", Recipient: "B", Amount: 100, Timestamp: 1000, PrivateKey: "k",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unknown transaction is not found", func(t *testing.T) {
		w := doRequest(t, a, http.MethodGet, "/transactions/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = doRequest(t, a, http.MethodPost, "/transactions/missing/confirm", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Transactions can be filtered by status", func(t *testing.T) {
		w := doRequest(t, a, http.MethodGet, "/transactions?status=confirmed", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var txs []model.Transaction
		decode(t, w, &txs)
		require.Len(t, txs, 1)
		assert.Equal(t, "tx1", txs[0].ID)

		w = doRequest(t, a, http.MethodGet, "/transactions?status=lost", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBlocks(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doRequest(t, a, http.MethodGet, "/blocks/latest", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Hash   string `json:"hash"`
		Size   int    `json:"size"`
		Height uint64 `json:"height"`
	}
	decode(t, w, &summary)
	assert.Equal(t, 3, summary.Size)
	assert.Equal(t, uint64(1), summary.Height)

	req = httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewReader(nil))
	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	t.Run("Processed block is found by hash and height", func(t *testing.T) {
		w := doRequest(t, a, http.MethodGet, "/blocks/hash/"+summary.Hash, nil)
		require.Equal(t, http.StatusOK, w.Code)
		w = doRequest(t, a, http.MethodGet, "/blocks/height/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, a, http.MethodGet, "/blocks/height/2", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = doRequest(t, a, http.MethodGet, "/blocks/hash/00ff", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Bad heights are rejected", func(t *testing.T) {
		w := doRequest(t, a, http.MethodGet, "/blocks/height/-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = doRequest(t, a, http.MethodGet, "/blocks/height/tip", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChainTransactions(t *testing.T) {
	a, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/chain/transactions", bytes.NewReader([]byte("raw-tx")))
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var info struct {
		Hash   string `json:"hash"`
		Size   int    `json:"size"`
		Status string `json:"status"`
	}
	decode(t, w, &info)
	assert.Equal(t, 6, info.Size)
	assert.Equal(t, "PROCESSED", info.Status)

	w = doRequest(t, a, http.MethodGet, "/chain/transactions/"+info.Hash, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, a, http.MethodGet, "/chain/transactions/00ff", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/chain/transactions", bytes.NewReader(nil))
	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPeers(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doRequest(t, a, http.MethodPost, "/network/peers", PeerRequest{Host: "localhost", Port: 70000})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, a, http.MethodGet, "/network/peers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var peers []string
	decode(t, w, &peers)
	assert.Empty(t, peers)

	w = doRequest(t, a, http.MethodDelete, "/network/peers", PeerRequest{Host: "localhost", Port: 8080})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMiddleware(t *testing.T) {
	t.Run("Request id is propagated", func(t *testing.T) {
		a, _ := newTestAPI(t)
		req := httptest.NewRequest(http.MethodGet, "/components", nil)
		req.Header.Set(requestIDHeader, "req-42")
		w := httptest.NewRecorder()
		a.Handler().ServeHTTP(w, req)
		assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
	})

	t.Run("Requests above the limit are rejected", func(t *testing.T) {
		a, _ := newTestAPI(t, WithRateLimit(rate.Every(time.Hour), 1))
		w := doRequest(t, a, http.MethodGet, "/components", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		w = doRequest(t, a, http.MethodGet, "/components", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("Swagger document is served", func(t *testing.T) {
		a, _ := newTestAPI(t)
		w := doRequest(t, a, http.MethodGet, "/swagger/doc.json", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/transactions/{id}/confirm")
	})

	t.Run("Swagger document describes raw payload routes", func(t *testing.T) {
		a, _ := newTestAPI(t)
		w := doRequest(t, a, http.MethodGet, "/swagger/doc.json", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var doc struct {
			Paths map[string]map[string]struct {
				Consumes  []string `json:"consumes"`
				Responses map[string]struct {
					Schema map[string]interface{} `json:"schema"`
				} `json:"responses"`
			} `json:"paths"`
		}
		decode(t, w, &doc)

		for _, path := range []string{"/blocks", "/chain/transactions"} {
			assert.Equal(t, []string{"application/octet-stream"}, doc.Paths[path]["post"].Consumes, path)
		}
		assert.Equal(t, "#/definitions/processor.BlockSummary", doc.Paths["/blocks/latest"]["get"].Responses["200"].Schema["$ref"])
		assert.Contains(t, doc.Paths, "/blocks/hash/{hash}")
		assert.Contains(t, doc.Paths, "/blocks/height/{height}")
		assert.Contains(t, doc.Paths, "/chain/transactions/{hash}")
	})
}
