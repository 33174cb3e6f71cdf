package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/keys"
	"github.com/sliink/chaincore/internal/model"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ComponentResponse describes one registered component
type ComponentResponse struct {
	Name   string                `json:"name"`
	Status model.ComponentStatus `json:"status"`
}

// KeyResponse is a generated key pair with its address
type KeyResponse struct {
	keys.KeyPair
	Address string `json:"address"`
}

// SubmitRequest is the body of POST /transactions
type SubmitRequest struct {
	ID         string `json:"id"`
	Sender     string `json:"sender" binding:"required"`
	Recipient  string `json:"recipient"`
	Amount     int64  `json:"amount"`
	Timestamp  int64  `json:"timestamp"`
	PrivateKey string `json:"private_key" binding:"required"`
}

// PeerRequest identifies a peer
type PeerRequest struct {
	Host string `json:"host" binding:"required"`
	Port int    `json:"port" binding:"required"`
}

func componentResponse(c core.Component) ComponentResponse {
	status := model.StatusUninitialized
	if reporter, ok := c.(core.StatusReporter); ok {
		status = reporter.Status()
	}
	return ComponentResponse{Name: c.Name(), Status: status}
}

// healthCheck handles GET /health
// @Summary      Health check
// @Description  Report the health of every registered component
// @Tags         system
// @Produce      json
// @Success      200  {object}  model.HealthStatus
// @Failure      503  {object}  ErrorResponse
// @Router       /health [get]
func (a *API) healthCheck(c *gin.Context) {
	monitor := a.node.Health()
	if monitor == nil {
		monitor = core.NewHealthMonitor(a.node.Registry())
	}
	health := monitor.HealthStatus()

	status := http.StatusOK
	if health.Status != model.StatusReady {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}

// getComponents handles GET /components
// @Summary      List components
// @Description  List registered components in registration order
// @Tags         components
// @Produce      json
// @Success      200  {array}  ComponentResponse
// @Router       /components [get]
func (a *API) getComponents(c *gin.Context) {
	components := a.node.Registry().Components()
	result := make([]ComponentResponse, 0, len(components))
	for _, component := range components {
		result = append(result, componentResponse(component))
	}
	c.JSON(http.StatusOK, result)
}

// getComponent handles GET /components/:name
// @Summary      Get component
// @Description  Get the lifecycle status of one component
// @Tags         components
// @Produce      json
// @Param        name  path  string  true  "Component name"
// @Success      200  {object}  ComponentResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /components/{name} [get]
func (a *API) getComponent(c *gin.Context) {
	component, ok := a.node.Registry().Component(c.Param("name"))
	if !ok {
		a.fail(c, model.ComponentNotFound(c.Param("name")))
		return
	}
	c.JSON(http.StatusOK, componentResponse(component))
}

// startNode handles POST /start
// @Summary      Start node
// @Description  Initialize every component in registration order
// @Tags         control
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  ErrorResponse
// @Router       /start [post]
func (a *API) startNode(c *gin.Context) {
	if err := a.node.Start(); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Node started"})
}

// stopNode handles POST /stop
// @Summary      Stop node
// @Description  Shut every component down in reverse registration order
// @Tags         control
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  ErrorResponse
// @Router       /stop [post]
func (a *API) stopNode(c *gin.Context) {
	if err := a.node.Stop(); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Node stopped"})
}

// restartNode handles POST /restart
// @Summary      Restart node
// @Description  Stop then start the node
// @Tags         control
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  ErrorResponse
// @Router       /restart [post]
func (a *API) restartNode(c *gin.Context) {
	if err := a.node.Stop(); err != nil {
		a.fail(c, err)
		return
	}
	if err := a.node.Start(); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Node restarted"})
}

// getConfig handles GET /config
// @Summary      Get configuration
// @Description  Get the registry configuration with the API key redacted
// @Tags         config
// @Produce      json
// @Success      200  {object}  model.Config
// @Router       /config [get]
func (a *API) getConfig(c *gin.Context) {
	cfg := a.node.Registry().Config()
	if cfg.APIKey != "" {
		cfg.APIKey = "***"
	}
	c.JSON(http.StatusOK, cfg)
}

// updateConfig handles PUT /config
// @Summary      Update configuration
// @Description  Replace the registry configuration
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        config  body  model.Config  true  "New configuration"
// @Success      200  {object}  model.Config
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /config [put]
func (a *API) updateConfig(c *gin.Context) {
	var cfg model.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		a.fail(c, model.InvalidInput("api", "invalid configuration format: %v", err))
		return
	}
	if err := a.node.Registry().UpdateConfig(cfg); err != nil {
		a.fail(c, err)
		return
	}
	a.getConfig(c)
}

// generateKeys handles POST /keys
// @Summary      Generate key pair
// @Description  Generate a secp256k1 key pair and its address
// @Tags         security
// @Produce      json
// @Success      201  {object}  KeyResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /keys [post]
func (a *API) generateKeys(c *gin.Context) {
	security := a.node.Security()
	if security == nil {
		a.fail(c, model.ComponentNotFound("security_manager"))
		return
	}
	pair, err := security.GenerateKeyPair()
	if err != nil {
		a.fail(c, err)
		return
	}
	address, err := security.Address(pair.PublicKey)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, KeyResponse{KeyPair: pair, Address: address})
}

// submitTransaction handles POST /transactions
// @Summary      Submit transaction
// @Description  Validate, sign and broadcast a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request  body  SubmitRequest  true  "Transaction to submit"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /transactions [post]
func (a *API) submitTransaction(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, model.InvalidInput("api", "%v", err))
		return
	}
	p, err := a.node.Pipeline()
	if err != nil {
		a.fail(c, err)
		return
	}

	tx := model.NewTransaction(req.Sender, req.Recipient, req.Amount)
	if req.ID != "" {
		tx.ID = req.ID
	}
	if req.Timestamp != 0 {
		tx.Timestamp = req.Timestamp
	}
	broadcast, err := p.Submit(tx, req.PrivateKey)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, broadcast)
}

// listTransactions handles GET /transactions
// @Summary      List transactions
// @Description  List ledger entries, optionally filtered by status
// @Tags         transactions
// @Produce      json
// @Param        status  query  string  false  "PENDING, BROADCAST or CONFIRMED"
// @Success      200  {array}  model.Transaction
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /transactions [get]
func (a *API) listTransactions(c *gin.Context) {
	broadcaster := a.node.Broadcaster()
	if broadcaster == nil {
		a.fail(c, model.ComponentNotFound("transaction_broadcaster"))
		return
	}

	var (
		txs []*model.Transaction
		err error
	)
	if s := c.Query("status"); s != "" {
		status := model.TransactionStatus(strings.ToUpper(s))
		if !status.Valid() {
			a.fail(c, model.InvalidInput("api", "unknown status %q", s))
			return
		}
		txs, err = broadcaster.TransactionsByStatus(status)
	} else {
		txs, err = broadcaster.Transactions()
	}
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

// getTransaction handles GET /transactions/:id
// @Summary      Get transaction
// @Description  Get the ledger entry of a broadcast transaction
// @Tags         transactions
// @Produce      json
// @Param        id  path  string  true  "Transaction id"
// @Success      200  {object}  model.Transaction
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /transactions/{id} [get]
func (a *API) getTransaction(c *gin.Context) {
	broadcaster := a.node.Broadcaster()
	if broadcaster == nil {
		a.fail(c, model.ComponentNotFound("transaction_broadcaster"))
		return
	}
	tx, err := broadcaster.BroadcastedTransaction(c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// confirmTransaction handles POST /transactions/:id/confirm
// @Summary      Confirm transaction
// @Description  Move a broadcast transaction to CONFIRMED
// @Tags         transactions
// @Produce      json
// @Param        id  path  string  true  "Transaction id"
// @Success      200  {object}  model.Transaction
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /transactions/{id}/confirm [post]
func (a *API) confirmTransaction(c *gin.Context) {
	p, err := a.node.Pipeline()
	if err != nil {
		a.fail(c, err)
		return
	}
	tx, err := p.Confirm(c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// processBlock handles POST /blocks
// @Summary      Process block
// @Description  Hand a raw block to the block processor
// @Tags         blocks
// @Accept       octet-stream
// @Produce      json
// @Success      200  {object}  processor.BlockSummary
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /blocks [post]
func (a *API) processBlock(c *gin.Context) {
	blocks := a.node.Blocks()
	if blocks == nil {
		a.fail(c, model.ComponentNotFound("block_processor"))
		return
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, 8<<20))
	if err != nil {
		a.fail(c, model.InvalidInput("api", "read block: %v", err))
		return
	}
	if _, err := blocks.ProcessBlock(data); err != nil {
		a.fail(c, err)
		return
	}
	a.latestBlock(c)
}

// latestBlock handles GET /blocks/latest
// @Summary      Latest block
// @Description  Summary of the last processed block
// @Tags         blocks
// @Produce      json
// @Success      200  {object}  processor.BlockSummary
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /blocks/latest [get]
func (a *API) latestBlock(c *gin.Context) {
	blocks := a.node.Blocks()
	if blocks == nil {
		a.fail(c, model.ComponentNotFound("block_processor"))
		return
	}
	summary, found, err := blocks.LatestBlock()
	if err != nil {
		a.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no block processed yet", RequestID: c.GetString("request_id")})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// blockByHash handles GET /blocks/hash/:hash
// @Summary      Block by hash
// @Description  Summary of a processed block looked up by hash
// @Tags         blocks
// @Produce      json
// @Param        hash  path  string  true  "Block hash"
// @Success      200  {object}  processor.BlockSummary
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /blocks/hash/{hash} [get]
func (a *API) blockByHash(c *gin.Context) {
	blocks := a.node.Blocks()
	if blocks == nil {
		a.fail(c, model.ComponentNotFound("block_processor"))
		return
	}
	summary, found, err := blocks.BlockByHash(c.Param("hash"))
	if err != nil {
		a.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "block not found", RequestID: c.GetString("request_id")})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// blockByHeight handles GET /blocks/height/:height
// @Summary      Block by height
// @Description  Summary of a processed block looked up by height
// @Tags         blocks
// @Produce      json
// @Param        height  path  int  true  "Block height"
// @Success      200  {object}  processor.BlockSummary
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /blocks/height/{height} [get]
func (a *API) blockByHeight(c *gin.Context) {
	blocks := a.node.Blocks()
	if blocks == nil {
		a.fail(c, model.ComponentNotFound("block_processor"))
		return
	}
	height, err := strconv.ParseInt(c.Param("height"), 10, 64)
	if err != nil {
		a.fail(c, model.InvalidInput("api", "block height %q is not a number", c.Param("height")))
		return
	}
	summary, found, err := blocks.BlockByHeight(height)
	if err != nil {
		a.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "block not found", RequestID: c.GetString("request_id")})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// processTransaction handles POST /chain/transactions
// @Summary      Process raw transaction
// @Description  Hand a raw transaction payload to the transaction processor
// @Tags         chain
// @Accept       octet-stream
// @Produce      json
// @Success      200  {object}  processor.TransactionSummary
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /chain/transactions [post]
func (a *API) processTransaction(c *gin.Context) {
	txs := a.node.Transactions()
	if txs == nil {
		a.fail(c, model.ComponentNotFound("transaction_processor"))
		return
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		a.fail(c, model.InvalidInput("api", "read transaction: %v", err))
		return
	}
	summary, err := txs.Process(data)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// transactionInfo handles GET /chain/transactions/:hash
// @Summary      Raw transaction info
// @Description  Summary of a processed transaction payload looked up by hash
// @Tags         chain
// @Produce      json
// @Param        hash  path  string  true  "Transaction hash"
// @Success      200  {object}  processor.TransactionSummary
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /chain/transactions/{hash} [get]
func (a *API) transactionInfo(c *gin.Context) {
	txs := a.node.Transactions()
	if txs == nil {
		a.fail(c, model.ComponentNotFound("transaction_processor"))
		return
	}
	summary, found, err := txs.TransactionInfo(c.Param("hash"))
	if err != nil {
		a.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "transaction not processed", RequestID: c.GetString("request_id")})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// listPeers handles GET /network/peers
// @Summary      List peers
// @Description  List connected peers
// @Tags         network
// @Produce      json
// @Success      200  {array}  string
// @Failure      503  {object}  ErrorResponse
// @Router       /network/peers [get]
func (a *API) listPeers(c *gin.Context) {
	network := a.node.Network()
	if network == nil {
		a.fail(c, model.ComponentNotFound("network_manager"))
		return
	}
	peers, err := network.ConnectedPeers()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, peers)
}

// connectPeer handles POST /network/peers
// @Summary      Connect peer
// @Description  Connect to a peer with retries
// @Tags         network
// @Accept       json
// @Produce      json
// @Param        request  body  PeerRequest  true  "Peer address"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /network/peers [post]
func (a *API) connectPeer(c *gin.Context) {
	var req PeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, model.InvalidInput("api", "%v", err))
		return
	}
	if err := a.node.ConnectPeer(c.Request.Context(), req.Host, req.Port); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Peer connected"})
}

// disconnectPeer handles DELETE /network/peers
// @Summary      Disconnect peer
// @Description  Disconnect from a peer
// @Tags         network
// @Accept       json
// @Produce      json
// @Param        request  body  PeerRequest  true  "Peer address"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /network/peers [delete]
func (a *API) disconnectPeer(c *gin.Context) {
	network := a.node.Network()
	if network == nil {
		a.fail(c, model.ComponentNotFound("network_manager"))
		return
	}
	var req PeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, model.InvalidInput("api", "%v", err))
		return
	}
	if _, err := network.Disconnect(req.Host, req.Port); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Peer disconnected"})
}
