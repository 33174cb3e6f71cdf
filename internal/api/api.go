package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sliink/chaincore/internal/api/docs"
	"github.com/sliink/chaincore/internal/model"
	"github.com/sliink/chaincore/internal/node"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// OptionFunc modifies an API at construction time
type OptionFunc func(*API)

// WithRateLimit limits the request rate accepted by the API. A zero limit disables limiting.
func WithRateLimit(limit rate.Limit, burst int) OptionFunc {
	return func(a *API) {
		if limit <= 0 {
			a.limiter = nil
			return
		}
		a.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithLogger specifies the request logger
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(a *API) {
		a.logger = logger
	}
}

// API represents the REST API of a chaincore node
type API struct {
	node    *node.Node
	router  *gin.Engine
	server  *http.Server
	limiter *rate.Limiter
	logger  *slog.Logger
	port    int
	host    string
}

// NewAPI creates a new API instance
// @title           Chaincore API
// @version         1.0
// @description     API for controlling a chaincore node and its transaction pipeline

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /
func NewAPI(n *node.Node, host string, port int, opts ...OptionFunc) *API {
	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", host, port)
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	a := &API{
		node:    n,
		router:  gin.New(),
		limiter: rate.NewLimiter(rate.Limit(50), 100),
		port:    port,
		host:    host,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	a.router.Use(gin.Recovery(), a.requestID, a.logRequest, a.rateLimit)
	a.setupRoutes()
	return a
}

// setupRoutes configures all the API routes
func (a *API) setupRoutes() {
	a.router.GET("/health", a.healthCheck)

	components := a.router.Group("/components")
	{
		components.GET("", a.getComponents)
		components.GET("/:name", a.getComponent)
	}

	// Controls
	a.router.POST("/start", a.startNode)
	a.router.POST("/stop", a.stopNode)
	a.router.POST("/restart", a.restartNode)

	a.router.GET("/config", a.getConfig)
	a.router.PUT("/config", a.updateConfig)

	a.router.POST("/keys", a.generateKeys)

	transactions := a.router.Group("/transactions")
	{
		transactions.GET("", a.listTransactions)
		transactions.POST("", a.submitTransaction)
		transactions.GET("/:id", a.getTransaction)
		transactions.POST("/:id/confirm", a.confirmTransaction)
	}

	blocks := a.router.Group("/blocks")
	{
		blocks.POST("", a.processBlock)
		blocks.GET("/latest", a.latestBlock)
		blocks.GET("/hash/:hash", a.blockByHash)
		blocks.GET("/height/:height", a.blockByHeight)
	}

	chainTransactions := a.router.Group("/chain/transactions")
	{
		chainTransactions.POST("", a.processTransaction)
		chainTransactions.GET("/:hash", a.transactionInfo)
	}

	peers := a.router.Group("/network/peers")
	{
		peers.GET("", a.listPeers)
		peers.POST("", a.connectPeer)
		peers.DELETE("", a.disconnectPeer)
	}

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Handler returns the HTTP handler serving the API
func (a *API) Handler() http.Handler {
	return a.router
}

// Start starts the API server. It blocks until the server stops.
func (a *API) Start() error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.Info("api listening", "addr", addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the API server
func (a *API) Stop(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *API) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header(requestIDHeader, id)
	c.Next()
}

func (a *API) logRequest(c *gin.Context) {
	start := time.Now()
	c.Next()
	a.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"request_id", c.GetString("request_id"))
}

func (a *API) rateLimit(c *gin.Context) {
	if a.limiter != nil && !a.limiter.Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
			Error:     "rate limit exceeded",
			RequestID: c.GetString("request_id"),
		})
		return
	}
	c.Next()
}

// fail writes err with the status code matching its error code
func (a *API) fail(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error(), RequestID: c.GetString("request_id")}
	status := http.StatusInternalServerError

	var e *model.Error
	if errors.As(err, &e) {
		resp.Code = string(e.Code)
		switch e.Code {
		case model.CodeInvalidInput, model.CodeInvalidConfiguration:
			status = http.StatusBadRequest
		case model.CodeNotInitialized, model.CodeRegistryNotInitialized:
			status = http.StatusServiceUnavailable
		case model.CodeTransactionNotFound, model.CodeComponentNotFound:
			status = http.StatusNotFound
		case model.CodeInvalidTransition, model.CodeDuplicateComponent:
			status = http.StatusConflict
		}
	}
	c.JSON(status, resp)
}
