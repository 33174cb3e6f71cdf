package processor

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// BlockSummary describes the most recently processed block
type BlockSummary struct {
	Hash   string `json:"hash"`
	Size   int    `json:"size"`
	Height uint64 `json:"height"`
}

// TransactionSummary describes a processed transaction payload
type TransactionSummary struct {
	Hash   string `json:"hash"`
	Size   int    `json:"size"`
	Status string `json:"status"`
}

// TransactionProcessed is the status of every transaction the processor has accepted
const TransactionProcessed = "PROCESSED"

// ChainHandler interprets raw block and transaction payloads.
// Implementations must be safe for concurrent use.
type ChainHandler interface {
	HandleBlock(data []byte) (BlockSummary, error)
	HandleTransaction(data []byte) (string, error)

	// Reset forgets chain position, so the next block starts again from height 1
	Reset()
}

// DigestHandler is the default ChainHandler. It identifies payloads by their
// blake2b-256 digest and numbers blocks in the order they arrive.
type DigestHandler struct {
	height uint64
	mutex  sync.Mutex
}

// NewDigestHandler creates a new digest handler
func NewDigestHandler() *DigestHandler {
	return &DigestHandler{}
}

// HandleBlock digests a block payload and assigns it the next height
func (h *DigestHandler) HandleBlock(data []byte) (BlockSummary, error) {
	sum := blake2b.Sum256(data)

	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.height++
	return BlockSummary{
		Hash:   hex.EncodeToString(sum[:]),
		Size:   len(data),
		Height: h.height,
	}, nil
}

// Reset restarts block numbering
func (h *DigestHandler) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.height = 0
}

// HandleTransaction digests a transaction payload
func (h *DigestHandler) HandleTransaction(data []byte) (string, error) {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
