package processor

import (
	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/model"
)

// TransactionProcessor hands raw transactions to the chain handler
type TransactionProcessor struct {
	handler ChainHandler
	seen    map[string]TransactionSummary
	core.BaseComponent
}

// NewTransactionProcessor creates a new transaction processor. A nil handler selects a DigestHandler.
func NewTransactionProcessor(handler ChainHandler) *TransactionProcessor {
	if handler == nil {
		handler = NewDigestHandler()
	}
	return &TransactionProcessor{
		handler:       handler,
		seen:          make(map[string]TransactionSummary),
		BaseComponent: core.NewBaseComponent("transaction_processor"),
	}
}

// Shutdown forgets every processed transaction
func (p *TransactionProcessor) Shutdown() bool {
	return p.ShutdownWith(func() {
		p.seen = make(map[string]TransactionSummary)
	})
}

// ProcessTransaction passes a transaction payload to the chain handler
func (p *TransactionProcessor) ProcessTransaction(data []byte) (bool, error) {
	_, err := p.Process(data)
	return err == nil, err
}

// Process is ProcessTransaction returning the recorded summary
func (p *TransactionProcessor) Process(data []byte) (TransactionSummary, error) {
	var summary TransactionSummary
	err := p.Guard(func() error {
		if len(data) == 0 {
			return model.InvalidInput(p.Name(), "transaction data is empty")
		}
		hash, err := p.handler.HandleTransaction(data)
		if err != nil {
			return model.OperationFailed(p.Name(), err, "process transaction")
		}
		summary = TransactionSummary{Hash: hash, Size: len(data), Status: TransactionProcessed}
		p.seen[hash] = summary
		return nil
	})
	return summary, err
}

// ValidateTransaction checks that a transaction payload is acceptable
func (p *TransactionProcessor) ValidateTransaction(data []byte) (bool, error) {
	var valid bool
	err := p.Guard(func() error {
		if len(data) == 0 {
			return model.InvalidInput(p.Name(), "transaction data is empty")
		}
		valid = true
		return nil
	})
	return valid, err
}

// TransactionInfo looks up a processed transaction by its hash
func (p *TransactionProcessor) TransactionInfo(hash string) (TransactionSummary, bool, error) {
	var (
		summary TransactionSummary
		found   bool
	)
	err := p.Guard(func() error {
		if hash == "" {
			return model.InvalidInput(p.Name(), "transaction hash is empty")
		}
		summary, found = p.seen[hash]
		return nil
	})
	return summary, found, err
}

// TransactionCount returns the number of distinct transactions processed since initialization
func (p *TransactionProcessor) TransactionCount() (int, error) {
	var n int
	err := p.Guard(func() error {
		n = len(p.seen)
		return nil
	})
	return n, err
}
