// Package processor holds the stateless block and transaction processors.
// Both delegate payload interpretation to a ChainHandler.
package processor

import (
	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/model"
)

// BlockProcessor hands raw blocks to the chain handler
type BlockProcessor struct {
	handler   ChainHandler
	latest    *BlockSummary
	processed uint64
	byHash    map[string]BlockSummary
	byHeight  map[uint64]BlockSummary
	core.BaseComponent
}

// NewBlockProcessor creates a new block processor. A nil handler selects a DigestHandler.
func NewBlockProcessor(handler ChainHandler) *BlockProcessor {
	if handler == nil {
		handler = NewDigestHandler()
	}
	return &BlockProcessor{
		handler:       handler,
		byHash:        make(map[string]BlockSummary),
		byHeight:      make(map[uint64]BlockSummary),
		BaseComponent: core.NewBaseComponent("block_processor"),
	}
}

// Shutdown forgets every processed block and rewinds the chain handler
func (p *BlockProcessor) Shutdown() bool {
	return p.ShutdownWith(func() {
		p.latest = nil
		p.processed = 0
		p.byHash = make(map[string]BlockSummary)
		p.byHeight = make(map[uint64]BlockSummary)
		p.handler.Reset()
	})
}

// ProcessBlock passes a block payload to the chain handler
func (p *BlockProcessor) ProcessBlock(data []byte) (bool, error) {
	err := p.Guard(func() error {
		if len(data) == 0 {
			return model.InvalidInput(p.Name(), "block data is empty")
		}
		summary, err := p.handler.HandleBlock(data)
		if err != nil {
			return model.OperationFailed(p.Name(), err, "process block")
		}
		p.latest = &summary
		p.processed++
		p.byHash[summary.Hash] = summary
		p.byHeight[summary.Height] = summary
		return nil
	})
	return err == nil, err
}

// ValidateBlock checks that a block payload is acceptable without recording it
func (p *BlockProcessor) ValidateBlock(data []byte) (bool, error) {
	var valid bool
	err := p.Guard(func() error {
		if len(data) == 0 {
			return model.InvalidInput(p.Name(), "block data is empty")
		}
		valid = true
		return nil
	})
	return valid, err
}

// LatestBlock returns the summary of the last processed block, if any
func (p *BlockProcessor) LatestBlock() (BlockSummary, bool, error) {
	var (
		summary BlockSummary
		found   bool
	)
	err := p.Guard(func() error {
		if p.latest != nil {
			summary, found = *p.latest, true
		}
		return nil
	})
	return summary, found, err
}

// ProcessedCount returns the number of blocks processed since initialization
func (p *BlockProcessor) ProcessedCount() (uint64, error) {
	var n uint64
	err := p.Guard(func() error {
		n = p.processed
		return nil
	})
	return n, err
}

// BlockByHash looks up a processed block by its hash
func (p *BlockProcessor) BlockByHash(hash string) (BlockSummary, bool, error) {
	var (
		summary BlockSummary
		found   bool
	)
	err := p.Guard(func() error {
		if hash == "" {
			return model.InvalidInput(p.Name(), "block hash is empty")
		}
		summary, found = p.byHash[hash]
		return nil
	})
	return summary, found, err
}

// BlockByHeight looks up a processed block by its height
func (p *BlockProcessor) BlockByHeight(height int64) (BlockSummary, bool, error) {
	var (
		summary BlockSummary
		found   bool
	)
	err := p.Guard(func() error {
		if height < 0 {
			return model.InvalidInput(p.Name(), "block height %d is negative", height)
		}
		summary, found = p.byHeight[uint64(height)]
		return nil
	})
	return summary, found, err
}
