package processor

import (
	"errors"
	"testing"

	"github.com/sliink/chaincore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockHandler is a mock implementation of ChainHandler
type MockHandler struct {
	blocks       int
	transactions int
	resets       int
	err          error
}

func (m *MockHandler) Reset() {
	m.blocks = 0
	m.resets++
}

func (m *MockHandler) HandleBlock(data []byte) (BlockSummary, error) {
	if m.err != nil {
		return BlockSummary{}, m.err
	}
	m.blocks++
	return BlockSummary{Hash: "h", Size: len(data), Height: uint64(m.blocks)}, nil
}

func (m *MockHandler) HandleTransaction(data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.transactions++
	return "h", nil
}

func TestBlockProcessor(t *testing.T) {
	p := NewBlockProcessor(nil)

	t.Run("Name is block_processor", func(t *testing.T) {
		assert.Equal(t, "block_processor", p.Name())
	})

	t.Run("ProcessBlock before Initialize fails with NotInitialized", func(t *testing.T) {
		ok, err := p.ProcessBlock([]byte{0x01})
		assert.False(t, ok)
		assert.ErrorIs(t, err, model.ErrNotInitialized)
	})

	require.True(t, p.Initialize())
	require.True(t, p.Initialize())

	t.Run("Non-empty block is processed", func(t *testing.T) {
		ok, err := p.ProcessBlock([]byte{0x01, 0x02})
		require.NoError(t, err)
		assert.True(t, ok)

		latest, found, err := p.LatestBlock()
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 2, latest.Size)
		assert.Equal(t, uint64(1), latest.Height)
		assert.Len(t, latest.Hash, 64)
	})

	t.Run("Empty block fails with InvalidInput", func(t *testing.T) {
		ok, err := p.ProcessBlock(nil)
		assert.False(t, ok)
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		_, err = p.ProcessBlock([]byte{})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("ValidateBlock does not record the block", func(t *testing.T) {
		valid, err := p.ValidateBlock([]byte{0x03})
		require.NoError(t, err)
		assert.True(t, valid)

		n, err := p.ProcessedCount()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), n)
	})

	t.Run("Shutdown resets state and guards operations", func(t *testing.T) {
		assert.True(t, p.Shutdown())
		assert.True(t, p.Shutdown())
		_, err := p.ProcessBlock([]byte{0x01})
		assert.ErrorIs(t, err, model.ErrNotInitialized)

		require.True(t, p.Initialize())
		defer p.Shutdown()
		_, found, err := p.LatestBlock()
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestBlockProcessorLookup(t *testing.T) {
	p := NewBlockProcessor(nil)
	require.True(t, p.Initialize())
	defer p.Shutdown()

	_, err := p.ProcessBlock([]byte("genesis"))
	require.NoError(t, err)
	_, err = p.ProcessBlock([]byte("second"))
	require.NoError(t, err)
	latest, _, err := p.LatestBlock()
	require.NoError(t, err)

	t.Run("Block is found by hash", func(t *testing.T) {
		summary, found, err := p.BlockByHash(latest.Hash)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, latest, summary)
	})

	t.Run("Block is found by height", func(t *testing.T) {
		summary, found, err := p.BlockByHeight(1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, len("genesis"), summary.Size)

		_, found, err = p.BlockByHeight(3)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Unknown hash is not found", func(t *testing.T) {
		_, found, err := p.BlockByHash("00ff")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Empty hash and negative height fail with InvalidInput", func(t *testing.T) {
		_, _, err := p.BlockByHash("")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		_, _, err = p.BlockByHeight(-1)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("Restart forgets indexed blocks and numbers from one again", func(t *testing.T) {
		require.True(t, p.Shutdown())
		_, _, err := p.BlockByHash(latest.Hash)
		assert.ErrorIs(t, err, model.ErrNotInitialized)

		require.True(t, p.Initialize())
		_, found, err := p.BlockByHash(latest.Hash)
		require.NoError(t, err)
		assert.False(t, found)

		_, err = p.ProcessBlock([]byte("third"))
		require.NoError(t, err)
		summary, _, err := p.LatestBlock()
		require.NoError(t, err)
		n, err := p.ProcessedCount()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), n)
		assert.Equal(t, n, summary.Height)
	})
}

func TestBlockProcessorHandler(t *testing.T) {
	t.Run("Delegates to the chain handler", func(t *testing.T) {
		handler := &MockHandler{}
		p := NewBlockProcessor(handler)
		require.True(t, p.Initialize())
		defer p.Shutdown()

		_, err := p.ProcessBlock([]byte{0x01})
		require.NoError(t, err)
		assert.Equal(t, 1, handler.blocks)
	})

	t.Run("Shutdown resets the chain handler", func(t *testing.T) {
		handler := &MockHandler{}
		p := NewBlockProcessor(handler)
		require.True(t, p.Initialize())
		assert.True(t, p.Shutdown())
		assert.True(t, p.Shutdown())
		assert.Equal(t, 1, handler.resets)
	})

	t.Run("Handler failure is reported as OperationFailed", func(t *testing.T) {
		p := NewBlockProcessor(&MockHandler{err: errors.New("bad block")})
		require.True(t, p.Initialize())
		defer p.Shutdown()

		ok, err := p.ProcessBlock([]byte{0x01})
		assert.False(t, ok)
		assert.ErrorIs(t, err, model.ErrOperationFailed)
	})
}

func TestTransactionProcessor(t *testing.T) {
	handler := &MockHandler{}
	p := NewTransactionProcessor(handler)

	t.Run("ProcessTransaction before Initialize fails with NotInitialized", func(t *testing.T) {
		_, err := p.ProcessTransaction([]byte{0x01})
		assert.ErrorIs(t, err, model.ErrNotInitialized)
	})

	require.True(t, p.Initialize())
	defer p.Shutdown()

	t.Run("Non-empty transaction is processed", func(t *testing.T) {
		ok, err := p.ProcessTransaction([]byte("tx"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, handler.transactions)
	})

	t.Run("Empty transaction fails with InvalidInput", func(t *testing.T) {
		_, err := p.ProcessTransaction(nil)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		_, err = p.ValidateTransaction(nil)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("ValidateTransaction accepts non-empty data", func(t *testing.T) {
		valid, err := p.ValidateTransaction([]byte("tx"))
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("Processed transaction is found by hash", func(t *testing.T) {
		info, found, err := p.TransactionInfo("h")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, TransactionSummary{Hash: "h", Size: 2, Status: TransactionProcessed}, info)

		_, found, err = p.TransactionInfo("missing")
		require.NoError(t, err)
		assert.False(t, found)

		_, _, err = p.TransactionInfo("")
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		n, err := p.TransactionCount()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestTransactionProcessorRestart(t *testing.T) {
	p := NewTransactionProcessor(nil)
	require.True(t, p.Initialize())

	_, err := p.ProcessTransaction([]byte("payload"))
	require.NoError(t, err)
	n, err := p.TransactionCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.True(t, p.Shutdown())
	_, _, err = p.TransactionInfo("aa")
	assert.ErrorIs(t, err, model.ErrNotInitialized)

	require.True(t, p.Initialize())
	defer p.Shutdown()
	n, err = p.TransactionCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDigestHandler(t *testing.T) {
	h := NewDigestHandler()

	a, err := h.HandleBlock([]byte("block"))
	require.NoError(t, err)
	b, err := h.HandleBlock([]byte("block"))
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.Equal(t, uint64(1), a.Height)
	assert.Equal(t, uint64(2), b.Height)

	txHash, err := h.HandleTransaction([]byte("block"))
	require.NoError(t, err)
	assert.Equal(t, a.Hash, txHash)

	h.Reset()
	c, err := h.HandleBlock([]byte("block"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.Height)
}
