package pipeline

import (
	"testing"

	"github.com/sliink/chaincore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStages(t *testing.T) (*Validator, *Signer, *Broadcaster) {
	v, s, b := NewValidator(), NewSigner(nil), NewBroadcaster()
	require.True(t, v.Initialize())
	require.True(t, s.Initialize())
	require.True(t, b.Initialize())
	t.Cleanup(func() {
		b.Shutdown()
		s.Shutdown()
		v.Shutdown()
	})
	return v, s, b
}

func TestEndToEnd(t *testing.T) {
	v, s, b := newStages(t)

	t.Run("Transaction flows from PENDING to CONFIRMED", func(t *testing.T) {
		tx1 := &model.Transaction{
			ID: "tx1", Sender: "A", Recipient: "B", Amount: 100, Timestamp: 1000,
			Signature: "", Status: model.TxStatusPending,
		}

		valid, err := v.Validate(tx1)
		require.NoError(t, err)
		assert.True(t, valid)

		signed, err := s.Sign(tx1, "k")
		require.NoError(t, err)
		assert.NotEmpty(t, signed.Signature)

		ok, err := b.Broadcast(signed)
		require.NoError(t, err)
		assert.True(t, ok)
		got, err := b.BroadcastedTransaction("tx1")
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusBroadcast, got.Status)

		ok, err = b.ConfirmBroadcast("tx1")
		require.NoError(t, err)
		assert.True(t, ok)
		got, err = b.BroadcastedTransaction("tx1")
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusConfirmed, got.Status)
	})

	t.Run("Validation is advisory for the other stages", func(t *testing.T) {
		tx := &model.Transaction{
			ID: "tx-neg", Sender: "A", Recipient: "B", Amount: -50, Timestamp: 1000,
			Status: model.TxStatusPending,
		}

		valid, err := v.Validate(tx)
		require.NoError(t, err)
		assert.False(t, valid)

		signed, err := s.Sign(tx, "k")
		require.NoError(t, err)
		assert.Equal(t, int64(-50), signed.Amount)

		_, err = b.Broadcast(signed)
		require.NoError(t, err)
		got, err := b.BroadcastedTransaction("tx-neg")
		require.NoError(t, err)
		assert.Equal(t, int64(-50), got.Amount)
	})
}

func TestPipelineSubmit(t *testing.T) {
	p := New(newStages(t))

	t.Run("Submit returns the broadcast snapshot", func(t *testing.T) {
		tx := model.NewTransaction("A", "B", 25)
		got, err := p.Submit(tx, "k")
		require.NoError(t, err)
		assert.Equal(t, tx.ID, got.ID)
		assert.Equal(t, model.TxStatusBroadcast, got.Status)
		assert.NotEmpty(t, got.Signature)

		confirmed, err := p.Confirm(tx.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusConfirmed, confirmed.Status)
	})

	t.Run("Submit stops at validation", func(t *testing.T) {
		tx := model.NewTransaction("", "B", 25)
		_, err := p.Submit(tx, "k")
		assert.ErrorIs(t, err, ErrValidationFailed)

		_, err = p.Broadcaster.BroadcastedTransaction(tx.ID)
		assert.ErrorIs(t, err, model.ErrTransactionNotFound)
	})

	t.Run("Submit surfaces uninitialized stages", func(t *testing.T) {
		idle := New(NewValidator(), NewSigner(nil), NewBroadcaster())
		_, err := idle.Submit(model.NewTransaction("A", "B", 1), "k")
		assert.ErrorIs(t, err, model.ErrNotInitialized)
	})
}
