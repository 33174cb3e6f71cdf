package pipeline

import (
	"errors"
	"log/slog"

	"github.com/jinzhu/copier"
	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/ledger"
	"github.com/sliink/chaincore/internal/model"
)

// BroadcasterOptionFunc modifies a Broadcaster at construction time
type BroadcasterOptionFunc func(*Broadcaster)

// WithLedger specifies how the ledger store is opened on each initialize
func WithLedger(open ledger.Opener) BroadcasterOptionFunc {
	return func(b *Broadcaster) {
		b.openLedger = open
	}
}

// WithEvents specifies where broadcast and confirmation events are published
func WithEvents(publisher core.EventPublisher) BroadcasterOptionFunc {
	return func(b *Broadcaster) {
		b.events = publisher
	}
}

// WithBroadcasterLogger specifies the logger
func WithBroadcasterLogger(logger *slog.Logger) BroadcasterOptionFunc {
	return func(b *Broadcaster) {
		b.logger = logger
	}
}

// Broadcaster records broadcast transactions in a ledger and tracks their confirmation.
// Unsigned transactions are rejected, and only ids present in the ledger can be confirmed.
type Broadcaster struct {
	openLedger ledger.Opener
	store      ledger.Store
	events     core.EventPublisher
	logger     *slog.Logger
	core.BaseComponent
}

// NewBroadcaster creates a new transaction broadcaster backed by an in-memory ledger by default
func NewBroadcaster(opts ...BroadcasterOptionFunc) *Broadcaster {
	b := &Broadcaster{
		BaseComponent: core.NewBaseComponent("transaction_broadcaster"),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.openLedger == nil {
		b.openLedger = func() (ledger.Store, error) { return ledger.NewMemoryStore(), nil }
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Initialize opens a fresh, empty ledger
func (b *Broadcaster) Initialize() bool {
	return b.InitializeWith(func() bool {
		store, err := b.openLedger()
		if err != nil {
			b.logger.Error("failed to open ledger", "component", b.Name(), "error", err)
			return false
		}
		if err := store.Clear(); err != nil {
			b.logger.Error("failed to clear ledger", "component", b.Name(), "error", err)
			store.Close()
			return false
		}
		b.store = store
		return true
	})
}

// Shutdown drops every ledger entry and closes the store
func (b *Broadcaster) Shutdown() bool {
	return b.ShutdownWith(func() {
		if b.store == nil {
			return
		}
		if err := b.store.Clear(); err != nil {
			b.logger.Warn("failed to clear ledger", "component", b.Name(), "error", err)
		}
		if err := b.store.Close(); err != nil {
			b.logger.Warn("failed to close ledger", "component", b.Name(), "error", err)
		}
		b.store = nil
	})
}

// Broadcast records tx in the ledger with status BROADCAST
func (b *Broadcaster) Broadcast(tx *model.Transaction) (bool, error) {
	var entry *model.Transaction
	err := b.Guard(func() error {
		if tx == nil {
			return model.InvalidInput(b.Name(), "transaction is nil")
		}
		if tx.ID == "" {
			return model.InvalidInput(b.Name(), "transaction id is empty")
		}
		if !tx.IsSigned() {
			return model.InvalidInput(b.Name(), "transaction %q is not signed", tx.ID)
		}

		from := tx.Status
		if from == "" {
			from = model.TxStatusPending
		}
		if existing, err := b.store.Get(tx.ID); err == nil {
			from = existing.Status
		} else if !errors.Is(err, ledger.ErrNotFound) {
			return model.OperationFailed(b.Name(), err, "read ledger entry %q", tx.ID)
		}
		if !from.CanAdvanceTo(model.TxStatusBroadcast) {
			return model.InvalidTransition(b.Name(), tx.ID, from, model.TxStatusBroadcast)
		}

		entry = &model.Transaction{}
		if err := copier.Copy(entry, tx); err != nil {
			return model.OperationFailed(b.Name(), err, "copy transaction %q", tx.ID)
		}
		entry.Status = model.TxStatusBroadcast
		if err := b.store.Put(entry); err != nil {
			return model.OperationFailed(b.Name(), err, "write ledger entry %q", tx.ID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	b.logger.Debug("transaction broadcast", "component", b.Name(), "tx", entry.ID)
	b.publish(model.EventTransactionBroadcast, entry)
	return true, nil
}

// BroadcastedTransaction returns the ledger snapshot for id
func (b *Broadcaster) BroadcastedTransaction(id string) (*model.Transaction, error) {
	var tx *model.Transaction
	err := b.Guard(func() error {
		var err error
		tx, err = b.get(id)
		return err
	})
	return tx, err
}

// ConfirmBroadcast moves the ledger entry for id from BROADCAST to CONFIRMED.
// Confirming an already confirmed entry succeeds without change.
func (b *Broadcaster) ConfirmBroadcast(id string) (bool, error) {
	var (
		entry   *model.Transaction
		changed bool
	)
	err := b.Guard(func() error {
		var err error
		entry, err = b.get(id)
		if err != nil {
			return err
		}
		if entry.Status == model.TxStatusConfirmed {
			return nil
		}
		if entry.Status != model.TxStatusBroadcast {
			return model.InvalidTransition(b.Name(), id, entry.Status, model.TxStatusConfirmed)
		}
		entry.Status = model.TxStatusConfirmed
		if err := b.store.Put(entry); err != nil {
			return model.OperationFailed(b.Name(), err, "write ledger entry %q", id)
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if changed {
		b.logger.Debug("transaction confirmed", "component", b.Name(), "tx", id)
		b.publish(model.EventTransactionConfirmed, entry)
	}
	return true, nil
}

// Transactions returns every ledger entry ordered by id
func (b *Broadcaster) Transactions() ([]*model.Transaction, error) {
	var txs []*model.Transaction
	err := b.Guard(func() error {
		var err error
		txs, err = b.store.List()
		if err != nil {
			return model.OperationFailed(b.Name(), err, "list ledger")
		}
		return nil
	})
	return txs, err
}

// TransactionsByStatus returns the ledger entries with the given status
func (b *Broadcaster) TransactionsByStatus(status model.TransactionStatus) ([]*model.Transaction, error) {
	all, err := b.Transactions()
	if err != nil {
		return nil, err
	}
	result := make([]*model.Transaction, 0, len(all))
	for _, tx := range all {
		if tx.Status == status {
			result = append(result, tx)
		}
	}
	return result, nil
}

// Forget removes the ledger entry for id
func (b *Broadcaster) Forget(id string) error {
	return b.Guard(func() error {
		err := b.store.Delete(id)
		if errors.Is(err, ledger.ErrNotFound) {
			return model.TransactionNotFound(b.Name(), id)
		}
		if err != nil {
			return model.OperationFailed(b.Name(), err, "delete ledger entry %q", id)
		}
		return nil
	})
}

// get must be called under the component lock
func (b *Broadcaster) get(id string) (*model.Transaction, error) {
	if id == "" {
		return nil, model.InvalidInput(b.Name(), "transaction id is empty")
	}
	tx, err := b.store.Get(id)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, model.TransactionNotFound(b.Name(), id)
	}
	if err != nil {
		return nil, model.OperationFailed(b.Name(), err, "read ledger entry %q", id)
	}
	return tx, nil
}

func (b *Broadcaster) publish(eventType model.EventType, tx *model.Transaction) {
	if b.events == nil {
		return
	}
	snapshot := *tx
	b.events.Publish(core.NewEvent(eventType, b.Name(), snapshot))
}
