// Package ledger holds the broadcast ledger storage backends.
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sliink/chaincore/internal/model"
)

const (
	StoreTypeMemory = "memory"
	StoreTypeLevel  = "level"
	StoreTypeBadger = "badger"
)

// ErrNotFound is returned by Get for an unknown id
var ErrNotFound = errors.New("ledger: entry not found")

// Store keeps the last known snapshot of each broadcast transaction
type Store interface {
	Get(id string) (*model.Transaction, error)
	Put(tx *model.Transaction) error
	Delete(id string) error
	// List returns every entry ordered by id
	List() ([]*model.Transaction, error)
	// Clear removes every entry
	Clear() error
	Close() error
}

// Opener creates a fresh store; the broadcaster calls it on every initialize
type Opener func() (Store, error)

// NewOpener returns the opener for a store type. Persistent types need a path;
// an empty path keeps leveldb and badger in memory.
func NewOpener(storeType, path string) (Opener, error) {
	switch storeType {
	case "", StoreTypeMemory:
		return func() (Store, error) { return NewMemoryStore(), nil }, nil
	case StoreTypeLevel:
		return func() (Store, error) { return OpenLevelStore(path) }, nil
	case StoreTypeBadger:
		return func() (Store, error) { return OpenBadgerStore(path) }, nil
	default:
		return nil, fmt.Errorf("ledger: unsupported store type %q", storeType)
	}
}

func sortByID(txs []*model.Transaction) {
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })
}
