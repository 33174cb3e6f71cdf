package ledger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sliink/chaincore/internal/model"
)

// BadgerStore keeps ledger entries in badger as CBOR records
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens a badger store at path, or an in-memory one when path is empty
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ledger: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(id string) (*model.Transaction, error) {
	var tx *model.Transaction
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := model.DecodeTransaction(val)
			tx = decoded
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return tx, err
}

func (s *BadgerStore) Put(tx *model.Transaction) error {
	data, err := model.EncodeTransaction(tx)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(txKey(tx.ID), data)
	})
}

func (s *BadgerStore) Delete(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(txKey(id)); err != nil {
			return err
		}
		return txn.Delete(txKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BadgerStore) List() ([]*model.Transaction, error) {
	result := []*model.Transaction{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(txPrefix); it.ValidForPrefix(txPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				tx, err := model.DecodeTransaction(val)
				if err != nil {
					return err
				}
				result = append(result, tx)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByID(result)
	return result, nil
}

func (s *BadgerStore) Clear() error {
	return s.db.DropPrefix(txPrefix)
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
