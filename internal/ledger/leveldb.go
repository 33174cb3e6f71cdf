package ledger

import (
	"errors"
	"fmt"

	"github.com/sliink/chaincore/internal/model"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var txPrefix = []byte("tx/")

// LevelStore keeps ledger entries in goleveldb as CBOR records
type LevelStore struct {
	db *leveldb.DB
}

// OpenLevelStore opens a leveldb store at path, or an in-memory one when path is empty
func OpenLevelStore(path string) (*LevelStore, error) {
	var (
		db  *leveldb.DB
		err error
	)
	if path == "" {
		db, err = leveldb.Open(storage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: open leveldb: %w", err)
	}
	return &LevelStore{db: db}, nil
}

func txKey(id string) []byte {
	return append(append([]byte{}, txPrefix...), id...)
}

func (s *LevelStore) Get(id string) (*model.Transaction, error) {
	data, err := s.db.Get(txKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.DecodeTransaction(data)
}

func (s *LevelStore) Put(tx *model.Transaction) error {
	data, err := model.EncodeTransaction(tx)
	if err != nil {
		return err
	}
	return s.db.Put(txKey(tx.ID), data, nil)
}

func (s *LevelStore) Delete(id string) error {
	ok, err := s.db.Has(txKey(id), nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.db.Delete(txKey(id), nil)
}

func (s *LevelStore) List() ([]*model.Transaction, error) {
	iter := s.db.NewIterator(util.BytesPrefix(txPrefix), nil)
	defer iter.Release()

	result := []*model.Transaction{}
	for iter.Next() {
		tx, err := model.DecodeTransaction(iter.Value())
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sortByID(result)
	return result, nil
}

func (s *LevelStore) Clear() error {
	iter := s.db.NewIterator(util.BytesPrefix(txPrefix), nil)
	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte{}, iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return err
	}
	return s.db.Write(batch, nil)
}

func (s *LevelStore) Close() error {
	return s.db.Close()
}
