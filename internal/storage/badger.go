package storage

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerStore реализует интерфейс Store на основе встраиваемой базы BadgerDB.
// Badger сам обеспечивает истечение срока жизни записей и обход ключей по префиксу.
type BadgerStore struct {
	db     *badger.DB
	logger *zap.Logger
}

// NewBadgerStore открывает базу BadgerDB в заданной директории
func NewBadgerStore(path string, logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		logger.Error("Failed to open BadgerDB", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	return &BadgerStore{
		db:     db,
		logger: logger,
	}, nil
}

// Get возвращает значение по ключу или ErrNotFound
func (s *BadgerStore) Get(key string) (string, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		s.logger.Error("Failed to get key from BadgerDB", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return string(value), nil
}

// Put сохраняет значение по ключу
func (s *BadgerStore) Put(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), []byte(value)))
	})
	if err != nil {
		s.logger.Error("Failed to put key to BadgerDB", zap.String("key", key), zap.Error(err))
	}
	return err
}

// PutTTL сохраняет значение с ограниченным сроком жизни
func (s *BadgerStore) PutTTL(key, value string, ttl time.Duration) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), []byte(value)).WithTTL(ttl))
	})
	if err != nil {
		s.logger.Error("Failed to put key with TTL to BadgerDB", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete удаляет ключ из хранилища
func (s *BadgerStore) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		s.logger.Error("Failed to delete key from BadgerDB", zap.String("key", key), zap.Error(err))
	}
	return err
}

// List возвращает отсортированные ключи с заданным префиксом
func (s *BadgerStore) List(prefix string) ([]string, error) {
	keys := make([]string, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to list keys from BadgerDB", zap.String("prefix", prefix), zap.Error(err))
		return nil, err
	}
	return keys, nil
}

// Close закрывает базу BadgerDB
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
