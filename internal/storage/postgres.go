package storage

import (
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
)

// PostgresStore реализует интерфейс Store с использованием PostgreSQL.
// Записи хранятся в таблице kv; истечение срока жизни проверяется при чтении.
type PostgresStore struct {
	db     Database
	logger *zap.Logger
}

// NewPostgresStore создаёт новый экземпляр PostgresStore
func NewPostgresStore(db Database, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

// Get возвращает значение по ключу или ErrNotFound
func (s *PostgresStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM kv WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())",
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		s.logger.Error("Failed to get key from database", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return value, nil
}

// Put сохраняет значение по ключу без ограничения срока жизни
func (s *PostgresStore) Put(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value, expires_at) VALUES ($1, $2, NULL) "+
			"ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = NULL",
		key, value,
	)
	if err != nil {
		s.logger.Error("Failed to put key to database", zap.String("key", key), zap.Error(err))
	}
	return err
}

// PutTTL сохраняет значение с ограниченным сроком жизни
func (s *PostgresStore) PutTTL(key, value string, ttl time.Duration) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value, expires_at) VALUES ($1, $2, now() + $3 * interval '1 second') "+
			"ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = now() + $3 * interval '1 second'",
		key, value, int64(ttl.Seconds()),
	)
	if err != nil {
		s.logger.Error("Failed to put key with TTL to database", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete удаляет ключ из хранилища
func (s *PostgresStore) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = $1", key)
	if err != nil {
		s.logger.Error("Failed to delete key from database", zap.String("key", key), zap.Error(err))
	}
	return err
}

// List возвращает отсортированные ключи с заданным префиксом.
// Сравнение по substr вместо LIKE, чтобы подчёркивания в ключах не трактовались как шаблон.
func (s *PostgresStore) List(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT key FROM kv WHERE substr(key, 1, length($1)) = $1 "+
			"AND (expires_at IS NULL OR expires_at > now()) ORDER BY key",
		prefix,
	)
	if err != nil {
		s.logger.Error("Failed to list keys from database", zap.String("prefix", prefix), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Close закрывает соединение с базой данных
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
