// Package storage содержит абстракцию key-value хранилища и её реализации.
// Хранилище гарантирует атомарность операций над одним ключом, но не
// поддерживает транзакции над несколькими ключами.
package storage

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound возвращается, когда ключ отсутствует в хранилище или его срок жизни истёк
var ErrNotFound = errors.New("key not found")

// Store определяет интерфейс key-value хранилища
type Store interface {
	// Get возвращает значение по ключу или ErrNotFound
	Get(key string) (string, error)
	// Put сохраняет значение по ключу без ограничения срока жизни
	Put(key, value string) error
	// PutTTL сохраняет значение с ограниченным сроком жизни
	PutTTL(key, value string, ttl time.Duration) error
	// Delete удаляет ключ; отсутствие ключа не является ошибкой
	Delete(key string) error
	// List возвращает отсортированные ключи с заданным префиксом
	List(prefix string) ([]string, error)
	// Close закрывает хранилище
	Close() error
}

// Database определяет интерфейс для работы с базой данных
type Database interface {
	// Ping проверяет соединение с базой данных
	Ping() error
	// Close закрывает соединение с базой данных
	Close() error
	// Exec выполняет SQL-команду без возврата результатов
	Exec(query string, args ...interface{}) (sql.Result, error)
	// Query выполняет SQL-запрос и возвращает результаты
	Query(query string, args ...interface{}) (*sql.Rows, error)
	// QueryRow выполняет SQL-запрос и возвращает одну строку результата
	QueryRow(query string, args ...interface{}) *sql.Row
}
