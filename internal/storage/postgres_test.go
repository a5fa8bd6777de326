package storage

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockDatabase оборачивает *sql.DB из sqlmock в интерфейс Database
type mockDatabase struct {
	conn *sql.DB
}

func (m *mockDatabase) Ping() error  { return m.conn.Ping() }
func (m *mockDatabase) Close() error { return m.conn.Close() }
func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.conn.Exec(query, args...)
}
func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.conn.Query(query, args...)
}
func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.conn.QueryRow(query, args...)
}

func newTestPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err, "sqlmock.New should not return error")
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return NewPostgresStore(&mockDatabase{conn: conn}, zap.NewNop()), mock
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	// Тест 1: существующий ключ
	mock.ExpectQuery("SELECT value FROM kv WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())").
		WithArgs("link:abc").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("value1"))

	value, err := store.Get("link:abc")
	require.NoError(t, err)
	assert.Equal(t, "value1", value)

	// Тест 2: отсутствующий ключ
	mock.ExpectQuery("SELECT value FROM kv WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound, "Get should return ErrNotFound for missing key")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePut(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec("INSERT INTO kv (key, value, expires_at) VALUES ($1, $2, NULL) ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = NULL").
		WithArgs("link:abc", "value1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Put("link:abc", "value1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePutTTL(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec("INSERT INTO kv (key, value, expires_at) VALUES ($1, $2, now() + $3 * interval '1 second') ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = now() + $3 * interval '1 second'").
		WithArgs("__session__:s1", "1", int64(86400)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.PutTTL("__session__:s1", "1", 24*time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec("DELETE FROM kv WHERE key = $1").
		WithArgs("link:abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete("link:abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreList(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	// Подчёркивания в служебных ключах не должны работать как шаблон LIKE
	mock.ExpectQuery("SELECT key FROM kv WHERE substr(key, 1, length($1)) = $1 AND (expires_at IS NULL OR expires_at > now()) ORDER BY key").
		WithArgs("link:").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("link:a").AddRow("link:b"))

	keys, err := store.List("link:")
	require.NoError(t, err)
	assert.Equal(t, []string{"link:a", "link:b"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}
