package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err, "NewBadgerStore should not return error")
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestBadgerStore(t *testing.T) {
	store := newTestBadgerStore(t)

	// Тест 1: Get несуществующего ключа
	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound, "Get should return ErrNotFound for missing key")

	// Тест 2: Put и Get
	require.NoError(t, store.Put("link:abc", "value1"))
	value, err := store.Get("link:abc")
	require.NoError(t, err)
	assert.Equal(t, "value1", value)

	// Тест 3: перезапись значения
	require.NoError(t, store.Put("link:abc", "value2"))
	value, err = store.Get("link:abc")
	require.NoError(t, err)
	assert.Equal(t, "value2", value)

	// Тест 4: Delete
	require.NoError(t, store.Delete("link:abc"))
	_, err = store.Get("link:abc")
	assert.ErrorIs(t, err, ErrNotFound, "Get should return ErrNotFound after Delete")
}

func TestBadgerStoreList(t *testing.T) {
	store := newTestBadgerStore(t)

	require.NoError(t, store.Put("link:b", "2"))
	require.NoError(t, store.Put("link:a", "1"))
	require.NoError(t, store.Put("__config__", "cfg"))

	keys, err := store.List("link:")
	require.NoError(t, err)
	assert.Equal(t, []string{"link:a", "link:b"}, keys)

	keys, err = store.List("other:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBadgerStoreTTL(t *testing.T) {
	store := newTestBadgerStore(t)

	// Тест 1: запись с TTL доступна до истечения срока
	require.NoError(t, store.PutTTL("__session__:s1", "1", time.Minute))
	value, err := store.Get("__session__:s1")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	// Тест 2: истёкшая запись не видна
	require.NoError(t, store.PutTTL("__session__:s2", "1", time.Second))
	time.Sleep(1100 * time.Millisecond)
	_, err = store.Get("__session__:s2")
	assert.ErrorIs(t, err, ErrNotFound, "expired entry should not be readable")
}

func TestBadgerStorePersistence(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBadgerStore(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Put("link:abc", "persisted"))
	require.NoError(t, store.Close())

	reopened, err := NewBadgerStore(dir, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		_ = reopened.Close()
	}()

	value, err := reopened.Get("link:abc")
	require.NoError(t, err)
	assert.Equal(t, "persisted", value)
}
