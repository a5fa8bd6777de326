package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ntkrnl64/krnl-go/internal/models"
	"github.com/ntkrnl64/krnl-go/internal/storage"
)

// seedLink записывает каноническую ссылку с заданным временем создания
func seedLink(t *testing.T, store storage.Store, id, url string, createdAt int64, aliases ...string) {
	t.Helper()
	raw, err := models.EncodeLink(&models.Link{URL: url, CreatedAt: createdAt, Aliases: aliases})
	require.NoError(t, err)
	require.NoError(t, store.Put("link:"+id, raw))
}

// seedAlias записывает алиас на каноническую ссылку
func seedAlias(t *testing.T, store storage.Store, id, aliasOf string) {
	t.Helper()
	raw, err := models.EncodeAlias(aliasOf)
	require.NoError(t, err)
	require.NoError(t, store.Put("link:"+id, raw))
}

func TestMerge(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, "test_secret", zap.NewNop())

	seedLink(t, store, "a", "https://example.com", 100)
	seedLink(t, store, "b", "https://example.com", 200, "b1")
	seedAlias(t, store, "b1", "b")
	seedLink(t, store, "c", "https://other.com", 150)

	merged, err := svc.Merge(nil)
	require.NoError(t, err, "Merge should not return error")
	assert.Equal(t, 1, merged, "one duplicate should be absorbed")

	// Тест 1: самая ранняя запись осталась канонической и собрала все алиасы
	primary, err := svc.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", primary.ID)
	assert.Equal(t, []string{"b", "b1"}, primary.Aliases)

	// Тест 2: дубликат и его бывший алиас указывают на каноническую запись
	resolved, err := svc.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "a", resolved.ID)
	resolved, err = svc.Get("b1")
	require.NoError(t, err)
	assert.Equal(t, "a", resolved.ID, "nested alias should be repointed, not chained")

	// Тест 3: ссылка с другим URL не затронута
	other, err := svc.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "c", other.ID)
	assert.Empty(t, other.Aliases)

	// Тест 4: повторное объединение ничего не меняет
	merged, err = svc.Merge(nil)
	require.NoError(t, err)
	assert.Zero(t, merged, "merge should be idempotent")
}

func TestMergeStableTieBreak(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, "test_secret", zap.NewNop())

	// Одинаковое время создания: канонической остаётся первая в порядке обхода
	seedLink(t, store, "a", "https://example.com", 100)
	seedLink(t, store, "b", "https://example.com", 100)

	merged, err := svc.Merge(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, merged)

	primary, err := svc.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "a", primary.ID)
	assert.Equal(t, []string{"b"}, primary.Aliases)
}

func TestMergeScoped(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, "test_secret", zap.NewNop())

	seedLink(t, store, "a", "https://example.com", 100)
	seedLink(t, store, "b", "https://example.com", 200)
	seedLink(t, store, "c", "https://example.com", 300)

	// Тест 1: вне области видимости дубликаты не трогаются
	merged, err := svc.Merge([]string{"a"})
	require.NoError(t, err)
	assert.Zero(t, merged, "single link in scope has nothing to merge with")

	// Тест 2: объединяются только ссылки из списка
	merged, err = svc.Merge([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, merged)

	untouched, err := svc.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "c", untouched.ID, "link outside scope should stay canonical")

	// Тест 3: пустой список отличается от отсутствия списка
	merged, err = svc.Merge([]string{})
	require.NoError(t, err)
	assert.Zero(t, merged)
}

func TestMergeRoundTrip(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(models.LinkPayload{ID: "a", URL: "https://example.com/1"})
	require.NoError(t, err)
	_, err = svc.Create(models.LinkPayload{ID: "b", URL: "https://example.com/2"})
	require.NoError(t, err)

	// Обе ссылки приводятся к одному URL, затем объединяются
	_, err = svc.Update("b", models.LinkPayload{URL: "https://example.com/1"})
	require.NoError(t, err)

	merged, err := svc.Merge(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, merged)

	resolved, err := svc.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "a", resolved.ID)
	assert.Equal(t, "https://example.com/1", resolved.URL)

	links, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, links, 1)
}
