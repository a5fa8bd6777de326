package storage

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// entry хранит значение и момент истечения срока жизни.
// Нулевое время означает запись без срока жизни.
type entry struct {
	value     string
	expiresAt time.Time
}

// expired сообщает, истёк ли срок жизни записи
func (e entry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// MemoryStore реализует интерфейс Store с использованием map
type MemoryStore struct {
	mutex sync.RWMutex
	items map[string]entry
}

// NewMemoryStore создаёт новый экземпляр MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]entry),
	}
}

// Get возвращает значение по ключу или ErrNotFound
func (s *MemoryStore) Get(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	e, exists := s.items[key]
	if !exists || e.expired() {
		return "", ErrNotFound
	}
	return e.value, nil
}

// Put сохраняет значение по ключу
func (s *MemoryStore) Put(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.items[key] = entry{value: value}
	return nil
}

// PutTTL сохраняет значение с ограниченным сроком жизни
func (s *MemoryStore) PutTTL(key, value string, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.items[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete удаляет ключ из хранилища
func (s *MemoryStore) Delete(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.items, key)
	return nil
}

// List возвращает отсортированные ключи с заданным префиксом
func (s *MemoryStore) List(prefix string) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0)
	for key, e := range s.items {
		if strings.HasPrefix(key, prefix) && !e.expired() {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close закрывает хранилище
func (s *MemoryStore) Close() error {
	return nil
}
