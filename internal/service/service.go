// Package service содержит бизнес-логику сервиса коротких ссылок:
// разрешение идентификаторов, реестр канонических ссылок, управление
// алиасами, объединение дубликатов и администраторские сессии.
package service

import (
	"crypto/rand"
	"errors"

	"github.com/ntkrnl64/krnl-go/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput   = errors.New("invalid request payload")
	ErrInvalidID      = errors.New("ID must be 1-50 chars: a-z, A-Z, 0-9, _ or -")
	ErrIDExists       = errors.New("ID already exists")
	ErrLinkNotFound   = errors.New("link not found")
	ErrAliasTarget    = errors.New("cannot add alias to an alias")
	ErrAlreadySetup   = errors.New("already set up")
	ErrNotConfigured  = errors.New("not configured")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
	ErrWrongPassword  = errors.New("invalid password")
	ErrInvalidToken   = errors.New("invalid token")
	ErrUniqueIDFailed = errors.New("failed to generate unique ID")
)

// Ключи и префиксы в хранилище
const (
	linkPrefix    = "link:"
	adminKey      = "__admin__"
	configKey     = "__config__"
	sessionPrefix = "__session__:"
)

// Service реализует логику работы с короткими ссылками
type Service struct {
	store     storage.Store
	jwtSecret string
	logger    *zap.Logger
}

// NewService создаёт новый экземпляр Service
func NewService(store storage.Store, jwtSecret string, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// GenerateID генерирует случайный идентификатор из 6 строчных букв и цифр
func (s *Service) GenerateID() (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = chars[int(b)%len(chars)]
	}
	return string(buf), nil
}
