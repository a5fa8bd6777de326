package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/ntkrnl64/krnl-go/internal/models"
	"github.com/ntkrnl64/krnl-go/internal/storage"
	"golang.org/x/crypto/pbkdf2"
)

// Параметры хеширования пароля и сессий
const (
	pbkdf2Iterations = 100000
	saltLength       = 16
	keyLength        = 32
	sessionIDLength  = 32
	sessionTTL       = 24 * time.Hour
)

// Claims представляет данные JWT с идентификатором сессии
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// IsSetup сообщает, установлен ли пароль администратора
func (s *Service) IsSetup() (bool, error) {
	_, err := s.store.Get(adminKey)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Setup устанавливает пароль администратора при первом запуске
func (s *Service) Setup(password string) error {
	exists, err := s.IsSetup()
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadySetup
	}
	if len(password) < 8 {
		return ErrWeakPassword
	}

	cred, err := newCredential(password)
	if err != nil {
		return err
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return s.store.Put(adminKey, string(data))
}

// Authenticate проверяет пароль администратора и создаёт сессию на 24 часа.
// Возвращает подписанный токен, содержащий идентификатор сессии.
func (s *Service) Authenticate(password string) (string, error) {
	cred, err := s.credential()
	if err != nil {
		return "", err
	}
	if !verifyPassword(password, cred) {
		return "", ErrWrongPassword
	}

	buf := make([]byte, sessionIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	sessionID := base64.RawURLEncoding.EncodeToString(buf)

	if err := s.store.PutTTL(sessionPrefix+sessionID, "1", sessionTTL); err != nil {
		return "", err
	}
	return s.GenerateJWT(sessionID)
}

// Logout удаляет сессию для переданного токена. Некорректный токен не
// является ошибкой: выход идемпотентен.
func (s *Service) Logout(token string) error {
	sessionID, err := s.ParseJWT(token)
	if err != nil {
		return nil
	}
	return s.store.Delete(sessionPrefix + sessionID)
}

// CheckSession проверяет подпись токена и наличие активной сессии в хранилище
func (s *Service) CheckSession(token string) bool {
	sessionID, err := s.ParseJWT(token)
	if err != nil {
		return false
	}
	_, err = s.store.Get(sessionPrefix + sessionID)
	return err == nil
}

// ChangePassword меняет пароль администратора после проверки текущего
func (s *Service) ChangePassword(currentPassword, newPassword string) error {
	cred, err := s.credential()
	if err != nil {
		return err
	}
	if !verifyPassword(currentPassword, cred) {
		return ErrWrongPassword
	}
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	updated, err := newCredential(newPassword)
	if err != nil {
		return err
	}
	data, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	return s.store.Put(adminKey, string(data))
}

// GenerateJWT создаёт подписанный токен с идентификатором сессии
func (s *Service) GenerateJWT(sessionID string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		SessionID: sessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ParseJWT проверяет подпись токена и извлекает идентификатор сессии
func (s *Service) ParseJWT(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}

// credential читает запись администратора из хранилища
func (s *Service) credential() (models.AdminCredential, error) {
	raw, err := s.store.Get(adminKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.AdminCredential{}, ErrNotConfigured
		}
		return models.AdminCredential{}, err
	}
	var cred models.AdminCredential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return models.AdminCredential{}, err
	}
	return cred, nil
}

// newCredential генерирует соль и PBKDF2-хеш для нового пароля
func newCredential(password string) (models.AdminCredential, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return models.AdminCredential{}, err
	}
	return models.AdminCredential{
		Hash: hashPassword(password, salt),
		Salt: base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// hashPassword вычисляет PBKDF2-SHA256 хеш пароля с заданной солью
func hashPassword(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// verifyPassword сравнивает пароль с сохранённым хешем за постоянное время
func verifyPassword(password string, cred models.AdminCredential) bool {
	salt, err := base64.StdEncoding.DecodeString(cred.Salt)
	if err != nil {
		return false
	}
	hash := hashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(cred.Hash)) == 1
}
