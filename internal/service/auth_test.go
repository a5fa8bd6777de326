package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ntkrnl64/krnl-go/internal/storage"
)

func TestSetup(t *testing.T) {
	svc := newTestService(t)

	// Тест 1: до установки пароля сервис не настроен
	setup, err := svc.IsSetup()
	require.NoError(t, err)
	assert.False(t, setup)

	// Тест 2: слишком короткий пароль
	err = svc.Setup("short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	// Тест 3: установка пароля
	require.NoError(t, svc.Setup("correct-horse"))
	setup, err = svc.IsSetup()
	require.NoError(t, err)
	assert.True(t, setup)

	// Тест 4: повторная установка запрещена
	err = svc.Setup("another-password")
	assert.ErrorIs(t, err, ErrAlreadySetup)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)

	// Тест 1: аутентификация до установки пароля
	_, err := svc.Authenticate("anything")
	assert.ErrorIs(t, err, ErrNotConfigured)

	require.NoError(t, svc.Setup("correct-horse"))

	// Тест 2: неверный пароль
	_, err = svc.Authenticate("wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)

	// Тест 3: верный пароль создаёт действующую сессию
	token, err := svc.Authenticate("correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, svc.CheckSession(token), "fresh session should be valid")

	// Тест 4: выход делает сессию недействительной
	require.NoError(t, svc.Logout(token))
	assert.False(t, svc.CheckSession(token), "session should be invalid after logout")

	// Тест 5: выход с мусорным токеном идемпотентен
	assert.NoError(t, svc.Logout("garbage"))
}

func TestSessionTokens(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Setup("correct-horse"))

	token, err := svc.Authenticate("correct-horse")
	require.NoError(t, err)

	// Тест 1: токен содержит идентификатор сессии
	sessionID, err := svc.ParseJWT(token)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)

	// Тест 2: токен, подписанный другим секретом, отвергается
	other := NewService(storage.NewMemoryStore(), "other_secret", zap.NewNop())
	_, err = other.ParseJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, other.CheckSession(token))

	// Тест 3: корректная подпись без сессии в хранилище недостаточна
	forged, err := svc.GenerateJWT("nonexistent-session")
	require.NoError(t, err)
	assert.False(t, svc.CheckSession(forged), "token without stored session should be rejected")

	// Тест 4: мусорный токен
	_, err = svc.ParseJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Setup("correct-horse"))

	// Тест 1: неверный текущий пароль
	err := svc.ChangePassword("wrong", "new-password-1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	// Тест 2: слишком короткий новый пароль
	err = svc.ChangePassword("correct-horse", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	// Тест 3: успешная смена пароля
	require.NoError(t, svc.ChangePassword("correct-horse", "new-password-1"))
	_, err = svc.Authenticate("correct-horse")
	assert.ErrorIs(t, err, ErrWrongPassword, "old password should stop working")
	token, err := svc.Authenticate("new-password-1")
	require.NoError(t, err)
	assert.True(t, svc.CheckSession(token))
}
