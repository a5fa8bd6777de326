// Package models содержит модели данных сервиса коротких ссылок.
package models

// Режимы показа промежуточной страницы в теле запроса
const (
	InterstitialDefault = "default"
	InterstitialAlways  = "always"
	InterstitialNever   = "never"
)

// Link представляет каноническую ссылку, владеющую целевым URL.
// Interstitial и RedirectDelay равны nil, если ссылка использует глобальные настройки.
type Link struct {
	URL           string   `json:"url"`
	CreatedAt     int64    `json:"createdAt"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	Interstitial  *bool    `json:"interstitial,omitempty"`
	RedirectDelay *int     `json:"redirectDelay,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
}

// Alias представляет запись-указатель на каноническую ссылку
type Alias struct {
	AliasOf string `json:"aliasOf"`
}

// GlobalConfig представляет глобальные настройки промежуточной страницы
type GlobalConfig struct {
	DefaultInterstitial     bool   `json:"defaultInterstitial"`
	InterstitialTitle       string `json:"interstitialTitle"`
	InterstitialDescription string `json:"interstitialDescription"`
	RedirectDelay           int    `json:"redirectDelay"`
}

// AdminCredential представляет хеш и соль пароля администратора
type AdminCredential struct {
	Hash string `json:"hash"`
	Salt string `json:"salt"`
}

// LinkPayload представляет тело запроса на создание или обновление ссылки
type LinkPayload struct {
	ID            string `json:"id,omitempty"`
	URL           string `json:"url"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Interstitial  string `json:"interstitial,omitempty"`
	RedirectDelay *int   `json:"redirectDelay,omitempty"`
}

// ConfigPayload представляет частичное обновление глобальных настроек
type ConfigPayload struct {
	DefaultInterstitial     *bool   `json:"defaultInterstitial,omitempty"`
	InterstitialTitle       *string `json:"interstitialTitle,omitempty"`
	InterstitialDescription *string `json:"interstitialDescription,omitempty"`
	RedirectDelay           *int    `json:"redirectDelay,omitempty"`
}

// LinkResponse представляет каноническую ссылку в ответах API.
// Merged и AliasID заполняются, когда создание завершилось присоединением к существующей ссылке.
type LinkResponse struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	CreatedAt     int64    `json:"createdAt"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	Interstitial  *bool    `json:"interstitial,omitempty"`
	RedirectDelay *int     `json:"redirectDelay,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
	Merged        bool     `json:"merged,omitempty"`
	AliasID       string   `json:"aliasId,omitempty"`
}

// ResolveResponse представляет публичный ответ для промежуточной страницы
type ResolveResponse struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	RedirectDelay int    `json:"redirectDelay"`
}

// StatusResponse представляет ответ на запрос состояния сервиса
type StatusResponse struct {
	Setup        bool `json:"setup"`
	NoTokenCheck bool `json:"noTokenCheck"`
}

// AuthRequest представляет запрос аутентификации администратора
type AuthRequest struct {
	Password string `json:"password"`
}

// AuthResponse представляет ответ с сессионным токеном
type AuthResponse struct {
	Token string `json:"token"`
}

// PasswordChangeRequest представляет запрос смены пароля администратора
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AliasRequest представляет запрос на добавление алиаса
type AliasRequest struct {
	Alias string `json:"alias"`
}

// MergeRequest представляет запрос на объединение дубликатов.
// Если IDs заданы, рассматриваются только канонические ссылки с этими идентификаторами.
type MergeRequest struct {
	IDs []string `json:"ids,omitempty"`
}

// MergeResponse представляет результат объединения дубликатов
type MergeResponse struct {
	Merged int `json:"merged"`
}

// StatsResponse представляет статистику хранилища ссылок
type StatsResponse struct {
	Links   int `json:"links"`
	Aliases int `json:"aliases"`
}
