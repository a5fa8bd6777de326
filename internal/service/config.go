package service

import (
	"encoding/json"
	"errors"

	"github.com/ntkrnl64/krnl-go/internal/models"
	"github.com/ntkrnl64/krnl-go/internal/storage"
)

// DefaultConfig возвращает глобальные настройки по умолчанию
func DefaultConfig() models.GlobalConfig {
	return models.GlobalConfig{
		DefaultInterstitial:     false,
		InterstitialTitle:       "You are being redirected",
		InterstitialDescription: "You are about to visit an external website.",
		RedirectDelay:           0,
	}
}

// GetConfig возвращает глобальные настройки. Отсутствующие в хранилище поля
// заполняются значениями по умолчанию.
func (s *Service) GetConfig() (models.GlobalConfig, error) {
	cfg := DefaultConfig()
	raw, err := s.store.Get(configKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return cfg, nil
		}
		return models.GlobalConfig{}, err
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return models.GlobalConfig{}, err
	}
	return cfg, nil
}

// UpdateConfig накладывает частичное обновление на текущие настройки и сохраняет их
func (s *Service) UpdateConfig(p models.ConfigPayload) (models.GlobalConfig, error) {
	cfg, err := s.GetConfig()
	if err != nil {
		return models.GlobalConfig{}, err
	}

	if p.DefaultInterstitial != nil {
		cfg.DefaultInterstitial = *p.DefaultInterstitial
	}
	if p.InterstitialTitle != nil {
		cfg.InterstitialTitle = *p.InterstitialTitle
	}
	if p.InterstitialDescription != nil {
		cfg.InterstitialDescription = *p.InterstitialDescription
	}
	if p.RedirectDelay != nil {
		cfg.RedirectDelay = *p.RedirectDelay
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return models.GlobalConfig{}, err
	}
	if err := s.store.Put(configKey, string(data)); err != nil {
		return models.GlobalConfig{}, err
	}
	return cfg, nil
}

// ResolvePublic возвращает данные для промежуточной страницы: поля ссылки
// с подстановкой глобальных настроек вместо незаполненных значений.
func (s *Service) ResolvePublic(id string) (*models.ResolveResponse, error) {
	_, link, err := s.Resolve(id)
	if err != nil {
		return nil, err
	}
	cfg, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	resp := &models.ResolveResponse{
		URL:           link.URL,
		Title:         cfg.InterstitialTitle,
		Description:   cfg.InterstitialDescription,
		RedirectDelay: cfg.RedirectDelay,
	}
	if link.Title != "" {
		resp.Title = link.Title
	}
	if link.Description != "" {
		resp.Description = link.Description
	}
	if link.RedirectDelay != nil {
		resp.RedirectDelay = *link.RedirectDelay
	}
	return resp, nil
}

// RedirectTarget возвращает URL назначения и признак показа промежуточной
// страницы: переопределение ссылки имеет приоритет над глобальной настройкой.
func (s *Service) RedirectTarget(id string) (string, bool, error) {
	_, link, err := s.Resolve(id)
	if err != nil {
		return "", false, err
	}
	cfg, err := s.GetConfig()
	if err != nil {
		return "", false, err
	}

	show := cfg.DefaultInterstitial
	if link.Interstitial != nil {
		show = *link.Interstitial
	}
	return link.URL, show, nil
}
