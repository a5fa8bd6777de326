package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ntkrnl64/krnl-go/internal/models"
	"github.com/ntkrnl64/krnl-go/internal/storage"
)

// AddAlias добавляет алиас к канонической ссылке. Целью алиаса может быть
// только каноническая запись: вложенные алиасы запрещены.
func (s *Service) AddAlias(primaryID, aliasCandidate string) (*models.LinkResponse, error) {
	raw, err := s.store.Get(linkPrefix + primaryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	primary, alias, err := models.DecodeEntry(raw)
	if err != nil {
		return nil, err
	}
	if alias != nil {
		return nil, ErrAliasTarget
	}

	aliasID := strings.TrimSpace(aliasCandidate)
	if err := models.ValidateID(aliasID); err != nil {
		return nil, fmt.Errorf("%w", ErrInvalidID)
	}
	exists, err := s.slotExists(aliasID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrIDExists
	}

	if err := s.attachAlias(primaryID, primary, aliasID); err != nil {
		return nil, err
	}
	return models.NewLinkResponse(primaryID, primary), nil
}

// RemoveAlias удаляет алиас канонической ссылки. Запись алиаса удаляется
// безусловно, даже если она не числилась в списке.
func (s *Service) RemoveAlias(primaryID, aliasID string) (*models.LinkResponse, error) {
	raw, err := s.store.Get(linkPrefix + primaryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	primary, alias, err := models.DecodeEntry(raw)
	if err != nil {
		return nil, err
	}
	if alias != nil {
		return nil, ErrLinkNotFound
	}

	if err := s.store.Delete(linkPrefix + aliasID); err != nil {
		return nil, err
	}

	primary.Aliases = removeString(primary.Aliases, aliasID)
	encoded, err := models.EncodeLink(primary)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(linkPrefix+primaryID, encoded); err != nil {
		return nil, err
	}
	return models.NewLinkResponse(primaryID, primary), nil
}

// attachAlias записывает алиас и добавляет его в список канонической ссылки.
// Переданная запись primary дополняется новым алиасом.
func (s *Service) attachAlias(primaryID string, primary *models.Link, aliasID string) error {
	aliasRaw, err := models.EncodeAlias(primaryID)
	if err != nil {
		return err
	}
	if err := s.store.Put(linkPrefix+aliasID, aliasRaw); err != nil {
		return err
	}

	primary.Aliases = append(primary.Aliases, aliasID)
	encoded, err := models.EncodeLink(primary)
	if err != nil {
		return err
	}
	return s.store.Put(linkPrefix+primaryID, encoded)
}

// detachAlias вычёркивает алиас из списка канонической ссылки, если она существует
func (s *Service) detachAlias(primaryID, aliasID string) error {
	raw, err := s.store.Get(linkPrefix + primaryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	primary, alias, err := models.DecodeEntry(raw)
	if err != nil || alias != nil {
		return err
	}

	primary.Aliases = removeString(primary.Aliases, aliasID)
	encoded, err := models.EncodeLink(primary)
	if err != nil {
		return err
	}
	return s.store.Put(linkPrefix+primaryID, encoded)
}

// removeString возвращает список без всех вхождений заданного значения
func removeString(values []string, value string) []string {
	result := values[:0]
	for _, v := range values {
		if v != value {
			result = append(result, v)
		}
	}
	return result
}
