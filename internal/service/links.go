package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ntkrnl64/krnl-go/internal/models"
	"github.com/ntkrnl64/krnl-go/internal/storage"
	"go.uber.org/zap"
)

// Resolve находит каноническую ссылку по идентификатору, следуя не более чем
// одному алиасу. Возвращает идентификатор канонической записи и саму запись.
func (s *Service) Resolve(id string) (string, *models.Link, error) {
	raw, err := s.store.Get(linkPrefix + id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, ErrLinkNotFound
		}
		return "", nil, err
	}

	link, alias, err := models.DecodeEntry(raw)
	if err != nil {
		return "", nil, err
	}
	if alias == nil {
		return id, link, nil
	}

	primaryRaw, err := s.store.Get(linkPrefix + alias.AliasOf)
	if err != nil {
		// Висячий алиас не должен возникать, но разрешение обязано его пережить
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, ErrLinkNotFound
		}
		return "", nil, err
	}
	primary, primaryAlias, err := models.DecodeEntry(primaryRaw)
	if err != nil {
		return "", nil, err
	}
	if primaryAlias != nil {
		return "", nil, ErrLinkNotFound
	}
	return alias.AliasOf, primary, nil
}

// Get возвращает каноническую ссылку по идентификатору или алиасу
func (s *Service) Get(id string) (*models.LinkResponse, error) {
	canonicalID, link, err := s.Resolve(id)
	if err != nil {
		return nil, err
	}
	return models.NewLinkResponse(canonicalID, link), nil
}

// Create создаёт новую каноническую ссылку. Если целевой URL уже занят другой
// канонической ссылкой, вместо новой записи создаётся алиас на неё, а ответ
// помечается полями Merged и AliasID.
func (s *Service) Create(p models.LinkPayload) (*models.LinkResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		generated, err := s.generateFreeID()
		if err != nil {
			return nil, err
		}
		id = generated
	} else {
		if err := models.ValidateID(id); err != nil {
			return nil, fmt.Errorf("%w", ErrInvalidID)
		}
		exists, err := s.slotExists(id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrIDExists
		}
	}

	// Auto-merge: если URL уже существует, создаём алиас вместо новой записи
	existingID, existing, err := s.findByURL(p.URL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.attachAlias(existingID, existing, id); err != nil {
			return nil, err
		}
		resp := models.NewLinkResponse(existingID, existing)
		resp.Merged = true
		resp.AliasID = id
		s.logger.Info("Merged new link into existing one",
			zap.String("alias_id", id),
			zap.String("primary_id", existingID))
		return resp, nil
	}

	link := applyPayload(nil, p)
	raw, err := models.EncodeLink(link)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(linkPrefix+id, raw); err != nil {
		return nil, err
	}
	return models.NewLinkResponse(id, link), nil
}

// Update обновляет каноническую ссылку, разрешая алиасы. Список алиасов
// существующей записи сохраняется без изменений.
func (s *Service) Update(id string, p models.LinkPayload) (*models.LinkResponse, error) {
	canonicalID, existing, err := s.Resolve(id)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	link := applyPayload(existing, p)
	link.Aliases = existing.Aliases

	raw, err := models.EncodeLink(link)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(linkPrefix+canonicalID, raw); err != nil {
		return nil, err
	}
	return models.NewLinkResponse(canonicalID, link), nil
}

// Delete удаляет запись по идентификатору. Для алиаса запись вычёркивается из
// списка канонической ссылки; для канонической ссылки каскадно удаляются все
// её алиасы. Удаление несуществующего идентификатора не является ошибкой.
func (s *Service) Delete(id string) error {
	raw, err := s.store.Get(linkPrefix + id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s.store.Delete(linkPrefix + id)
		}
		return err
	}

	link, alias, err := models.DecodeEntry(raw)
	if err != nil {
		return err
	}

	if alias != nil {
		if err := s.detachAlias(alias.AliasOf, id); err != nil {
			return err
		}
	} else {
		for _, aliasID := range link.Aliases {
			if err := s.store.Delete(linkPrefix + aliasID); err != nil {
				return err
			}
		}
	}
	return s.store.Delete(linkPrefix + id)
}

// List возвращает все канонические ссылки; алиасы пропускаются
func (s *Service) List() ([]models.LinkResponse, error) {
	keys, err := s.store.List(linkPrefix)
	if err != nil {
		return nil, err
	}

	links := make([]models.LinkResponse, 0, len(keys))
	for _, key := range keys {
		raw, err := s.store.Get(key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		link, alias, err := models.DecodeEntry(raw)
		if err != nil {
			return nil, err
		}
		if alias != nil {
			continue
		}
		links = append(links, *models.NewLinkResponse(strings.TrimPrefix(key, linkPrefix), link))
	}
	return links, nil
}

// Stats возвращает количество канонических ссылок и алиасов
func (s *Service) Stats() (int, int, error) {
	keys, err := s.store.List(linkPrefix)
	if err != nil {
		return 0, 0, err
	}

	var links, aliases int
	for _, key := range keys {
		raw, err := s.store.Get(key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return 0, 0, err
		}
		_, alias, err := models.DecodeEntry(raw)
		if err != nil {
			return 0, 0, err
		}
		if alias != nil {
			aliases++
		} else {
			links++
		}
	}
	return links, aliases, nil
}

// slotExists проверяет, занят ли слот link:<id>
func (s *Service) slotExists(id string) (bool, error) {
	_, err := s.store.Get(linkPrefix + id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// generateFreeID генерирует идентификатор, проверяя его на коллизии
func (s *Service) generateFreeID() (string, error) {
	for i := 0; i < 5; i++ {
		id, err := s.GenerateID()
		if err != nil {
			return "", err
		}
		exists, err := s.slotExists(id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", ErrUniqueIDFailed
}

// findByURL ищет каноническую ссылку с точно совпадающим URL
func (s *Service) findByURL(url string) (string, *models.Link, error) {
	keys, err := s.store.List(linkPrefix)
	if err != nil {
		return "", nil, err
	}
	for _, key := range keys {
		raw, err := s.store.Get(key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return "", nil, err
		}
		link, alias, err := models.DecodeEntry(raw)
		if err != nil {
			return "", nil, err
		}
		if alias == nil && link.URL == url {
			return strings.TrimPrefix(key, linkPrefix), link, nil
		}
	}
	return "", nil, nil
}

// applyPayload собирает каноническую запись из тела запроса. Время создания
// наследуется от существующей записи; отсутствующие необязательные поля
// остаются незаполненными, а не обнуляются.
func applyPayload(existing *models.Link, p models.LinkPayload) *models.Link {
	link := &models.Link{
		URL:         p.URL,
		CreatedAt:   time.Now().UnixMilli(),
		Title:       p.Title,
		Description: p.Description,
	}
	if existing != nil && existing.CreatedAt != 0 {
		link.CreatedAt = existing.CreatedAt
	}
	switch p.Interstitial {
	case models.InterstitialAlways:
		value := true
		link.Interstitial = &value
	case models.InterstitialNever:
		value := false
		link.Interstitial = &value
	}
	if p.RedirectDelay != nil {
		delay := *p.RedirectDelay
		if delay < 0 {
			delay = 0
		}
		link.RedirectDelay = &delay
	}
	return link
}
