package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/ntkrnl64/krnl-go/internal/models"
	"github.com/ntkrnl64/krnl-go/internal/storage"
	"go.uber.org/zap"
)

// candidate связывает каноническую ссылку с её идентификатором при обходе хранилища
type candidate struct {
	id   string
	link *models.Link
}

// Merge объединяет канонические ссылки с одинаковым URL. В каждой группе
// дубликатов самая ранняя запись остаётся канонической, остальные
// превращаются в алиасы, а их собственные алиасы перенаправляются на неё.
// Если scopeIDs задан, рассматриваются только канонические ссылки из списка;
// алиасы перемещаются вместе со своей канонической записью.
// Возвращает количество поглощённых дубликатов.
func (s *Service) Merge(scopeIDs []string) (int, error) {
	keys, err := s.store.List(linkPrefix)
	if err != nil {
		return 0, err
	}

	var scope map[string]struct{}
	if scopeIDs != nil {
		scope = make(map[string]struct{}, len(scopeIDs))
		for _, id := range scopeIDs {
			scope[id] = struct{}{}
		}
	}

	// Собираем канонические ссылки в порядке обхода хранилища
	var primaries []candidate
	for _, key := range keys {
		id := strings.TrimPrefix(key, linkPrefix)
		if scope != nil {
			if _, ok := scope[id]; !ok {
				continue
			}
		}
		raw, err := s.store.Get(key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return 0, err
		}
		link, alias, err := models.DecodeEntry(raw)
		if err != nil {
			return 0, err
		}
		if alias == nil {
			primaries = append(primaries, candidate{id: id, link: link})
		}
	}

	// Группируем по URL, сохраняя порядок первого появления
	groups := make(map[string][]candidate)
	var order []string
	for _, p := range primaries {
		if _, ok := groups[p.link.URL]; !ok {
			order = append(order, p.link.URL)
		}
		groups[p.link.URL] = append(groups[p.link.URL], p)
	}

	merged := 0
	for _, url := range order {
		group := groups[url]
		if len(group) < 2 {
			continue
		}

		// Самая ранняя запись становится (или остаётся) канонической;
		// при равных временах сохраняется порядок обхода
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].link.CreatedAt < group[j].link.CreatedAt
		})
		primary := group[0]
		aliases := append([]string(nil), primary.link.Aliases...)

		aliasRaw, err := models.EncodeAlias(primary.id)
		if err != nil {
			return merged, err
		}
		for _, dup := range group[1:] {
			// Дубликат превращается в алиас канонической записи
			if err := s.store.Put(linkPrefix+dup.id, aliasRaw); err != nil {
				return merged, err
			}
			// Алиасы дубликата перенаправляются на каноническую запись,
			// чтобы не возникало цепочек алиасов
			for _, aliasID := range dup.link.Aliases {
				if err := s.store.Put(linkPrefix+aliasID, aliasRaw); err != nil {
					return merged, err
				}
			}
			aliases = append(aliases, dup.id)
			aliases = append(aliases, dup.link.Aliases...)
			merged++
		}

		primary.link.Aliases = aliases
		encoded, err := models.EncodeLink(primary.link)
		if err != nil {
			return merged, err
		}
		if err := s.store.Put(linkPrefix+primary.id, encoded); err != nil {
			return merged, err
		}
		s.logger.Info("Merged duplicate links",
			zap.String("primary_id", primary.id),
			zap.Int("absorbed", len(group)-1))
	}

	return merged, nil
}
