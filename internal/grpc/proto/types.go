// Package proto содержит определения типов для gRPC сервиса коротких ссылок
package proto

// LinkInfo представляет информацию о короткой ссылке
type LinkInfo struct {
	Id            string   `json:"id"`
	Url           string   `json:"url"`
	CreatedAt     int64    `json:"created_at"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Aliases       []string `json:"aliases"`
	RedirectDelay int32    `json:"redirect_delay"`
}

// ResolveLinkRequest представляет запрос на разрешение короткой ссылки
type ResolveLinkRequest struct {
	Id string `json:"id"`
}

// ResolveLinkResponse представляет ответ с целевым URL
type ResolveLinkResponse struct {
	Url   string `json:"url"`
	Found bool   `json:"found"`
}

// CreateLinkRequest представляет запрос на создание короткой ссылки
type CreateLinkRequest struct {
	Id          string `json:"id"`
	Url         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateLinkResponse представляет ответ с созданной ссылкой
type CreateLinkResponse struct {
	Link    *LinkInfo `json:"link"`
	Merged  bool      `json:"merged"`
	AliasId string    `json:"alias_id"`
}

// ListLinksRequest представляет запрос списка ссылок
type ListLinksRequest struct{}

// ListLinksResponse представляет ответ со списком канонических ссылок
type ListLinksResponse struct {
	Links []*LinkInfo `json:"links"`
}

// DeleteLinkRequest представляет запрос на удаление ссылки
type DeleteLinkRequest struct {
	Id string `json:"id"`
}

// DeleteLinkResponse представляет ответ на удаление ссылки
type DeleteLinkResponse struct {
	Success bool `json:"success"`
}

// MergeLinksRequest представляет запрос на объединение дубликатов
type MergeLinksRequest struct {
	Ids []string `json:"ids"`
}

// MergeLinksResponse представляет ответ с числом объединённых ссылок
type MergeLinksResponse struct {
	Merged int32 `json:"merged"`
}

// GetStatsRequest представляет запрос статистики
type GetStatsRequest struct{}

// GetStatsResponse представляет ответ со статистикой
type GetStatsResponse struct {
	LinksCount   int32 `json:"links_count"`
	AliasesCount int32 `json:"aliases_count"`
}
