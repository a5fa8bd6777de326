package models

import "encoding/json"

// DecodeEntry разбирает значение из пространства ключей link:<id>.
// Слот содержит либо каноническую ссылку, либо алиас; вариант определяется
// по наличию поля aliasOf, а не по его значению: запись с пустым aliasOf
// является висячим алиасом. Ровно один из результатов не равен nil.
func DecodeEntry(raw string) (*Link, *Alias, error) {
	var marker struct {
		AliasOf *string `json:"aliasOf"`
	}
	if err := json.Unmarshal([]byte(raw), &marker); err != nil {
		return nil, nil, err
	}
	if marker.AliasOf != nil {
		return nil, &Alias{AliasOf: *marker.AliasOf}, nil
	}
	var link Link
	if err := json.Unmarshal([]byte(raw), &link); err != nil {
		return nil, nil, err
	}
	return &link, nil, nil
}

// EncodeLink сериализует каноническую ссылку в значение для хранилища
func EncodeLink(link *Link) (string, error) {
	data, err := json.Marshal(link)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeAlias сериализует алиас на каноническую ссылку с заданным ID
func EncodeAlias(aliasOf string) (string, error) {
	data, err := json.Marshal(Alias{AliasOf: aliasOf})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewLinkResponse собирает ответ API из канонической ссылки и её идентификатора
func NewLinkResponse(id string, link *Link) *LinkResponse {
	return &LinkResponse{
		ID:            id,
		URL:           link.URL,
		CreatedAt:     link.CreatedAt,
		Title:         link.Title,
		Description:   link.Description,
		Interstitial:  link.Interstitial,
		RedirectDelay: link.RedirectDelay,
		Aliases:       link.Aliases,
	}
}
