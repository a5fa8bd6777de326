package models

import (
	"errors"
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// idPattern задаёт допустимый формат идентификатора ссылки или алиаса
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,50}$`)

// Validate проверяет тело запроса на создание или обновление ссылки.
// Идентификатор проверяется отдельно через ValidateID, так как при создании он необязателен.
func (p LinkPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.URL, validation.Required.Error("URL required"), validation.By(absoluteURL)),
		validation.Field(&p.Interstitial,
			validation.In(InterstitialDefault, InterstitialAlways, InterstitialNever)),
	)
}

// ValidateID проверяет формат идентификатора ссылки или алиаса
func ValidateID(id string) error {
	return validation.Validate(id,
		validation.Required.Error("ID required"),
		validation.Match(idPattern).Error("ID must be 1-50 chars: a-z, A-Z, 0-9, _ or -"),
	)
}

// absoluteURL проверяет, что значение является абсолютным URL
func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}
