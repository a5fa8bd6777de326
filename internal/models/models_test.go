package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEntry(t *testing.T) {
	// Тест 1: каноническая ссылка
	link, alias, err := DecodeEntry(`{"url":"https://example.com","createdAt":1700000000000}`)
	require.NoError(t, err, "DecodeEntry should not return error for link")
	require.NotNil(t, link, "Link should not be nil")
	assert.Nil(t, alias, "Alias should be nil for link entry")
	assert.Equal(t, "https://example.com", link.URL)
	assert.Equal(t, int64(1700000000000), link.CreatedAt)

	// Тест 2: алиас
	link, alias, err = DecodeEntry(`{"aliasOf":"abc123"}`)
	require.NoError(t, err, "DecodeEntry should not return error for alias")
	assert.Nil(t, link, "Link should be nil for alias entry")
	require.NotNil(t, alias, "Alias should not be nil")
	assert.Equal(t, "abc123", alias.AliasOf)

	// Тест 3: ссылка со всеми необязательными полями
	raw := `{"url":"https://example.com","createdAt":1,"title":"T","description":"D","interstitial":true,"redirectDelay":5,"aliases":["a","b"]}`
	link, alias, err = DecodeEntry(raw)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Nil(t, alias)
	require.NotNil(t, link.Interstitial)
	assert.True(t, *link.Interstitial)
	require.NotNil(t, link.RedirectDelay)
	assert.Equal(t, 5, *link.RedirectDelay)
	assert.Equal(t, []string{"a", "b"}, link.Aliases)

	// Тест 4: некорректный JSON
	_, _, err = DecodeEntry(`{not json`)
	assert.Error(t, err, "DecodeEntry should return error for invalid JSON")

	// Тест 5: вариант определяется наличием поля aliasOf, а не его значением
	link, alias, err = DecodeEntry(`{"aliasOf":""}`)
	require.NoError(t, err)
	assert.Nil(t, link, "entry with aliasOf field should not decode as link")
	require.NotNil(t, alias, "empty aliasOf is a dangling alias, not a link")
	assert.Equal(t, "", alias.AliasOf)
}

func TestEncodeRoundTrip(t *testing.T) {
	delay := 3
	value := false
	original := &Link{
		URL:           "https://example.com/path",
		CreatedAt:     1700000000000,
		Title:         "Title",
		Interstitial:  &value,
		RedirectDelay: &delay,
		Aliases:       []string{"x"},
	}

	raw, err := EncodeLink(original)
	require.NoError(t, err)

	decoded, alias, err := DecodeEntry(raw)
	require.NoError(t, err)
	assert.Nil(t, alias)
	assert.Equal(t, original, decoded)

	aliasRaw, err := EncodeAlias("primary1")
	require.NoError(t, err)
	_, decodedAlias, err := DecodeEntry(aliasRaw)
	require.NoError(t, err)
	require.NotNil(t, decodedAlias)
	assert.Equal(t, "primary1", decodedAlias.AliasOf)
}

func TestLinkPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload LinkPayload
		wantErr bool
	}{
		{
			name:    "valid payload",
			payload: LinkPayload{URL: "https://example.com"},
			wantErr: false,
		},
		{
			name:    "valid payload with interstitial mode",
			payload: LinkPayload{URL: "https://example.com", Interstitial: InterstitialAlways},
			wantErr: false,
		},
		{
			name:    "empty URL",
			payload: LinkPayload{URL: ""},
			wantErr: true,
		},
		{
			name:    "relative URL",
			payload: LinkPayload{URL: "/relative/path"},
			wantErr: true,
		},
		{
			name:    "URL without host",
			payload: LinkPayload{URL: "https://"},
			wantErr: true,
		},
		{
			name:    "unknown interstitial mode",
			payload: LinkPayload{URL: "https://example.com", Interstitial: "sometimes"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "simple ID", id: "abc123", wantErr: false},
		{name: "ID with underscore and dash", id: "my_link-1", wantErr: false},
		{name: "single char", id: "a", wantErr: false},
		{name: "max length", id: "a1234567890123456789012345678901234567890123456789", wantErr: false},
		{name: "empty ID", id: "", wantErr: true},
		{name: "too long", id: "a12345678901234567890123456789012345678901234567890", wantErr: true},
		{name: "ID with slash", id: "a/b", wantErr: true},
		{name: "ID with space", id: "a b", wantErr: true},
		{name: "ID with unicode", id: "ссылка", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
