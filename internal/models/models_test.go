package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLink() LinkRecord {
	return LinkRecord{
		ID:          "1",
		OriginalURL: "https://openai.com/research",
		ShortURL:    "http://sho.rt/abc",
		CreatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Clicks:      10,
	}
}

func TestLinkRecord_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*LinkRecord)
		wantField string
	}{
		{"valid", func(*LinkRecord) {}, ""},
		{"missing id", func(l *LinkRecord) { l.ID = "" }, "id"},
		{"missing original url", func(l *LinkRecord) { l.OriginalURL = "" }, "originalUrl"},
		{"missing short url", func(l *LinkRecord) { l.ShortURL = "" }, "shortUrl"},
		{"missing created at", func(l *LinkRecord) { l.CreatedAt = time.Time{} }, "createdAt"},
		{"negative clicks", func(l *LinkRecord) { l.Clicks = -1 }, "clicks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := validLink()
			tt.mutate(&link)
			err := link.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestLinkRecord_IsExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	link := validLink()
	assert.False(t, link.IsExpired(now), "ссылка без даты истечения не истекает")

	link.ExpiresAt = &yesterday
	assert.True(t, link.IsExpired(now))
	assert.False(t, link.IsExpired(time.Time{}), "нулевое время не считается прошедшим")

	link.ExpiresAt = &tomorrow
	assert.False(t, link.IsExpired(now))

	link.ExpiresAt = &now
	assert.False(t, link.IsExpired(now), "истечение ровно сейчас ещё не в прошлом")
}

func TestLinkRecord_HasTags(t *testing.T) {
	link := validLink()
	link.Tags = []string{"a", "b", "c"}

	assert.True(t, link.HasTags(nil))
	assert.True(t, link.HasTags([]string{"a", "b"}))
	assert.False(t, link.HasTags([]string{"a", "d"}))

	link.Tags = nil
	assert.False(t, link.HasTags([]string{"a"}))
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("clicks")
	require.NoError(t, err)
	assert.Equal(t, SortByClicks, key)

	_, err = ParseSortKey("password")
	assert.Error(t, err)
}

func TestParseSortDirection(t *testing.T) {
	dir, err := ParseSortDirection("ASC")
	require.NoError(t, err)
	assert.Equal(t, Ascending, dir)

	dir, err = ParseSortDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Descending, dir)

	_, err = ParseSortDirection("sideways")
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, SortConfig{Key: SortByCreatedAt, Direction: Descending}, DefaultSortConfig())

	f := DefaultFilterConfig()
	assert.True(t, f.ShowExpired)
	assert.True(t, f.ShowPrivate)
	assert.Nil(t, f.DateRange.Start)
	assert.Nil(t, f.DateRange.End)
}

func TestThemeSettings(t *testing.T) {
	s := DefaultThemeSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, ThemeSystem, s.Theme)
	assert.True(t, s.RoundedCorners)

	dark := ThemeDark
	large := FontLarge
	motion := true
	patched := ThemeSettingsPatch{Theme: &dark, FontSize: &large, ReducedMotion: &motion}.Apply(s)
	require.NoError(t, patched.Validate())
	assert.Equal(t, ThemeDark, patched.Theme)
	assert.Equal(t, ColorIndigo, patched.ColorScheme, "незатронутые поля сохраняются")
	assert.Equal(t, ThemeSystem, s.Theme, "исходные настройки не меняются")

	vars := patched.CSSVariables()
	assert.Equal(t, "18px", vars["--base-font-size"])
	assert.Equal(t, "0s", vars["--transition-duration"])
	assert.Equal(t, "0.5rem", vars["--border-radius"])
	assert.Equal(t, "var(--color-indigo-600)", vars["--color-primary"])

	bad := ColorScheme("orange")
	invalid := ThemeSettingsPatch{ColorScheme: &bad}.Apply(s)
	var vErr *ValidationError
	require.ErrorAs(t, invalid.Validate(), &vErr)
	assert.Equal(t, "colorScheme", vErr.Field)
}
