package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFeedSources(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []FeedSource
	}{
		{"empty", "", nil},
		{"single", "India=https://example.com/india", []FeedSource{{Name: "India", URL: "https://example.com/india"}}},
		{
			"several with spaces and query",
			" India = https://example.com/india , World=https://example.com/rss?lang=en",
			[]FeedSource{{Name: "India", URL: "https://example.com/india"}, {Name: "World", URL: "https://example.com/rss?lang=en"}},
		},
		{"malformed pairs skipped", "India,=https://x,World=,Sports=https://s", []FeedSource{{Name: "Sports", URL: "https://s"}}},
		{
			"comma inside url",
			"Tags=https://example.com/rss?tags=a,b,c, India=https://example.com/india",
			[]FeedSource{{Name: "Tags", URL: "https://example.com/rss?tags=a,b,c"}, {Name: "India", URL: "https://example.com/india"}},
		},
		{"no continuation after malformed pair", "World=,b,Sports=https://s", []FeedSource{{Name: "Sports", URL: "https://s"}}},
		{"duplicates kept for the caller", "A=https://1,A=https://2", []FeedSource{{Name: "A", URL: "https://1"}, {Name: "A", URL: "https://2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFeedSources(tt.value))
		})
	}
}

func TestIsSupportedLanguage(t *testing.T) {
	for _, code := range []string{"en", "hi", "ur", "te", "ru"} {
		assert.True(t, IsSupportedLanguage(code), code)
	}
	for _, code := range []string{"", "fr", "EN", "en-US"} {
		assert.False(t, IsSupportedLanguage(code), code)
	}
}

func TestBuiltInFeedSourcesAreUnique(t *testing.T) {
	names := map[string]struct{}{}
	for _, source := range GetFeedSources() {
		assert.NotEmpty(t, source.URL)
		_, duplicated := names[source.Name]
		assert.False(t, duplicated, source.Name)
		names[source.Name] = struct{}{}
	}
}
