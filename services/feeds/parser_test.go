package feeds

import (
	"fmt"
	"strings"
	"testing"

	"news-pulse/models/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rssDocument(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel><title>Test</title>` + strings.Join(items, "") + `</channel></rss>`
}

func atomDocument(entries ...string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>Test</title>` + strings.Join(entries, "") + `</feed>`
}

func TestParseMinimalRSS(t *testing.T) {
	items := Parse(`<rss><channel><item><title>A</title><link>http://x</link></item></channel></rss>`, 6)

	require.Len(t, items, 1)
	assert.Equal(t, entities.FeedItem{Title: "A", Link: "http://x"}, items[0])
}

func TestParseMalformedReturnsEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"plain text", "this is not xml at all"},
		{"json", `{"contents": "<rss>"}`},
		{"html page", "<html><body><p>Service unavailable</p></body></html>"},
		{"unknown root", "<opml><body><outline text=\"x\"/></body></opml>"},
		{"mismatched closing tag", `<rss><channel><item><title>A</link></item></channel></rss>`},
		{"unclosed item", `<rss><channel><item><title>A</title><link>http://x</link></channel></rss>`},
		{"truncated document", `<rss><channel><item><title>A</title><link>http://x</link></item>`},
		{"junk after root", `<rss><channel><item><title>A</title><link>http://x</link></item></channel></rss><<<`},
		{"text after root", `<rss><channel><item><title>A</title></item></channel></rss>trailing`},
		{"second root", `<rss><channel></channel></rss><rss><channel><item><title>A</title></item></channel></rss>`},
		{"undefined entity", `<rss><channel><item><title>A&nbsp;B</title></item></channel></rss>`},
		{"unquoted attribute", `<feed xmlns="http://www.w3.org/2005/Atom"><entry><title>B</title><link href=http://y/></entry></feed>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []entities.FeedItem
			assert.NotPanics(t, func() { items = Parse(tt.raw, 6) })
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestParseAcceptsDeclaredCharsetAndPredefinedEntities(t *testing.T) {
	raw := `<?xml version="1.0" encoding="ISO-8859-1"?>` + "\n" +
		`<rss><channel><item><title>Tom &amp; Jerry &#8211; caf` + "\xe9" + `</title><link>http://x</link></item></channel></rss>`

	items := Parse(raw, 6)

	require.Len(t, items, 1)
	assert.Equal(t, "Tom & Jerry \u2013 café", items[0].Title)
}

func TestParseAcceptsByteOrderMark(t *testing.T) {
	items := Parse("\ufeff"+`<?xml version="1.0" encoding="UTF-8"?><rss><channel><item><title>A</title></item></channel></rss>`, 6)

	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Title)
}

func TestParseRSSDefaults(t *testing.T) {
	items := Parse(rssDocument(
		`<item><link>http://a</link></item>`,
		`<item><title>No link</title></item>`,
		`<item><title>  </title><link> </link></item>`,
	), 6)

	require.Len(t, items, 3)
	assert.Equal(t, "Untitled", items[0].Title)
	assert.Equal(t, "http://a", items[0].Link)
	assert.Equal(t, "No link", items[1].Title)
	assert.Equal(t, "#", items[1].Link)
	assert.Equal(t, "Untitled", items[2].Title)
	assert.Equal(t, "#", items[2].Link)
	for _, item := range items {
		assert.Nil(t, item.PublishedAt)
		assert.Nil(t, item.PublishedParsed)
		assert.Nil(t, item.Description)
	}
}

func TestParseRSSOrderAndLimit(t *testing.T) {
	var xmlItems []string
	for i := 1; i <= 8; i++ {
		xmlItems = append(xmlItems, fmt.Sprintf(`<item><title>Story %d</title><link>http://x/%d</link></item>`, i, i))
	}
	raw := rssDocument(xmlItems...)

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 6, want: 6},
		{limit: 3, want: 3},
		{limit: 20, want: 8},
		{limit: 0, want: DefaultItemLimit},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit %d", tt.limit), func(t *testing.T) {
			items := Parse(raw, tt.limit)
			require.Len(t, items, tt.want)
			for i, item := range items {
				assert.Equal(t, fmt.Sprintf("Story %d", i+1), item.Title)
			}
		})
	}
}

func TestParseRSSDates(t *testing.T) {
	items := Parse(rssDocument(
		`<item><title>pub</title><pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate><dc:date>2001-01-01</dc:date></item>`,
		`<item><title>dc</title><dc:date>2024-05-06T07:08:09Z</dc:date></item>`,
		`<item><title>none</title></item>`,
	), 6)

	require.Len(t, items, 3)
	require.NotNil(t, items[0].PublishedAt)
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 GMT", *items[0].PublishedAt)
	require.NotNil(t, items[0].PublishedParsed)
	assert.Equal(t, 2006, items[0].PublishedParsed.Year())

	require.NotNil(t, items[1].PublishedAt)
	assert.Equal(t, "2024-05-06T07:08:09Z", *items[1].PublishedAt)

	assert.Nil(t, items[2].PublishedAt)
}

func TestParseRSSDescription(t *testing.T) {
	items := Parse(rssDocument(
		`<item><title>desc</title><description>Short</description><content:encoded><![CDATA[<p>Long</p>]]></content:encoded></item>`,
		`<item><title>encoded</title><content:encoded><![CDATA[<p>Long</p>]]></content:encoded></item>`,
	), 6)

	require.Len(t, items, 2)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "Short", *items[0].Description)
	require.NotNil(t, items[1].Description)
	assert.Equal(t, "<p>Long</p>", *items[1].Description)
}

func TestParseAtomFallback(t *testing.T) {
	items := Parse(atomDocument(
		`<entry><title>B</title><link rel="alternate" href="http://y">ignored text</link>`+
			`<updated>2024-01-02T03:04:05Z</updated><published>2023-01-01T00:00:00Z</published><summary>S</summary></entry>`,
		`<entry><title>C</title><link rel="self" href="http://self"/><published>2023-01-01T00:00:00Z</published>`+
			`<content type="text">Body</content></entry>`,
		`<entry></entry>`,
	), 6)

	require.Len(t, items, 3)

	assert.Equal(t, "B", items[0].Title)
	assert.Equal(t, "http://y", items[0].Link)
	require.NotNil(t, items[0].PublishedAt)
	assert.Equal(t, "2024-01-02T03:04:05Z", *items[0].PublishedAt)
	require.NotNil(t, items[0].PublishedParsed)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "S", *items[0].Description)

	assert.Equal(t, "http://self", items[1].Link)
	require.NotNil(t, items[1].PublishedAt)
	assert.Equal(t, "2023-01-01T00:00:00Z", *items[1].PublishedAt)
	require.NotNil(t, items[1].Description)
	assert.Equal(t, "Body", *items[1].Description)

	assert.Equal(t, "Untitled", items[2].Title)
	assert.Equal(t, "#", items[2].Link)
	assert.Nil(t, items[2].PublishedAt)
	assert.Nil(t, items[2].Description)
}

func TestParseAtomLimit(t *testing.T) {
	var entries []string
	for i := 1; i <= 4; i++ {
		entries = append(entries, fmt.Sprintf(`<entry><title>E%d</title><link href="http://e/%d"/></entry>`, i, i))
	}

	items := Parse(atomDocument(entries...), 2)

	require.Len(t, items, 2)
	assert.Equal(t, "E1", items[0].Title)
	assert.Equal(t, "E2", items[1].Title)
}

func TestParseEmptyRSSChannel(t *testing.T) {
	assert.Empty(t, Parse(rssDocument(), 6))
}
