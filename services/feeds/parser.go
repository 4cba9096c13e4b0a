package feeds

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"time"

	"news-pulse/models/entities"

	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/mmcdole/gofeed/rss"
	"golang.org/x/net/html/charset"
)

// Parse normalizes an RSS or Atom document. RSS items win when present; Atom
// entries are only looked at otherwise. Unparseable or ill-formed input gives
// no items.
func Parse(raw string, limit int) []entities.FeedItem {
	if limit <= 0 {
		limit = DefaultItemLimit
	}

	if !wellFormed(raw) {
		return []entities.FeedItem{}
	}

	if items := parseRSS(raw, limit); len(items) > 0 {
		return items
	}

	return parseAtom(raw, limit)
}

// wellFormed reports whether raw is a single well-formed XML document. The feed
// parsers recover from broken markup, so ill-formed input is rejected here.
func wellFormed(raw string) bool {
	decoder := xml.NewDecoder(strings.NewReader(strings.TrimPrefix(raw, "\ufeff")))
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	depth, roots := 0, 0
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return roots == 1 && depth == 0
		}
		if err != nil {
			return false
		}

		switch t := token.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return false
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(strings.TrimSpace(string(t))) > 0 {
				return false
			}
		}
	}
}

func parseRSS(raw string, limit int) []entities.FeedItem {
	feed, err := (&rss.Parser{}).Parse(strings.NewReader(raw))
	if err != nil || feed == nil {
		return nil
	}

	items := make([]entities.FeedItem, 0, min(len(feed.Items), limit))
	for _, item := range feed.Items {
		if len(items) == limit {
			break
		}
		if item == nil {
			continue
		}

		published, publishedParsed := rssDate(item)
		items = append(items, entities.FeedItem{
			Title:           orDefault(item.Title, untitled),
			Link:            orDefault(item.Link, noLink),
			PublishedAt:     published,
			PublishedParsed: publishedParsed,
			Description:     rssDescription(item),
		})
	}

	return items
}

func parseAtom(raw string, limit int) []entities.FeedItem {
	feed, err := (&atom.Parser{}).Parse(strings.NewReader(raw))
	if err != nil || feed == nil {
		return []entities.FeedItem{}
	}

	items := make([]entities.FeedItem, 0, min(len(feed.Entries), limit))
	for _, entry := range feed.Entries {
		if len(items) == limit {
			break
		}
		if entry == nil {
			continue
		}

		published, publishedParsed := atomDate(entry)
		items = append(items, entities.FeedItem{
			Title:           orDefault(entry.Title, untitled),
			Link:            orDefault(atomLink(entry.Links), noLink),
			PublishedAt:     published,
			PublishedParsed: publishedParsed,
			Description:     atomDescription(entry),
		})
	}

	return items
}

func rssDate(item *rss.Item) (*string, *time.Time) {
	if value := strings.TrimSpace(item.PubDate); value != "" {
		return &value, item.PubDateParsed
	}

	if item.DublinCoreExt != nil {
		if value := firstNonEmpty(item.DublinCoreExt.Date...); value != "" {
			return &value, nil
		}
	}

	for _, field := range rssDateExtensions {
		if value := extensionValue(item.Extensions, field[0], field[1]); value != "" {
			return &value, nil
		}
	}

	return nil, nil
}

func rssDescription(item *rss.Item) *string {
	candidates := []string{item.Description, item.Content}
	for _, field := range rssContentExtensions {
		candidates = append(candidates, extensionValue(item.Extensions, field[0], field[1]))
	}

	if value := firstNonEmpty(candidates...); value != "" {
		return &value
	}
	return nil
}

func atomDate(entry *atom.Entry) (*string, *time.Time) {
	if value := strings.TrimSpace(entry.Updated); value != "" {
		return &value, entry.UpdatedParsed
	}
	if value := strings.TrimSpace(entry.Published); value != "" {
		return &value, entry.PublishedParsed
	}
	return nil, nil
}

func atomDescription(entry *atom.Entry) *string {
	content := ""
	if entry.Content != nil {
		content = entry.Content.Value
	}

	if value := firstNonEmpty(entry.Summary, content); value != "" {
		return &value
	}
	return nil
}

// atomLink reads the href attribute, preferring the alternate relation.
func atomLink(links []*atom.Link) string {
	fallback := ""
	for _, link := range links {
		if link == nil || strings.TrimSpace(link.Href) == "" {
			continue
		}
		if link.Rel == "" || link.Rel == "alternate" {
			return strings.TrimSpace(link.Href)
		}
		if fallback == "" {
			fallback = strings.TrimSpace(link.Href)
		}
	}
	return fallback
}

func extensionValue(extensions ext.Extensions, prefix, name string) string {
	if extensions == nil {
		return ""
	}
	for _, extension := range extensions[prefix][name] {
		if value := strings.TrimSpace(extension.Value); value != "" {
			return value
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
