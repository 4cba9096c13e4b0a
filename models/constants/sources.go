package constants

import (
	"strings"
	"unicode"
)

type FeedSource struct {
	Name string
	URL  string
}

func GetFeedSources() []FeedSource {
	var feedSources []FeedSource
	feedSources = append(feedSources, FeedSource{Name: "Hyderabad", URL: "https://www.thehindu.com/news/cities/Hyderabad/feeder/default.rss"})
	feedSources = append(feedSources, FeedSource{Name: "Telangana", URL: "https://www.thehindu.com/news/national/telangana/feeder/default.rss"})
	feedSources = append(feedSources, FeedSource{Name: "India", URL: "https://www.thehindu.com/news/national/feeder/default.rss"})
	feedSources = append(feedSources, FeedSource{Name: "International", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"})
	feedSources = append(feedSources, FeedSource{Name: "Sports", URL: "https://www.thehindu.com/sport/feeder/default.rss"})
	feedSources = append(feedSources, FeedSource{Name: "Founders", URL: "https://techcrunch.com/category/startups/feed/"})

	return feedSources
}

// ParseFeedSources reads a "name=url,name=url" list. A segment without "=" is
// kept as part of the previous URL, so "https://x/a,b" survives; a URL segment
// that itself holds "=" after a comma cannot be told apart from a new pair.
// Malformed pairs are skipped. Names are not deduplicated here.
func ParseFeedSources(value string) []FeedSource {
	var feedSources []FeedSource
	continuable := false
	for _, segment := range strings.Split(value, ",") {
		name, url, found := strings.Cut(segment, "=")
		if !found {
			if continuable && strings.TrimSpace(segment) != "" {
				last := &feedSources[len(feedSources)-1]
				last.URL += "," + strings.TrimRightFunc(segment, unicode.IsSpace)
			}
			continue
		}

		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		continuable = name != "" && url != ""
		if !continuable {
			continue
		}
		feedSources = append(feedSources, FeedSource{Name: name, URL: url})
	}

	return feedSources
}
