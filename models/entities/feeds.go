package entities

import "time"

type FeedSource struct {
	Name     string `gorm:"primaryKey"`
	URL      string `gorm:"not null"`
	Position int    `gorm:"not null; default:0"`
}

// FeedItem is a normalized RSS item or Atom entry. Absent optional fields stay nil.
type FeedItem struct {
	Title           string     `json:"title"`
	Link            string     `json:"link"`
	PublishedAt     *string    `json:"publishedAt"`
	Description     *string    `json:"description"`
	PublishedParsed *time.Time `json:"-"`
}
