package api

import (
	"net/http"
	"sync"

	"news-pulse/models/entities"
	"news-pulse/services/feeds"
	"news-pulse/services/highlights"
	"news-pulse/services/speech"

	"github.com/go-chi/chi/v5"
)

const (
	eventSource   = "source"
	eventPlayback = "playback"
	eventVoices   = "voices"

	subscriberBuffer = 16
	maxRequestBytes  = 64 * 1024
)

// FeedView is what a reader sees for one source.
type FeedView struct {
	Name    string     `json:"name"`
	Loading bool       `json:"loading"`
	Error   *string    `json:"error"`
	Items   []ItemView `json:"items"`
}

type ItemView struct {
	entities.FeedItem
	PublishedAgo string `json:"publishedAgo,omitempty"`
}

type PlaybackView struct {
	IsSpeaking  bool   `json:"isSpeaking"`
	UtteranceID string `json:"utteranceId,omitempty"`
}

type SpeakRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type SpeakResponse struct {
	UtteranceID string `json:"utteranceId"`
}

type EventView struct {
	Type     string        `json:"type"`
	Feed     *FeedView     `json:"feed,omitempty"`
	Playback *PlaybackView `json:"playback,omitempty"`
}

type ErrorView struct {
	Error string `json:"error"`
}

type Config struct {
	Port            int
	DefaultLanguage string
	IsConnected     func() bool
}

type Impl struct {
	config           Config
	router           chi.Router
	server           *http.Server
	feedService      feeds.Service
	speechService    speech.Service
	highlightService highlights.Service

	mu          sync.Mutex
	subscribers map[chan EventView]struct{}
	done        chan struct{}
}
