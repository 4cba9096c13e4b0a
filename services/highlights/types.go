package highlights

import (
	"errors"
	"sync"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

const (
	maxBullets  = 3
	channelType = "channel"
)

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot  is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen channel posts")
)

// Highlight is the free section shown to every reader.
type Highlight struct {
	Source       string     `json:"source"`
	Title        string     `json:"title"`
	Bullets      []string   `json:"bullets"`
	RomanBullets []string   `json:"romanBullets"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type Service interface {
	GetHighlight() Highlight
	ListenAndDispatch() error
	Shutdown()
}

type Impl struct {
	bot     *gotgbot.Bot
	updater *ext.Updater
	channel string

	mu        sync.RWMutex
	highlight Highlight
}
