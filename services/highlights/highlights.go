package highlights

import (
	"strings"
	"time"

	"news-pulse/models/constants"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/rs/zerolog/log"
)

// New always returns a usable service serving the configured highlight. Without
// a token it stays static and ErrTokenIsMissing is returned alongside.
func New(token, channel string) (*Impl, error) {
	service := &Impl{
		channel:   strings.TrimPrefix(channel, "@"),
		highlight: defaultHighlight(),
	}

	if token == "" {
		return service, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return service, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Err(err).Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	dispatcher.AddHandler(handlers.NewMessage(service.isChannelPost, service.channelPostHandler).SetAllowChannel(true))

	service.bot = b
	service.updater = ext.NewUpdater(dispatcher, nil)

	return service, nil
}

func defaultHighlight() Highlight {
	return Highlight{
		Source:       constants.HighlightSource,
		Title:        constants.HighlightTitle,
		Bullets:      constants.GetHighlightBullets(),
		RomanBullets: constants.GetHighlightRomanBullets(),
	}
}

func (service *Impl) GetHighlight() Highlight {
	service.mu.RLock()
	defer service.mu.RUnlock()

	highlight := service.highlight
	highlight.Bullets = append([]string{}, service.highlight.Bullets...)
	highlight.RomanBullets = append([]string{}, service.highlight.RomanBullets...)
	return highlight
}

func (service *Impl) ListenAndDispatch() error {
	if service.updater == nil {
		return ErrTokenIsMissing
	}

	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout:        9,
			AllowedUpdates: []string{"channel_post"},
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return ErrFailedToStartListening
	}

	log.Info().Str(constants.LogChannel, service.channel).Msg("Listening to channel posts")
	service.updater.Idle()
	return nil
}

func (service *Impl) Shutdown() {
	if service.updater != nil {
		service.updater.Stop()
	}
}

func (service *Impl) isChannelPost(msg *gotgbot.Message) bool {
	return msg.Chat.Type == channelType && strings.EqualFold(msg.Chat.Username, service.channel)
}

func (service *Impl) channelPostHandler(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	bullets := BulletsFromPost(text)
	if len(bullets) == 0 {
		log.Debug().Str(constants.LogChannel, service.channel).Msg("Channel post without text, ignored")
		return nil
	}

	service.apply(bullets, time.Unix(msg.Date, 0).UTC())
	log.Info().Str(constants.LogChannel, service.channel).Int("bullets", len(bullets)).Msg("Highlights updated from channel")
	return nil
}

// apply replaces the bullets. Roman lines are dropped since posts only carry one
// version of the text.
func (service *Impl) apply(bullets []string, updatedAt time.Time) {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.highlight.Bullets = bullets
	service.highlight.RomanBullets = []string{}
	service.highlight.UpdatedAt = &updatedAt
}

// BulletsFromPost keeps the first non-empty lines of a post, without list markers.
func BulletsFromPost(text string) []string {
	bullets := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*·"))
		if line == "" {
			continue
		}

		bullets = append(bullets, line)
		if len(bullets) == maxBullets {
			break
		}
	}
	return bullets
}
