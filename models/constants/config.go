package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	ExternalName = "News Pulse"
	Version      = "1.0.0"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// Public channel username (without @) whose posts feed the highlights.
	TelegramChannel = "TELEGRAM_CHANNEL"

	// SQLITE_URL URL. The feed registry only lives as long as the process.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// HTTP port serving feeds, highlights, speech and events.
	APIPort = "API_PORT"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Comma separated list of name=url pairs, overrides the built-in registry.
	// Only the first source of a repeated name is kept.
	FeedSources = "FEED_SOURCES"

	// Max number of items kept per source.
	FeedItemLimit = "FEED_ITEM_LIMIT"

	// Delay between two polls of the same source. Duration type.
	FeedRefreshInterval = "FEED_REFRESH_INTERVAL"

	// Relay answering with a {"contents": "..."} envelope.
	RelayPrimaryURL = "RELAY_PRIMARY_URL"

	// Reader relay answering with the raw body.
	RelaySecondaryURL = "RELAY_SECONDARY_URL"

	// HTTP client timeout for relays, 0 means none. Duration type.
	RelayTimeout = "RELAY_TIMEOUT"

	// Relay responses cache. Duration type, 0 disables.
	RelayCacheTTL = "RELAY_CACHE_TTL"

	UserAgent = "USER_AGENT"

	// Language used when the caller does not provide one.
	DefaultLanguage = "DEFAULT_LANGUAGE"

	// Speech synthesizer binary.
	SpeechCommand = "SPEECH_COMMAND"

	defaultTelegramBotToken    = ""
	defaultTelegramChannel     = "AzadStudioOfficial"
	defaultAPIPort             = 9090
	defaultSqliteURL           = ":memory:"
	defaultHealthCrontab       = "*/15 * * * *"
	defaultFeedSources         = ""
	defaultFeedItemLimit       = 6
	defaultFeedRefreshInterval = 5 * time.Minute
	defaultRelayPrimaryURL     = "https://api.allorigins.win/get"
	defaultRelaySecondaryURL   = "https://r.jina.ai"
	defaultRelayTimeout        = time.Duration(0)
	defaultRelayCacheTTL       = 1 * time.Minute
	defaultUserAgent           = "news-pulse/" + Version
	defaultLanguage            = LanguageEnglish
	defaultSpeechCommand       = "espeak-ng"
	defaultLogLevel            = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		TelegramBotToken:    defaultTelegramBotToken,
		TelegramChannel:     defaultTelegramChannel,
		APIPort:             defaultAPIPort,
		SqliteURL:           defaultSqliteURL,
		LogLevel:            defaultLogLevel.String(),
		HealthCronTab:       defaultHealthCrontab,
		FeedSources:         defaultFeedSources,
		FeedItemLimit:       defaultFeedItemLimit,
		FeedRefreshInterval: defaultFeedRefreshInterval,
		RelayPrimaryURL:     defaultRelayPrimaryURL,
		RelaySecondaryURL:   defaultRelaySecondaryURL,
		RelayTimeout:        defaultRelayTimeout,
		RelayCacheTTL:       defaultRelayCacheTTL,
		UserAgent:           defaultUserAgent,
		DefaultLanguage:     defaultLanguage,
		SpeechCommand:       defaultSpeechCommand,
	}
}
