package constants

import "github.com/rs/zerolog"

const (
	LogFileName        = "fileName"
	LogFeedName        = "feedName"
	LogFeedURL         = "feedURL"
	LogFeedNumber      = "feedNumber"
	LogFeedStatus      = "feedStatus"
	LogRelay           = "relay"
	LogRelayURL        = "relayURL"
	LogBodySize        = "bodySize"
	LogUtteranceID     = "utteranceID"
	LogLanguage        = "language"
	LogLocale          = "locale"
	LogVoice           = "voice"
	LogVoiceNumber     = "voiceNumber"
	LogChannel         = "channel"
	LogPort            = "port"
	LogRefreshInterval = "refreshInterval"
	LogLevelFallback   = zerolog.InfoLevel
)
