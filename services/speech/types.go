package speech

import (
	"context"
	"fmt"
	"sync"

	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/pkg/observer"
)

const (
	fallbackVoiceLanguage = "en"
	romanUrduLocale       = "en-US"
)

// voiceLanguages maps a selectable language to the voice prefix to look for.
// No Roman Urdu voice exists, so it is read with an English one.
var voiceLanguages = map[string]string{
	constants.LanguageEnglish:   "en",
	constants.LanguageHindi:     "hi",
	constants.LanguageUrdu:      "ur",
	constants.LanguageTelugu:    "te",
	constants.LanguageRomanUrdu: "en",
}

// Voice is a speech profile exposed by the platform.
type Voice struct {
	ID       string
	Name     string
	Language string
}

// Utterance is one request handed to the platform. A nil Voice means the
// platform default.
type Utterance struct {
	ID    string
	Text  string
	Lang  string
	Voice *Voice
}

// Platform is the host text-to-speech capability. Voices may be empty until the
// platform finishes loading them; listeners registered with OnVoicesChanged are
// called when the list changes. Speak blocks until the utterance ends, fails, or
// ctx is cancelled.
type Platform interface {
	Voices() []Voice
	OnVoicesChanged(listener func())
	Speak(ctx context.Context, utterance Utterance) error
}

type PlaybackError struct {
	UtteranceID string
	Cause       error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("utterance %s failed: %v", e.UtteranceID, e.Cause)
}

func (e *PlaybackError) Unwrap() error {
	return e.Cause
}

type Service interface {
	Speak(text, languageCode string) string
	Stop()
	GetState() entities.PlaybackState
	RegisterObserver(o observer.Observer)
	Shutdown()
}

type Impl struct {
	platform  Platform
	observers *observer.Observers

	mu     sync.Mutex
	state  entities.PlaybackState
	cancel context.CancelFunc
	// done is closed once the platform call of the current utterance returned.
	done chan struct{}
}
