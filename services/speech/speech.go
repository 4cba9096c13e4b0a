package speech

import (
	"context"
	"errors"

	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/pkg/observer"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func New(platform Platform) *Impl {
	service := &Impl{
		platform:  platform,
		observers: observer.NewObservers(),
	}

	platform.OnVoicesChanged(func() {
		log.Debug().Int(constants.LogVoiceNumber, len(platform.Voices())).Msg("Voice list changed")
		service.observers.Notify(observer.NewVoicesChangedEvent())
	})

	return service
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers.Register(o)
}

func (service *Impl) GetState() entities.PlaybackState {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.state
}

// Speak silences the active utterance, if any, and starts a new one. The voice
// list is read now since the platform may have loaded more voices since startup.
func (service *Impl) Speak(text, languageCode string) string {
	utterance := Utterance{
		ID:    uuid.NewString(),
		Text:  text,
		Lang:  Locale(languageCode),
		Voice: PickVoice(service.platform.Voices(), languageCode),
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	service.mu.Lock()
	if service.cancel != nil {
		service.cancel()
	}
	previous := service.done
	service.cancel = cancel
	service.done = done
	service.state = entities.PlaybackState{UtteranceID: utterance.ID}
	state := service.state
	service.mu.Unlock()

	logger := log.Info().
		Str(constants.LogUtteranceID, utterance.ID).
		Str(constants.LogLanguage, languageCode).
		Str(constants.LogLocale, utterance.Lang)
	if utterance.Voice != nil {
		logger = logger.Str(constants.LogVoice, utterance.Voice.Name)
	}
	logger.Msg("Speaking")

	service.observers.Notify(observer.NewPlaybackEvent(state))

	go service.play(ctx, utterance, previous, done)

	return utterance.ID
}

// play waits for the previous platform call to return so two utterances never
// share the audio output.
func (service *Impl) play(ctx context.Context, utterance Utterance, previous <-chan struct{}, done chan struct{}) {
	defer close(done)

	if previous != nil {
		<-previous
	}

	var err error
	if ctx.Err() == nil {
		err = service.platform.Speak(ctx, utterance)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(&PlaybackError{UtteranceID: utterance.ID, Cause: err}).
			Str(constants.LogUtteranceID, utterance.ID).
			Msg("Playback failed, back to idle")
	}

	service.finish(utterance.ID)
}

func (service *Impl) finish(utteranceID string) {
	service.mu.Lock()
	if service.state.UtteranceID != utteranceID {
		service.mu.Unlock()
		return
	}
	service.state = entities.PlaybackState{}
	if service.cancel != nil {
		service.cancel()
		service.cancel = nil
	}
	service.mu.Unlock()

	service.observers.Notify(observer.NewPlaybackEvent(entities.PlaybackState{}))
}

// Stop cancels whatever is playing and goes Idle right away.
func (service *Impl) Stop() {
	service.mu.Lock()
	if service.cancel != nil {
		service.cancel()
		service.cancel = nil
	}
	wasSpeaking := service.state.IsSpeaking()
	service.state = entities.PlaybackState{}
	service.mu.Unlock()

	if wasSpeaking {
		log.Info().Msg("Speech stopped")
		service.observers.Notify(observer.NewPlaybackEvent(entities.PlaybackState{}))
	}
}

func (service *Impl) Shutdown() {
	service.Stop()
}
