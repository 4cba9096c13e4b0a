package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"news-pulse/models/constants"
	"news-pulse/pkg/observer"
	"news-pulse/services/feeds"
	"news-pulse/services/highlights"
	"news-pulse/services/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func New(config Config, feedService feeds.Service, speechService speech.Service,
	highlightService highlights.Service) *Impl {
	service := &Impl{
		config:           config,
		feedService:      feedService,
		speechService:    speechService,
		highlightService: highlightService,
		subscribers:      map[chan EventView]struct{}{},
		done:             make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.ToLower(strings.ReplaceAll(constants.ExternalName, " ", "-"))))
	})
	r.Get("/health", service.health)
	r.Get("/languages", service.languages)
	r.Route("/feeds", func(r chi.Router) {
		r.Get("/", service.listFeeds)
		r.Get("/{name}", service.getFeed)
	})
	r.Get("/highlights", service.getHighlight)
	r.Route("/speech", func(r chi.Router) {
		r.Get("/", service.getPlayback)
		r.Post("/", service.speak)
		r.Delete("/", service.stop)
	})
	r.Get("/events", service.events)

	service.router = r
	service.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: r,
	}

	return service
}

func (service *Impl) Handler() http.Handler {
	return service.router
}

func (service *Impl) ListenAndServe() {
	log.Info().Int(constants.LogPort, service.config.Port).Msg("API listening")
	if err := service.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("API stopped unexpectedly")
	}
}

func (service *Impl) Shutdown(ctx context.Context) {
	service.mu.Lock()
	select {
	case <-service.done:
	default:
		close(service.done)
	}
	service.mu.Unlock()

	if err := service.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown API, continuing...")
	}
}

// OnNotify forwards state changes to every event stream. Slow readers miss
// events instead of blocking pollers.
func (service *Impl) OnNotify(e observer.Event) {
	var event EventView
	switch e.E {
	case observer.SourceStateEvent:
		feed := newFeedView(e.Source, e.State)
		event = EventView{Type: eventSource, Feed: &feed}
	case observer.PlaybackEvent:
		playback := newPlaybackView(e.Playback)
		event = EventView{Type: eventPlayback, Playback: &playback}
	case observer.VoicesChangedEvent:
		event = EventView{Type: eventVoices}
	default:
		return
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	for subscriber := range service.subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
}

func (service *Impl) subscribe() chan EventView {
	service.mu.Lock()
	defer service.mu.Unlock()
	subscriber := make(chan EventView, subscriberBuffer)
	service.subscribers[subscriber] = struct{}{}
	return subscriber
}

func (service *Impl) unsubscribe(subscriber chan EventView) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.subscribers, subscriber)
}

func (service *Impl) health(w http.ResponseWriter, r *http.Request) {
	if service.config.IsConnected != nil && !service.config.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, ErrorView{Error: "database unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (service *Impl) languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, constants.GetLanguages())
}

func (service *Impl) listFeeds(w http.ResponseWriter, r *http.Request) {
	states := service.feedService.GetStates()
	views := make([]FeedView, 0, len(states))
	for _, state := range states {
		views = append(views, newFeedView(state.Name, state.State))
	}
	writeJSON(w, http.StatusOK, views)
}

func (service *Impl) getFeed(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	state, found := service.feedService.GetState(name)
	if !found {
		writeJSON(w, http.StatusNotFound, ErrorView{Error: fmt.Sprintf("unknown feed %q", name)})
		return
	}
	writeJSON(w, http.StatusOK, newFeedView(state.Name, state.State))
}

func (service *Impl) getHighlight(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.highlightService.GetHighlight())
}

func (service *Impl) getPlayback(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newPlaybackView(service.speechService.GetState()))
}

func (service *Impl) speak(w http.ResponseWriter, r *http.Request) {
	var request SpeakRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorView{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(request.Text) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorView{Error: "text is required"})
		return
	}

	language := request.Lang
	if language == "" {
		language = service.config.DefaultLanguage
	}
	if !constants.IsSupportedLanguage(language) {
		writeJSON(w, http.StatusBadRequest, ErrorView{Error: fmt.Sprintf("unsupported language %q", language)})
		return
	}

	id := service.speechService.Speak(request.Text, language)
	writeJSON(w, http.StatusAccepted, SpeakResponse{UtteranceID: id})
}

func (service *Impl) stop(w http.ResponseWriter, r *http.Request) {
	service.speechService.Stop()
	writeJSON(w, http.StatusOK, newPlaybackView(service.speechService.GetState()))
}

func (service *Impl) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorView{Error: "streaming unsupported"})
		return
	}

	subscriber := service.subscribe()
	defer service.unsubscribe(subscriber)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-service.done:
			return
		case event := <-subscriber:
			data, err := json.Marshal(event)
			if err != nil {
				log.Error().Err(err).Msg("Cannot encode event")
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Cannot encode response")
	}
}
