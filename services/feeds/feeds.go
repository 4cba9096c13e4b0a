package feeds

import (
	"time"

	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/pkg/observer"
	"news-pulse/repositories/feedsources"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// New starts one poller per registered source. Sources are fixed for the
// lifetime of the returned service.
func New(scheduler gocron.Scheduler, feedSourceRepo feedsources.Repository, fetcher Fetcher,
	limit int, interval time.Duration) (*Impl, error) {
	if limit <= 0 {
		limit = DefaultItemLimit
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	feedSources, err := feedSourceRepo.GetFeedSources()
	if err != nil {
		return nil, err
	}

	service := &Impl{
		pollers:   make(map[string]*poller, len(feedSources)),
		observers: observer.NewObservers(),
	}

	for _, feedSource := range feedSources {
		p := newPoller(feedSource, limit, fetcher, service.onStateChange)
		if errStart := p.start(scheduler, interval); errStart != nil {
			service.Shutdown()
			return nil, errStart
		}

		service.pollers[feedSource.Name] = p
		service.order = append(service.order, feedSource.Name)
	}

	log.Info().
		Int(constants.LogFeedNumber, len(service.order)).
		Msgf("Feed sources polled every %v", interval)

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers.Register(o)
}

func (service *Impl) onStateChange(name string, state entities.SourceState) {
	service.observers.Notify(observer.NewSourceStateEvent(name, state))
}

func (service *Impl) GetState(name string) (NamedState, bool) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	p, found := service.pollers[name]
	if !found {
		return NamedState{}, false
	}

	return NamedState{Name: name, URL: p.source.URL, State: p.getState()}, true
}

// GetStates returns every source in registry order.
func (service *Impl) GetStates() []NamedState {
	service.mu.RLock()
	defer service.mu.RUnlock()

	states := make([]NamedState, 0, len(service.order))
	for _, name := range service.order {
		p := service.pollers[name]
		states = append(states, NamedState{Name: name, URL: p.source.URL, State: p.getState()})
	}

	return states
}

func (service *Impl) Shutdown() {
	service.mu.Lock()
	defer service.mu.Unlock()

	for _, p := range service.pollers {
		p.stop()
	}
	log.Info().Msg("Feed pollers stopped")
}
