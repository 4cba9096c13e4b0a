package observer

import (
	"news-pulse/models/entities"
	"sync"
)

type EventType int

const (
	SourceStateEvent   EventType = 1
	PlaybackEvent      EventType = 2
	VoicesChangedEvent EventType = 3
)

type Event struct {
	E        EventType
	Source   string
	State    entities.SourceState
	Playback entities.PlaybackState
}

func NewSourceStateEvent(source string, state entities.SourceState) Event {
	return Event{E: SourceStateEvent, Source: source, State: state}
}

func NewPlaybackEvent(playback entities.PlaybackState) Event {
	return Event{E: PlaybackEvent, Playback: playback}
}

func NewVoicesChangedEvent() Event {
	return Event{E: VoicesChangedEvent}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	Register(Observer)
	Notify(Event)
}

// Observers is a Notifier safe for concurrent use; pollers notify from scheduler goroutines.
type Observers struct {
	mu        sync.RWMutex
	observers map[Observer]struct{}
}

func NewObservers() *Observers {
	return &Observers{observers: map[Observer]struct{}{}}
}

func (o *Observers) Register(obs Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers[obs] = struct{}{}
}

func (o *Observers) Notify(e Event) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for obs := range o.observers {
		obs.OnNotify(e)
	}
}

var _ Notifier = (*Observers)(nil)
