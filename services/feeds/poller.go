package feeds

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"news-pulse/models/constants"
	"news-pulse/models/entities"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

func newPoller(source entities.FeedSource, limit int, fetcher Fetcher,
	notify func(name string, state entities.SourceState)) *poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &poller{
		source:  source,
		limit:   limit,
		fetcher: fetcher,
		notify:  notify,
		state:   entities.IdleState(),
		alive:   &atomic.Bool{},
		ctx:     ctx,
		cancel:  cancel,
	}
}

// start polls immediately, then every interval. Singleton mode keeps a source
// from having two polls in flight.
func (p *poller) start(scheduler gocron.Scheduler, interval time.Duration) error {
	p.activate()

	job, errJob := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { p.poll() }),
		gocron.WithName(fmt.Sprintf("Poll feed %s", p.source.Name)),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if errJob != nil {
		p.stop()
		return errJob
	}

	p.scheduler = scheduler
	p.job = job
	return nil
}

func (p *poller) activate() {
	p.alive.Store(true)
	p.commit(p.alive, entities.LoadingState())
}

func (p *poller) poll() {
	alive := p.alive
	if !alive.Load() {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str(constants.LogFeedName, p.source.Name).
				Str(constants.LogFeedURL, p.source.URL).
				Msgf("Feed poll panicked: %v", r)
			p.commit(alive, entities.FailedState(FailureReason))
		}
	}()

	log.Debug().
		Str(constants.LogFeedName, p.source.Name).
		Str(constants.LogFeedURL, p.source.URL).
		Msg("Reading feed source...")

	p.commit(alive, entities.LoadingState())

	raw, err := p.fetcher.FetchRaw(p.ctx, p.source.URL)
	if err != nil {
		log.Error().Err(err).
			Str(constants.LogFeedName, p.source.Name).
			Str(constants.LogFeedURL, p.source.URL).
			Msg("Cannot fetch feed, source marked as failed")
		p.commit(alive, entities.FailedState(FailureReason))
		return
	}

	items := Parse(raw, p.limit)
	if p.commit(alive, entities.ReadyState(items)) {
		log.Info().
			Str(constants.LogFeedName, p.source.Name).
			Int(constants.LogFeedNumber, len(items)).
			Msg("Feed read")
	}
}

// commit applies and announces state only while the poller is alive. stop()
// waits for an announcement in progress, so nothing lands after teardown.
func (p *poller) commit(alive *atomic.Bool, state entities.SourceState) bool {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if !alive.Load() {
		p.mu.Unlock()
		log.Debug().
			Str(constants.LogFeedName, p.source.Name).
			Str(constants.LogFeedStatus, state.Status.String()).
			Msg("Poller stopped, late result discarded")
		return false
	}
	p.state = state
	p.mu.Unlock()

	if p.notify != nil {
		p.notify(p.source.Name, state)
	}
	return true
}

func (p *poller) getState() entities.SourceState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *poller) stop() {
	p.notifyMu.Lock()
	p.mu.Lock()
	p.alive.Store(false)
	p.mu.Unlock()
	p.notifyMu.Unlock()

	p.cancel()

	if p.scheduler != nil && p.job != nil {
		if err := p.scheduler.RemoveJob(p.job.ID()); err != nil {
			log.Warn().Err(err).
				Str(constants.LogFeedName, p.source.Name).
				Msg("Cannot remove poll job, continuing...")
		}
	}
}
