package application

import (
	"context"
	"errors"
	"time"

	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/repositories/feedsources"
	"news-pulse/services/api"
	"news-pulse/services/feeds"
	"news-pulse/services/health"
	"news-pulse/services/highlights"
	"news-pulse/services/relay"
	"news-pulse/services/speech"
	databases "news-pulse/utils/databases"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

func New() (*Impl, error) {
	return newApplication(databases.New(viper.GetString(constants.SqliteURL)))
}

// newApplication releases whatever it opened when a later step fails.
func newApplication(db databases.SqlConnection) (*Impl, error) {
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}

	errMigration := db.GetDB().AutoMigrate(&entities.FeedSource{})
	if errMigration != nil {
		db.Shutdown()
		return nil, errMigration
	}

	scheduler, errScheduler := gocron.NewScheduler()
	if errScheduler != nil {
		db.Shutdown()
		return nil, errScheduler
	}

	release := func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
		}
		db.Shutdown()
	}

	// Repositories
	feedSourceRepo := feedsources.New(db)
	if errSeed := seedFeedSources(feedSourceRepo); errSeed != nil {
		release()
		return nil, errSeed
	}

	relayService := relay.New(relay.Config{
		PrimaryURL:   viper.GetString(constants.RelayPrimaryURL),
		SecondaryURL: viper.GetString(constants.RelaySecondaryURL),
		UserAgent:    viper.GetString(constants.UserAgent),
		Timeout:      viper.GetDuration(constants.RelayTimeout),
		CacheTTL:     viper.GetDuration(constants.RelayCacheTTL),
	})

	feedService, errFeeds := feeds.New(scheduler, feedSourceRepo, relayService,
		viper.GetInt(constants.FeedItemLimit), viper.GetDuration(constants.FeedRefreshInterval))
	if errFeeds != nil {
		release()
		return nil, errFeeds
	}

	healthService, errHealth := health.New(scheduler, viper.GetString(constants.HealthCronTab), feedService)
	if errHealth != nil {
		feedService.Shutdown()
		release()
		return nil, errHealth
	}

	speechService := speech.New(speech.NewEspeak(viper.GetString(constants.SpeechCommand)))

	highlightService, errHighlights := highlights.New(viper.GetString(constants.TelegramBotToken),
		viper.GetString(constants.TelegramChannel))
	if errHighlights != nil {
		log.Warn().Err(errHighlights).Msg("Highlights stay static")
	}

	apiService := api.New(api.Config{
		Port:            viper.GetInt(constants.APIPort),
		DefaultLanguage: viper.GetString(constants.DefaultLanguage),
		IsConnected:     db.IsConnected,
	}, feedService, speechService, highlightService)

	feedService.RegisterObserver(apiService)
	speechService.RegisterObserver(apiService)

	return &Impl{
		scheduler:        scheduler,
		healthService:    healthService,
		feedService:      feedService,
		speechService:    speechService,
		highlightService: highlightService,
		apiService:       apiService,
		db:               db,
	}, nil
}

func seedFeedSources(repo feedsources.Repository) error {
	if repo.Count() > 0 {
		return nil
	}

	sources := constants.GetFeedSources()
	if configured := viper.GetString(constants.FeedSources); configured != "" {
		sources = constants.ParseFeedSources(configured)
	}

	seen := make(map[string]struct{}, len(sources))
	position := 0
	for _, source := range sources {
		if _, duplicated := seen[source.Name]; duplicated {
			log.Warn().
				Str(constants.LogFeedName, source.Name).
				Str(constants.LogFeedURL, source.URL).
				Msg("Feed source name already registered, skipped")
			continue
		}
		seen[source.Name] = struct{}{}

		err := repo.Create(entities.FeedSource{Name: source.Name, URL: source.URL, Position: position})
		if err != nil {
			log.Error().Err(err).
				Str(constants.LogFeedName, source.Name).
				Str(constants.LogFeedURL, source.URL).
				Msg("Error on save feed source")
			return err
		}
		position++
	}

	return nil
}

func (app *Impl) Run() {
	app.scheduler.Start()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	go func() {
		err := app.highlightService.ListenAndDispatch()
		if err != nil && !errors.Is(err, highlights.ErrTokenIsMissing) {
			log.Error().Err(err).Msg("Cannot listen to channel posts")
		}
	}()

	go app.apiService.ListenAndServe()
}

func (app *Impl) SourceCount() int {
	return len(app.feedService.GetStates())
}

func (app *Impl) Shutdown() {
	app.feedService.Shutdown()
	app.speechService.Shutdown()
	app.highlightService.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.apiService.Shutdown(ctx)

	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
