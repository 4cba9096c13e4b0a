package application

import (
	"news-pulse/services/api"
	"news-pulse/services/feeds"
	"news-pulse/services/health"
	"news-pulse/services/highlights"
	"news-pulse/services/speech"
	databases "news-pulse/utils/databases"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	SourceCount() int
	Shutdown()
}

type Impl struct {
	scheduler        gocron.Scheduler
	healthService    *health.Impl
	feedService      feeds.Service
	speechService    speech.Service
	highlightService highlights.Service
	apiService       *api.Impl
	db               databases.SqlConnection
}
