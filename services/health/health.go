package health

import (
	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/services/feeds"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

type Summary struct {
	Ready   int
	Failed  int
	Loading int
}

type Impl struct {
	feedService feeds.Service
}

func New(scheduler gocron.Scheduler, crontab string, feedService feeds.Service) (*Impl, error) {
	service := Impl{feedService: feedService}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) Summarize() Summary {
	var summary Summary
	for _, source := range service.feedService.GetStates() {
		switch source.State.Status {
		case entities.SourceReady:
			summary.Ready++
		case entities.SourceFailed:
			summary.Failed++
		default:
			summary.Loading++
		}
	}
	return summary
}

func (service *Impl) echo() {
	summary := service.Summarize()
	log.Info().
		Int("ready", summary.Ready).
		Int("failed", summary.Failed).
		Int("loading", summary.Loading).
		Msgf("%s is running", constants.ExternalName)
}
