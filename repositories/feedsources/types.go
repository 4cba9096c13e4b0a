package feedsources

import (
	"news-pulse/models/entities"
	"news-pulse/utils/databases"
)

type Repository interface {
	GetFeedSources() ([]entities.FeedSource, error)
	Create(feedSource entities.FeedSource) error
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}
