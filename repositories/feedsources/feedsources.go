package feedsources

import (
	"news-pulse/models/entities"
	"news-pulse/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

// GetFeedSources returns the registry in declaration order.
func (repo *Impl) GetFeedSources() ([]entities.FeedSource, error) {
	var feedSources []entities.FeedSource
	response := repo.db.GetDB().Model(&entities.FeedSource{}).Order("position").Find(&feedSources)
	return feedSources, response.Error
}

func (repo *Impl) Create(feedSource entities.FeedSource) error {
	return repo.db.GetDB().Create(&feedSource).Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.FeedSource{}).Count(count)

	return *count
}
