package api

import (
	"news-pulse/models/entities"

	"github.com/dustin/go-humanize"
)

func newFeedView(name string, state entities.SourceState) FeedView {
	view := FeedView{
		Name:    name,
		Loading: state.Status == entities.SourceLoading || state.Status == entities.SourceIdle,
		Items:   make([]ItemView, 0, len(state.Items)),
	}

	if state.Status == entities.SourceFailed {
		reason := state.Reason
		view.Error = &reason
	}

	for _, item := range state.Items {
		itemView := ItemView{FeedItem: item}
		if item.PublishedParsed != nil {
			itemView.PublishedAgo = humanize.Time(*item.PublishedParsed)
		}
		view.Items = append(view.Items, itemView)
	}

	return view
}

func newPlaybackView(state entities.PlaybackState) PlaybackView {
	return PlaybackView{IsSpeaking: state.IsSpeaking(), UtteranceID: state.UtteranceID}
}
