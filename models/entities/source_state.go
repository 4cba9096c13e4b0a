package entities

type SourceStatus int

const (
	SourceIdle    SourceStatus = 0
	SourceLoading SourceStatus = 1
	SourceReady   SourceStatus = 2
	SourceFailed  SourceStatus = 3
)

func (s SourceStatus) String() string {
	switch s {
	case SourceLoading:
		return "loading"
	case SourceReady:
		return "ready"
	case SourceFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SourceState is owned by exactly one poller. Items are only set when Ready,
// Reason only when Failed.
type SourceState struct {
	Status SourceStatus
	Items  []FeedItem
	Reason string
}

func IdleState() SourceState {
	return SourceState{Status: SourceIdle}
}

func LoadingState() SourceState {
	return SourceState{Status: SourceLoading}
}

func ReadyState(items []FeedItem) SourceState {
	if items == nil {
		items = []FeedItem{}
	}
	return SourceState{Status: SourceReady, Items: items}
}

func FailedState(reason string) SourceState {
	return SourceState{Status: SourceFailed, Reason: reason}
}
