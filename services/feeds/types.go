package feeds

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"news-pulse/models/entities"
	"news-pulse/pkg/observer"

	"github.com/go-co-op/gocron/v2"
)

const (
	DefaultItemLimit       = 6
	DefaultRefreshInterval = 5 * time.Minute

	// FailureReason is the only reason ever shown to readers; causes stay in logs.
	FailureReason = "Failed to load feed"

	untitled = "Untitled"
	noLink   = "#"
)

var (
	rssDateExtensions = [][2]string{
		{"dc", "date"},
		{"atom", "updated"},
		{"atom", "published"},
	}
	rssContentExtensions = [][2]string{
		{"content", "encoded"},
		{"atom", "summary"},
		{"atom", "content"},
	}
)

// Fetcher returns the raw document behind a feed URL.
type Fetcher interface {
	FetchRaw(ctx context.Context, url string) (string, error)
}

type NamedState struct {
	Name  string
	URL   string
	State entities.SourceState
}

type Service interface {
	RegisterObserver(o observer.Observer)
	GetState(name string) (NamedState, bool)
	GetStates() []NamedState
	Shutdown()
}

type Impl struct {
	mu        sync.RWMutex
	pollers   map[string]*poller
	order     []string
	observers *observer.Observers
}

type poller struct {
	source  entities.FeedSource
	limit   int
	fetcher Fetcher
	notify  func(name string, state entities.SourceState)

	// notifyMu orders notifications against stop(); mu only guards state so
	// observers may still read it while being notified.
	notifyMu sync.Mutex
	mu       sync.RWMutex
	state    entities.SourceState
	// alive is read by in-flight polls before they commit anything.
	alive  *atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc

	scheduler gocron.Scheduler
	job       gocron.Job
}
