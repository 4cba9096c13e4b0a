package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	strategyPrimary   = "primary"
	strategySecondary = "secondary"
	cacheCleanup      = 10 * time.Minute
)

var (
	ErrMissingContents = errors.New("relay envelope has no contents")
)

// TransportError is returned when every relay strategy failed for a URL.
type TransportError struct {
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot fetch %s through any relay: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

type Config struct {
	PrimaryURL   string
	SecondaryURL string
	UserAgent    string
	Timeout      time.Duration
	CacheTTL     time.Duration
}

// envelope is the JSON answer of the primary relay.
type envelope struct {
	Contents *string `json:"contents"`
	Status   struct {
		HTTPCode int `json:"http_code"`
	} `json:"status"`
}

type Service interface {
	FetchRaw(ctx context.Context, url string) (string, error)
}

type Impl struct {
	primaryURL   string
	secondaryURL string
	userAgent    string
	client       *http.Client
	cache        *cache.Cache
}
