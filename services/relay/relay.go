package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"news-pulse/models/constants"

	"github.com/dustin/go-humanize"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

func New(config Config) *Impl {
	service := &Impl{
		primaryURL:   config.PrimaryURL,
		secondaryURL: strings.TrimSuffix(config.SecondaryURL, "/"),
		userAgent:    config.UserAgent,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}

	if config.CacheTTL > 0 {
		service.cache = cache.New(config.CacheTTL, cacheCleanup)
	}

	return service
}

// FetchRaw tries the envelope relay first, then the reader relay. There is no
// other retry: periodic re-invocation belongs to the caller.
func (service *Impl) FetchRaw(ctx context.Context, feedURL string) (string, error) {
	if service.cache != nil {
		if x, found := service.cache.Get(feedURL); found {
			return x.(string), nil
		}
	}

	body, errPrimary := service.fetchPrimary(ctx, feedURL)
	if errPrimary != nil {
		log.Warn().Err(errPrimary).
			Str(constants.LogFeedURL, feedURL).
			Str(constants.LogRelay, strategyPrimary).
			Msg("Relay failed, trying next one")

		var errSecondary error
		body, errSecondary = service.fetchSecondary(ctx, feedURL)
		if errSecondary != nil {
			return "", &TransportError{URL: feedURL, Cause: errors.Join(errPrimary, errSecondary)}
		}
	}

	if service.cache != nil {
		service.cache.SetDefault(feedURL, body)
	}

	return body, nil
}

func (service *Impl) fetchPrimary(ctx context.Context, feedURL string) (string, error) {
	endpoint, err := url.Parse(service.primaryURL)
	if err != nil {
		return "", fmt.Errorf("invalid primary relay URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("url", feedURL)
	endpoint.RawQuery = query.Encode()

	raw, err := service.get(ctx, endpoint.String(), strategyPrimary)
	if err != nil {
		return "", err
	}

	var result envelope
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("failed to parse relay envelope: %w", err)
	}

	if result.Status.HTTPCode >= http.StatusBadRequest {
		return "", fmt.Errorf("feed answered through relay with status: %d", result.Status.HTTPCode)
	}

	if result.Contents == nil {
		return "", ErrMissingContents
	}

	return *result.Contents, nil
}

func (service *Impl) fetchSecondary(ctx context.Context, feedURL string) (string, error) {
	raw, err := service.get(ctx, service.secondaryURL+"/"+feedURL, strategySecondary)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func (service *Impl) get(ctx context.Context, endpoint, strategy string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if service.userAgent != "" {
		req.Header.Set("User-Agent", service.userAgent)
	}

	resp, err := service.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("relay request failed with status: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().
		Str(constants.LogRelay, strategy).
		Str(constants.LogRelayURL, endpoint).
		Str(constants.LogBodySize, humanize.Bytes(uint64(len(raw)))).
		Msg("Relay answered")

	return raw, nil
}
