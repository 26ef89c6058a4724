// Package pdl is a client for the person-search provider: an Elasticsearch-style
// search endpoint over professional profiles.
package pdl

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spigell/prospector/internal/utils"
)

const (
	apiURL     = "https://api.peopledatalabs.com"
	searchPath = "/v5/person/search"
	userAgent  = "spigell/prospector"

	DefaultMaxAttempts = 3
	DefaultRetryDelay  = time.Second
	DefaultTimeout     = 30 * time.Second
)

type Client struct {
	apiKey  string
	logger  *zap.Logger
	limiter *rate.Limiter
	// wait sleeps between attempts; replaced in tests.
	wait func(ctx context.Context, d time.Duration) error

	HTTPClient  *http.Client
	UserAgent   string
	APIURL      string
	MaxAttempts int
	RetryDelay  time.Duration
	DataInclude []string
}

func New(logger *zap.Logger, apiKey string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey: apiKey,
		logger: logger,
		wait:   utils.WaitFor,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent:   userAgent,
		APIURL:      apiURL,
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
	}
}

// SetRateLimit paces outgoing attempts to rps requests per second.
// Zero or negative disables pacing.
func (c *Client) SetRateLimit(rps float64) {
	if rps <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}
