package pdl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/query"
)

// Response is a successful search: the provider's total-match count and the raw
// hits, in the provider's order. Status is 404 when the provider found nothing.
type Response struct {
	Status   int
	Total    int
	Hits     []map[string]any
	Attempts int
}

func (r *Response) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Hits)
}

// Search sends the query with the result size clamped to query.MaxSize.
// Rate-limited attempts are retried up to MaxAttempts with a linearly growing
// delay; every other failure is returned at once. Zero hits is not an error.
func (c *Client) Search(ctx context.Context, q query.CompiledQuery, limit int) (*Response, error) {
	fields := c.DataInclude
	if len(fields) == 0 {
		fields = query.DefaultDataInclude
	}

	body, err := json.Marshal(query.NewRequest(q, limit, fields))
	if err != nil {
		return nil, &FatalError{Message: "encoding query", Cause: err}
	}

	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var last Decision
	for attempt := 1; attempt <= attempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("waiting for rate limiter: %w", err)
			}
		}

		status, header, env, err := c.post(ctx, body)
		if err != nil {
			var fatal *FatalError
			if errors.As(err, &fatal) {
				return nil, err
			}
			return nil, fmt.Errorf("person search request: %w", err)
		}

		decision := classify(status, header, env, attempt, c.RetryDelay)
		switch decision.Outcome {
		case OutcomeSuccess:
			return newResponse(status, env, attempt), nil
		case OutcomeFatal:
			return nil, &FatalError{StatusCode: status, Type: errorType(env), Message: decision.Reason}
		}

		last = decision
		if attempt == attempts {
			break
		}

		c.logger.Warn("person search rate limited, retrying",
			zap.Stringer("outcome", decision.Outcome),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("delay", decision.Delay),
			zap.String("reason", decision.Reason),
		)

		if err := c.wait(ctx, decision.Delay); err != nil {
			return nil, fmt.Errorf("waiting to retry person search: %w", err)
		}
	}

	return nil, &RateLimitError{Attempts: attempts, LastDelay: last.Delay, Message: last.Reason}
}

func newResponse(status int, env *envelope, attempts int) *Response {
	resp := &Response{Status: status, Attempts: attempts}
	if env == nil {
		return resp
	}
	resp.Total = env.Total
	resp.Hits = env.Data
	return resp
}

func errorType(env *envelope) string {
	if env == nil || env.Error == nil {
		return ""
	}
	return env.Error.Type
}
