package pdl

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Outcome is the kind of a classified provider response.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRetry
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetry:
		return "retry"
	default:
		return "fatal"
	}
}

// Decision tells the search loop what to do with one response.
type Decision struct {
	Outcome Outcome
	// Delay is set for OutcomeRetry.
	Delay time.Duration
	// Reason is set for OutcomeRetry and OutcomeFatal.
	Reason string
}

// classify maps an HTTP status to a decision. attempt is 1-based; retry delays
// grow linearly as attempt*base, or follow Retry-After when that is longer.
func classify(status int, header http.Header, env *envelope, attempt int, base time.Duration) Decision {
	reason := ""
	if env != nil && env.Error != nil {
		reason = strings.TrimSpace(env.Error.Message)
	}

	switch {
	case status == http.StatusOK:
		return Decision{Outcome: OutcomeSuccess}
	case status == http.StatusNotFound && env != nil && env.Error != nil && env.Error.Type == notFoundType:
		// The provider answers 404 when nothing matches the query. Any other
		// 404, including one without a provider envelope, is a wrong endpoint.
		return Decision{Outcome: OutcomeSuccess}
	case status == http.StatusTooManyRequests:
		delay := time.Duration(attempt) * base
		if after := retryAfter(header); after > delay {
			delay = after
		}
		if reason == "" {
			reason = "too many requests"
		}
		return Decision{Outcome: OutcomeRetry, Delay: delay, Reason: reason}
	default:
		if reason == "" {
			reason = http.StatusText(status)
		}
		return Decision{Outcome: OutcomeFatal, Reason: reason}
	}
}

func retryAfter(header http.Header) time.Duration {
	if header == nil {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header.Get("Retry-After")))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
