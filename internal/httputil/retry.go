// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the model provider clients.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay is the base duration for exponential backoff. Tests
// override it to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// maxRetryAfter bounds how long a server-supplied Retry-After is honored.
const maxRetryAfter = 2 * time.Minute

const defaultMaxRetries = 3

// Retryable reports whether status signals a transient condition: rate
// limiting or an overloaded/unavailable upstream model server.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoWithRetry executes req and retries on retryable statuses with
// exponential backoff starting at RetryBaseDelay. A numeric Retry-After
// header takes precedence over the computed delay.
//
// When maxRetries is 0 the default (3) is used; a negative value sends the
// request once without retrying. Request bodies are replayed
// through req.GetBody, which http.NewRequest sets for in-memory bodies.
// After exhausting retries the last response is returned as-is so the caller
// can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	switch {
	case maxRetries < 0:
		maxRetries = 0
	case maxRetries == 0:
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("replaying request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := client.Do(attemptReq)
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		delay := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, maxRetryAfter)
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
