package transport

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
)

// Middleware wraps a RoundTripper
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripFunc adapts a function to http.RoundTripper
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain wraps base so that the first middleware sees the request first
func Chain(base http.RoundTripper, mw ...Middleware) http.RoundTripper {
	chained := base
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chained = mw[i](chained)
	}
	return chained
}

// Logging logs every exchange at debug level. With colour set, the method and
// status are coloured for a terminal.
func Logging(logger zerolog.Logger, colour bool) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			event := logger.Debug().
				Str("method", displayMethod(r.Method, colour)).
				Str("path", r.URL.Path).
				Str("request_id", r.Header.Get(HeaderRequestID)).
				Dur("took", time.Since(start))
			if err != nil {
				event.Err(err).Msg("request failed")
				return resp, err
			}
			event.Str("status", displayStatus(resp.StatusCode, colour)).Msg("request done")
			return resp, nil
		})
	}
}

// Recover turns a panic below it into an error
func Recover(logger zerolog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (resp *http.Response, err error) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error().Str("stack", string(debug.Stack())).Msgf("recovered from panic: %v", p)
					resp, err = nil, fmt.Errorf("transport panic on %s %s: %v", r.Method, r.URL.Path, p)
				}
			}()
			return next.RoundTrip(r)
		})
	}
}

func displayMethod(method string, colour bool) string {
	if !colour {
		return method
	}
	padded := fmt.Sprintf("%-7s", method)
	if c, ok := methodColors[method]; ok {
		return c + padded + ResetColor
	}
	return Gray + padded + ResetColor
}

func displayStatus(status int, colour bool) string {
	if !colour {
		return fmt.Sprint(status)
	}
	return fmt.Sprintf("%s%d%s", statusColor(status), status, ResetColor)
}
