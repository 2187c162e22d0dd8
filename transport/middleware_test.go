package transport_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/jrsteele09/schoolgest-client/transport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) transport.Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return transport.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	base := transport.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	req, err := http.NewRequest(http.MethodGet, "http://backend/api/users", nil)
	require.NoError(t, err)
	_, err = transport.Chain(base, tag("first"), tag("second")).RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "base"}, order)
}

func TestLoggingWritesExchange(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	base := transport.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusNotFound, Body: http.NoBody}, nil
	})

	req, err := http.NewRequest(http.MethodGet, "http://backend/api/users/7", nil)
	require.NoError(t, err)
	_, err = transport.Logging(logger, false)(base).RoundTrip(req)
	require.NoError(t, err)

	require.Contains(t, buf.String(), `"method":"GET"`)
	require.Contains(t, buf.String(), `"path":"/api/users/7"`)
	require.Contains(t, buf.String(), `"status":"404"`)
}

func TestRecoverTurnsPanicIntoError(t *testing.T) {
	base := transport.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		panic("boom")
	})

	req, err := http.NewRequest(http.MethodGet, "http://backend/api/users", nil)
	require.NoError(t, err)
	resp, err := transport.Recover(zerolog.Nop())(base).RoundTrip(req)
	require.Nil(t, resp)
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
