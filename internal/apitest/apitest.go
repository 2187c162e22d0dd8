// Package apitest runs an httptest backend that records every call made by
// an api.Client.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/stretchr/testify/require"
)

type Call struct {
	Method      string
	Path        string
	Query       string
	Body        string
	ContentType string
}

type Recorder struct {
	lock  sync.Mutex
	calls []Call
}

func (r *Recorder) All() []Call {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Call(nil), r.calls...)
}

func (r *Recorder) Last() Call {
	r.lock.Lock()
	defer r.lock.Unlock()
	if len(r.calls) == 0 {
		return Call{}
	}
	return r.calls[len(r.calls)-1]
}

// NewClient starts a backend mounted under /api and returns a client for it
func NewClient(t *testing.T, respond http.HandlerFunc) (*api.Client, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.lock.Lock()
		rec.calls = append(rec.calls, Call{r.Method, r.URL.Path, r.URL.RawQuery, string(body), r.Header.Get("Content-Type")})
		rec.lock.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		respond(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL+"/api", srv.Client())
	require.NoError(t, err)
	return c, rec
}

func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent answers every call with 204
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
