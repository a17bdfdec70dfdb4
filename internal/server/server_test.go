package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"class-autocomplete/internal/suggest"
)

const path = "/block-class-autocomplete/v1/suggestions"

func TestSuggestions(t *testing.T) {
	cache := suggest.NewCache(suggest.Static{"btn", "card"}, nil)
	s := New("", path, cache, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"btn", "card"}, got)
}

func TestSuggestionsUnavailable(t *testing.T) {
	failing := suggest.Func(func(context.Context) ([]string, error) {
		return nil, errors.New("boom")
	})
	s := New("", path, suggest.NewCache(failing, nil), nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := New("", path, suggest.NewCache(suggest.Static{"btn"}, nil), nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestHealthz(t *testing.T) {
	s := New("", path, suggest.NewCache(suggest.Static{"btn"}, nil), nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServeListenerFeedsHTTPSource(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := New("", path, suggest.NewCache(suggest.Static{"is-wide", "btn"}, nil), nil)
	go func() { _ = s.ServeListener(ln) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Close(ctx)
	})

	src := suggest.HTTP{URL: "http://" + ln.Addr().String() + path}
	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"is-wide", "btn"}, got)
}
