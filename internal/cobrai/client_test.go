package cobrai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournament(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tournaments/2411.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"Worlds","date":"2023-11-19","players":[],"rounds":[]}`))
		case "/tournaments/garbage.json":
			w.Write([]byte(`<html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	body, err := c.Tournament(ctx, "2411")
	require.NoError(t, err)
	assert.Contains(t, string(body), `"name":"Worlds"`)

	_, err = c.Tournament(ctx, "9999")
	assert.ErrorContains(t, err, "HTTP 404")

	_, err = c.Tournament(ctx, "garbage")
	assert.ErrorContains(t, err, "not JSON")
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").baseURL)
}
