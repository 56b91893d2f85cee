package status_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farstack/heimdall/adapters/status"
)

func TestStatusFetch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/12345/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fid":12345,"score":"99.5","rank":2,"streak":8,"updated_at":"2026-08-30T12:00:00Z"}`))
	}))
	defer upstream.Close()

	p := status.NewHTTPProvider(upstream.URL)

	got, err := p.Status(context.Background(), 12345)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), got.Fid)
	assert.True(t, got.Score.Equal(decimal.RequireFromString("99.5")))
	assert.Equal(t, 2, got.Rank)
	assert.Equal(t, 8, got.Streak)
}

func TestStatusUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	p := status.NewHTTPProvider(upstream.URL)

	_, err := p.Status(context.Background(), 12345)
	assert.Error(t, err)
}

func TestStatusUnreachableUpstream(t *testing.T) {
	p := status.NewHTTPProvider("http://127.0.0.1:1")

	_, err := p.Status(context.Background(), 12345)
	assert.Error(t, err)
}
