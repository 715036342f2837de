package adapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

var fashion = domain.Category{ID: "fashion", Name: "Fashion", Level: 1}

func row(id string, volume int) map[string]any {
	return map[string]any{
		"id":             id,
		"keyword":        "fashion " + id,
		"monthly_volume": volume,
		"product_count":  40,
		"competition":    "LOW",
		"monthly_trend":  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		"is_brand":       false,
		"search_type":    "shopping",
	}
}

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeRows(w http.ResponseWriter, rows ...map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"keywords": rows})
}

func newTestClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	c, err := New(Options{BaseURL: baseURL, Token: token})
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative/path"} {
		_, err := New(Options{BaseURL: raw})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}

func TestClient_Name(t *testing.T) {
	c := newTestClient(t, "https://ads.example.com", "")
	assert.Equal(t, "adapi", c.Name())
}

func TestClient_Fetch(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		writeRows(w, row("a", 100), row("b", 5000))
	})

	records, err := newTestClient(t, srv.URL+"/v1/", "secret-token").Fetch(context.Background(), fashion, 50)

	require.NoError(t, err)
	assert.Equal(t, "/v1/search", gotPath)
	assert.Equal(t, "category=fashion&limit=50", gotQuery)
	assert.Equal(t, "Bearer secret-token", gotAuth)

	require.Len(t, records, 2)
	assert.Equal(t, domain.KeywordRecord{
		ID:           "a",
		Text:         "fashion a",
		SearchVolume: 100,
		ProductCount: 40,
		Competition:  domain.CompetitionLow,
		Trend:        domain.TrendSeries{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		SearchType:   domain.SearchTypeShopping,
	}, records[0])
}

func TestClient_Fetch_NoTokenSendsNoAuth(t *testing.T) {
	var gotAuth string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeRows(w)
	})

	records, err := newTestClient(t, srv.URL, "").Fetch(context.Background(), fashion, 10)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, gotAuth)
}

func TestClient_Fetch_TruncatesToLimit(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		writeRows(w, row("a", 1), row("b", 2), row("c", 3))
	})

	records, err := newTestClient(t, srv.URL, "").Fetch(context.Background(), fashion, 2)

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClient_Fetch_MalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing volume", func(r map[string]any) { delete(r, "monthly_volume") }},
		{"negative volume", func(r map[string]any) { r["monthly_volume"] = -1 }},
		{"short trend", func(r map[string]any) { r["monthly_trend"] = []int{1, 2, 3} }},
		{"unknown competition", func(r map[string]any) { r["competition"] = "EXTREME" }},
		{"unknown search type", func(r map[string]any) { r["search_type"] = "navigational" }},
		{"missing id", func(r map[string]any) { r["id"] = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := row("x", 10)
			tt.mutate(bad)
			srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
				writeRows(w, row("a", 1), bad)
			})

			_, err := newTestClient(t, srv.URL, "").Fetch(context.Background(), fashion, 10)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := newTestClient(t, srv.URL, "").Fetch(context.Background(), fashion, 10)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_Fetch_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrAuthRequired},
		{http.StatusForbidden, domain.ErrAuthRequired},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusBadGateway, domain.ErrSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := newTestClient(t, srv.URL, "").Fetch(context.Background(), fashion, 10)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_Fetch_OtherClientError(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad category", http.StatusBadRequest)
	})

	_, err := newTestClient(t, srv.URL, "").Fetch(context.Background(), fashion, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad category")
}

func TestClient_Fetch_RateLimitSetsBackoff(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	c := newTestClient(t, srv.URL, "")

	_, err := c.Fetch(context.Background(), fashion, 10)
	require.ErrorIs(t, err, domain.ErrRateLimited)

	assert.WithinDuration(t, time.Now().Add(2*time.Minute), c.limiter.RetryAt(), 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Fetch(ctx, fashion, 10)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Fetch_BreakerOpensAfterServerFailures(t *testing.T) {
	var hits atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, srv.URL, "")

	for range 3 {
		_, err := c.Fetch(context.Background(), fashion, 10)
		require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	}

	_, err := c.Fetch(context.Background(), fashion, 10)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_Fetch_AuthFailuresDoNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTestClient(t, srv.URL, "")

	for range 5 {
		_, err := c.Fetch(context.Background(), fashion, 10)
		require.ErrorIs(t, err, domain.ErrAuthRequired)
	}
	assert.Equal(t, int32(5), hits.Load())
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url, "").Fetch(context.Background(), fashion, 10)

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestClient_Fetch_NegativeLimit(t *testing.T) {
	_, err := newTestClient(t, "https://ads.example.com", "").Fetch(context.Background(), fashion, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"":      0,
		"5":     5 * time.Second,
		" 60 ":  time.Minute,
		"-3":    0,
		"later": 0,
	}
	for in, want := range tests {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			assert.Equal(t, want, retryAfter(in))
		})
	}
}
