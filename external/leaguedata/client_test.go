package leaguedata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"github.com/riskibarqy/bowling-league/internal/platform/resilience"
	"github.com/riskibarqy/bowling-league/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, retries int, circuit resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL + "/",
		MaxRetries:     retries,
		RetryBackoff:   time.Millisecond,
		Logger:         logging.NewNop(),
		CircuitBreaker: circuit,
	})
	require.NoError(t, err)
	return client
}

func leagueHandler(calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		switch r.URL.Path {
		case "/leagues/l1.json":
			_, _ = w.Write([]byte(`{"id":"l1","name":"Monday Majors","bowling-days":{"games-per-week":3,"start-date":"2025-09-08"}}`))
		case "/leagues/l2.json":
			_, _ = w.Write([]byte(`{"id":"l2","name":"Thursday Classic"}`))
		case "/leagues/broken.json":
			_, _ = w.Write([]byte(`{"id":`))
		default:
			http.NotFound(w, r)
		}
	}
}

func TestClient_FetchLeague(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, leagueHandler(nil), 0, resilience.DefaultCircuitBreakerConfig())

	doc, err := client.FetchLeague(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, "Monday Majors", doc.Name)
	assert.Equal(t, "2025-09-08", doc.BowlingDays.StartDate.String())
}

func TestClient_FetchLeague_Errors(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, leagueHandler(nil), 0, resilience.DefaultCircuitBreakerConfig())

	tests := []struct {
		name string
		id   string
		want error
	}{
		{name: "not found", id: "missing", want: usecase.ErrNotFound},
		{name: "malformed document", id: "broken", want: usecase.ErrInvalidInput},
		{name: "empty id", id: " ", want: usecase.ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := client.FetchLeague(context.Background(), tc.id)
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		leagueHandler(nil)(w, r)
	})
	client := newTestClient(t, handler, 2, resilience.DefaultCircuitBreakerConfig())

	doc, err := client.FetchLeague(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, "l1", doc.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_DocumentSizeLimit(t *testing.T) {
	t.Parallel()

	head := `{"id":"big","name":"Padded League"}`
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "at the limit", body: head + strings.Repeat(" ", maxDocumentBytes-len(head))},
		{name: "one byte over", body: head + strings.Repeat(" ", maxDocumentBytes-len(head)+1), wantErr: usecase.ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				_, _ = w.Write([]byte(tc.body))
			})
			client := newTestClient(t, handler, 2, resilience.DefaultCircuitBreakerConfig())

			doc, err := client.FetchLeague(context.Background(), "big")
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "Padded League", doc.Name)
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.wantErr)
			}
			assert.Contains(t, err.Error(), "exceeds")
			assert.Equal(t, int32(1), calls.Load(), "oversized documents are not retried")
		})
	}
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, strings.Repeat("x", 500), http.StatusBadGateway)
	})
	client := newTestClient(t, handler, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	_, err := client.FetchLeague(context.Background(), "l1")
	if !errors.Is(err, usecase.ErrUnavailable) {
		t.Fatalf("unexpected first error: got=%v want=%v", err, usecase.ErrUnavailable)
	}
	assert.Contains(t, err.Error(), "...")

	_, err = client.FetchLeague(context.Background(), "l1")
	if !errors.Is(err, usecase.ErrUnavailable) {
		t.Fatalf("unexpected second error: got=%v want=%v", err, usecase.ErrUnavailable)
	}
	assert.Equal(t, int32(1), calls.Load(), "open breaker must not reach the server")
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, leagueHandler(nil), 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	_, err := client.FetchLeague(context.Background(), "missing")
	require.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = client.FetchLeague(context.Background(), "l1")
	require.NoError(t, err)
}

func TestClient_FetchLeagues_KeepsOrderAndReportsFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, leagueHandler(&calls), 0, resilience.DefaultCircuitBreakerConfig())

	docs, err := client.FetchLeagues(context.Background(), []string{"l2", "missing", "l1", "l2"})
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("unexpected error: got=%v want=%v", err, usecase.ErrNotFound)
	}
	require.Len(t, docs, 2)
	assert.Equal(t, "l2", docs[0].ID)
	assert.Equal(t, "l1", docs[1].ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}
