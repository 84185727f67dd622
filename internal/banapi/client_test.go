package banapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) (*Client, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	opts.BaseURL = server.URL + "/"
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second
	}
	return New(opts, zap.NewNop()), &calls
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestLookupBanned(t *testing.T) {
	var (
		mu   sync.Mutex
		path string
	)
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		path = r.URL.Path
		mu.Unlock()
		respond(`{"status":200,"data":{"is_banned":1,"nickname":"Thug","period":6,"region":"EU"}}`)(w, r)
	}, Options{})

	result, err := client.Lookup(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if path != "/check_ban/check_ban/123456789" {
		t.Fatalf("unexpected request path %q", path)
	}
	want := Result{Banned: true, Nickname: "Thug", PeriodMonths: 6, PeriodKnown: true, Region: "EU"}
	if result != want {
		t.Fatalf("expected %+v, got %+v", want, result)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Fatalf("expected a single request, got %d", atomic.LoadInt32(calls))
	}
}

func TestLookupDefaultsMissingFields(t *testing.T) {
	client, _ := newTestClient(t, respond(`{"status":200,"data":{"nickname":"x"}}`), Options{})

	result, err := client.Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	want := Result{Nickname: "x", PeriodKnown: true}
	if result != want {
		t.Fatalf("expected %+v, got %+v", want, result)
	}
}

func TestLookupFlagVariants(t *testing.T) {
	cases := []struct {
		flag string
		want bool
	}{
		{`1`, true},
		{`0`, false},
		{`true`, true},
		{`false`, false},
		{`"1"`, true},
		{`"0"`, false},
		{`null`, false},
	}
	for _, tc := range cases {
		result, err := parse([]byte(`{"status":200,"data":{"is_banned":` + tc.flag + `}}`))
		if err != nil {
			t.Fatalf("flag %s: %v", tc.flag, err)
		}
		if result.Banned != tc.want {
			t.Fatalf("flag %s: expected banned=%t", tc.flag, tc.want)
		}
	}
}

func TestLookupNonIntegerPeriod(t *testing.T) {
	for _, period := range []string{`"six"`, `null`, `6.5`, `"6"`} {
		result, err := parse([]byte(`{"status":200,"data":{"is_banned":1,"period":` + period + `}}`))
		if err != nil {
			t.Fatalf("period %s: %v", period, err)
		}
		if result.PeriodKnown {
			t.Fatalf("period %s: expected unknown period", period)
		}
	}
}

func TestLookupNotFoundIsNotRetried(t *testing.T) {
	bodies := []string{
		`{"status":404,"data":{"is_banned":1}}`,
		`{"status":200}`,
		`{"status":200,"data":null}`,
		`{"status":200,"data":{}}`,
		`{"status":200,"data":[]}`,
		`{"status":200,"data":[{"is_banned":1}]}`,
		`{"status":200,"data":"banned"}`,
		`{"status":"200","data":{"is_banned":1}}`,
		`{"status":true,"data":{"is_banned":1}}`,
	}
	for _, body := range bodies {
		client, calls := newTestClient(t, respond(body), Options{RetryDelay: time.Millisecond})
		_, err := client.Lookup(context.Background(), "1")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("body %s: expected ErrNotFound, got %v", body, err)
		}
		if atomic.LoadInt32(calls) != 1 {
			t.Fatalf("body %s: expected one request, got %d", body, atomic.LoadInt32(calls))
		}
	}
}

func TestLookupAcceptsFractionalStatus(t *testing.T) {
	for _, status := range []string{"200", "200.0", "2e2"} {
		result, err := parse([]byte(`{"status":` + status + `,"data":{"is_banned":1,"period":3}}`))
		if err != nil {
			t.Fatalf("status %s: %v", status, err)
		}
		if !result.Banned || result.PeriodMonths != 3 {
			t.Fatalf("status %s: unexpected result %+v", status, result)
		}
	}
}

func TestLookupMalformedIsNotRetried(t *testing.T) {
	client, calls := newTestClient(t, respond(`{"status":`), Options{RetryDelay: time.Millisecond})

	_, err := client.Lookup(context.Background(), "1")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Fatalf("expected one request, got %d", atomic.LoadInt32(calls))
	}
}

func TestLookupRetriesServerErrors(t *testing.T) {
	var (
		mu     sync.Mutex
		stamps []time.Time
	)
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		stamps = append(stamps, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{Attempts: 3, RetryDelay: 30 * time.Millisecond})

	_, err := client.Lookup(context.Background(), "1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if atomic.LoadInt32(calls) != 3 {
		t.Fatalf("expected 3 attempts, got %d", atomic.LoadInt32(calls))
	}
	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < 30*time.Millisecond {
			t.Fatalf("attempt %d came %s after the previous one", i+1, gap)
		}
	}
}

func TestLookupRecoversAfterTransientFailure(t *testing.T) {
	var n int32
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		respond(`{"status":200,"data":{"is_banned":0,"nickname":"ok"}}`)(w, r)
	}, Options{RetryDelay: time.Millisecond})

	result, err := client.Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if result.Nickname != "ok" || result.Banned {
		t.Fatalf("unexpected result %+v", result)
	}
	if atomic.LoadInt32(calls) != 2 {
		t.Fatalf("expected 2 attempts, got %d", atomic.LoadInt32(calls))
	}
}

func TestLookupTimesOutEachAttempt(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Options{Attempts: 3, Timeout: 40 * time.Millisecond, RetryDelay: 10 * time.Millisecond})

	start := time.Now()
	_, err := client.Lookup(context.Background(), "1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if atomic.LoadInt32(calls) != 3 {
		t.Fatalf("expected 3 attempts, got %d", atomic.LoadInt32(calls))
	}
	if elapsed := time.Since(start); elapsed > 1500*time.Millisecond {
		t.Fatalf("per-attempt timeout not applied, took %s", elapsed)
	}
}

func TestLookupStopsWhenContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, Options{Attempts: 5, RetryDelay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Lookup(ctx, "1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if time.Since(start) > 900*time.Millisecond {
		t.Fatalf("expected cancellation to cut the retry delay short")
	}
}
