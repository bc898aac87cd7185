package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/web4all/web4all/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "web4all-test",
		MaxBodyBytes: 1 << 20,
	}
}

// disable retry sleeps for the duration of a test
func noSleep(t *testing.T) {
	t.Helper()
	orig := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = orig })
}

func TestFetcher_Fetch_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Hello</h1></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	result, err := f.Fetch(context.Background(), server.URL+"/about-us")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotUA != "web4all-test" {
		t.Errorf("expected custom User-Agent, got %q", gotUA)
	}
	if !strings.Contains(result.HTML, "<h1>Hello</h1>") {
		t.Errorf("unexpected body: %q", result.HTML)
	}
	if result.Meta.StatusCode != 200 {
		t.Errorf("expected status 200, got %d", result.Meta.StatusCode)
	}
	if result.Meta.ContentType != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", result.Meta.ContentType)
	}
	if result.Subject != "about us" {
		t.Errorf("expected subject %q, got %q", "about us", result.Subject)
	}
}

func TestFetcher_Fetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1000)))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 100
	f := NewFetcher(cfg)

	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.HTML) != 100 {
		t.Errorf("expected body truncated to 100 bytes, got %d", len(result.HTML))
	}
}

func TestFetcher_Fetch_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetcher_FetchWithRetry_RecoversFromServerErrors(t *testing.T) {
	noSleep(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	result, err := f.FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if !strings.Contains(result.HTML, "ok") {
		t.Errorf("unexpected body %q", result.HTML)
	}
}

func TestFetcher_FetchWithRetry_NoRetryOn404(t *testing.T) {
	noSleep(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	if _, err := f.FetchWithRetry(context.Background(), server.URL); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("client errors must not be retried, got %d attempts", calls)
	}
}

func TestFetcher_FetchWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	noSleep(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	if _, err := f.FetchWithRetry(context.Background(), server.URL); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != fetchMaxRetries {
		t.Errorf("expected %d attempts, got %d", fetchMaxRetries, calls)
	}
}

func TestIsRetryable(t *testing.T) {
	if isRetryable(&statusError{code: 404}) {
		t.Error("404 should not be retryable")
	}
	if !isRetryable(&statusError{code: 500}) {
		t.Error("500 should be retryable")
	}
	if !isRetryable(&statusError{code: 429}) {
		t.Error("429 should be retryable")
	}
}

func TestSubjectFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/about-us", "about us"},
		{"https://example.com/docs/getting_started", "getting started"},
		{"https://example.com/page.html", "page"},
		{"https://example.com/", "example.com"},
		{"https://example.com", "example.com"},
	}

	for _, tt := range tests {
		if got := subjectFromURL(tt.url); got != tt.want {
			t.Errorf("subjectFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
