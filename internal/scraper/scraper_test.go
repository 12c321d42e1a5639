package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/config"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

func testHTTPConfig() config.HTTPConfig {
	cfg := config.Default().HTTP
	cfg.Timeout = 2 * time.Second
	cfg.Retries = 0
	return cfg
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		wantError   bool
		wantTitle   string
	}{
		{
			name:        "successful fetch",
			htmlContent: `<html><head><title>Game 1</title></head><body></body></html>`,
			statusCode:  http.StatusOK,
			wantTitle:   "Game 1",
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "golgg-drafts") {
					t.Errorf("User-Agent = %q, should contain 'golgg-drafts'", userAgent)
				}
				if r.Header.Get("Accept-Language") == "" {
					t.Error("configured headers were not sent")
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			f := New(testHTTPConfig())
			doc, err := f.Fetch(context.Background(), server.URL+"/game/stats/1/page-game/")

			if tt.wantError {
				if err == nil {
					t.Fatal("Fetch() expected error, got nil")
				}
				if !errors.Is(err, match.ErrFetchFailed) {
					t.Errorf("error = %v, want ErrFetchFailed", err)
				}
				if !strings.Contains(err.Error(), server.URL) {
					t.Errorf("error %q should name the URL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if got := doc.Find("title").Text(); got != tt.wantTitle {
				t.Errorf("title = %q, want %q", got, tt.wantTitle)
			}
			if doc.Url == nil || !strings.HasSuffix(doc.Url.Path, "/page-game/") {
				t.Errorf("doc.Url = %v, want the page URL", doc.Url)
			}
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.Timeout = 50 * time.Millisecond
	f := New(cfg)

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, match.ErrFetchFailed) {
		t.Fatalf("error = %v, want ErrFetchFailed", err)
	}
}

func TestFetch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	f := New(testHTTPConfig())
	_, err := f.Fetch(context.Background(), addr)
	if !errors.Is(err, match.ErrFetchFailed) {
		t.Fatalf("error = %v, want ErrFetchFailed", err)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<html><body><p>ok</p></body></html>"))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.Retries = 1
	f := New(cfg)

	doc, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if doc.Find("p").Text() != "ok" {
		t.Error("expected body of the retried request")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server saw %d requests, want 2", got)
	}
}

func TestFetch_CachesByURL(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("<html><body>cached</body></html>"))
	}))
	defer server.Close()

	f := New(testHTTPConfig())
	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), server.URL+"/a"); err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
	}
	if _, err := f.Fetch(context.Background(), server.URL+"/b"); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server saw %d requests, want 2", got)
	}
	if f.Cache().Size() != 2 {
		t.Errorf("cache size = %d, want 2", f.Cache().Size())
	}
}

func TestFetch_FailuresAreNotCached(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(testHTTPConfig())
	f.Fetch(context.Background(), server.URL)
	f.Fetch(context.Background(), server.URL)

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server saw %d requests, want 2", got)
	}
}

func TestParseDocument_Charset(t *testing.T) {
	// "Café" in ISO-8859-1.
	body := "<html><body><a>Caf\xe9</a></body></html>"
	doc, err := ParseDocument(strings.NewReader(body), "text/html; charset=ISO-8859-1", "")
	if err != nil {
		t.Fatalf("ParseDocument() error: %v", err)
	}
	if got := doc.Find("a").Text(); got != "Café" {
		t.Errorf("text = %q, want Café", got)
	}
	if doc.Url != nil {
		t.Errorf("doc.Url = %v, want nil for empty page URL", doc.Url)
	}
}
