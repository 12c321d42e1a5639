package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/config"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/logger"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

const (
	retryWait    = 500 * time.Millisecond
	retryMaxWait = 5 * time.Second
)

var tracer = otel.Tracer("golgg-drafts/scraper")

// Fetcher retrieves and parses HTML pages.
type Fetcher struct {
	client *resty.Client
	cache  *Cache
}

// New creates a Fetcher from the HTTP configuration. The header map is copied.
func New(cfg config.HTTPConfig) *Fetcher {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetHeaders(cfg.HeaderSet())
	client.SetRetryCount(cfg.Retries)
	client.SetRetryWaitTime(retryWait)
	client.SetRetryMaxWaitTime(retryMaxWait)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= http.StatusInternalServerError
	})
	client.SetLogger(restyLogger{})

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Fetcher{
		client: client,
		cache:  NewCache(ttl),
	}
}

// Cache returns the fetcher's page cache.
func (f *Fetcher) Cache() *Cache {
	return f.cache
}

// Fetch returns the parsed document for pageURL.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	page, err := f.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return page.Document()
}

// FetchPage returns the raw page, from cache when possible.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	if page := f.cache.Get(pageURL); page != nil {
		logger.IncrCounter("fetch.cache_hit")
		return page, nil
	}

	ctx, span := tracer.Start(ctx, "scraper.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageURL))

	start := time.Now()
	resp, err := f.client.R().SetContext(ctx).Get(pageURL)
	logger.RecordTiming("fetch", time.Since(start))
	if err != nil {
		logger.IncrCounter("fetch.failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, match.Wrap(match.KindFetchFailed, pageURL, fmt.Errorf("fetching page: %w", err))
	}

	span.SetAttributes(attribute.Int("status", resp.StatusCode()))
	if !resp.IsSuccess() {
		logger.IncrCounter("fetch.failed")
		span.SetStatus(codes.Error, "unexpected status")
		return nil, match.Errorf(match.KindFetchFailed, pageURL, "unexpected status code: %d", resp.StatusCode())
	}

	logger.IncrCounter("fetch.ok")
	page := &Page{
		URL:         pageURL,
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
	}
	f.cache.Set(pageURL, page)
	return page, nil
}

// Page is a fetched, undecoded response body.
type Page struct {
	URL         string
	Body        []byte
	ContentType string
}

// Document decodes and parses the page.
func (p *Page) Document() (*goquery.Document, error) {
	return ParseDocument(bytes.NewReader(p.Body), p.ContentType, p.URL)
}

// ParseDocument decodes r according to contentType and parses it as HTML.
// pageURL becomes the document's Url; it may be empty.
func ParseDocument(r io.Reader, contentType, pageURL string) (*goquery.Document, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, match.Wrap(match.KindFetchFailed, pageURL, fmt.Errorf("decoding body: %w", err))
	}

	root, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, match.Wrap(match.KindFetchFailed, pageURL, fmt.Errorf("parsing HTML: %w", err))
	}

	doc := goquery.NewDocumentFromNode(root)
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			doc.Url = u
		}
	}
	return doc, nil
}

// restyLogger routes resty's internal messages into the structured log.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	logger.Warn("http client", logger.Fields{"detail": fmt.Sprintf(format, v...)}, nil)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	logger.Warn("http client", logger.Fields{"detail": fmt.Sprintf(format, v...)}, nil)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	logger.Debug("http client", logger.Fields{"detail": fmt.Sprintf(format, v...)})
}
