package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bits-and-blooms/bloom/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/config"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/golgg"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/logger"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

var tracer = otel.Tracer("golgg-drafts/pipeline")

// Fetcher retrieves a parsed page. Failures should be classified as
// FETCH_FAILED.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Series is one series of a tournament with its game links in order.
type Series struct {
	Index int // 1-based position in the tournament
	URL   string
	Games []string
}

// Assembler runs the tournament to rows pipeline.
type Assembler struct {
	site    *golgg.Site
	fetcher Fetcher
	workers int
	unique  bool
}

// New creates an Assembler.
func New(site *golgg.Site, fetcher Fetcher, cfg config.PipelineConfig) *Assembler {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Assembler{
		site:    site,
		fetcher: fetcher,
		workers: workers,
		unique:  cfg.UniqueSeries,
	}
}

// Discover fetches the tournament's match list and returns its series links.
// A fetch failure or missing table yields no links and one issue.
func (a *Assembler) Discover(ctx context.Context, tournament string) ([]string, []Issue) {
	listURL := a.site.TournamentMatchlistURL(tournament)

	doc, err := a.fetcher.Fetch(ctx, listURL)
	if err != nil {
		return nil, []Issue{newIssue(listURL, err)}
	}

	links, err := a.site.CollectSeries(doc)
	if err != nil {
		return nil, []Issue{newIssue(listURL, err)}
	}

	if a.unique {
		links = dedupe(links)
	}
	return links, nil
}

// dedupe drops repeated links, keeping the first occurrence.
func dedupe(links []string) []string {
	seen := bloom.NewWithEstimates(uint(len(links)+1), 1e-9)
	out := make([]string, 0, len(links))
	for _, link := range links {
		if seen.TestOrAddString(link) {
			continue
		}
		out = append(out, link)
	}
	return out
}

// Expand fetches a series' first game and reads its game menu. When the page
// cannot be fetched the series is skipped.
func (a *Assembler) Expand(ctx context.Context, index int, seriesURL string) (Series, []Issue) {
	s := Series{Index: index, URL: seriesURL}

	doc, err := a.fetcher.Fetch(ctx, seriesURL)
	if err != nil {
		return s, []Issue{newIssue(seriesURL, err)}
	}

	s.Games = a.site.ExpandSeries(doc, seriesURL)
	return s, nil
}

// Assemble emits one row per game of every series, in series then game order.
// A game whose page cannot be fetched produces no row; missing or
// inconsistent parts of a fetched page leave that part empty.
func (a *Assembler) Assemble(ctx context.Context, tournament string, series []Series) ([]match.Row, []Issue) {
	var rows []match.Row
	var issues []Issue
	for _, s := range series {
		r, iss := a.assembleSeries(ctx, tournament, s)
		rows = append(rows, r...)
		issues = append(issues, iss...)
	}
	return rows, issues
}

func (a *Assembler) assembleSeries(ctx context.Context, tournament string, s Series) ([]match.Row, []Issue) {
	var rows []match.Row
	var issues []Issue

	for i, gameURL := range s.Games {
		doc, err := a.fetcher.Fetch(ctx, gameURL)
		if err != nil {
			issues = append(issues, newIssue(gameURL, err))
			continue
		}

		ex := a.site.ExtractGame(doc)
		for _, err := range ex.Issues {
			issues = append(issues, newIssue(gameURL, err))
		}
		rows = append(rows, match.NewRow(tournament, s.Index, i+1, gameURL, ex.Draft, ex.Roster, ex.Result))
	}
	return rows, issues
}

type seriesOutcome struct {
	series Series
	rows   []match.Row
	issues []Issue
}

// Run discovers, expands and assembles a whole tournament.
func (a *Assembler) Run(ctx context.Context, tournament string) *Report {
	ctx, span := tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(attribute.String("tournament", tournament)))
	defer span.End()

	start := time.Now()
	report := &Report{Tournament: tournament}

	links, issues := a.Discover(ctx, tournament)
	report.Issues = append(report.Issues, issues...)
	report.Series = len(links)

	logger.Info("tournament discovered", logger.Fields{
		"tournament": tournament,
		"series":     len(links),
		"workers":    a.workers,
	})

	outcomes := a.processSeries(ctx, tournament, links)
	for _, o := range outcomes {
		report.Games += len(o.series.Games)
		report.Rows = append(report.Rows, o.rows...)
		report.Issues = append(report.Issues, o.issues...)
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return match.Less(report.Rows[i], report.Rows[j])
	})

	for _, issue := range report.Issues {
		logger.IncrCounter("issues." + string(issue.Kind))
		logger.Warn("page skipped or incomplete", logger.Fields{
			"kind": string(issue.Kind),
			"url":  issue.URL,
		}, issue.Err)
	}

	logger.RecordTiming("run", time.Since(start))
	span.SetAttributes(
		attribute.Int("series", report.Series),
		attribute.Int("rows", len(report.Rows)),
		attribute.Int("issues", len(report.Issues)),
	)
	logger.Info("tournament assembled", logger.Fields{
		"tournament": tournament,
		"series":     report.Series,
		"games":      report.Games,
		"rows":       len(report.Rows),
		"issues":     len(report.Issues),
		"duration":   time.Since(start).String(),
	})
	return report
}

// processSeries expands and assembles every series with up to a.workers
// series in flight. Outcomes are returned in series order.
func (a *Assembler) processSeries(ctx context.Context, tournament string, links []string) []seriesOutcome {
	outcomes := make([]seriesOutcome, len(links))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(a.workers, len(links)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = a.processOne(ctx, tournament, i+1, links[i])
			}
		}()
	}

	for i := range links {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (a *Assembler) processOne(ctx context.Context, tournament string, index int, seriesURL string) seriesOutcome {
	ctx, span := tracer.Start(ctx, "pipeline.Series", trace.WithAttributes(
		attribute.Int("series_index", index),
		attribute.String("url", seriesURL),
	))
	defer span.End()

	s, issues := a.Expand(ctx, index, seriesURL)
	rows, gameIssues := a.assembleSeries(ctx, tournament, s)

	logger.Debug("series assembled", logger.Fields{
		"series": index,
		"games":  len(s.Games),
		"rows":   len(rows),
	})
	return seriesOutcome{
		series: s,
		rows:   rows,
		issues: append(issues, gameIssues...),
	}
}
