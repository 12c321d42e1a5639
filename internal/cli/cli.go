package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/config"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/dataset"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/golgg"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/logger"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/pipeline"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/scraper"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// ConfigLoader produces the run configuration.
type ConfigLoader func() (*config.Config, error)

// DefaultConfigLoader loads .env, then the config file from its default
// locations.
func DefaultConfigLoader() (*config.Config, error) {
	config.LoadDotEnv(".env")
	return config.Load(config.DefaultPaths()...)
}

// NewRootCmd creates the root command
func NewRootCmd(load ConfigLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "golgg-drafts",
		Short: "Scrape professional League of Legends drafts from gol.gg",
		Long: `A CLI tool to extract draft picks, bans, rosters, patch and winner for every
game of a tournament listed on gol.gg, one row per game.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newScrapeCmd(load))
	cmd.AddCommand(newPatchStatsCmd(load))
	cmd.AddCommand(newBansCmd(load))

	return cmd
}

func setup(load ConfigLoader) (*config.Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.SetDefault(logger.New(logger.ParseLevel(cfg.Log.Level), cfg.Log.Format, os.Stderr))
	return cfg, nil
}

func newScrapeCmd(load ConfigLoader) *cobra.Command {
	var tournament, output string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape every game of a tournament",
		Example: `  golgg-drafts scrape --tournament "LCK Summer Playoffs 2024" --output drafts.csv
  golgg-drafts scrape --tournament "Worlds Main Event 2024" --output drafts.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tournament = strings.TrimSpace(tournament)
			if tournament == "" {
				return fmt.Errorf("--tournament is required")
			}

			cfg, err := setup(load)
			if err != nil {
				return err
			}
			return runScrape(cmd, cfg, tournament, output)
		},
	}

	cmd.Flags().StringVar(&tournament, "tournament", "", "Tournament name as listed on gol.gg, or its match list URL (required)")
	cmd.Flags().StringVar(&output, "output", "", "Output file: .csv, or .db/.sqlite for SQLite (required)")
	cmd.MarkFlagRequired("tournament")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runScrape(cmd *cobra.Command, cfg *config.Config, tournament, output string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	site, err := golgg.NewSite(cfg)
	if err != nil {
		return err
	}
	assembler := pipeline.New(site, scraper.New(cfg.HTTP), cfg.Pipeline)

	report := assembler.Run(ctx, tournament)

	summary := &Summary{
		Report: report,
		Output: output,
	}

	if err := writeRows(ctx, output, cfg.Output, report); err != nil {
		summary.Unflushed = len(report.Rows)
		summary.Metrics = logger.GetMetricsSnapshot()
		WriteSummary(cmd.OutOrStdout(), summary)
		return err
	}

	summary.Metrics = logger.GetMetricsSnapshot()
	return WriteSummary(cmd.OutOrStdout(), summary)
}

func writeRows(ctx context.Context, output string, out config.OutputConfig, report *pipeline.Report) error {
	sink, err := storage.Open(output, out)
	if err != nil {
		return err
	}
	if err := sink.Write(ctx, report.Rows); err != nil {
		sink.Close()
		return err
	}
	return sink.Close()
}

func newPatchStatsCmd(load ConfigLoader) *cobra.Command {
	var (
		season    int
		splitName string
		output    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:     "patch-stats",
		Short:   "Scrape pick/ban presence per patch for a season split",
		Example: `  golgg-drafts patch-stats --season 14 --split Summer --output pick_ban_by_patch_s14Summer.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			split, err := golgg.ParseSplit(splitName)
			if err != nil {
				return err
			}
			order := SortOrder(strings.ToLower(sortOrder))
			if !order.valid() {
				return fmt.Errorf("invalid sort: %s (must be 'page', 'patch', 'presence' or 'champion')", sortOrder)
			}

			cfg, err := setup(load)
			if err != nil {
				return err
			}
			site, err := golgg.NewSite(cfg)
			if err != nil {
				return err
			}

			pageURL := site.PatchStatsURL(season, split)
			doc, err := scraper.New(cfg.HTTP).Fetch(cmd.Context(), pageURL)
			if err != nil {
				return err
			}
			stats, err := site.ParsePatchStats(doc)
			if err != nil {
				return err
			}
			sortPatchStats(stats, order)

			if err := storage.WriteTable(output, patchStatsHeader, patchStatsRecords(stats)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d champion entries to %s\n", len(stats), output)
			return nil
		},
	}

	cmd.Flags().IntVar(&season, "season", 0, "Season number, e.g. 14 (required)")
	cmd.Flags().StringVar(&splitName, "split", string(golgg.SplitAll), "Split: Winter, Spring, Summer or ALL")
	cmd.Flags().StringVar(&output, "output", "", "Output CSV file (required)")
	cmd.Flags().StringVar(&sortOrder, "sort", string(SortByPage), "Order: page, patch, presence or champion")
	cmd.MarkFlagRequired("season")
	cmd.MarkFlagRequired("output")

	return cmd
}

func newBansCmd(load ConfigLoader) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:     "bans",
		Short:   "Build ban training samples from a scraped drafts CSV",
		Example: `  golgg-drafts bans --input drafts.csv --output bans.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(load)
			if err != nil {
				return err
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()

			rows, err := storage.ReadRows(f, cfg.Output)
			if err != nil {
				return fmt.Errorf("reading %s: %w", input, err)
			}
			samples, err := dataset.BanSamples(rows)
			if err != nil {
				return err
			}

			records := make([][]string, 0, len(samples))
			for _, s := range samples {
				records = append(records, s.Record(cfg.Output.ListDelimiter))
			}
			if err := storage.WriteTable(output, dataset.BanHeader, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d samples to %s\n", len(samples), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Drafts CSV written by scrape (required)")
	cmd.Flags().StringVar(&output, "output", "", "Output CSV file (required)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

var patchStatsHeader = []string{"name", "percentage", "id", "patch"}

func patchStatsRecords(stats []golgg.PatchStat) [][]string {
	records := make([][]string, 0, len(stats))
	for _, s := range stats {
		pct := ""
		if s.Percentage != nil {
			pct = fmt.Sprint(*s.Percentage)
		}
		records = append(records, []string{s.Champion, pct, s.ChampionID, s.Patch})
	}
	return records
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd(DefaultConfigLoader).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
