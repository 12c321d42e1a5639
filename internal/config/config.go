package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "https://gol.gg/"
	DefaultUserAgent = "golgg-drafts/1.0 (github.com/greenden007/LOL-ProPlay-DraftAnalysis)"
	DefaultTimeout   = 30 * time.Second
	FileName         = "golgg.yaml"
)

// Config holds all application configuration.
type Config struct {
	Site      SiteConfig     `yaml:"site"`
	HTTP      HTTPConfig     `yaml:"http"`
	Selectors SelectorConfig `yaml:"selectors"`
	Output    OutputConfig   `yaml:"output"`
	Log       LogConfig      `yaml:"log"`
	Pipeline  PipelineConfig `yaml:"pipeline"`
}

// SiteConfig names the statistics site and its path conventions.
type SiteConfig struct {
	BaseURL string `yaml:"base_url"`

	// GamePathPattern matches series links on the tournament page.
	GamePathPattern string `yaml:"game_path_pattern"`

	// GamePageMarker identifies per-game links in a series' game menu.
	GamePageMarker string `yaml:"game_page_marker"`

	// PatchPrefix is the version marker in front of the patch label.
	PatchPrefix string `yaml:"patch_prefix"`

	// LossMarker flags the losing side's header.
	LossMarker string `yaml:"loss_marker"`

	BansLabel  string `yaml:"bans_label"`
	PicksLabel string `yaml:"picks_label"`
}

// HTTPConfig is injected into the page fetcher at construction.
type HTTPConfig struct {
	UserAgent string            `yaml:"user_agent"`
	Headers   map[string]string `yaml:"headers"`
	Timeout   time.Duration     `yaml:"timeout"`

	// Retries applies to network errors and 5xx responses only.
	Retries int `yaml:"retries"`

	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// SelectorConfig holds the CSS selectors of the site layout.
type SelectorConfig struct {
	ResultsTable  string `yaml:"results_table"`
	SeriesAnchor  string `yaml:"series_anchor"`
	GameMenuLink  string `yaml:"game_menu_link"`
	SectionLabel  string `yaml:"section_label"`
	SectionBody   string `yaml:"section_body"`
	ChampionIcon  string `yaml:"champion_icon"`
	Patch         string `yaml:"patch"`
	PlayerLink    string `yaml:"player_link"`
	BlueHeader    string `yaml:"blue_header"`
	RedHeader     string `yaml:"red_header"`
	PatchHeader   string `yaml:"patch_header"`
	PatchCell     string `yaml:"patch_cell"`
	ChampionBlock string `yaml:"champion_block"`
}

// OutputConfig controls how rows are serialized.
type OutputConfig struct {
	ListDelimiter string `yaml:"list_delimiter"`
	NullValue     string `yaml:"null_value"`

	// Append adds rows to an existing CSV file instead of replacing it.
	Append bool `yaml:"append"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// PipelineConfig controls traversal.
type PipelineConfig struct {
	// Workers > 1 expands independent series concurrently.
	Workers int `yaml:"workers"`

	// UniqueSeries drops repeated series links before expansion.
	UniqueSeries bool `yaml:"unique_series"`
}

// Default returns the gol.gg profile.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:         DefaultBaseURL,
			GamePathPattern: `^/game/stats/\d+/`,
			GamePageMarker:  "page-game",
			PatchPrefix:     "v",
			LossMarker:      "LOSS",
			BansLabel:       "Bans",
			PicksLabel:      "Picks",
		},
		HTTP: HTTPConfig{
			UserAgent: DefaultUserAgent,
			Headers: map[string]string{
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-US,en;q=0.9",
			},
			Timeout:  DefaultTimeout,
			Retries:  2,
			CacheTTL: time.Hour,
		},
		Selectors: SelectorConfig{
			ResultsTable:  "table",
			SeriesAnchor:  "a[href]",
			GameMenuLink:  ".game-menu-button a.nav-link",
			SectionLabel:  "div.col-2",
			SectionBody:   "div.col-10",
			ChampionIcon:  "img.champion_icon_medium",
			Patch:         "div.col-3.text-right",
			PlayerLink:    `a[href*="player-stats"]`,
			BlueHeader:    "div.blue-line-header",
			RedHeader:     "div.red-line-header",
			PatchHeader:   "th",
			PatchCell:     `td[style="vertical-align:top"]`,
			ChampionBlock: "div[onmouseover]",
		},
		Output: OutputConfig{
			ListDelimiter: "|",
			NullValue:     "",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Pipeline: PipelineConfig{
			Workers: 1,
		},
	}
}

// Load builds the configuration: defaults, then the first config file found
// among paths (missing files are skipped), then environment header overrides.
func Load(paths ...string) (*Config, error) {
	cfg := Default()

	for _, p := range paths {
		path, err := expandHome(p)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		break
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPaths lists the config file locations probed by the CLI.
func DefaultPaths() []string {
	return []string{FileName, "~/.config/golgg-drafts/config.yaml"}
}

// LoadDotEnv loads the first .env file found. A missing file is not an error.
func LoadDotEnv(paths ...string) (string, bool) {
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Site.BaseURL) == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must not be negative")
	}
	if c.Output.ListDelimiter == "" {
		return fmt.Errorf("output.list_delimiter must not be empty")
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1")
	}

	for name, sel := range c.Selectors.named() {
		if _, err := cascadia.Compile(sel); err != nil {
			return fmt.Errorf("selectors.%s: invalid selector %q: %w", name, sel, err)
		}
	}
	return nil
}

func (s SelectorConfig) named() map[string]string {
	return map[string]string{
		"results_table":  s.ResultsTable,
		"series_anchor":  s.SeriesAnchor,
		"game_menu_link": s.GameMenuLink,
		"section_label":  s.SectionLabel,
		"section_body":   s.SectionBody,
		"champion_icon":  s.ChampionIcon,
		"patch":          s.Patch,
		"player_link":    s.PlayerLink,
		"blue_header":    s.BlueHeader,
		"red_header":     s.RedHeader,
		"patch_header":   s.PatchHeader,
		"patch_cell":     s.PatchCell,
		"champion_block": s.ChampionBlock,
	}
}

// HeaderSet returns a copy of the configured headers with the User-Agent set.
func (h HTTPConfig) HeaderSet() map[string]string {
	out := make(map[string]string, len(h.Headers)+1)
	for k, v := range h.Headers {
		out[k] = v
	}
	if h.UserAgent != "" {
		out["User-Agent"] = h.UserAgent
	}
	return out
}

func expandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
