package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// ErrSiteBaseURLRequired indicates the site cannot be built without a base URL.
var ErrSiteBaseURLRequired = errors.New("blog config: site base URL is required")

// ErrContentDirRequired indicates the content root is missing.
var ErrContentDirRequired = errors.New("blog config: content directory is required")

// ErrGeneratorOutputDirRequired indicates the generator has nowhere to write.
var ErrGeneratorOutputDirRequired = errors.New("blog config: generator output directory is required")

// ErrBreakpointUnknown indicates the nav collapse threshold names a breakpoint
// that is not configured.
var ErrBreakpointUnknown = errors.New("blog config: nav collapse breakpoint is not configured")

var ErrBreakpointWidthInvalid = errors.New("blog config: breakpoint width must be positive")
var ErrCommentsProviderUnknown = errors.New("blog config: comments provider is invalid")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")
var ErrGeneratorWorkersInvalid = errors.New("blog config: generator workers must be zero or positive")

// Config aggregates site-wide defaults and adapter bindings for a build.
// It is loaded once at build start and treated as immutable afterwards.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Generator GeneratorConfig `yaml:"generator"`
	Templates TemplatesConfig `yaml:"templates"`
	Theme     ThemeConfig     `yaml:"theme"`
	Nav       NavConfig       `yaml:"nav"`
	Comments  CommentsConfig  `yaml:"comments"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig captures identity and metadata shared by every rendered page.
type SiteConfig struct {
	Title       string         `yaml:"title"`
	BaseURL     string         `yaml:"baseURL"`
	Description string         `yaml:"description"`
	Author      string         `yaml:"author"`
	Language    string         `yaml:"language"`
	Params      map[string]any `yaml:"params"`
}

// ContentConfig captures filesystem and parser behaviour for content ingestion.
type ContentConfig struct {
	Dir        string         `yaml:"dir"`
	Pattern    string         `yaml:"pattern"`
	Recursive  bool           `yaml:"recursive"`
	SchemaPath string         `yaml:"schemaPath"`
	Schema     map[string]any `yaml:"schema"`
	Parser     ParserConfig   `yaml:"parser"`
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hardWraps"`
	SafeMode   bool     `yaml:"safeMode"`
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	OutputDir       string `yaml:"outputDir"`
	CleanBuild      bool   `yaml:"cleanBuild"`
	Incremental     bool   `yaml:"incremental"`
	CopyAssets      bool   `yaml:"copyAssets"`
	GenerateSitemap bool   `yaml:"generateSitemap"`
	GenerateRobots  bool   `yaml:"generateRobots"`
	GenerateFeed    bool   `yaml:"generateFeed"`
	IncludeDrafts   bool   `yaml:"includeDrafts"`
	Workers         int    `yaml:"workers"`
	StaticDir       string `yaml:"staticDir"`
}

// TemplatesConfig points at layout overrides on disk. When Dir is empty the
// embedded defaults are used as-is.
type TemplatesConfig struct {
	Dir string `yaml:"dir"`
}

// ThemeConfig selects the active theme manifest and variant.
type ThemeConfig struct {
	BasePath          string `yaml:"basePath"`
	Name              string `yaml:"name"`
	Variant           string `yaml:"variant"`
	CSSVariablePrefix string `yaml:"cssVariablePrefix"`
}

// NavConfig drives the responsive navigation region: named viewport-width
// thresholds plus the breakpoint below which the menu collapses.
type NavConfig struct {
	Breakpoints   map[string]int `yaml:"breakpoints"`
	CollapseBelow string         `yaml:"collapseBelow"`
}

// CommentsConfig parameterises the comment-widget placeholder.
type CommentsConfig struct {
	Provider        string `yaml:"provider"`
	DisqusShortname string `yaml:"disqusShortname"`
	UtterancesRepo  string `yaml:"utterancesRepo"`
}

// ServerConfig captures preview server behaviour for the serve command.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"addSource"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns opinionated defaults for a single-author blog.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:    "Blog",
			BaseURL:  "http://localhost:1313",
			Language: "en",
			Params:   map[string]any{},
		},
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Generator: GeneratorConfig{
			OutputDir:       "public",
			CleanBuild:      true,
			Incremental:     false,
			CopyAssets:      true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateFeed:    true,
			Workers:         0,
			StaticDir:       "static",
		},
		Theme: ThemeConfig{
			BasePath:          "themes",
			CSSVariablePrefix: "--blog",
		},
		Nav: NavConfig{
			Breakpoints: map[string]int{
				"small-handheld": 360,
				"large-handheld": 768,
				"tablet":         1024,
				"monitor":        1280,
			},
			CollapseBelow: "large-handheld",
		},
		Server: ServerConfig{
			Addr:  "localhost:1313",
			Watch: true,
		},
		Logging: LoggingConfig{
			Enabled:  true,
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// LoadFile reads a YAML site configuration and merges it over DefaultConfig.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("blog config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("blog config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}
	if cfg.Generator.Workers < 0 {
		return ErrGeneratorWorkersInvalid
	}
	for name, width := range cfg.Nav.Breakpoints {
		if width <= 0 {
			return fmt.Errorf("%w: %s", ErrBreakpointWidthInvalid, name)
		}
	}
	if collapse := strings.TrimSpace(cfg.Nav.CollapseBelow); collapse != "" {
		if _, ok := cfg.Nav.Breakpoints[collapse]; !ok {
			return fmt.Errorf("%w: %s", ErrBreakpointUnknown, collapse)
		}
	}
	if provider := normalizeProvider(cfg.Comments.Provider); provider != "" {
		switch provider {
		case "disqus", "utterances":
		default:
			return fmt.Errorf("%w: %s", ErrCommentsProviderUnknown, provider)
		}
	}
	if cfg.Logging.Enabled {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
