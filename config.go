package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

// Config aggregates site, content, generator, and server settings.
type Config = runtimeconfig.Config

// SiteConfig exports the site identity section.
type SiteConfig = runtimeconfig.SiteConfig

// ContentConfig exports the content ingestion section.
type ContentConfig = runtimeconfig.ContentConfig

// GeneratorConfig exports the generator behaviour section.
type GeneratorConfig = runtimeconfig.GeneratorConfig

// NavConfig exports the responsive navigation section.
type NavConfig = runtimeconfig.NavConfig

// CommentsConfig exports the comment widget section.
type CommentsConfig = runtimeconfig.CommentsConfig

// ServerConfig exports the preview server section.
type ServerConfig = runtimeconfig.ServerConfig

// LoggingConfig exports the logging section.
type LoggingConfig = runtimeconfig.LoggingConfig

// DefaultConfig returns opinionated defaults for a single-author blog.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML site configuration file, merging it over defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
