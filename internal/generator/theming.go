package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ThemingConfig selects the active theme manifest and variant.
type ThemingConfig struct {
	// BasePath is the directory holding theme directories.
	BasePath string
	// Name picks the theme; empty leaves the build themeless.
	Name string
	// Variant picks a manifest variant, e.g. "dark".
	Variant string
	// CSSVariablePrefix namespaces emitted custom properties.
	CSSVariablePrefix string
	// PartialFallbacks map missing theme partials onto defaults.
	PartialFallbacks map[string]string
}

type themeManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsThemeManifestLoader struct{}

func (fsThemeManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" {
		return nil, fmt.Errorf("theme path required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// themeSelector loads and caches the configured theme manifest and resolves
// variant selections through go-theme.
type themeSelector struct {
	cfg      ThemingConfig
	registry *gotheme.MemoryRegistry
	loader   themeManifestLoader

	mu     sync.Mutex
	loaded bool
}

func newThemeSelector(cfg ThemingConfig, loader themeManifestLoader) *themeSelector {
	if loader == nil {
		loader = fsThemeManifestLoader{}
	}
	return &themeSelector{
		cfg:      cfg,
		registry: gotheme.NewRegistry(),
		loader:   loader,
	}
}

// Selection resolves the configured theme, returning nil when no theme is
// configured.
func (s *themeSelector) Selection() (*gotheme.Selection, error) {
	name := strings.TrimSpace(s.cfg.Name)
	if name == "" {
		return nil, nil
	}

	if err := s.ensureManifest(name); err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   name,
		DefaultVariant: strings.TrimSpace(s.cfg.Variant),
	}

	selection, err := selector.Select(name, strings.TrimSpace(s.cfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("generator: select theme %s: %w", name, err)
	}
	return selection, nil
}

func (s *themeSelector) ensureManifest(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	themePath := filepath.Join(strings.TrimSpace(s.cfg.BasePath), name)
	manifest, err := s.loader.Load(themePath)
	if err != nil {
		return fmt.Errorf("generator: load theme manifest from %s: %w", themePath, err)
	}

	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" {
		normalized.Name = name
	}
	if err := s.registry.Register(&normalized); err != nil {
		return fmt.Errorf("generator: register theme manifest: %w", err)
	}
	s.loaded = true
	return nil
}
