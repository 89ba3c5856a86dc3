// Package templates wraps html/template with the layout and partial loading
// conventions the rendered pages rely on. A default page shell ships embedded;
// an on-disk templates directory, when configured, overrides it.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

//go:embed defaults/*.html
var defaultLayouts embed.FS

// Layout names every build relies on.
const (
	LayoutPage = "page"
)

// Config controls where layouts and partials are loaded from.
type Config struct {
	// Dir is an optional on-disk templates directory. Files named
	// <layout>.html override the embedded defaults; files under partials/
	// register as partial templates.
	Dir string
	// Fs is the filesystem Dir is resolved against, defaulting to the OS
	// filesystem. Tests substitute an in-memory one.
	Fs afero.Fs
	// Funcs extends the function map available to every template.
	Funcs template.FuncMap
}

// Engine implements interfaces.TemplateRenderer over html/template.
type Engine struct {
	mu       sync.RWMutex
	layouts  map[string]*template.Template
	partials map[string]string
	funcs    template.FuncMap
	cfg      Config
}

// New builds an Engine, loading embedded defaults first and then applying
// overrides from the configured directory.
func New(cfg Config) (*Engine, error) {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}

	engine := &Engine{
		partials: map[string]string{},
		funcs:    mergeFuncs(cfg.Funcs),
		cfg:      cfg,
	}

	if err := engine.Reload(); err != nil {
		return nil, err
	}
	return engine, nil
}

// RegisterPartial makes a named partial available to every layout. Theme
// packages feed their partials through here. Layouts are rebuilt on the next
// Reload.
func (e *Engine) RegisterPartial(name, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.partials[strings.TrimSpace(name)] = content
}

// Reload re-parses every layout from the embedded defaults, registered
// partials, and the override directory.
func (e *Engine) Reload() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	base := template.New("").Funcs(e.funcs)
	for _, name := range sortedPartialNames(e.partials) {
		parsed, err := base.New(name).Parse(e.partials[name])
		if err != nil {
			return fmt.Errorf("templates: parse partial %s: %w", name, err)
		}
		base = parsed
	}

	layouts := map[string]*template.Template{}

	err := fs.WalkDir(defaultLayouts, "defaults", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, readErr := defaultLayouts.ReadFile(filePath)
		if readErr != nil {
			return readErr
		}
		name := layoutName("defaults", filePath)
		tpl, parseErr := parseLayout(base, name, string(content))
		if parseErr != nil {
			return parseErr
		}
		layouts[name] = tpl
		return nil
	})
	if err != nil {
		return fmt.Errorf("templates: load embedded layouts: %w", err)
	}

	if dir := strings.TrimSpace(e.cfg.Dir); dir != "" {
		if err := e.loadOverrides(base, dir, layouts); err != nil {
			return err
		}
	}

	e.layouts = layouts
	return nil
}

// RenderTemplate expands the named layout with data. When writers are
// supplied the output is streamed into each in addition to being returned.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	e.mu.RLock()
	tpl, ok := e.layouts[name]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("templates: layout %q not found", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("templates: render %s: %w", name, err)
	}
	return e.emit(buf, out)
}

// RenderString parses and expands an inline template using the engine's
// function map and registered partials.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	e.mu.RLock()
	partials := make(map[string]string, len(e.partials))
	for name, content := range e.partials {
		partials[name] = content
	}
	e.mu.RUnlock()

	base := template.New("inline").Funcs(e.funcs)
	for _, name := range sortedPartialNames(partials) {
		parsed, err := base.New(name).Parse(partials[name])
		if err != nil {
			return "", fmt.Errorf("templates: parse partial %s: %w", name, err)
		}
		base = parsed
	}

	tpl, err := base.New("inline").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("templates: parse inline template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("templates: render inline template: %w", err)
	}
	return e.emit(buf, out)
}

func (e *Engine) emit(buf bytes.Buffer, out []io.Writer) (string, error) {
	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("templates: write output: %w", err)
		}
	}
	return rendered, nil
}

func (e *Engine) loadOverrides(base *template.Template, dir string, layouts map[string]*template.Template) error {
	fsys := &afero.Afero{Fs: afero.NewBasePathFs(e.cfg.Fs, dir)}

	exists, err := fsys.DirExists(".")
	if err != nil {
		return fmt.Errorf("templates: inspect %s: %w", dir, err)
	}
	if !exists {
		return nil
	}

	return fsys.Walk(".", func(filePath string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(filePath, ".html") {
			return nil
		}

		content, readErr := fsys.ReadFile(filePath)
		if readErr != nil {
			return readErr
		}

		name := layoutName("", filePath)
		if strings.HasPrefix(name, "partials/") {
			// Directory partials parse straight into the shared base.
			partialName := strings.TrimPrefix(name, "partials/")
			if _, parseErr := base.New(partialName).Parse(string(content)); parseErr != nil {
				return fmt.Errorf("templates: parse partial %s: %w", partialName, parseErr)
			}
			return nil
		}

		tpl, parseErr := parseLayout(base, name, string(content))
		if parseErr != nil {
			return parseErr
		}
		layouts[name] = tpl
		return nil
	})
}

func parseLayout(base *template.Template, name, content string) (*template.Template, error) {
	cloned, err := base.Clone()
	if err != nil {
		return nil, fmt.Errorf("templates: clone base for %s: %w", name, err)
	}
	tpl, err := cloned.New(name).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("templates: parse layout %s: %w", name, err)
	}
	return tpl, nil
}

func layoutName(root, filePath string) string {
	name := strings.ReplaceAll(filePath, "\\", "/")
	if root != "" {
		name = strings.TrimPrefix(name, root+"/")
	}
	name = strings.TrimSuffix(name, ".html")
	return path.Clean(name)
}

func mergeFuncs(extra template.FuncMap) template.FuncMap {
	funcs := template.FuncMap{
		"join": strings.Join,
		"safeHTML": func(value string) template.HTML {
			return template.HTML(value)
		},
		"lower": strings.ToLower,
	}
	for name, fn := range extra {
		funcs[name] = fn
	}
	return funcs
}

func sortedPartialNames(partials map[string]string) []string {
	names := make([]string, 0, len(partials))
	for name := range partials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
