package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/spf13/afero"
)

const (
	defaultAddr     = ":8080"
	notFoundPage    = "404.html"
	shutdownTimeout = 5 * time.Second
)

// Config controls the preview server.
type Config struct {
	// Addr is the listen address, defaults to :8080.
	Addr string
	// OutputDir is the directory holding generated artifacts.
	OutputDir string
	// WatchDirs are source directories watched for changes. Empty disables watching.
	WatchDirs []string
	// Debounce delays rebuilds after a change burst. Defaults to 500ms.
	Debounce time.Duration
}

// RebuildFunc regenerates the site after source changes.
type RebuildFunc func(context.Context) error

// Server serves a generated site directory and rebuilds it when sources change.
type Server struct {
	cfg     Config
	output  afero.Fs
	rebuild RebuildFunc
	log     interfaces.Logger

	httpSrv *http.Server
}

// New creates a preview server reading artifacts from the given filesystem.
func New(cfg Config, output afero.Fs, rebuild RebuildFunc, logger interfaces.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if output == nil {
		output = afero.NewOsFs()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Server{
		cfg:     cfg,
		output:  output,
		rebuild: rebuild,
		log:     logger,
	}
}

// Router builds the HTTP handler serving the output directory.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(s.requestLogger)
	r.Get("/*", s.serveSite)
	return r
}

// Start listens on the configured address and blocks until ctx is cancelled
// or the listener fails. File watching runs alongside when WatchDirs is set.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	s.httpSrv = &http.Server{Handler: s.Router()}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if len(s.cfg.WatchDirs) > 0 && s.rebuild != nil {
		go s.watch(watchCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.Serve(ln)
	}()

	s.log.Info("preview server listening", "addr", ln.Addr().String(), "output_dir", s.cfg.OutputDir)

	select {
	case <-ctx.Done():
		return s.Stop(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Stop gracefully shuts down the HTTP listener.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) serveSite(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" || name == "." {
		name = "index.html"
	}

	full, info, err := s.resolve(name)
	if err != nil {
		s.serveNotFound(w, r)
		return
	}

	f, err := s.output.Open(full)
	if err != nil {
		s.serveNotFound(w, r)
		return
	}
	defer f.Close()

	http.ServeContent(w, r, full, info.ModTime(), f)
}

// resolve maps a request path to an artifact, trying directory indexes and
// the extensionless .html form.
func (s *Server) resolve(name string) (string, os.FileInfo, error) {
	candidates := []string{name}
	if path.Ext(name) == "" {
		candidates = append(candidates, name+".html", path.Join(name, "index.html"))
	}

	for _, candidate := range candidates {
		full := filepath.Join(s.cfg.OutputDir, filepath.FromSlash(candidate))
		info, err := s.output.Stat(full)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}
		return full, info, nil
	}
	return "", nil, errNotFound
}

var errNotFound = errors.New("server: artifact not found")

func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	full := filepath.Join(s.cfg.OutputDir, notFoundPage)
	body, err := afero.ReadFile(s.output, full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(body)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
