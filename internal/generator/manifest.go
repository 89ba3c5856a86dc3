package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	manifestFileName    = ".blog-manifest.json"
	manifestFileVersion = 1
)

// buildManifest records what the last build emitted so incremental runs can
// skip unchanged documents. It deliberately carries no build timestamps:
// identical input must produce an identical manifest.
type buildManifest struct {
	Version int                     `json:"version"`
	Pages   map[string]manifestPage `json:"pages"`
}

type manifestPage struct {
	Path           string    `json:"path"`
	Output         string    `json:"output"`
	SourceChecksum string    `json:"source_checksum"`
	OutputChecksum string    `json:"output_checksum"`
	LastModified   time.Time `json:"last_modified"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
	}
}

// manifestFile is the serialized shape: pages as a path-sorted array.
type manifestFile struct {
	Version int            `json:"version"`
	Pages   []manifestPage `json:"pages"`
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	manifest := newBuildManifest()
	if file.Version != 0 {
		manifest.Version = file.Version
	}
	for _, entry := range file.Pages {
		manifest.setPage(entry)
	}
	return manifest, nil
}

// marshal emits the manifest with pages sorted by path so output stays
// byte-identical across builds over unchanged input.
func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	ordered := manifestFile{Version: m.Version}
	if ordered.Version == 0 {
		ordered.Version = manifestFileVersion
	}
	for _, entry := range m.Pages {
		ordered.Pages = append(ordered.Pages, entry)
	}
	sort.Slice(ordered.Pages, func(i, j int) bool {
		return ordered.Pages[i].Path < ordered.Pages[j].Path
	})
	return json.MarshalIndent(ordered, "", "  ")
}

func (m *buildManifest) setPage(entry manifestPage) {
	if m == nil || strings.TrimSpace(entry.Path) == "" {
		return
	}
	m.Pages[entry.Path] = entry
}

// shouldSkipPage reports whether the document can be skipped: the source
// fingerprint matches the previous build and the expected output path is
// unchanged.
func (m *buildManifest) shouldSkipPage(path, sourceChecksum, expectedOutput string) bool {
	if m == nil || sourceChecksum == "" {
		return false
	}
	entry, ok := m.Pages[path]
	if !ok {
		return false
	}
	return entry.SourceChecksum == sourceChecksum && entry.Output == expectedOutput
}

// loadManifest never fails: a missing or unreadable manifest only disables
// incremental skips for this run.
func loadManifest(ctx context.Context, storage interfaces.ArtifactStorage, outputDir string) *buildManifest {
	if storage == nil {
		return newBuildManifest()
	}
	data, err := storage.ReadFile(ctx, joinOutputPath(outputDir, manifestFileName))
	if err != nil {
		return newBuildManifest()
	}
	manifest, parseErr := parseManifest(data)
	if parseErr != nil {
		return newBuildManifest()
	}
	return manifest
}

func persistManifest(ctx context.Context, storage interfaces.ArtifactStorage, outputDir string, manifest *buildManifest) error {
	if storage == nil || manifest == nil {
		return nil
	}
	data, err := manifest.marshal()
	if err != nil {
		return fmt.Errorf("generator: marshal manifest: %w", err)
	}
	return storage.WriteFile(ctx, joinOutputPath(outputDir, manifestFileName), strings.NewReader(string(data)), int64(len(data)))
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(data string) string {
	return computeHash([]byte(data))
}
