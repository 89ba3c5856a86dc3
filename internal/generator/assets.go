package generator

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-blog/internal/nav"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const assetsDir = "assets"

// Site-relative URLs every page links; the build writes the matching files.
const (
	navStylesheetPath = assetsDir + "/nav.css"
	navScriptPath     = assetsDir + "/nav.js"
)

type assetCopySummary struct {
	Built int
}

// writeNavAssets emits the generated navigation stylesheet and toggle script.
func writeNavAssets(ctx context.Context, storage interfaces.ArtifactStorage, outputDir string, assets nav.Assets) (assetCopySummary, error) {
	summary := assetCopySummary{}

	files := []struct {
		rel  string
		data []byte
	}{
		{navStylesheetPath, assets.CSS},
		{navScriptPath, assets.JS},
	}
	for _, file := range files {
		dest := joinOutputPath(outputDir, file.rel)
		if err := storage.WriteFile(ctx, dest, bytes.NewReader(file.data), int64(len(file.data))); err != nil {
			return summary, err
		}
		summary.Built++
	}
	return summary, nil
}

// copyStaticAssets mirrors the static directory verbatim into the output
// tree's asset directory. A missing static directory is not an error.
func copyStaticAssets(ctx context.Context, storage interfaces.ArtifactStorage, sourceFs afero.Fs, staticDir, outputDir string) (assetCopySummary, error) {
	summary := assetCopySummary{}
	staticDir = strings.TrimSpace(staticDir)
	if staticDir == "" {
		return summary, nil
	}

	source := &afero.Afero{Fs: sourceFs}
	exists, err := source.DirExists(staticDir)
	if err != nil {
		return summary, fmt.Errorf("generator: inspect static dir %s: %w", staticDir, err)
	}
	if !exists {
		return summary, nil
	}

	walkErr := source.Walk(staticDir, func(filePath string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		data, readErr := source.ReadFile(filePath)
		if readErr != nil {
			return fmt.Errorf("generator: read asset %s: %w", filePath, readErr)
		}

		rel := strings.TrimPrefix(strings.ReplaceAll(filePath, "\\", "/"), strings.ReplaceAll(staticDir, "\\", "/"))
		rel = strings.TrimLeft(rel, "/")
		dest := joinOutputPath(outputDir, path.Join(assetsDir, rel))

		if writeErr := storage.WriteFile(ctx, dest, bytes.NewReader(data), int64(len(data))); writeErr != nil {
			return writeErr
		}
		summary.Built++
		return nil
	})
	if walkErr != nil {
		return summary, walkErr
	}
	return summary, nil
}
