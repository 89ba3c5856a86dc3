package generator

import (
	"bytes"
	"testing"
	"time"
)

func TestManifestRoundTrip(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{
		Path:           "about.md",
		Output:         "public/about.html",
		SourceChecksum: "abc",
		OutputChecksum: "def",
		LastModified:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	})

	data, err := manifest.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed.Pages) != 1 {
		t.Fatalf("expected one page, got %d", len(parsed.Pages))
	}
	if !parsed.shouldSkipPage("about.md", "abc", "public/about.html") {
		t.Fatal("expected matching entry to skip")
	}
	if parsed.shouldSkipPage("about.md", "changed", "public/about.html") {
		t.Fatal("changed source must not skip")
	}
	if parsed.shouldSkipPage("about.md", "abc", "elsewhere/about.html") {
		t.Fatal("moved output must not skip")
	}
}

func TestManifestMarshalDeterministic(t *testing.T) {
	build := func() []byte {
		manifest := newBuildManifest()
		manifest.setPage(manifestPage{Path: "b.md", Output: "public/b.html", SourceChecksum: "2"})
		manifest.setPage(manifestPage{Path: "a.md", Output: "public/a.html", SourceChecksum: "1"})
		data, err := manifest.marshal()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}
	if !bytes.Equal(build(), build()) {
		t.Fatal("manifest serialization must be deterministic")
	}
}

func TestParseManifestEmpty(t *testing.T) {
	manifest, err := parseManifest(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if manifest.Version != manifestFileVersion || manifest.Pages == nil {
		t.Fatalf("expected initialized manifest, got %+v", manifest)
	}
}
