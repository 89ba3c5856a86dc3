package menus

import (
	"errors"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func docWithMenu(path, title string, weight int) *interfaces.Document {
	return &interfaces.Document{
		Path: path,
		FrontMatter: interfaces.FrontMatter{
			Title: title,
			Menu: map[string]interfaces.MenuEntry{
				"main": {Name: title, Weight: weight},
			},
		},
	}
}

func TestRegistryOrdersByWeight(t *testing.T) {
	registry := NewRegistry(nil)
	registry.RegisterDocument(docWithMenu("posts.md", "Posts", 20), "/posts.html")
	registry.RegisterDocument(docWithMenu("about.md", "About", 10), "/about.html")
	registry.RegisterDocument(docWithMenu("index.md", "Home", 1), "/index.html")

	entries := registry.Resolve("main")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"Home", "About", "Posts"} {
		if entries[i].Name != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, entries[i].Name)
		}
	}
}

func TestRegistryEqualWeightKeepsDiscoveryOrder(t *testing.T) {
	registry := NewRegistry(nil)
	registry.RegisterDocument(docWithMenu("zeta.md", "Zeta", 1), "/zeta.html")
	registry.RegisterDocument(docWithMenu("alpha.md", "Alpha", 1), "/alpha.html")

	entries := registry.Resolve("main")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Zeta" || entries[1].Name != "Alpha" {
		t.Fatalf("equal weights must keep discovery order, got %q then %q", entries[0].Name, entries[1].Name)
	}
	if len(registry.Conflicts()) != 0 {
		t.Fatalf("equal weights on distinct names are not a conflict, got %d", len(registry.Conflicts()))
	}
}

func TestRegistryWeightConflictLastWriteWins(t *testing.T) {
	registry := NewRegistry(nil)
	registry.RegisterDocument(docWithMenu("old.md", "About", 1), "/old.html")
	registry.RegisterDocument(docWithMenu("new.md", "About", 5), "/new.html")

	entries := registry.Resolve("main")
	if len(entries) != 1 {
		t.Fatalf("expected a single entry, got %d", len(entries))
	}
	if entries[0].Weight != 5 || entries[0].URL != "/new.html" {
		t.Fatalf("expected the latest registration to win, got %+v", entries[0])
	}

	conflicts := registry.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected one recorded conflict, got %d", len(conflicts))
	}
	if !errors.Is(conflicts[0], ErrUnresolvableReference) {
		t.Fatalf("conflicts classify as unresolvable references, got %v", conflicts[0])
	}
	if conflicts[0].ExistingWeight != 1 || conflicts[0].IncomingWeight != 5 {
		t.Fatalf("conflict should carry both weights, got %+v", conflicts[0])
	}
}

func TestRegistryDuplicateSameWeightIsSilent(t *testing.T) {
	registry := NewRegistry(nil)
	registry.RegisterDocument(docWithMenu("a.md", "About", 1), "/a.html")
	registry.RegisterDocument(docWithMenu("b.md", "About", 1), "/b.html")

	entries := registry.Resolve("main")
	if len(entries) != 1 {
		t.Fatalf("expected a single entry, got %d", len(entries))
	}
	if entries[0].URL != "/b.html" {
		t.Fatalf("expected the latest registration, got %q", entries[0].URL)
	}
	if len(registry.Conflicts()) != 0 {
		t.Fatalf("same-weight duplicates are not conflicts, got %d", len(registry.Conflicts()))
	}
}

func TestRegistrySkipsDrafts(t *testing.T) {
	registry := NewRegistry(nil)
	doc := docWithMenu("draft.md", "Draft", 1)
	doc.FrontMatter.Draft = true
	registry.RegisterDocument(doc, "/draft.html")

	if entries := registry.Resolve("main"); len(entries) != 0 {
		t.Fatalf("drafts must not register navigation, got %d entries", len(entries))
	}
}

func TestRegistryIncludesDraftsWhenEnabled(t *testing.T) {
	registry := NewRegistry(nil)
	registry.IncludeDrafts(true)
	doc := docWithMenu("draft.md", "Draft", 1)
	doc.FrontMatter.Draft = true
	registry.RegisterDocument(doc, "/draft.html")

	entries := registry.Resolve("main")
	if len(entries) != 1 || entries[0].URL != "/draft.html" {
		t.Fatalf("draft builds register draft navigation, got %+v", entries)
	}
}

func TestRegistryNameFallsBackToTitle(t *testing.T) {
	registry := NewRegistry(nil)
	doc := &interfaces.Document{
		Path: "who.md",
		FrontMatter: interfaces.FrontMatter{
			Title: "Who",
			Menu: map[string]interfaces.MenuEntry{
				"main": {Weight: 3},
			},
		},
	}
	registry.RegisterDocument(doc, "/who.html")

	entries := registry.Resolve("main")
	if len(entries) != 1 || entries[0].Name != "Who" {
		t.Fatalf("expected title fallback, got %+v", entries)
	}
}

func TestRegistryMenuNames(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register("footer", Entry{Name: "Feed", URL: "/feed.xml"})
	registry.Register("main", Entry{Name: "Home", URL: "/index.html"})

	names := registry.MenuNames()
	if len(names) != 2 || names[0] != "footer" || names[1] != "main" {
		t.Fatalf("expected sorted menu names, got %v", names)
	}
}

func TestRegistryUnknownMenuResolvesEmpty(t *testing.T) {
	registry := NewRegistry(nil)
	if entries := registry.Resolve("missing"); len(entries) != 0 {
		t.Fatalf("expected empty resolution, got %d", len(entries))
	}
}
