// Package menus resolves front-matter menu declarations into ordered
// navigation entries. Entries are sorted by ascending weight; equal weights
// preserve source discovery order so repeated builds over unchanged input
// produce identical navigation.
package menus

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Entry is a single resolved navigation entry.
type Entry struct {
	// Name is the visible label, falling back to the document title when the
	// front matter omits one.
	Name string
	// Weight is the ascending ordering hint.
	Weight int
	// URL is the site-relative address of the page the entry points at.
	URL string
	// SourcePath identifies the document that registered the entry.
	SourcePath string

	discovered int
}

type record struct {
	entry Entry
}

// Registry accumulates menu entries during content discovery and resolves
// them into deterministic, weight-ordered navigation lists.
type Registry struct {
	log           interfaces.Logger
	menus         map[string][]*record
	index         map[string]map[string]*record
	counter       int
	conflicts     []*ConflictError
	includeDrafts bool
}

// NewRegistry constructs an empty registry. A nil logger falls back to the
// no-op logger.
func NewRegistry(logger interfaces.Logger) *Registry {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Registry{
		log:   logger,
		menus: map[string][]*record{},
		index: map[string]map[string]*record{},
	}
}

// IncludeDrafts controls whether draft documents register their menu entries.
// Builds that render drafts enable this so draft pages keep their navigation
// presence.
func (r *Registry) IncludeDrafts(include bool) {
	r.includeDrafts = include
}

// RegisterDocument registers every menu declaration carried by the document's
// front matter. The url argument is the rendered page address entries point
// at. Drafts are skipped unless the registry includes them.
func (r *Registry) RegisterDocument(doc *interfaces.Document, url string) {
	if doc == nil {
		return
	}
	if doc.FrontMatter.Draft && !r.includeDrafts {
		return
	}

	for menuName, declared := range doc.FrontMatter.Menu {
		name := strings.TrimSpace(declared.Name)
		if name == "" {
			name = strings.TrimSpace(doc.FrontMatter.Title)
		}
		if name == "" {
			r.log.Warn("skipping unnamed menu entry", "menu", menuName, logging.FieldDocumentPath, doc.Path)
			continue
		}

		r.Register(menuName, Entry{
			Name:       name,
			Weight:     declared.Weight,
			URL:        url,
			SourcePath: doc.Path,
		})
	}
}

// Register adds one entry to the named menu. A repeated name within the same
// menu replaces the earlier registration: last write wins. When the weights
// disagree the collision is recorded as an unresolvable reference and logged,
// but resolution continues.
func (r *Registry) Register(menuName string, entry Entry) {
	menuName = strings.TrimSpace(menuName)
	if menuName == "" {
		return
	}

	byName, ok := r.index[menuName]
	if !ok {
		byName = map[string]*record{}
		r.index[menuName] = byName
	}

	if existing, ok := byName[entry.Name]; ok {
		if existing.entry.Weight != entry.Weight {
			conflict := &ConflictError{
				Menu:           menuName,
				Name:           entry.Name,
				ExistingWeight: existing.entry.Weight,
				ExistingPath:   existing.entry.SourcePath,
				IncomingWeight: entry.Weight,
				IncomingPath:   entry.SourcePath,
			}
			r.conflicts = append(r.conflicts, conflict)
			r.log.Warn("menu entry weight conflict, keeping latest",
				"menu", menuName,
				"entry", entry.Name,
				"existing_weight", existing.entry.Weight,
				"incoming_weight", entry.Weight,
				logging.FieldDocumentPath, entry.SourcePath,
			)
		}
		// The replacement takes a fresh discovery slot so the latest
		// registration also wins ordering ties.
		entry.discovered = r.nextSlot()
		existing.entry = entry
		return
	}

	entry.discovered = r.nextSlot()
	rec := &record{entry: entry}
	byName[entry.Name] = rec
	r.menus[menuName] = append(r.menus[menuName], rec)
}

// Resolve returns the named menu's entries sorted by (weight, discovery
// order). Unknown menus resolve to an empty list.
func (r *Registry) Resolve(menuName string) []Entry {
	records := r.menus[menuName]
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, rec.entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight < entries[j].Weight
		}
		return entries[i].discovered < entries[j].discovered
	})
	return entries
}

// MenuNames lists every menu that received at least one entry, sorted by name.
func (r *Registry) MenuNames() []string {
	names := lo.Keys(r.menus)
	sort.Strings(names)
	return names
}

// Conflicts reports weight collisions observed during registration. These are
// degraded resolutions, not build failures.
func (r *Registry) Conflicts() []*ConflictError {
	return append([]*ConflictError(nil), r.conflicts...)
}

func (r *Registry) nextSlot() int {
	slot := r.counter
	r.counter++
	return slot
}
