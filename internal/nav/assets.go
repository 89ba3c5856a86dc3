package nav

import (
	"fmt"
	"sort"
	"strings"
)

// Config drives asset generation: the named viewport-width thresholds, the
// breakpoint below which the menu collapses, and the theme's CSS custom
// properties.
type Config struct {
	Breakpoints   map[string]int
	CollapseBelow string
	// CSSVariables maps custom-property names (without the -- prefix) to
	// values, typically sourced from the active theme's tokens.
	CSSVariables map[string]string
	// VariablePrefix namespaces emitted custom properties, e.g. "--blog".
	VariablePrefix string
}

// Assets carries the generated navigation stylesheet and client script.
type Assets struct {
	CSS []byte
	JS  []byte
}

// BuildAssets produces the nav stylesheet and toggle script. Output is
// deterministic for a given configuration: variables and breakpoints are
// emitted in sorted order.
func BuildAssets(cfg Config) (Assets, error) {
	collapse := strings.TrimSpace(cfg.CollapseBelow)
	width, ok := cfg.Breakpoints[collapse]
	if !ok {
		return Assets{}, fmt.Errorf("nav: collapse breakpoint %q is not configured", collapse)
	}

	return Assets{
		CSS: buildCSS(cfg, width),
		JS:  buildJS(),
	}, nil
}

func buildCSS(cfg Config, collapseWidth int) []byte {
	prefix := strings.TrimSpace(cfg.VariablePrefix)
	if prefix == "" {
		prefix = "--blog"
	}
	prefix = strings.TrimSuffix(prefix, "-")

	var b strings.Builder

	b.WriteString(":root {\n")
	for _, name := range sortedKeys(cfg.CSSVariables) {
		fmt.Fprintf(&b, "  %s-%s: %s;\n", prefix, name, cfg.CSSVariables[name])
	}
	for _, name := range sortedBreakpoints(cfg.Breakpoints) {
		fmt.Fprintf(&b, "  %s-breakpoint-%s: %dpx;\n", prefix, name, cfg.Breakpoints[name])
	}
	b.WriteString("}\n\n")

	// Narrow viewports: menu hidden behind the toggle until expanded.
	b.WriteString(".site-nav__toggle {\n  display: block;\n}\n\n")
	b.WriteString(".site-nav__menu {\n  display: none;\n}\n\n")
	b.WriteString(".site-nav--expanded .site-nav__menu {\n  display: block;\n}\n\n")

	// At or above the collapse breakpoint the menu is always visible and the
	// toggle disappears.
	fmt.Fprintf(&b, "@media (min-width: %dpx) {\n", collapseWidth)
	b.WriteString("  .site-nav__toggle {\n    display: none;\n  }\n")
	b.WriteString("  .site-nav__menu {\n    display: block;\n  }\n")
	b.WriteString("}\n")

	return []byte(b.String())
}

// buildJS emits the client half of the toggle machine: collapsed on load,
// one control flipping the state, nothing persisted.
func buildJS() []byte {
	script := `(function () {
  'use strict';

  var COLLAPSED = 'collapsed';
  var EXPANDED = 'expanded';

  function toggle(state) {
    return state === COLLAPSED ? EXPANDED : COLLAPSED;
  }

  function init() {
    var nav = document.querySelector('.site-nav');
    var control = document.querySelector('.site-nav__toggle');
    if (!nav || !control) {
      return;
    }

    var state = COLLAPSED;

    function apply() {
      nav.classList.toggle('site-nav--expanded', state === EXPANDED);
      control.setAttribute('aria-expanded', state === EXPANDED ? 'true' : 'false');
    }

    control.addEventListener('click', function () {
      state = toggle(state);
      apply();
    });

    apply();
  }

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', init);
  } else {
    init();
  }
})();
`
	return []byte(script)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedBreakpoints(values map[string]int) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
