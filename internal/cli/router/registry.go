package router

import (
	"slices"
	"strings"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// Registry is the ordered, immutable list of command strategies.
// Lookups are linear scans.
type Registry []domain.CommandStrategy

// Find returns the strategy with the given id.
func (r Registry) Find(id string) (domain.CommandStrategy, bool) {
	for _, s := range r {
		if s.ID == id {
			return s, true
		}
	}
	return domain.CommandStrategy{}, false
}

// LongestPrefix returns the strategy whose path is the longest prefix of
// tokens, and the number of tokens it consumed.
func (r Registry) LongestPrefix(tokens []string) (domain.CommandStrategy, int, bool) {
	var (
		best  domain.CommandStrategy
		found bool
	)
	for _, s := range r {
		if len(s.Path) == 0 || len(s.Path) > len(tokens) {
			continue
		}
		if !slices.Equal(s.Path, tokens[:len(s.Path)]) {
			continue
		}
		if !found || len(s.Path) > len(best.Path) {
			best, found = s, true
		}
	}
	return best, len(best.Path), found
}

// IsNamespace reports whether any path starts with ns.
func (r Registry) IsNamespace(ns string) bool {
	for _, s := range r {
		if len(s.Path) > 0 && s.Path[0] == ns {
			return true
		}
	}
	return false
}

// HasSubpaths reports whether ns has at least one path longer than one token.
func (r Registry) HasSubpaths(ns string) bool {
	for _, s := range r {
		if len(s.Path) > 1 && s.Path[0] == ns {
			return true
		}
	}
	return false
}

// HasExact reports whether a strategy is registered at exactly path.
func (r Registry) HasExact(path []string) bool {
	for _, s := range r {
		if slices.Equal(s.Path, path) {
			return true
		}
	}
	return false
}

// Subcommands lists the commands under ns, joined at two-token
// granularity, de-duplicated and in registry order.
func (r Registry) Subcommands(ns string) []string {
	var out []string
	for _, s := range r {
		if len(s.Path) < 2 || s.Path[0] != ns {
			continue
		}
		name := strings.Join(s.Path[:2], " ")
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Namespaces returns every first path token, de-duplicated and in
// registry order.
func (r Registry) Namespaces() []string {
	var out []string
	for _, s := range r {
		if len(s.Path) > 0 && !slices.Contains(out, s.Path[0]) {
			out = append(out, s.Path[0])
		}
	}
	return out
}

// Under returns the strategies whose path starts with ns, in registry order.
func (r Registry) Under(ns string) []domain.CommandStrategy {
	var out []domain.CommandStrategy
	for _, s := range r {
		if len(s.Path) > 0 && s.Path[0] == ns {
			out = append(out, s)
		}
	}
	return out
}

// Paths returns every path joined with spaces, in registry order.
func (r Registry) Paths() []string {
	out := make([]string, 0, len(r))
	for _, s := range r {
		out = append(out, strings.Join(s.Path, " "))
	}
	return out
}
