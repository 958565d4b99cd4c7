package auth

import (
	"path"
	"strings"
)

const (
	wildcardSuffix = "/:path*"
	indexFile      = "index.html"
)

// Matcher selects the request paths the gate guards. Patterns are exact
// paths ("/", "/admin") or prefixes ending in "/:path*" ("/docs/:path*").
type Matcher struct {
	exact    map[string]bool
	prefixes []string
	all      bool
}

// NewMatcher builds a matcher. With no patterns it matches every path.
func NewMatcher(patterns ...string) *Matcher {
	m := &Matcher{exact: make(map[string]bool)}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		if strings.HasSuffix(p, wildcardSuffix) {
			prefix := path.Clean("/" + strings.TrimSuffix(p, wildcardSuffix))
			if prefix == "/" {
				m.all = true
				continue
			}
			m.prefixes = append(m.prefixes, prefix)
			continue
		}
		m.exact[path.Clean(p)] = true
	}
	if len(m.exact) == 0 && len(m.prefixes) == 0 {
		m.all = true
	}
	return m
}

// Match reports whether a request for p must pass the gate. p is compared
// in the same cleaned form the content drivers read, so "//", "/a/../docs"
// and "/docs/index.html" cannot slip past a pattern for "/", "/docs" or
// "/docs/".
func (m *Matcher) Match(p string) bool {
	if m.all {
		return true
	}
	p = canonicalPath(p)
	if m.exact[p] {
		return true
	}
	for _, prefix := range m.prefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// canonicalPath cleans p and folds a trailing slash or a trailing
// index.html onto the directory itself.
func canonicalPath(p string) string {
	c := path.Clean("/" + p)
	if path.Base(c) == indexFile {
		c = path.Dir(c)
	}
	return c
}
