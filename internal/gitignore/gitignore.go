// Package gitignore implements the subset of gitignore matching the indexer
// relies on: exact, directory-prefix, path-segment, and wildcard patterns.
// Negated patterns are parsed but never re-include a previously ignored path.
package gitignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern is one ignore rule, normalized at load time.
type Pattern struct {
	raw     string
	negated bool
	re      *regexp.Regexp // nil when the pattern has no wildcards
}

// Matcher tests relative paths against an ordered pattern list.
type Matcher struct {
	patterns []Pattern
}

// Load reads the .gitignore file under root. A missing file yields an empty
// matcher and no error.
func Load(root string) (*Matcher, error) {
	raw, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Matcher{}, nil
		}
		return nil, err
	}
	return Parse(string(raw)), nil
}

// Parse builds a matcher from gitignore file content.
func Parse(content string) *Matcher {
	m := &Matcher{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negated := strings.HasPrefix(line, "!")
		if negated {
			line = strings.TrimPrefix(line, "!")
		}
		line = strings.TrimSuffix(line, "/")
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}
		p := Pattern{raw: line, negated: negated}
		if strings.ContainsRune(line, '*') {
			p.re = compileWildcard(line)
		}
		m.patterns = append(m.patterns, p)
	}
	return m
}

// Ignored reports whether the slash-separated relative path matches any
// pattern. Negated patterns count as no match; they never override an earlier
// ignore.
func (m *Matcher) Ignored(rel string) bool {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	if rel == "" {
		return false
	}
	for _, p := range m.patterns {
		if p.negated {
			continue
		}
		if p.matches(rel) {
			return true
		}
	}
	return false
}

func (p Pattern) matches(rel string) bool {
	if p.re != nil {
		return p.re.MatchString(rel)
	}
	if rel == p.raw {
		return true
	}
	if strings.HasPrefix(rel, p.raw+"/") {
		return true
	}
	// A bare name matches any path segment, the way "node_modules" ignores
	// the directory at any depth.
	if !strings.ContainsRune(p.raw, '/') {
		for _, segment := range strings.Split(rel, "/") {
			if segment == p.raw {
				return true
			}
		}
	}
	return false
}

// compileWildcard converts a gitignore glob into an anchored regexp:
// "**" spans any path sequence, "*" a single segment, "." stays literal.
func compileWildcard(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch {
		case strings.HasPrefix(pattern[i:], "**"):
			b.WriteString(".*")
			i++
		case pattern[i] == '*':
			b.WriteString("[^/]*")
		default:
			b.WriteString(regexp.QuoteMeta(string(pattern[i])))
		}
	}
	// Matching a directory ignores everything beneath it.
	b.WriteString("(/.*)?$")
	return regexp.MustCompile(b.String())
}
