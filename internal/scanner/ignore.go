package scanner

import (
	"path"
	"strings"
)

// IgnorePattern represents a single gitignore-style pattern.
type IgnorePattern struct {
	pattern    string
	isNegation bool
	anchored   bool // pattern started with / or contains a slash
	segments   []string
}

// ParseIgnorePattern parses a gitignore-style pattern string.
func ParseIgnorePattern(pattern string) IgnorePattern {
	p := IgnorePattern{pattern: pattern}

	if strings.HasPrefix(pattern, "!") {
		p.isNegation = true
		pattern = pattern[1:]
	}

	// Trailing slash means a directory pattern; match everything under it.
	pattern = strings.TrimSuffix(pattern, "/")

	if strings.HasPrefix(pattern, "/") {
		p.anchored = true
		pattern = pattern[1:]
	} else if strings.Contains(pattern, "/") {
		// gitignore semantics: a slash anywhere anchors the pattern to root
		p.anchored = true
	}

	p.segments = strings.Split(pattern, "/")

	return p
}

// IsNegation returns true if this pattern is a negation pattern.
func (p IgnorePattern) IsNegation() bool {
	return p.isNegation
}

// Match checks if the given slash-separated relative path matches this
// pattern. A pattern matching any ancestor directory of the path also counts
// as a match.
func (p IgnorePattern) Match(relPath string) bool {
	pathSegs := strings.Split(relPath, "/")

	if p.anchored {
		return matchSegments(p.segments, pathSegs)
	}

	// Unanchored patterns may match starting at any depth.
	for start := 0; start < len(pathSegs); start++ {
		if matchSegments(p.segments, pathSegs[start:]) {
			return true
		}
	}
	return false
}

// matchSegments matches pattern segments against path segments from the
// front. A fully consumed pattern matches the remainder of the path, so a
// directory pattern covers everything beneath it.
func matchSegments(patSegs, pathSegs []string) bool {
	if len(patSegs) == 0 {
		return true
	}
	if patSegs[0] == "**" {
		if len(patSegs) == 1 {
			return true
		}
		for i := 0; i <= len(pathSegs); i++ {
			if matchSegments(patSegs[1:], pathSegs[i:]) {
				return true
			}
		}
		return false
	}
	if len(pathSegs) == 0 {
		return false
	}
	ok, err := path.Match(patSegs[0], pathSegs[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(patSegs[1:], pathSegs[1:])
}

// MatchesAny checks patterns in order with gitignore semantics: later
// negation patterns can un-ignore a path matched earlier.
func MatchesAny(relPath string, patterns []IgnorePattern) bool {
	ignored := false
	for _, p := range patterns {
		if p.Match(relPath) {
			ignored = !p.isNegation
		}
	}
	return ignored
}
