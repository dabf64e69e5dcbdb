package core

import (
	"strings"
)

// PatternKind distinguishes the forms a domain pattern can take
type PatternKind int

const (
	// PatternExact matches one domain
	PatternExact PatternKind = iota
	// PatternWildcard is *.base and matches base and its subdomains
	PatternWildcard
	// PatternSuffix is .suffix and matches any domain ending in .suffix
	PatternSuffix
)

// Pattern is a parsed domain pattern
type Pattern struct {
	Kind  PatternKind
	Value string
}

// ParsePattern lowercases and trims raw and determines its form
func ParsePattern(raw string) Pattern {
	raw = strings.ToLower(strings.TrimSpace(raw))

	switch {
	case strings.HasPrefix(raw, "*."):
		return Pattern{Kind: PatternWildcard, Value: raw[2:]}
	case strings.HasPrefix(raw, "."):
		return Pattern{Kind: PatternSuffix, Value: raw}
	default:
		return Pattern{Kind: PatternExact, Value: raw}
	}
}

// ParsePatterns parses every pattern, dropping empty ones
func ParsePatterns(raw []string) []Pattern {
	patterns := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		p := ParsePattern(r)
		if p.Value == "" || p.Value == "." {
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// Match reports whether domain matches the pattern. domain is expected lowercase.
func (p Pattern) Match(domain string) bool {
	if p.Value == "" {
		return false
	}

	switch p.Kind {
	case PatternWildcard:
		return domain == p.Value || strings.HasSuffix(domain, "."+p.Value)
	case PatternSuffix:
		return strings.HasSuffix(domain, p.Value)
	default:
		return domain == p.Value
	}
}

// String returns the pattern in its textual form
func (p Pattern) String() string {
	if p.Kind == PatternWildcard {
		return "*." + p.Value
	}
	return p.Value
}

func matchAny(domain string, patterns []Pattern) bool {
	for _, p := range patterns {
		if p.Match(domain) {
			return true
		}
	}
	return false
}
