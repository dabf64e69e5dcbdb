package domainlist

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Set is a collection of lowercase domains
type Set struct {
	domains map[string]struct{}
	logger  *zap.Logger
}

// New creates a set from domains, lowercasing and trimming each entry
func New(domains []string, logger *zap.Logger) *Set {
	s := &Set{
		domains: make(map[string]struct{}, len(domains)),
		logger:  logger,
	}
	s.Add(domains...)

	if s.Len() > 0 && logger != nil {
		logger.Debug("Initialized domain set", zap.Int("count", s.Len()))
	}

	return s
}

// Normalize lowercases and trims a domain
func Normalize(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// Contains checks if the domain is in the set
func (s *Set) Contains(domain string) bool {
	if s == nil || len(s.domains) == 0 {
		return false
	}
	_, ok := s.domains[Normalize(domain)]
	return ok
}

// Add inserts domains and returns how many were new
func (s *Set) Add(domains ...string) int {
	added := 0
	for _, domain := range domains {
		domain = Normalize(domain)
		if domain == "" {
			continue
		}
		if _, ok := s.domains[domain]; ok {
			continue
		}
		s.domains[domain] = struct{}{}
		added++
	}
	return added
}

// Remove deletes domains and returns how many were present
func (s *Set) Remove(domains ...string) int {
	removed := 0
	for _, domain := range domains {
		domain = Normalize(domain)
		if _, ok := s.domains[domain]; !ok {
			continue
		}
		delete(s.domains, domain)
		removed++
	}

	if removed > 0 && s.logger != nil {
		s.logger.Debug("Removed domains from set", zap.Int("removed", removed))
	}
	return removed
}

// Len returns the number of domains
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.domains)
}

// Domains returns the domains in sorted order
func (s *Set) Domains() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.domains))
	for domain := range s.domains {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}

// Parse reads a newline-delimited domain list.
// Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]string, error) {
	var domains []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := Normalize(strings.TrimRight(scanner.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains = append(domains, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read domain list: %w", err)
	}

	return domains, nil
}
