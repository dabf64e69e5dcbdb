package core

import (
	"strings"

	"github.com/mikey/email-utils/internal/domainlist"
	"go.uber.org/zap"
)

// DefaultSubaddressProviders are providers known to route plus-tagged mail
var DefaultSubaddressProviders = []string{
	"gmail.com",
	"googlemail.com",
	"outlook.com",
	"hotmail.com",
	"live.com",
	"icloud.com",
	"me.com",
	"mac.com",
	"fastmail.com",
	"protonmail.com",
	"proton.me",
	"pm.me",
}

// Subaddresser handles plus-tag extraction and injection
type Subaddresser struct {
	parser    *Parser
	providers *domainlist.Set
	logger    *zap.Logger
}

// NewSubaddresser creates a new subaddresser gated on providers
func NewSubaddresser(parser *Parser, providers []string, logger *zap.Logger) *Subaddresser {
	return &Subaddresser{
		parser:    parser,
		providers: domainlist.New(providers, logger),
		logger:    logger,
	}
}

// Supports reports whether the domain accepts plus-tagged addresses
func (s *Subaddresser) Supports(domain string) bool {
	return s.providers.Contains(domain)
}

// HasTag reports whether the local part contains a +
func (s *Subaddresser) HasTag(raw string) bool {
	addr, ok := s.parser.Parse(raw)
	if !ok {
		return false
	}
	return strings.Contains(addr.local, "+")
}

// Base returns the address with any tag removed
func (s *Subaddresser) Base(raw string) (Address, bool) {
	addr, ok := s.parser.Parse(raw)
	if !ok {
		return Address{}, false
	}
	base := baseOf(addr)
	if base.local == "" {
		return Address{}, false
	}
	return base, true
}

// RemoveTag returns the base address as a string
func (s *Subaddresser) RemoveTag(raw string) (string, bool) {
	base, ok := s.Base(raw)
	if !ok {
		return "", false
	}
	return base.String(), true
}

// Tag returns the text after the first + of the local part.
// A trailing + yields an empty tag with ok true.
func (s *Subaddresser) Tag(raw string) (string, bool) {
	addr, ok := s.parser.Parse(raw)
	if !ok {
		return "", false
	}
	plus := strings.Index(addr.local, "+")
	if plus == -1 {
		return "", false
	}
	return addr.local[plus+1:], true
}

// AddTag replaces any existing tag of raw with tag.
// It fails when the domain does not support subaddressing or the
// sanitized tag is empty.
func (s *Subaddresser) AddTag(raw, tag string) (Address, bool) {
	addr, ok := s.parser.Parse(raw)
	if !ok {
		return Address{}, false
	}

	if !s.Supports(addr.domain) {
		s.logger.Debug("Domain does not support subaddressing",
			zap.String("domain", addr.domain))
		return Address{}, false
	}

	tag = sanitizeTag(tag)
	if tag == "" {
		return Address{}, false
	}

	base := baseOf(addr)
	return s.parser.Parse(base.local + "+" + tag + "@" + base.domain)
}

// CompareIgnoringTag reports whether a and b share the same base address
func (s *Subaddresser) CompareIgnoringTag(a, b string) bool {
	baseA, ok := s.Base(a)
	if !ok {
		return false
	}
	baseB, ok := s.Base(b)
	if !ok {
		return false
	}
	return baseA.Equal(baseB)
}

func baseOf(addr Address) Address {
	if plus := strings.Index(addr.local, "+"); plus != -1 {
		return Address{local: addr.local[:plus], domain: addr.domain}
	}
	return addr
}

func sanitizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.ReplaceAll(tag, "+", "")
	return strings.ReplaceAll(tag, " ", "-")
}
