package core

import (
	"strings"

	"go.uber.org/zap"
)

// Parser splits raw strings into addresses
type Parser struct {
	validator Validator
	idna      IDNAConverter
	logger    *zap.Logger
}

// NewParser creates a new parser. idna may be nil.
func NewParser(validator Validator, idna IDNAConverter, logger *zap.Logger) *Parser {
	return &Parser{
		validator: validator,
		idna:      idna,
		logger:    logger,
	}
}

// IsValid reports whether raw parses as an address
func (p *Parser) IsValid(raw string) bool {
	_, ok := p.Parse(raw)
	return ok
}

// Parse trims raw and splits it on @.
// The validator guarantees exactly one @, so the split position is unambiguous.
func (p *Parser) Parse(raw string) (Address, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !p.validator.Valid(raw) {
		return Address{}, false
	}

	at := strings.LastIndex(raw, "@")
	if at <= 0 || at == len(raw)-1 {
		return Address{}, false
	}

	return Address{local: raw[:at], domain: raw[at+1:]}, true
}

// Normalize returns the lowercase form of a valid address
func (p *Parser) Normalize(raw string) (string, bool) {
	addr, ok := p.Parse(raw)
	if !ok {
		return "", false
	}
	return strings.ToLower(addr.String()), true
}

// Domain returns the lowercase domain of a valid address
func (p *Parser) Domain(raw string) (string, bool) {
	addr, ok := p.Parse(raw)
	if !ok {
		return "", false
	}
	return strings.ToLower(addr.domain), true
}

// Local returns the local part of a valid address
func (p *Parser) Local(raw string) (string, bool) {
	addr, ok := p.Parse(raw)
	if !ok {
		return "", false
	}
	return addr.local, true
}

// ToASCII converts the domain of raw to its ASCII form.
// Any failure returns raw unchanged.
func (p *Parser) ToASCII(raw string) string {
	if p.idna == nil {
		return raw
	}

	addr, ok := p.Parse(raw)
	if !ok {
		return raw
	}

	domain, err := p.idna.ToASCII(addr.domain)
	if err != nil || domain == "" {
		p.logger.Debug("IDNA conversion failed",
			zap.String("domain", addr.domain),
			zap.Error(err))
		return raw
	}

	return addr.local + "@" + domain
}
