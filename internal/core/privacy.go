package core

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultHashAlgorithm is used when no algorithm is configured
const DefaultHashAlgorithm = "sha256"

// HashOptions controls Hash
type HashOptions struct {
	// HashDomain hashes the domain as well as the local part
	HashDomain bool
	// Length truncates the composed result when greater than zero.
	// Truncation may cut into the domain half.
	Length int
	// Salt overrides the provider salt when not empty
	Salt string
}

// Transformer anonymizes, masks and hashes addresses
type Transformer struct {
	parser    *Parser
	salt      SaltProvider
	digester  Digester
	algorithm string
	logger    *zap.Logger
}

// NewTransformer creates a new transformer. salt may be nil.
func NewTransformer(parser *Parser, salt SaltProvider, digester Digester, algorithm string, logger *zap.Logger) *Transformer {
	if algorithm == "" {
		algorithm = DefaultHashAlgorithm
	}
	return &Transformer{
		parser:    parser,
		salt:      salt,
		digester:  digester,
		algorithm: algorithm,
		logger:    logger,
	}
}

// Anonymize keeps the first two characters of the local part and of the
// first domain label, replacing the rest with at least three asterisks.
func (t *Transformer) Anonymize(raw string) (string, bool) {
	addr, ok := t.parser.Parse(raw)
	if !ok {
		return "", false
	}

	domain := addr.domain
	if dot := strings.Index(domain, "."); dot != -1 {
		domain = anonymizePart(domain[:dot]) + domain[dot:]
	} else {
		domain = anonymizePart(domain)
	}

	return anonymizePart(addr.local) + "@" + domain, true
}

// Mask reveals showFirst leading and showLast trailing characters of the
// local part. When they cover the whole local part the address is returned
// unchanged.
func (t *Transformer) Mask(raw string, showFirst, showLast int) (string, bool) {
	addr, ok := t.parser.Parse(raw)
	if !ok {
		return "", false
	}

	showFirst = max(showFirst, 0)
	showLast = max(showLast, 0)

	local := []rune(addr.local)
	if showFirst+showLast >= len(local) {
		return addr.String(), true
	}

	hidden := len(local) - showFirst - showLast
	masked := string(local[:showFirst]) + strings.Repeat("*", hidden) + string(local[len(local)-showLast:])

	return masked + "@" + addr.domain, true
}

// IsAnonymized reports whether raw looks like the output of Anonymize,
// Mask or Placeholder
func (t *Transformer) IsAnonymized(raw string) bool {
	raw = strings.TrimSpace(raw)
	return strings.Contains(raw, "*") || raw == Placeholder
}

// Placeholder returns the fixed placeholder for a valid address
func (t *Transformer) Placeholder(raw string) (string, bool) {
	if !t.parser.IsValid(raw) {
		return "", false
	}
	return Placeholder, true
}

// Hash digests the normalized local part, and optionally the domain,
// with a salt. The result is hashed_local@domain or
// hashed_local@hashed_domain, truncated to opts.Length when set.
func (t *Transformer) Hash(raw string, opts HashOptions) (string, bool) {
	normalized, ok := t.parser.Normalize(raw)
	if !ok {
		return "", false
	}
	at := strings.LastIndex(normalized, "@")
	local, domain := normalized[:at], normalized[at+1:]

	salt := opts.Salt
	if salt == "" && t.salt != nil {
		salt = t.salt.Salt()
	}

	hashedLocal, err := t.digester.Digest(local, t.algorithm, salt)
	if err != nil {
		t.logger.Warn("Failed to hash local part",
			zap.String("algorithm", t.algorithm),
			zap.Error(err))
		return "", false
	}

	if opts.HashDomain {
		domain, err = t.digester.Digest(domain, t.algorithm, salt)
		if err != nil {
			t.logger.Warn("Failed to hash domain",
				zap.String("algorithm", t.algorithm),
				zap.Error(err))
			return "", false
		}
	}

	result := hashedLocal + "@" + domain
	if runes := []rune(result); opts.Length > 0 && len(runes) > opts.Length {
		result = string(runes[:opts.Length])
	}

	return result, true
}

// anonymizePart keeps two characters followed by max(n-2, 3) asterisks
func anonymizePart(part string) string {
	runes := []rune(part)
	keep := min(len(runes), 2)
	stars := max(len(runes)-2, 3)
	return string(runes[:keep]) + strings.Repeat("*", stars)
}
