package core

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mikey/email-utils/internal/domainlist"
	"go.uber.org/zap"
)

// DefaultCommonTLDs are the top level domains that carry no penalty
var DefaultCommonTLDs = []string{
	"com", "net", "org", "edu", "gov", "mil", "io", "co",
	"uk", "us", "ca", "au", "de", "fr", "jp", "info",
}

const (
	MinSpamScore = 0
	MaxSpamScore = 100
)

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// SpamScorer computes an additive heuristic risk score
type SpamScorer struct {
	parser     *Parser
	classifier *Classifier
	resolver   MXResolver
	commonTLDs *domainlist.Set
	logger     *zap.Logger
}

// NewSpamScorer creates a new scorer. resolver may be nil, in which case
// MX checks are skipped.
func NewSpamScorer(parser *Parser, classifier *Classifier, resolver MXResolver, commonTLDs []string, logger *zap.Logger) *SpamScorer {
	return &SpamScorer{
		parser:     parser,
		classifier: classifier,
		resolver:   resolver,
		commonTLDs: domainlist.New(commonTLDs, logger),
		logger:     logger,
	}
}

// Score returns the spam score of raw in [0,100].
// Invalid input always scores 100.
func (s *SpamScorer) Score(raw string, checkMX bool) int {
	return s.Breakdown(raw, checkMX).Score
}

// Breakdown returns the score together with the terms that produced it
func (s *SpamScorer) Breakdown(raw string, checkMX bool) ScoreBreakdown {
	result := ScoreBreakdown{Address: strings.TrimSpace(raw)}

	addr, ok := s.parser.Parse(raw)
	if !ok {
		result.Score = MaxSpamScore
		result.Terms = []ScoreTerm{{Reason: "invalid address", Delta: MaxSpamScore}}
		return result
	}

	local := addr.local
	domain := strings.ToLower(addr.domain)

	add := func(reason string, delta int) {
		result.Terms = append(result.Terms, ScoreTerm{Reason: reason, Delta: delta})
	}

	digits := countFunc(local, isASCIIDigit)
	if digits > 3 {
		hasYear := yearPattern.MatchString(local)
		if !hasYear {
			add("many digits", 10)
		} else if digits > 6 {
			add("many digits around a year", 5)
		}
	}

	if dots := strings.Count(local, "."); dots > 2 {
		add("many dots", 5+5*dots)
	}

	if utf8.RuneCountInString(local) > 20 {
		add("long local part", 10)
	}

	labels := strings.Split(domain, ".")
	if tld := labels[len(labels)-1]; !s.commonTLDs.Contains(tld) {
		add("uncommon tld", 15)
	}

	if s.classifier.IsCommon(raw) {
		add("common provider", -10)
	}

	if s.classifier.IsDisposable(raw, true) {
		add("disposable domain", 30)
	}

	if strings.Count(local, "-") > 1 || strings.Count(local, "_") > 1 {
		add("many separators", 10)
	}

	if utf8.RuneCountInString(labels[0]) > 15 {
		add("long domain label", 10)
	}

	if checkMX && s.resolver != nil && !s.resolver.HasMX(domain) {
		add("no mx records", 25)
	}

	score := 0
	for _, term := range result.Terms {
		score += term.Delta
	}
	result.Score = min(max(score, MinSpamScore), MaxSpamScore)

	s.logger.Debug("Computed spam score",
		zap.String("address", result.Address),
		zap.Int("score", result.Score),
		zap.Int("terms", len(result.Terms)))

	return result
}

func countFunc(s string, f func(rune) bool) int {
	n := 0
	for _, r := range s {
		if f(r) {
			n++
		}
	}
	return n
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
