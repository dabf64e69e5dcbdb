package core

import (
	"math"
	"sort"
	"strings"

	"github.com/mikey/email-utils/internal/utils"
	"go.uber.org/zap"
)

// TopDomainCount is the number of domains reported in Statistics.TopDomains
const TopDomainCount = 5

// Aggregator applies the per-address components over collections
type Aggregator struct {
	parser     *Parser
	sub        *Subaddresser
	classifier *Classifier
	text       *utils.TextProcessor
	logger     *zap.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(parser *Parser, sub *Subaddresser, classifier *Classifier, text *utils.TextProcessor, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		parser:     parser,
		sub:        sub,
		classifier: classifier,
		text:       text,
		logger:     logger,
	}
}

// ValidateAll reports the validity of each input in order
func (a *Aggregator) ValidateAll(addresses []string) []ValidationResult {
	results := make([]ValidationResult, len(addresses))
	for i, raw := range addresses {
		results[i] = ValidationResult{Input: raw, Valid: a.parser.IsValid(raw)}
	}
	return results
}

// FilterValid returns the trimmed valid addresses
func (a *Aggregator) FilterValid(addresses []string) []string {
	out := make([]string, 0, len(addresses))
	for _, raw := range addresses {
		if addr, ok := a.parser.Parse(raw); ok {
			out = append(out, addr.String())
		}
	}
	return out
}

// FilterInvalid returns the inputs that do not parse
func (a *Aggregator) FilterInvalid(addresses []string) []string {
	out := make([]string, 0)
	for _, raw := range addresses {
		if !a.parser.IsValid(raw) {
			out = append(out, raw)
		}
	}
	return out
}

// ExtractFromText finds valid addresses in text and returns them
// normalized and deduplicated in order of first appearance
func (a *Aggregator) ExtractFromText(text string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, token := range a.text.AddressTokens(text) {
		normalized, ok := a.parser.Normalize(token)
		if !ok {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}

	return out
}

// RemoveDuplicates keeps the first occurrence of each address.
// Keys are the lowercase address, or the lowercase base address when
// ignoreSubaddress is set. Invalid entries are dropped.
func (a *Aggregator) RemoveDuplicates(addresses []string, ignoreSubaddress bool) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(addresses))

	for _, raw := range addresses {
		addr, ok := a.parser.Parse(raw)
		if !ok {
			continue
		}

		key := addr
		if ignoreSubaddress {
			if base, ok := a.sub.Base(raw); ok {
				key = base
			}
		}

		k := strings.ToLower(key.String())
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, addr.String())
	}

	return out
}

// GroupByDomain groups valid addresses by lowercase domain
func (a *Aggregator) GroupByDomain(addresses []string) map[string][]string {
	groups := make(map[string][]string)
	for _, raw := range addresses {
		addr, ok := a.parser.Parse(raw)
		if !ok {
			continue
		}
		domain := strings.ToLower(addr.domain)
		groups[domain] = append(groups[domain], addr.String())
	}
	return groups
}

// CountByDomain counts valid addresses per lowercase domain
func (a *Aggregator) CountByDomain(addresses []string) map[string]int {
	counts, _ := a.countDomains(addresses)
	return counts
}

// TopDomains returns the n most frequent domains, ties in first-seen order
func (a *Aggregator) TopDomains(addresses []string, n int) []DomainCount {
	counts, order := a.countDomains(addresses)
	return topDomains(counts, order, n)
}

// CountByProviderType counts valid addresses per classification
func (a *Aggregator) CountByProviderType(addresses []string) map[Classification]int {
	counts := make(map[Classification]int)
	for _, raw := range addresses {
		if class, ok := a.classifier.Classify(raw); ok {
			counts[class]++
		}
	}
	return counts
}

// FilterByProviderType keeps valid addresses classified as one of classes
func (a *Aggregator) FilterByProviderType(addresses []string, classes ...Classification) []string {
	want := make(map[Classification]struct{}, len(classes))
	for _, c := range classes {
		want[c] = struct{}{}
	}

	out := make([]string, 0, len(addresses))
	for _, raw := range addresses {
		class, ok := a.classifier.Classify(raw)
		if !ok {
			continue
		}
		if _, keep := want[class]; keep {
			out = append(out, strings.TrimSpace(raw))
		}
	}
	return out
}

// FilterByPatterns keeps addresses by domain pattern, see Classifier.FilterByPatterns
func (a *Aggregator) FilterByPatterns(addresses []string, patterns []string, include bool) []string {
	return a.classifier.FilterByPatterns(addresses, patterns, include)
}

// GetStatistics summarises a collection of addresses
func (a *Aggregator) GetStatistics(addresses []string) Statistics {
	stats := Statistics{
		Total: len(addresses),
		Lists: a.classifier.Lists().Metadata(),
	}

	valid := a.FilterValid(addresses)
	stats.Valid = len(valid)
	stats.Invalid = stats.Total - stats.Valid

	if stats.Valid == 0 {
		a.logger.Debug("No valid addresses in collection", zap.Int("total", stats.Total))
		return stats
	}

	stats.ValidPercentage = round2(float64(stats.Valid) / float64(stats.Total) * 100)

	for _, addr := range valid {
		if a.sub.HasTag(addr) {
			stats.Subaddressed++
		}
	}

	stats.Classifications = a.CountByProviderType(valid)

	counts, order := a.countDomains(valid)
	stats.Domains = counts
	stats.UniqueDomains = len(counts)
	stats.TopDomains = topDomains(counts, order, TopDomainCount)

	// Metadata is taken again since classification may have loaded the lists
	stats.Lists = a.classifier.Lists().Metadata()

	a.logger.Debug("Computed statistics",
		zap.Int("total", stats.Total),
		zap.Int("valid", stats.Valid),
		zap.Int("unique_domains", stats.UniqueDomains))

	return stats
}

// countDomains returns per-domain counts and the first-seen order of domains
func (a *Aggregator) countDomains(addresses []string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, raw := range addresses {
		domain, ok := a.parser.Domain(raw)
		if !ok {
			continue
		}
		if _, seen := counts[domain]; !seen {
			order = append(order, domain)
		}
		counts[domain]++
	}
	return counts, order
}

func topDomains(counts map[string]int, order []string, n int) []DomainCount {
	ranked := make([]DomainCount, 0, len(order))
	for _, domain := range order {
		ranked = append(ranked, DomainCount{Domain: domain, Count: counts[domain]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
