package core

import (
	"strings"

	"github.com/mikey/email-utils/internal/domainlist"
	"go.uber.org/zap"
)

// DefaultCommonProviders are the large consumer mailbox providers
var DefaultCommonProviders = []string{
	"gmail.com",
	"googlemail.com",
	"yahoo.com",
	"ymail.com",
	"outlook.com",
	"hotmail.com",
	"live.com",
	"msn.com",
	"aol.com",
	"icloud.com",
	"me.com",
	"mac.com",
	"mail.com",
	"gmx.com",
	"gmx.net",
	"yandex.com",
	"zoho.com",
}

// DefaultAuthorityProviders are the corporate domains of the major mail operators
var DefaultAuthorityProviders = []string{
	"google.com",
	"microsoft.com",
	"apple.com",
	"yahooinc.com",
	"amazon.com",
}

// DefaultPrivateProviders are privacy focused and relay providers
var DefaultPrivateProviders = []string{
	"protonmail.com",
	"protonmail.ch",
	"proton.me",
	"pm.me",
	"tutanota.com",
	"tuta.io",
	"duck.com",
	"privaterelay.appleid.com",
	"mailfence.com",
	"posteo.de",
	"startmail.com",
	"hushmail.com",
}

// ProviderSets configures the curated provider categories
type ProviderSets struct {
	Common    []string
	Authority []string
	Private   []string
}

// DefaultProviderSets returns the built-in provider categories
func DefaultProviderSets() ProviderSets {
	return ProviderSets{
		Common:    DefaultCommonProviders,
		Authority: DefaultAuthorityProviders,
		Private:   DefaultPrivateProviders,
	}
}

// Classifier assigns provider categories to addresses
type Classifier struct {
	parser    *Parser
	lists     *DomainLists
	common    *domainlist.Set
	authority *domainlist.Set
	private   *domainlist.Set
	logger    *zap.Logger
}

// NewClassifier creates a new classifier
func NewClassifier(parser *Parser, lists *DomainLists, providers ProviderSets, logger *zap.Logger) *Classifier {
	return &Classifier{
		parser:    parser,
		lists:     lists,
		common:    domainlist.New(providers.Common, logger),
		authority: domainlist.New(providers.Authority, logger),
		private:   domainlist.New(providers.Private, logger),
		logger:    logger,
	}
}

// Lists returns the domain lists backing the classifier
func (c *Classifier) Lists() *DomainLists {
	return c.lists
}

// IsAllowlisted checks an address or a bare domain against the allowlist
func (c *Classifier) IsAllowlisted(input string) bool {
	domain, ok := c.domainOf(input)
	if !ok {
		return false
	}
	return c.lists.Contains(ListAllowlist, domain)
}

// IsDisposable checks the address against the disposable list.
// With checkAllowlist an allowlisted domain is never disposable.
func (c *Classifier) IsDisposable(raw string, checkAllowlist bool) bool {
	domain, ok := c.parser.Domain(raw)
	if !ok {
		return false
	}

	if checkAllowlist && c.lists.Contains(ListAllowlist, domain) {
		c.logger.Debug("Domain is allowlisted",
			zap.String("domain", domain),
			zap.String("action", "allowlist_bypass"))
		return false
	}

	return c.lists.Contains(ListDisposable, domain)
}

// IsCommon reports whether the address uses a common provider
func (c *Classifier) IsCommon(raw string) bool {
	return c.inSet(c.common, raw)
}

// IsAuthority reports whether the address uses an authority provider
func (c *Classifier) IsAuthority(raw string) bool {
	return c.inSet(c.authority, raw)
}

// IsPrivate reports whether the address uses a private provider
func (c *Classifier) IsPrivate(raw string) bool {
	return c.inSet(c.private, raw)
}

// Classify returns the category of a valid address
func (c *Classifier) Classify(raw string) (Classification, bool) {
	domain, ok := c.parser.Domain(raw)
	if !ok {
		return "", false
	}

	switch {
	case c.IsDisposable(raw, true):
		return ClassDisposable, true
	case c.authority.Contains(domain):
		return ClassAuthority, true
	case c.common.Contains(domain):
		return ClassCommon, true
	case c.private.Contains(domain):
		return ClassPrivate, true
	default:
		return ClassOther, true
	}
}

// MatchesPattern reports whether domain matches pattern
func (c *Classifier) MatchesPattern(domain, pattern string) bool {
	return ParsePattern(pattern).Match(strings.ToLower(strings.TrimSpace(domain)))
}

// FilterByPatterns keeps the addresses whose domain matches at least one
// pattern, or matches none when include is false. Invalid addresses are dropped.
func (c *Classifier) FilterByPatterns(addresses []string, patterns []string, include bool) []string {
	parsed := ParsePatterns(patterns)

	out := make([]string, 0, len(addresses))
	for _, raw := range addresses {
		domain, ok := c.parser.Domain(raw)
		if !ok {
			continue
		}
		if matchAny(domain, parsed) == include {
			out = append(out, strings.TrimSpace(raw))
		}
	}
	return out
}

func (c *Classifier) inSet(set *domainlist.Set, raw string) bool {
	domain, ok := c.parser.Domain(raw)
	if !ok {
		return false
	}
	return set.Contains(domain)
}

// domainOf accepts either a full address or a bare domain
func (c *Classifier) domainOf(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "@") {
		return c.parser.Domain(input)
	}
	if input == "" {
		return "", false
	}
	return strings.ToLower(input), true
}
