package core

import (
	"strings"
	"time"
)

// Placeholder is the fixed address used to replace a deleted record
const Placeholder = "deleted@site.invalid"

// Address represents a parsed email address
type Address struct {
	local  string
	domain string
}

// Local returns the part before the @
func (a Address) Local() string {
	return a.local
}

// Domain returns the part after the @
func (a Address) Domain() string {
	return a.domain
}

// String returns the full address
func (a Address) String() string {
	return a.local + "@" + a.domain
}

// IsZero reports whether the address was never parsed
func (a Address) IsZero() bool {
	return a.local == "" && a.domain == ""
}

// Equal compares two addresses case-insensitively
func (a Address) Equal(b Address) bool {
	return strings.EqualFold(a.String(), b.String())
}

// Classification is the provider category of an address
type Classification string

const (
	ClassCommon     Classification = "common"
	ClassAuthority  Classification = "authority"
	ClassDisposable Classification = "disposable"
	ClassPrivate    Classification = "private"
	ClassOther      Classification = "other"
)

// Classifications lists every category in precedence order
var Classifications = []Classification{
	ClassDisposable,
	ClassAuthority,
	ClassCommon,
	ClassPrivate,
	ClassOther,
}

// ListKind identifies one of the two domain lists
type ListKind string

const (
	ListDisposable ListKind = "disposable"
	ListAllowlist  ListKind = "allowlist"
)

// ListInfo describes the load state of a domain list
type ListInfo struct {
	Loaded   bool      `json:"loaded"`
	Count    int       `json:"count"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// ListMetadata is a snapshot of both domain lists
type ListMetadata struct {
	Disposable ListInfo `json:"disposable"`
	Allowlist  ListInfo `json:"allowlist"`
}

// DomainCount pairs a domain with its frequency
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// ValidationResult is the validity of a single input
type ValidationResult struct {
	Input string `json:"input"`
	Valid bool   `json:"valid"`
}

// Statistics summarises a collection of addresses
type Statistics struct {
	Total           int                    `json:"total"`
	Valid           int                    `json:"valid"`
	Invalid         int                    `json:"invalid"`
	ValidPercentage float64                `json:"valid_percentage"`
	Subaddressed    int                    `json:"subaddressed"`
	Classifications map[Classification]int `json:"classifications,omitempty"`
	Domains         map[string]int         `json:"domains,omitempty"`
	UniqueDomains   int                    `json:"unique_domains,omitempty"`
	TopDomains      []DomainCount          `json:"top_domains,omitempty"`
	Lists           ListMetadata           `json:"lists"`
}

// ScoreTerm is one contribution to a spam score
type ScoreTerm struct {
	Reason string `json:"reason"`
	Delta  int    `json:"delta"`
}

// ScoreBreakdown is a spam score together with its contributing terms
type ScoreBreakdown struct {
	Address string      `json:"address"`
	Score   int         `json:"score"`
	Terms   []ScoreTerm `json:"terms"`
}

// MXCacheEntry represents a cached MX lookup for a domain
type MXCacheEntry struct {
	Domain    string
	HasMX     bool
	CheckedAt time.Time
	ExpiresAt time.Time
}
