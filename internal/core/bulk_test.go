package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleAddresses = []string{
	"john@gmail.com",
	"jane+news@gmail.com",
	"bob@example.com",
	"temp@10minutemail.com",
	"ceo@google.com",
	"me@proton.me",
	"invalid",
	"",
	"alice@example.com",
}

func TestValidateAndFilter(t *testing.T) {
	a := newTestEngine(t).Aggregator

	results := a.ValidateAll([]string{"a@example.com", "bad"})
	assert.Equal(t, []ValidationResult{
		{Input: "a@example.com", Valid: true},
		{Input: "bad", Valid: false},
	}, results)

	input := []string{" a@example.com ", "bad", "B@Example.com", ""}
	assert.Equal(t, []string{"a@example.com", "B@Example.com"}, a.FilterValid(input))
	assert.Equal(t, []string{"bad", ""}, a.FilterInvalid(input))
	assert.Empty(t, a.FilterValid(nil))
}

func TestExtractFromText(t *testing.T) {
	a := newTestEngine(t).Aggregator

	text := "Contact John.Doe@Example.com or <jane@example.org>, and again john.doe@example.com. Not an address: foo@ or @bar."
	assert.Equal(t, []string{"john.doe@example.com", "jane@example.org"}, a.ExtractFromText(text))
	assert.Empty(t, a.ExtractFromText("no addresses here"))
}

func TestRemoveDuplicates(t *testing.T) {
	a := newTestEngine(t).Aggregator

	input := []string{"User@gmail.com", "user@GMAIL.com", "user+a@gmail.com", "bad", "other@gmail.com"}

	assert.Equal(t,
		[]string{"User@gmail.com", "user+a@gmail.com", "other@gmail.com"},
		a.RemoveDuplicates(input, false))
	assert.Equal(t,
		[]string{"User@gmail.com", "other@gmail.com"},
		a.RemoveDuplicates(input, true))
}

func TestGroupAndCount(t *testing.T) {
	a := newTestEngine(t).Aggregator

	input := []string{"a@Example.com", "b@example.com", "c@gmail.com", "bad"}

	groups := a.GroupByDomain(input)
	assert.Equal(t, map[string][]string{
		"example.com": {"a@Example.com", "b@example.com"},
		"gmail.com":   {"c@gmail.com"},
	}, groups)

	assert.Equal(t, map[string]int{"example.com": 2, "gmail.com": 1}, a.CountByDomain(input))
}

func TestTopDomains(t *testing.T) {
	a := newTestEngine(t).Aggregator

	input := []string{
		"a@tie-one.com", "b@popular.com", "c@tie-two.com",
		"d@popular.com", "e@popular.com", "f@tie-one.com", "g@tie-two.com",
	}

	assert.Equal(t, []DomainCount{
		{Domain: "popular.com", Count: 3},
		{Domain: "tie-one.com", Count: 2},
		{Domain: "tie-two.com", Count: 2},
	}, a.TopDomains(input, 5))
	assert.Len(t, a.TopDomains(input, 1), 1)
	assert.Empty(t, a.TopDomains(input, 0))
}

func TestProviderTypes(t *testing.T) {
	a := newTestEngine(t).Aggregator

	assert.Equal(t, map[Classification]int{
		ClassCommon:     2,
		ClassOther:      2,
		ClassDisposable: 1,
		ClassAuthority:  1,
		ClassPrivate:    1,
	}, a.CountByProviderType(sampleAddresses))

	assert.Equal(t,
		[]string{"john@gmail.com", "jane+news@gmail.com", "me@proton.me"},
		a.FilterByProviderType(sampleAddresses, ClassCommon, ClassPrivate))
	assert.Empty(t, a.FilterByProviderType(sampleAddresses))
}

func TestGetStatistics(t *testing.T) {
	a := newTestEngine(t).Aggregator

	stats := a.GetStatistics(sampleAddresses)
	assert.Equal(t, 9, stats.Total)
	assert.Equal(t, 7, stats.Valid)
	assert.Equal(t, 2, stats.Invalid)
	assert.Equal(t, 77.78, stats.ValidPercentage)
	assert.Equal(t, 1, stats.Subaddressed)
	assert.Equal(t, 2, stats.Classifications[ClassCommon])
	assert.Equal(t, 5, stats.UniqueDomains)
	assert.Equal(t, 2, stats.Domains["gmail.com"])

	require.Len(t, stats.TopDomains, 5)
	assert.Equal(t, DomainCount{Domain: "gmail.com", Count: 2}, stats.TopDomains[0])
	assert.Equal(t, DomainCount{Domain: "example.com", Count: 2}, stats.TopDomains[1])

	assert.True(t, stats.Lists.Disposable.Loaded)
	assert.Equal(t, 3, stats.Lists.Disposable.Count)
}

func TestGetStatisticsNoValid(t *testing.T) {
	a := newTestEngine(t).Aggregator

	stats := a.GetStatistics([]string{"bad", ""})
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.Valid)
	assert.Equal(t, 2, stats.Invalid)
	assert.Zero(t, stats.ValidPercentage)
	assert.Nil(t, stats.Classifications)
	assert.Nil(t, stats.TopDomains)

	empty := a.GetStatistics(nil)
	assert.Equal(t, 0, empty.Total)
}
