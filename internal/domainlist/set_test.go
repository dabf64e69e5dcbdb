package domainlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSetNormalizesEntries(t *testing.T) {
	s := New([]string{" Mailinator.COM ", "", "10minutemail.com", "mailinator.com"}, zaptest.NewLogger(t))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("mailinator.com"))
	assert.True(t, s.Contains("MAILINATOR.com"))
	assert.False(t, s.Contains("example.com"))
	assert.Equal(t, []string{"10minutemail.com", "mailinator.com"}, s.Domains())
}

func TestSetAddRemoveIdempotent(t *testing.T) {
	s := New(nil, nil)

	assert.Equal(t, 1, s.Add("a.com"))
	assert.Equal(t, 0, s.Add("A.com"))
	assert.Equal(t, 1, s.Remove("a.com"))
	assert.Equal(t, 0, s.Remove("a.com"))
	assert.Equal(t, 0, s.Len())
}

func TestNilSet(t *testing.T) {
	var s *Set
	assert.False(t, s.Contains("a.com"))
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Domains())
}

func TestParse(t *testing.T) {
	input := "mailinator.com\r\n\n# comment\n  Guerrillamail.com  \n\r\n"

	domains, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"mailinator.com", "guerrillamail.com"}, domains)
}
