package idna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToASCII(t *testing.T) {
	c := New()

	out, err := c.ToASCII("münchen.de")
	require.NoError(t, err)
	assert.Equal(t, "xn--mnchen-3ya.de", out)

	out, err = c.ToASCII("example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", out)
}

func TestToASCIIInvalid(t *testing.T) {
	_, err := New().ToASCII("-bad-.com")
	assert.Error(t, err)
}
