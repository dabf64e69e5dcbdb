package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasTagAndTag(t *testing.T) {
	s := newTestEngine(t).Subaddress

	tests := []struct {
		input   string
		hasTag  bool
		tag     string
		tagOK   bool
		base    string
		baseOK  bool
	}{
		{"user@gmail.com", false, "", false, "user@gmail.com", true},
		{"user+shopping@gmail.com", true, "shopping", true, "user@gmail.com", true},
		{"user+a+b@example.com", true, "a+b", true, "user@example.com", true},
		{"user+@gmail.com", true, "", true, "user@gmail.com", true},
		{"+tag@gmail.com", true, "tag", true, "", false},
		{"invalid", false, "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.hasTag, s.HasTag(tt.input))

			tag, ok := s.Tag(tt.input)
			assert.Equal(t, tt.tagOK, ok)
			assert.Equal(t, tt.tag, tag)

			base, ok := s.Base(tt.input)
			assert.Equal(t, tt.baseOK, ok)
			if ok {
				assert.Equal(t, tt.base, base.String())
			}
		})
	}
}

func TestAddTag(t *testing.T) {
	s := newTestEngine(t).Subaddress

	tests := []struct {
		name   string
		input  string
		tag    string
		want   string
		wantOK bool
	}{
		{"adds tag", "user@gmail.com", "shopping", "user+shopping@gmail.com", true},
		{"replaces tag", "user+old@gmail.com", "new", "user+new@gmail.com", true},
		{"spaces become dashes", "user@outlook.com", "back to school", "user+back-to-school@outlook.com", true},
		{"plus signs stripped", "user@gmail.com", "a+b", "user+ab@gmail.com", true},
		{"provider check ignores case", "user@GMail.com", "x", "user+x@GMail.com", true},
		{"unsupported domain", "user@example.com", "shopping", "", false},
		{"empty tag", "user@gmail.com", "", "", false},
		{"only plus", "user@gmail.com", "++", "", false},
		{"invalid address", "invalid", "tag", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.AddTag(tt.input, tt.tag)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestAddTagKeepsBase(t *testing.T) {
	s := newTestEngine(t).Subaddress

	for _, input := range []string{"user@gmail.com", "user+old@gmail.com", "First.Last@icloud.com"} {
		tagged, ok := s.AddTag(input, "newsletter")
		require.True(t, ok, input)

		want, _ := s.Base(input)
		got, ok := s.Base(tagged.String())
		require.True(t, ok)
		assert.True(t, want.Equal(got), input)
	}
}

func TestCompareIgnoringTag(t *testing.T) {
	s := newTestEngine(t).Subaddress

	assert.True(t, s.CompareIgnoringTag("user+a@gmail.com", "USER+b@gmail.com"))
	assert.True(t, s.CompareIgnoringTag("user@gmail.com", "user+x@gmail.com"))
	assert.False(t, s.CompareIgnoringTag("user@gmail.com", "other@gmail.com"))
	assert.False(t, s.CompareIgnoringTag("user@gmail.com", "invalid"))
}

func TestRemoveTag(t *testing.T) {
	s := newTestEngine(t).Subaddress

	got, ok := s.RemoveTag("user+tag@gmail.com")
	require.True(t, ok)
	assert.Equal(t, "user@gmail.com", got)

	assert.True(t, s.Supports("gmail.com"))
	assert.False(t, s.Supports("example.com"))
}
