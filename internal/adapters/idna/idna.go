package idna

import (
	"fmt"

	"golang.org/x/net/idna"
)

// Converter converts domains with the IDNA2008 lookup profile
type Converter struct {
	profile *idna.Profile
}

// New creates a new converter
func New() *Converter {
	return &Converter{profile: idna.Lookup}
}

// ToASCII returns the punycode form of domain
func (c *Converter) ToASCII(domain string) (string, error) {
	ascii, err := c.profile.ToASCII(domain)
	if err != nil {
		return "", fmt.Errorf("failed to convert domain %q: %w", domain, err)
	}
	return ascii, nil
}
