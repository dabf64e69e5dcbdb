package digest

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"lukechampine.com/blake3"
)

// HMAC digests values as hex encoded keyed hashes.
// The salt is the key; blake3 uses its native keyed mode.
type HMAC struct{}

// NewHMAC creates a new digester
func NewHMAC() *HMAC {
	return &HMAC{}
}

// Algorithms lists the supported algorithm names
func Algorithms() []string {
	return []string{"md5", "sha1", "sha256", "sha512", "blake3"}
}

// Digest returns the hex digest of value
func (d *HMAC) Digest(value, algorithm, salt string) (string, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))

	if algorithm == "blake3" {
		key := blake3.Sum256([]byte(salt))
		h := blake3.New(32, key[:])
		h.Write([]byte(value))
		return hex.EncodeToString(h.Sum(nil)), nil
	}

	newHash, err := hashFunc(algorithm)
	if err != nil {
		return "", err
	}

	mac := hmac.New(newHash, []byte(salt))
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func hashFunc(algorithm string) (func() hash.Hash, error) {
	switch algorithm {
	case "md5":
		return md5.New, nil
	case "sha1":
		return sha1.New, nil
	case "sha256":
		return sha256.New, nil
	case "sha512":
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}
}

// StaticSalt supplies a fixed salt
type StaticSalt struct {
	salt string
}

// NewStaticSalt creates a salt provider returning salt
func NewStaticSalt(salt string) *StaticSalt {
	return &StaticSalt{salt: salt}
}

// Salt returns the configured salt
func (s *StaticSalt) Salt() string {
	return s.salt
}
