// Package crypto generates share tokens from a cryptographically secure source.
package crypto

import (
	"crypto/rand"
	"strings"
)

// Share token shape: two base-36 segments of SegmentLen characters each.
const (
	SegmentLen = 13
	TokenLen   = 2 * SegmentLen

	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// largest multiple of len(alphabet) that fits a byte; bytes above it are rejected
	// so every symbol stays equally likely
	maxUnbiased = 252
)

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// NewShareToken returns a fresh token made of two random base-36 segments.
func NewShareToken() (string, error) {
	var sb strings.Builder
	sb.Grow(TokenLen)
	for i := 0; i < 2; i++ {
		seg, err := segment(SegmentLen)
		if err != nil {
			return "", err
		}
		sb.WriteString(seg)
	}
	return sb.String(), nil
}

func segment(n int) (string, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		buf, err := RandBytes(n)
		if err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// WellFormed reports whether s has the shape of a share token. Tokens that fail
// this check are rejected without a store lookup.
func WellFormed(s string) bool {
	if len(s) != TokenLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
