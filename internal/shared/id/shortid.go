package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	// SuffixLength is the random suffix length used by time-based ids
	SuffixLength = 8
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// NewTimeID creates an id of the form "prefix_<unix millis>_<random suffix>".
// The timestamp keeps ids roughly sortable; the suffix keeps ids generated in
// the same millisecond distinct.
func NewTimeID(prefix string) (string, error) {
	return newTimeIDAt(prefix, time.Now())
}

func newTimeIDAt(prefix string, now time.Time) (string, error) {
	suffix, err := Generate(SuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix), nil
}
