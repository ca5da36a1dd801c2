package random

import (
	"crypto/rand"
)

// Alphanumeric is the alphabet used for request identifiers
const Alphanumeric = "abcdefghijklmnopqrstuvwxyz0123456789"

// Random provides random identifiers that can be mocked for testing
type Random interface {
	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// String generates a random string of the given length from the given alphabet.
// The alphabet must be ASCII and shorter than 256 characters.
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 || len(alphabet) > 255 {
		return ""
	}

	// Reject bytes past the largest multiple of the alphabet size to keep
	// the distribution uniform
	limit := 256 - 256%len(alphabet)
	result := make([]byte, 0, length)
	buf := make([]byte, length)

	for len(result) < length {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand.Read does not fail on supported platforms
			return ""
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			result = append(result, alphabet[int(b)%len(alphabet)])
			if len(result) == length {
				break
			}
		}
	}
	return string(result)
}
