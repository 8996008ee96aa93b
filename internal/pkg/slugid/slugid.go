// Package slugid generates short base62 suffixes for deduplicating product
// slugs.
package slugid

import (
	crypto_rand "crypto/rand"
	"strings"
)

// Base62 alphabet: 0-9, A-Z, a-z (62 characters)
const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultSuffixLength is long enough that collisions on a retried insert
// are not a practical concern for a catalog of this size.
const DefaultSuffixLength = 6

// New generates a base62 string of the given length using rejection
// sampling for uniform distribution:
//   - Extracts 6 bits at a time (values 0-63)
//   - Rejects values >= 62 to keep the distribution uniform
//   - ~5.95 bits of entropy per character (log2(62))
func New(length int) string {
	// Request extra bytes to account for rejection sampling (~3% rejection rate)
	bytesNeeded := (length*6)/8 + 4
	bytes := make([]byte, bytesNeeded)
	_, err := crypto_rand.Read(bytes)
	if err != nil {
		panic("failed to read random bytes: " + err.Error())
	}

	var result strings.Builder
	bitBuffer := uint64(0)
	bitsInBuffer := uint(0)
	byteIndex := 0

	for result.Len() < length {
		for bitsInBuffer < 6 && byteIndex < len(bytes) {
			bitBuffer = (bitBuffer << 8) | uint64(bytes[byteIndex])
			bitsInBuffer += 8
			byteIndex++
		}

		value := (bitBuffer >> (bitsInBuffer - 6)) & 0x3f
		bitsInBuffer -= 6

		if value < 62 {
			result.WriteByte(base62Alphabet[value])
		}

		// If we run out of bytes (unlikely), get more
		if byteIndex >= len(bytes) && result.Len() < length {
			_, err := crypto_rand.Read(bytes)
			if err != nil {
				panic("failed to read random bytes: " + err.Error())
			}
			byteIndex = 0
			bitBuffer = 0
			bitsInBuffer = 0
		}
	}

	return result.String()
}

// Suffix appends a random base62 suffix to a slug, e.g.
// "odinochnyj-o-1" -> "odinochnyj-o-1-8kJ2mN".
func Suffix(slug string) string {
	return slug + "-" + New(DefaultSuffixLength)
}
