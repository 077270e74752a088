package common

import "crypto/rand"

// WipeByteArray zeroes b. Passwords are wiped once they have been sent.
func WipeByteArray(b []byte) {
	clear(b)
}

// GenerateRandByteArray returns size bytes from crypto/rand. The fake
// backend uses it for its per-process signing secret.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
