package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from crypto/rand. It panics if the
// system randomness source is unavailable.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes b in place. Used for passwords and key material.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
