// Package cryptox seals small secrets at rest with AES-256-GCM using keys
// derived by argon2id.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

// KeySize is the length of keys returned by DeriveKey.
const KeySize = 32

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches secret with salt into a KeySize key (argon2id,
// 1 pass, 64 MiB, 4 lanes).
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// Seal encrypts plaintext with key and returns nonce||ciphertext. A fresh
// random nonce is generated for each call.
func Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. It fails if the key is wrong or the data was altered.
func Open(sealed, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	n := aead.NonceSize()
	if len(sealed) < n {
		return nil, ErrCiphertextTooShort
	}

	return aead.Open(nil, sealed[:n], sealed[n:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
