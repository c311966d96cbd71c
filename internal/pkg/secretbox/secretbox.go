package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

var ErrDecryptFailed = errors.New("decrypt failed")

// Box encrypts and decrypts small secrets with AES-256-GCM.
// The key is derived as SHA-256 of a process-wide secret, so rotating the
// secret invalidates every stored ciphertext.
type Box struct {
	aead cipher.AEAD
}

// New creates a Box from the process-wide secret
func New(secret string) (*Box, error) {
	if secret == "" {
		return nil, errors.New("encryption secret is required")
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Box{aead: aead}, nil
}

// Encrypt encrypts plaintext, returning ciphertext and the random IV used
func (b *Box) Encrypt(plaintext string) (ciphertext, iv []byte, err error) {
	iv = make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	ciphertext = b.aead.Seal(nil, iv, []byte(plaintext), nil)
	return ciphertext, iv, nil
}

// Decrypt decrypts a ciphertext produced by Encrypt.
// A wrong key, wrong IV, or tampered ciphertext yields ErrDecryptFailed.
func (b *Box) Decrypt(ciphertext, iv []byte) (string, error) {
	if len(iv) != b.aead.NonceSize() {
		return "", ErrDecryptFailed
	}

	plaintext, err := b.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
