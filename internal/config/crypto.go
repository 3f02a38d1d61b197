package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrCryptoNotInitialized = errors.New("crypto key not initialized")
	ErrCiphertextTooShort   = errors.New("ciphertext too short")
)

var aead cipher.AEAD

// InitCrypto loads CRYPTO_KEY and panics unless it is exactly 32 bytes.
func InitCrypto() {
	if err := SetCryptoKey(os.Getenv("CRYPTO_KEY")); err != nil {
		panic(err)
	}
}

func SetCryptoKey(k string) error {
	if len(k) != 32 {
		return errors.New("CRYPTO_KEY must be 32 bytes")
	}
	block, err := aes.NewCipher([]byte(k))
	if err != nil {
		return fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("create gcm: %w", err)
	}
	aead = gcm
	return nil
}

// Encrypt seals text with AES-256-GCM and returns base64(nonce|ciphertext).
func Encrypt(text string) (string, error) {
	if aead == nil {
		return "", ErrCryptoNotInitialized
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(text), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func Decrypt(encoded string) (string, error) {
	if aead == nil {
		return "", ErrCryptoNotInitialized
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	nonceSize := aead.NonceSize()
	if len(data) < nonceSize {
		return "", ErrCiphertextTooShort
	}
	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
