package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const keySize = 32

type aeadEncryptor struct {
	aead cipher.AEAD
}

func deriveKey(passphrase, purpose string) ([]byte, error) {
	key := make([]byte, keySize)
	r := hkdf.New(sha256.New, []byte(passphrase), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("encryption: derive key: %w", err)
	}
	return key, nil
}

func newAESGCM(key []byte) (*aeadEncryptor, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption: create GCM: %w", err)
	}
	return &aeadEncryptor{aead: gcm}, nil
}

func newChaCha20(key []byte) (*aeadEncryptor, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: create chacha20: %w", err)
	}
	return &aeadEncryptor{aead: aead}, nil
}

func (e *aeadEncryptor) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(plaintext)+e.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("encryption: generate nonce: %w", err)
	}
	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (e *aeadEncryptor) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("encryption: decode base64: %w", err)
	}
	n := e.aead.NonceSize()
	if len(data) < n+e.aead.Overhead() {
		return "", ErrDecrypt
	}
	plaintext, err := e.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plaintext), nil
}
