package encryption

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDecrypt is returned when a ciphertext cannot be opened with the key.
var ErrDecrypt = errors.New("encryption: message authentication failed")

// Encryptor seals and opens strings.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Algorithm names a supported AEAD.
type Algorithm string

const (
	// AlgorithmAESGCM is AES-256-GCM, the default.
	AlgorithmAESGCM Algorithm = "aes-256-gcm"
	// AlgorithmChaCha20 is ChaCha20-Poly1305.
	AlgorithmChaCha20 Algorithm = "chacha20-poly1305"
)

// ParseAlgorithm maps a config value to an Algorithm. Empty means AES-GCM.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlgorithmAESGCM:
		return AlgorithmAESGCM, nil
	case AlgorithmChaCha20:
		return AlgorithmChaCha20, nil
	default:
		return "", fmt.Errorf("encryption: unsupported algorithm %q", s)
	}
}

// Option configures New.
type Option func(*options)

type options struct {
	algorithm Algorithm
	context   string
}

// WithAlgorithm selects the cipher.
func WithAlgorithm(alg Algorithm) Option {
	return func(o *options) { o.algorithm = alg }
}

// WithContext binds derived keys to a purpose string, so a key derived for
// one purpose cannot open data sealed for another.
func WithContext(purpose string) Option {
	return func(o *options) { o.context = purpose }
}

// New creates an Encryptor from a passphrase.
func New(passphrase string, opts ...Option) (Encryptor, error) {
	if passphrase == "" {
		return nil, errors.New("encryption: empty passphrase")
	}
	o := &options{algorithm: AlgorithmAESGCM, context: "storefront"}
	for _, opt := range opts {
		opt(o)
	}

	key, err := deriveKey(passphrase, o.context)
	if err != nil {
		return nil, err
	}
	switch o.algorithm {
	case AlgorithmAESGCM:
		return newAESGCM(key)
	case AlgorithmChaCha20:
		return newChaCha20(key)
	default:
		return nil, fmt.Errorf("encryption: unsupported algorithm %q", o.algorithm)
	}
}
