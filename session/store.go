package session

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"

	"github.com/kbukum/storefront/encryption"
	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/storage"
	_ "github.com/kbukum/storefront/storage/local" // registers the local provider
)

// TokenStore persists the session token.
type TokenStore interface {
	// Load returns the stored token. ok is false when none is stored.
	Load(ctx context.Context) (token string, ok bool, err error)
	// Save replaces the stored token.
	Save(ctx context.Context, token string) error
	// Clear removes the stored token. Clearing an absent token is not an error.
	Clear(ctx context.Context) error
}

// FileStore is a TokenStore over a storage.Storage.
type FileStore struct {
	store storage.Storage
	key   string
	enc   encryption.Encryptor
	log   *logger.Logger
}

var _ TokenStore = (*FileStore)(nil)

// Option configures a FileStore.
type Option func(*FileStore)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *FileStore) { s.key = key }
}

// WithEncryptor seals the token with enc.
func WithEncryptor(enc encryption.Encryptor) Option {
	return func(s *FileStore) { s.enc = enc }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *FileStore) { s.log = l }
}

// NewFileStore returns a token store writing to st.
func NewFileStore(st storage.Storage, opts ...Option) *FileStore {
	s := &FileStore{store: st, key: DefaultKey, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("session")
	return s
}

// Open builds a FileStore from cfg.
func Open(cfg Config, log *logger.Logger) (*FileStore, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	st, err := storage.New(cfg.Storage, log)
	if err != nil {
		return nil, errors.SessionUnavailable("open", err)
	}

	opts := []Option{WithKey(cfg.Key), WithLogger(log)}
	if cfg.EncryptionKey != "" {
		alg, _ := encryption.ParseAlgorithm(cfg.Algorithm)
		enc, err := encryption.New(cfg.EncryptionKey, encryption.WithAlgorithm(alg))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithEncryptor(enc))
	}
	return NewFileStore(st, opts...), nil
}

// Load reads the token. A blank stored value counts as absent.
func (s *FileStore) Load(ctx context.Context) (string, bool, error) {
	data, err := storage.ReadAll(ctx, s.store, s.key)
	if stderrors.Is(err, storage.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.SessionUnavailable("load", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}
	if s.enc != nil {
		token, err = s.enc.Decrypt(token)
		if err != nil {
			return "", false, errors.SessionUnavailable("load", err)
		}
	}
	return token, true, nil
}

// Save writes token, replacing any previous one.
func (s *FileStore) Save(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.MissingField("token")
	}
	value := token
	if s.enc != nil {
		sealed, err := s.enc.Encrypt(token)
		if err != nil {
			return errors.SessionUnavailable("save", err)
		}
		value = sealed
	}
	if err := s.store.Upload(ctx, s.key, bytes.NewReader([]byte(value))); err != nil {
		return errors.SessionUnavailable("save", err)
	}
	s.log.Debug("session token saved", logger.Fields("encrypted", s.enc != nil))
	return nil
}

// Clear deletes the stored token.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return errors.SessionUnavailable("clear", err)
	}
	s.log.Debug("session token cleared")
	return nil
}
