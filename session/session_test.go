package session

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/storefront/encryption"
	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/storage"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	s := NewFileStore(st)

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "abc"))
	tok, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	raw, err := storage.ReadAll(ctx, st, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(raw))

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear(ctx), "clearing twice")
}

func TestFileStore_Encrypted(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	enc, err := encryption.New("passphrase", encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
	require.NoError(t, err)
	s := NewFileStore(st, WithEncryptor(enc))

	require.NoError(t, s.Save(ctx, "secret-token"))

	raw, err := storage.ReadAll(ctx, st, DefaultKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token")

	tok, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret-token", tok)

	other, err := encryption.New("another", encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
	require.NoError(t, err)
	_, _, err = NewFileStore(st, WithEncryptor(other)).Load(ctx)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionUnavailable))
}

func TestFileStore_BlankIsAbsent(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	require.NoError(t, st.Upload(ctx, DefaultKey, bytes.NewReader([]byte("  \n"))))

	_, ok, err := NewFileStore(st).Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_SaveEmptyRejected(t *testing.T) {
	err := NewFileStore(storage.NewMemory()).Save(context.Background(), "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingField))
}

func TestOpen_LocalSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		Storage:       storage.Config{Provider: storage.ProviderLocal, BasePath: filepath.Join(t.TempDir(), "session")},
		EncryptionKey: "k",
	}

	s, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "persisted"))

	reopened, err := Open(cfg, nil)
	require.NoError(t, err)
	tok, ok, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", tok)
}

func TestOpen_BadAlgorithm(t *testing.T) {
	_, err := Open(Config{Storage: storage.Config{Provider: storage.ProviderMemory}, Algorithm: "rot13"}, nil)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore("")

	_, ok, _ := m.Load(ctx)
	assert.False(t, ok)

	require.NoError(t, m.Save(ctx, "t"))
	tok, ok, _ := m.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, "t", tok)

	require.NoError(t, m.Clear(ctx))
	_, ok, _ = m.Load(ctx)
	assert.False(t, ok)
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-42",
		"exp": exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	claims, err := Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID())
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.Equal(exp))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Minute)))
}

func TestInspect_NoExpiry(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"}).SignedString([]byte("k"))
	require.NoError(t, err)

	claims, err := Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "u", claims.UserID())
	assert.False(t, claims.Expired(time.Now().Add(24*time.Hour)))
}

func TestInspect_Garbage(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}
