package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/storefront/logger"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Download(ctx, "token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.Upload(ctx, "token", strings.NewReader("abc")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	got, err := ReadAll(ctx, m, "token")
	if err != nil || string(got) != "abc" {
		t.Fatalf("ReadAll = %q, %v", got, err)
	}
	ok, _ := m.Exists(ctx, "token")
	if !ok {
		t.Error("expected token to exist")
	}
	if err := m.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(ctx, "token"); err != nil {
		t.Errorf("deleting an absent key should succeed, got %v", err)
	}
	ok, _ = m.Exists(ctx, "token")
	if ok {
		t.Error("expected token to be gone")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Provider != ProviderLocal || cfg.BasePath != DefaultBasePath {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := (&Config{Provider: "s3"}).Validate(); err == nil {
		t.Error("expected unsupported provider error")
	}
	if err := (&Config{Provider: ProviderLocal}).Validate(); err == nil || !strings.Contains(err.Error(), "base_path: is required") {
		t.Errorf("expected missing base_path error, got %v", err)
	}
	if err := (&Config{}).Validate(); err == nil || !strings.Contains(err.Error(), "provider: is required") {
		t.Errorf("expected missing provider error, got %v", err)
	}
	if err := (&Config{Provider: ProviderMemory}).Validate(); err != nil {
		t.Errorf("memory needs no base_path: %v", err)
	}
}

func TestNew_Memory(t *testing.T) {
	s, err := New(Config{Provider: ProviderMemory}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("expected *Memory, got %T", s)
	}
}

func TestNew_UnregisteredProvider(t *testing.T) {
	// storage/local registers itself on import; this package does not import it.
	_, err := New(Config{Provider: ProviderLocal, BasePath: t.TempDir()}, logger.Nop())
	if err == nil || !strings.Contains(err.Error(), "not registered") {
		t.Errorf("expected not registered error, got %v", err)
	}
}
