package httpclient

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Name != "http" {
		t.Errorf("expected default name http, got %q", cfg.Name)
	}

	cfg = Config{Timeout: 10 * time.Second, Name: "backend"}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second || cfg.Name != "backend" {
		t.Errorf("defaults overwrote explicit values: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Timeout: time.Second, BaseURL: "https://api.example.com"}, false},
		{"no base url", Config{Timeout: time.Second}, false},
		{"negative timeout", Config{Timeout: -1}, true},
		{"bad scheme", Config{Timeout: time.Second, BaseURL: "ftp://example.com"}, true},
		{"unparsable", Config{Timeout: time.Second, BaseURL: "http://[::1"}, true},
		{"tls cert without key", Config{Timeout: time.Second, TLS: &TLSConfig{CertFile: "cert.pem"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTLSConfig_Build(t *testing.T) {
	var nilCfg *TLSConfig
	got, err := nilCfg.Build()
	if err != nil || got != nil {
		t.Errorf("nil config should build to nil, got %v, %v", got, err)
	}

	got, err = (&TLSConfig{ServerName: "backend.local"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ServerName != "backend.local" {
		t.Errorf("expected server name to carry over, got %q", got.ServerName)
	}

	if _, err := (&TLSConfig{CAFile: "/nonexistent/ca.pem"}).Build(); err == nil {
		t.Error("expected error for missing CA file")
	}
}

func TestDefaultRetryConfig_RetriesTransientOnly(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.RetryIf(ClassifyStatusCode(404, nil)) {
		t.Error("404 should not be retried")
	}
	if !cfg.RetryIf(ClassifyStatusCode(503, nil)) {
		t.Error("503 should be retried")
	}
}
