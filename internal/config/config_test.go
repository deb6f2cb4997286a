package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":3000")
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.UploadDir != "uploads" || cfg.ConvertedDir != "converted" {
		t.Errorf("dirs = %q, %q", cfg.UploadDir, cfg.ConvertedDir)
	}
	if cfg.MaxUploadMb != 512 {
		t.Errorf("MaxUploadMb = %d", cfg.MaxUploadMb)
	}
	if cfg.Retention.SweepInterval != time.Hour {
		t.Errorf("SweepInterval = %v", cfg.Retention.SweepInterval)
	}
	if cfg.Retention.MaxAge != 24*time.Hour {
		t.Errorf("MaxAge = %v", cfg.Retention.MaxAge)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestMustLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg := MustLoad("")
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want default", cfg.Addr)
	}
}

func TestMustLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
addr: ":8080"
max_upload_mb: 64
retention:
  max_age: 2h
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := MustLoad(path)

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.MaxUploadMb != 64 {
		t.Errorf("MaxUploadMb = %d, want 64", cfg.MaxUploadMb)
	}
	if cfg.Retention.MaxAge != 2*time.Hour {
		t.Errorf("MaxAge = %v, want 2h", cfg.Retention.MaxAge)
	}

	// Unset fields still fall back.
	if cfg.UploadDir != "uploads" {
		t.Errorf("UploadDir = %q, want default", cfg.UploadDir)
	}
	if cfg.Retention.SweepInterval != time.Hour {
		t.Errorf("SweepInterval = %v, want default", cfg.Retention.SweepInterval)
	}
}
