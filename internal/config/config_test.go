package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	t.Setenv("VLARCH_CONFIG_PATH", filepath.Join(t.TempDir(), "helper.enc"))

	cfg, err := Load("test-secret")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Overrides) != 0 || cfg.Tooltip != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("VLARCH_CONFIG_PATH", filepath.Join(t.TempDir(), "helper.enc"))

	cfg := &Config{Tooltip: "VL-Arch"}
	cfg.SetOverride(LinkOverride{
		ActionID:   "vlarch_help",
		URL:        "https://support.vlarch.com",
		UpdatedUTC: "2026-01-02T03:04:05Z",
	})

	if err := Save(cfg, "test-secret"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load("test-secret")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Tooltip != "VL-Arch" {
		t.Fatalf("tooltip %q, want VL-Arch", loaded.Tooltip)
	}
	ov := loaded.Override("vlarch_help")
	if ov == nil || ov.URL != "https://support.vlarch.com" {
		t.Fatalf("unexpected override: %+v", ov)
	}
}

func TestLoadRejectsWrongPassphrase(t *testing.T) {
	t.Setenv("VLARCH_CONFIG_PATH", filepath.Join(t.TempDir(), "helper.enc"))

	if err := Save(&Config{Tooltip: "x"}, "right"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := Load("wrong"); err == nil {
		t.Fatal("expected decryption error with wrong passphrase")
	}
}

func TestLoadRejectsTruncatedCiphertext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helper.enc")
	t.Setenv("VLARCH_CONFIG_PATH", path)

	if err := os.WriteFile(path, []byte("short"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if _, err := Load("secret"); err == nil {
		t.Fatal("expected error for truncated ciphertext")
	}
}

func TestOverrideHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.SetOverride(LinkOverride{ActionID: "report_issue", Label: "File A Bug"})
	cfg.SetOverride(LinkOverride{ActionID: "report_issue", Label: "Report"})

	if len(cfg.Overrides) != 1 {
		t.Fatalf("expected single override after update, got %d", len(cfg.Overrides))
	}
	if cfg.Override("report_issue").Label != "Report" {
		t.Fatalf("override not updated: %+v", cfg.Overrides)
	}

	if !cfg.RemoveOverride("report_issue") {
		t.Fatal("expected removal to report true")
	}
	if cfg.RemoveOverride("report_issue") {
		t.Fatal("expected second removal to report false")
	}
}
