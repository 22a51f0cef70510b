package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDemoDefaultsWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg, err := LoadDemo()
	if err != nil {
		t.Fatalf("LoadDemo failed: %v", err)
	}

	want := DefaultDemo()
	if cfg != want {
		t.Errorf("LoadDemo() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadDemoFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "demo.yaml")

	data := []byte("min_latency_ms: 100\nmax_latency_ms: 250\nfailure_rate: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadDemoFile(path)
	if err != nil {
		t.Fatalf("LoadDemoFile failed: %v", err)
	}

	if cfg.MinLatencyMS != 100 || cfg.MaxLatencyMS != 250 {
		t.Errorf("latency bounds = %d/%d, want 100/250", cfg.MinLatencyMS, cfg.MaxLatencyMS)
	}
	if cfg.FailureRate != 0.5 {
		t.Errorf("FailureRate = %v, want 0.5", cfg.FailureRate)
	}
}

func TestLoadDemoFileMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "demo.yaml")

	if err := os.WriteFile(path, []byte("min_latency_ms: [not a number"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadDemoFile(path); err == nil {
		t.Error("Expected an error for a malformed config file")
	}
}

func TestDemoNormalization(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "demo.yaml")

	data := []byte("min_latency_ms: 500\nmax_latency_ms: 100\nfailure_rate: 3.0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadDemoFile(path)
	if err != nil {
		t.Fatalf("LoadDemoFile failed: %v", err)
	}

	if cfg.MaxLatencyMS < cfg.MinLatencyMS {
		t.Errorf("max latency %d below min %d after normalization", cfg.MaxLatencyMS, cfg.MinLatencyMS)
	}
	if cfg.FailureRate > 1 {
		t.Errorf("FailureRate = %v, want clamped to 1", cfg.FailureRate)
	}
}
