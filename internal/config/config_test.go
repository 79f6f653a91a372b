package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_FullConfig(t *testing.T) {
	configContent := `
output:
  file: /tmp/compressor-debug.csv
recorder:
  stop_after: 1024
inspect:
  precision: 3
demo:
  sample_rate: 44100
  frequency: 220
  threshold: 0.25
  ratio: 8
  attack_ms: 1
  release_ms: 100
`

	configFile := createTempConfig(t, configContent)

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Output.File != "/tmp/compressor-debug.csv" {
		t.Errorf("Expected output file '/tmp/compressor-debug.csv', got '%s'", cfg.Output.File)
	}

	stopAfter, ok := cfg.StopAfter()
	if !ok || stopAfter != 1024 {
		t.Errorf("Expected stop_after 1024, got %d (set=%v)", stopAfter, ok)
	}

	if cfg.Inspect.Precision != 3 {
		t.Errorf("Expected precision 3, got %d", cfg.Inspect.Precision)
	}

	if cfg.Demo.SampleRate != 44100 || cfg.Demo.Frequency != 220 || cfg.Demo.Ratio != 8 {
		t.Errorf("Demo section not loaded: %+v", cfg.Demo)
	}
}

func TestLoad_PartialConfigFallsBackToDefaults(t *testing.T) {
	configContent := `
output:
  file: partial.csv
`

	configFile := createTempConfig(t, configContent)

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Output.File != "partial.csv" {
		t.Errorf("Expected output file 'partial.csv', got '%s'", cfg.Output.File)
	}

	if _, ok := cfg.StopAfter(); ok {
		t.Errorf("Expected no stop threshold, got %v", *cfg.Recorder.StopAfter)
	}

	if cfg.Inspect.Precision != defaultConfig.Inspect.Precision {
		t.Errorf("Expected default precision %d, got %d", defaultConfig.Inspect.Precision, cfg.Inspect.Precision)
	}

	if cfg.Demo != defaultConfig.Demo {
		t.Errorf("Expected default demo section, got %+v", cfg.Demo)
	}
}

func TestLoad_ExpandsHomeDirectory(t *testing.T) {
	configContent := `
output:
  file: ~/debug/plugin.csv
`

	configFile := createTempConfig(t, configContent)

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	homeDir, _ := os.UserHomeDir()
	expected := filepath.Join(homeDir, "debug", "plugin.csv")
	if cfg.Output.File != expected {
		t.Errorf("Expected '%s', got '%s'", expected, cfg.Output.File)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	configContent := `
output:
  file: from-file.csv
`

	configFile := createTempConfig(t, configContent)

	t.Setenv("SAMPLELOG_OUTPUT_FILE", "from-env.csv")
	t.Setenv("SAMPLELOG_RECORDER_STOP_AFTER", "64")

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Output.File != "from-env.csv" {
		t.Errorf("Expected env override 'from-env.csv', got '%s'", cfg.Output.File)
	}

	stopAfter, ok := cfg.StopAfter()
	if !ok || stopAfter != 64 {
		t.Errorf("Expected stop_after 64 from env, got %d (set=%v)", stopAfter, ok)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("Expected error for empty config path")
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "error reading config file") {
		t.Errorf("Expected read error, got: %v", err)
	}

	configFile := createTempConfig(t, "recorder:\n  stop_after: -5\n")
	_, err = Load(configFile)
	if err == nil {
		t.Fatal("Expected validation error for negative stop_after")
	}
	if !strings.Contains(err.Error(), "'stop_after' must be >= 0") {
		t.Errorf("Expected stop_after error, got: %v", err)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults, got error: %v", err)
	}

	if cfg.Output.File != defaultConfig.Output.File {
		t.Errorf("Expected default output file '%s', got '%s'", defaultConfig.Output.File, cfg.Output.File)
	}
}

func TestLoadOrDefault_ExistingFile(t *testing.T) {
	configFile := createTempConfig(t, "output:\n  file: existing.csv\n")

	cfg, err := LoadOrDefault(configFile)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Output.File != "existing.csv" {
		t.Errorf("Expected 'existing.csv', got '%s'", cfg.Output.File)
	}
}

func TestDefault_ReturnsCopy(t *testing.T) {
	cfg := Default()
	cfg.Output.File = "mutated.csv"

	if Default().Output.File == "mutated.csv" {
		t.Error("Default() should return a copy, defaults were mutated")
	}
}

func createTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "samplelog-test-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpfile.Name()
}
