package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
app_token = "secret-token"
limit = 250
timezone = "America/Chicago"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.AppToken != "secret-token" || cfg.Limit != 250 || cfg.Timezone != "America/Chicago" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Error("explicitly named missing file should fail")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("app_token = [broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed config should fail")
	}
}

func TestConfigLocation(t *testing.T) {
	if loc := (Config{Timezone: "UTC"}).location(); loc == nil || loc.String() != "UTC" {
		t.Errorf("expected UTC, got %v", loc)
	}
	if loc := (Config{}).location(); loc != nil {
		t.Errorf("unset timezone should defer to cleaning defaults, got %v", loc)
	}
	if loc := (Config{Timezone: "Not/AZone"}).location(); loc != nil {
		t.Errorf("unknown timezone should defer to cleaning defaults, got %v", loc)
	}
}
