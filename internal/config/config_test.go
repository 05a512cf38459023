package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.Scan.Root)
	assert.Equal(t, "code.html", cfg.Scan.Marker)
	assert.Equal(t, 5, cfg.Scan.SignatureSize)
	assert.Equal(t, int64(0), cfg.Scan.MaxFileSize)
	assert.Equal(t, "theme_groups.json", cfg.Report.Output)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[scan]
root = "/srv/stitch"
marker = "index.html"
signature_size = 3
max_file_size = 1048576

[report]
output = "groups.yaml"
format = "yaml"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/stitch", cfg.Scan.Root)
	assert.Equal(t, "index.html", cfg.Scan.Marker)
	assert.Equal(t, 3, cfg.Scan.SignatureSize)
	assert.Equal(t, int64(1048576), cfg.Scan.MaxFileSize)
	assert.Equal(t, "groups.yaml", cfg.Report.Output)
	assert.Equal(t, "yaml", cfg.Report.Format)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scan]\nroot = \"themes\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "themes", cfg.Scan.Root)
	assert.Equal(t, DefaultMarker, cfg.Scan.Marker)
	assert.Equal(t, DefaultOutput, cfg.Report.Output)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scan\nroot = "), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "themegroup", "config.toml"), ConfigPath())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Scan.Root = "/data"
	cfg.Report.Format = "yaml"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyFlags_OnlyChanged(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", DefaultRoot, "")
	flags.String("output", DefaultOutput, "")
	flags.String("marker", DefaultMarker, "")
	flags.Int("signature-size", DefaultSignatureSize, "")
	flags.Int64("max-file-size", 0, "")
	flags.String("format", DefaultFormat, "")
	require.NoError(t, flags.Parse([]string{"--root", "/flag/root", "--signature-size", "7"}))

	cfg := DefaultConfig()
	cfg.Report.Output = "from-file.json"
	require.NoError(t, cfg.ApplyFlags(flags))

	assert.Equal(t, "/flag/root", cfg.Scan.Root)
	assert.Equal(t, 7, cfg.Scan.SignatureSize)
	assert.Equal(t, "from-file.json", cfg.Report.Output, "unset flag must not override file value")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "empty root", mutate: func(c *Config) { c.Scan.Root = "" }, wantErr: ErrEmptyRoot},
		{name: "empty marker", mutate: func(c *Config) { c.Scan.Marker = "" }, wantErr: ErrInvalidMarker},
		{name: "marker with dir", mutate: func(c *Config) { c.Scan.Marker = "a/code.html" }, wantErr: ErrInvalidMarker},
		{name: "zero size", mutate: func(c *Config) { c.Scan.SignatureSize = 0 }, wantErr: ErrInvalidSize},
		{name: "negative limit", mutate: func(c *Config) { c.Scan.MaxFileSize = -1 }, wantErr: ErrInvalidLimit},
		{name: "empty output", mutate: func(c *Config) { c.Report.Output = "" }, wantErr: ErrEmptyOutput},
		{name: "bad format", mutate: func(c *Config) { c.Report.Format = "xml" }, wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
