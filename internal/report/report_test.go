package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themegroup/internal/group"
)

func sample() *group.Groups {
	g := group.New()
	g.Add("000,fff", "A")
	g.Add("000000,FFFFFF", "B")
	g.Add("000,fff", "C")
	return g
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), FormatJSON))

	want := `{
  "000,fff": [
    "A",
    "C"
  ],
  "000000,FFFFFF": [
    "B"
  ]
}`
	assert.Equal(t, want, buf.String())
}

func TestEncode_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, group.New(), FormatJSON))
	assert.Equal(t, "{}", buf.String())
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), FormatYAML))

	var decoded map[string][]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string][]string{
		"000,fff":       {"A", "C"},
		"000000,FFFFFF": {"B"},
	}, decoded)
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, sample(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme_groups.json")

	require.NoError(t, Write(path, sample(), FormatJSON))

	g, err := Read(path, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"000,fff", "000000,FFFFFF"}, g.Keys())
	assert.Equal(t, []string{"A", "C"}, g.Members("000,fff"))
}

func TestWriteRead_YAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme_groups.yaml")

	require.NoError(t, Write(path, sample(), FormatYAML))

	g, err := Read(path, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"000,fff", "000000,FFFFFF"}, g.Keys())
	assert.Equal(t, []string{"A", "C"}, g.Members("000,fff"))

	_, err = Read(path, FormatJSON)
	assert.Error(t, err, "a YAML report is not JSON")
}

func TestWriteRead_EmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme_groups.yaml")

	require.NoError(t, Write(path, group.New(), FormatYAML))

	g, err := Read(path, FormatYAML)
	require.NoError(t, err)
	assert.Zero(t, g.Len())
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path     string
		fallback Format
		want     Format
	}{
		{"theme_groups.json", FormatYAML, FormatJSON},
		{"out/groups.yaml", FormatJSON, FormatYAML},
		{"GROUPS.YML", FormatJSON, FormatYAML},
		{"report", FormatYAML, FormatYAML},
		{"report.txt", FormatJSON, FormatJSON},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatForPath(tt.path, tt.fallback), tt.path)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme_groups.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is much longer than the new report"), 0o644))

	require.NoError(t, Write(path, group.New(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestWrite_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "theme_groups.json")
	assert.Error(t, Write(path, sample(), FormatJSON))
	assert.NoFileExists(t, path)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "nope.json"), FormatJSON)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1, 2]"), 0o644))
	_, err = Read(bad, FormatJSON)
	assert.Error(t, err)

	_, err = Read(bad, Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Found 0 unique color signatures.", Summary(0))
	assert.Equal(t, "Found 2 unique color signatures.", Summary(2))
}
