package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	TokenDb string `json:"token_db"`
	Verbose bool   `json:"verbose"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0644)
	require.NoError(t, err)
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "marketctl.json5")

	writeFile(t, name, `{
		// default config
		base_url: "http://localhost:8000",
		token_db: "tokens.db",
	}`)
	writeFile(t, filepath.Join(dir, "marketctl.local.json5"), `{
		base_url: "http://staging.internal:8000",
		verbose: true,
	}`)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "http://staging.internal:8000", config.BaseUrl)
	require.Equal(t, "tokens.db", config.TokenDb)
	require.True(t, config.Verbose)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "marketctl.local.json5"), `{base_url: "http://a"}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "marketctl.json5"))
	require.NoError(t, err)
	require.Equal(t, "http://a", config.BaseUrl)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "nope.json5"))
	require.True(t, os.IsNotExist(err))
}
