package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp isolates the ./config lookup from the repository tree.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 15, cfg.WAT.TimePerWord)
	assert.Equal(t, 10, cfg.WAT.SampleSize)
	assert.Equal(t, 5, cfg.SRT.TotalMinutes)
	assert.True(t, cfg.UI.Fullscreen)
	assert.Equal(t, filepath.Join(dir, HomeDirName, "ssbprep.log"), cfg.LogFile)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_File(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(`
env: production
log_file: ""
wat:
  time_per_word: 8
  words_file: words.txt
srt:
  total_minutes: 12
ui:
  fullscreen: false
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, 8, cfg.WAT.TimePerWord)
	assert.Equal(t, 10, cfg.WAT.SampleSize)
	assert.Equal(t, "words.txt", cfg.WAT.WordsFile)
	assert.Equal(t, 12, cfg.SRT.TotalMinutes)
	assert.False(t, cfg.UI.Fullscreen)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SSBPREP_WAT_TIME_PER_WORD", "30")
	t.Setenv("SSBPREP_SRT_SITUATIONS_FILE", "/tmp/srt.yaml")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.WAT.TimePerWord)
	assert.Equal(t, "/tmp/srt.yaml", cfg.SRT.SituationsFile)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.ErrorContains(t, err, "error loading config file")
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wat:\n  time_per_word: 0\nsrt:\n  total_minutes: 61\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wat.time_per_word")
	assert.Contains(t, err.Error(), "srt.total_minutes")
}
