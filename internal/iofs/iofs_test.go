package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/taxodrift/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "taxodrift"),
		filepath.Join(tmpDir, ".cache", "taxodrift"),
		filepath.Join(tmpDir, ".cache", "taxodrift", "downloads"),
		filepath.Join(tmpDir, ".local", "share", "taxodrift", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
	}

	// repeated calls are fine
	require.NoError(t, EnsureDirs(tmpDir))
}

func TestEnsureOutputDirs(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptBaseDir(t.TempDir())})

	err := EnsureOutputDirs(cfg, "wfo")
	require.NoError(t, err)

	for _, v := range []string{cfg.InputDir("wfo"), cfg.OutputDir("wfo")} {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestResetDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "full_chain")

	require.NoError(t, ResetDir(dir))
	path := filepath.Join(dir, "hop_1_v11.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	require.NoError(t, ResetDir(dir))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestTouchDir(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	err := touchDir(newDir)
	require.NoError(t, err)

	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directory is left alone
	err = touchDir(newDir)
	require.NoError(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	err := EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "taxodrift",
		"config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	// existing file is not overwritten
	custom := "base_dir: /data\n"
	require.NoError(t, os.WriteFile(configPath, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestEnsureVersionsFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	err := EnsureVersionsFile(tmpDir)
	require.NoError(t, err)

	path := filepath.Join(tmpDir, ".config", "taxodrift", "versions.yaml")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, VersionsYAML, string(content))
}

func TestEmbeddedYAML(t *testing.T) {
	assert.Contains(t, ConfigYAML, "base_dir")
	assert.Contains(t, ConfigYAML, "max_unresolved")
	assert.Contains(t, ConfigYAML, "database")
	assert.Contains(t, VersionsYAML, "wcvp_names.csv")
	assert.Contains(t, VersionsYAML, "classification.csv")
	assert.Contains(t, VersionsYAML, "homotypicSynonym")
}
