package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Interval())
	assert.Equal(t, "todos.json", cfg.SnapshotFile)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "todos.json"), cfg.SnapshotPath())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
	require.NoError(t, err)
	assert.Equal(t, "1s", cfg.SaveInterval)
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := "save_interval: 250ms\nsnapshot_file: list.json\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath, dir)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Interval())
	assert.Equal(t, "list.json", cfg.SnapshotFile)
	assert.Equal(t, dir, cfg.DataDir, "data dir comes from the flag, never the file")
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("save_interval: 2s\n"), 0o644))

	cfg, err := Load(configPath, dir)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Interval())
	assert.Equal(t, "todos.json", cfg.SnapshotFile)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("save_interval: [not\n"), 0o644))

	_, err := Load(configPath, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func(t *testing.T) Config {
		t.Helper()
		cfg := DefaultConfig()
		cfg.DataDir = t.TempDir()
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		cfg := valid(t)
		assert.NoError(t, cfg.Validate(""))
	})

	t.Run("bad duration", func(t *testing.T) {
		cfg := valid(t)
		cfg.SaveInterval = "soon"

		err := cfg.Validate("")

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "save_interval", fieldErrs[0].Field)
	})

	t.Run("negative duration", func(t *testing.T) {
		cfg := valid(t)
		cfg.SaveInterval = "-1s"

		err := cfg.Validate("")

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "save_interval", fieldErrs[0].Field)
	})

	t.Run("snapshot file with path separators", func(t *testing.T) {
		cfg := valid(t)
		cfg.SnapshotFile = "nested/todos.json"

		err := cfg.Validate("")

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "snapshot_file", fieldErrs[0].Field)
	})

	t.Run("data dir is a file", func(t *testing.T) {
		cfg := valid(t)
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		cfg.DataDir = file

		err := cfg.Validate("")

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "data_dir", fieldErrs[0].Field)
	})

	t.Run("config path is a directory", func(t *testing.T) {
		cfg := valid(t)

		err := cfg.Validate(t.TempDir())

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "config_file", fieldErrs[0].Field)
	})
}
