package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ser140/GDScript-formatter/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)

	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.NewConfig(), result.Config)
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gdformat.yaml"), `
format:
  indent_style: spaces
  indent_size: 2
`)

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, ".gdformat.yaml")}, result.LoadedFrom)
	assert.Equal(t, config.IndentSpaces, result.Config.Format.IndentStyle)
	assert.Equal(t, 2, result.Config.Format.IndentSize)
	// Keys the file doesn't set keep their defaults.
	assert.True(t, result.Config.Format.SafeMode)
	assert.Equal(t, 100, result.Config.Lint.MaxLineLength)
}

func TestLoadExplicitPathWinsOverProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gdformat.yaml"), "format:\n  indent_size: 2\n")
	explicit := filepath.Join(dir, "other.yaml")
	writeFile(t, explicit, "format:\n  indent_size: 8\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		ExplicitPath:       explicit,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, result.Config.Format.IndentSize)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
}

func TestLoadInvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gdformat.yaml"), "format:\n  indent_style: elastic\n")

	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent_style")
}

func TestLoadUnknownDisabledRuleWarns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gdformat.yaml"), "lint:\n  disable: [no-such-rule]\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no-such-rule")
}

func TestFindProjectConfigSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gdformat.yaml"), "")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".gdformat.yaml"), path)
}

func TestFindProjectConfigStopsAtVCSRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gdformat.yaml"), "")
	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(project, ".git"), 0o755))
	nested := filepath.Join(project, "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, path, "search should not cross the VCS boundary")
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Format.IndentSize = 0
	cfg.Lint.MaxLineLength = -1

	result := Validate(cfg)
	assert.False(t, result.Valid())
	assert.Len(t, result.Errors, 2)
}
