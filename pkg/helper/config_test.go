package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCfgPathAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "apiserver.yaml")
	assert.Equal(t, abs, GetCfgPath(abs))
}

func TestGetCfgPathCurrentDir(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "apiserver.yaml"), []byte("{}"), 0644))
	got := GetCfgPath("apiserver.yaml")
	assert.Equal(t, "apiserver.yaml", filepath.Base(got))
	assert.True(t, filepath.IsAbs(got))
}

func TestGetCfgPathConfigsDir(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "apiserver.yaml"), []byte("{}"), 0644))
	got := GetCfgPath("apiserver.yaml")
	assert.Contains(t, got, filepath.Join("configs", "apiserver.yaml"))
}

func TestGetCfgPathFallback(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Equal(t, "/etc/airmaint/missing.yaml", GetCfgPath("missing.yaml"))
}

func TestGetCfgPathEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { GetCfgPath("") })
}
