package output

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/onestandard/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	w, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, w.OutputDir)
	assert.DirExists(t, dir)
}

func TestNew_DefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	w, err := New("")
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, w.OutputDir)
}

func TestWritePackage(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)
	tag, err := model.NewTag("Work")
	require.NoError(t, err)
	pkg := model.NewPackage()
	pkg.Add(tag)
	data, err := pkg.JSON(model.WithIndent(model.FileIndent))
	require.NoError(t, err)

	path, err := w.WritePackage(data, "package.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "package.json"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestWritePackage_Failure(t *testing.T) {
	w := &Writer{OutputDir: filepath.Join(t.TempDir(), "missing")}
	_, err := w.WritePackage([]byte(`{"items":[]}`), "package.json")
	assert.ErrorIs(t, err, model.ErrPersist)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriteDigest(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteDigest("Work Notes", []byte("# Work"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "Work_Notes.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Work", string(data))

	path, err = w.WriteDigest("", nil, ".pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "notes.pdf"), path)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Work_Notes", sanitize("Work Notes"))
	assert.Equal(t, "caf_-2017", sanitize("café-2017"))
	assert.Equal(t, "a_b", sanitize("a/b"))
}
