package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileshare/internal/file"
	"fileshare/internal/notify"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newClassifier() (*Classifier, *notify.Recorder) {
	rec := &notify.Recorder{}
	return NewClassifier(file.NewFileService(), rec), rec
}

func TestPickerKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "y.txt"), "yy")
	writeFile(t, filepath.Join(dir, "x.txt"), "x")

	c, _ := newClassifier()
	sel, err := c.FromPicker([]string{filepath.Join(dir, "y.txt"), filepath.Join(dir, "x.txt")})
	require.NoError(t, err)

	require.Len(t, sel.Items, 2)
	assert.Equal(t, "y.txt", sel.Items[0].RelativePath)
	assert.Equal(t, "x.txt", sel.Items[1].RelativePath)
	assert.Equal(t, int64(2), sel.Items[0].Entry.Size)
	assert.False(t, sel.IsFolder())
}

func TestPickerRejectsDirectory(t *testing.T) {
	c, _ := newClassifier()
	_, err := c.FromPicker([]string{t.TempDir()})
	assert.ErrorIs(t, err, ErrDirectoryInPicker)
}

func TestEmptySelections(t *testing.T) {
	c, _ := newClassifier()

	_, err := c.FromPicker(nil)
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = c.FromDrop(nil)
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = c.FromFolder(t.TempDir())
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestFolderSelection(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "a", "1.txt"), "1")

	c, _ := newClassifier()
	sel, err := c.Classify(SourceFolderPicker, []string{root})
	require.NoError(t, err)

	assert.True(t, sel.IsFolder())
	require.Len(t, sel.Items, 2)
	assert.Equal(t, "docs/a/1.txt", sel.Items[0].RelativePath)
	assert.Equal(t, "docs/b.txt", sel.Items[1].RelativePath)
}

func TestFolderSelectionNeedsOnePath(t *testing.T) {
	c, _ := newClassifier()
	_, err := c.Classify(SourceFolderPicker, []string{"a", "b"})
	assert.Error(t, err)
}

func TestDropOfFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.txt"), "x")

	c, rec := newClassifier()
	sel, err := c.Classify(SourceDrop, []string{filepath.Join(dir, "x.txt")})
	require.NoError(t, err)

	assert.Equal(t, SourceDrop, sel.Source)
	require.Len(t, sel.Items, 1)
	assert.Equal(t, "x.txt", sel.Items[0].RelativePath)
	assert.Empty(t, rec.All())
}

func TestDropWithFolderIsRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.txt"), "x")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	c, rec := newClassifier()
	sel, err := c.FromDrop([]string{filepath.Join(dir, "x.txt"), sub})

	assert.Nil(t, sel)
	assert.ErrorIs(t, err, ErrFolderDropRejected)
	assert.Equal(t, []string{FolderDropMessage}, rec.Messages())
	assert.Equal(t, notify.LevelError, rec.All()[0].Level)
}

func TestDropFallbackHeuristic(t *testing.T) {
	c, rec := newClassifier()

	// not introspectable and named like a path
	_, err := c.FromDrop([]string{`photos\summer.jpg`})
	assert.ErrorIs(t, err, ErrFolderDropRejected)
	assert.Len(t, rec.All(), 1)

	// not introspectable, plain name
	sel, err := c.FromDrop([]string{"ghost.txt"})
	require.NoError(t, err)
	assert.Equal(t, "ghost.txt", sel.Items[0].RelativePath)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "picker", SourcePicker.String())
	assert.Equal(t, "folder", SourceFolderPicker.String())
	assert.Equal(t, "drop", SourceDrop.String())
}
