package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileshare/internal/selection"
)

func TestValidateUploadFlags(t *testing.T) {
	assert.Error(t, validateUploadFlags(&UploadFlags{}, nil))
	assert.Error(t, validateUploadFlags(&UploadFlags{Folder: "photos"}, []string{"a.txt"}))
	assert.NoError(t, validateUploadFlags(&UploadFlags{Folder: "photos"}, nil))
	assert.NoError(t, validateUploadFlags(&UploadFlags{}, []string{"a.txt"}))
}

func TestSelectionFromFlags(t *testing.T) {
	list := filepath.Join(t.TempDir(), "files.txt")
	require.NoError(t, os.WriteFile(list, []byte("a.txt\n\n  b.txt  \n"), 0o644))

	opts, err := selectionFromFlags(&UploadFlags{FilesFrom: list}, nil)
	require.NoError(t, err)
	assert.Equal(t, selection.SourcePicker, opts.Source)
	assert.Equal(t, []string{"a.txt", "b.txt"}, opts.Paths)

	opts, err = selectionFromFlags(&UploadFlags{Folder: "photos"}, nil)
	require.NoError(t, err)
	assert.Equal(t, selection.SourceFolderPicker, opts.Source)

	opts, err = selectionFromFlags(&UploadFlags{}, []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, selection.SourceDrop, opts.Source)
	assert.Equal(t, []string{"x", "y"}, opts.Paths)
}

func TestSelectionFromMissingList(t *testing.T) {
	_, err := selectionFromFlags(&UploadFlags{FilesFrom: filepath.Join(t.TempDir(), "nope")}, nil)
	assert.Error(t, err)
}
