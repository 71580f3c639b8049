package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolveDestinationPath decides where a download named fileName is written.
// An existing directory receives the file under fileName; any other path whose
// parent directory exists is used as the target file itself.
func ResolveDestinationPath(destPath, fileName string) (string, error) {
	if destPath == "" {
		destPath = "."
	}

	info, err := os.Stat(destPath)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(destPath, fileName), nil
	case err == nil:
		return destPath, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("cannot access destination %s: %w", destPath, err)
	}

	parent := filepath.Dir(destPath)
	if pinfo, perr := os.Stat(parent); perr != nil || !pinfo.IsDir() {
		return "", fmt.Errorf("destination directory %s does not exist", parent)
	}
	return destPath, nil
}
