package vcs

import (
	"fmt"
	"os"
	"path/filepath"
)

// MetadataDir is the repository metadata entry git keeps in a work tree.
const MetadataDir = ".git"

// HasRepository reports whether dir itself holds repository metadata. A .git
// file (worktrees, submodules) counts as well as a directory.
func HasRepository(dir string) (bool, error) {
	_, err := os.Stat(filepath.Join(dir, MetadataDir))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking for %s in %s: %w", MetadataDir, dir, err)
}

// EnclosingRepository walks up from the parent of dir and returns the first
// directory holding repository metadata, or "" when there is none.
func EnclosingRepository(dir string) string {
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
		if ok, _ := HasRepository(dir); ok {
			return dir
		}
	}
}
