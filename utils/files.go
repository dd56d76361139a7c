package utils

import (
	"os"
	"path/filepath"

	"github.com/ansel1/merry/v2"
	"github.com/samber/lo"
)

var ErrMissingMediaFile = merry.Sentinel("missing media file")

// FindUniqueFile returns the single file in dir carrying the given extension.
// Zero or multiple candidates means there is no usable default and the caller
// has to ask for an explicit path.
func FindUniqueFile(dir, ext string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	matches := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return !e.IsDir() && filepath.Ext(e.Name()) == ext
	})

	if len(matches) != 1 {
		return "", false
	}
	return filepath.Join(dir, matches[0].Name()), true
}

// CleanupWorkFiles removes slice files and the concat manifest left behind in
// dir. Returns the number of files removed; removal errors on individual
// files are not fatal.
func CleanupWorkFiles(dir string) (int, error) {
	slices, err := filepath.Glob(filepath.Join(dir, "slice_*.ts"))
	if err != nil {
		return 0, err
	}
	slices = append(slices, filepath.Join(dir, "concat_list.txt"))

	removed := 0
	for _, f := range slices {
		if err := os.Remove(f); err == nil {
			removed++
		}
	}
	return removed, nil
}
