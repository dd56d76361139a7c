package transcode

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ansel1/merry/v2"
)

var ErrIncompleteManifest = merry.Sentinel("manifest references missing slice file")

// AppendManifest adds one rendered slice to the concat manifest, creating the
// file on first use. Entries are in render order, which equals timeline order.
func AppendManifest(manifestPath, slicePath string) error {
	f, err := os.OpenFile(manifestPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "file '%s'\n", slicePath)
	return err
}

// WriteManifest writes the whole manifest in one go, replacing any previous
// one.
func WriteManifest(manifestPath string, slicePaths []string) error {
	var b strings.Builder
	for _, p := range slicePaths {
		fmt.Fprintf(&b, "file '%s'\n", p)
	}
	return os.WriteFile(manifestPath, []byte(b.String()), 0644)
}

// ReadManifest returns the slice paths listed in a concat manifest.
func ReadManifest(manifestPath string) ([]string, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		path := strings.TrimPrefix(line, "file ")
		path = strings.Trim(path, "'")
		entries = append(entries, path)
	}

	return entries, scanner.Err()
}
