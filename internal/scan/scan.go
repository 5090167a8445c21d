// internal/scan/scan.go
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsRackFile reports whether path has a Live rack preset extension.
func IsRackFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".adg", ".adv":
		return true
	}
	return false
}

// FindRackFiles resolves one input argument to preset files. A file
// argument must itself be a preset; a directory is searched
// (recursively unless told otherwise) and the matches returned
// sorted for stable batch order.
func FindRackFiles(path string, recursive bool) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		if !IsRackFile(path) {
			return nil, fmt.Errorf("%s: not a rack preset (.adg/.adv)", path)
		}
		return []string{path}, nil
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsRackFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && IsRackFile(e.Name()) {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
