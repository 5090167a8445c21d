// internal/writers/files.go
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rackdec-core/adg"
	"rackdec/internal/jsonutil"
	"rackdec/pkg/api"
)

// baseName strips directory and extension from a preset path.
func baseName(source string) string {
	b := filepath.Base(source)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// ExportAnalysisJSON writes one analysis as <base>_analysis.json
// under dir and returns the written path.
func ExportAnalysisJSON(dir, source string, v api.RackAnalysisV1) (string, error) {
	path := filepath.Join(dir, baseName(source)+"_analysis.json")
	fh, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := jsonutil.EncodePretty(fh, v); err != nil {
		_ = fh.Close()
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, fh.Close()
}

// ExportXML decompresses a preset and writes the raw XML as
// <base>.xml under dir.
func ExportXML(dir, source string) (string, error) {
	rc, err := adg.Open(source)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	path := filepath.Join(dir, baseName(source)+".xml")
	fh, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fh, rc); err != nil {
		_ = fh.Close()
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, fh.Close()
}
