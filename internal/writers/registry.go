// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"rackdec/pkg/api"
)

// AnalysisWriter renders a full batch of analyses to w.
type AnalysisWriter func(w io.Writer, list []api.RackAnalysisV1) error

var analysisWriters = map[string]AnalysisWriter{}

// Register adds a format handler (idempotent, last wins). Called from
// init() in the per-format files.
func Register(format string, fn AnalysisWriter) { analysisWriters[format] = fn }

// Write dispatches to the handler registered for format.
func Write(format string, w io.Writer, list []api.RackAnalysisV1) error {
	fn, ok := analysisWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, list)
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(analysisWriters))
	for f := range analysisWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
