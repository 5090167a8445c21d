// internal/writers/formats.go
package writers

import (
	"encoding/json"
	"io"

	"rackdec/internal/jsonlutil"
	"rackdec/internal/output"
	"rackdec/pkg/api"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

func init() {
	Register(FormatText, output.WriteText)
	Register(FormatJSON, output.WriteJSON)
	Register(FormatJSONL, writeJSONLBatch)
}

func writeJSONLBatch(w io.Writer, list []api.RackAnalysisV1) error {
	enc := json.NewEncoder(w)
	for _, a := range list {
		if err := enc.Encode(a); err != nil {
			return err
		}
	}
	return nil
}

// StartJSONLWriter streams each analysis as one JSON line. The
// decoder driver feeds it from the pipeline collector for unsorted
// jsonl output, so results hit the wire before the batch finishes.
func StartJSONLWriter(out io.Writer, bufSize int) (chan<- api.RackAnalysisV1, <-chan error) {
	return jsonlutil.Start[api.RackAnalysisV1](out, bufSize,
		func(enc *json.Encoder, a api.RackAnalysisV1) error {
			return enc.Encode(a)
		},
		IsBrokenPipe,
	)
}
