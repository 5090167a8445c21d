// internal/appcore/appcore.go

// Package appcore holds the decode plumbing shared by the rackdec
// binaries: registry construction, input resolution and the batch
// decode loop.
package appcore

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"go.uber.org/zap"

	"rackdec-core/rack"
	"rackdec/internal/output"
	"rackdec/internal/pipeline"
	"rackdec/internal/scan"
	"rackdec/pkg/api"
)

// Decoded pairs a source path with its wire-schema analysis.
type Decoded struct {
	Path string
	V    api.RackAnalysisV1
}

// BuildRegistry returns the builtin device registry, merged with the
// YAML overlay at deviceFile when one is given.
func BuildRegistry(deviceFile string) (*rack.Registry, error) {
	reg := rack.NewRegistry()
	if deviceFile == "" {
		return reg, nil
	}
	fh, err := os.Open(deviceFile)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	merged, err := reg.LoadOverlay(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", deviceFile, err)
	}
	return merged, nil
}

// ResolveInputs expands file and directory arguments to a flat list
// of preset paths.
func ResolveInputs(inputs []string, recursive bool) ([]string, error) {
	var paths []string
	for _, in := range inputs {
		found, err := scan.FindRackFiles(in, recursive)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

// DecodeAll decodes paths concurrently and returns the results sorted
// by path, plus the number of files that failed to decode. Per-file
// failures and decode warnings go to the logger; only cancellation or
// a collector error aborts.
func DecodeAll(ctx context.Context, dec *rack.Decoder, paths []string, threads int, log *zap.Logger) ([]Decoded, int, error) {
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	var (
		results []Decoded
		failed  int
	)
	err := pipeline.ForEach(ctx, pipeline.Config{Workers: threads}, paths, dec,
		func(res pipeline.Result) error {
			if res.Err != nil {
				failed++
				log.Warn("decode failed", zap.String("path", res.Path), zap.Error(res.Err))
				return nil
			}
			for _, w := range res.Analysis.Warnings {
				log.Debug("decode warning",
					zap.String("path", res.Path),
					zap.String("element", w.Element),
					zap.String("reason", w.Reason))
			}
			results = append(results, Decoded{Path: res.Path, V: output.ToAPI(res.Analysis)})
			return nil
		})
	if err != nil {
		return nil, failed, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, failed, nil
}
