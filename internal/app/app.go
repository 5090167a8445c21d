// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"go.uber.org/zap"

	"rackdec-core/rack"
	"rackdec/internal/appcore"
	"rackdec/internal/cli"
	"rackdec/internal/logging"
	"rackdec/internal/output"
	"rackdec/internal/pipeline"
	"rackdec/internal/version"
	"rackdec/internal/writers"
	"rackdec/pkg/api"
)

// decoded pairs a source path with its wire-schema analysis so the
// batch can be sorted deterministically before rendering.
type decoded struct {
	Path string
	V    api.RackAnalysisV1
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewDecodeFlagSet("rackdec")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "rackdec version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log, err := logging.New(opts.Verbose, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Sync() }()

	reg, err := appcore.BuildRegistry(opts.DeviceFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	dec := rack.New(reg)

	paths, err := appcore.ResolveInputs(opts.Inputs, opts.Recursive)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if len(paths) == 0 {
		log.Warn("no rack preset files found")
		return 0
	}
	log.Debug("scanning complete", zap.Int("files", len(paths)))

	if opts.Output != "" && (opts.ExportXML || opts.ExportJSON) {
		if err := os.MkdirAll(opts.Output, 0o755); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	threads := opts.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	// Unsorted jsonl streams straight from the collector; every other
	// mode collects the batch first.
	var (
		jsonlCh   chan<- api.RackAnalysisV1
		jsonlDone <-chan error
	)
	streaming := opts.Format == cli.FormatJSONL && !opts.Sort
	if streaming {
		jsonlCh, jsonlDone = writers.StartJSONLWriter(outw, threads*2)
	}

	var (
		results []decoded
		failed  int
	)
	err = pipeline.ForEach(parent, pipeline.Config{Workers: threads}, paths, dec,
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
			v := output.ToAPI(res.Analysis)
			dir := opts.Output
			if dir == "" {
				dir = filepath.Dir(res.Path)
			}
			if opts.ExportXML {
				if _, err := writers.ExportXML(dir, res.Path); err != nil {
					failed++
					log.Warn("xml export failed", zap.String("path", res.Path), zap.Error(err))
				}
			}
			if opts.ExportJSON {
				if _, err := writers.ExportAnalysisJSON(dir, res.Path, v); err != nil {
					failed++
					log.Warn("json export failed", zap.String("path", res.Path), zap.Error(err))
				}
			}
			if streaming {
				jsonlCh <- v
				return nil
			}
			results = append(results, decoded{Path: res.Path, V: v})
			return nil
		})
	if streaming {
		close(jsonlCh)
		if e := <-jsonlDone; e != nil && !writers.IsBrokenPipe(e) {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	if !streaming {
		if opts.Sort {
			sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
		}
		list := make([]api.RackAnalysisV1, 0, len(results))
		for _, r := range results {
			list = append(list, r.V)
		}

		if err := writers.Write(opts.Format, outw, list); err != nil {
			if writers.IsBrokenPipe(err) {
				return 0
			}
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if failed > 0 {
		return 1
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
