// internal/reportapp/app.go
package reportapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"rackdec-core/rack"
	"rackdec/internal/appcore"
	"rackdec/internal/logging"
	"rackdec/internal/report"
	"rackdec/internal/reportcli"
	"rackdec/internal/version"
	"rackdec/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := reportcli.NewFlagSet("rackdec-report")
	fs.SetOutput(io.Discard)

	opts, err := reportcli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			_ = outw.Flush()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		_ = outw.Flush()
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "rackdec-report version %s\n", version.Version)
		return 0
	}

	log, err := logging.New(opts.Verbose, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Sync() }()

	var (
		lib    *report.Library
		failed int
	)
	if opts.FromJSON {
		lib = report.NewLibrary(nil)
		for _, dir := range opts.Inputs {
			sub, err := report.LoadDir(dir)
			if err != nil {
				_, _ = fmt.Fprintln(stderr, err)
				return 3
			}
			for _, v := range sub.Items() {
				lib.Add(v)
			}
		}
	} else {
		reg, err := appcore.BuildRegistry(opts.DeviceFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		paths, err := appcore.ResolveInputs(opts.Inputs, opts.Recursive)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		results, nfail, err := appcore.DecodeAll(parent, rack.New(reg), paths, opts.Threads, log)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return 130
			}
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		failed = nfail
		lib = report.NewLibrary(nil)
		for _, r := range results {
			lib.Add(r.V)
		}
	}
	if lib.Len() == 0 {
		log.Warn("no analyses loaded")
		return 0
	}

	if err := runReport(outw, lib, opts); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
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

func runReport(w io.Writer, lib *report.Library, opts reportcli.Options) error {
	switch opts.Report {
	case reportcli.ReportDevices:
		printCounts(w, "Device popularity:", capCounts(lib.DevicePopularity(), opts.Limit))
	case reportcli.ReportCombos:
		printCounts(w, "Device combinations:", capCounts(lib.DeviceCombinations(opts.MinCount), opts.Limit))
	case reportcli.ReportMacros:
		printCounts(w, "Macro name patterns:", capCounts(lib.MacroPatterns(), opts.Limit))
	case reportcli.ReportSimilar:
		sims, err := lib.Similar(opts.Similar, opts.Limit)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Racks similar to %q:\n", opts.Similar)
		for _, s := range sims {
			_, _ = fmt.Fprintf(w, "  %-40s %.2f  (shared: %v)\n", s.UseCase, s.Score, s.Shared)
		}
	case reportcli.ReportSearch:
		matches := lib.FindByKeywords(opts.Keywords)
		_, _ = fmt.Fprintf(w, "Racks matching %v:\n", opts.Keywords)
		for _, m := range matches {
			_, _ = fmt.Fprintf(w, "  %s\n", m)
		}
	case reportcli.ReportPath:
		_, _ = fmt.Fprintln(w, "Learning path (simplest first):")
		for i, e := range lib.LearningPath() {
			_, _ = fmt.Fprintf(w, "  %2d. %-40s complexity %d\n", i+1, e.UseCase, e.Complexity)
		}
	}
	return nil
}

func capCounts(counts []report.Count, limit int) []report.Count {
	if limit > 0 && len(counts) > limit {
		return counts[:limit]
	}
	return counts
}

func printCounts(w io.Writer, title string, counts []report.Count) {
	_, _ = fmt.Fprintln(w, title)
	for _, c := range counts {
		_, _ = fmt.Fprintf(w, "  %-40s %d\n", c.Name, c.Count)
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
