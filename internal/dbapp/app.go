// internal/dbapp/app.go
package dbapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"

	"rackdec-core/rack"
	"rackdec/internal/appcore"
	"rackdec/internal/db"
	"rackdec/internal/dbcli"
	"rackdec/internal/logging"
	"rackdec/internal/version"
	"rackdec/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := dbcli.NewFlagSet("rackdec-db")
	fs.SetOutput(io.Discard)

	opts, err := dbcli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "rackdec-db version %s\n", version.Version)
		return 0
	}

	log, err := logging.New(opts.Verbose, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Sync() }()

	store, err := db.Open(opts.DB)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = store.Close() }()

	failed := 0
	if len(opts.Inputs) > 0 {
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

		if opts.Replace {
			if err := store.Clear(); err != nil {
				_, _ = fmt.Fprintln(stderr, err)
				return 3
			}
		}
		for _, r := range results {
			if err := store.InsertAnalysis(r.V); err != nil {
				failed++
				log.Warn("insert failed", zap.String("path", r.Path), zap.Error(err))
			}
		}
		log.Info("catalog loaded",
			zap.Int("racks", len(results)),
			zap.Int("failed", failed))
	}

	if opts.Stats {
		if err := printStats(outw, store); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}
	if opts.HasFilter() {
		rows, err := store.Search(db.Filter{
			Category:   opts.Category,
			DeviceType: opts.DeviceType,
			MacroName:  opts.MacroName,
			MinDevices: opts.MinDevices,
			MaxDevices: opts.MaxDevices,
		})
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		printRows(outw, rows)
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

func printRows(w io.Writer, rows []db.RackRow) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "USE CASE\tCATEGORY\tDEVICES\tCHAINS\tMACROS\tCOMPLEXITY")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
			r.UseCase, r.Category, r.TotalDevices, r.TotalChains, r.ActiveMacros, r.Complexity)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(w, "%d rack(s)\n", len(rows))
}

func printStats(w io.Writer, store *db.Store) error {
	st, err := store.Stats()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Racks:    %d\n", st.TotalRacks)
	_, _ = fmt.Fprintf(w, "Devices:  %d\n", st.TotalDevices)
	_, _ = fmt.Fprintf(w, "Macros:   %d\n", st.TotalMacros)
	_, _ = fmt.Fprintf(w, "Complexity: min %d / avg %.1f / max %d\n",
		st.MinComplexity, st.AvgComplexity, st.MaxComplexity)
	if len(st.PopularDevices) > 0 {
		_, _ = fmt.Fprintln(w, "Popular devices:")
		for _, dc := range st.PopularDevices {
			_, _ = fmt.Fprintf(w, "  %-24s %d\n", dc.Type, dc.Count)
		}
	}
	if len(st.Categories) > 0 {
		_, _ = fmt.Fprintln(w, "Categories:")
		for _, c := range sortedKeys(st.Categories) {
			_, _ = fmt.Fprintf(w, "  %-24s %d\n", c, st.Categories[c])
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
