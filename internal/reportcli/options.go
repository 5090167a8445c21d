// internal/reportcli/options.go
package reportcli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"rackdec/internal/version"
)

// Report selectors
const (
	ReportDevices = "devices"
	ReportCombos  = "combos"
	ReportMacros  = "macros"
	ReportSimilar = "similar"
	ReportSearch  = "search"
	ReportPath    = "path"
)

// Options holds all report CLI flags and arguments.
type Options struct {
	// Inputs: rack files/dirs, or dirs of *_analysis.json with --from-json
	Inputs     []string
	FromJSON   bool
	Recursive  bool
	DeviceFile string
	Threads    int

	// Report selection
	Report   string
	Similar  string   // target use case for ReportSimilar
	Keywords []string // for ReportSearch, from remaining args of --search
	Limit    int
	MinCount int

	// Logging
	Quiet   bool
	Verbose bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: rack library analytics

Version: %s

Usage: %s [options] <file-or-directory>...
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	var keywords string

	// Inputs
	fs.BoolVar(&opt.FromJSON, "from-json", false, "inputs are directories of *_analysis.json files [false]")
	noRecursive := false
	fs.BoolVar(&noRecursive, "no-recursive", false, "do not descend into subdirectories [false]")
	fs.StringVar(&opt.DeviceFile, "devices", "", "YAML device-registry overlay file [none]")
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Report selection
	fs.StringVar(&opt.Report, "report", ReportDevices,
		"report: devices | combos | macros | similar | search | path [devices]")
	fs.StringVar(&opt.Similar, "similar", "", "target use case for --report similar")
	fs.StringVar(&keywords, "keywords", "", "comma-separated keywords for --report search")
	fs.IntVar(&opt.Limit, "limit", 10, "cap ranked output length (0 = unlimited) [10]")
	fs.IntVar(&opt.MinCount, "min-count", 2, "minimum occurrences for combo pairs [2]")

	// Logging
	fs.BoolVar(&opt.Quiet, "q", false, "errors only on stderr [false]")
	fs.BoolVar(&opt.Verbose, "v", false, "debug logging on stderr [false]")

	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Inputs = fs.Args()
	opt.Recursive = !noRecursive
	opt.Keywords = splitCSV(keywords)

	// Validation
	if len(opt.Inputs) == 0 {
		return opt, errors.New("at least one input is required")
	}
	switch opt.Report {
	case ReportDevices, ReportCombos, ReportMacros, ReportPath:
	case ReportSimilar:
		if opt.Similar == "" {
			return opt, errors.New("--report similar requires --similar <use case>")
		}
	case ReportSearch:
		if len(opt.Keywords) == 0 {
			return opt, errors.New("--report search requires --keywords")
		}
	default:
		return opt, fmt.Errorf("invalid --report %q", opt.Report)
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Limit < 0 || opt.MinCount < 0 {
		return opt, errors.New("--limit/--min-count must be ≥ 0")
	}
	if opt.Quiet && opt.Verbose {
		return opt, errors.New("-q conflicts with -v")
	}
	return opt, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
