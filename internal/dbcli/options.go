// internal/dbcli/options.go
package dbcli

import (
	"errors"
	"flag"
	"fmt"

	"rackdec/internal/version"
)

// Options holds all catalog CLI flags and arguments.
type Options struct {
	// Catalog
	DB      string
	Replace bool

	// Inputs (optional: stats/search work on an existing catalog)
	Inputs     []string
	Recursive  bool
	DeviceFile string
	Threads    int

	// Queries
	Stats      bool
	Category   string
	DeviceType string
	MacroName  string
	MinDevices int
	MaxDevices int

	// Logging
	Quiet   bool
	Verbose bool

	Version bool
}

// HasFilter reports whether any search constraint was given.
func (o Options) HasFilter() bool {
	return o.Category != "" || o.DeviceType != "" || o.MacroName != "" ||
		o.MinDevices > 0 || o.MaxDevices > 0
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: rack preset catalog (SQLite)

Version: %s

Usage: %s --db racks.db [options] [file-or-directory...]
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Catalog
	fs.StringVar(&opt.DB, "db", "", "SQLite catalog path [*]")
	fs.BoolVar(&opt.Replace, "replace", false, "clear the catalog before loading inputs [false]")

	// Inputs
	noRecursive := false
	fs.BoolVar(&noRecursive, "no-recursive", false, "do not descend into subdirectories [false]")
	fs.StringVar(&opt.DeviceFile, "devices", "", "YAML device-registry overlay file [none]")
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Queries
	fs.BoolVar(&opt.Stats, "stats", false, "print catalog statistics [false]")
	fs.StringVar(&opt.Category, "category", "", "filter racks by category")
	fs.StringVar(&opt.DeviceType, "device", "", "filter racks containing a device type")
	fs.StringVar(&opt.MacroName, "macro", "", "filter racks with a macro name (substring)")
	fs.IntVar(&opt.MinDevices, "min-devices", 0, "minimum device count [0]")
	fs.IntVar(&opt.MaxDevices, "max-devices", 0, "maximum device count (0 = unbounded) [0]")

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

	// Validation
	if opt.DB == "" {
		return opt, errors.New("--db is required")
	}
	if len(opt.Inputs) == 0 && !opt.Stats && !opt.HasFilter() {
		return opt, errors.New("provide inputs to load, --stats, or a search filter")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.MinDevices < 0 || opt.MaxDevices < 0 {
		return opt, errors.New("--min-devices/--max-devices must be ≥ 0")
	}
	if opt.Quiet && opt.Verbose {
		return opt, errors.New("-q conflicts with -v")
	}
	return opt, nil
}
