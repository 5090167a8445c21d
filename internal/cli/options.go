// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"rackdec/internal/version"
)

// Output formats
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	Inputs    []string // rack preset files or directories
	Recursive bool     // true unless --no-recursive

	// Decoding
	DeviceFile string // YAML device-registry overlay

	// Performance
	Threads int

	// Output
	Output     string // export directory for --xml / --json-export
	Format     string
	ExportXML  bool
	ExportJSON bool
	Sort       bool

	// Logging
	Quiet   bool
	Verbose bool

	Version bool
}

// NewDecodeFlagSet returns a configured FlagSet with custom usage/help.
func NewDecodeFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: Ableton Live rack preset decoder

Version: %s

Usage: %s [options] <file-or-directory>...
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Decoding
	fs.StringVar(&opt.DeviceFile, "devices", "", "YAML device-registry overlay file [none]")
	noRecursive := false
	fs.BoolVar(&noRecursive, "no-recursive", false, "do not descend into subdirectories [false]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "", "directory for exported files (--xml/--json-export) [input dir]")
	fs.StringVar(&opt.Format, "format", FormatText, "output format: text | json | jsonl [text]")
	fs.BoolVar(&opt.ExportXML, "xml", false, "export decompressed XML alongside analysis [false]")
	fs.BoolVar(&opt.ExportJSON, "json-export", false, "write per-file <name>_analysis.json [false]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort results by path for determinism [false]")

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
	if len(opt.Inputs) == 0 {
		return opt, errors.New("at least one rack file or directory is required")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Quiet && opt.Verbose {
		return opt, errors.New("-q conflicts with -v")
	}
	switch opt.Format {
	case FormatText, FormatJSON, FormatJSONL:
	default:
		return opt, fmt.Errorf("invalid --format %q", opt.Format)
	}
	return opt, nil
}
