package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// cliFlags holds all command-line flags.
type cliFlags struct {
	config        string
	output        string
	quiet         bool
	verbose       bool
	version       bool
	printMetadata bool

	firstCell     bool
	colorScheme   string
	template      string
	noFixCSS      bool
	skipCSS       bool
	noSummary     bool
	summaryLength int
	noClean       bool
	permalinks    bool
	saveNotebook  string
	outputPath    string
}

// parseFlags parses command-line flags and returns the positional inputs.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("nb2html", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-stage detail")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVar(&f.printMetadata, "print-metadata", false, "print resolved metadata as YAML")

	fs.BoolVar(&f.firstCell, "first-cell", false, "read metadata from the first notebook cell")
	fs.StringVar(&f.colorScheme, "colorscheme", "", "chroma style for code cells")
	fs.StringVar(&f.template, "template", "", "custom export template path")
	fs.BoolVar(&f.noFixCSS, "no-fix-css", false, "inline exporter CSS unfiltered")
	fs.BoolVar(&f.skipCSS, "skip-css", false, "omit exporter CSS entirely")
	fs.BoolVar(&f.noSummary, "no-summary", false, "disable summary generation")
	fs.IntVar(&f.summaryLength, "summary-length", 0, "summary word bound (0 = default)")
	fs.BoolVar(&f.noClean, "no-clean", false, "disable DOM cleanup")
	fs.BoolVar(&f.permalinks, "permalinks", false, "append # permalinks to headings")
	fs.StringVar(&f.saveNotebook, "save-notebook", "", "copy notebook to this pattern under the output path")
	fs.StringVar(&f.outputPath, "output-path", "", "output root for notebook copies")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
