package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nb2html/internal/fileutil"
	"github.com/alnah/go-nb2html/internal/yamlutil"

	nb2html "github.com/alnah/go-nb2html"
)

// ErrNoInputs indicates no notebook files were given.
var ErrNoInputs = errors.New("no input notebooks given")

// run converts each input notebook and writes the results.
func run(flags *cliFlags, inputs []string, stdout, stderr io.Writer) error {
	if flags.version {
		fmt.Fprintf(stdout, "nb2html %s\n", Version)
		return nil
	}

	if len(inputs) == 0 {
		printUsage(stderr)
		return ErrNoInputs
	}

	settings, err := buildSettings(flags)
	if err != nil {
		return err
	}

	reader, err := nb2html.NewReader(settings)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, input := range inputs {
		if err := convertOne(ctx, reader, flags, input, stdout, stderr); err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
	}
	return nil
}

// buildSettings merges the optional config file with flag overrides.
// Flags win over the file; the file wins over defaults.
func buildSettings(flags *cliFlags) (nb2html.Settings, error) {
	settings := nb2html.DefaultSettings()

	if flags.config != "" {
		cfg, err := LoadConfig(flags.config)
		if err != nil {
			return settings, err
		}
		settings = cfg.Settings()
	}

	if flags.firstCell {
		settings.UseFirstCellMetadata = true
	}
	if flags.colorScheme != "" {
		settings.ColorScheme = flags.colorScheme
	}
	if flags.template != "" {
		settings.ExportTemplate = flags.template
	}
	if flags.noFixCSS {
		settings.FixCSS = false
	}
	if flags.skipCSS {
		settings.SkipCSS = true
	}
	if flags.noSummary {
		settings.GenerateSummary = false
	}
	if flags.summaryLength > 0 {
		settings.SummaryMaxLength = flags.summaryLength
	}
	if flags.noClean {
		settings.CleanMarkup = false
	}
	if flags.permalinks {
		settings.AddPermalinks = true
	}
	if flags.saveNotebook != "" {
		settings.NotebookSaveAs = flags.saveNotebook
	}
	if flags.outputPath != "" {
		settings.OutputPath = flags.outputPath
	}

	return settings, nil
}

// convertOne reads a single notebook and writes its article HTML.
func convertOne(ctx context.Context, reader *nb2html.Reader, flags *cliFlags, input string, stdout, stderr io.Writer) error {
	if !fileutil.FileExists(input) {
		return fmt.Errorf("notebook not found: %s", input)
	}

	article, err := reader.Read(ctx, input)
	if err != nil {
		return err
	}

	outPath := outputPathFor(flags.output, input)
	if err := os.WriteFile(outPath, []byte(article.Content), 0o600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !flags.quiet {
		fmt.Fprintf(stderr, "%s -> %s\n", input, outPath)
	}

	if flags.printMetadata {
		data, err := yamlutil.Marshal(article.Metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}
		fmt.Fprintf(stdout, "---\n%s---\n", data)
	}
	return nil
}

// outputPathFor resolves where the article HTML lands: an explicit file
// path, a directory, or next to the input with an .html extension.
func outputPathFor(output, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".html"

	switch {
	case output == "":
		return filepath.Join(filepath.Dir(input), base)
	case isDirectory(output):
		return filepath.Join(output, base)
	default:
		return output
	}
}

// isDirectory returns true if path exists and is a directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// printUsage writes command usage to w.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: nb2html [flags] notebook.ipynb...

Converts Jupyter notebooks to HTML articles.

Flags:
  -c, --config string       config file name or path
  -o, --output string       output file or directory
      --first-cell          read metadata from the first notebook cell
      --colorscheme string  chroma style for code cells
      --template string     custom export template path
      --no-fix-css          inline exporter CSS unfiltered
      --skip-css            omit exporter CSS entirely
      --no-summary          disable summary generation
      --summary-length int  summary word bound (0 = default)
      --no-clean            disable DOM cleanup
      --permalinks          append # permalinks to headings
      --save-notebook path  copy notebook to this pattern under the output path
      --output-path string  output root for notebook copies
      --print-metadata      print resolved metadata as YAML
  -q, --quiet               only show errors
  -v, --verbose             show per-stage detail
      --version             print version and exit
`)
}
