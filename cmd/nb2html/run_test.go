package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testNotebook = `{
	"cells": [
		{"cell_type": "markdown", "source": ["# Converted Post\n", "- tags: demo\n"]},
		{"cell_type": "code", "source": "print('hello')"}
	],
	"nbformat": 4,
	"nbformat_minor": 5
}`

func TestParseFlags(t *testing.T) {
	t.Parallel()

	flags, inputs, err := parseFlags([]string{
		"-c", "site", "-o", "out.html", "--first-cell",
		"--colorscheme", "monokai", "--summary-length", "30",
		"--no-fix-css", "-q", "a.ipynb", "b.ipynb",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if flags.config != "site" || flags.output != "out.html" {
		t.Errorf("config/output = %q / %q", flags.config, flags.output)
	}
	if !flags.firstCell || !flags.noFixCSS || !flags.quiet {
		t.Error("boolean flags not parsed")
	}
	if flags.colorScheme != "monokai" || flags.summaryLength != 30 {
		t.Errorf("colorscheme/summary-length = %q / %d", flags.colorScheme, flags.summaryLength)
	}
	if len(inputs) != 2 || inputs[0] != "a.ipynb" {
		t.Errorf("inputs = %v", inputs)
	}
}

func TestBuildSettings_FlagOverrides(t *testing.T) {
	t.Parallel()

	flags := &cliFlags{
		firstCell:     true,
		colorScheme:   "monokai",
		noFixCSS:      true,
		skipCSS:       true,
		noSummary:     true,
		summaryLength: 10,
		noClean:       true,
		permalinks:    true,
		saveNotebook:  "nb/{slug}.ipynb",
		outputPath:    "/tmp/out",
	}

	settings, err := buildSettings(flags)
	if err != nil {
		t.Fatalf("buildSettings: %v", err)
	}

	if !settings.UseFirstCellMetadata || settings.ColorScheme != "monokai" {
		t.Error("first-cell/colorscheme overrides not applied")
	}
	if settings.FixCSS || !settings.SkipCSS || settings.GenerateSummary || settings.CleanMarkup {
		t.Error("negative flag overrides not applied")
	}
	if settings.SummaryMaxLength != 10 {
		t.Errorf("SummaryMaxLength = %d", settings.SummaryMaxLength)
	}
	if !settings.AddPermalinks {
		t.Error("permalinks override not applied")
	}
	if settings.NotebookSaveAs != "nb/{slug}.ipynb" || settings.OutputPath != "/tmp/out" {
		t.Error("notebook copy overrides not applied")
	}
}

func TestOutputPathFor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{
			name:   "default alongside input",
			output: "",
			input:  filepath.Join("content", "post.ipynb"),
			want:   filepath.Join("content", "post.html"),
		},
		{
			name:   "explicit file",
			output: filepath.Join(dir, "article.html"),
			input:  "post.ipynb",
			want:   filepath.Join(dir, "article.html"),
		},
		{
			name:   "existing directory",
			output: dir,
			input:  filepath.Join("content", "post.ipynb"),
			want:   filepath.Join(dir, "post.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := outputPathFor(tt.output, tt.input); got != tt.want {
				t.Errorf("outputPathFor(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&cliFlags{version: true}, nil, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "nb2html") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_NoInputs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&cliFlags{}, nil, &stdout, &stderr)
	if !errors.Is(err, ErrNoInputs) {
		t.Errorf("got %v, want ErrNoInputs", err)
	}
	if !strings.Contains(stderr.String(), "Usage") {
		t.Error("usage must be printed when no inputs are given")
	}
}

func TestRun_ConvertsNotebook(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := filepath.Join(dir, "post.ipynb")
	if err := os.WriteFile(nbPath, []byte(testNotebook), 0o600); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(t.TempDir(), "post.html")
	flags := &cliFlags{output: outPath, firstCell: true, quiet: true, printMetadata: true}

	var stdout, stderr bytes.Buffer
	if err := run(flags, []string{nbPath}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	html, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(html), "highlight-ipynb") {
		t.Error("converted article missing highlighted code")
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet run wrote to stderr: %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "title:") && !strings.Contains(stdout.String(), "Converted Post") {
		t.Errorf("metadata not printed: %q", stdout.String())
	}
}

func TestRun_MissingNotebook(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	flags := &cliFlags{quiet: true}
	err := run(flags, []string{filepath.Join(t.TempDir(), "absent.ipynb")}, &stdout, &stderr)
	if err == nil {
		t.Error("expected error for missing notebook")
	}
}
