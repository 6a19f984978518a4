package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-nb2html/notebook"
)

const minimalNotebook = `{
	"cells": [
		{"cell_type": "markdown", "source": ["# My Post\n", "- tags: demo\n", "- category: testing\n"]},
		{"cell_type": "code", "source": "print('hi')"}
	],
	"nbformat": 4,
	"nbformat_minor": 5
}`

func writeNotebook(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolve_Sidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "post.ipynb", minimalNotebook)
	writeNotebook(t, dir, "post.nbdata", "title: Sidecar Title\ntags: demo\n")

	res, err := Resolver{}.Resolve(nbPath)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := res.Metadata["title"]; got != "Sidecar Title" {
		t.Errorf("title = %v", got)
	}
	if res.Start != 0 || res.End != notebook.EndOfNotebook {
		t.Errorf("range = [%d, %d), want full notebook", res.Start, res.End)
	}
}

func TestResolve_SidecarFrontmatter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "post.ipynb", minimalNotebook)
	writeNotebook(t, dir, "post.nbdata", "---\ntitle: Fenced Title\n---\ntrailing prose\n")

	res, err := Resolver{}.Resolve(nbPath)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := res.Metadata["title"]; got != "Fenced Title" {
		t.Errorf("title = %v", got)
	}
}

func TestResolve_FirstCell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "post.ipynb", minimalNotebook)

	res, err := Resolver{UseFirstCell: true}.Resolve(nbPath)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := res.Metadata["title"]; got != "My Post" {
		t.Errorf("title = %v", got)
	}
	if got := res.Metadata["tags"]; got != "demo" {
		t.Errorf("tags = %v", got)
	}
	if got := res.Metadata["category"]; got != "testing" {
		t.Errorf("category = %v", got)
	}
	// The metadata cell itself must not be rendered.
	if res.Start != 1 {
		t.Errorf("start = %d, want 1", res.Start)
	}
}

func TestResolve_SidecarWinsOverFirstCell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "post.ipynb", minimalNotebook)
	writeNotebook(t, dir, "post.nbdata", "title: Sidecar Title\n")

	res, err := Resolver{UseFirstCell: true}.Resolve(nbPath)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := res.Metadata["title"]; got != "Sidecar Title" {
		t.Errorf("title = %v, want the sidecar value", got)
	}
	if res.Start != 0 {
		t.Errorf("start = %d, sidecar path must render from the top", res.Start)
	}
}

func TestResolve_NoMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "post.ipynb", minimalNotebook)

	_, err := Resolver{}.Resolve(nbPath)
	if !errors.Is(err, ErrNoMetadata) {
		t.Errorf("got %v, want ErrNoMetadata", err)
	}
}

func TestResolve_EmptyNotebook(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "empty.ipynb", `{"cells": [], "nbformat": 4}`)

	_, err := Resolver{UseFirstCell: true}.Resolve(nbPath)
	if !errors.Is(err, ErrEmptyNotebook) {
		t.Errorf("got %v, want ErrEmptyNotebook", err)
	}
}

func TestResolve_SubcellsOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sidecar   string
		wantStart int
		wantEnd   int
	}{
		{name: "pair string", sidecar: "title: T\nsubcells: (2, 5)\n", wantStart: 2, wantEnd: 5},
		{name: "bracket string", sidecar: "title: T\nsubcells: \"[1, 4]\"\n", wantStart: 1, wantEnd: 4},
		{name: "yaml sequence", sidecar: "title: T\nsubcells: [3, 7]\n", wantStart: 3, wantEnd: 7},
		{name: "open end", sidecar: "title: T\nsubcells: (2, None)\n", wantStart: 2, wantEnd: notebook.EndOfNotebook},
		{name: "null end in sequence", sidecar: "title: T\nsubcells: [2, null]\n", wantStart: 2, wantEnd: notebook.EndOfNotebook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			nbPath := writeNotebook(t, dir, "post.ipynb", minimalNotebook)
			writeNotebook(t, dir, "post.nbdata", tt.sidecar)

			res, err := Resolver{}.Resolve(nbPath)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if res.Start != tt.wantStart || res.End != tt.wantEnd {
				t.Errorf("range = [%d, %d), want [%d, %d)", res.Start, res.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolve_InvalidSubcells(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "post.ipynb", minimalNotebook)
	writeNotebook(t, dir, "post.nbdata", "title: T\nsubcells: nonsense\n")

	_, err := Resolver{}.Resolve(nbPath)
	if !errors.Is(err, ErrInvalidSubcells) {
		t.Errorf("got %v, want ErrInvalidSubcells", err)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		key   string
		want  any
	}{
		{name: "header block", input: "Title: Mixed Case Key\n", key: "title", want: "Mixed Case Key"},
		{name: "header stops at blank line", input: "title: Header\n\nnotbody: ignored\n", key: "title", want: "Header"},
		{name: "fenced frontmatter", input: "---\ntitle: Fenced\n---\nbody\n", key: "title", want: "Fenced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := meta[tt.key]; got != tt.want {
				t.Errorf("%s = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestParse_BodyKeysExcluded(t *testing.T) {
	t.Parallel()

	meta, err := Parse([]byte("title: Header\n\nnotbody: ignored\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if meta.Has("notbody") {
		t.Error("keys after the first blank line must not be metadata")
	}
}

func TestMetadata_Has(t *testing.T) {
	t.Parallel()

	meta := Metadata{"title": "T", "Summary": "s"}

	if !meta.Has("TITLE") || !meta.Has("summary") {
		t.Error("Has must ignore case")
	}
	if meta.Has("absent") {
		t.Error("Has must be false for missing keys")
	}
}
