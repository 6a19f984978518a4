// Package metadata resolves article metadata for a notebook, either from a
// sidecar .nbdata descriptor or from the notebook's first cell.
package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-nb2html/internal/fileutil"
	"github.com/alnah/go-nb2html/internal/yamlutil"
	"github.com/alnah/go-nb2html/notebook"
)

// SidecarExtension is the extension of the sidecar descriptor file expected
// beside the notebook, sharing its base name.
const SidecarExtension = ".nbdata"

// Sentinel errors for metadata resolution.
var (
	ErrNoMetadata      = errors.New("could not find metadata in sidecar file or first notebook cell")
	ErrEmptyNotebook   = errors.New("notebook has no cells to read metadata from")
	ErrInvalidSubcells = errors.New("invalid subcells value")
)

// Metadata is the string-keyed article attribute map handed back to the
// host pipeline. Keys are lowercased on parse.
type Metadata map[string]any

// Has reports whether a key is present, ignoring case.
func (m Metadata) Has(key string) bool {
	key = strings.ToLower(key)
	for k := range m {
		if strings.ToLower(k) == key {
			return true
		}
	}
	return false
}

// Resolution is the outcome of metadata resolution: the attribute map and
// the cell range to render.
type Resolution struct {
	Metadata Metadata
	Start    int
	End      int // notebook.EndOfNotebook means "through the last cell"
}

// Resolver determines article metadata for a notebook file.
type Resolver struct {
	// UseFirstCell enables treating the first notebook cell as a metadata
	// block when no sidecar file exists.
	UseFirstCell bool
}

// First-cell rewriting: a Markdown title becomes a title: line, list
// bullets are stripped so each item reads as a metadata line.
var (
	headingLine = regexp.MustCompile(`(?m)^#+\s+`)
	bulletLine  = regexp.MustCompile(`(?m)^\s*[*+-]\s+`)
)

// Resolve determines the metadata map and cell range for the notebook at
// path. Entry paths in fixed priority order: sidecar descriptor, first
// notebook cell (if enabled), otherwise failure naming the file. A
// subcells key in the resolved metadata overrides the computed range.
func (r Resolver) Resolve(path string) (*Resolution, error) {
	res := &Resolution{Start: 0, End: notebook.EndOfNotebook}

	sidecar := sidecarPath(path)
	switch {
	case fileutil.FileExists(sidecar):
		meta, err := ParseFile(sidecar)
		if err != nil {
			return nil, fmt.Errorf("reading sidecar %s: %w", sidecar, err)
		}
		res.Metadata = meta

	case r.UseFirstCell:
		meta, err := firstCellMetadata(path)
		if err != nil {
			return nil, err
		}
		res.Metadata = meta
		// Skip the metadata cell during render.
		res.Start = 1

	default:
		return nil, fmt.Errorf("error processing %s: %w", path, ErrNoMetadata)
	}

	if raw, ok := res.Metadata["subcells"]; ok {
		start, end, err := parseSubcells(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		res.Start, res.End = start, end
	}

	return res, nil
}

// sidecarPath returns the descriptor path sharing the notebook's base name.
func sidecarPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + SidecarExtension
}

// firstCellMetadata reads the notebook's first cell as a metadata block.
// The rewritten cell text goes through a scratch file so the same
// structured-text reader serves both entry paths; the scratch file is
// removed on every exit path.
func firstCellMetadata(path string) (Metadata, error) {
	nb, err := notebook.Load(path)
	if err != nil {
		return nil, err
	}
	if len(nb.Cells) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyNotebook)
	}

	metacell := nb.Cells[0].Source.String()
	metacell = headingLine.ReplaceAllString(metacell, "title: ")
	metacell = bulletLine.ReplaceAllString(metacell, "")

	scratch, cleanup, err := fileutil.WriteTempFile(metacell, "nbdata")
	if err != nil {
		return nil, fmt.Errorf("writing metadata scratch file: %w", err)
	}
	defer cleanup()

	meta, err := ParseFile(scratch)
	if err != nil {
		return nil, fmt.Errorf("parsing first-cell metadata of %s: %w", path, err)
	}
	return meta, nil
}

// ParseFile reads a descriptor file and parses its metadata header.
func ParseFile(path string) (Metadata, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- descriptor path derives from the notebook path
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a metadata block. Content opening with a frontmatter fence
// is parsed as fenced frontmatter (YAML, TOML, or JSON); otherwise the
// leading header block (up to the first blank line) is decoded as YAML.
func Parse(data []byte) (Metadata, error) {
	raw := map[string]any{}

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("---")) {
		if _, err := frontmatter.Parse(bytes.NewReader(data), &raw); err != nil {
			return nil, fmt.Errorf("parsing frontmatter: %w", err)
		}
	} else {
		if err := yamlutil.Unmarshal(headerBlock(data), &raw); err != nil {
			return nil, fmt.Errorf("parsing metadata header: %w", err)
		}
	}

	meta := make(Metadata, len(raw))
	for key, value := range raw {
		meta[strings.ToLower(key)] = value
	}
	return meta, nil
}

// headerBlock cuts the content at the first blank line; everything after it
// is descriptor body text, not metadata.
func headerBlock(data []byte) []byte {
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if index := bytes.Index(normalized, []byte("\n\n")); index >= 0 {
		return normalized[:index]
	}
	return normalized
}
