// Package notebook models Jupyter notebook documents (.ipynb files).
//
// A notebook is an ordered list of cells. Cell sources and output text
// fields may be encoded in JSON either as a single string or as a list of
// line fragments; MultilineString accepts both forms.
package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Cell type tags used in the nbformat JSON schema.
const (
	CellTypeMarkdown = "markdown"
	CellTypeCode     = "code"
	CellTypeRaw      = "raw"
)

// ErrDecode indicates the notebook JSON could not be decoded.
var ErrDecode = errors.New("decoding notebook JSON failed")

// MultilineString is a string that unmarshals from either a JSON string or
// a JSON array of strings (joined without separators, as nbformat stores
// line fragments with their trailing newlines).
type MultilineString string

// UnmarshalJSON implements json.Unmarshaler.
func (m *MultilineString) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = MultilineString(single)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("multiline string: expected string or []string: %w", err)
	}
	*m = MultilineString(strings.Join(lines, ""))
	return nil
}

// String returns the joined text.
func (m MultilineString) String() string { return string(m) }

// Output is a single execution output attached to a code cell.
type Output struct {
	Type           string                     `json:"output_type"`
	Name           string                     `json:"name,omitempty"`
	Text           MultilineString            `json:"text,omitempty"`
	Data           map[string]MultilineString `json:"data,omitempty"`
	ExecutionCount *int                       `json:"execution_count,omitempty"`
}

// Cell is one notebook cell: markdown text, executable code with outputs,
// or raw passthrough content.
type Cell struct {
	Type           string          `json:"cell_type"`
	Source         MultilineString `json:"source"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
	Outputs        []Output        `json:"outputs,omitempty"`
	ExecutionCount *int            `json:"execution_count,omitempty"`
}

// Language returns the language declared on the cell, or empty.
func (c Cell) Language(fallback string) string {
	if lang, ok := c.Metadata["language"].(string); ok && lang != "" {
		return lang
	}
	return fallback
}

// Notebook is a decoded .ipynb document.
type Notebook struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	NBFormat      int            `json:"nbformat,omitempty"`
	NBFormatMinor int            `json:"nbformat_minor,omitempty"`
}

// Language returns the kernel language recorded in the notebook metadata,
// or empty if none is declared.
func (nb *Notebook) Language() string {
	info, ok := nb.Metadata["language_info"].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := info["name"].(string)
	return name
}

// Decode parses notebook JSON.
func Decode(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &nb, nil
}

// Load reads and decodes a notebook file.
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- notebook path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("reading notebook: %w", err)
	}
	nb, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}
