package nb2html

import (
	"fmt"

	"github.com/alnah/go-nb2html/notebook"
)

// DefaultSummaryMaxLength is the word-count bound for generated summaries.
const DefaultSummaryMaxLength = 50

// Metadata is the string-keyed article attribute map returned to the host.
type Metadata map[string]any

// StopTag names an HTML tag, optionally qualified by one exact attribute
// match, that terminates summary accumulation.
type StopTag struct {
	Tag  string
	Attr *StopTagAttr
}

// StopTagAttr is an exact attribute condition on a stop tag.
type StopTagAttr struct {
	Key string
	Val string
}

// Highlighter converts code-cell source to highlighted HTML. The language
// is empty when the notebook declares none.
type Highlighter func(source, language string) (string, error)

// Preprocessor transforms a notebook before rendering. Implementations
// must treat the input as read-only and return a new notebook if they
// change it.
type Preprocessor func(*notebook.Notebook) (*notebook.Notebook, error)

// Settings enumerates every recognized option with its default. Create
// with DefaultSettings and adjust; NewReader validates once at startup.
type Settings struct {
	// UseFirstCellMetadata reads the first notebook cell as a metadata
	// block when no sidecar .nbdata file exists.
	UseFirstCellMetadata bool

	// Preprocessors are extra notebook transformations applied after the
	// cell-range slice, in order.
	Preprocessors []Preprocessor

	// ExportTemplate is an optional path to a custom wrapper template.
	ExportTemplate string

	// ColorScheme is the chroma style for code cells (default "friendly").
	ColorScheme string

	// FixCSS narrows exporter CSS to the notebook section and strips noise.
	FixCSS bool

	// SkipCSS omits exporter CSS entirely. Takes precedence over FixCSS.
	SkipCSS bool

	// GenerateSummary extracts a summary when the metadata has none.
	GenerateSummary bool

	// SummaryMaxLength is the summary word-count bound.
	SummaryMaxLength int

	// StopSummaryTags replaces the default stop-tag set when non-nil.
	StopSummaryTags []StopTag

	// ExtendStopSummaryTags appends to the stop-tag set.
	ExtendStopSummaryTags []StopTag

	// CleanMarkup enables DOM cleanup. When false the cleaner is a no-op.
	CleanMarkup bool

	// DOM cleanup toggles, each independent.
	RemovePrompts     bool
	RemoveAnchorLinks bool
	RemoveCollapsers  bool
	SimplifyStructure bool
	WrapMarkdownCells bool
	AddPermalinks     bool

	// NotebookSaveAs copies the source notebook into the output tree when
	// set. Fields in braces are substituted from metadata, e.g.
	// "notebooks/{slug}.ipynb".
	NotebookSaveAs string

	// OutputPath is the host's output root; required with NotebookSaveAs.
	OutputPath string
}

// DefaultSettings returns settings matching the stock behavior: CSS fixed,
// summaries generated, all cleanup operations on, no notebook copy.
func DefaultSettings() Settings {
	return Settings{
		FixCSS:            true,
		GenerateSummary:   true,
		SummaryMaxLength:  DefaultSummaryMaxLength,
		CleanMarkup:       true,
		RemovePrompts:     true,
		RemoveAnchorLinks: true,
		RemoveCollapsers:  true,
		SimplifyStructure: true,
		WrapMarkdownCells: true,
	}
}

// Validate checks the settings for configuration errors.
func (s Settings) Validate() error {
	if s.SummaryMaxLength <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSummaryLength, s.SummaryMaxLength)
	}
	if s.NotebookSaveAs != "" && s.OutputPath == "" {
		return ErrMissingOutputPath
	}
	for _, tags := range [][]StopTag{s.StopSummaryTags, s.ExtendStopSummaryTags} {
		for _, tag := range tags {
			if tag.Tag == "" {
				return ErrEmptyStopTag
			}
		}
	}
	return nil
}
