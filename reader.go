package nb2html

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-nb2html/internal/exporter"
	"github.com/alnah/go-nb2html/internal/fileutil"
	"github.com/alnah/go-nb2html/internal/metadata"
	"github.com/alnah/go-nb2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Cleaner = (*pipeline.DOMCleaner)(nil)
	_ pipeline.Cleaner = pipeline.NopCleaner{}
	_ DocumentReader   = (*Reader)(nil)
)

// Article is the result of reading one notebook: the final HTML content
// and the resolved metadata, handed back to the host pipeline.
type Article struct {
	Content  string
	Metadata Metadata
}

// DocumentReader is the contract a host publishing pipeline consumes: one
// reader per set of file extensions.
type DocumentReader interface {
	Read(ctx context.Context, path string) (*Article, error)
	Extensions() []string
}

// Register wires a reader into the host's extension registry. Call once
// during pipeline setup.
func Register(registry map[string]DocumentReader, reader DocumentReader) {
	for _, ext := range reader.Extensions() {
		registry[ext] = reader
	}
}

// Option configures a Reader.
type Option func(*Reader)

// WithHighlighter replaces the default chroma code-cell highlighter.
func WithHighlighter(h Highlighter) Option {
	return func(r *Reader) { r.highlighter = h }
}

// withCleaner injects a cleaner; used by tests.
func withCleaner(c pipeline.Cleaner) Option {
	return func(r *Reader) { r.cleaner = c }
}

// Reader converts notebook files to HTML articles. Create with NewReader.
type Reader struct {
	settings    Settings
	highlighter Highlighter
	exporter    *exporter.Exporter
	cleaner     pipeline.Cleaner
	resolver    metadata.Resolver
	stopTags    []pipeline.StopTag
}

// NewReader creates a Reader. Settings are validated and the exporter,
// cleaner, and stop-tag set are resolved here, once, not per document.
func NewReader(settings Settings, opts ...Option) (*Reader, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	r := &Reader{settings: settings}
	for _, opt := range opts {
		opt(r)
	}

	exp, err := exporter.New(exporter.Options{
		Preprocessors: toExporterPreprocessors(settings.Preprocessors),
		TemplatePath:  settings.ExportTemplate,
		ColorScheme:   settings.ColorScheme,
		Highlighter:   exporter.Highlighter(r.highlighter),
	})
	if err != nil {
		return nil, err
	}
	r.exporter = exp

	if r.cleaner == nil {
		if settings.CleanMarkup {
			r.cleaner = pipeline.NewDOMCleaner(pipeline.CleanOptions{
				RemovePrompts:     settings.RemovePrompts,
				RemoveAnchorLinks: settings.RemoveAnchorLinks,
				RemoveCollapsers:  settings.RemoveCollapsers,
				SimplifyStructure: settings.SimplifyStructure,
				WrapMarkdownCells: settings.WrapMarkdownCells,
				AddPermalinks:     settings.AddPermalinks,
			})
		} else {
			r.cleaner = pipeline.NopCleaner{}
		}
	}

	r.resolver = metadata.Resolver{UseFirstCell: settings.UseFirstCellMetadata}
	r.stopTags = resolveStopTags(settings)
	return r, nil
}

// Extensions returns the file extensions this reader handles.
func (r *Reader) Extensions() []string {
	return []string{"ipynb"}
}

// Read converts the notebook at path into an article. Metadata resolution
// failures and exporter failures propagate to the caller; nothing is
// retried.
func (r *Reader) Read(ctx context.Context, path string) (*Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolution, err := r.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}
	meta := resolution.Metadata
	meta["jupyter_notebook"] = true

	content, info, err := r.exporter.ExportFile(path, resolution.Start, resolution.End)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err = r.cleaner.Clean(content)
	if err != nil {
		return nil, fmt.Errorf("cleaning markup: %w", err)
	}

	// Summary comes from the cleaned body, before CSS and scripts join it.
	if r.settings.GenerateSummary && !meta.Has("summary") {
		if summary, ok := pipeline.ExtractSummary(content, r.settings.SummaryMaxLength, r.stopTags); ok {
			meta["summary"] = summary
		}
	}

	content = pipeline.ComposeCSS(content, info.Inlining.CSS, r.settings.FixCSS, r.settings.SkipCSS)

	if r.settings.NotebookSaveAs != "" {
		if err := r.saveNotebookCopy(path, meta); err != nil {
			return nil, err
		}
	}

	return &Article{Content: content, Metadata: Metadata(meta)}, nil
}

// saveNotebookCopy copies the source notebook into the output tree and
// records the relative destination path under nb_path.
func (r *Reader) saveNotebookCopy(path string, meta metadata.Metadata) error {
	relative, err := expandPattern(r.settings.NotebookSaveAs, meta)
	if err != nil {
		return err
	}

	destination := filepath.Join(r.settings.OutputPath, filepath.FromSlash(relative))
	if err := fileutil.CopyFile(path, destination); err != nil {
		return fmt.Errorf("saving notebook copy: %w", err)
	}

	meta["nb_path"] = relative
	return nil
}

// patternField matches {field} placeholders in the notebook save pattern.
var patternField = regexp.MustCompile(`\{([a-zA-Z0-9_-]+)\}`)

// expandPattern substitutes metadata fields into a save pattern. Unknown
// fields are a configuration error, not a silent blank.
func expandPattern(pattern string, meta metadata.Metadata) (string, error) {
	var missing []string
	expanded := patternField.ReplaceAllStringFunc(pattern, func(match string) string {
		key := strings.ToLower(match[1 : len(match)-1])
		value, ok := meta[key]
		if !ok {
			missing = append(missing, key)
			return match
		}
		return fmt.Sprintf("%v", value)
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownPatternField, strings.Join(missing, ", "))
	}
	return expanded, nil
}

// resolveStopTags builds the effective stop-tag set: defaults unless
// replaced, plus any extensions.
func resolveStopTags(settings Settings) []pipeline.StopTag {
	var tags []pipeline.StopTag
	if settings.StopSummaryTags != nil {
		tags = toPipelineStopTags(settings.StopSummaryTags)
	} else {
		tags = pipeline.DefaultStopTags()
	}
	return append(tags, toPipelineStopTags(settings.ExtendStopSummaryTags)...)
}

// toPipelineStopTags converts public stop tags to internal pipeline ones.
func toPipelineStopTags(tags []StopTag) []pipeline.StopTag {
	out := make([]pipeline.StopTag, len(tags))
	for i, tag := range tags {
		out[i] = pipeline.StopTag{Tag: tag.Tag}
		if tag.Attr != nil {
			out[i].Attr = &pipeline.StopAttr{Key: tag.Attr.Key, Val: tag.Attr.Val}
		}
	}
	return out
}

// toExporterPreprocessors converts public preprocessors to internal ones.
func toExporterPreprocessors(pres []Preprocessor) []exporter.Preprocessor {
	out := make([]exporter.Preprocessor, len(pres))
	for i, pre := range pres {
		out[i] = exporter.Preprocessor(pre)
	}
	return out
}
