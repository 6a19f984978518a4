// Package exporter renders Jupyter notebooks to HTML.
//
// Markdown cells go through Goldmark; code cells go through a pluggable
// syntax highlighter (chroma by default). The rendered markup mirrors the
// structural jp-* classes emitted by JupyterLab's own exporter so that
// downstream cleanup and site themes can target familiar selectors.
package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-nb2html/notebook"
)

// Sentinel errors for export operations.
var (
	ErrMarkdownRender = errors.New("markdown cell rendering failed")
	ErrTemplateParse  = errors.New("export template parsing failed")
	ErrTemplateExec   = errors.New("export template execution failed")
)

// DefaultColorScheme is the chroma style used when none is configured.
const DefaultColorScheme = "friendly"

// Highlighter converts code-cell source to highlighted HTML. An empty
// language means the notebook declared none; implementations choose the
// fallback.
type Highlighter func(source, language string) (string, error)

// Preprocessor transforms a notebook before rendering. Implementations must
// treat the input as read-only and return a new notebook if they change it.
type Preprocessor func(*notebook.Notebook) (*notebook.Notebook, error)

// Info carries auxiliary data returned alongside the rendered HTML,
// notably the CSS fragments the host may inline.
type Info struct {
	Inlining Inlining
}

// Inlining holds CSS fragments to be inlined by the CSS normalizer.
type Inlining struct {
	CSS []string
}

// defaultTemplate wraps the rendered cell stream.
const defaultTemplate = `<div class="jp-Notebook" data-jp-theme-light="true">
{{.Body}}</div>
`

// templateData is the data passed to the export template.
type templateData struct {
	Body     template.HTML
	Metadata map[string]any
}

// Options configures an Exporter.
type Options struct {
	// Preprocessors run after the cell-range slice, in order.
	Preprocessors []Preprocessor
	// TemplatePath optionally replaces the built-in wrapper template.
	TemplatePath string
	// ColorScheme is a chroma style name; empty selects DefaultColorScheme.
	ColorScheme string
	// Highlighter overrides the default chroma highlighter.
	Highlighter Highlighter
}

// Exporter renders notebooks to HTML. Create with New.
type Exporter struct {
	md            goldmark.Markdown
	tmpl          *template.Template
	highlight     Highlighter
	colorScheme   string
	preprocessors []Preprocessor
}

// New creates an Exporter, parsing the template and resolving the
// highlighter once. Template errors surface here, not at render time.
func New(opts Options) (*Exporter, error) {
	tmplText := defaultTemplate
	tmplName := "notebook"
	if opts.TemplatePath != "" {
		data, err := readTemplate(opts.TemplatePath)
		if err != nil {
			return nil, err
		}
		tmplText = data
		tmplName = opts.TemplatePath
	}

	tmpl, err := template.New(tmplName).Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	scheme := opts.ColorScheme
	if scheme == "" {
		scheme = DefaultColorScheme
	}

	hl := opts.Highlighter
	if hl == nil {
		hl = ChromaHighlighter
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // heading IDs for permalinks
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
			// Raw HTML is expected inside notebook markdown cells.
			goldmarkhtml.WithUnsafe(),
		),
	)

	return &Exporter{
		md:            md,
		tmpl:          tmpl,
		highlight:     hl,
		colorScheme:   scheme,
		preprocessors: opts.Preprocessors,
	}, nil
}

// ExportFile loads a notebook file and renders the cell range [start, end).
// Use notebook.EndOfNotebook as end to render through the last cell.
// Any load, preprocessing, or template failure propagates unchanged.
func (e *Exporter) ExportFile(path string, start, end int) (string, *Info, error) {
	nb, err := notebook.Load(path)
	if err != nil {
		return "", nil, err
	}
	return e.Export(nb, start, end)
}

// Export renders the cell range [start, end) of nb.
func (e *Exporter) Export(nb *notebook.Notebook, start, end int) (string, *Info, error) {
	// Cell-range selection always runs first, then caller preprocessors in order.
	nb = notebook.Slice(nb, start, end)
	for _, pre := range e.preprocessors {
		var err error
		nb, err = pre(nb)
		if err != nil {
			return "", nil, fmt.Errorf("notebook preprocessor: %w", err)
		}
	}

	language := nb.Language()

	var body strings.Builder
	for _, cell := range nb.Cells {
		switch cell.Type {
		case notebook.CellTypeMarkdown:
			if err := e.writeMarkdownCell(&body, cell); err != nil {
				return "", nil, err
			}
		case notebook.CellTypeCode:
			if err := e.writeCodeCell(&body, cell, language); err != nil {
				return "", nil, err
			}
		case notebook.CellTypeRaw:
			// Raw cells pass through untouched, matching notebook semantics.
			body.WriteString(cell.Source.String())
			body.WriteString("\n")
		}
	}

	var out bytes.Buffer
	data := templateData{Body: template.HTML(body.String()), Metadata: nb.Metadata} // #nosec G203 -- body is rendered by this exporter
	if err := e.tmpl.Execute(&out, data); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTemplateExec, err)
	}

	info := &Info{Inlining: Inlining{CSS: e.cssFragments()}}
	return out.String(), info, nil
}

// cssFragments returns the base notebook CSS and the colorscheme CSS.
func (e *Exporter) cssFragments() []string {
	return []string{notebookCSS, colorSchemeCSS(e.colorScheme)}
}

// writeMarkdownCell renders one markdown cell wrapped in the structural
// markup JupyterLab uses for rendered markdown.
func (e *Exporter) writeMarkdownCell(w *strings.Builder, cell notebook.Cell) error {
	var rendered bytes.Buffer
	if err := e.md.Convert([]byte(cell.Source.String()), &rendered); err != nil {
		return fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}

	w.WriteString(`<div class="jp-Cell jp-MarkdownCell jp-Notebook-cell">` + "\n")
	w.WriteString(`<div class="jp-Cell-inputWrapper">` + "\n")
	w.WriteString(`<div class="jp-Collapser jp-InputCollapser jp-Cell-inputCollapser"></div>` + "\n")
	w.WriteString(`<div class="jp-InputArea jp-Cell-inputArea">` + "\n")
	w.WriteString(`<div class="jp-InputPrompt jp-InputArea-prompt"></div>` + "\n")
	w.WriteString(`<div class="jp-RenderedHTMLCommon jp-RenderedMarkdown text_cell_render" data-mime-type="text/markdown">` + "\n")
	w.Write(rendered.Bytes())
	w.WriteString("</div>\n</div>\n</div>\n</div>\n")
	return nil
}

// writeCodeCell renders one code cell: highlighted input plus outputs.
func (e *Exporter) writeCodeCell(w *strings.Builder, cell notebook.Cell, language string) error {
	highlighted, err := e.highlight(cell.Source.String(), cell.Language(language))
	if err != nil {
		return fmt.Errorf("highlighting code cell: %w", err)
	}

	w.WriteString(`<div class="jp-Cell jp-CodeCell jp-Notebook-cell">` + "\n")
	w.WriteString(`<div class="jp-Cell-inputWrapper">` + "\n")
	w.WriteString(`<div class="jp-Collapser jp-InputCollapser jp-Cell-inputCollapser"></div>` + "\n")
	w.WriteString(`<div class="jp-InputArea jp-Cell-inputArea">` + "\n")
	w.WriteString(fmt.Sprintf(`<div class="jp-InputPrompt jp-InputArea-prompt">%s</div>`+"\n", prompt("In", cell.ExecutionCount)))
	w.WriteString(`<div class="jp-CodeMirrorEditor jp-Editor jp-InputArea-editor" data-type="inline">` + "\n")
	w.WriteString(highlighted)
	w.WriteString("\n</div>\n</div>\n</div>\n")

	if len(cell.Outputs) > 0 {
		w.WriteString(`<div class="jp-Cell-outputWrapper">` + "\n")
		w.WriteString(`<div class="jp-Collapser jp-OutputCollapser jp-Cell-outputCollapser"></div>` + "\n")
		w.WriteString(`<div class="jp-OutputArea jp-Cell-outputArea">` + "\n")
		for _, out := range cell.Outputs {
			writeOutput(w, out)
		}
		w.WriteString("</div>\n</div>\n")
	}

	w.WriteString("</div>\n")
	return nil
}

// writeOutput renders a single code-cell output by MIME type.
func writeOutput(w *strings.Builder, out notebook.Output) {
	w.WriteString(`<div class="jp-OutputArea-child">` + "\n")
	w.WriteString(fmt.Sprintf(`<div class="jp-OutputPrompt jp-OutputArea-prompt">%s</div>`+"\n", prompt("Out", out.ExecutionCount)))

	switch {
	case out.Type == "stream":
		w.WriteString(`<div class="jp-RenderedText jp-OutputArea-output" data-mime-type="text/plain">`)
		w.WriteString("<pre>" + html.EscapeString(out.Text.String()) + "</pre>")
		w.WriteString("</div>\n")
	case out.Data["text/html"] != "":
		w.WriteString(`<div class="jp-RenderedHTMLCommon jp-RenderedHTML jp-OutputArea-output" data-mime-type="text/html">`)
		w.WriteString(out.Data["text/html"].String())
		w.WriteString("</div>\n")
	case out.Data["image/png"] != "":
		w.WriteString(`<div class="jp-RenderedImage jp-OutputArea-output" data-mime-type="image/png">`)
		w.WriteString(`<img src="data:image/png;base64,` + strings.TrimSpace(out.Data["image/png"].String()) + `"/>`)
		w.WriteString("</div>\n")
	case out.Data["text/plain"] != "":
		w.WriteString(`<div class="jp-RenderedText jp-OutputArea-output" data-mime-type="text/plain">`)
		w.WriteString("<pre>" + html.EscapeString(out.Data["text/plain"].String()) + "</pre>")
		w.WriteString("</div>\n")
	}

	w.WriteString("</div>\n")
}

// prompt formats an In/Out execution prompt. A nil count renders empty
// brackets, as JupyterLab does for unexecuted cells.
func prompt(kind string, count *int) string {
	if count == nil {
		return kind + "&nbsp;[&nbsp;]:"
	}
	return fmt.Sprintf("%s&nbsp;[%d]:", kind, *count)
}

// colorSchemeCSS renders the chroma style CSS for the configured scheme,
// rescoped from .chroma to the notebook's highlight container class so the
// rules cannot collide with a site theme's own highlighter styles.
func colorSchemeCSS(scheme string) string {
	style := styles.Get(scheme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, style); err != nil {
		// Chroma only fails here on writer errors; bytes.Buffer never does.
		return ""
	}
	return strings.ReplaceAll(buf.String(), ".chroma", ".highlight-ipynb")
}
