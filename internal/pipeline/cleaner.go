package pipeline

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cleaner applies DOM-level touch-ups to exported notebook HTML.
type Cleaner interface {
	Clean(content string) (string, error)
}

// NopCleaner leaves content untouched. It is the degraded-mode stand-in
// chosen at startup when DOM cleanup is disabled.
type NopCleaner struct{}

// Clean returns the input unchanged.
func (NopCleaner) Clean(content string) (string, error) { return content, nil }

// CleanOptions toggles the individual DOM transformations. All operations
// are independent; MIME-attribute stripping is always applied.
type CleanOptions struct {
	RemovePrompts     bool // drop In[]/Out[] prompt containers
	RemoveAnchorLinks bool // drop pilcrow heading self-links
	RemoveCollapsers  bool // drop empty collapser wrappers
	SimplifyStructure bool // unwrap structural wrapper divs
	WrapMarkdownCells bool // wrap rendered markdown in div.cell
	AddPermalinks     bool // append "#" permalinks to headings with ids
}

// DOMCleaner rewrites the notebook HTML tree with goquery.
type DOMCleaner struct {
	opts CleanOptions
}

// NewDOMCleaner creates a DOMCleaner with the given toggles.
func NewDOMCleaner(opts CleanOptions) *DOMCleaner {
	return &DOMCleaner{opts: opts}
}

// Structural wrapper classes unwrapped by SimplifyStructure. The editor
// wrappers carry no information once the notebook is published.
var unwrapClasses = []string{
	"jp-Cell-inputWrapper",
	"jp-Cell-outputWrapper",
	"jp-CodeMirrorEditor",
	"cm-editor",
}

// Clean applies the configured transformations and returns the rewritten
// HTML. Markup the parser cannot make sense of passes through untouched.
func (c *DOMCleaner) Clean(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		// Tolerated: unparseable markup is left as-is, never an error.
		return content, nil
	}

	if c.opts.RemovePrompts {
		doc.Find("div.jp-InputPrompt, div.jp-OutputPrompt").Remove()
	}

	if c.opts.RemoveAnchorLinks {
		doc.Find("a.anchor-link").Remove()
	}

	if c.opts.RemoveCollapsers {
		doc.Find("div.jp-Collapser").Remove()
	}

	if c.opts.SimplifyStructure {
		for _, class := range unwrapClasses {
			doc.Find("div." + class).Each(func(_ int, s *goquery.Selection) {
				unwrap(s)
			})
		}
	}

	if c.opts.WrapMarkdownCells {
		doc.Find("div.text_cell_render").Each(func(_ int, s *goquery.Selection) {
			outer := s.ParentsFiltered("div").First()
			if outer.Length() == 0 {
				// No ancestor div to wrap; leave the cell alone.
				return
			}
			outer.WrapHtml(`<div class="cell"></div>`)
		})
	}

	if c.opts.AddPermalinks {
		doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
			id, ok := s.Attr("id")
			if !ok || id == "" {
				return
			}
			s.AppendHtml(fmt.Sprintf(`<a class="anchor-link" href="#%s">#</a>`, html.EscapeString(id)))
		})
	}

	// The language class already encodes the content type.
	doc.Find("pre").RemoveAttr("data-mime-type")

	out, err := doc.Find("body").Html()
	if err != nil {
		return content, nil
	}
	return out, nil
}

// unwrap removes an element but keeps its children in place. Empty wrappers
// are removed entirely.
func unwrap(s *goquery.Selection) {
	contents := s.Contents()
	if contents.Length() == 0 {
		s.Remove()
		return
	}
	contents.Unwrap()
}
