package exporter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultLanguage is assumed when a code cell declares no language.
const DefaultLanguage = "python"

// ChromaHighlighter is the default Highlighter. The output container is
// relabeled highlight-ipynb and the pre element gets class "ipynb" so the
// notebook's highlighting CSS cannot collide with the host theme's.
func ChromaHighlighter(source, language string) (string, error) {
	if language == "" {
		language = DefaultLanguage
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenising %s source: %w", language, err)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)

	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return "", fmt.Errorf("formatting %s source: %w", language, err)
	}

	return `<div class="highlight-ipynb"><pre class="ipynb">` + buf.String() + `</pre></div>`, nil
}

// readTemplate loads a custom export template file.
func readTemplate(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- template path is caller-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return string(data), nil
}
