// Package pipeline post-processes exported notebook HTML: CSS composition,
// DOM cleanup, and summary extraction.
package pipeline

import (
	"regexp"
	"strings"
)

// MathJaxScript is the math-rendering bootstrap appended to every article.
// The guard id keeps pages with several notebook articles from loading the
// library more than once.
const MathJaxScript = `
<script type="text/javascript">if (!document.getElementById('mathjaxscript-nb2html')) {
    var mathjaxscript = document.createElement('script');
    mathjaxscript.id = 'mathjaxscript-nb2html';
    mathjaxscript.type = 'text/javascript';
    mathjaxscript.src = '//cdnjs.cloudflare.com/ajax/libs/mathjax/2.7.1/MathJax.js?config=TeX-AMS-MML_HTMLorMML';
    mathjaxscript[(window.opera ? "innerHTML" : "text")] =
        "MathJax.Hub.Config({" +
        "    config: ['MMLorHTML.js']," +
        "    TeX: { extensions: ['AMSmath.js','AMSsymbols.js','noErrors.js','noUndefined.js'], equationNumbers: { autoNumber: 'AMS' } }," +
        "    jax: ['input/TeX','input/MathML','output/HTML-CSS']," +
        "    extensions: ['tex2jax.js','mml2jax.js','MathMenu.js','MathZoom.js']," +
        "    displayAlign: 'center'," +
        "    displayIndent: '0em'," +
        "    showMathMenu: true," +
        "    tex2jax: { " +
        "        inlineMath: [ ['$','$'] ], " +
        "        displayMath: [ ['$$','$$'] ]," +
        "        processEscapes: true," +
        "        preview: 'TeX'," +
        "    }, " +
        "    'HTML-CSS': { " +
        " linebreaks: { automatic: true, width: '95% container' }, " +
        "        styles: { '.MathJax_Display, .MathJax .mo, .MathJax .mi, .MathJax .mn': {color: 'black ! important'} }" +
        "    } " +
        "}); ";
    (document.body || document.getElementsByTagName('head')[0]).appendChild(mathjaxscript);
}
</script>
`

// Section markers in the exporter's stylesheet. filterCSS cuts on these, so
// the text must match the stylesheet byte for byte.
const (
	notebookSectionMarker = "/*!\n*\n* IPython notebook\n*\n*/"
	webappSectionMarker   = "/*!\n*\n* IPython notebook webapp\n*\n*/"
)

// Precompiled noise patterns removed by filterCSS.
var (
	// Near-black color declarations (color:#0, color:#000, color:#000000, ...)
	nearBlackColor = regexp.MustCompile(`color\:\#0+(;)?`)

	// rendered_html class blocks that fight with site themes.
	renderedHTMLBlock = regexp.MustCompile(`\.rendered_html[a-z0-9,._ ]*\{[a-z0-9:;%.#\-\s\n]+\}`)
)

// ComposeCSS assembles the final article markup from the exported body and
// the exporter's CSS fragments.
//
// ignoreCSS omits the CSS entirely and short-circuits fixCSS. fixCSS narrows
// each fragment to the notebook section and strips known noise; otherwise
// fragments are inlined unfiltered. The result is always CSS blocks (if
// any), then the body, then the MathJax bootstrap, in that order.
func ComposeCSS(content string, cssFragments []string, fixCSS, ignoreCSS bool) string {
	if ignoreCSS {
		return content + MathJaxScript
	}

	blocks := make([]string, 0, len(cssFragments))
	for _, fragment := range cssFragments {
		if fixCSS {
			blocks = append(blocks, filterCSS(fragment))
		} else {
			blocks = append(blocks, styleTag(fragment))
		}
	}

	return strings.Join(blocks, "\n") + content + MathJaxScript
}

// filterCSS narrows a stylesheet to the notebook-specific section and
// removes noise declarations. Fragments without the markers pass through
// with only the regex cleanup; malformed CSS simply fails to match.
func filterCSS(style string) string {
	// Keep only the IPython notebook section.
	if index := strings.Index(style, notebookSectionMarker); index > 0 {
		style = style[index:]
	}

	// Drop the webapp section if present.
	if index := strings.Index(style, webappSectionMarker); index > 0 {
		style = style[:index]
	}

	style = nearBlackColor.ReplaceAllString(style, "")
	style = renderedHTMLBlock.ReplaceAllString(style, "")
	return styleTag(style)
}

// styleTag wraps CSS in a style element.
func styleTag(styles string) string {
	return `<style type="text/css">` + styles + `</style>`
}
