// Package nb2html converts Jupyter notebooks to HTML articles for
// static-site publishing pipelines.
//
// # Quick Start
//
// Create a reader and read a notebook:
//
//	reader, err := nb2html.NewReader(nb2html.DefaultSettings())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	article, err := reader.Read(ctx, "posts/analysis.ipynb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(article.Metadata["title"])
//	os.WriteFile("analysis.html", []byte(article.Content), 0644)
//
// # Conversion Pipeline
//
// Reading a notebook follows these stages:
//
//  1. Metadata resolution (sidecar .nbdata file or first notebook cell)
//  2. Notebook to HTML export via Goldmark and chroma (cell range applied)
//  3. DOM cleanup (prompt removal, wrapper unwrapping, permalinks)
//  4. Summary extraction (word-count-bounded, stop-tag aware)
//  5. CSS composition (filtered notebook CSS + MathJax bootstrap)
//
// # Configuration
//
// All recognized options live on Settings with their defaults:
//
//	settings := nb2html.DefaultSettings()
//	settings.UseFirstCellMetadata = true
//	settings.ColorScheme = "monokai"
//	settings.NotebookSaveAs = "notebooks/{slug}.ipynb"
//	settings.OutputPath = "public"
//	reader, err := nb2html.NewReader(settings)
//
// Settings are validated once when the reader is created, not on every
// read.
//
// # Host Integration
//
// A publishing pipeline registers the reader for the extensions it
// handles during setup:
//
//	registry := map[string]nb2html.DocumentReader{}
//	nb2html.Register(registry, reader)
//
// # Metadata Sources
//
// A sidecar file with the notebook's base name and the .nbdata extension
// always wins. Without one, and with UseFirstCellMetadata enabled, the
// first cell is read as a metadata block: a Markdown title becomes the
// title: field and list items become metadata lines, and rendering starts
// at the second cell. A subcells metadata field like "(1, 5)" overrides
// the rendered cell range.
package nb2html
