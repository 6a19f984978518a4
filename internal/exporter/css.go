package exporter

// notebookCSS is the structural stylesheet shipped with the exporter. It
// keeps the section layout of the classic notebook stylesheet: a shared
// preamble, the "IPython notebook" section with the cell styles themselves,
// and the "IPython notebook webapp" section with application chrome that
// published pages never need. The CSS normalizer cuts on the section
// markers, so their exact text is load-bearing.
const notebookCSS = `html {
  font-size: 14px;
}
body {
  margin: 0;
  font-family: Helvetica, Arial, sans-serif;
  color:#000;
}
a {
  color:#000000;
}
.rendered_html, .rendered_html p {
  color: #333;
  margin: 8px;
}
/*!
*
* IPython notebook
*
*/
.jp-Notebook {
  padding: 8px;
  background: transparent;
}
.jp-Cell {
  padding: 5px;
  margin: 0;
  border-width: 1px;
}
.jp-InputArea,
.jp-OutputArea {
  display: table;
  table-layout: fixed;
  width: 100%;
  overflow: hidden;
}
.jp-InputPrompt,
.jp-OutputPrompt {
  display: table-cell;
  vertical-align: top;
  width: 64px;
  padding: 4px;
  font-family: monospace;
  text-align: right;
  color: #307fc1;
}
.jp-OutputPrompt {
  color: #bf5b3d;
}
.jp-InputArea-editor {
  display: table-cell;
  overflow: hidden;
  vertical-align: top;
}
.jp-OutputArea-output pre {
  margin: 0;
  padding: 4px;
  overflow-x: auto;
  white-space: pre-wrap;
  word-break: break-all;
}
.jp-RenderedImage img {
  max-width: 100%;
  height: auto;
}
.highlight-ipynb {
  overflow-x: auto;
}
.highlight-ipynb pre.ipynb {
  margin: 0;
  padding: 4px;
  border: none;
  background: transparent;
}
/*!
*
* IPython notebook webapp
*
*/
.jp-Toolbar {
  display: flex;
  border-bottom: 1px solid #e0e0e0;
}
.jp-SideBar .jp-mod-current {
  background: #ffffff;
}
#jp-main-dock-panel {
  min-height: 100vh;
}
`
