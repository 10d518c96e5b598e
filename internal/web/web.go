// Package web holds the single-page editor served at "/".
package web

import (
	_ "embed"
	"html"
	"strings"
)

// FilePathPlaceholder marks where the document path goes in the page.
const FilePathPlaceholder = "{{FILE_PATH}}"

//go:embed editor.html
var editorHTML string

// RenderEditor returns the editor page showing filePath (HTML-escaped).
// The page script is plain JavaScript with template literals, so the path is
// substituted textually rather than through html/template.
func RenderEditor(filePath string) []byte {
	return []byte(strings.ReplaceAll(editorHTML, FilePathPlaceholder, html.EscapeString(filePath)))
}
