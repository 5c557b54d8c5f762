// Package svgrender turns a composed worldmap scene into a standalone SVG
// document wrapped in a figure element, ready for embedding in web pages.
package svgrender

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"strings"

	"github.com/mschilde/svg-worldmap/pkg/worldmap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders worldmap scenes through the embedded SVG template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("worldmap.svg.tmpl").Funcs(template.FuncMap{
		"num": fmtNum,
	}).ParseFS(templateFS, "templates/worldmap.svg.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the SVG document for a scene.
func (r *Renderer) Render(scene *worldmap.Scene) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, scene); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fmtNum prints numbers the way hand-written SVG does: no exponent, no
// trailing zeros.
func fmtNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
