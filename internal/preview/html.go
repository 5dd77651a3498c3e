package preview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("preview").Funcs(template.FuncMap{
	"src":     imageSource,
	"noPhoto": func() string { return NoPhotoText },
}).ParseFS(templateFS, "templates/*.html"))

// imageSource lets data URLs and http(s) or root-relative links through
// unescaped. Anything else renders as an empty attribute.
func imageSource(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"),
		strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "http://"),
		strings.HasPrefix(s, "/"):
		return template.URL(s)
	default:
		return ""
	}
}

func (v DocumentView) Signatories() []Signatory {
	return []Signatory{v.Buyer, v.Inspector}
}

// WriteHTML writes the document fragment for v.
func WriteHTML(w io.Writer, v DocumentView) error {
	if err := templates.ExecuteTemplate(w, "document", v); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}

// WritePrintHTML writes a complete printable page for v.
func WritePrintHTML(w io.Writer, v PrintView) error {
	if err := templates.ExecuteTemplate(w, "print", v); err != nil {
		return fmt.Errorf("failed to render print view: %w", err)
	}
	return nil
}
