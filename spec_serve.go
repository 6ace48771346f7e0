package restkit

import (
	"encoding/json"
	"html/template"
	"io"
	"net/http"

	"gopkg.in/yaml.v3"
)

// ServeSpec registers a GET handler serving the OpenAPI document as JSON.
func (r *Router) ServeSpec(pattern string) {
	r.mux.HandleFunc("GET "+pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		json.NewEncoder(w).Encode(r.Spec())
	})
}

// ServeSpecYAML registers a GET handler serving the OpenAPI document as YAML.
func (r *Router) ServeSpecYAML(pattern string) {
	r.mux.HandleFunc("GET "+pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		yaml.NewEncoder(w).Encode(r.Spec())
	})
}

// WriteSpec writes the OpenAPI document as indented JSON.
func (r *Router) WriteSpec(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Spec())
}

// WriteSpecYAML writes the OpenAPI document as YAML.
func (r *Router) WriteSpecYAML(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(r.Spec())
}

// DocsOption configures the docs UI.
type DocsOption func(*docsPage)

type docsPage struct {
	PageTitle string
	SpecURL   string
}

// WithDocsTitle sets the page title for the docs UI.
func WithDocsTitle(title string) DocsOption {
	return func(p *docsPage) { p.PageTitle = title }
}

// WithDocsSpecURL points the docs UI at a spec other than /openapi.json.
func WithDocsSpecURL(url string) DocsOption {
	return func(p *docsPage) { p.SpecURL = url }
}

// ServeDocs registers a GET handler rendering an interactive documentation
// page (Stoplight Elements) backed by the served OpenAPI document.
func (r *Router) ServeDocs(pattern string, opts ...DocsOption) {
	page := &docsPage{
		PageTitle: r.title,
		SpecURL:   "/openapi.json",
	}
	for _, opt := range opts {
		opt(page)
	}

	tmpl := template.Must(template.New("docs").Parse(docsHTML))

	r.mux.HandleFunc("GET "+pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort template render
		tmpl.Execute(w, page)
	})
}

const docsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.PageTitle}}</title>
  <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
  <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
</head>
<body>
  <elements-api
    apiDescriptionUrl="{{.SpecURL}}"
    router="hash"
    layout="sidebar"
  />
</body>
</html>`
