package catalog

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var files embed.FS

var views = template.Must(template.New("catalog").ParseFS(files, "html/*.html"))

// Index renders the full catalog page.
func Index(page PageData) templ.Component {
	return templ.FromGoHTML(views.Lookup("page"), page)
}

// Table renders the product table fragment swapped in by htmx.
func Table(table TableData) templ.Component {
	return templ.FromGoHTML(views.Lookup("table"), table)
}
