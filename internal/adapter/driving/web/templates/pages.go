package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web/viewmodel"
)

//go:embed pages/*.html
var pageFS embed.FS

var pageTemplates = template.Must(template.New("pages").ParseFS(pageFS, "pages/*.html"))

// Page returns the named page body as a templ component.
func Page(name string, data vm.PageViewModel) templ.Component {
	t := pageTemplates.Lookup(name)
	if t == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("page template %q not defined", name)
		})
	}
	return templ.FromGoHTML(t, data)
}
