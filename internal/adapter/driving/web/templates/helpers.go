// Package templates renders the storefront pages. The site chrome is written
// as templ components; page bodies are html/template files bridged into templ
// with templ.FromGoHTML.
package templates

const siteName = "Isavra Label"

// pageTitle is the document title for a page, e.g. "Products | Isavra Label".
func pageTitle(title string) string {
	if title == "" {
		return siteName
	}
	return title + " | " + siteName
}
