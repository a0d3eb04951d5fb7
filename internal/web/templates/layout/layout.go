// Package layout renders the page shell shared by every web page.
package layout

//go:generate templ generate

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData holds what the shell needs for every page
type PageData struct {
	Title    string
	Username string // empty when signed out
	Flash    *FlashMessage
	Active   string // nav entry to highlight: "dashboard", "standings" or "fixtures"
}

var navItems = []struct {
	key, href, label string
}{
	{"dashboard", "/", "Dashboard"},
	{"standings", "/standings", "Standings"},
	{"fixtures", "/fixtures", "Fixtures"},
}
