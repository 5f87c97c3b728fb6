package console

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/table"
)

//go:embed templates/*.html
var templateFS embed.FS

const appTitle = "StonePay Admin"

type navItem struct {
	Label  string
	Href   string
	Active bool
}

var sections = []struct {
	Label  string
	Prefix string
}{
	{"Dashboard", "/dashboard"},
	{"Orders", "/orders"},
	{"Products", "/products"},
	{"Categories", "/categories"},
	{"Users", "/users"},
}

// sectionFor maps a request path to its navigation section, or "".
func sectionFor(path string) string {
	for _, sec := range sections {
		if path == sec.Prefix || strings.HasPrefix(path, sec.Prefix+"/") {
			return sec.Label
		}
	}
	return ""
}

// Title is the document title for path.
func Title(path string) string {
	if sec := sectionFor(path); sec != "" {
		return appTitle + " - " + sec
	}
	return appTitle
}

func navFor(path string) []navItem {
	active := sectionFor(path)
	items := make([]navItem, 0, len(sections))
	for _, sec := range sections {
		items = append(items, navItem{Label: sec.Label, Href: sec.Prefix, Active: sec.Label == active})
	}
	return items
}

type pageData struct {
	Title   string
	Section string
	Nav     []navItem
	Flash   *Flash
	User    *backend.Identity
	Data    any
}

type pageSet struct {
	byName map[string]*template.Template
}

var pageNames = []string{
	"signin", "dashboard", "list", "detail", "confirm",
	"product_form", "category_form", "user_form",
}

var funcs = template.FuncMap{
	"flashClass": func(k FlashKind) string { return "flash flash-" + string(k) },
}

func loadPages() (*pageSet, error) {
	ps := &pageSet{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/table.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		ps.byName[name] = t
	}
	return ps, nil
}

// render writes page name wrapped in the layout. Templates execute into a
// buffer first so a template error never produces half a page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any, flash *Flash) {
	t, ok := s.pages.byName[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	if flash == nil {
		flash = s.popFlash(w, r)
	}
	pd := pageData{
		Title:   Title(r.URL.Path),
		Section: sectionFor(r.URL.Path),
		Nav:     navFor(r.URL.Path),
		Flash:   flash,
		User:    s.Session.User(),
		Data:    data,
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pd); err != nil {
		s.log.Error("Render %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// listPage is the data for templates/list.html.
type listPage struct {
	Heading string
	NewHref string
	NewText string
	Table   table.View
	Empty   string
}

// imageSrc vouches for an image reference so html/template keeps it in src.
// Only hosted images and inline data:image/ URLs qualify; anything else is
// dropped.
func imageSrc(ref string) template.URL {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "data:image/") {
		return template.URL(ref)
	}
	return ""
}

type field struct {
	Label string
	Value string
	Class string
}

// detailPage is the data for templates/detail.html.
type detailPage struct {
	Heading  string
	Image    template.URL
	Fields   []field
	Table    *table.View
	Links    []link
	BackHref string
}

type link struct {
	Label string
	Href  string
	Class string
}

// confirmPage asks a yes/no question before a mutation.
type confirmPage struct {
	Question string
	Action   string
	Confirm  string
	Cancel   string
}
