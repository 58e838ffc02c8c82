// Package preview wraps rendered documentation pages in the site chrome
// (title, subtitle, author and source links) so they can be inspected locally
// before the site generator runs.
package preview

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/kitware/sensei-site/internal/markdown"
	"github.com/kitware/sensei-site/site"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.PageTitle}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
{{- if .Canonical}}
<link rel="canonical" href="{{.Canonical}}">
{{- end}}
</head>
<body>
<header>
<a href="{{.Root}}">{{.SiteTitle}}</a>
{{- if .Subtitle}}
<p>{{.Subtitle}}</p>
{{- end}}
</header>
<main>
{{.Body}}
</main>
<footer>
{{- if .Author}}
<p>By {{if .AuthorLink}}<a href="{{.AuthorLink}}">{{.Author}}</a>{{else}}{{.Author}}{{end}}</p>
{{- end}}
{{- if .SourceURL}}
<p><a href="{{.SourceURL}}">Source</a></p>
{{- end}}
<p>Rendered {{.Rendered}}</p>
</footer>
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	PageTitle   string
	SiteTitle   string
	Subtitle    string
	Description string
	Canonical   string
	Root        string
	Author      string
	AuthorLink  string
	SourceURL   string
	Rendered    string
	Body        template.HTML
}

// Renderer produces complete HTML pages from markdown documents.
type Renderer struct {
	site site.Site
	md   *markdown.Renderer
	now  func() time.Time
}

// New returns a page renderer for s, using the markdown dialect s selects.
func New(s site.Site) *Renderer {
	return &Renderer{
		site: s,
		md:   markdown.New(s.Config.MarkdownOptions),
		now:  time.Now,
	}
}

// WithClock overrides the clock used for the render timestamp.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Render writes the page for the markdown document name with content src.
func (r *Renderer) Render(w io.Writer, name string, src []byte) error {
	body, err := r.md.Render(src)
	if err != nil {
		return err
	}

	loc, err := r.site.Location()
	if err != nil {
		return fmt.Errorf("resolve timezone: %w", err)
	}

	c := r.site.Config
	data := pageData{
		PageTitle:   pageTitle(r.md.Title(src), name, c.Title),
		SiteTitle:   c.Title,
		Subtitle:    c.Subtitle,
		Description: c.Description,
		Canonical:   canonicalURL(r.site, name),
		Root:        rootHref(r.site),
		Author:      c.Author,
		AuthorLink:  c.AuthorLink,
		SourceURL:   r.site.RepositoryURL(),
		Rendered:    r.now().In(loc).Format("2006-01-02 15:04 MST"),
		Body:        template.HTML(body),
	}

	return page.Execute(w, data)
}

func pageTitle(heading, name, siteTitle string) string {
	doc := heading
	if doc == "" {
		doc = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	if siteTitle == "" {
		return doc
	}
	if doc == "" {
		return siteTitle
	}
	return doc + " | " + siteTitle
}

func rootHref(s site.Site) string {
	root := s.Config.RootPath
	if root == "" {
		root = "/"
	}
	return strings.TrimSuffix(s.BaseURL, "/") + root
}

// canonicalURL is the published location of the page: site URL, then the
// document path with its .md suffix replaced by .html.
func canonicalURL(s site.Site, name string) string {
	if s.Config.SiteURL == "" || name == "" {
		return ""
	}
	doc := strings.TrimSuffix(filepath.ToSlash(name), filepath.Ext(name)) + ".html"
	return strings.TrimSuffix(s.Config.SiteURL, "/") + "/" + strings.TrimPrefix(doc, "/")
}
