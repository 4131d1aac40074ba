package site

import (
	"fmt"
	"html/template"
	"time"
)

// Built-in layouts. Kept deliberately spartan: the terminal-style theme does
// its styling through the stylesheet, which also carries the code highlight
// colors (the markdown renderer only emits theme CSS classes).
const pageTemplate = `<!DOCTYPE html>
<html lang="{{ .Site.Language }}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }} | {{ .Site.Title }}</title>
{{ with .Description }}<meta name="description" content="{{ . }}">{{ end }}
<link rel="stylesheet" href="{{ .Site.BasePath }}style.css">
</head>
<body>
<header>
<nav><a href="{{ .Site.BasePath }}">{{ .Site.Title }}</a></nav>
</header>
<main>
<article>
<h1>{{ .Title }}</h1>
{{ if not .PubDate.IsZero }}<time datetime="{{ .PubDate.Format "2006-01-02" }}">{{ formatDate .PubDate }}</time>{{ end }}
{{ .Content }}
</article>
{{ if .Tags }}<footer>
<ul class="tags">
{{ range .Tags }}<li><a href="{{ .Href }}">{{ .Display }}</a></li>
{{ end }}</ul>
</footer>{{ end }}
</main>
</body>
</html>
`

const listTemplate = `<!DOCTYPE html>
<html lang="{{ .Site.Language }}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
{{ with .Site.Description }}<meta name="description" content="{{ . }}">{{ end }}
<link rel="stylesheet" href="{{ .Site.BasePath }}style.css">
</head>
<body>
<header>
<nav><a href="{{ .Site.BasePath }}">{{ .Site.Title }}</a></nav>
</header>
<main>
<h1>{{ .Heading }}</h1>
<ul class="post-list">
{{ range .Posts }}<li>
<time datetime="{{ .PubDate.Format "2006-01-02" }}">{{ formatDate .PubDate }}</time>
<a href="{{ .Href }}">{{ .Title }}</a>
{{ with .Description }}<p>{{ . }}</p>{{ end }}
</li>
{{ end }}</ul>
</main>
</body>
</html>
`

type siteMeta struct {
	Title       string
	Description string
	Author      string
	Language    string
	BasePath    string
}

type tagRef struct {
	Name    string
	Display string
	Href    string
}

type postRef struct {
	Title       string
	Description string
	PubDate     time.Time
	Href        string
}

type pageData struct {
	Site        siteMeta
	Title       string
	Description string
	PubDate     time.Time
	Lastmod     time.Time
	Tags        []tagRef
	Content     template.HTML
}

type listData struct {
	Site    siteMeta
	Title   string
	Heading string
	Posts   []postRef
}

// safeHTML marks already-rendered markdown output as trusted for html/template.
func safeHTML(b []byte) template.HTML { return template.HTML(b) }

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 02, 2006")
		},
	}
	root := template.New("layouts").Funcs(funcs)
	if _, err := root.New("page").Parse(pageTemplate); err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	if _, err := root.New("list").Parse(listTemplate); err != nil {
		return nil, fmt.Errorf("parse list template: %w", err)
	}
	return root, nil
}
