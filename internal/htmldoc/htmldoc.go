package htmldoc

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"io"

	"github.com/roach88/tckview/internal/markup"
)

//go:embed style.css
var styleCSS string

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{if .Generator}}<meta name="generator" content="{{.Generator}}">
{{end}}<style>
{{.Style}}</style>
</head>
<body>
{{.Body}}</body>
</html>
`))

// Meta carries document-level metadata stamped into the page chrome.
type Meta struct {
	// Generator, when set, is recorded in a meta tag (typically the
	// tool name plus the render run ID).
	Generator string
}

// WritePage serializes a markup page as a complete HTML document: doctype,
// title, embedded stylesheet, and the serialized body. Every text leaf in
// the body is HTML-escaped.
func WritePage(w io.Writer, page *markup.Page, meta Meta) error {
	var body bytes.Buffer
	if err := WriteFragment(&body, page.Body...); err != nil {
		return err
	}

	return pageTemplate.Execute(w, struct {
		Title     string
		Generator string
		Style     template.CSS
		Body      template.HTML
	}{
		Title:     page.Title,
		Generator: meta.Generator,
		Style:     template.CSS(styleCSS),
		// Body is already escaped by WriteFragment.
		Body: template.HTML(body.String()),
	})
}

// WriteFragment serializes markup nodes as an HTML fragment. Text leaves,
// attribute values, and link targets are HTML-escaped. A node outside the
// closed markup node set is a hard error, never skipped.
func WriteFragment(w io.Writer, nodes ...markup.Node) error {
	for _, n := range nodes {
		if err := writeNode(w, n); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w io.Writer, n markup.Node) error {
	switch v := n.(type) {
	case markup.Text:
		_, err := io.WriteString(w, html.EscapeString(string(v)))
		return err

	case markup.Code:
		_, err := fmt.Fprintf(w, "<code>%s</code>", html.EscapeString(string(v)))
		return err

	case markup.Pre:
		if err := openTag(w, "pre", v.Class); err != nil {
			return err
		}
		if _, err := io.WriteString(w, html.EscapeString(v.Text)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</pre>\n")
		return err

	case markup.Span:
		if err := openTag(w, "span", v.Class); err != nil {
			return err
		}
		if err := WriteFragment(w, v.Children...); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</span>")
		return err

	case markup.Block:
		if err := openTag(w, "div", v.Class); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := WriteFragment(w, v.Children...); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>\n")
		return err

	case markup.Link:
		if _, err := fmt.Fprintf(w, `<a href="%s"`, html.EscapeString(v.Href)); err != nil {
			return err
		}
		if v.Class != "" {
			if _, err := fmt.Fprintf(w, ` class="%s"`, html.EscapeString(v.Class)); err != nil {
				return err
			}
		}
		if v.NewTab {
			if _, err := io.WriteString(w, ` target="_blank" rel="noopener"`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if err := WriteFragment(w, v.Children...); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</a>")
		return err

	case markup.Table:
		if err := openTag(w, "table", v.Class); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		for _, row := range v.Rows {
			if err := writeRow(w, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err

	case markup.Heading:
		tag := fmt.Sprintf("h%d", v.Level)
		if err := openTag(w, tag, v.Class); err != nil {
			return err
		}
		if err := WriteFragment(w, v.Children...); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "</%s>\n", tag)
		return err

	case markup.List:
		if err := openTag(w, "ul", v.Class); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		for _, item := range v.Items {
			if _, err := io.WriteString(w, "<li>"); err != nil {
				return err
			}
			if err := WriteFragment(w, item.Children...); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</li>\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err

	default:
		return fmt.Errorf("unhandled markup node %T", n)
	}
}

func writeRow(w io.Writer, row markup.Row) error {
	if _, err := io.WriteString(w, "<tr>"); err != nil {
		return err
	}
	for _, cell := range row.Cells {
		tag := "td"
		if cell.Header {
			tag = "th"
		}
		if _, err := fmt.Fprintf(w, "<%s>", tag); err != nil {
			return err
		}
		if err := WriteFragment(w, cell.Children...); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tr>\n")
	return err
}

func openTag(w io.Writer, tag, class string) error {
	if class == "" {
		_, err := fmt.Fprintf(w, "<%s>", tag)
		return err
	}
	_, err := fmt.Fprintf(w, `<%s class="%s">`, tag, html.EscapeString(class))
	return err
}
