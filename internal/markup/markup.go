package markup

import "strings"

// Node is a sealed interface over the markup node kinds. Only the types in
// this package implement it. Serializers switch over the concrete types and
// treat any other implementer as a hard error.
//
// Nodes carry raw, unescaped text. Escaping into safe document content is
// the serializer's job (see internal/htmldoc) and is applied to every text
// leaf.
type Node interface {
	node() // Sealed - only these types implement it
}

// Text is a plain text leaf.
type Text string

func (Text) node() {}

// Code is an inline code span.
type Code string

func (Code) node() {}

// Pre is a preformatted code block. The text renders verbatim.
type Pre struct {
	Class string
	Text  string
}

func (Pre) node() {}

// Span is an inline container with a style class.
type Span struct {
	Class    string
	Children []Node
}

func (Span) node() {}

// Block is a block-level container with a style class.
type Block struct {
	Class    string
	Children []Node
}

func (Block) node() {}

// Link is a hyperlink. NewTab marks it to open in a new viewing context.
type Link struct {
	Href     string
	Class    string
	NewTab   bool
	Children []Node
}

func (Link) node() {}

// Cell is one table cell. Header cells render emphasized.
type Cell struct {
	Header   bool
	Children []Node
}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Table is a table with optional style class.
type Table struct {
	Class string
	Rows  []Row
}

func (Table) node() {}

// Heading is a section heading at the given level (1-6).
type Heading struct {
	Level    int
	Class    string
	Children []Node
}

func (Heading) node() {}

// Item is one list entry.
type Item struct {
	Children []Node
}

// List is an unordered list with optional style class.
type List struct {
	Class string
	Items []Item
}

func (List) node() {}

// Page is a complete page: a title for the document chrome plus body nodes.
type Page struct {
	Title string
	Body  []Node
}

// SpanText builds a Span holding a single text leaf.
func SpanText(class, text string) Span {
	return Span{Class: class, Children: []Node{Text(text)}}
}

// LinkText builds a Link holding a single text leaf.
func LinkText(href, class, text string) Link {
	return Link{Href: href, Class: class, Children: []Node{Text(text)}}
}

// TextCell builds a data cell holding a single text leaf.
func TextCell(text string) Cell {
	return Cell{Children: []Node{Text(text)}}
}

// HeaderCell builds a header cell holding a single text leaf.
func HeaderCell(text string) Cell {
	return Cell{Header: true, Children: []Node{Text(text)}}
}

// PlainText returns the concatenated text content of the given nodes,
// depth-first, with no markup. Used for text-mode CLI output and for
// asserting on fragment content in tests.
func PlainText(nodes ...Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writePlain(&b, n)
	}
	return b.String()
}

func writePlain(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Text:
		b.WriteString(string(v))
	case Code:
		b.WriteString(string(v))
	case Pre:
		b.WriteString(v.Text)
	case Span:
		b.WriteString(PlainText(v.Children...))
	case Block:
		b.WriteString(PlainText(v.Children...))
	case Link:
		b.WriteString(PlainText(v.Children...))
	case Heading:
		b.WriteString(PlainText(v.Children...))
	case Table:
		for _, row := range v.Rows {
			for i, cell := range row.Cells {
				if i > 0 {
					b.WriteString(" ")
				}
				b.WriteString(PlainText(cell.Children...))
			}
			b.WriteString("\n")
		}
	case List:
		for _, item := range v.Items {
			b.WriteString(PlainText(item.Children...))
			b.WriteString("\n")
		}
	}
}
