// Package cypher models values from the query domain. The rendering core
// treats them as opaque: it only relies on String(), the canonical Cypher
// text form, and never inspects their structure.
package cypher

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is a sealed interface representing a typed value from the query
// domain. Only Null, Bool, Int, Float, Str, List, Map, Node, and Rel
// implement it. Consumers outside this package treat values as opaque and
// only rely on String(), the canonical Cypher text form.
type Value interface {
	fmt.Stringer
	value() // Sealed - only these types implement it
}

// Null represents the Cypher null value.
type Null struct{}

func (Null) value() {}

func (Null) String() string { return "null" }

// Bool represents a Cypher boolean.
type Bool bool

func (Bool) value() {}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int represents a Cypher integer. Always int64.
type Int int64

func (Int) value() {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float represents a Cypher float.
type Float float64

func (Float) value() {}

func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	// Canonical form always shows a decimal point or exponent so floats
	// stay distinguishable from integers.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Str represents a Cypher string.
type Str string

func (Str) value() {}

func (s Str) String() string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range string(s) {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// List represents an ordered Cypher list.
type List []Value

func (List) value() {}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map represents a Cypher map. Keys render in sorted order so the canonical
// form is deterministic regardless of Go map iteration.
type Map map[string]Value

func (Map) value() {}

func (m Map) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + m[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Node represents a graph node with labels and properties.
type Node struct {
	Labels     []string
	Properties Map
}

func (Node) value() {}

func (n Node) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, l := range n.Labels {
		b.WriteByte(':')
		b.WriteString(l)
	}
	if len(n.Properties) > 0 {
		if len(n.Labels) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.Properties.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Rel represents a relationship with a type and properties.
type Rel struct {
	Type       string
	Properties Map
}

func (Rel) value() {}

func (r Rel) String() string {
	var b strings.Builder
	b.WriteString("[:")
	b.WriteString(r.Type)
	if len(r.Properties) > 0 {
		b.WriteByte(' ')
		b.WriteString(r.Properties.String())
	}
	b.WriteByte(']')
	return b.String()
}
