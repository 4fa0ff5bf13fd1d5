package render

import (
	"github.com/roach88/tckview/internal/markup"
	"github.com/roach88/tckview/internal/scenario"
)

// Breadcrumb separator glyphs: one before each category, doubled before
// the feature name.
const (
	categorySeparator = "⟩"
	featureSeparator  = "⟩⟩"
)

// LocationOptions holds the optional parts of a location fragment. Each
// empty field suppresses only its own fragment; the others keep their
// presence and order.
type LocationOptions struct {
	// CollectionLabel, when set, is emitted first as a styled span
	// (e.g. the corpus subset the scenario belongs to).
	CollectionLabel string

	// ShowURL, when set, adds a "[show]" link to the scenario page.
	ShowURL string

	// SourceURL, when set, adds a "[code]" link to the scenario source,
	// marked to open in a new viewing context.
	SourceURL string
}

// Location renders a scenario's hierarchical location as an inline
// fragment: optional collection label, then each category prefixed with a
// separator glyph, then a doubled separator and the feature name, then the
// optional action links.
func Location(s *scenario.Scenario, opts LocationOptions) []markup.Node {
	var nodes []markup.Node

	if opts.CollectionLabel != "" {
		nodes = append(nodes, markup.SpanText("scenarioKind", opts.CollectionLabel))
	}

	for _, category := range s.Categories {
		nodes = append(nodes,
			markup.SpanText("categorySep", categorySeparator),
			markup.SpanText("category", category),
		)
	}

	nodes = append(nodes,
		markup.SpanText("categorySep", featureSeparator),
		markup.SpanText("feature", s.Feature),
	)

	if opts.ShowURL != "" {
		nodes = append(nodes, markup.LinkText(opts.ShowURL, "showLink", "[show]"))
	}

	if opts.SourceURL != "" {
		link := markup.LinkText(opts.SourceURL, "sourceLink", "[code]")
		link.NewTab = true
		nodes = append(nodes, link)
	}

	return nodes
}
