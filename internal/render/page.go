package render

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/tckview/internal/markup"
	"github.com/roach88/tckview/internal/scenario"
)

// URLFor builds a hyperlink target for a scenario. The composer places the
// resulting string as a link target and never interprets it.
type URLFor func(*scenario.Scenario) string

// ListPage composes a page listing the given scenarios for one group.
// Scenarios are sorted by the composite key (category path, feature, name,
// example index with absent-first), ascending and stable. Each entry holds
// the scenario's location fragment, a link to its page labeled with its
// title, and a "[code]" link to its source. An empty input is a valid page
// with count zero.
//
// kindLabel, when non-empty, qualifies the scenario count in the page
// title (e.g. "pending").
func ListPage(group string, scenarios []*scenario.Scenario, kindLabel string, showURLFor, sourceURLFor URLFor) *markup.Page {
	sorted := make([]*scenario.Scenario, len(scenarios))
	copy(sorted, scenarios)
	slices.SortStableFunc(sorted, compareScenarios)

	title := listTitle(len(sorted), kindLabel, group)

	items := make([]markup.Item, len(sorted))
	for i, s := range sorted {
		location := Location(s, LocationOptions{})
		entry := append(location,
			markup.Text(" "),
			markup.LinkText(showURLFor(s), "scenarioLink", s.Title()),
			markup.Text(" "),
			markup.Link{
				Href:     sourceURLFor(s),
				Class:    "sourceLink",
				NewTab:   true,
				Children: []markup.Node{markup.Text("[code]")},
			},
		)
		items[i] = markup.Item{Children: entry}
	}

	body := []markup.Node{
		markup.Heading{Level: 1, Class: "pageTitle", Children: []markup.Node{markup.Text(title)}},
		markup.List{Class: "scenarioList", Items: items},
	}

	return &markup.Page{Title: title, Body: body}
}

// ScenarioPage composes a page showing one scenario: its title, location,
// and every step fragment in order. Fails only by propagating a rendering
// error from a step.
func ScenarioPage(s *scenario.Scenario, opts LocationOptions) (*markup.Page, error) {
	body := []markup.Node{
		markup.Heading{Level: 1, Class: "pageTitle", Children: []markup.Node{markup.Text(s.Title())}},
		markup.Block{Class: "location", Children: Location(s, opts)},
	}

	for _, st := range s.Steps {
		fragment, err := Step(st)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Title(), err)
		}
		body = append(body, fragment.Markup()...)
	}

	return &markup.Page{Title: s.Title(), Body: body}, nil
}

func listTitle(count int, kindLabel, group string) string {
	noun := "scenarios"
	if count == 1 {
		noun = "scenario"
	}
	if kindLabel != "" {
		return fmt.Sprintf("%d %s %s in group %s", count, kindLabel, noun, group)
	}
	return fmt.Sprintf("%d %s in group %s", count, noun, group)
}

// compareScenarios orders by (category path, feature, name, example index),
// with an absent example index sorting before any present one. Strings are
// NFC-normalized before comparison so differently-normalized fixture files
// order identically.
func compareScenarios(a, b *scenario.Scenario) int {
	if c := strings.Compare(sortKey(strings.Join(a.Categories, "/")), sortKey(strings.Join(b.Categories, "/"))); c != 0 {
		return c
	}
	if c := strings.Compare(sortKey(a.Feature), sortKey(b.Feature)); c != 0 {
		return c
	}
	if c := strings.Compare(sortKey(a.Name), sortKey(b.Name)); c != 0 {
		return c
	}
	switch {
	case a.Example == nil && b.Example == nil:
		return 0
	case a.Example == nil:
		return -1
	case b.Example == nil:
		return 1
	default:
		return *a.Example - *b.Example
	}
}

func sortKey(s string) string {
	return norm.NFC.String(s)
}
