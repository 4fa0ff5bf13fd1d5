package cli

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/roach88/tckview/internal/render"
	"github.com/roach88/tckview/internal/scenario"
)

// URLFromTemplate builds a URL-builder function from a template string with
// {group}, {feature}, {name}, and {example} placeholders. Substituted parts
// are path-escaped; {example} expands to the empty string when the scenario
// has no example number. An empty template yields empty URLs, which the
// renderers treat as "no link".
func URLFromTemplate(template string) render.URLFor {
	return func(s *scenario.Scenario) string {
		if template == "" {
			return ""
		}
		example := ""
		if s.Example != nil {
			example = strconv.Itoa(*s.Example)
		}
		replacer := strings.NewReplacer(
			"{group}", url.PathEscape(strings.Join(s.Categories, "/")),
			"{feature}", url.PathEscape(s.Feature),
			"{name}", url.PathEscape(s.Name),
			"{example}", example,
		)
		return replacer.Replace(template)
	}
}
