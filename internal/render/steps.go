package render

import (
	"strconv"

	"github.com/roach88/tckview/internal/markup"
	"github.com/roach88/tckview/internal/scenario"
)

// Step labels, one per variant. Execute and ExpectResult select among
// alternatives based on their payload.
const (
	labelSetup             = "Setup an empty graph"
	labelParameters        = "Parameters"
	labelRegisterProcedure = "Registered procedure"
	labelMeasure           = "Measure side effects"
	labelExecuteInit       = "Initialize with"
	labelExecuteQuery      = "Execute query"
	labelExecuteUpdate     = "Execute update"
	labelExpectOrdered     = "Expect result, in order"
	labelExpectUnordered   = "Expect result, in any order"
	labelSideEffects       = "Check side effects"
	labelExpectError       = "Expect error"
)

// Fragment is the rendered form of one step: a label plus optional content.
// A fragment with no content belongs to a marker step (Setup, Measure) and
// renders with a distinct empty-step style so viewers can tell data-free
// steps apart at a glance.
type Fragment struct {
	Label   string
	Content []markup.Node
}

// Empty reports whether the fragment has no content.
func (f Fragment) Empty() bool { return len(f.Content) == 0 }

// Markup materializes the fragment as markup nodes. Empty fragments render
// the label alone as a span with class "emptyStepName". Content-bearing
// fragments render a block with class "step" holding the label (class
// "stepName") and the content as sibling nodes.
func (f Fragment) Markup() []markup.Node {
	if f.Empty() {
		return []markup.Node{markup.SpanText("emptyStepName", f.Label)}
	}
	children := make([]markup.Node, 0, len(f.Content)+1)
	children = append(children, markup.SpanText("stepName", f.Label))
	children = append(children, f.Content...)
	return []markup.Node{markup.Block{Class: "step", Children: children}}
}

// Step renders a single test step into a fragment. The mapping is total
// over the eight step variants; a Step implementation outside that set
// fails with UnhandledStepError rather than being skipped. The only other
// failure mode is a MissingColumnError propagated from an embedded
// value-record table.
func Step(st scenario.Step) (Fragment, error) {
	switch s := st.(type) {
	case scenario.Setup:
		return Fragment{Label: labelSetup}, nil

	case scenario.Parameters:
		rows := make([]markup.Row, len(s.Params))
		for i, p := range s.Params {
			rows[i] = markup.Row{Cells: []markup.Cell{
				{Children: []markup.Node{markup.Code(p.Name)}},
				{Children: []markup.Node{markup.Code(p.Value.String())}},
			}}
		}
		table := markup.Table{Class: "parameters", Rows: rows}
		return Fragment{Label: labelParameters, Content: []markup.Node{table}}, nil

	case scenario.RegisterProcedure:
		table, err := Records(s.Values)
		if err != nil {
			return Fragment{}, err
		}
		content := []markup.Node{
			markup.Pre{Class: "query", Text: s.Signature},
			table,
		}
		return Fragment{Label: labelRegisterProcedure, Content: content}, nil

	case scenario.Measure:
		return Fragment{Label: labelMeasure}, nil

	case scenario.Execute:
		label, err := executeLabel(s.Role)
		if err != nil {
			return Fragment{}, err
		}
		content := []markup.Node{markup.Pre{Class: "query", Text: s.Query}}
		return Fragment{Label: label, Content: content}, nil

	case scenario.ExpectResult:
		label := labelExpectUnordered
		if s.Sorted {
			label = labelExpectOrdered
		}
		table, err := Records(s.Expected)
		if err != nil {
			return Fragment{}, err
		}
		return Fragment{Label: label, Content: []markup.Node{table}}, nil

	case scenario.SideEffects:
		// Iterate the constant kind list, never the input mapping, so the
		// table always has the same eight rows in the same order.
		rows := make([]markup.Row, len(scenario.SideEffectKinds))
		for i, kind := range scenario.SideEffectKinds {
			count := s.Counts[kind] // absent kinds default to 0
			rows[i] = markup.Row{Cells: []markup.Cell{
				markup.TextCell(string(kind)),
				markup.TextCell(strconv.Itoa(count)),
			}}
		}
		table := markup.Table{Class: "sideEffects", Rows: rows}
		return Fragment{Label: labelSideEffects, Content: []markup.Node{table}}, nil

	case scenario.ExpectError:
		table := markup.Table{Class: "error", Rows: []markup.Row{
			{Cells: []markup.Cell{markup.HeaderCell("Type:"), markup.TextCell(s.Type)}},
			{Cells: []markup.Cell{markup.HeaderCell("Phase:"), markup.TextCell(s.Phase)}},
			{Cells: []markup.Cell{markup.HeaderCell("Detail:"), markup.TextCell(s.Detail)}},
		}}
		return Fragment{Label: labelExpectError, Content: []markup.Node{table}}, nil

	default:
		return Fragment{}, &UnhandledStepError{Step: st}
	}
}

func executeLabel(role scenario.QueryRole) (string, error) {
	switch role {
	case scenario.QueryInit:
		return labelExecuteInit, nil
	case scenario.QueryExec:
		return labelExecuteQuery, nil
	case scenario.QuerySideEffect:
		return labelExecuteUpdate, nil
	default:
		return "", &UnhandledStepError{Step: role}
	}
}
