package scenario

import (
	"fmt"

	"github.com/roach88/tckview/internal/cypher"
)

// Scenario identifies one conformance test case in the corpus.
// Scenarios are read-only once constructed; the renderers never mutate them.
type Scenario struct {
	// Categories is the hierarchical grouping path, outermost first.
	Categories []string

	// Feature is the feature file the scenario belongs to.
	Feature string

	// Name is the scenario name.
	Name string

	// Example is the example number when the scenario is one numbered
	// example drawn from a scenario outline. Nil otherwise.
	Example *int

	// Steps are the scenario's actions and assertions, in order.
	Steps []Step
}

// Title returns the display title: the name, with a " #<n>" suffix when the
// scenario is a numbered example.
func (s *Scenario) Title() string {
	if s.Example != nil {
		return fmt.Sprintf("%s #%d", s.Name, *s.Example)
	}
	return s.Name
}

// Step is a sealed interface representing one action or assertion in a
// scenario. Only the eight variants below implement it. Renderers switch
// over the concrete types and treat any other implementer as a hard error,
// so adding a variant without updating them fails loudly.
type Step interface {
	step() // Sealed - only these types implement it
}

// Setup establishes an empty starting state. Carries no data.
type Setup struct{}

func (Setup) step() {}

// Param is one named query parameter.
type Param struct {
	Name  string
	Value cypher.Value
}

// Parameters carries the query parameters for the scenario. The slice
// preserves the source declaration order, which is also the render order.
// Names are unique.
type Parameters struct {
	Params []Param
}

func (Parameters) step() {}

// RegisterProcedure declares a stored procedure available to the scenario,
// with its signature and the output shape/example rows it yields.
type RegisterProcedure struct {
	Signature string
	Values    ValueRecords
}

func (RegisterProcedure) step() {}

// Measure marks the point after which side effects are tracked.
// Carries no data.
type Measure struct{}

func (Measure) step() {}

// QueryRole tags an Execute step with the role its query plays.
type QueryRole int

const (
	// QueryInit is a setup query run before the query under test.
	QueryInit QueryRole = iota

	// QueryExec is the query under test.
	QueryExec

	// QuerySideEffect is an update query run to produce observable
	// side effects.
	QuerySideEffect
)

// Execute runs a query in the given role.
type Execute struct {
	Query string
	Role  QueryRole
}

func (Execute) step() {}

// ExpectResult asserts the expected result rows. Sorted indicates whether
// row order is part of the expectation.
type ExpectResult struct {
	Expected ValueRecords
	Sorted   bool
}

func (ExpectResult) step() {}

// SideEffectKind names one kind of observable side effect.
type SideEffectKind string

// The closed set of side-effect kinds, in canonical render order.
const (
	AddedNodes           SideEffectKind = "added-nodes"
	AddedRelationships   SideEffectKind = "added-relationships"
	AddedLabels          SideEffectKind = "added-labels"
	AddedProperties      SideEffectKind = "added-properties"
	DeletedNodes         SideEffectKind = "deleted-nodes"
	DeletedRelationships SideEffectKind = "deleted-relationships"
	DeletedLabels        SideEffectKind = "deleted-labels"
	DeletedProperties    SideEffectKind = "deleted-properties"
)

// SideEffectKinds lists every side-effect kind in canonical render order.
// Renderers iterate this list, never the input mapping, so output order is
// independent of map iteration.
var SideEffectKinds = []SideEffectKind{
	AddedNodes,
	AddedRelationships,
	AddedLabels,
	AddedProperties,
	DeletedNodes,
	DeletedRelationships,
	DeletedLabels,
	DeletedProperties,
}

// SideEffects asserts the expected side-effect counts. Kinds absent from
// Counts are expected to be zero.
type SideEffects struct {
	Counts map[SideEffectKind]int
}

func (SideEffects) step() {}

// ExpectError asserts that the query fails with the given error.
type ExpectError struct {
	Type   string
	Phase  string
	Detail string
}

func (ExpectError) step() {}
