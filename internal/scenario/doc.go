// Package scenario defines the data model for conformance test scenarios:
// the Scenario record, the closed set of Step variants, and tabular
// ValueRecords.
//
// All types are read-only once constructed. A corpus loader builds them
// (see internal/corpus) and renderers consume them (see internal/render);
// nothing in between mutates them, so any number of scenarios can be
// rendered concurrently without coordination.
//
// # Step variants
//
// Step is sealed: exactly eight types implement it.
//
//   - Setup: establish an empty starting state
//   - Parameters: named query parameters
//   - RegisterProcedure: declare a stored procedure with its output shape
//   - Measure: begin side-effect tracking
//   - Execute: run a query (init, exec, or side-effect role)
//   - ExpectResult: assert the expected result rows
//   - SideEffects: assert expected side-effect counts
//   - ExpectError: assert an expected failure
//
// Renderers must handle every variant; an unknown Step implementation is a
// programming error and fails loudly at render time.
package scenario
