// Package render is the scenario rendering core. It translates scenario
// data into abstract markup trees (see internal/markup):
//
//   - Records: a value-record table (header row plus one row per record)
//   - Step: one step variant into a labeled fragment
//   - Location: a scenario's category breadcrumb and action links
//   - ListPage: a sorted listing page for a group of scenarios
//   - ScenarioPage: a single scenario's steps as a page
//
// Every function is a pure function of its input plus fixed formatting
// tables (step labels, side-effect kind order). Nothing is mutated or
// cached, so independent render calls can run concurrently.
//
// # Failure modes
//
// Rendering fails only structurally: MissingColumnError when a value
// record row lacks a header column, and UnhandledStepError when a Step
// value falls outside the closed variant set. Neither is recoverable or
// retried; both signal a malformed fixture or a programming error.
package render
