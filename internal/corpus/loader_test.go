package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tckview/internal/cypher"
	"github.com/roach88/tckview/internal/scenario"
)

// writeCorpusFile writes one scenario file into dir and returns its path.
func writeCorpusFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validScenario = `
feature: Match
categories: [clauses, match]
name: returns friends
example: 2
steps:
  - kind: setup
  - kind: parameters
    params:
      - name: name
        value: "Alice"
      - name: limit
        value: 10
  - kind: execute
    role: init
    query: "CREATE (:Person)"
  - kind: measure
  - kind: execute
    role: exec
    query: "MATCH (n) RETURN n.name"
  - kind: expect-result
    sorted: true
    records:
      header: [n.name]
      rows:
        - {n.name: "Alice"}
  - kind: side-effects
    counts: {added-nodes: 1}
  - kind: expect-error
    type: SyntaxError
    phase: compile time
    detail: InvalidAggregation
`

func TestLoadFile_ValidScenario(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "match.yaml", validScenario)

	scenarios, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	s := scenarios[0]
	assert.Equal(t, "Match", s.Feature)
	assert.Equal(t, []string{"clauses", "match"}, s.Categories)
	assert.Equal(t, "returns friends", s.Name)
	require.NotNil(t, s.Example)
	assert.Equal(t, 2, *s.Example)
	assert.Equal(t, "returns friends #2", s.Title())
	require.Len(t, s.Steps, 8)

	assert.IsType(t, scenario.Setup{}, s.Steps[0])

	params := s.Steps[1].(scenario.Parameters)
	require.Len(t, params.Params, 2)
	assert.Equal(t, "name", params.Params[0].Name)
	assert.Equal(t, cypher.Str("Alice"), params.Params[0].Value)
	assert.Equal(t, "limit", params.Params[1].Name)
	assert.Equal(t, cypher.Int(10), params.Params[1].Value)

	init := s.Steps[2].(scenario.Execute)
	assert.Equal(t, scenario.QueryInit, init.Role)
	assert.Equal(t, "CREATE (:Person)", init.Query)

	assert.IsType(t, scenario.Measure{}, s.Steps[3])

	exec := s.Steps[4].(scenario.Execute)
	assert.Equal(t, scenario.QueryExec, exec.Role)

	expect := s.Steps[5].(scenario.ExpectResult)
	assert.True(t, expect.Sorted)
	assert.Equal(t, []string{"n.name"}, expect.Expected.Header)
	require.Len(t, expect.Expected.Rows, 1)
	assert.Equal(t, cypher.Str("Alice"), expect.Expected.Rows[0]["n.name"])

	effects := s.Steps[6].(scenario.SideEffects)
	assert.Equal(t, 1, effects.Counts[scenario.AddedNodes])

	expectErr := s.Steps[7].(scenario.ExpectError)
	assert.Equal(t, "SyntaxError", expectErr.Type)
	assert.Equal(t, "compile time", expectErr.Phase)
	assert.Equal(t, "InvalidAggregation", expectErr.Detail)
}

func TestLoadFile_MultipleDocuments(t *testing.T) {
	dir := t.TempDir()
	content := `
feature: F
name: first
steps: []
---
feature: F
name: second
steps:
  - kind: setup
`
	path := writeCorpusFile(t, dir, "multi.yaml", content)

	scenarios, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)
}

func TestLoadFile_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "typo.yaml", `
feature: F
name: n
step:
  - kind: setup
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFile_RejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "bad.yaml", `
feature: F
name: n
steps:
  - kind: teleport
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown step kind "teleport"`)
}

func TestLoadFile_RejectsUnknownRole(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "bad.yaml", `
feature: F
name: n
steps:
  - kind: execute
    role: verify
    query: "RETURN 1"
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown role "verify"`)
}

func TestLoadFile_RejectsUnknownSideEffectKind(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "bad.yaml", `
feature: F
name: n
steps:
  - kind: side-effects
    counts: {exploded-nodes: 1}
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown side-effect kind "exploded-nodes"`)
}

func TestLoadFile_RejectsNegativeCount(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "bad.yaml", `
feature: F
name: n
steps:
  - kind: side-effects
    counts: {added-nodes: -1}
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be non-negative")
}

func TestLoadFile_RejectsDuplicateParameter(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "bad.yaml", `
feature: F
name: n
steps:
  - kind: parameters
    params:
      - name: x
        value: 1
      - name: x
        value: 2
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate parameter "x"`)
}

func TestLoadFile_RejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "bad.yaml", `
feature: F
steps: []
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadFile_RowMissingColumnLoadsFine(t *testing.T) {
	// Loading never validates fixture semantics; the renderer owns the
	// missing-column invariant.
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "sparse.yaml", `
feature: F
name: n
steps:
  - kind: expect-result
    records:
      header: [a, b]
      rows:
        - {a: 1}
`)

	scenarios, err := LoadFile(path)
	require.NoError(t, err)
	expect := scenarios[0].Steps[0].(scenario.ExpectResult)
	assert.Len(t, expect.Expected.Rows, 1)
	_, ok := expect.Expected.Rows[0]["b"]
	assert.False(t, ok)
}

func TestLoadFile_ValueConversion(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "values.yaml", `
feature: F
name: n
steps:
  - kind: parameters
    params:
      - name: nothing
        value: ~
      - name: flag
        value: true
      - name: pi
        value: 3.5
      - name: xs
        value: [1, 2]
      - name: m
        value: {k: "v"}
`)

	scenarios, err := LoadFile(path)
	require.NoError(t, err)
	params := scenarios[0].Steps[0].(scenario.Parameters).Params
	require.Len(t, params, 5)
	assert.Equal(t, cypher.Null{}, params[0].Value)
	assert.Equal(t, cypher.Bool(true), params[1].Value)
	assert.Equal(t, cypher.Float(3.5), params[2].Value)
	assert.Equal(t, cypher.List{cypher.Int(1), cypher.Int(2)}, params[3].Value)
	assert.Equal(t, cypher.Map{"k": cypher.Str("v")}, params[4].Value)
}

func TestLoad_WalksDirectoryInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	writeCorpusFile(t, dir, "b.yaml", "feature: F\nname: from-b\nsteps: []\n")
	writeCorpusFile(t, dir, "a.yaml", "feature: F\nname: from-a\nsteps: []\n")
	writeCorpusFile(t, filepath.Join(dir, "sub"), "c.yml", "feature: F\nname: from-c\nsteps: []\n")
	writeCorpusFile(t, dir, "ignored.txt", "not yaml")

	entries, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "from-a", entries[0].Scenario.Name)
	assert.Equal(t, "from-b", entries[1].Scenario.Name)
	assert.Equal(t, "from-c", entries[2].Scenario.Name)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), entries[0].File)
}

func TestGroups_BucketsByTopCategory(t *testing.T) {
	entries := []Entry{
		{Scenario: &scenario.Scenario{Categories: []string{"b", "x"}, Feature: "F", Name: "1"}},
		{Scenario: &scenario.Scenario{Categories: []string{"a"}, Feature: "F", Name: "2"}},
		{Scenario: &scenario.Scenario{Feature: "F", Name: "3"}},
		{Scenario: &scenario.Scenario{Categories: []string{"b"}, Feature: "F", Name: "4"}},
	}

	groups := Groups(entries)
	require.Len(t, groups, 3)
	assert.Equal(t, "a", groups[0].Name)
	assert.Equal(t, "b", groups[1].Name)
	assert.Equal(t, "uncategorized", groups[2].Name)

	require.Len(t, groups[1].Entries, 2)
	assert.Equal(t, "1", groups[1].Entries[0].Scenario.Name)
	assert.Equal(t, "4", groups[1].Entries[1].Scenario.Name)
}
