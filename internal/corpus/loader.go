package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tckview/internal/scenario"
)

// scenarioDoc mirrors one YAML document in a corpus file.
type scenarioDoc struct {
	Feature    string    `yaml:"feature"`
	Categories []string  `yaml:"categories"`
	Name       string    `yaml:"name"`
	Example    *int      `yaml:"example,omitempty"`
	Steps      []stepDoc `yaml:"steps"`
}

// stepDoc is the union of all step fields; Kind selects which apply.
type stepDoc struct {
	Kind      string         `yaml:"kind"`
	Params    []paramDoc     `yaml:"params,omitempty"`
	Signature string         `yaml:"signature,omitempty"`
	Values    *recordsDoc    `yaml:"values,omitempty"`
	Role      string         `yaml:"role,omitempty"`
	Query     string         `yaml:"query,omitempty"`
	Sorted    bool           `yaml:"sorted,omitempty"`
	Records   *recordsDoc    `yaml:"records,omitempty"`
	Counts    map[string]int `yaml:"counts,omitempty"`
	Type      string         `yaml:"type,omitempty"`
	Phase     string         `yaml:"phase,omitempty"`
	Detail    string         `yaml:"detail,omitempty"`
}

type paramDoc struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

type recordsDoc struct {
	Header []string         `yaml:"header"`
	Rows   []map[string]any `yaml:"rows"`
}

// Entry pairs a loaded scenario with the corpus file it came from.
type Entry struct {
	Scenario *scenario.Scenario
	File     string
}

// Scenarios extracts the scenario values from entries, preserving order.
func Scenarios(entries []Entry) []*scenario.Scenario {
	scenarios := make([]*scenario.Scenario, len(entries))
	for i, e := range entries {
		scenarios[i] = e.Scenario
	}
	return scenarios
}

// Load reads every scenario file (*.yaml, *.yml) under dir, in lexical path
// order. Returns an error if any file is unreadable or malformed.
func Load(dir string) ([]Entry, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus directory: %w", err)
	}
	sort.Strings(paths)

	var entries []Entry
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		for _, s := range loaded {
			entries = append(entries, Entry{Scenario: s, File: path})
		}
	}
	return entries, nil
}

// LoadFile reads and parses one corpus file. A file may hold several
// scenarios as separate YAML documents. Unknown fields are rejected
// (catches typos like "step:" vs "steps:").
func LoadFile(path string) ([]*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	var scenarios []*scenario.Scenario
	for i := 0; ; i++ {
		var doc scenarioDoc
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}

		s, err := doc.toScenario()
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (doc *scenarioDoc) toScenario() (*scenario.Scenario, error) {
	if doc.Feature == "" {
		return nil, fmt.Errorf("feature is required")
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	steps := make([]scenario.Step, len(doc.Steps))
	for i, sd := range doc.Steps {
		step, err := sd.toStep()
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		steps[i] = step
	}

	return &scenario.Scenario{
		Categories: doc.Categories,
		Feature:    doc.Feature,
		Name:       doc.Name,
		Example:    doc.Example,
		Steps:      steps,
	}, nil
}

// Group is one bucket of scenarios sharing a top-level category.
type Group struct {
	Name    string
	Entries []Entry
}

// GroupName returns the group a scenario belongs to: its outermost
// category, or "uncategorized" when it has none.
func GroupName(s *scenario.Scenario) string {
	if len(s.Categories) == 0 {
		return "uncategorized"
	}
	return s.Categories[0]
}

// Groups buckets entries by top-level category. Groups come back sorted by
// name; within a group, entries keep their input order.
func Groups(entries []Entry) []Group {
	byName := make(map[string][]Entry)
	for _, e := range entries {
		name := GroupName(e.Scenario)
		byName[name] = append(byName[name], e)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, len(names))
	for i, name := range names {
		groups[i] = Group{Name: name, Entries: byName[name]}
	}
	return groups
}

// validRoles maps YAML role names to query-role tags.
var validRoles = map[string]scenario.QueryRole{
	"init":        scenario.QueryInit,
	"exec":        scenario.QueryExec,
	"side-effect": scenario.QuerySideEffect,
}

func roleNames() string {
	names := make([]string, 0, len(validRoles))
	for name := range validRoles {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
