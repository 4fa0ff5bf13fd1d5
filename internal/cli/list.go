package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tckview/internal/catalog"
	"github.com/roach88/tckview/internal/corpus"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	DB string // read from a catalog database instead of a corpus directory
}

// ListedScenario is one scenario in the list command's output.
type ListedScenario struct {
	Group   string `json:"group"`
	Feature string `json:"feature"`
	Name    string `json:"name"`
	Example *int   `json:"example,omitempty"`
	File    string `json:"file"`
}

// ListResult is the list command's result payload.
type ListResult struct {
	Scenarios []ListedScenario `json:"scenarios"`
	Total     int              `json:"total"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list [corpus-dir]",
		Short: "List the scenarios in a corpus",
		Long: `List every scenario in a corpus, one per line.

Reads scenario files from a corpus directory, or from a catalog database
built with "tckview index" when --db is given.

Examples:
  tckview list ./corpus
  tckview list --db ./tck.db
  tckview list ./corpus --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "catalog database path (skips corpus parsing)")

	return cmd
}

func runList(opts *ListOptions, args []string, cmd *cobra.Command) error {
	var listed []ListedScenario
	var err error

	switch {
	case opts.DB != "":
		listed, err = listFromCatalog(opts.DB)
	case len(args) == 1:
		listed, err = listFromCorpus(args[0])
	default:
		return NewExitError(ExitCommandError, "either a corpus directory or --db is required")
	}
	if err != nil {
		return err
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Format == "json" {
		return formatter.Success(ListResult{Scenarios: listed, Total: len(listed)}, "")
	}

	for _, s := range listed {
		title := s.Name
		if s.Example != nil {
			title = fmt.Sprintf("%s #%d", s.Name, *s.Example)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t(%s)\n", s.Group, s.Feature, title, s.File)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d scenarios\n", len(listed))
	return nil
}

func listFromCorpus(dir string) ([]ListedScenario, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("corpus directory not found: %s", dir))
	}
	entries, err := corpus.Load(dir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load corpus", err)
	}

	listed := make([]ListedScenario, len(entries))
	for i, e := range entries {
		listed[i] = ListedScenario{
			Group:   strings.Join(e.Scenario.Categories, "/"),
			Feature: e.Scenario.Feature,
			Name:    e.Scenario.Name,
			Example: e.Scenario.Example,
			File:    e.File,
		}
	}
	return listed, nil
}

func listFromCatalog(path string) ([]ListedScenario, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("catalog database not found: %s", path))
	}
	cat, err := catalog.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	defer cat.Close()

	groups, err := cat.Groups()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read catalog", err)
	}

	var listed []ListedScenario
	for _, g := range groups {
		entries, err := cat.ScenariosInGroup(g.Name)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read catalog", err)
		}
		for _, e := range entries {
			listed = append(listed, ListedScenario{
				Group:   e.GroupPath,
				Feature: e.Feature,
				Name:    e.Name,
				Example: e.Example,
				File:    e.SourceFile,
			})
		}
	}
	return listed, nil
}
