package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tckview/internal/catalog"
	"github.com/roach88/tckview/internal/corpus"
)

// IndexOptions holds flags for the index command.
type IndexOptions struct {
	*RootOptions
}

// IndexResult is the index command's result payload.
type IndexResult struct {
	Scenarios int    `json:"scenarios"`
	Database  string `json:"database"`
}

func (r IndexResult) String() string {
	return fmt.Sprintf("Indexed %d scenarios into %s", r.Scenarios, r.Database)
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index <corpus-dir> <db-path>",
		Short: "Build a catalog database for a corpus",
		Long: `Index a corpus into a SQLite catalog database.

The catalog records each scenario's group, feature, name, example number,
and source file, so listings don't have to re-parse the corpus.

Examples:
  tckview index ./corpus ./tck.db
  tckview list --db ./tck.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(opts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runIndex(opts *IndexOptions, corpusDir, dbPath string, cmd *cobra.Command) error {
	if _, err := os.Stat(corpusDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("corpus directory not found: %s", corpusDir))
	}

	entries, err := corpus.Load(corpusDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load corpus", err)
	}

	cat, err := catalog.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	defer cat.Close()

	indexed := make([]catalog.Entry, len(entries))
	for i, e := range entries {
		indexed[i] = catalog.Entry{
			GroupPath:  strings.Join(e.Scenario.Categories, "/"),
			Feature:    e.Scenario.Feature,
			Name:       e.Scenario.Name,
			Example:    e.Scenario.Example,
			SourceFile: e.File,
			Position:   i,
		}
	}

	if err := cat.ReplaceAll(indexed); err != nil {
		return WrapExitError(ExitCommandError, "failed to write catalog", err)
	}

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	return formatter.Success(IndexResult{Scenarios: len(entries), Database: dbPath}, "")
}
