package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/tckview/internal/corpus"
	"github.com/roach88/tckview/internal/htmldoc"
	"github.com/roach88/tckview/internal/render"
	"github.com/roach88/tckview/internal/scenario"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	SourceURL string // template for "[code]" links; empty uses the corpus file path
	KindLabel string // optional adjective for list page titles
}

// RenderSummary is the render command's result payload.
type RenderSummary struct {
	Groups    int    `json:"groups"`
	Scenarios int    `json:"scenarios"`
	Pages     int    `json:"pages"`
	OutDir    string `json:"out_dir"`
}

func (s RenderSummary) String() string {
	return fmt.Sprintf("Rendered %d scenarios in %d groups (%d pages) to %s",
		s.Scenarios, s.Groups, s.Pages, s.OutDir)
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <corpus-dir> <out-dir>",
		Short: "Render a corpus to static HTML pages",
		Long: `Render every scenario group in a corpus to static HTML.

Writes one listing page per group (<out>/<group>.html) and one page per
scenario (<out>/<group>/<n>.html). Groups render concurrently.

Exit codes:
  0 - Rendered successfully
  1 - Rendering failure (malformed fixture, e.g. a result row missing a column)
  2 - Command error (invalid paths, etc.)

Examples:
  tckview render ./corpus ./site
  tckview render ./corpus ./site --source-url "https://example.org/tck/{group}/{feature}"
  tckview render ./corpus ./site --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SourceURL, "source-url", "", "URL template for [code] links ({group}, {feature}, {name}, {example})")
	cmd.Flags().StringVar(&opts.KindLabel, "kind-label", "", "adjective for list page titles (e.g. \"pending\")")

	return cmd
}

func runRender(opts *RenderOptions, corpusDir, outDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(corpusDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("corpus directory not found: %s", corpusDir))
	}

	entries, err := corpus.Load(corpusDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load corpus", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	runID := uuid.NewString()
	meta := htmldoc.Meta{Generator: "tckview " + runID}
	groups := corpus.Groups(entries)

	var g errgroup.Group
	for _, group := range groups {
		g.Go(func() error {
			return renderGroup(group, outDir, opts, meta)
		})
	}
	if err := g.Wait(); err != nil {
		return WrapExitError(ExitFailure, "rendering failed", err)
	}

	summary := RenderSummary{
		Groups:    len(groups),
		Scenarios: len(entries),
		Pages:     len(entries) + len(groups),
		OutDir:    outDir,
	}
	formatter.VerboseLog("run %s complete", runID)
	return formatter.Success(summary, runID)
}

// renderGroup writes one group's listing page plus one page per scenario.
// Pure rendering happens first; files are only written once every page for
// the group rendered cleanly, so a bad fixture doesn't leave a truncated
// group behind.
func renderGroup(group corpus.Group, outDir string, opts *RenderOptions, meta htmldoc.Meta) error {
	// The group name becomes a file and directory name under outDir; a
	// separator in it would scatter files outside the group's layout.
	if strings.ContainsAny(group.Name, `/\`) {
		return fmt.Errorf("group %q: name contains a path separator", group.Name)
	}

	showURL := make(map[*scenario.Scenario]string, len(group.Entries))
	sourceURL := make(map[*scenario.Scenario]string, len(group.Entries))
	templated := URLFromTemplate(opts.SourceURL)

	type scenarioPage struct {
		path string
		body []byte
	}
	pages := make([]scenarioPage, 0, len(group.Entries)+1)

	for i, entry := range group.Entries {
		s := entry.Scenario
		showURL[s] = fmt.Sprintf("%s/%d.html", group.Name, i)
		if opts.SourceURL != "" {
			sourceURL[s] = templated(s)
		} else {
			sourceURL[s] = entry.File
		}

		page, err := render.ScenarioPage(s, render.LocationOptions{SourceURL: sourceURL[s]})
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := htmldoc.WritePage(&buf, page, meta); err != nil {
			return err
		}
		pages = append(pages, scenarioPage{
			path: filepath.Join(outDir, group.Name, fmt.Sprintf("%d.html", i)),
			body: buf.Bytes(),
		})
	}

	list := render.ListPage(group.Name, corpus.Scenarios(group.Entries), opts.KindLabel,
		func(s *scenario.Scenario) string { return showURL[s] },
		func(s *scenario.Scenario) string { return sourceURL[s] },
	)
	var buf bytes.Buffer
	if err := htmldoc.WritePage(&buf, list, meta); err != nil {
		return err
	}
	pages = append(pages, scenarioPage{
		path: filepath.Join(outDir, group.Name+".html"),
		body: buf.Bytes(),
	})

	for _, p := range pages {
		if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(p.path, p.body, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", p.path, err)
		}
	}
	return nil
}
