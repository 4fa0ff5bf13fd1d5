package cli

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/tckview/internal/corpus"
	"github.com/roach88/tckview/internal/htmldoc"
	"github.com/roach88/tckview/internal/markup"
	"github.com/roach88/tckview/internal/render"
	"github.com/roach88/tckview/internal/scenario"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr      string
	SourceURL string
	KindLabel string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve <corpus-dir>",
		Short: "Serve a corpus as browsable HTML",
		Long: `Serve a corpus over HTTP, rendering pages on the fly.

Routes:
  /                         group overview
  /group/{group}            scenario listing for one group
  /scenario/{group}/{idx}   one scenario's steps

The corpus is loaded once at startup; restart to pick up corpus changes.

Examples:
  tckview serve ./corpus
  tckview serve ./corpus --addr :9090`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.SourceURL, "source-url", "", "URL template for [code] links ({group}, {feature}, {name}, {example})")
	cmd.Flags().StringVar(&opts.KindLabel, "kind-label", "", "adjective for list page titles")

	return cmd
}

func runServe(opts *ServeOptions, corpusDir string) error {
	if _, err := os.Stat(corpusDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("corpus directory not found: %s", corpusDir))
	}

	entries, err := corpus.Load(corpusDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load corpus", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create logger", err)
	}
	defer logger.Sync()

	handler := NewViewerHandler(entries, ViewerConfig{
		SourceURL: opts.SourceURL,
		KindLabel: opts.KindLabel,
		Logger:    logger,
	})

	logger.Info("serving corpus",
		zap.String("addr", opts.Addr),
		zap.Int("scenarios", len(entries)),
	)
	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		return WrapExitError(ExitCommandError, "server failed", err)
	}
	return nil
}

// ViewerConfig configures the HTTP viewer.
type ViewerConfig struct {
	SourceURL string
	KindLabel string
	Logger    *zap.Logger
}

type viewer struct {
	groups    []corpus.Group
	byName    map[string]corpus.Group
	sourceFor render.URLFor
	files     map[*scenario.Scenario]string
	kindLabel string
	logger    *zap.Logger
}

// NewViewerHandler builds the HTTP handler serving a loaded corpus. Pages
// are rendered per request from the immutable corpus; concurrent requests
// need no coordination.
func NewViewerHandler(entries []corpus.Entry, cfg ViewerConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	v := &viewer{
		groups:    corpus.Groups(entries),
		byName:    make(map[string]corpus.Group),
		sourceFor: URLFromTemplate(cfg.SourceURL),
		files:     make(map[*scenario.Scenario]string, len(entries)),
		kindLabel: cfg.KindLabel,
		logger:    cfg.Logger,
	}
	for _, g := range v.groups {
		v.byName[g.Name] = g
	}
	for _, e := range entries {
		v.files[e.Scenario] = e.File
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", v.handleOverview)
	mux.HandleFunc("GET /group/{group}", v.handleGroup)
	mux.HandleFunc("GET /scenario/{group}/{idx}", v.handleScenario)
	return v.logged(mux)
}

func (v *viewer) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		v.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (v *viewer) handleOverview(w http.ResponseWriter, r *http.Request) {
	items := make([]markup.Item, len(v.groups))
	for i, g := range v.groups {
		label := fmt.Sprintf("%s (%d)", g.Name, len(g.Entries))
		items[i] = markup.Item{Children: []markup.Node{
			markup.LinkText("/group/"+url.PathEscape(g.Name), "scenarioLink", label),
		}}
	}
	title := fmt.Sprintf("%d groups", len(v.groups))
	page := &markup.Page{
		Title: title,
		Body: []markup.Node{
			markup.Heading{Level: 1, Class: "pageTitle", Children: []markup.Node{markup.Text(title)}},
			markup.List{Class: "scenarioList", Items: items},
		},
	}
	v.writePage(w, page)
}

func (v *viewer) handleGroup(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("group")
	group, ok := v.byName[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	index := make(map[*scenario.Scenario]int, len(group.Entries))
	for i, e := range group.Entries {
		index[e.Scenario] = i
	}

	page := render.ListPage(name, corpus.Scenarios(group.Entries), v.kindLabel,
		func(s *scenario.Scenario) string {
			return fmt.Sprintf("/scenario/%s/%d", url.PathEscape(name), index[s])
		},
		v.sourceURL,
	)
	v.writePage(w, page)
}

func (v *viewer) handleScenario(w http.ResponseWriter, r *http.Request) {
	group, ok := v.byName[r.PathValue("group")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil || idx < 0 || idx >= len(group.Entries) {
		http.NotFound(w, r)
		return
	}

	s := group.Entries[idx].Scenario
	page, err := render.ScenarioPage(s, render.LocationOptions{SourceURL: v.sourceURL(s)})
	if err != nil {
		// Malformed fixture: fail this scenario only, never the server.
		v.logger.Error("render failed", zap.String("scenario", s.Title()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	v.writePage(w, page)
}

// sourceURL prefers the configured template and falls back to the corpus
// file path.
func (v *viewer) sourceURL(s *scenario.Scenario) string {
	if u := v.sourceFor(s); u != "" {
		return u
	}
	return v.files[s]
}

func (v *viewer) writePage(w http.ResponseWriter, page *markup.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := htmldoc.WritePage(w, page, htmldoc.Meta{Generator: "tckview"}); err != nil {
		v.logger.Error("write failed", zap.Error(err))
	}
}
