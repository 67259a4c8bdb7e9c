package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/go-longui/longui/cmd/longui/internal/config"
	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
	"github.com/go-longui/longui/pkg/layout"
	"github.com/go-longui/longui/pkg/markup"
	"github.com/go-longui/longui/pkg/widgets"
)

// session holds the tree and pipeline one command works on.
type session struct {
	cfg      *config.Resolved
	tree     *core.Tree
	pipeline *layout.PipelineOwner
	registry *markup.Registry
	diags    *countingHandler
	restore  errors.Handler
}

func newSession() (*session, error) {
	root, err := config.FindProjectRoot(projectDir)
	if err != nil {
		root = projectDir
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logHandler := errors.NewLogHandler(logger, cfg.Level)
	logHandler.Verbose = cfg.Verbose
	diags := &countingHandler{next: logHandler}

	s := &session{
		cfg:      cfg,
		pipeline: &layout.PipelineOwner{},
		registry: widgets.NewRegistry(),
		diags:    diags,
		restore:  errors.DefaultHandler,
	}
	errors.SetHandler(diags)
	s.tree = core.NewTree(core.TreeConfig{Window: s.pipeline, Diagnostics: diags})
	s.registry.Broadcast(s.tree, markup.PhaseInitialize)
	return s, nil
}

// close tears the factories down and restores the global handler.
func (s *session) close() {
	s.registry.Broadcast(s.tree, markup.PhaseUninitialize)
	errors.SetHandler(s.restore)
}

// build reads and builds the description at path.
func (s *session) build(path string) (core.Widget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b := &markup.Builder{Tree: s.tree, Registry: s.registry}
	return b.BuildBytes(data)
}

// layout runs one frame with root filling size.
func (s *session) layout(root core.Widget, size geometry.Size, zoom float32) {
	if zoom != config.DefaultZoom {
		root.Node().SetZoom(zoom, zoom)
	}
	s.pipeline.SetRoot(root, size)
	s.pipeline.Frame()
}

// release drops root and everything under it.
func (s *session) release(root core.Widget) {
	if err := s.tree.Release(root); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
}

// countingHandler counts diagnostics per level before passing them on.
type countingHandler struct {
	next errors.Handler

	mu     sync.Mutex
	counts [errors.LevelError + 1]int
}

func (h *countingHandler) HandleDiagnostic(d *errors.Diagnostic) {
	h.mu.Lock()
	if d.Level >= errors.LevelHint && d.Level <= errors.LevelError {
		h.counts[d.Level]++
	}
	h.mu.Unlock()
	h.next.HandleDiagnostic(d)
}

func (h *countingHandler) HandlePanic(err *errors.PanicError) {
	h.next.HandlePanic(err)
}

func (h *countingHandler) count(level errors.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[level]
}

func (h *countingHandler) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts = [errors.LevelError + 1]int{}
}

// walk visits w and its descendants in pre-order.
func walk(w core.Widget, fn func(core.Widget)) {
	fn(w)
	if v, ok := w.(core.ChildVisitor); ok {
		v.VisitChildren(func(child core.Widget) {
			walk(child, fn)
		})
	}
}
