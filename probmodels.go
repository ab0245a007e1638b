package probmodels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/b5strbal/probability-models/internal/catalog"
	"github.com/b5strbal/probability-models/internal/logging"
	"github.com/b5strbal/probability-models/internal/presentation/graph"
	"github.com/b5strbal/probability-models/internal/presentation/tui"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/layout"
	"github.com/b5strbal/probability-models/pkg/markup"
	"github.com/b5strbal/probability-models/pkg/ports"
)

// Engine is the high-level entry point for the library.
// It resolves experiments from a store and renders them.
type Engine struct {
	store  ports.ExperimentStore
	tree   layout.TreeConfig
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets where experiments are looked up. Defaults to the built-in catalog.
func WithStore(s ports.ExperimentStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithTreeConfig sets the base tree layout. Per-call options are applied on top.
func WithTreeConfig(cfg layout.TreeConfig) Option {
	return func(e *Engine) {
		e.tree = cfg
	}
}

// New initializes an Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		tree: layout.DefaultTreeConfig(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = catalog.Store()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if len(eng.tree.SiblingDistances) == 0 {
		return nil, errors.New("tree config needs at least one sibling distance")
	}
	return eng, nil
}

// Store returns the store the engine reads from.
func (e *Engine) Store() ports.ExperimentStore {
	return e.store
}

// Experiment returns the experiment registered under name.
func (e *Engine) Experiment(ctx context.Context, name string) (*domain.Experiment, error) {
	return e.store.Get(ctx, name)
}

// List returns the names of all experiments.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// Describe returns the description of name if the store keeps one.
func (e *Engine) Describe(ctx context.Context, name string) (string, error) {
	if d, ok := e.store.(ports.Describer); ok {
		return d.Describe(ctx, name)
	}
	if _, err := e.store.Get(ctx, name); err != nil {
		return "", err
	}
	return "", nil
}

// AreaModel renders the named experiment as TikZ area model markup.
func (e *Engine) AreaModel(ctx context.Context, name string, opts ...markup.AreaOption) (string, error) {
	return e.render(ctx, name, domain.ModelArea, func(ctx context.Context) (string, error) {
		exp, err := e.store.Get(ctx, name)
		if err != nil {
			return "", err
		}
		return markup.AreaModelWith(exp, markup.NewAreaOptions(opts...))
	})
}

// TreeModel renders the named experiment as TikZ tree model markup.
func (e *Engine) TreeModel(ctx context.Context, name string, opts ...layout.TreeOption) (string, error) {
	return e.render(ctx, name, domain.ModelTree, func(ctx context.Context) (string, error) {
		exp, err := e.store.Get(ctx, name)
		if err != nil {
			return "", err
		}
		return markup.TreeModel(exp, e.treeConfig(opts))
	})
}

// Mermaid renders the named experiment's tree model as a Mermaid flowchart.
// A non-empty highlight is a node ID such as "1-2"; the path from the root to
// that node is emphasised.
func (e *Engine) Mermaid(ctx context.Context, name, highlight string, opts ...layout.TreeOption) (string, error) {
	return e.render(ctx, name, domain.ModelMermaid, func(ctx context.Context) (string, error) {
		exp, err := e.store.Get(ctx, name)
		if err != nil {
			return "", err
		}
		return mermaid(exp, e.treeConfig(opts), highlight)
	})
}

// Summary renders a markdown table of the named experiment's outcomes.
func (e *Engine) Summary(ctx context.Context, name string) (string, error) {
	return e.render(ctx, name, domain.ModelSummary, func(ctx context.Context) (string, error) {
		exp, err := e.store.Get(ctx, name)
		if err != nil {
			return "", err
		}
		desc, err := e.Describe(ctx, name)
		if err != nil {
			return "", err
		}
		return tui.Summary(name, desc, exp), nil
	})
}

// RenderArea renders an experiment that is not in the store.
// label only identifies the render in hooks and logs.
func (e *Engine) RenderArea(ctx context.Context, label string, exp *domain.Experiment, opts ...markup.AreaOption) (string, error) {
	return e.render(ctx, label, domain.ModelArea, func(context.Context) (string, error) {
		return markup.AreaModelWith(exp, markup.NewAreaOptions(opts...))
	})
}

// RenderTree renders an experiment that is not in the store.
func (e *Engine) RenderTree(ctx context.Context, label string, exp *domain.Experiment, opts ...layout.TreeOption) (string, error) {
	return e.render(ctx, label, domain.ModelTree, func(context.Context) (string, error) {
		return markup.TreeModel(exp, e.treeConfig(opts))
	})
}

// RenderMermaid renders an experiment that is not in the store.
func (e *Engine) RenderMermaid(ctx context.Context, label string, exp *domain.Experiment, highlight string, opts ...layout.TreeOption) (string, error) {
	return e.render(ctx, label, domain.ModelMermaid, func(context.Context) (string, error) {
		return mermaid(exp, e.treeConfig(opts), highlight)
	})
}

func mermaid(exp *domain.Experiment, cfg layout.TreeConfig, highlight string) (string, error) {
	t, err := layout.Tree(exp, cfg)
	if err != nil {
		return "", err
	}
	var overlay *graph.Overlay
	if highlight != "" {
		path := graph.PathTo(t, highlight)
		if path == nil {
			return "", fmt.Errorf("%w: no node %q to highlight", domain.ErrInvalidInput, highlight)
		}
		overlay = &graph.Overlay{Highlighted: path}
	}
	return graph.GenerateMermaid(t, overlay), nil
}

func (e *Engine) treeConfig(opts []layout.TreeOption) layout.TreeConfig {
	cfg := e.tree
	cfg.SiblingDistances = append([]float64(nil), e.tree.SiblingDistances...)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// render wraps fn with lifecycle hooks and logging.
func (e *Engine) render(ctx context.Context, name string, kind domain.ModelKind, fn func(context.Context) (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := e.now()
	event := &domain.RenderEvent{Timestamp: start, Experiment: name, Model: kind}
	if e.hooks.OnRenderStart != nil {
		e.hooks.OnRenderStart(ctx, event)
	}

	out, err := fn(ctx)

	event.Duration = e.now().Sub(start)
	event.Err = err
	if e.hooks.OnRenderEnd != nil {
		e.hooks.OnRenderEnd(ctx, event)
	}

	if err != nil {
		e.logger.Debug("render failed", "experiment", name, "model", kind, "error", err)
		return "", err
	}
	e.logger.Debug("rendered", "experiment", name, "model", kind, "duration", event.Duration)
	return out, nil
}
