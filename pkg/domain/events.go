package domain

import (
	"context"
	"time"
)

// ModelKind names the diagram being rendered.
type ModelKind string

const (
	ModelArea    ModelKind = "area"
	ModelTree    ModelKind = "tree"
	ModelMermaid ModelKind = "mermaid"
	ModelSummary ModelKind = "summary"
)

// RenderEvent describes one render call.
type RenderEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Experiment string        `json:"experiment"`
	Model      ModelKind     `json:"model"`
	Duration   time.Duration `json:"duration,omitempty"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for render observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnRenderStart func(context.Context, *RenderEvent)
	OnRenderEnd   func(context.Context, *RenderEvent)
}

// CombineHooks returns hooks that call each of hooks in order.
func CombineHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRenderStart: func(ctx context.Context, e *RenderEvent) {
			for _, h := range hooks {
				if h.OnRenderStart != nil {
					h.OnRenderStart(ctx, e)
				}
			}
		},
		OnRenderEnd: func(ctx context.Context, e *RenderEvent) {
			for _, h := range hooks {
				if h.OnRenderEnd != nil {
					h.OnRenderEnd(ctx, e)
				}
			}
		},
	}
}
