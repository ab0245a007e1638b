package dsl

import (
	"errors"
	"fmt"

	"github.com/b5strbal/probability-models/pkg/domain"
)

// Builder manages the experiment construction.
type Builder struct {
	roots []*NodeBuilder
	errs  []error
}

// New creates a new experiment builder.
func New() *Builder {
	return &Builder{}
}

// Add appends a first-level happening. Probabilities are written as
// fractions ("2/5"), decimals ("0.4") or integers.
func (b *Builder) Add(name, probability string) *NodeBuilder {
	nb := b.node(name, probability)
	b.roots = append(b.roots, nb)
	return nb
}

// Picking appends the first level produced by the choice expander.
func (b *Builder) Picking(choices string, repeats int, replacing bool) *Builder {
	hs, err := domain.ExpandString(choices, repeats, replacing)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	for i := range hs {
		b.roots = append(b.roots, &NodeBuilder{builder: b, built: &hs[i]})
	}
	return b
}

func (b *Builder) node(name, probability string) *NodeBuilder {
	p, err := domain.ParseProbability(probability)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("happening %q: %w", name, err))
	}
	return &NodeBuilder{name: name, probability: p, builder: b}
}

// Build compiles the happenings into a validated experiment.
func (b *Builder) Build() (*domain.Experiment, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("failed to build experiment: %w", errors.Join(b.errs...))
	}

	happenings := make([]domain.Happening, len(b.roots))
	for i, nb := range b.roots {
		happenings[i] = nb.Build()
	}

	exp, err := domain.NewExperiment(happenings...)
	if err != nil {
		return nil, fmt.Errorf("failed to build experiment: %w", err)
	}
	return exp, nil
}

// MustBuild is like Build but panics on error. Intended for fixtures.
func (b *Builder) MustBuild() *domain.Experiment {
	exp, err := b.Build()
	if err != nil {
		panic(err)
	}
	return exp
}
