package dsl

import "github.com/b5strbal/probability-models/pkg/domain"

// NodeBuilder provides a fluent API for configuring a happening.
type NodeBuilder struct {
	name        string
	probability domain.Probability
	children    []*NodeBuilder
	builder     *Builder
	parent      *NodeBuilder

	// built is set for happenings produced by the expander.
	built *domain.Happening
}

// Then adds a follow-up happening without children and returns the
// receiver, so sibling outcomes can be chained.
func (n *NodeBuilder) Then(name, probability string) *NodeBuilder {
	n.Child(name, probability)
	return n
}

// Child adds a follow-up happening and returns its builder for nesting.
// Use Up to get back to the receiver.
func (n *NodeBuilder) Child(name, probability string) *NodeBuilder {
	child := n.builder.node(name, probability)
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Up returns the parent happening's builder, or the receiver at the first level.
func (n *NodeBuilder) Up() *NodeBuilder {
	if n.parent == nil {
		return n
	}
	return n.parent
}

// Picking adds the follow-ups produced by the choice expander.
func (n *NodeBuilder) Picking(choices string, repeats int, replacing bool) *NodeBuilder {
	hs, err := domain.ExpandString(choices, repeats, replacing)
	if err != nil {
		n.builder.errs = append(n.builder.errs, err)
		return n
	}
	for i := range hs {
		n.children = append(n.children, &NodeBuilder{builder: n.builder, parent: n, built: &hs[i]})
	}
	return n
}

// Build returns the underlying domain.Happening.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Happening {
	if n.built != nil {
		return *n.built
	}
	next := make([]domain.Happening, len(n.children))
	for i, c := range n.children {
		next[i] = c.Build()
	}
	return domain.NewHappening(n.name, n.probability, next...)
}
