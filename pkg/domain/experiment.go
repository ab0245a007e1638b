package domain

import (
	"fmt"
	"strings"
)

// PathSeparator joins happening names in violation paths and leaf paths.
const PathSeparator = " > "

// Experiment is a complete probabilistic scenario: a tree of happenings under
// an unnamed root of probability 1.
type Experiment struct {
	root Happening
}

// NewExperiment wraps happenings as the first level of an experiment.
//
// Every probability must be non-negative and every non-empty set of siblings,
// the first level included, must sum to exactly 1. All violations are
// reported together in a *ValidationError.
func NewExperiment(happenings ...Happening) (*Experiment, error) {
	exp := &Experiment{root: NewHappening("", One(), happenings...)}
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return exp, nil
}

// MustExperiment is like NewExperiment but panics on error.
// Intended for fixtures.
func MustExperiment(happenings ...Happening) *Experiment {
	exp, err := NewExperiment(happenings...)
	if err != nil {
		panic(err)
	}
	return exp
}

// Picking expands choices into an experiment of repeated random picks.
func Picking(choices []string, repeats int, replacing bool) (*Experiment, error) {
	happenings, err := Expand(choices, repeats, replacing)
	if err != nil {
		return nil, err
	}
	return NewExperiment(happenings...)
}

// PickingAny is Picking over the untyped choice surface accepted by ExpandAny.
func PickingAny(choices any, repeats int, replacing bool) (*Experiment, error) {
	happenings, err := ExpandAny(choices, repeats, replacing)
	if err != nil {
		return nil, err
	}
	return NewExperiment(happenings...)
}

// Root returns the synthetic root: empty name, probability 1.
func (e *Experiment) Root() Happening { return e.root }

// Happenings returns the first level.
func (e *Experiment) Happenings() []Happening { return e.root.Next() }

// Depth is the number of levels below the root.
func (e *Experiment) Depth() int { return e.root.Depth() }

// Validate re-checks the probability invariants.
func (e *Experiment) Validate() error {
	var violations []Violation
	var check func(h Happening, path []string)
	check = func(h Happening, path []string) {
		where := strings.Join(path, PathSeparator)
		if len(h.next) > 0 {
			if sum := h.childSum(); !sum.IsOne() {
				violations = append(violations, Violation{
					Path:   where,
					Reason: fmt.Sprintf("probabilities sum to %s, want 1", sum),
				})
			}
		}
		for _, c := range h.next {
			childPath := append(append([]string(nil), path...), c.name)
			if c.probability.Sign() < 0 {
				violations = append(violations, Violation{
					Path:   strings.Join(childPath, PathSeparator),
					Reason: fmt.Sprintf("negative probability %s", c.probability),
				})
			}
			check(c, childPath)
		}
	}
	check(e.root, nil)

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Walk visits every happening below the root in depth-first pre-order.
// path holds the 1-based sibling positions from the first level down.
// Returning false from fn skips the happening's children.
func (e *Experiment) Walk(fn func(h Happening, path []int) bool) {
	var visit func(h Happening, path []int)
	visit = func(h Happening, path []int) {
		for i, c := range h.next {
			childPath := append(append([]int(nil), path...), i+1)
			if fn(c, childPath) {
				visit(c, childPath)
			}
		}
	}
	visit(e.root, nil)
}

// Leaf is a complete root-to-leaf path.
type Leaf struct {
	Path       []Happening
	Cumulative Probability
}

// Names returns the names along the path.
func (l Leaf) Names() []string {
	names := make([]string, len(l.Path))
	for i, h := range l.Path {
		names[i] = h.name
	}
	return names
}

// Outcome joins the names along the path, e.g. "HT".
func (l Leaf) Outcome() string {
	return strings.Join(l.Names(), "")
}

// Leaves returns every leaf path in order with the product of the
// probabilities along it.
func (e *Experiment) Leaves() []Leaf {
	var leaves []Leaf
	var visit func(h Happening, path []Happening, total Probability)
	visit = func(h Happening, path []Happening, total Probability) {
		for _, c := range h.next {
			childPath := append(append([]Happening(nil), path...), c)
			childTotal := total.Mul(c.probability)
			if c.IsLeaf() {
				leaves = append(leaves, Leaf{Path: childPath, Cumulative: childTotal})
				continue
			}
			visit(c, childPath, childTotal)
		}
	}
	visit(e.root, nil, One())
	return leaves
}
