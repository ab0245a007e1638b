package domain

// Happening is a named outcome together with its probability and the
// happenings that may follow it. For anything below the first level the
// probability is conditional on the parent having occurred.
//
// Happening is immutable: construct it with NewHappening and read it through
// its accessors.
type Happening struct {
	name        string
	probability Probability
	next        []Happening
}

// NewHappening builds a happening. The children slice is copied.
func NewHappening(name string, p Probability, next ...Happening) Happening {
	h := Happening{name: name, probability: p}
	if len(next) > 0 {
		h.next = append([]Happening(nil), next...)
	}
	return h
}

// Name is the display label. It may be empty.
func (h Happening) Name() string { return h.name }

// Probability is the (conditional) probability of this happening.
func (h Happening) Probability() Probability { return h.probability }

// Next returns a copy of the happenings that may follow this one.
func (h Happening) Next() []Happening {
	if len(h.next) == 0 {
		return nil
	}
	return append([]Happening(nil), h.next...)
}

// Len is the number of children.
func (h Happening) Len() int { return len(h.next) }

// Child returns the i-th child. It panics if i is out of range.
func (h Happening) Child(i int) Happening { return h.next[i] }

// IsLeaf reports whether nothing follows this happening.
func (h Happening) IsLeaf() bool { return len(h.next) == 0 }

// Depth is 0 for a leaf and 1 + the deepest child otherwise.
func (h Happening) Depth() int {
	depth := 0
	for _, c := range h.next {
		if d := c.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// childSum adds the children's probabilities.
func (h Happening) childSum() Probability {
	ps := make([]Probability, len(h.next))
	for i, c := range h.next {
		ps[i] = c.probability
	}
	return Sum(ps...)
}
