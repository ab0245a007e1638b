/*
Package domain contains the core probability model: exact probabilities,
happenings and experiments.

It is kept pure and free of I/O. Everything here is an immutable value built
once and then only read, so values may be shared freely between goroutines.

# Key Entities

  - Probability: an exact, non-negative fraction backed by math/big.
  - Happening: a named outcome with its conditional probability and the happenings that may follow it.
  - Experiment: a forest of first-level happenings under an implicit certain root.

Experiments for the common "draw from a bag" scenario are produced by Picking,
which expands a list of choice labels into a weighted tree:

	exp, err := domain.Picking([]string{"H", "T"}, 2, true)
	if err != nil {
		return err
	}
	for _, leaf := range exp.Leaves() {
		fmt.Println(leaf.Names(), leaf.Cumulative)
	}
*/
package domain
