/*
Package probmodels renders finite, multi-stage random experiments as the two
diagrams used in introductory probability courses: the area model and the
tree model.

An experiment is a tree of happenings. Each happening has a name, an exact
probability conditional on its parent, and the happenings that can follow it.
Probabilities are exact fractions throughout, so the totals shown on a diagram
are never subject to rounding.

# Concept

Experiments come from a store (the built-in course catalog, a directory of
YAML/JSON definitions, or Redis). The Engine resolves them by name and renders
them as TikZ markup for LaTeX documents, as Mermaid flowcharts, or as a
markdown table of outcomes.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/b5strbal/probability-models"
	)

	func main() {
		eng, err := probmodels.New()
		if err != nil {
			log.Fatal(err)
		}

		tikz, err := eng.AreaModel(context.Background(), "coin-flips")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(tikz)
	}

Experiments can also be built directly:

	exp, err := domain.Picking(domain.Labels("QQDN"), 2, false)

or with the fluent builder in package dsl:

	b := dsl.New()
	b.Add("Red", "2/5").Then("Red", "1/4").Then("Blue", "3/4")
	b.Add("Blue", "3/5").Then("Red", "1/2").Then("Blue", "1/2")
	exp, err := b.Build()

# Limits

The area model supports at most two stages. The tree model supports as many
stages as the sibling spacing table has entries (four by default); pass
layout.WithSiblingDistances for deeper trees.
*/
package probmodels
