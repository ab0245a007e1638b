/*
Package dsl provides a fluent builder for hand-authored experiments.

The choice expander covers "draw from a bag" scenarios. Anything else, such as
unequal first-level probabilities or a second level that differs between
branches, is easier to write with the builder than with nested
domain.NewHappening calls.

Example usage:

	package main

	import (
		"github.com/b5strbal/probability-models/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Add("Rain", "1/4").
			Then("Late", "2/3").
			Then("On time", "1/3")

		b.Add("Sun", "3/4").
			Then("Late", "1/10").
			Then("On time", "9/10")

		exp, err := b.Build()
		// ... render exp with package markup
	}
*/
package dsl
