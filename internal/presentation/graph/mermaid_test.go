package graph_test

import (
	"strings"
	"testing"

	"github.com/b5strbal/probability-models/internal/presentation/graph"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coinTree(t *testing.T, opts ...layout.TreeOption) *layout.TreeLayout {
	t.Helper()
	exp, err := domain.Picking(domain.Labels("HT"), 2, true)
	require.NoError(t, err)
	tree, err := layout.Tree(exp, layout.NewTreeConfig(opts...))
	require.NoError(t, err)
	return tree
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(coinTree(t), nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`root((" "))`,
		`n1["H"]`,
		`root -- "1/2" --> n1`,
		`n1_2["T"]`,
		`n1 -- "1/2" --> n1_2`,
		`n1_2_total(["1/4"])`,
		`n1_2 -.-> n1_2_total`,
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 4, strings.Count(out, "-.->"))
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_NoLabels(t *testing.T) {
	out := graph.GenerateMermaid(coinTree(t, layout.WithoutLabels()), nil)

	assert.Contains(t, out, "root --> n1\n")
	assert.NotContains(t, out, `-- "1/2" -->`)
	// totals are still shown
	assert.Contains(t, out, `(["1/4"])`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	tree := coinTree(t)
	path := graph.PathTo(tree, "2-1")
	assert.Equal(t, []string{"root", "2", "2-1"}, path)

	out := graph.GenerateMermaid(tree, &graph.Overlay{Highlighted: append(path, "2")})
	assert.Contains(t, out, "classDef highlighted")
	assert.Contains(t, out, "class root highlighted;")
	assert.Contains(t, out, "class n2_1 highlighted;")
	assert.Equal(t, 1, strings.Count(out, "class n2 highlighted;"))
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	exp := domain.MustExperiment(domain.NewHappening(`say "hi"`, domain.One()))
	tree, err := layout.Tree(exp, layout.DefaultTreeConfig())
	require.NoError(t, err)

	out := graph.GenerateMermaid(tree, nil)
	assert.Contains(t, out, `n1["say 'hi'"]`)
}

func TestPathTo_Unknown(t *testing.T) {
	assert.Nil(t, graph.PathTo(coinTree(t), "9-9"))
}
