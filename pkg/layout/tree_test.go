package layout

import (
	"testing"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_CoinFlips(t *testing.T) {
	exp, err := domain.Picking(domain.Labels("HT"), 2, true)
	require.NoError(t, err)

	tree, err := Tree(exp, DefaultTreeConfig())
	require.NoError(t, err)

	ids := make([]string, len(tree.Nodes))
	for i, n := range tree.Nodes {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"1", "1-1", "1-2", "2", "2-1", "2-2"}, ids)

	first, ok := tree.Node("1")
	require.True(t, ok)
	assert.Equal(t, RootID, first.ParentID)
	assert.Equal(t, "H", first.Name)
	assert.False(t, first.Leaf)
	assert.Equal(t, -3.0, first.X)
	assert.Equal(t, -2.2, first.Y)

	leaf, ok := tree.Node("1-2")
	require.True(t, ok)
	assert.Equal(t, "1", leaf.ParentID)
	assert.True(t, leaf.Leaf)
	assert.Equal(t, "1/4", leaf.Cumulative.String())
	assert.Equal(t, "1/2", leaf.Probability.String())
	assert.InDelta(t, -1.5, leaf.X, 1e-9)
	assert.InDelta(t, -4.4, leaf.Y, 1e-9)
	assert.InDelta(t, -5.5, leaf.AnnotationY, 1e-9)
	assert.True(t, leaf.ShowLabel)

	assert.Len(t, tree.Leaves(), 4)
}

func TestTree_CumulativeIsPathProduct(t *testing.T) {
	exp, err := domain.Picking(domain.Labels("RRBBB"), 3, false)
	require.NoError(t, err)

	tree, err := Tree(exp, DefaultTreeConfig())
	require.NoError(t, err)

	leaves := exp.Leaves()
	nodes := tree.Leaves()
	require.Len(t, nodes, len(leaves))

	var total []domain.Probability
	for i, l := range leaves {
		product := domain.One()
		for _, h := range l.Path {
			product = product.Mul(h.Probability())
		}
		assert.True(t, product.Equal(nodes[i].Cumulative), "leaf %s", nodes[i].ID)
		total = append(total, nodes[i].Cumulative)
	}
	assert.True(t, domain.Sum(total...).IsOne())
}

func TestTree_WithoutLabels(t *testing.T) {
	exp, err := domain.Picking(domain.Labels("HT"), 1, true)
	require.NoError(t, err)

	tree, err := Tree(exp, NewTreeConfig(WithoutLabels()))
	require.NoError(t, err)
	for _, n := range tree.Nodes {
		assert.False(t, n.ShowLabel)
		assert.Equal(t, "1/2", n.Cumulative.String())
	}
}

func TestTree_DepthBeyondSpacingTable(t *testing.T) {
	exp, err := domain.Picking(domain.Labels("HT"), 3, true)
	require.NoError(t, err)

	_, err = Tree(exp, NewTreeConfig(WithSiblingDistances(4, 2)))
	assert.ErrorIs(t, err, domain.ErrUnsupportedDepth)

	tree, err := Tree(exp, NewTreeConfig(WithSiblingDistances(4, 2, 1)))
	require.NoError(t, err)
	assert.Len(t, tree.Leaves(), 8)
}

func TestTree_UnevenSiblings(t *testing.T) {
	exp, err := domain.NewExperiment(
		domain.NewHappening("A", domain.NewProbability(1, 3)),
		domain.NewHappening("B", domain.NewProbability(1, 3)),
		domain.NewHappening("C", domain.NewProbability(1, 3)),
	)
	require.NoError(t, err)

	tree, err := Tree(exp, NewTreeConfig(WithSiblingDistances(2)))
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 3)
	assert.Equal(t, -2.0, tree.Nodes[0].X)
	assert.Equal(t, 0.0, tree.Nodes[1].X)
	assert.Equal(t, 2.0, tree.Nodes[2].X)
}
