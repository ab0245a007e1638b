package catalog

import (
	"context"
	"testing"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/layout"
	contract "github.com/b5strbal/probability-models/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leafCounts = map[string]int{
	"coin-flips":       4,
	"coin-purse":       3,
	"coin-purse-twice": 7,
	"marbles":          4,
	"spinner":          5,
	"die-and-coin":     12,
	"weather":          6,
}

func TestStore_Contract(t *testing.T) {
	contract.ExperimentStoreContractTest(t, Store(), leafCounts)
}

func TestEntries_LeavesSumToOne(t *testing.T) {
	for _, e := range Entries() {
		t.Run(e.Name, func(t *testing.T) {
			assert.NotEmpty(t, e.Description)

			sum := domain.Zero()
			for _, leaf := range e.Experiment.Leaves() {
				sum = sum.Add(leaf.Cumulative)
			}
			assert.True(t, sum.IsOne(), "leaves sum to %s", sum)
		})
	}
}

func TestEntries_RenderBothModels(t *testing.T) {
	for _, e := range Entries() {
		t.Run(e.Name, func(t *testing.T) {
			_, err := layout.Area(e.Experiment)
			require.NoError(t, err)
			_, err = layout.Tree(e.Experiment, layout.DefaultTreeConfig())
			require.NoError(t, err)
		})
	}
}

func TestCoinPurseTwice(t *testing.T) {
	exp := All()["coin-purse-twice"]
	hs := exp.Happenings()
	require.Len(t, hs, 3)

	assert.Equal(t, "Q", hs[0].Name())
	assert.Equal(t, "1/2", hs[0].Probability().String())
	// one quarter left among three coins
	assert.Equal(t, "1/3", hs[0].Child(0).Probability().String())
	assert.Equal(t, "2/3", hs[1].Child(0).Probability().String())
}

func TestWeather_SnowyIsLeaf(t *testing.T) {
	hs := All()["weather"].Happenings()
	require.Len(t, hs, 3)
	assert.True(t, hs[2].IsLeaf())
	assert.Equal(t, 3, hs[1].Len())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Flip a coin twice", Describe("coin-flips"))
	assert.Empty(t, Describe("unknown"))
}

func TestCatalog_Describe(t *testing.T) {
	c := Store()
	desc, err := c.Describe(context.Background(), "marbles")
	require.NoError(t, err)
	assert.Equal(t, "Draw two marbles from a bag that is 2/5 red", desc)

	_, err = c.Describe(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrExperimentNotFound)
}

func TestMustCatalog_PanicsOnBrokenEntry(t *testing.T) {
	assert.Panics(t, func() { mustCatalog([]Entry{{Name: "empty"}}) })
	assert.Panics(t, func() { mustCatalog([]Entry{{Experiment: Entries()[0].Experiment}}) })
	assert.NotPanics(t, func() { mustCatalog(Entries()) })
}
