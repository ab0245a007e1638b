package ports

import (
	"context"
	"testing"
	"time"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunExperimentRepositoryContract runs a suite of tests to verify that an
// ExperimentRepository implementation adheres to the defined interface contract.
func RunExperimentRepositoryContract(t *testing.T, repo ExperimentRepository) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	coins, err := domain.Picking(domain.Labels("HT"), 2, true)
	require.NoError(t, err)

	t.Run("Save and Get", func(t *testing.T) {
		err := repo.Save(ctx, name, coins)
		require.NoError(t, err, "Save should not return error")

		loaded, err := repo.Get(ctx, name)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, coins.Depth(), loaded.Depth())

		leaves := loaded.Leaves()
		require.Len(t, leaves, 4)
		assert.Equal(t, "HT", leaves[1].Outcome())
		assert.Equal(t, "1/4", leaves[1].Cumulative.String())
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := repo.Get(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrExperimentNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		purse, err := domain.Picking(domain.Labels("QQDN"), 1, false)
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, name, purse))
		loaded, err := repo.Get(ctx, name)
		require.NoError(t, err)
		assert.Len(t, loaded.Happenings(), 3)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, name, coins))

		err := repo.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = repo.Get(ctx, name)
		assert.ErrorIs(t, err, domain.ErrExperimentNotFound, "Get after Delete should return ErrExperimentNotFound")

		assert.NoError(t, repo.Delete(ctx, name), "deleting twice is not an error")
	})

	t.Run("Names Are Opaque", func(t *testing.T) {
		for _, id := range []string{"index", name + ":index"} {
			require.NoError(t, repo.Save(ctx, id, coins), "Save %q", id)
		}
		defer func() {
			_ = repo.Delete(ctx, "index")
			_ = repo.Delete(ctx, name+":index")
		}()

		names, err := repo.List(ctx)
		require.NoError(t, err, "List must survive any experiment name")
		assert.Contains(t, names, "index")
		assert.Contains(t, names, name+":index")

		_, err = repo.Get(ctx, "index")
		assert.NoError(t, err)
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, repo.Save(ctx, id1, coins))
		require.NoError(t, repo.Save(ctx, id2, coins))

		defer func() {
			_ = repo.Delete(ctx, id1)
			_ = repo.Delete(ctx, id2)
		}()

		names, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names, "List must be sorted")
	})
}
