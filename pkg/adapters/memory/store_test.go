package memory_test

import (
	"testing"

	"github.com/b5strbal/probability-models/pkg/adapters/memory"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/ports"
	contract "github.com/b5strbal/probability-models/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunExperimentRepositoryContract(t, store)
}

func TestMemoryStore_SeededContract(t *testing.T) {
	coins, err := domain.Picking(domain.Labels("HT"), 2, true)
	require.NoError(t, err)
	purse, err := domain.Picking(domain.Labels("QQDN"), 1, false)
	require.NoError(t, err)

	store, err := memory.NewFromExperiments(map[string]*domain.Experiment{
		"coins": coins,
		"purse": purse,
	})
	require.NoError(t, err)

	contract.ExperimentStoreContractTest(t, store, map[string]int{
		"coins": 4,
		"purse": 3,
	})
}

func TestMemoryStore_RejectsNil(t *testing.T) {
	_, err := memory.NewFromExperiments(map[string]*domain.Experiment{"x": nil})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = memory.NewFromExperiments(map[string]*domain.Experiment{"": domain.MustExperiment()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
