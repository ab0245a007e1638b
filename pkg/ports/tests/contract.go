package tests

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/ports"
)

// ExperimentStoreContractTest is a reusable test suite that verifies if a
// read-only adapter complies with ports.ExperimentStore. leafCounts maps every
// expected experiment name to its number of leaves.
func ExperimentStoreContractTest(t *testing.T, store ports.ExperimentStore, leafCounts map[string]int) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Get (Success)
	t.Run("Get_Success", func(t *testing.T) {
		for name, want := range leafCounts {
			exp, err := store.Get(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error getting experiment %s: %v", name, err)
			}
			if got := len(exp.Leaves()); got != want {
				t.Errorf("leaf count mismatch for %s. got %d, want %d", name, got, want)
			}
		}
	})

	// 2. Test Get (NotFound)
	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-experiment")
		if !errors.Is(err, domain.ErrExperimentNotFound) {
			t.Errorf("expected ErrExperimentNotFound, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing experiments: %v", err)
		}
		if len(names) != len(leafCounts) {
			t.Errorf("expected %d experiments, got %d", len(leafCounts), len(names))
		}
		if !sort.StringsAreSorted(names) {
			t.Errorf("expected sorted names, got %v", names)
		}
		for _, name := range names {
			if _, ok := leafCounts[name]; !ok {
				t.Errorf("unexpected experiment %q", name)
			}
		}
	})
}
