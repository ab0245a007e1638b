package ports

import (
	"context"

	"github.com/b5strbal/probability-models/pkg/domain"
)

// ExperimentStore defines how experiments are looked up by name.
type ExperimentStore interface {
	// Get returns the experiment registered under name.
	// Returns domain.ErrExperimentNotFound if there is none.
	Get(ctx context.Context, name string) (*domain.Experiment, error)

	// List returns all experiment names in a deterministic order.
	List(ctx context.Context) ([]string, error)
}

// ExperimentRepository is an ExperimentStore that can be written to.
type ExperimentRepository interface {
	ExperimentStore

	// Save registers exp under name, replacing any previous entry.
	Save(ctx context.Context, name string, exp *domain.Experiment) error

	// Delete removes name. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error
}

// Describer is implemented by stores that keep a human-readable description
// next to each experiment. It is optional; callers type-assert for it.
type Describer interface {
	// Describe returns the description of name, or "" if it has none.
	// Returns domain.ErrExperimentNotFound if name is unknown.
	Describe(ctx context.Context, name string) (string, error)
}
