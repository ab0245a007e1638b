package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/b5strbal/probability-models/internal/dto"
	"github.com/b5strbal/probability-models/pkg/domain"
)

// Extensions lists the file types the loader reads.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.ExperimentStore over a directory of definition files.
// The directory is rescanned on every call, so edits are picked up without a restart.
type Loader struct {
	BasePath string
}

// New creates a Loader for dir.
func New(dir string) *Loader {
	return &Loader{BasePath: dir}
}

// LoadFile reads a single YAML or JSON definition. If the document has no
// name, the file base name is used.
func LoadFile(path string) (dto.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dto.Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}

	var def dto.Definition
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		def, err = dto.ParseJSON(data)
	} else {
		// Default to YAML
		def, err = dto.ParseYAML(data)
	}
	if err != nil {
		return dto.Definition{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

func isDefinition(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// index maps experiment names to their definitions.
func (l *Loader) index() (map[string]dto.Definition, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment directory: %w", err)
	}

	defs := make(map[string]dto.Definition)
	origin := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !isDefinition(entry.Name()) {
			continue
		}
		def, err := LoadFile(filepath.Join(l.BasePath, entry.Name()))
		if err != nil {
			return nil, err
		}
		if prev, dup := origin[def.Name]; dup {
			return nil, fmt.Errorf("%w: experiment %q defined in both %s and %s",
				domain.ErrInvalidInput, def.Name, prev, entry.Name())
		}
		origin[def.Name] = entry.Name()
		defs[def.Name] = def
	}
	return defs, nil
}

// Definition returns the raw definition registered under name.
func (l *Loader) Definition(ctx context.Context, name string) (dto.Definition, error) {
	defs, err := l.index()
	if err != nil {
		return dto.Definition{}, err
	}
	def, ok := defs[name]
	if !ok {
		return dto.Definition{}, fmt.Errorf("%w: %s", domain.ErrExperimentNotFound, name)
	}
	return def, nil
}

// Describe implements ports.Describer.
func (l *Loader) Describe(ctx context.Context, name string) (string, error) {
	def, err := l.Definition(ctx, name)
	if err != nil {
		return "", err
	}
	return def.Description, nil
}

// Get builds the experiment registered under name.
func (l *Loader) Get(ctx context.Context, name string) (*domain.Experiment, error) {
	def, err := l.Definition(ctx, name)
	if err != nil {
		return nil, err
	}
	exp, err := def.Experiment()
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", name, err)
	}
	return exp, nil
}

// List returns all experiment names in sorted order.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	defs, err := l.index()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
