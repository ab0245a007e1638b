package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/b5strbal/probability-models/pkg/adapters/file"
	"github.com/b5strbal/probability-models/pkg/domain"
	contract "github.com/b5strbal/probability-models/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "coins.yaml", `
description: Two coin flips
picking:
  choices: HT
  repeats: 2
  replacing: true
`)
	writeFile(t, dir, "weather.yml", `
name: commute
happenings:
  - name: Rain
    probability: 1/4
    then:
      - {name: Late, probability: 2/3}
      - {name: On time, probability: 1/3}
  - name: Sun
    probability: 3/4
`)
	writeFile(t, dir, "die.json", `{"picking": {"choices": [1, 2, 3, 4, 5, 6], "repeats": 1, "replacing": true}}`)
	writeFile(t, dir, "README.md", "not a definition")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))
	return dir
}

func TestLoader_Contract(t *testing.T) {
	loader := file.New(setupDir(t))

	contract.ExperimentStoreContractTest(t, loader, map[string]int{
		"coins":   4,
		"commute": 3,
		"die":     6,
	})
}

func TestLoader_Definition(t *testing.T) {
	loader := file.New(setupDir(t))

	def, err := loader.Definition(context.Background(), "coins")
	require.NoError(t, err)
	assert.Equal(t, "Two coin flips", def.Description)
	assert.Equal(t, "coins", def.Name)
}

func TestLoader_InvalidDefinition(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "happenings:\n  - {name: A, probability: 1/3}\n")
	loader := file.New(dir)

	names, err := loader.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bad"}, names)

	_, err = loader.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoader_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "name: same\n")
	writeFile(t, dir, "b.yaml", "name: same\n")

	_, err := file.New(dir).List(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoader_MissingDir(t *testing.T) {
	_, err := file.New(filepath.Join(t.TempDir(), "missing")).List(context.Background())
	assert.Error(t, err)
}

func TestLoadFile_UnparsableYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "picking: [\n")

	_, err := file.LoadFile(filepath.Join(dir, "broken.yaml"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoader_Describe(t *testing.T) {
	loader := file.New(setupDir(t))

	desc, err := loader.Describe(context.Background(), "coins")
	require.NoError(t, err)
	assert.Equal(t, "Two coin flips", desc)

	_, err = loader.Describe(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrExperimentNotFound)
}
