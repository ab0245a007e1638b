package dto

import (
	"encoding/json"
	"testing"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML_Picking(t *testing.T) {
	def, err := ParseYAML([]byte(`
name: purse
description: One coin from a purse
picking:
  choices: QQDN
  repeats: 1
  replacing: false
`))
	require.NoError(t, err)
	assert.Equal(t, "purse", def.Name)
	require.NotNil(t, def.Picking)

	exp, err := def.Experiment()
	require.NoError(t, err)
	assert.Len(t, exp.Happenings(), 3)
}

func TestParseYAML_ListChoices(t *testing.T) {
	def, err := ParseYAML([]byte(`
picking:
  choices: [red, red, blue]
  repeats: 2
`))
	require.NoError(t, err)

	exp, err := def.Experiment()
	require.NoError(t, err)
	hs := exp.Happenings()
	require.Len(t, hs, 2)
	assert.Equal(t, "red", hs[0].Name())
	assert.Equal(t, "2/3", hs[0].Probability().String())
	// replacing defaults to false
	assert.Equal(t, 2, hs[0].Len())
	assert.Equal(t, 1, hs[1].Len())
}

func TestParseYAML_Happenings(t *testing.T) {
	def, err := ParseYAML([]byte(`
name: marbles
happenings:
  - name: Red
    probability: 2/5
    then:
      - {name: Red, probability: 0.25}
      - {name: Blue, probability: 3/4}
  - name: Blue
    probability: 3/5
    then:
      - {name: Red, probability: 1/2}
      - {name: Blue, probability: 1/2}
`))
	require.NoError(t, err)

	exp, err := def.Experiment()
	require.NoError(t, err)
	assert.Equal(t, 2, exp.Depth())
	assert.Equal(t, "1/10", exp.Leaves()[0].Cumulative.String())
}

func TestParseYAML_IntegerProbability(t *testing.T) {
	def, err := ParseYAML([]byte(`
happenings:
  - {name: 6, probability: 1}
`))
	require.NoError(t, err)
	require.Len(t, def.Happenings, 1)
	assert.Equal(t, "6", def.Happenings[0].Name)
	assert.Equal(t, "1", def.Happenings[0].Probability)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "name: x\ncolour: red\n"},
		{"bad yaml", "name: [unterminated\n"},
		{"bad probability", "happenings:\n  - {name: A, probability: most}\n"},
		{"bad sum", "happenings:\n  - {name: A, probability: 1/2}\n"},
		{"both shapes", "picking: {choices: HT, repeats: 1}\nhappenings:\n  - {name: A, probability: 1}\n"},
		{"bad choices", "picking: {choices: {a: 1}, repeats: 1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseYAML([]byte(tt.doc))
			if err == nil {
				_, err = def.Experiment()
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestFromExperiment_RoundTrip(t *testing.T) {
	exp, err := domain.Picking(domain.Labels("HT"), 2, true)
	require.NoError(t, err)

	def := FromExperiment("coins", "Two flips", exp)
	data, err := json.Marshal(def)
	require.NoError(t, err)

	back, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, def, back)

	rebuilt, err := back.Experiment()
	require.NoError(t, err)
	assert.Equal(t, len(exp.Leaves()), len(rebuilt.Leaves()))
}

func TestParseJSON_NumericChoices(t *testing.T) {
	def, err := ParseJSON([]byte(`{"picking":{"choices":[1,2,3,4,5,6],"repeats":1,"replacing":true}}`))
	require.NoError(t, err)

	exp, err := def.Experiment()
	require.NoError(t, err)
	assert.Equal(t, "1", exp.Happenings()[0].Name())
	assert.Equal(t, "1/6", exp.Happenings()[5].Probability().String())
}
