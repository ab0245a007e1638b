package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbability(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1/4", "1/4", false},
		{"2/4", "1/2", false},
		{"0.25", "1/4", false},
		{"1", "1", false},
		{" 3/5 ", "3/5", false},
		{"", "", true},
		{"1/0", "", true},
		{"half", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProbability(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestProbability_Arithmetic(t *testing.T) {
	half := NewProbability(1, 2)
	third := NewProbability(1, 3)

	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Mul(third).String())
	assert.Equal(t, "3/2", half.Quo(third).String())
	assert.Equal(t, "1/6", half.Sub(third).String())
	assert.Equal(t, 1, half.Cmp(third))
	assert.True(t, Sum(half, half).IsOne())

	// Operations never alias their operands.
	_ = half.Add(half)
	assert.Equal(t, "1/2", half.String())
}

func TestProbability_ZeroValue(t *testing.T) {
	var p Probability
	assert.True(t, p.IsZero())
	assert.Equal(t, "0", p.String())
	assert.Equal(t, "1/2", p.Add(NewProbability(1, 2)).String())
}

func TestProbability_Formatting(t *testing.T) {
	assert.Equal(t, `\frac{1}{4}`, NewProbability(1, 4).TeX())
	assert.Equal(t, "1", One().TeX())
	assert.Equal(t, "0.3333", NewProbability(1, 3).Decimal(4))
	assert.Equal(t, "0.6667", NewProbability(2, 3).Decimal(4))
}

func TestProbability_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		P Probability `json:"p"`
	}{NewProbability(3, 8)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":"3/8"}`, string(data))

	var out struct {
		P Probability `json:"p"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"p":"6/16"}`), &out))
	assert.Equal(t, "3/8", out.P.String())
}
