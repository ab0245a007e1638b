package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	exp, err := domain.Picking(domain.Labels("HT"), 2, true)
	require.NoError(t, err)

	md := Summary("coin-flips", "Flip a coin twice", exp)

	assert.True(t, strings.HasPrefix(md, "# coin-flips\n\nFlip a coin twice\n"))
	assert.Contains(t, md, "4 outcomes over 2 stage(s).")
	assert.Contains(t, md, "| HT | H > T | 1/4 | 0.2500 |")
	assert.Contains(t, md, "| **Total** | | **1** | 1.0000 |")
}

func TestSummary_EscapesPipes(t *testing.T) {
	exp := domain.MustExperiment(domain.NewHappening("a|b", domain.One()))

	md := Summary("pipes", "", exp)
	assert.Contains(t, md, `| a\|b | a\|b | 1 |`)
	assert.NotContains(t, md, "\n\n\n")
}

func TestPlainRenderer(t *testing.T) {
	render, err := NewPlainRenderer()
	require.NoError(t, err)

	out, err := render("# marbles\n\n| Outcome | Probability |\n|---|---|\n| RB | 3/10 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "marbles")
	assert.Contains(t, out, "3/10")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "probability models 1.2.3")
}
