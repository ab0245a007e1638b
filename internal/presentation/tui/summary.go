package tui

import (
	"fmt"
	"strings"

	"github.com/b5strbal/probability-models/pkg/domain"
)

// DecimalPlaces is the precision of the decimal column.
const DecimalPlaces = 4

// Summary writes a markdown table of every outcome of exp with its exact and
// approximate probability, followed by the total.
func Summary(name, description string, exp *domain.Experiment) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", name))
	if description != "" {
		sb.WriteString(description + "\n\n")
	}

	leaves := exp.Leaves()
	sb.WriteString(fmt.Sprintf("%d outcomes over %d stage(s).\n\n", len(leaves), exp.Depth()))
	sb.WriteString("| Outcome | Path | Probability | Decimal |\n")
	sb.WriteString("|---|---|---:|---:|\n")

	total := domain.Zero()
	for _, leaf := range leaves {
		total = total.Add(leaf.Cumulative)
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			cell(leaf.Outcome()),
			cell(strings.Join(leaf.Names(), domain.PathSeparator)),
			leaf.Cumulative.String(),
			leaf.Cumulative.Decimal(DecimalPlaces),
		))
	}
	sb.WriteString(fmt.Sprintf("| **Total** | | **%s** | %s |\n", total.String(), total.Decimal(DecimalPlaces)))

	return sb.String()
}

// cell escapes pipes so names cannot break the table.
func cell(s string) string {
	if s == "" {
		return " "
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
