package markup

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/layout"
)

// AreaOptions controls area model markup.
type AreaOptions struct {
	// Scale is the side of the unit square in centimetres.
	Scale float64
	// ColumnLabels writes each cell's conditional probability above the cell.
	ColumnLabels bool
}

// DefaultAreaOptions returns the options used by the course diagrams.
func DefaultAreaOptions() AreaOptions {
	return AreaOptions{Scale: 6}
}

// AreaOption adjusts AreaOptions.
type AreaOption func(*AreaOptions)

// WithColumnLabels toggles the conditional probabilities above each cell.
func WithColumnLabels(on bool) AreaOption {
	return func(o *AreaOptions) {
		o.ColumnLabels = on
	}
}

// WithScale sets the side of the square in centimetres.
func WithScale(scale float64) AreaOption {
	return func(o *AreaOptions) {
		o.Scale = scale
	}
}

// NewAreaOptions applies opts to DefaultAreaOptions.
func NewAreaOptions(opts ...AreaOption) AreaOptions {
	o := DefaultAreaOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AreaModel lays out and serializes exp in one call.
func AreaModel(exp *domain.Experiment) (string, error) {
	return AreaModelWith(exp, DefaultAreaOptions())
}

// AreaModelWith is AreaModel with explicit options.
func AreaModelWith(exp *domain.Experiment, opts AreaOptions) (string, error) {
	a, err := layout.Area(exp)
	if err != nil {
		return "", err
	}
	return AreaTikZ(a, opts), nil
}

// TreeModel lays out and serializes exp in one call.
func TreeModel(exp *domain.Experiment, cfg layout.TreeConfig) (string, error) {
	t, err := layout.Tree(exp, cfg)
	if err != nil {
		return "", err
	}
	return TreeTikZ(t), nil
}

// AreaTikZ writes the area model as a tikzpicture.
func AreaTikZ(a *layout.AreaLayout, opts AreaOptions) string {
	if opts.Scale <= 0 {
		opts.Scale = DefaultAreaOptions().Scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\\begin{tikzpicture}[scale=%s]\n", num(opts.Scale))
	sb.WriteString("  \\draw[thick] (0,0) rectangle (1,-1);\n")

	two := big.NewRat(2, 1)
	for i, row := range a.Rows {
		top, bottom := layout.Coord(row.Top), layout.Coord(row.Bottom)
		middle := layout.Coord(new(big.Rat).Quo(new(big.Rat).Add(row.Top, row.Bottom), two))

		// Row boundaries between bands only; the outline covers the rest.
		if i > 0 {
			fmt.Fprintf(&sb, "  \\draw[dashed] (0,%s) -- (1,%s);\n", top, top)
		}
		fmt.Fprintf(&sb, "  \\node[left] at (0,%s) {$%s$};\n", middle, row.Probability.TeX())

		for j, cell := range row.Cells {
			left := layout.Coord(cell.Left)
			if j > 0 {
				fmt.Fprintf(&sb, "  \\draw[dashed] (%s,%s) -- (%s,%s);\n", left, top, left, bottom)
			}
			center := layout.Coord(new(big.Rat).Quo(new(big.Rat).Add(cell.Left, cell.Right), two))
			if cell.Label != "" {
				fmt.Fprintf(&sb, "  \\node at (%s,%s) {%s};\n", center, middle, escape(cell.Label))
			}
			if opts.ColumnLabels && !cell.Placeholder {
				fmt.Fprintf(&sb, "  \\node[above, font=\\scriptsize] at (%s,%s) {$%s$};\n",
					center, top, cell.Probability.TeX())
			}
		}
	}

	sb.WriteString("\\end{tikzpicture}\n")
	return sb.String()
}

// TreeTikZ writes the tree model as a tikzpicture with absolute positions.
func TreeTikZ(t *layout.TreeLayout) string {
	var sb strings.Builder
	sb.WriteString("\\begin{tikzpicture}\n")
	fmt.Fprintf(&sb, "  \\coordinate (%s) at (0,0);\n", nodeName(layout.RootID))

	for _, n := range t.Nodes {
		name := nodeName(n.ID)
		fmt.Fprintf(&sb, "  \\node (%s) at (%s,%s) {%s};\n", name, num(n.X), num(n.Y), escape(n.Name))

		side := "left"
		if n.X >= parentX(t, n) {
			side = "right"
		}
		if n.ShowLabel {
			fmt.Fprintf(&sb, "  \\draw (%s) -- node[%s, font=\\small] {$%s$} (%s);\n",
				nodeName(n.ParentID), side, n.Probability.TeX(), name)
		} else {
			fmt.Fprintf(&sb, "  \\draw (%s) -- (%s);\n", nodeName(n.ParentID), name)
		}

		if n.Leaf {
			fmt.Fprintf(&sb, "  \\node[draw, rounded corners] (%s-total) at (%s,%s) {$%s$};\n",
				name, num(n.X), num(n.AnnotationY), n.Cumulative.TeX())
			fmt.Fprintf(&sb, "  \\draw[dashed] (%s) -- (%s-total);\n", name, name)
		}
	}

	sb.WriteString("\\end{tikzpicture}\n")
	return sb.String()
}

func parentX(t *layout.TreeLayout, n layout.TreeNode) float64 {
	if p, ok := t.Node(n.ParentID); ok {
		return p.X
	}
	return 0
}

func nodeName(id string) string {
	return "n" + id
}

// num formats a tree coordinate with at most four fractional digits.
func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', layout.CoordPrecision, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// escape makes a label safe inside a TikZ node.
func escape(s string) string {
	return texEscaper.Replace(s)
}
