package layout

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/b5strbal/probability-models/pkg/domain"
)

// CoordPrecision is the number of fractional digits written for coordinates.
const CoordPrecision = 4

// Coord formats r with CoordPrecision fractional digits.
// The result is for output only and must not be parsed back for arithmetic.
func Coord(r *big.Rat) string {
	s := r.FloatString(CoordPrecision)
	if s == "-0."+strings.Repeat("0", CoordPrecision) {
		return s[1:]
	}
	return s
}

// AreaCell is one rectangle of the area model.
type AreaCell struct {
	// Label is the parent name followed by the child name.
	Label string
	// Probability is the conditional probability of the child, which is also the cell width.
	Probability domain.Probability
	Left        *big.Rat
	Right       *big.Rat
	Top         *big.Rat
	Bottom      *big.Rat
	// Placeholder marks the full-width cell synthesized for a happening
	// without follow-ups. It has no width annotation.
	Placeholder bool
}

// AreaRow is one horizontal band of the area model.
type AreaRow struct {
	Name        string
	Probability domain.Probability
	Top         *big.Rat // -y
	Bottom      *big.Rat // -(y + p)
	Cells       []AreaCell
}

// AreaLayout is the unit square split into rows and cells.
// The square spans x in [0, 1] and y in [-1, 0].
type AreaLayout struct {
	Rows []AreaRow
}

// Area lays out a two-level experiment as nested rectangles.
//
// It fails with domain.ErrUnsupportedDepth, before producing anything, if any
// second-level happening has follow-ups.
func Area(exp *domain.Experiment) (*AreaLayout, error) {
	first := exp.Happenings()
	for _, h := range first {
		for _, c := range h.Next() {
			if !c.IsLeaf() {
				return nil, fmt.Errorf("%w: area model supports two levels, %q > %q has follow-ups",
					domain.ErrUnsupportedDepth, h.Name(), c.Name())
			}
		}
	}

	out := &AreaLayout{Rows: make([]AreaRow, 0, len(first))}
	y := new(big.Rat)
	for _, h := range first {
		p := h.Probability().Rat()
		next := new(big.Rat).Add(y, p)
		row := AreaRow{
			Name:        h.Name(),
			Probability: h.Probability(),
			Top:         new(big.Rat).Neg(y),
			Bottom:      new(big.Rat).Neg(next),
		}

		children := h.Next()
		placeholder := len(children) == 0
		if placeholder {
			children = []domain.Happening{domain.NewHappening("", domain.One())}
		}

		x := new(big.Rat)
		for _, c := range children {
			right := new(big.Rat).Add(x, c.Probability().Rat())
			row.Cells = append(row.Cells, AreaCell{
				Label:       h.Name() + c.Name(),
				Probability: c.Probability(),
				Left:        x,
				Right:       right,
				Top:         row.Top,
				Bottom:      row.Bottom,
				Placeholder: placeholder,
			})
			x = right
		}

		out.Rows = append(out.Rows, row)
		y = next
	}
	return out, nil
}

// Cells returns every cell, row by row.
func (a *AreaLayout) Cells() []AreaCell {
	var cells []AreaCell
	for _, r := range a.Rows {
		cells = append(cells, r.Cells...)
	}
	return cells
}
