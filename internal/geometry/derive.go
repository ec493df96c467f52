// Package geometry derives the raw cut pieces of a shelving unit: the two
// sheet-metal uprights of every module and their fastener hole patterns.
//
// Pieces are expressed in a canonical local frame where x runs along the
// module depth and y along the module height.
package geometry

import (
	"fmt"

	"github.com/piwi3910/ShelfCut/internal/model"
)

// ShelfPositions resolves the vertical offset of every shelf board in a
// module. Manual modules use their explicit heights; otherwise boards are
// spaced evenly so the top board sits flush with the module top.
func ShelfPositions(m model.ShelvingModule, settings model.Settings) []float64 {
	if m.Manual {
		z := make([]float64, len(m.ShelfHeights))
		copy(z, m.ShelfHeights)
		return z
	}

	switch {
	case m.Shelves <= 0:
		return []float64{}
	case m.Shelves == 1:
		return []float64{0}
	}

	step := (m.Height - settings.WoodThickness) / float64(m.Shelves-1)
	z := make([]float64, m.Shelves)
	for i := range z {
		z[i] = float64(i) * step
	}
	return z
}

// HolePattern returns the fastener hole centers for a piece of the given
// depth: three holes per shelf (front, middle, back) on the shelf's
// mid-thickness line.
func HolePattern(depth float64, shelves []float64, settings model.Settings) []model.Point2D {
	holes := make([]model.Point2D, 0, len(shelves)*3)
	for _, z := range shelves {
		y := z + settings.WoodThickness/2.0
		holes = append(holes,
			model.Point2D{X: settings.EdgeOffset, Y: y},
			model.Point2D{X: depth / 2.0, Y: y},
			model.Point2D{X: depth - settings.EdgeOffset, Y: y},
		)
	}
	return holes
}

// epsilon absorbs float rounding when a hole touches the upright's edge.
const epsilon = 1e-9

// ValidateModule checks that the module is sound on its own and that its
// hole pattern fits the upright: the depth leaves room for the outer holes
// and every shelf hole lies inside the module height.
func ValidateModule(m model.ShelvingModule, label string, settings model.Settings) error {
	if err := m.Validate(label); err != nil {
		return err
	}

	minSide := settings.HoleDiameter + 2*settings.EdgeOffset
	if m.Depth < minSide || m.Height < minSide {
		return &model.InvalidGeometryError{
			Label:  label,
			Reason: fmt.Sprintf("depth %.1f cm and height %.1f cm must be at least %.2f cm (hole diameter plus edge offsets)", m.Depth, m.Height, minSide),
		}
	}

	r := settings.HoleDiameter / 2
	for i, z := range ShelfPositions(m, settings) {
		y := z + settings.WoodThickness/2
		if y-r < -epsilon || y+r > m.Height+epsilon {
			return &model.InvalidGeometryError{
				Label:  label,
				Reason: fmt.Sprintf("shelf %d at %.1f cm puts its holes outside the %.1f cm upright", i+1, z, m.Height),
			}
		}
	}
	return nil
}

// DerivePieces produces the left and right upright of one module. index is
// the 1-based module position and is used for labelling. The two pieces are
// independent copies and share no hole storage.
func DerivePieces(m model.ShelvingModule, index int, settings model.Settings) ([]model.Piece, error) {
	label := fmt.Sprintf("M%d", index)
	if err := ValidateModule(m, label, settings); err != nil {
		return nil, err
	}

	holes := HolePattern(m.Depth, ShelfPositions(m, settings), settings)

	pieces := make([]model.Piece, 0, 2)
	for _, side := range []model.Side{model.SideLeft, model.SideRight} {
		p := model.NewPiece(fmt.Sprintf("%s_%s", label, side.Suffix()), m.Depth, m.Height)
		p.Module = index
		p.Side = side
		p.HoleDiameter = settings.HoleDiameter
		p.Thickness = settings.SteelThickness
		p.Holes = make([]model.Point2D, len(holes))
		copy(p.Holes, holes)
		pieces = append(pieces, p)
	}
	return pieces, nil
}

// DeriveJob derives the pieces of every module in order. Labels are unique
// within the job.
func DeriveJob(modules []model.ShelvingModule, settings model.Settings) ([]model.Piece, error) {
	var pieces []model.Piece
	for i, m := range modules {
		derived, err := DerivePieces(m, i+1, settings)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i+1, err)
		}
		pieces = append(pieces, derived...)
	}
	return pieces, nil
}
