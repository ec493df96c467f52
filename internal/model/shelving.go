package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ShelvingModule describes one bay of the shelving unit. The uprights on
// both sides of the bay are cut from sheet metal; the shelves are wooden
// boards resting on fasteners through the uprights.
type ShelvingModule struct {
	Width        float64   `json:"width" validate:"gt=0"`               // Shelf span cm
	Depth        float64   `json:"depth" validate:"gt=0"`               // cm
	Height       float64   `json:"height" validate:"gt=0"`              // cm
	Shelves      int       `json:"shelves" validate:"gte=0"`            // Number of shelves
	Manual       bool      `json:"manual"`                              // Use ShelfHeights instead of even spacing
	ShelfHeights []float64 `json:"shelf_heights" validate:"dive,gte=0"` // Bottom of each shelf board from the floor, cm
}

// NewShelvingModule returns an evenly spaced module.
func NewShelvingModule(w, d, h float64, shelves int) ShelvingModule {
	return ShelvingModule{
		Width:        w,
		Depth:        d,
		Height:       h,
		Shelves:      shelves,
		ShelfHeights: []float64{},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the module dimensions. Violations are reported as an
// InvalidGeometryError carrying the given label.
func (m ShelvingModule) Validate(label string) error {
	if err := validateStruct(label, m); err != nil {
		return err
	}
	if m.Manual {
		for i, z := range m.ShelfHeights {
			if z > m.Height {
				return &InvalidGeometryError{
					Label:  label,
					Reason: fmt.Sprintf("shelf %d at %.1f cm is above module height %.1f cm", i+1, z, m.Height),
				}
			}
		}
	}
	return nil
}

// Validate checks the stock dimensions.
func (s StockSize) Validate() error {
	return validateStruct("stock", s)
}

// Validate checks the process parameters.
func (s Settings) Validate() error {
	return validateStruct("settings", s)
}

// validateStruct runs the struct tag rules and folds the failures into a
// single InvalidGeometryError.
func validateStruct(label string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return checkFinite(label, v)
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %s: %w", label, err)
	}
	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		reasons = append(reasons, fmt.Sprintf("%s must be %s %s", fe.Field(), ruleText(fe.Tag()), fe.Param()))
	}
	return &InvalidGeometryError{Label: label, Reason: strings.Join(reasons, "; ")}
}

func ruleText(tag string) string {
	switch tag {
	case "gt":
		return ">"
	case "gte":
		return ">="
	case "lt":
		return "<"
	case "lte":
		return "<="
	default:
		return tag
	}
}

// checkFinite rejects NaN and infinite dimensions, which pass the numeric
// comparison rules.
func checkFinite(label string, v interface{}) error {
	var values []float64
	switch t := v.(type) {
	case ShelvingModule:
		values = append([]float64{t.Width, t.Depth, t.Height}, t.ShelfHeights...)
	case StockSize:
		values = []float64{t.Width, t.Height}
	case Settings:
		values = []float64{t.WoodThickness, t.SteelThickness, t.HoleDiameter, t.EdgeOffset, t.Margin}
	}
	for _, f := range values {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &InvalidGeometryError{Label: label, Reason: "dimensions must be finite numbers"}
		}
	}
	return nil
}
