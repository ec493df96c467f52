package model

import (
	"math"

	"github.com/google/uuid"
)

// Side identifies which upright of a shelving module a piece forms.
type Side int

const (
	SideLeft  Side = iota // Left-hand upright
	SideRight             // Right-hand upright
)

func (s Side) String() string {
	if s == SideRight {
		return "Right"
	}
	return "Left"
}

// Suffix returns the short code used in piece labels.
func (s Side) Suffix() string {
	if s == SideRight {
		return "DX"
	}
	return "SX"
}

// Point2D represents a 2D coordinate in cm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Swap returns the point with its axes exchanged.
func (p Point2D) Swap() Point2D {
	return Point2D{X: p.Y, Y: p.X}
}

// Piece is one rectangular item cut from stock, with its fastener holes.
// Hole coordinates are always expressed in the same frame as Width/Height:
// once Rotated is set, both the footprint and the holes are swapped.
type Piece struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	Module       int       `json:"module"` // 1-based module index, 0 when not derived from a module
	Side         Side      `json:"side"`
	Width        float64   `json:"width"`  // cm, local x extent
	Height       float64   `json:"height"` // cm, local y extent
	Holes        []Point2D `json:"holes"`  // hole centers in the local frame
	HoleDiameter float64   `json:"hole_diameter"`
	Thickness    float64   `json:"thickness"` // sheet thickness in cm
	Rotated      bool      `json:"rotated"`
}

func NewPiece(label string, w, h float64) Piece {
	return Piece{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
		Holes:  []Point2D{},
	}
}

// Clone returns a deep copy of the piece. The hole slice is never shared.
func (p Piece) Clone() Piece {
	cp := p
	cp.Holes = make([]Point2D, len(p.Holes))
	copy(cp.Holes, p.Holes)
	return cp
}

// Rotate returns a copy of the piece turned 90°: width and height are
// exchanged and every hole (x, y) becomes (y, x).
func (p Piece) Rotate() Piece {
	cp := p.Clone()
	cp.Width, cp.Height = p.Height, p.Width
	for i, h := range p.Holes {
		cp.Holes[i] = h.Swap()
	}
	cp.Rotated = !p.Rotated
	return cp
}

// Area returns the footprint area in cm².
func (p Piece) Area() float64 {
	return p.Width * p.Height
}

// Weight returns the piece mass in kg for a material density in g/cm³.
// Hole material is subtracted.
func (p Piece) Weight(density float64) float64 {
	r := p.HoleDiameter / 2
	area := p.Area() - float64(len(p.Holes))*math.Pi*r*r
	if area < 0 {
		area = 0
	}
	return area * p.Thickness * density / 1000.0
}

// StockSize is the fixed size of every stock sheet in one nesting run.
type StockSize struct {
	Label  string  `json:"label"`
	Width  float64 `json:"width" validate:"gt=0"`  // cm
	Height float64 `json:"height" validate:"gt=0"` // cm
}

// Area returns the stock area in cm².
func (s StockSize) Area() float64 {
	return s.Width * s.Height
}

// Placement is a piece positioned on a sheet. X and Y locate the lower-left
// corner of the piece's (already oriented) footprint.
type Placement struct {
	Piece Piece   `json:"piece"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// AbsoluteHoles returns the hole centers in sheet coordinates.
func (p Placement) AbsoluteHoles() []Point2D {
	holes := make([]Point2D, len(p.Piece.Holes))
	for i, h := range p.Piece.Holes {
		holes[i] = Point2D{X: p.X + h.X, Y: p.Y + h.Y}
	}
	return holes
}

// Right returns the x coordinate of the footprint's right edge.
func (p Placement) Right() float64 {
	return p.X + p.Piece.Width
}

// Top returns the y coordinate of the footprint's top edge.
func (p Placement) Top() float64 {
	return p.Y + p.Piece.Height
}

// Sheet is one physical stock sheet with the pieces placed on it.
type Sheet struct {
	Sequence   int         `json:"sequence"` // 1-based creation order
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Placements []Placement `json:"placements"`
	UsedArea   float64     `json:"used_area"` // sum of placed footprint areas, margins excluded
}

// TotalArea returns the stock sheet area.
func (s Sheet) TotalArea() float64 {
	return s.Width * s.Height
}

// Efficiency returns the usage percentage.
func (s Sheet) Efficiency() float64 {
	ta := s.TotalArea()
	if ta == 0 {
		return 0
	}
	return (s.UsedArea / ta) * 100.0
}

// NestResult holds the full output of one nesting run.
type NestResult struct {
	Stock  StockSize `json:"stock"`
	Margin float64   `json:"margin"`
	Sheets []Sheet   `json:"sheets"`
}

// PieceCount returns the number of placed pieces across all sheets.
func (r NestResult) PieceCount() int {
	total := 0
	for _, s := range r.Sheets {
		total += len(s.Placements)
	}
	return total
}

// Utilization aggregates material usage across a sheet sequence.
type Utilization struct {
	SheetCount   int     `json:"sheet_count"`
	PieceCount   int     `json:"piece_count"`
	StockArea    float64 `json:"stock_area"` // cm²
	UsedArea     float64 `json:"used_area"`  // cm²
	WastePercent float64 `json:"waste_percent"`
}

// Settings holds fixed process parameters and cutter configuration.
type Settings struct {
	// Geometry
	WoodThickness  float64 `json:"wood_thickness" validate:"gt=0"`  // Shelf board thickness cm
	SteelThickness float64 `json:"steel_thickness" validate:"gt=0"` // Upright sheet thickness cm
	HoleDiameter   float64 `json:"hole_diameter" validate:"gt=0"`   // Fastener hole diameter cm
	EdgeOffset     float64 `json:"edge_offset" validate:"gt=0"`     // Distance from piece edge to outer holes cm
	Margin         float64 `json:"margin" validate:"gte=0"`         // Clearance reserved between placed pieces cm

	// Costing
	SteelDensity  float64 `json:"steel_density" validate:"gte=0"`   // g/cm³
	PricePerSheet float64 `json:"price_per_sheet" validate:"gte=0"` // Currency units per stock sheet

	// Cutter / GCode settings
	CutterProfile string  `json:"cutter_profile"`
	KerfWidth     float64 `json:"kerf_width" validate:"gte=0"`    // mm
	FeedRate      float64 `json:"feed_rate" validate:"gt=0"`      // mm/min
	PierceDelay   float64 `json:"pierce_delay" validate:"gte=0"`  // seconds
	PierceHeight  float64 `json:"pierce_height" validate:"gte=0"` // mm
	CutHeight     float64 `json:"cut_height" validate:"gte=0"`    // mm
	SafeZ         float64 `json:"safe_z" validate:"gte=0"`        // mm
}

func DefaultSettings() Settings {
	return Settings{
		WoodThickness:  4.0,
		SteelThickness: 0.3,
		HoleDiameter:   0.6,
		EdgeOffset:     3.0,
		Margin:         1.0,
		SteelDensity:   7.85,
		PricePerSheet:  0,
		CutterProfile:  "Generic",
		KerfWidth:      1.5,
		FeedRate:       2500.0,
		PierceDelay:    0.5,
		PierceHeight:   3.8,
		CutHeight:      1.5,
		SafeZ:          10.0,
	}
}

// DefaultStock is the stock size used when a project does not name one.
func DefaultStock() StockSize {
	return StockSize{Label: "Steel 300x150", Width: 300, Height: 150}
}

// Project ties everything together for save/load.
type Project struct {
	Name     string           `json:"name"`
	Modules  []ShelvingModule `json:"modules"`
	Stock    StockSize        `json:"stock"`
	Settings Settings         `json:"settings"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Modules:  []ShelvingModule{},
		Stock:    DefaultStock(),
		Settings: DefaultSettings(),
	}
}
