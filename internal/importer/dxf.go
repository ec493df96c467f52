package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// PieceImportResult holds the uprights recovered from a DXF drawing.
type PieceImportResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

type outline []model.Point2D

// rect is the axis-aligned bounding box of an outline.
type rect struct {
	minX, minY, maxX, maxY float64
}

func (o outline) bounds() rect {
	r := rect{o[0].X, o[0].Y, o[0].X, o[0].Y}
	for _, p := range o[1:] {
		r.minX = math.Min(r.minX, p.X)
		r.minY = math.Min(r.minY, p.Y)
		r.maxX = math.Max(r.maxX, p.X)
		r.maxY = math.Max(r.maxY, p.Y)
	}
	return r
}

func (r rect) contains(x, y float64) bool {
	return x >= r.minX && x <= r.maxX && y >= r.minY && y <= r.maxY
}

func (r rect) encloses(o rect) bool {
	return r != o && r.contains(o.minX, o.minY) && r.contains(o.maxX, o.maxY)
}

type hole struct {
	x, y, r float64
}

type text struct {
	value string
	x, y  float64
}

// ImportDXF reads uprights back from a cut drawing. Each closed outline
// (LWPOLYLINE or chain of LINEs) becomes a piece sized by its bounding box;
// circles inside it become its holes and a text inside or directly above it
// becomes its label. An outline enclosing other outlines is taken to be the
// stock sheet and skipped.
func ImportDXF(path string) PieceImportResult {
	result := PieceImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment
	var holes []hole
	var texts []text

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := lwPolylineToOutline(e)
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}
			for _, b := range e.Bulges {
				if math.Abs(b) > 1e-9 {
					result.Warnings = append(result.Warnings, "Curved LWPOLYLINE segments are read as their bounding box")
					break
				}
			}

		case *entity.Circle:
			holes = append(holes, hole{x: e.Center[0], y: e.Center[1], r: e.Radius})

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		case *entity.Text:
			if len(e.Coord1) >= 2 && e.Value != "" {
				texts = append(texts, text{value: e.Value, x: e.Coord1[0], y: e.Coord1[1]})
			}

		default:
			// Unsupported entity types are silently skipped
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	rects := pieceRects(outlines, &result)
	usedHoles := make([]bool, len(holes))
	seen := map[string]int{}

	for n, r := range rects {
		width := r.maxX - r.minX
		height := r.maxY - r.minY
		if width < 0.01 || height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f cm)", width, height))
			continue
		}

		label := labelFor(r, texts)
		if label == "" {
			label = fmt.Sprintf("DXF Piece %d", n+1)
		}
		if seen[label] > 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Duplicate label %q renamed", label))
			label = fmt.Sprintf("%s_%d", label, seen[label]+1)
		}
		seen[label]++

		p := model.NewPiece(label, width, height)
		for i, h := range holes {
			if usedHoles[i] || !r.contains(h.x, h.y) {
				continue
			}
			usedHoles[i] = true
			p.Holes = append(p.Holes, model.Point2D{X: h.x - r.minX, Y: h.y - r.minY})
			if p.HoleDiameter == 0 {
				p.HoleDiameter = 2 * h.r
			} else if math.Abs(p.HoleDiameter-2*h.r) > 1e-6 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s: mixed hole diameters, using %.2f cm", label, p.HoleDiameter))
			}
		}
		result.Pieces = append(result.Pieces, p)
	}

	for i, used := range usedHoles {
		if !used {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Circle at (%.2f, %.2f) lies outside every outline", holes[i].x, holes[i].y))
		}
	}

	return result
}

// pieceRects returns the bounding boxes of all outlines that do not enclose
// another outline, ordered left to right then bottom to top.
func pieceRects(outlines []outline, result *PieceImportResult) []rect {
	all := make([]rect, len(outlines))
	for i, o := range outlines {
		all[i] = o.bounds()
	}

	var rects []rect
	for i, r := range all {
		stock := false
		for j, other := range all {
			if i != j && r.encloses(other) {
				stock = true
				break
			}
		}
		if stock {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped stock outline %.1f x %.1f cm", r.maxX-r.minX, r.maxY-r.minY))
			continue
		}
		rects = append(rects, r)
	}

	sort.SliceStable(rects, func(i, j int) bool {
		if rects[i].minX != rects[j].minX {
			return rects[i].minX < rects[j].minX
		}
		return rects[i].minY < rects[j].minY
	})
	return rects
}

// labelFor picks the text inside the rectangle, or failing that the
// nearest text directly above it.
func labelFor(r rect, texts []text) string {
	for _, t := range texts {
		if r.contains(t.x, t.y) {
			return t.value
		}
	}
	best := ""
	bestDist := math.Inf(1)
	for _, t := range texts {
		if t.x < r.minX || t.x > r.maxX || t.y < r.maxY {
			continue
		}
		if d := t.y - r.maxY; d < bestDist {
			best, bestDist = t.value, d
		}
	}
	return best
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline.
func lwPolylineToOutline(lw *entity.LwPolyline) outline {
	o := make(outline, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		o = append(o, model.Point2D{X: v[0], Y: v[1]})
	}
	return o
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) []outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []outline

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := outline{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains describe a piece
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
