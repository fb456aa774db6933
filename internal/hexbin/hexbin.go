// Package hexbin partitions shots into a hexagonal grid in pixel space.
package hexbin

import (
	"math"
	"sort"

	"github.com/pable/go-shotmap/internal/model"
)

// Overlay marker sizing: radius = base + xg*scale, monotonic in shot quality.
const (
	markerBaseRadius  = 3.0
	markerRadiusScale = 6.0
)

// Scale is a linear transform from a data domain to a pixel range. Output is
// clamped to the range; a zero-width domain maps everything to the range
// midpoint instead of dividing by zero.
type Scale struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// NewScale builds a Scale over the given domain and pixel range.
func NewScale(domainMin, domainMax, rangeMin, rangeMax float64) Scale {
	return Scale{DomainMin: domainMin, DomainMax: domainMax, RangeMin: rangeMin, RangeMax: rangeMax}
}

// Apply maps v into pixel space.
func (sc Scale) Apply(v float64) float64 {
	width := sc.DomainMax - sc.DomainMin
	if width == 0 {
		return (sc.RangeMin + sc.RangeMax) / 2
	}
	p := sc.RangeMin + (sc.RangeMax-sc.RangeMin)*(v-sc.DomainMin)/width
	lo, hi := sc.RangeMin, sc.RangeMax
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(hi, math.Max(lo, p))
}

// Rect is the plotting area in pixel space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether the point lies inside the rectangle (inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Bin assigns each shot to a hexagonal cell of the given pixel radius under a
// pointy-top axial tiling, clipped to rect, and returns the non-empty cells.
// Every in-rect shot lands in exactly one cell; bins are ordered top-to-
// bottom, left-to-right for stable output.
func Bin(shots []model.ShotRecord, xs, ys Scale, radius float64, rect Rect) []model.HexBin {
	dx := radius * math.Sqrt(3)
	dy := radius * 1.5

	type cellKey struct{ i, j int }
	cells := make(map[cellKey]*model.HexBin)

	for idx := range shots {
		px := xs.Apply(shots[idx].X)
		py := ys.Apply(shots[idx].Y)
		if !rect.Contains(px, py) {
			continue
		}
		i, j := cellOf(px, py, dx, dy)
		key := cellKey{i, j}
		bin := cells[key]
		if bin == nil {
			bin = &model.HexBin{
				CenterX: (float64(i) + float64(j&1)/2) * dx,
				CenterY: float64(j) * dy,
			}
			cells[key] = bin
		}
		bin.Members = append(bin.Members, shots[idx])
	}

	out := make([]model.HexBin, 0, len(cells))
	for _, bin := range cells {
		out = append(out, *bin)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].CenterY != out[b].CenterY {
			return out[a].CenterY < out[b].CenterY
		}
		return out[a].CenterX < out[b].CenterX
	})
	return out
}

// cellOf picks the hexagon containing the point: round to the nearest lattice
// candidate, then compare against the adjacent row's candidate when the point
// sits in the overlap band between rows.
func cellOf(x, y, dx, dy float64) (int, int) {
	py := y / dy
	pj := math.Round(py)
	px := x/dx - float64(int(pj)&1)/2
	pi := math.Round(px)
	py1 := py - pj

	if math.Abs(py1)*3 > 1 {
		px1 := px - pi
		pi2 := pi + 0.5
		if px < pi {
			pi2 = pi - 0.5
		}
		pj2 := pj + 1
		if py < pj {
			pj2 = pj - 1
		}
		px2 := px - pi2
		py2 := py - pj2
		if px1*px1+py1*py1 > px2*px2+py2*py2 {
			if int(pj)&1 != 0 {
				pi = pi2 + 0.5
			} else {
				pi = pi2 - 0.5
			}
			pj = pj2
		}
	}
	return int(pi), int(pj)
}

// Markers maps every high-danger shot (xg above the threshold) to a discrete
// overlay marker. The overlay is a separate view layer from the bins; callers
// show it only when high-danger-only mode is off.
func Markers(shots []model.ShotRecord, xs, ys Scale) []model.Marker {
	var out []model.Marker
	for i := range shots {
		if !shots[i].HighDanger() {
			continue
		}
		out = append(out, model.Marker{
			X:      xs.Apply(shots[i].X),
			Y:      ys.Apply(shots[i].Y),
			XG:     shots[i].XG,
			Radius: markerBaseRadius + shots[i].XG*markerRadiusScale,
		})
	}
	return out
}

// Vertices returns the six corner points of a pointy-top hexagon centered at
// (cx, cy), for polygon rendering.
func Vertices(cx, cy, radius float64) ([]float64, []float64) {
	vx := make([]float64, 6)
	vy := make([]float64, 6)
	for k := 0; k < 6; k++ {
		angle := math.Pi/180*float64(60*k) - math.Pi/2
		vx[k] = cx + radius*math.Cos(angle)
		vy[k] = cy + radius*math.Sin(angle)
	}
	return vx, vy
}
