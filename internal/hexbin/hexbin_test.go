package hexbin

import (
	"math"
	"testing"

	"github.com/pable/go-shotmap/internal/model"
)

// Rink-shaped fixture geometry shared by the binning tests.
var (
	testXS   = NewScale(-100, 100, 0, 800)
	testYS   = NewScale(-42.5, 42.5, 0, 340)
	testRect = Rect{MinX: 0, MinY: 0, MaxX: 800, MaxY: 340}
)

func TestScale_Linear(t *testing.T) {
	sc := NewScale(0, 10, 0, 100)

	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{5, 50},
		{10, 100},
		{-5, 0},   // clamped low
		{15, 100}, // clamped high
	}
	for _, c := range cases {
		if got := sc.Apply(c.in); got != c.want {
			t.Errorf("Apply(%.1f): want %.1f, got %.1f", c.in, c.want, got)
		}
	}
}

func TestScale_ZeroWidthDomainClamps(t *testing.T) {
	sc := NewScale(7, 7, 0, 100)

	// Must not divide by zero; everything pins to the range midpoint.
	for _, v := range []float64{-1, 0, 7, 100} {
		if got := sc.Apply(v); got != 50 {
			t.Errorf("zero-width domain: Apply(%.1f) want 50, got %.1f", v, got)
		}
	}
}

func TestBin_TwoNearbyShotsMerge(t *testing.T) {
	shots := []model.ShotRecord{
		{X: 15, Y: 5, XG: 0.15, Period: 1, TeamID: "EDM"},
		{X: 15.2, Y: 5.1, XG: 0.25, Period: 1, TeamID: "TOR"},
	}

	bins := Bin(shots, testXS, testYS, 20, testRect)

	if len(bins) != 1 {
		t.Fatalf("expected the two shots to merge into one cell, got %d bins", len(bins))
	}
	if bins[0].Count() != 2 {
		t.Errorf("count: want 2, got %d", bins[0].Count())
	}
	if math.Abs(bins[0].AverageXG()-0.20) > 1e-9 {
		t.Errorf("averageXG: want 0.20, got %f", bins[0].AverageXG())
	}
}

func TestBin_PartitionIsExact(t *testing.T) {
	// Deterministic pseudo-random spread across the rink.
	var shots []model.ShotRecord
	for i := 0; i < 60; i++ {
		shots = append(shots, model.ShotRecord{
			X:  float64((i*37)%200) - 100,
			Y:  float64((i*13)%85) - 42.5,
			XG: float64(i%10) / 10,
		})
	}

	bins := Bin(shots, testXS, testYS, 12, testRect)

	total := 0
	for i := range bins {
		if bins[i].Count() < 1 {
			t.Errorf("bin %d emitted with count %d", i, bins[i].Count())
		}
		total += bins[i].Count()
	}
	// Scales clamp into the rect, so every shot lands in exactly one cell.
	if total != len(shots) {
		t.Errorf("partition: members total %d, want %d (no duplication, no omission)", total, len(shots))
	}
}

func TestBin_DistantShotsSeparate(t *testing.T) {
	shots := []model.ShotRecord{
		{X: -80, Y: -30, XG: 0.1},
		{X: 80, Y: 30, XG: 0.2},
	}

	bins := Bin(shots, testXS, testYS, 10, testRect)

	if len(bins) != 2 {
		t.Fatalf("opposite rink corners must not share a cell: got %d bins", len(bins))
	}
}

func TestBin_EmptyInput(t *testing.T) {
	bins := Bin(nil, testXS, testYS, 14, testRect)
	if len(bins) != 0 {
		t.Errorf("no shots must yield no bins, got %d", len(bins))
	}
}

func TestBin_StableOrder(t *testing.T) {
	var shots []model.ShotRecord
	for i := 0; i < 30; i++ {
		shots = append(shots, model.ShotRecord{
			X: float64((i*53)%200) - 100,
			Y: float64((i*29)%85) - 42.5,
		})
	}

	a := Bin(shots, testXS, testYS, 12, testRect)
	b := Bin(shots, testXS, testYS, 12, testRect)

	if len(a) != len(b) {
		t.Fatalf("bin counts differ across runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].CenterX != b[i].CenterX || a[i].CenterY != b[i].CenterY {
			t.Fatalf("bin order differs at %d", i)
		}
	}
}

func TestMarkers_OnlyHighDangerShots(t *testing.T) {
	shots := []model.ShotRecord{
		{X: 0, Y: 0, XG: 0.10},
		{X: 10, Y: 5, XG: 0.16},
		{X: 20, Y: -5, XG: 0.90},
		{X: 30, Y: 0, XG: model.HighDangerThreshold}, // exactly at threshold: excluded (strict >)
	}

	markers := Markers(shots, testXS, testYS)

	if len(markers) != 2 {
		t.Fatalf("expected 2 markers for xG > threshold, got %d", len(markers))
	}
}

func TestMarkers_RadiusMonotonicInQuality(t *testing.T) {
	shots := []model.ShotRecord{
		{X: 0, Y: 0, XG: 0.2},
		{X: 1, Y: 1, XG: 0.9},
	}

	markers := Markers(shots, testXS, testYS)

	if len(markers) != 2 {
		t.Fatalf("want 2 markers, got %d", len(markers))
	}
	if markers[1].Radius <= markers[0].Radius {
		t.Errorf("marker radius must grow with xG: %.2f vs %.2f", markers[0].Radius, markers[1].Radius)
	}
	want := markerBaseRadius + 0.2*markerRadiusScale
	if math.Abs(markers[0].Radius-want) > 1e-9 {
		t.Errorf("radius formula: want %.2f, got %.2f", want, markers[0].Radius)
	}
}

func TestVertices_OnCircle(t *testing.T) {
	vx, vy := Vertices(100, 100, 10)
	if len(vx) != 6 || len(vy) != 6 {
		t.Fatalf("hexagon needs 6 vertices, got %d/%d", len(vx), len(vy))
	}
	for k := range vx {
		d := math.Hypot(vx[k]-100, vy[k]-100)
		if math.Abs(d-10) > 1e-9 {
			t.Errorf("vertex %d at distance %f, want 10", k, d)
		}
	}
}
