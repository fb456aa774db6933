package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/pable/go-shotmap/internal/model"
)

func fixedSource(shots []model.ShotRecord) Source {
	return SourceFunc(func(ctx context.Context) ([]model.ShotRecord, error) {
		return shots, nil
	})
}

func testShots() []model.ShotRecord {
	return []model.ShotRecord{
		{X: 15, Y: 5, XG: 0.15, Period: 1, TeamID: "EDM"},
		{X: 15.2, Y: 5.1, XG: 0.25, Period: 1, TeamID: "TOR"},
		{X: -60, Y: -20, XG: 0.05, Period: 2, TeamID: "EDM"},
		{X: 70, Y: 30, XG: 0.90, Period: 3, TeamID: "TOR"},
	}
}

func TestChart_LoadAndSummary(t *testing.T) {
	chart := NewChart()

	if err := chart.Load(context.Background(), fixedSource(testShots())); err != nil {
		t.Fatalf("load: %v", err)
	}

	s := chart.Summary()
	if s.TotalCount != 4 {
		t.Errorf("TotalCount: want 4, got %d", s.TotalCount)
	}
	if s.Bounds.Empty {
		t.Error("bounds should be populated after load")
	}
}

func TestChart_LoadFailureKeepsPreviousCollection(t *testing.T) {
	chart := NewChart()
	if err := chart.Load(context.Background(), fixedSource(testShots())); err != nil {
		t.Fatalf("load: %v", err)
	}

	failing := SourceFunc(func(ctx context.Context) ([]model.ShotRecord, error) {
		return nil, errors.New("source unavailable")
	})

	err := chart.Load(context.Background(), failing)
	if err == nil {
		t.Fatal("a failed load must surface an error, not silently yield an empty dataset")
	}
	if chart.Summary().TotalCount != 4 {
		t.Errorf("failed load must not replace the base collection: count %d", chart.Summary().TotalCount)
	}
}

func TestChart_StaleLoadDiscarded(t *testing.T) {
	chart := NewChart()

	started := make(chan struct{})
	release := make(chan struct{})
	slow := SourceFunc(func(ctx context.Context) ([]model.ShotRecord, error) {
		close(started)
		<-release
		return []model.ShotRecord{{X: 1, Y: 1, XG: 0.5}}, nil
	})

	done := make(chan error, 1)
	go func() { done <- chart.Load(context.Background(), slow) }()
	<-started

	// A newer reload completes while the slow one is still reading.
	if err := chart.Load(context.Background(), fixedSource(testShots())); err != nil {
		t.Fatalf("newer load: %v", err)
	}

	close(release)
	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("stale load: want ErrSuperseded, got %v", err)
	}

	// Last write wins: the newer collection stays.
	if chart.Summary().TotalCount != 4 {
		t.Errorf("stale result leaked into the base collection: count %d", chart.Summary().TotalCount)
	}
}

func TestChart_RenderMergesNearbyShots(t *testing.T) {
	chart := NewChart()
	shots := []model.ShotRecord{
		{X: 15, Y: 5, XG: 0.15, Period: 1, TeamID: "EDM"},
		{X: 15.2, Y: 5.1, XG: 0.25, Period: 1, TeamID: "TOR"},
	}
	if err := chart.Load(context.Background(), fixedSource(shots)); err != nil {
		t.Fatalf("load: %v", err)
	}

	// With only two records the data-derived domain is tiny, so the plot
	// scales spread them across the full rect; the radius must be large
	// relative to the plot for the pair to share a cell.
	lay := DefaultLayout()
	lay.HexRadius = 200

	snap, err := chart.Render(chart.DefaultFilter(), lay)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(snap.Bins) != 1 {
		t.Fatalf("want one merged bin, got %d", len(snap.Bins))
	}
	if snap.Bins[0].Count() != 2 {
		t.Errorf("bin count: want 2, got %d", snap.Bins[0].Count())
	}
	if math.Abs(snap.Bins[0].AverageXG()-0.20) > 1e-9 {
		t.Errorf("bin averageXG: want 0.20, got %f", snap.Bins[0].AverageXG())
	}
	if len(snap.Colors) != len(snap.Bins) {
		t.Errorf("colors must parallel bins: %d vs %d", len(snap.Colors), len(snap.Bins))
	}
}

func TestChart_RenderDeterministic(t *testing.T) {
	chart := NewChart()
	if err := chart.Load(context.Background(), fixedSource(testShots())); err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := chart.DefaultFilter()
	lay := DefaultLayout()

	a, err := chart.Render(cfg, lay)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := chart.Render(cfg, lay)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(a.Bins) != len(b.Bins) || a.FilteredCount != b.FilteredCount {
		t.Fatal("recomputation must be deterministic given identical inputs")
	}
	for i := range a.Bins {
		if a.Colors[i] != b.Colors[i] {
			t.Errorf("color %d differs across identical renders", i)
		}
	}
}

func TestChart_HighDangerModeSwitchesRadiusAndDropsOverlay(t *testing.T) {
	chart := NewChart()
	if err := chart.Load(context.Background(), fixedSource(testShots())); err != nil {
		t.Fatalf("load: %v", err)
	}
	lay := DefaultLayout()

	normal, err := chart.Render(chart.DefaultFilter(), lay)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if normal.HexRadius != lay.HexRadius {
		t.Errorf("default mode radius: want %.1f, got %.1f", lay.HexRadius, normal.HexRadius)
	}
	// Overlay present: two shots clear the high-danger threshold.
	if len(normal.Markers) != 2 {
		t.Errorf("overlay markers: want 2, got %d", len(normal.Markers))
	}

	cfg := chart.DefaultFilter()
	cfg.HighDangerOnly = true
	danger, err := chart.Render(cfg, lay)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if danger.HexRadius != lay.HighDangerHexRadius {
		t.Errorf("high-danger radius: want %.1f, got %.1f", lay.HighDangerHexRadius, danger.HexRadius)
	}
	if len(danger.Markers) != 0 {
		t.Errorf("high-danger mode must not emit the overlay, got %d markers", len(danger.Markers))
	}
	for _, b := range danger.Bins {
		for _, m := range b.Members {
			if m.XG < model.HighDangerThreshold {
				t.Errorf("bin member below the danger band: %f", m.XG)
			}
		}
	}
}

func TestChart_RenderEmptyDataset(t *testing.T) {
	chart := NewChart()

	snap, err := chart.Render(model.FilterConfig{XGMax: 1}, DefaultLayout())
	if err != nil {
		t.Fatalf("render on empty chart: %v", err)
	}
	if len(snap.Bins) != 0 || snap.FilteredCount != 0 {
		t.Errorf("empty dataset must render to an empty snapshot: %+v", snap)
	}
}

func TestChart_RenderRejectsInvertedRange(t *testing.T) {
	chart := NewChart()
	if err := chart.Load(context.Background(), fixedSource(testShots())); err != nil {
		t.Fatalf("load: %v", err)
	}

	_, err := chart.Render(model.FilterConfig{XGMin: 0.9, XGMax: 0.1}, DefaultLayout())
	if err == nil {
		t.Error("inverted xG range must be rejected")
	}
}
