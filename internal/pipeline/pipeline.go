// Package pipeline wires the recomputation chain from base collection to
// summary, filtered set, bins, and colors. Every stage is recomputed from
// scratch on input change; nothing is diffed incrementally.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pable/go-shotmap/internal/aggregator"
	"github.com/pable/go-shotmap/internal/colormap"
	"github.com/pable/go-shotmap/internal/filter"
	"github.com/pable/go-shotmap/internal/hexbin"
	"github.com/pable/go-shotmap/internal/model"
)

// ErrSuperseded is returned by Load when a newer reload started while this
// one was in flight; the stale result is discarded, never merged.
var ErrSuperseded = errors.New("load superseded by a newer reload")

// Source yields a shot collection. Storage, files, and the remote fetcher
// all adapt to this.
type Source interface {
	Shots(ctx context.Context) ([]model.ShotRecord, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]model.ShotRecord, error)

// Shots implements Source.
func (f SourceFunc) Shots(ctx context.Context) ([]model.ShotRecord, error) {
	return f(ctx)
}

// Layout holds the pixel geometry and binning parameters for one chart.
// Hex radii are configuration, not derived values: the high-danger subset
// clusters in a small ice area and warrants a finer grid.
type Layout struct {
	Width, Height float64
	Margin        float64

	HexRadius           float64
	HighDangerHexRadius float64

	// DomainPad widens the data-derived coordinate domain (feet) so edge
	// shots do not sit exactly on the plot border.
	DomainPad float64
}

// DefaultLayout returns the standard chart geometry.
func DefaultLayout() Layout {
	return Layout{
		Width:               880,
		Height:              420,
		Margin:              30,
		HexRadius:           14,
		HighDangerHexRadius: 9,
		DomainPad:           2,
	}
}

// PlotRect returns the plotting area inside the margins.
func (l Layout) PlotRect() hexbin.Rect {
	return hexbin.Rect{
		MinX: l.Margin,
		MinY: l.Margin,
		MaxX: l.Width - l.Margin,
		MaxY: l.Height - l.Margin,
	}
}

// Snapshot is one fully derived render pass: pure data for the drawing
// layer, discarded after use.
type Snapshot struct {
	Summary       model.DatasetSummary
	Config        model.FilterConfig
	FilteredCount int
	FilteredXG    float64

	Bins     []model.HexBin
	Colors   []string // parallel to Bins
	MaxCount int
	Markers  []model.Marker

	HexRadius float64
}

// Chart owns one immutable base collection and its summary. The collection
// is replaced wholesale by Load; derived structures live only in Snapshots.
type Chart struct {
	mu      sync.Mutex
	gen     uint64
	shots   []model.ShotRecord
	summary model.DatasetSummary
}

// NewChart returns an empty chart.
func NewChart() *Chart {
	return &Chart{}
}

// Load replaces the base collection from src. Last write wins: if another
// Load starts while this one is reading, this result is dropped and
// ErrSuperseded is returned. A source failure is surfaced as-is and the chart
// never silently degrades to an empty dataset.
func (c *Chart) Load(ctx context.Context, src Source) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	shots, err := src.Shots(ctx)
	if err != nil {
		return fmt.Errorf("load shots: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	c.shots = shots
	c.summary = aggregator.Summarize(shots)
	return nil
}

// Summary returns the aggregate view of the current base collection.
func (c *Chart) Summary() model.DatasetSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

// DefaultFilter returns the no-restriction config for the loaded dataset.
func (c *Chart) DefaultFilter() model.FilterConfig {
	return model.DefaultFilter(c.Summary())
}

// Render runs filtering, binning, and coloring for one configuration and layout.
func (c *Chart) Render(cfg model.FilterConfig, lay Layout) (Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	shots := c.shots
	summary := c.summary
	c.mu.Unlock()

	filtered := filter.Apply(shots, cfg)
	rect := lay.PlotRect()

	b := summary.Bounds.Pad(lay.DomainPad)
	var xs, ys hexbin.Scale
	if b.Empty {
		// Zero-width domains clamp inside Scale; empty bounds just pin
		// everything to the plot center.
		xs = hexbin.NewScale(0, 0, rect.MinX, rect.MaxX)
		ys = hexbin.NewScale(0, 0, rect.MinY, rect.MaxY)
	} else {
		xs = hexbin.NewScale(b.XMin, b.XMax, rect.MinX, rect.MaxX)
		ys = hexbin.NewScale(b.YMin, b.YMax, rect.MinY, rect.MaxY)
	}

	radius := lay.HexRadius
	if cfg.HighDangerOnly {
		radius = lay.HighDangerHexRadius
	}

	bins := hexbin.Bin(filtered, xs, ys, radius, rect)
	maxCount := colormap.MaxCount(bins)

	colors := make([]string, len(bins))
	for i := range bins {
		colors[i] = colormap.BinColor(&bins[i], maxCount, cfg.HighDangerOnly)
	}

	var markers []model.Marker
	if !cfg.HighDangerOnly {
		markers = hexbin.Markers(filtered, xs, ys)
	}

	var filteredXG float64
	for i := range filtered {
		filteredXG += filtered[i].XG
	}

	return Snapshot{
		Summary:       summary,
		Config:        cfg,
		FilteredCount: len(filtered),
		FilteredXG:    filteredXG,
		Bins:          bins,
		Colors:        colors,
		MaxCount:      maxCount,
		Markers:       markers,
		HexRadius:     radius,
	}, nil
}
