package model

import "fmt"

// Quick-filter thresholds on the expected-goal value.
const (
	// HighQualityThreshold marks shots the model rates as likely goals.
	HighQualityThreshold = 0.8
	// HighDangerThreshold marks shots from structurally favorable positions.
	HighDangerThreshold = 0.15
)

// ShotRecord is one observed shot event. X/Y are ice-surface coordinates in
// feet (X from the rink reference line, Y from the centerline); XG is the
// externally supplied expected-goal estimate in [0,1]. Records are built once
// at load time and never mutated; a reload replaces the collection wholesale.
type ShotRecord struct {
	X  float64
	Y  float64
	XG float64

	ShotType string
	Period   int // 1-3 regulation, >=4 overtime
	GameTime string
	GameID   string
	PlayerID string
	TeamID   string
	Goal     bool
}

// HighDanger reports whether the shot clears the high-danger band.
func (s *ShotRecord) HighDanger() bool {
	return s.XG > HighDangerThreshold
}

// PeriodLabel renders a period number for display ("1".."3", "OT", "2OT", ...).
func PeriodLabel(p int) string {
	switch {
	case p <= 3:
		return fmt.Sprintf("%d", p)
	case p == 4:
		return "OT"
	default:
		return fmt.Sprintf("%dOT", p-3)
	}
}

// Bounds is a coordinate envelope over a shot collection. Empty marks the
// zero-record case explicitly so downstream scaling never sees ±Inf.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
	Empty      bool
}

// Pad expands the envelope by f on every side. No-op on empty bounds.
func (b Bounds) Pad(f float64) Bounds {
	if b.Empty {
		return b
	}
	b.XMin -= f
	b.XMax += f
	b.YMin -= f
	b.YMax += f
	return b
}

// DatasetSummary is the aggregate view over one shot collection. It is
// recomputed when the base collection is replaced, not on filter changes.
type DatasetSummary struct {
	TotalCount int
	TotalXG    float64
	AverageXG  float64 // 0 on an empty collection

	// Distinct dimension values, sorted for stable display.
	Teams     []string
	Periods   []int
	ShotTypes []string

	// XG value range across the collection; seeds the default filter.
	MinXG, MaxXG float64

	Bounds Bounds
}

// TeamSummary is a per-team rollup used by the summary report.
type TeamSummary struct {
	TeamID  string
	Shots   int
	Goals   int
	TotalXG float64
}

// AvgXG returns mean xG per shot, 0 when the team has no shots.
func (t *TeamSummary) AvgXG() float64 {
	if t.Shots == 0 {
		return 0
	}
	return t.TotalXG / float64(t.Shots)
}

// FilterConfig is one immutable predicate set. An empty allowlist imposes no
// restriction on its dimension. Every UI/CLI action builds a new value; a
// config handed to a render pass is never mutated underneath it.
type FilterConfig struct {
	Teams     []string
	Periods   []int
	ShotTypes []string

	XGMin float64
	XGMax float64

	HighQualityOnly bool // additionally require XG >= HighQualityThreshold
	HighDangerOnly  bool // additionally require XG >= HighDangerThreshold
}

// Validate checks the range invariant.
func (c FilterConfig) Validate() error {
	if c.XGMin > c.XGMax {
		return fmt.Errorf("xg range inverted: min %.3f > max %.3f", c.XGMin, c.XGMax)
	}
	return nil
}

// DefaultFilter builds the no-restriction config for a dataset: empty
// allowlists and the full observed xG range.
func DefaultFilter(s DatasetSummary) FilterConfig {
	return FilterConfig{XGMin: s.MinXG, XGMax: s.MaxXG}
}

// HexBin is one non-empty cell of the hexagonal partition. Bins are rebuilt
// from scratch on every render pass and discarded afterwards.
type HexBin struct {
	CenterX float64 // pixel space
	CenterY float64
	Members []ShotRecord
}

// Count returns the number of member shots; always >= 1 for emitted bins.
func (b *HexBin) Count() int {
	return len(b.Members)
}

// AverageXG returns the mean expected-goal value of the members, 0 when empty.
func (b *HexBin) AverageXG() float64 {
	if len(b.Members) == 0 {
		return 0
	}
	var sum float64
	for i := range b.Members {
		sum += b.Members[i].XG
	}
	return sum / float64(len(b.Members))
}

// Marker is one discrete high-danger shot in the overlay layer, already
// mapped to pixel space. The overlay is independent of binning.
type Marker struct {
	X, Y   float64
	XG     float64
	Radius float64
}

// DatasetInfo is a lightweight record for list/show commands.
type DatasetInfo struct {
	Key       string // hash of the source CSV plus any team restriction
	Label     string
	Source    string // "file:<path>" or "moneypuck"
	Season    string
	LoadedAt  string
	ShotCount int
	TotalXG   float64
}
