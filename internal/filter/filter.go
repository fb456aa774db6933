// Package filter evaluates FilterConfig predicates over shot collections.
//
// A record passes when it satisfies every active dimension (logical AND). An
// empty allowlist is vacuously true for its dimension, never "reject all".
package filter

import "github.com/pable/go-shotmap/internal/model"

// Apply returns the subset of shots matching cfg, preserving input order.
// Deterministic, side-effect free, O(n); the full collection is re-evaluated
// on every configuration change rather than diffed incrementally.
func Apply(shots []model.ShotRecord, cfg model.FilterConfig) []model.ShotRecord {
	out := make([]model.ShotRecord, 0, len(shots))
	for i := range shots {
		if Matches(&shots[i], cfg) {
			out = append(out, shots[i])
		}
	}
	return out
}

// Matches evaluates every predicate dimension against one record.
func Matches(s *model.ShotRecord, cfg model.FilterConfig) bool {
	// Absent team/period compare as their zero values.
	if !stringAllowed(cfg.Teams, s.TeamID) {
		return false
	}
	if !intAllowed(cfg.Periods, s.Period) {
		return false
	}
	if !stringAllowed(cfg.ShotTypes, s.ShotType) {
		return false
	}
	// Range bounds are inclusive on both ends.
	if s.XG < cfg.XGMin || s.XG > cfg.XGMax {
		return false
	}
	if cfg.HighQualityOnly && s.XG < model.HighQualityThreshold {
		return false
	}
	if cfg.HighDangerOnly && s.XG < model.HighDangerThreshold {
		return false
	}
	return true
}

func stringAllowed(allow []string, v string) bool {
	if len(allow) == 0 {
		return true
	}
	for _, a := range allow {
		if a == v {
			return true
		}
	}
	return false
}

func intAllowed(allow []int, v int) bool {
	if len(allow) == 0 {
		return true
	}
	for _, a := range allow {
		if a == v {
			return true
		}
	}
	return false
}
