// Package colormap derives visual colors for bins and markers.
package colormap

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pable/go-shotmap/internal/model"
)

// qualityBlendThreshold splits the blended quality ramp from the pure density
// ramp: bins averaging above it read "hotter" than raw density alone.
const qualityBlendThreshold = 0.1

// Ramp endpoints, blended in Lab space.
var (
	dangerLow   = mustHex("#fee08b") // pale amber
	dangerHigh  = mustHex("#a50026") // deep red
	qualityLow  = mustHex("#fdae61")
	qualityHigh = mustHex("#7f0000")
	densityLow  = mustHex("#deebf7") // pale blue
	densityHigh = mustHex("#08306b") // dark blue
)

// BinColor maps one bin to a hex color string. First branch wins:
//
//  1. high-danger mode: average quality alone on the danger ramp; density
//     carries no signal there, every shown shot is already dangerous;
//  2. average quality above the blend threshold: min(1, density + avg) on
//     the quality ramp;
//  3. otherwise: normalized density on the density ramp.
func BinColor(bin *model.HexBin, maxCount int, highDangerOnly bool) string {
	avg := bin.AverageXG()

	if highDangerOnly {
		// Ramp starts at the high-danger threshold so the coldest shown
		// bin sits at the bottom of the ramp.
		t := (avg - model.HighDangerThreshold) / (1 - model.HighDangerThreshold)
		return ramp(dangerLow, dangerHigh, t)
	}

	var intensity float64
	if maxCount > 0 {
		intensity = float64(bin.Count()) / float64(maxCount)
	}

	if avg > qualityBlendThreshold {
		return ramp(qualityLow, qualityHigh, math.Min(1, intensity+avg))
	}
	return ramp(densityLow, densityHigh, intensity)
}

// MaxCount returns the largest member count across bins, 0 for no bins.
func MaxCount(bins []model.HexBin) int {
	max := 0
	for i := range bins {
		if bins[i].Count() > max {
			max = bins[i].Count()
		}
	}
	return max
}

func ramp(low, high colorful.Color, t float64) string {
	t = math.Min(1, math.Max(0, t))
	return low.BlendLab(high, t).Clamped().Hex()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
