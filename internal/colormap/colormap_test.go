package colormap

import (
	"testing"

	"github.com/pable/go-shotmap/internal/model"
)

// binOf builds a HexBin whose members average to the given xG values.
func binOf(xgs ...float64) model.HexBin {
	var members []model.ShotRecord
	for _, xg := range xgs {
		members = append(members, model.ShotRecord{XG: xg})
	}
	return model.HexBin{Members: members}
}

func TestBinColor_DangerModeIgnoresCount(t *testing.T) {
	// Same average quality, very different counts.
	small := binOf(0.3)
	large := binOf(0.3, 0.3, 0.3, 0.3, 0.3)

	c1 := BinColor(&small, 5, true)
	c2 := BinColor(&large, 5, true)

	if c1 != c2 {
		t.Errorf("high-danger mode must depend on average xG alone: %s vs %s", c1, c2)
	}
}

func TestBinColor_DangerModeMonotonicInQuality(t *testing.T) {
	low := binOf(0.2)
	high := binOf(0.6)

	cLow := BinColor(&low, 1, true)
	cHigh := BinColor(&high, 1, true)

	if cLow == cHigh {
		t.Error("distinct average qualities should map to distinct danger colors")
	}
	if cHigh != ramp(dangerLow, dangerHigh, (0.6-model.HighDangerThreshold)/(1-model.HighDangerThreshold)) {
		t.Error("danger color must come from the danger ramp at the normalized average")
	}
}

func TestBinColor_QualityBranchAboveThreshold(t *testing.T) {
	// avg 0.3 is above 0.1, so the quality ramp applies at min(1, count/max + avg).
	bin := binOf(0.3, 0.3)

	got := BinColor(&bin, 4, false)
	want := ramp(qualityLow, qualityHigh, 0.5+0.3)

	if got != want {
		t.Errorf("quality branch: want %s, got %s", want, got)
	}
}

func TestBinColor_BlendSaturatesAtOne(t *testing.T) {
	// count == max and high average: intensity + avg > 1 must clamp.
	bin := binOf(0.9, 0.9)

	got := BinColor(&bin, 2, false)
	want := ramp(qualityLow, qualityHigh, 1)

	if got != want {
		t.Errorf("blend must saturate at 1: want %s, got %s", want, got)
	}
}

func TestBinColor_DensityBranchAtOrBelowThreshold(t *testing.T) {
	// avg exactly 0.1 is NOT above the threshold; density ramp applies.
	bin := binOf(0.1, 0.1)

	got := BinColor(&bin, 4, false)
	want := ramp(densityLow, densityHigh, 0.5)

	if got != want {
		t.Errorf("avg exactly at 0.1 must use the density ramp: want %s, got %s", want, got)
	}
}

func TestBinColor_ZeroMaxCount(t *testing.T) {
	bin := binOf(0.05)

	// maxCount 0 must not divide by zero.
	got := BinColor(&bin, 0, false)
	if got != ramp(densityLow, densityHigh, 0) {
		t.Errorf("zero maxCount: want bottom of density ramp, got %s", got)
	}
}

func TestMaxCount(t *testing.T) {
	bins := []model.HexBin{binOf(0.1), binOf(0.1, 0.2, 0.3), binOf(0.2, 0.2)}
	if got := MaxCount(bins); got != 3 {
		t.Errorf("MaxCount: want 3, got %d", got)
	}
	if got := MaxCount(nil); got != 0 {
		t.Errorf("MaxCount(nil): want 0, got %d", got)
	}
}

func TestRamp_Clamped(t *testing.T) {
	if ramp(densityLow, densityHigh, -0.5) != ramp(densityLow, densityHigh, 0) {
		t.Error("t below 0 must clamp to the ramp bottom")
	}
	if ramp(densityLow, densityHigh, 1.5) != ramp(densityLow, densityHigh, 1) {
		t.Error("t above 1 must clamp to the ramp top")
	}
}
