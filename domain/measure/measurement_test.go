package measure

import (
	"math"
	"testing"
)

func TestCompute_PixelUnit(t *testing.T) {
	m := Compute([]Point{{0, 0}, {10, 0}, {10, 10}}, false, UnitPixels, 1)
	if !almostEqual(m.TotalPixels, 20) {
		t.Fatalf("expected 20 px, got %v", m.TotalPixels)
	}
	if m.UnitMultiplier == nil || *m.UnitMultiplier != 1 {
		t.Fatalf("px multiplier must resolve to 1")
	}
	if m.TotalUnits == nil || !almostEqual(*m.TotalUnits, 20) {
		t.Fatalf("expected 20 units, got %v", m.TotalUnits)
	}
	if m.Closed || m.AreaUnits != nil {
		t.Fatalf("open path must carry no area")
	}
}

func TestCompute_UncalibratedNonPixelUnit(t *testing.T) {
	m := Compute([]Point{{0, 0}, {10, 0}}, false, "cm", 0)
	if m.UnitMultiplier != nil || m.TotalUnits != nil {
		t.Fatalf("uncalibrated scale must leave unit totals unset")
	}
	if !almostEqual(m.TotalPixels, 10) {
		t.Fatalf("pixel total still expected, got %v", m.TotalPixels)
	}
}

func TestCompute_ClosedSquareWithScale(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	m := Compute(square, true, "cm", 0.5)
	if !m.Closed {
		t.Fatalf("square should close")
	}
	if !almostEqual(m.TotalPixels, 40) || !almostEqual(m.AreaPixels, 100) {
		t.Fatalf("pixel metrics wrong: total=%v area=%v", m.TotalPixels, m.AreaPixels)
	}
	if m.TotalUnits == nil || !almostEqual(*m.TotalUnits, 20) {
		t.Fatalf("expected 20 cm perimeter, got %v", m.TotalUnits)
	}
	if m.AreaUnits == nil || !almostEqual(*m.AreaUnits, 25) {
		t.Fatalf("expected 25 cm² area, got %v", m.AreaUnits)
	}
}

func TestCompute_ClosedFlagIgnoredBelowThreeVertices(t *testing.T) {
	m := Compute([]Point{{0, 0}, {10, 0}}, true, UnitPixels, 1)
	if m.Closed {
		t.Fatalf("two vertices cannot form a loop")
	}
	if !almostEqual(m.TotalPixels, 10) {
		t.Fatalf("expected 10 px, got %v", m.TotalPixels)
	}
}

func TestCompute_MilesSecondaryReadouts(t *testing.T) {
	tri := []Point{{0, 0}, {4, 0}, {4, 3}}
	m := Compute(tri, true, "mi", 2)
	if m.UnitLabel != "miles (mi)" || m.DisplayUnitName != "mi" {
		t.Fatalf("mile labels wrong: %q / %q", m.UnitLabel, m.DisplayUnitName)
	}
	km, ok := m.SecondaryDistances["km"]
	if !ok {
		t.Fatalf("expected km secondary distance")
	}
	if m.TotalUnits == nil || math.Abs(km-*m.TotalUnits*1.60934) > 1e-9 {
		t.Fatalf("km conversion wrong: %v", km)
	}
	if _, ok := m.SecondaryAreas["km²"]; !ok {
		t.Fatalf("expected km² secondary area for closed mile path")
	}
}
