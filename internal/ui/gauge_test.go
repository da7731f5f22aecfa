package ui

import (
	"math"
	"testing"
)

func TestTargetAngle(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{0, 0},
		{50, 0.75 * math.Pi},
		{100, 1.5 * math.Pi},
		{63, 0.63 * 1.5 * math.Pi},
	}

	for _, tt := range tests {
		if got := TargetAngle(tt.score); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("TargetAngle(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestGaugeStepConverges(t *testing.T) {
	g := NewGauge(63, "#F97316")
	target := TargetAngle(63)

	maxFrames := int(math.Ceil(target/GaugeStepRad)) + 1
	frames := 0
	for !g.Done() {
		g.Step()
		frames++
		if frames > maxFrames {
			t.Fatalf("gauge did not converge within %d frames", maxFrames)
		}
		if g.CurrentAngle() > target+1e-9 {
			t.Fatalf("sweep overshot target: %v > %v", g.CurrentAngle(), target)
		}
	}

	if math.Abs(g.CurrentAngle()-target) > 1e-9 {
		t.Errorf("final angle = %v, want exactly %v", g.CurrentAngle(), target)
	}
}

func TestGaugeZeroScoreIsImmediatelyDone(t *testing.T) {
	g := NewGauge(0, "#10B981")
	if !g.Done() {
		t.Error("a zero-score gauge has nothing to sweep")
	}
	if !g.Step() {
		t.Error("Step() on a finished gauge should report done")
	}
}

func TestGaugeScoreClamping(t *testing.T) {
	over := NewGauge(150, "#EF4444")
	if over.target != TargetAngle(100) {
		t.Errorf("target for score 150 = %v, want clamped to %v", over.target, TargetAngle(100))
	}

	under := NewGauge(-20, "#EF4444")
	if under.target != 0 {
		t.Errorf("target for score -20 = %v, want 0", under.target)
	}
}

func TestGaugeBadColorFallsBack(t *testing.T) {
	g := NewGauge(50, "not-a-color")
	if g.base != (rgb{r: 148, g: 163, b: 184}) {
		t.Errorf("base color = %+v, want the neutral fallback", g.base)
	}
}

func TestArcPosition(t *testing.T) {
	// straight up is the middle of the sweep
	sweep, on := arcPosition(0, 1)
	if !on {
		t.Fatal("top of the dial must be on the arc")
	}
	if want := 0.75 * math.Pi; math.Abs(sweep-want) > 1e-9 {
		t.Errorf("top sweep = %v, want %v", sweep, want)
	}

	// straight down falls in the bottom gap
	if _, on := arcPosition(0, -1); on {
		t.Error("bottom of the dial is the gap, not the arc")
	}

	// arc start (bottom-left diagonal) is sweep 0
	sweep, on = arcPosition(-1, -1)
	if !on {
		t.Fatal("bottom-left diagonal must be the arc start")
	}
	if math.Abs(sweep) > 1e-9 {
		t.Errorf("start sweep = %v, want 0", sweep)
	}

	// arc end (bottom-right diagonal) is the full sweep
	sweep, on = arcPosition(1, -1)
	if !on {
		t.Fatal("bottom-right diagonal must be the arc end")
	}
	if want := GaugeArcRadians; math.Abs(sweep-want) > 1e-9 {
		t.Errorf("end sweep = %v, want %v", sweep, want)
	}
}
