package analysis_test

import (
	"math"
	"testing"

	"seller_lens/internal/analysis"
	"seller_lens/internal/domain"
	"seller_lens/internal/storage/fixture"
)

func TestBandFor(t *testing.T) {
	cases := []struct {
		score int
		label string
		color string
	}{
		{97, "Excellent", "green"},
		{90, "Excellent", "green"},
		{89, "Fair", "yellow"},
		{75, "Fair", "yellow"},
		{70, "Fair", "yellow"},
		{69, "Poor", "red"},
		{50, "Poor", "red"},
	}
	for _, c := range cases {
		b := analysis.BandFor(c.score)
		if b.Label != c.label || b.Color != c.color {
			t.Fatalf("score %d: want %s/%s, got %+v", c.score, c.label, c.color, b)
		}
	}
}

func TestPresentTrust_ScoreIndependentOfChecks(t *testing.T) {
	checks := []domain.QualityFlag{
		{Name: "a", Status: domain.CheckFail, Value: 0.5, Threshold: 0.2},
		{Name: "b", Status: domain.CheckFail, Value: 0.9, Threshold: 0.1},
	}
	tb := analysis.PresentTrust(97, checks)
	if tb.Score != 97 || tb.Band.Color != "green" {
		t.Fatalf("score must be shown as given: %+v", tb)
	}
	if len(tb.Checks) != 2 || tb.Checks[0].Tone != "red" {
		t.Fatalf("unexpected checks: %+v", tb.Checks)
	}
}

func TestPresentTrust_FormattingAndGauge(t *testing.T) {
	s := fixture.Default().Sellers[0]
	tb := analysis.PresentProfile(s.Trust)

	first := tb.Checks[0]
	if first.ValueText != "8.0%" || first.ThresholdText != "15%" || first.Tone != "green" {
		t.Fatalf("unexpected first check view: %+v", first)
	}
	if tb.Checks[2].Tone != "yellow" {
		t.Fatalf("expected warning tone for immediate return pattern, got %q", tb.Checks[2].Tone)
	}
	if tb.Metrics.QualityTrend != "Improving" {
		t.Fatalf("metrics not carried: %+v", tb.Metrics)
	}

	wantOffset := 2 * math.Pi * 50 * 0.03
	if math.Abs(tb.Gauge.DashOffset-wantOffset) > 1e-9 {
		t.Fatalf("dash offset: want %v, got %v", wantOffset, tb.Gauge.DashOffset)
	}
}

func TestPresentTrust_PercentTiesRoundUp(t *testing.T) {
	tb := analysis.PresentTrust(80, []domain.QualityFlag{
		{Name: "Tie", Value: 0.0025, Threshold: 0.125, Status: domain.CheckPass},
	})
	if got := tb.Checks[0].ThresholdText; got != "13%" {
		t.Fatalf("threshold text: want 13%%, got %q", got)
	}
}

func TestPresentTrust_ClampsScore(t *testing.T) {
	if tb := analysis.PresentTrust(140, nil); tb.Score != 100 || tb.Gauge.DashOffset != 0 {
		t.Fatalf("expected clamp to 100: %+v", tb)
	}
	if tb := analysis.PresentTrust(-3, nil); tb.Score != 0 || tb.Band.Color != "red" {
		t.Fatalf("expected clamp to 0: %+v", tb)
	}
}
