package analysis

import (
	"math"

	"seller_lens/internal/domain"
)

const (
	excellentCutoff = 90
	fairCutoff      = 70

	// gauge circle radius in the 120x120 viewBox
	gaugeRadius = 50.0
)

type Band struct {
	Label string `json:"label"`
	Color string `json:"color"` // green|yellow|red
}

// BandFor maps a score to its qualitative band: >=90 green, >=70 yellow, else red.
func BandFor(score int) Band {
	switch {
	case score >= excellentCutoff:
		return Band{Label: "Excellent", Color: "green"}
	case score >= fairCutoff:
		return Band{Label: "Fair", Color: "yellow"}
	default:
		return Band{Label: "Poor", Color: "red"}
	}
}

type Gauge struct {
	Circumference float64 `json:"circumference"`
	DashOffset    float64 `json:"dash_offset"`
}

type CheckView struct {
	domain.QualityFlag
	Tone          string `json:"tone"`
	ValueText     string `json:"value_text"`     // "8.0%"
	ThresholdText string `json:"threshold_text"` // "15%"
}

type TrustBreakdown struct {
	Score   int                   `json:"score"`
	Band    Band                  `json:"band"`
	Gauge   Gauge                 `json:"gauge"`
	Checks  []CheckView           `json:"checks"`
	Metrics domain.QualityMetrics `json:"metrics"`
}

// PresentTrust builds the trust-score view. The score and the checks are
// independent inputs: the score is shown as given and never recomputed from
// the check outcomes.
func PresentTrust(score int, checks []domain.QualityFlag) TrustBreakdown {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	circ := 2 * math.Pi * gaugeRadius
	out := TrustBreakdown{
		Score: score,
		Band:  BandFor(score),
		Gauge: Gauge{
			Circumference: circ,
			DashOffset:    circ * (1 - float64(score)/100),
		},
		Checks: make([]CheckView, 0, len(checks)),
	}
	for _, c := range checks {
		out.Checks = append(out.Checks, CheckView{
			QualityFlag:   c,
			Tone:          statusTone(c.Status),
			ValueText:     Fixed(c.Value*100, 1) + "%",
			ThresholdText: Fixed(c.Threshold*100, 0) + "%",
		})
	}
	return out
}

// PresentProfile is PresentTrust over a stored profile, carrying its metrics.
func PresentProfile(p domain.TrustProfile) TrustBreakdown {
	tb := PresentTrust(p.Score, p.Checks)
	tb.Metrics = p.Metrics
	return tb
}

func statusTone(s domain.CheckStatus) string {
	switch s {
	case domain.CheckPass:
		return "green"
	case domain.CheckWarning:
		return "yellow"
	case domain.CheckFail:
		return "red"
	}
	return "gray"
}
