// Package analysis turns catalogue records into the numbers and explanations
// shown next to them. Everything here is a pure function of its inputs.
package analysis

import (
	"strings"

	"seller_lens/internal/domain"
)

type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
	Warning  Polarity = "warning"
)

// Icon categories understood by the page templates.
const (
	IconMessage = "message-square"
	IconUser    = "user"
	IconEye     = "eye"
	IconShield  = "shield"
	IconCheck   = "check-circle"
	IconAlert   = "alert-triangle"
	IconThumbs  = "thumbs-up"
	IconZap     = "zap"
	IconStar    = "star"
	IconClock   = "clock"
	IconX       = "x-circle"
)

type Reason struct {
	Icon     string   `json:"icon"`
	Text     string   `json:"text"`
	Polarity Polarity `json:"polarity"`
}

// signal is one flag check in priority order.
type signal struct {
	on   bool
	icon string
	text string
}

// Explain lists the detection reasons for a review in fixed priority order.
// Flags of a different variant than c, and unknown classifications, produce
// no reasons.
func Explain(c domain.Classification, flags domain.Flags) []Reason {
	var (
		sigs []signal
		pol  Polarity
	)
	switch c {
	case domain.ClassReal:
		f, ok := flags.(domain.RealFlags)
		if !ok {
			return nil
		}
		pol = Positive
		sigs = []signal{
			{f.DetailedContent, IconMessage, "Detailed, comprehensive content"},
			{f.NaturalLanguage, IconUser, "Natural language patterns"},
			{f.SpecificDetails, IconEye, "Specific product details mentioned"},
			{f.VerifiedPurchase, IconShield, "Verified purchase"},
			{f.BalancedReview, IconCheck, "Balanced pros and cons"},
			{f.ConstructiveFeedback, IconMessage, "Constructive feedback provided"},
			{f.HonestCriticism, IconEye, "Honest criticism with specifics"},
		}
	case domain.ClassBotted:
		f, ok := flags.(domain.BottedFlags)
		if !ok {
			return nil
		}
		pol = Negative
		sigs = []signal{
			{len(f.RepeatedKeywords) > 0, IconAlert, "Repeated keywords: " + strings.Join(f.RepeatedKeywords, ", ")},
			{f.ShortContent, IconMessage, "Unusually short content"},
			{f.GenericLanguage, IconUser, "Generic, templated language"},
			{f.SuspiciousUsername, IconUser, "Suspicious username pattern"},
			{f.LowEngagement, IconThumbs, "Unusually low engagement"},
			{f.ShortSentences, IconMessage, "Repetitive short sentences"},
			{f.GenericPhrases, IconAlert, "Generic promotional phrases"},
			{f.ExcessivePositivity, IconZap, "Excessive positivity without substance"},
			{f.RunOnSentence, IconMessage, "Run-on sentences without punctuation"},
		}
	case domain.ClassSuspicious:
		f, ok := flags.(domain.SuspiciousFlags)
		if !ok {
			return nil
		}
		pol = Warning
		sigs = []signal{
			{f.StarReviewMismatch, IconStar, "Star rating doesn't match review tone"},
			{f.UnverifiedPurchase, IconShield, "Unverified purchase"},
			{f.ContradictoryContent, IconAlert, "Contradictory content"},
			{f.SameTimeCluster, IconClock, "Part of same-time review cluster"},
			{f.TemplatedLanguage, IconUser, "Templated language patterns"},
			{f.RecentCluster, IconClock, "Part of recent review cluster"},
		}
	default:
		return nil
	}

	out := make([]Reason, 0, len(sigs))
	for _, s := range sigs {
		if s.on {
			out = append(out, Reason{Icon: s.icon, Text: s.text, Polarity: pol})
		}
	}
	return out
}

// Confidence is the static per-label confidence shown under the reasons.
// It does not depend on which flags fired.
func Confidence(c domain.Classification) (int, bool) {
	switch c {
	case domain.ClassReal:
		return 95, true
	case domain.ClassBotted:
		return 87, true
	case domain.ClassSuspicious:
		return 72, true
	}
	return 0, false
}

type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"` // green|red|yellow
	Icon  string `json:"icon"`
}

func BadgeFor(c domain.Classification) (Badge, bool) {
	switch c {
	case domain.ClassReal:
		return Badge{Label: "Real Review", Tone: "green", Icon: IconCheck}, true
	case domain.ClassBotted:
		return Badge{Label: "Botted Review", Tone: "red", Icon: IconX}, true
	case domain.ClassSuspicious:
		return Badge{Label: "Suspicious", Tone: "yellow", Icon: IconAlert}, true
	}
	return Badge{}, false
}
