package domain

import "strings"

// Flags is the set of heuristic signals behind a classification. The concrete
// type always matches the review's classification.
type Flags interface {
	Classification() Classification
}

type RealFlags struct {
	DetailedContent      bool `json:"detailedContent,omitempty" yaml:"detailedContent,omitempty"`
	NaturalLanguage      bool `json:"naturalLanguage,omitempty" yaml:"naturalLanguage,omitempty"`
	SpecificDetails      bool `json:"specificDetails,omitempty" yaml:"specificDetails,omitempty"`
	VerifiedPurchase     bool `json:"verifiedPurchase,omitempty" yaml:"verifiedPurchase,omitempty"`
	BalancedReview       bool `json:"balancedReview,omitempty" yaml:"balancedReview,omitempty"`
	ConstructiveFeedback bool `json:"constructiveFeedback,omitempty" yaml:"constructiveFeedback,omitempty"`
	HonestCriticism      bool `json:"honestCriticism,omitempty" yaml:"honestCriticism,omitempty"`
}

type BottedFlags struct {
	RepeatedKeywords    []string `json:"repeatedKeywords,omitempty" yaml:"repeatedKeywords,omitempty"`
	ShortContent        bool     `json:"shortContent,omitempty" yaml:"shortContent,omitempty"`
	GenericLanguage     bool     `json:"genericLanguage,omitempty" yaml:"genericLanguage,omitempty"`
	SuspiciousUsername  bool     `json:"suspiciousUsername,omitempty" yaml:"suspiciousUsername,omitempty"`
	LowEngagement       bool     `json:"lowEngagement,omitempty" yaml:"lowEngagement,omitempty"`
	ShortSentences      bool     `json:"shortSentences,omitempty" yaml:"shortSentences,omitempty"`
	GenericPhrases      bool     `json:"genericPhrases,omitempty" yaml:"genericPhrases,omitempty"`
	ExcessivePositivity bool     `json:"excessivePositivity,omitempty" yaml:"excessivePositivity,omitempty"`
	RunOnSentence       bool     `json:"runOnSentence,omitempty" yaml:"runOnSentence,omitempty"`
}

type SuspiciousFlags struct {
	StarReviewMismatch   bool `json:"starReviewMismatch,omitempty" yaml:"starReviewMismatch,omitempty"`
	UnverifiedPurchase   bool `json:"unverifiedPurchase,omitempty" yaml:"unverifiedPurchase,omitempty"`
	ContradictoryContent bool `json:"contradictoryContent,omitempty" yaml:"contradictoryContent,omitempty"`
	SameTimeCluster      bool `json:"sameTimeCluster,omitempty" yaml:"sameTimeCluster,omitempty"`
	TemplatedLanguage    bool `json:"templatedLanguage,omitempty" yaml:"templatedLanguage,omitempty"`
	RecentCluster        bool `json:"recentCluster,omitempty" yaml:"recentCluster,omitempty"`
}

func (RealFlags) Classification() Classification       { return ClassReal }
func (BottedFlags) Classification() Classification     { return ClassBotted }
func (SuspiciousFlags) Classification() Classification { return ClassSuspicious }

// DecodeFlags builds the variant for c from an untyped flag bag (JSON, YAML or
// feed payload). Keys that belong to other variants are ignored and missing
// keys read as false. Unknown classifications yield nil.
func DecodeFlags(c Classification, bag map[string]any) Flags {
	b := flagBag(bag)
	switch c {
	case ClassReal:
		return RealFlags{
			DetailedContent:      b.bool("detailedContent"),
			NaturalLanguage:      b.bool("naturalLanguage"),
			SpecificDetails:      b.bool("specificDetails"),
			VerifiedPurchase:     b.bool("verifiedPurchase"),
			BalancedReview:       b.bool("balancedReview"),
			ConstructiveFeedback: b.bool("constructiveFeedback"),
			HonestCriticism:      b.bool("honestCriticism"),
		}
	case ClassBotted:
		return BottedFlags{
			RepeatedKeywords:    b.strings("repeatedKeywords"),
			ShortContent:        b.bool("shortContent"),
			GenericLanguage:     b.bool("genericLanguage"),
			SuspiciousUsername:  b.bool("suspiciousUsername"),
			LowEngagement:       b.bool("lowEngagement"),
			ShortSentences:      b.bool("shortSentences"),
			GenericPhrases:      b.bool("genericPhrases"),
			ExcessivePositivity: b.bool("excessivePositivity"),
			RunOnSentence:       b.bool("runOnSentence"),
		}
	case ClassSuspicious:
		return SuspiciousFlags{
			StarReviewMismatch:   b.bool("starReviewMismatch"),
			UnverifiedPurchase:   b.bool("unverifiedPurchase"),
			ContradictoryContent: b.bool("contradictoryContent"),
			SameTimeCluster:      b.bool("sameTimeCluster"),
			TemplatedLanguage:    b.bool("templatedLanguage"),
			RecentCluster:        b.bool("recentCluster"),
		}
	}
	return nil
}

type flagBag map[string]any

// bool accepts real booleans and the usual string spellings.
func (b flagBag) bool(k string) bool {
	switch v := b[k].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1" || s == "yes"
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}

func (b flagBag) strings(k string) []string {
	switch v := b[k].(type) {
	case []string:
		if len(v) == 0 {
			return nil
		}
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		var out []string
		for _, p := range strings.Split(v, ",") {
			if t := strings.TrimSpace(p); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
	return nil
}
