package domain_test

import (
	"encoding/json"
	"testing"

	"seller_lens/internal/domain"
)

func TestDecodeFlags_IgnoresOtherVariants(t *testing.T) {
	bag := map[string]any{
		"repeatedKeywords":   []any{"perfect", "perfect"},
		"runOnSentence":      true,
		"unverifiedPurchase": true, // suspicious-only signal
		"recentCluster":      "true",
	}
	f, ok := domain.DecodeFlags(domain.ClassBotted, bag).(domain.BottedFlags)
	if !ok {
		t.Fatalf("expected BottedFlags")
	}
	if len(f.RepeatedKeywords) != 2 || !f.RunOnSentence {
		t.Fatalf("unexpected flags: %+v", f)
	}

	sf, ok := domain.DecodeFlags(domain.ClassSuspicious, bag).(domain.SuspiciousFlags)
	if !ok {
		t.Fatalf("expected SuspiciousFlags")
	}
	if !sf.UnverifiedPurchase || !sf.RecentCluster || sf.StarReviewMismatch {
		t.Fatalf("unexpected suspicious flags: %+v", sf)
	}

	if got := domain.DecodeFlags("spam", bag); got != nil {
		t.Fatalf("expected nil flags for unknown classification, got %#v", got)
	}
	if got := domain.DecodeFlags(domain.ClassReal, nil); got != (domain.RealFlags{}) {
		t.Fatalf("expected zero RealFlags for empty bag, got %#v", got)
	}
}

func TestReviewJSON_PicksVariantFromClassification(t *testing.T) {
	in := domain.Review{
		ID:             2,
		ProductID:      1,
		Reviewer:       "RajeshK123",
		Rating:         5,
		Date:           "2025-01-10",
		Classification: domain.ClassBotted,
		Flags:          domain.BottedFlags{RepeatedKeywords: []string{"good"}, ShortContent: true},
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out domain.Review
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	f, ok := out.Flags.(domain.BottedFlags)
	if !ok || !f.ShortContent || len(f.RepeatedKeywords) != 1 {
		t.Fatalf("flags lost in round trip: %#v", out.Flags)
	}
	if out.Reviewer != "RajeshK123" || out.Day().Day() != 10 {
		t.Fatalf("unexpected review: %+v", out)
	}
}

func TestClassificationKnown(t *testing.T) {
	for _, c := range domain.Classifications {
		if !c.Known() {
			t.Fatalf("%s should be known", c)
		}
	}
	if domain.Classification("other").Known() {
		t.Fatalf("other should not be known")
	}
}
