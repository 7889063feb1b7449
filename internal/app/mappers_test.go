package app

import (
	"testing"

	"seller_lens/internal/domain"
)

func TestLookupAny_NestedPaths(t *testing.T) {
	m := map[string]any{"reviewer": map[string]any{"name": "Ana"}, "rating": "4,0"}
	if got := lookupStr(m, "reviewer.name"); got != "Ana" {
		t.Fatalf("unexpected %q", got)
	}
	if got := lookupAny(m, "reviewer.name.first"); got != nil {
		t.Fatalf("expected nil past a leaf, got %v", got)
	}
	if f := getFloatFlexible(m, "missing", "rating"); f == nil || *f != 4 {
		t.Fatalf("unexpected rating %v", f)
	}
}

func TestMapReviews_SyntheticIDIsStable(t *testing.T) {
	in := []map[string]any{{"userName": "QuickBuyer99", "stars": 5.0, "comment": "Perfect", "createdAt": "2025-01-11", "label": "Real"}}
	a := mapReviews(1, in)
	b := mapReviews(1, in)
	if len(a) != 1 || a[0].ID <= 0 || a[0].ID != b[0].ID {
		t.Fatalf("unstable id: %+v %+v", a, b)
	}
	if c := mapReviews(2, in); c[0].ID == a[0].ID {
		t.Fatalf("id should depend on product")
	}
	if a[0].Reviewer != "QuickBuyer99" || a[0].Content != "Perfect" || a[0].Date != "2025-01-11" {
		t.Fatalf("unexpected mapping: %+v", a[0])
	}
	if a[0].Classification != domain.ClassReal {
		t.Fatalf("expected real classification, got %q", a[0].Classification)
	}
}

func TestMapReviews_DropsUnknownClassification(t *testing.T) {
	in := []map[string]any{
		{"id": 1.0, "rating": 4.0, "text": "fine", "classification": "real"},
		{"id": 2.0, "rating": 4.0, "text": "who knows", "classification": "fake"},
		{"id": 3.0, "rating": 2.0, "text": "no label"},
	}
	out := mapReviews(1, in)
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only the labelled review, got %+v", out)
	}
}

func TestMapSeller_DefaultsAndClamp(t *testing.T) {
	s := mapSeller(map[string]any{"id": "12", "business_name": "Shop", "rating": 7.0, "trust_score": "64"})
	if s.ID != 12 || s.Name != "Shop" || s.Rating != 5 || s.Trust.Score != 64 {
		t.Fatalf("unexpected seller: %+v", s)
	}
	if s.Trust.Checks != nil {
		t.Fatalf("expected no checks: %+v", s.Trust.Checks)
	}
}

func TestMissStatus(t *testing.T) {
	if st, ok := missStatus(domain.ErrUnauthorized); !ok || st != 401 {
		t.Fatalf("unexpected %d %v", st, ok)
	}
	if _, ok := missStatus(domain.ErrNotFound); !ok {
		t.Fatalf("not found should be a miss")
	}
}
