package analysis_test

import (
	"testing"

	"seller_lens/internal/analysis"
	"seller_lens/internal/domain"
	"seller_lens/internal/storage/fixture"
)

func TestAggregate_Empty(t *testing.T) {
	st := analysis.Aggregate(nil)
	if st.Total != 0 || st.AverageRating != 0 || st.VerifiedPercent != 0 {
		t.Fatalf("expected zero stats, got %+v", st)
	}
	for _, c := range domain.Classifications {
		if st.Counts[c] != 0 || st.Percents[c] != 0 {
			t.Fatalf("%s: expected zero count/percent, got %d/%d", c, st.Counts[c], st.Percents[c])
		}
	}
	if st.AverageRatingText() != "0.0" {
		t.Fatalf("unexpected average text %q", st.AverageRatingText())
	}
}

func TestAggregate_Sample(t *testing.T) {
	st := analysis.Aggregate(fixture.Default().Reviews)

	if st.Total != 8 {
		t.Fatalf("expected 8 reviews, got %d", st.Total)
	}
	want := map[domain.Classification][2]int{
		domain.ClassReal:       {3, 38},
		domain.ClassBotted:     {3, 38},
		domain.ClassSuspicious: {2, 25},
	}
	for c, w := range want {
		if st.Counts[c] != w[0] || st.Percents[c] != w[1] {
			t.Fatalf("%s: want %d (%d%%), got %d (%d%%)", c, w[0], w[1], st.Counts[c], st.Percents[c])
		}
	}
	if st.AverageRating != 4.125 || st.AverageRatingText() != "4.1" {
		t.Fatalf("unexpected average %v (%s)", st.AverageRating, st.AverageRatingText())
	}
	// 6 of 8 verified
	if st.VerifiedPercent != 75 {
		t.Fatalf("expected 75%% verified, got %d", st.VerifiedPercent)
	}
	if st.Insights.KeywordRepetition != 3 || st.Insights.StarContentMismatch != 1 ||
		st.Insights.SuspiciousUsernames != 2 || st.Insights.TimeClusters != 1 {
		t.Fatalf("unexpected insights: %+v", st.Insights)
	}
}

func TestAggregate_CountsSumToTotal(t *testing.T) {
	rs := []domain.Review{
		{ID: 1, Rating: 5, Classification: domain.ClassReal},
		{ID: 2, Rating: 1, Classification: domain.ClassBotted},
		{ID: 3, Rating: 2, Classification: domain.ClassBotted},
	}
	st := analysis.Aggregate(rs)
	sum := 0
	for _, c := range domain.Classifications {
		sum += st.Counts[c]
		if p := st.Percents[c]; p < 0 || p > 100 {
			t.Fatalf("%s: percent %d out of range", c, p)
		}
	}
	if sum != st.Total {
		t.Fatalf("counts sum %d != total %d", sum, st.Total)
	}
	if st.Percent("botted") != 67 || st.Count("real") != 1 {
		t.Fatalf("unexpected helpers: %d%% botted, %d real", st.Percent("botted"), st.Count("real"))
	}
}

func TestPercent_HalfUp(t *testing.T) {
	cases := []struct{ part, total, want int }{
		{1, 8, 13}, // 12.5
		{3, 8, 38}, // 37.5
		{2, 8, 25},
		{1, 3, 33},
		{0, 5, 0},
		{4, 0, 0},
	}
	for _, c := range cases {
		if got := analysis.Percent(c.part, c.total); got != c.want {
			t.Fatalf("Percent(%d,%d): want %d, got %d", c.part, c.total, c.want, got)
		}
	}
}

func TestAggregate_AverageTextRoundsTiesUp(t *testing.T) {
	rs := []domain.Review{
		{ID: 1, Rating: 5, Classification: domain.ClassReal},
		{ID: 2, Rating: 4, Classification: domain.ClassReal},
		{ID: 3, Rating: 4, Classification: domain.ClassBotted},
		{ID: 4, Rating: 4, Classification: domain.ClassSuspicious},
	}
	st := analysis.Aggregate(rs)
	if st.AverageRating != 4.25 {
		t.Fatalf("expected mean 4.25, got %v", st.AverageRating)
	}
	if got := st.AverageRatingText(); got != "4.3" {
		t.Fatalf("expected \"4.3\", got %q", got)
	}
}

func TestFixed(t *testing.T) {
	cases := []struct {
		v    float64
		prec int
		want string
	}{
		{4.25, 1, "4.3"},
		{4.75, 1, "4.8"},
		{12.5, 0, "13"},
		{0.125, 2, "0.13"},
		{4.1, 1, "4.1"},
		{0, 1, "0.0"},
		{-2.5, 0, "-3"},
	}
	for _, c := range cases {
		if got := analysis.Fixed(c.v, c.prec); got != c.want {
			t.Fatalf("Fixed(%v,%d): want %q, got %q", c.v, c.prec, c.want, got)
		}
	}
}
