package analysis

import (
	"math"
	"strconv"

	"seller_lens/internal/domain"
)

// ModelAccuracy is the classifier accuracy quoted in the sidebar.
const ModelAccuracy = 89

type Stats struct {
	Total           int                           `json:"total"`
	Counts          map[domain.Classification]int `json:"counts"`
	Percents        map[domain.Classification]int `json:"percents"`
	AverageRating   float64                       `json:"average_rating"`
	VerifiedCount   int                           `json:"verified_count"`
	VerifiedPercent int                           `json:"verified_percent"`
	Insights        Insights                      `json:"insights"`
}

// Insights counts the reviews carrying the signals summarised in the sidebar.
type Insights struct {
	KeywordRepetition   int `json:"keyword_repetition"`
	TimeClusters        int `json:"time_clusters"`
	StarContentMismatch int `json:"star_content_mismatch"`
	SuspiciousUsernames int `json:"suspicious_usernames"`
	ModelAccuracy       int `json:"model_accuracy"`
}

// Aggregate recomputes the sidebar numbers over the whole collection. An
// empty collection yields zeros everywhere.
func Aggregate(reviews []domain.Review) Stats {
	st := Stats{
		Total:    len(reviews),
		Counts:   make(map[domain.Classification]int, len(domain.Classifications)),
		Percents: make(map[domain.Classification]int, len(domain.Classifications)),
		Insights: Insights{ModelAccuracy: ModelAccuracy},
	}
	for _, c := range domain.Classifications {
		st.Counts[c] = 0
		st.Percents[c] = 0
	}
	if st.Total == 0 {
		return st
	}

	ratingSum := 0
	for _, r := range reviews {
		if r.Classification.Known() {
			st.Counts[r.Classification]++
		}
		ratingSum += r.Rating
		if r.Verified {
			st.VerifiedCount++
		}
		countInsights(&st.Insights, r)
	}

	for _, c := range domain.Classifications {
		st.Percents[c] = Percent(st.Counts[c], st.Total)
	}
	st.AverageRating = float64(ratingSum) / float64(st.Total)
	st.VerifiedPercent = Percent(st.VerifiedCount, st.Total)
	return st
}

func countInsights(in *Insights, r domain.Review) {
	switch f := r.Flags.(type) {
	case domain.BottedFlags:
		if r.Classification != domain.ClassBotted {
			return
		}
		if len(f.RepeatedKeywords) > 0 {
			in.KeywordRepetition++
		}
		if f.SuspiciousUsername {
			in.SuspiciousUsernames++
		}
	case domain.SuspiciousFlags:
		if r.Classification != domain.ClassSuspicious {
			return
		}
		if f.SameTimeCluster || f.RecentCluster {
			in.TimeClusters++
		}
		if f.StarReviewMismatch {
			in.StarContentMismatch++
		}
	}
}

// Percent is round(100*part/total) with halves rounded up; 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// AverageRatingText renders the average with one decimal, e.g. "4.1".
func (s Stats) AverageRatingText() string {
	return Fixed(s.AverageRating, 1)
}

// Fixed formats v with prec decimals, rounding halves away from zero
// (4.25 -> "4.3") instead of strconv's round-half-even.
func Fixed(v float64, prec int) string {
	scale := math.Pow(10, float64(prec))
	r := math.Floor(math.Abs(v)*scale+0.5) / scale
	if v < 0 {
		r = -r
	}
	return strconv.FormatFloat(r, 'f', prec, 64)
}

// Count and Percent are template helpers keyed by the label string.
func (s Stats) Count(c string) int { return s.Counts[domain.Classification(c)] }

func (s Stats) Percent(c string) int { return s.Percents[domain.Classification(c)] }
