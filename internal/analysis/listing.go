package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"seller_lens/internal/domain"
)

type Filter string

const (
	FilterAll        Filter = "all"
	FilterReal       Filter = Filter(domain.ClassReal)
	FilterBotted     Filter = Filter(domain.ClassBotted)
	FilterSuspicious Filter = Filter(domain.ClassSuspicious)
)

type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortRatingHigh SortKey = "rating-high"
	SortRatingLow  SortKey = "rating-low"
	SortHelpful    SortKey = "helpful"
)

const (
	DefaultLimit = 10
	MaxLimit     = 200
	ExcerptRunes = 200
)

// ParseFilter reads the select value; "" means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterReal, FilterBotted, FilterSuspicious:
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// ParseSort reads the select value; "" means newest.
func ParseSort(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortRatingHigh, SortRatingLow, SortHelpful:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

type ListOptions struct {
	Filter Filter
	Sort   SortKey
	Query  string
	Limit  int
	Cursor string // decimal offset
}

type Page struct {
	Items      []domain.Review
	Matched    int
	NextCursor *string
}

// Apply filters, searches, sorts and pages a copy of reviews. The input slice
// is never reordered.
func Apply(reviews []domain.Review, o ListOptions) (Page, error) {
	offset := 0
	if o.Cursor != "" {
		n, err := strconv.Atoi(o.Cursor)
		if err != nil || n < 0 {
			return Page{}, fmt.Errorf("invalid cursor %q", o.Cursor)
		}
		offset = n
	}
	limit := o.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	q := strings.ToLower(strings.TrimSpace(o.Query))
	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if o.Filter != "" && o.Filter != FilterAll && Filter(r.Classification) != o.Filter {
			continue
		}
		if q != "" && !matches(r, q) {
			continue
		}
		out = append(out, r)
	}
	sortReviews(out, o.Sort)

	pg := Page{Matched: len(out)}
	if offset >= len(out) {
		return pg, nil
	}
	end := offset + limit
	if end < len(out) {
		next := strconv.Itoa(end)
		pg.NextCursor = &next
	} else {
		end = len(out)
	}
	pg.Items = out[offset:end]
	return pg, nil
}

func matches(r domain.Review, q string) bool {
	return strings.Contains(strings.ToLower(r.Reviewer), q) ||
		strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Content), q)
}

func sortReviews(rs []domain.Review, k SortKey) {
	less := func(a, b domain.Review) bool { return a.ID < b.ID }
	var primary func(a, b domain.Review) int
	switch k {
	case SortOldest:
		primary = func(a, b domain.Review) int { return strings.Compare(a.Date, b.Date) }
	case SortRatingHigh:
		primary = func(a, b domain.Review) int { return b.Rating - a.Rating }
	case SortRatingLow:
		primary = func(a, b domain.Review) int { return a.Rating - b.Rating }
	case SortHelpful:
		primary = func(a, b domain.Review) int { return b.Helpful - a.Helpful }
	default: // newest
		primary = func(a, b domain.Review) int { return strings.Compare(b.Date, a.Date) }
	}
	sort.SliceStable(rs, func(i, j int) bool {
		if c := primary(rs[i], rs[j]); c != 0 {
			return c < 0
		}
		return less(rs[i], rs[j])
	})
}

// Excerpt shortens content to n runes plus "..." when it is longer.
func Excerpt(content string, n int) (string, bool) {
	if utf8.RuneCountInString(content) <= n {
		return content, false
	}
	r := []rune(content)
	return string(r[:n]) + "...", true
}

type StarFill string

const (
	StarFull  StarFill = "full"
	StarHalf  StarFill = "half"
	StarEmpty StarFill = "empty"
)

// Stars renders a 0..5 rating as five fills; fractional ratings get a half star.
func Stars(rating float64) []StarFill {
	out := make([]StarFill, 5)
	for i := range out {
		switch f := float64(i); {
		case f+1 <= rating:
			out[i] = StarFull
		case f < rating:
			out[i] = StarHalf
		default:
			out[i] = StarEmpty
		}
	}
	return out
}
