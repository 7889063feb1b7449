package app

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"seller_lens/internal/domain"
)

/********** alias registries (single source of truth) **********/

var sellerAliases = map[string][]string{
	"name":        {"name", "seller_name", "sellerName", "business_name", "store.name"},
	"location":    {"location", "country", "address.country", "store.location"},
	"description": {"description", "about", "summary", "store.description"},
}

var productAliases = map[string][]string{
	"name": {"name", "title", "product_name", "productName"},
}

var reviewAliases = map[string][]string{
	"reviewer":       {"reviewer", "author", "userName", "user_name", "name", "reviewer.name", "user.name"},
	"title":          {"title", "review_title", "headline", "summary"},
	"content":        {"content", "text", "review_text", "review", "comment", "body"},
	"date":           {"date", "created_at", "createdAt", "review_date", "submitted_at"},
	"classification": {"classification", "label", "class", "verdict", "detection.label"},
	"source_id":      {"id", "review_id", "reviewId"},
	"rating":         {"rating", "stars", "score", "rating.value"},
	"helpful":        {"helpful", "helpful_votes", "helpfulVotes", "helpful_count"},
	"verified":       {"verified", "verified_purchase", "verifiedPurchase"},
	"flags":          {"flags", "signals", "detection.flags"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "3,5").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			s = strings.TrimSuffix(s, "%")
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	if f := getFloatFlexible(m, paths...); f != nil {
		x := int64(*f)
		return &x
	}
	return nil
}

func firstInt(m map[string]any, paths ...string) int {
	if f := getFloatFlexible(m, paths...); f != nil {
		return int(math.Round(*f))
	}
	return 0
}

func firstBool(m map[string]any, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		case float64:
			return v != 0
		}
	}
	return false
}

func firstMap(m map[string]any, paths ...string) map[string]any {
	for _, k := range paths {
		if v, ok := lookupAny(m, k).(map[string]any); ok {
			return v
		}
	}
	return nil
}

// decodeVia re-encodes a nested payload fragment into a typed destination.
func decodeVia(v any, dst any) bool {
	if v == nil {
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		log.Debug().Err(err).Str("context", "decodeVia").Msg("payload fragment skipped")
		return false
	}
	return true
}

// normDate keeps the YYYY-MM-DD prefix of RFC3339-ish timestamps.
func normDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(domain.DateLayout) {
		return s[:len(domain.DateLayout)]
	}
	return s
}

/********** seller mapper **********/

func mapSeller(p map[string]any) domain.Seller {
	s := domain.Seller{
		Name:            firstNonEmptyAlias(p, sellerAliases, "name"),
		Location:        firstNonEmptyAlias(p, sellerAliases, "location"),
		Description:     firstNonEmptyAlias(p, sellerAliases, "description"),
		PositivePercent: firstInt(p, "positive_percent", "positivePercent", "positive", "feedback.positive"),
		RatingCount:     firstInt(p, "rating_count", "ratingCount", "ratings", "reviews_count"),
		Verified:        firstBool(p, "verified", "is_verified", "isVerified"),
	}
	if v := firstInt64Flexible(p, "seller_id", "sellerId", "id"); v != nil {
		s.ID = *v
	}
	if f := getFloatFlexible(p, "rating", "rating.value", "stars"); f != nil {
		s.Rating = math.Max(0, math.Min(5, *f))
	}

	_ = decodeVia(lookupAny(p, "shipping"), &s.Shipping)
	_ = decodeVia(lookupAny(p, "feedback"), &s.Feedback)
	if !decodeVia(lookupAny(p, "recent_feedback"), &s.RecentFeedback) {
		_ = decodeVia(lookupAny(p, "recentFeedback"), &s.RecentFeedback)
	}

	if t := firstMap(p, "trust", "trust_profile", "quality"); t != nil {
		s.Trust.Score = firstInt(t, "score", "trust_score")
		_ = decodeVia(lookupAny(t, "checks"), &s.Trust.Checks)
		_ = decodeVia(lookupAny(t, "metrics"), &s.Trust.Metrics)
	} else {
		s.Trust.Score = firstInt(p, "trust_score", "trustScore")
	}
	return s
}

/********** product mapper **********/

func mapProduct(p map[string]any) domain.Product {
	out := domain.Product{Name: firstNonEmptyAlias(p, productAliases, "name")}
	if v := firstInt64Flexible(p, "product_id", "productId", "id"); v != nil {
		out.ID = *v
	}
	if v := firstInt64Flexible(p, "seller_id", "sellerId", "seller.id"); v != nil {
		out.SellerID = *v
	}
	return out
}

/********** reviews mapper **********/

func mapReviews(productID int64, in []map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		var rv domain.Review
		rv.ProductID = productID
		rv.Reviewer = firstNonEmptyAlias(r, reviewAliases, "reviewer")
		rv.Title = firstNonEmptyAlias(r, reviewAliases, "title")
		rv.Content = firstNonEmptyAlias(r, reviewAliases, "content")
		rv.Date = normDate(firstNonEmptyAlias(r, reviewAliases, "date"))
		rv.Helpful = firstInt(r, reviewAliases["helpful"]...)
		rv.Verified = firstBool(r, reviewAliases["verified"]...)
		rv.Classification = domain.Classification(strings.ToLower(firstNonEmptyAlias(r, reviewAliases, "classification")))
		if !rv.Classification.Known() {
			log.Warn().Int64("product_id", productID).Str("classification", string(rv.Classification)).
				Str("context", "mapReviews").Msg("review dropped: unknown classification")
			continue
		}

		rating := firstInt(r, reviewAliases["rating"]...)
		if rating < 1 || rating > 5 {
			log.Warn().Int64("product_id", productID).Int("rating", rating).
				Str("context", "mapReviews").Msg("review dropped: rating out of range")
			continue
		}
		rv.Rating = rating

		rv.Flags = domain.DecodeFlags(rv.Classification, firstMap(r, reviewAliases["flags"]...))

		// ID → prefer explicit; else synthesize a stable one from the content.
		if v := firstInt64Flexible(r, reviewAliases["source_id"]...); v != nil && *v > 0 {
			rv.ID = *v
		} else {
			rv.ID = syntheticID(productID, rv)
		}
		out = append(out, rv)
	}
	return out
}

func syntheticID(productID int64, rv domain.Review) int64 {
	sig := strings.Join([]string{
		strconv.FormatInt(productID, 10), rv.Reviewer, rv.Title, rv.Content, rv.Date, strconv.Itoa(rv.Rating),
	}, "|")
	sum := sha1.Sum([]byte(sig))
	// top bit cleared so the id stays positive
	return int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
}
