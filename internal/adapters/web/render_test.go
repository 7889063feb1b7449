package web_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"seller_lens/internal/adapters/web"
	"seller_lens/internal/analysis"
	"seller_lens/internal/app"
	"seller_lens/internal/storage/fixture"
)

func TestRenderSeller(t *testing.T) {
	r, err := web.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	q := app.NewQueryService(fixture.NewDefault(), nil, time.Minute)
	v, err := q.GetSeller(context.Background(), fixture.SellerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Seller(&buf, web.SellerData{SellerView: v, ProductID: fixture.ProductID}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Leclerc Technologies Private Limited",
		`r="50"`,
		"Excellent",
		"Immediate Return Pattern",
		"12.0%", // warning check value
		`href="/products/1/reviews"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("seller page missing %q", want)
		}
	}
}

func TestRenderReviews(t *testing.T) {
	r, err := web.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	q := app.NewQueryService(fixture.NewDefault(), nil, time.Minute)
	pg, err := q.ReviewsPage(context.Background(), fixture.ProductID, analysis.ListOptions{Limit: 3})
	if err != nil {
		t.Fatalf("page: %v", err)
	}

	var buf bytes.Buffer
	err = r.Reviews(&buf, web.ReviewsData{ReviewsPage: pg, SellerID: fixture.SellerID, NextURL: "/products/1/reviews?cursor=3"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Leclerc Fan reviews",
		"average 4.1",
		"38%",
		"Model accuracy 89%",
		"Load more",
		"% confidence",
		`<option value="newest" selected>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("reviews page missing %q", want)
		}
	}
}
