// Package web renders the seller and reviews pages from the same view models
// the JSON API serves.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"seller_lens/internal/analysis"
	"seller_lens/internal/app"
)

//go:embed templates/*.html
var files embed.FS

type Renderer struct{ t *template.Template }

// SellerData is the seller page model plus the product its reviews link to.
type SellerData struct {
	app.SellerView
	ProductID int64
}

// ReviewsData is the reviews page model: the listing plus the links the page
// needs to page forward and to get back to the seller.
type ReviewsData struct {
	app.ReviewsPage
	SellerID int64
	NextURL  string
	Filters  []analysis.Filter
	Sorts    []analysis.SortKey
}

func New() (*Renderer, error) {
	t, err := template.New("pages").Funcs(template.FuncMap{
		"f1":  func(v float64) string { return analysis.Fixed(v, 1) },
		"f2":  func(v float64) string { return analysis.Fixed(v, 2) },
		"pct": func(v float64) string { return analysis.Fixed(v*100, 1) + "%" },
		"stars": func(n int) []analysis.StarFill { return analysis.Stars(float64(n)) },
	}).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) Seller(w io.Writer, v SellerData) error {
	return r.render(w, "seller.html", v)
}

func (r *Renderer) Reviews(w io.Writer, v ReviewsData) error {
	if v.Filters == nil {
		v.Filters = []analysis.Filter{analysis.FilterAll, analysis.FilterReal, analysis.FilterBotted, analysis.FilterSuspicious}
	}
	if v.Sorts == nil {
		v.Sorts = []analysis.SortKey{analysis.SortNewest, analysis.SortOldest, analysis.SortRatingHigh, analysis.SortRatingLow, analysis.SortHelpful}
	}
	return r.render(w, "reviews.html", v)
}

// render executes into a buffer first so a template error never leaves a
// half-written page.
func (r *Renderer) render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
