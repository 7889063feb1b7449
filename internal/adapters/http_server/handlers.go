package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"seller_lens/internal/adapters/observability"
	"seller_lens/internal/adapters/web"
	"seller_lens/internal/analysis"
	"seller_lens/internal/app"
	"seller_lens/internal/domain"
)

type Handlers struct {
	Q     *app.QueryService
	Pages *web.Renderer

	DefaultSellerID  int64
	DefaultProductID int64
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/sellers/{id}", h.getSeller)
		r.Get("/sellers/{id}/trust", h.getTrust)
		r.Get("/products/{id}/reviews", h.listReviews)
		r.Get("/products/{id}/reviews/stats", h.getStats)
		r.Get("/products/{id}/reviews/{reviewID}", h.getReview)
	})

	if h.Pages != nil {
		s.mux.Get("/", h.home)
		s.mux.Get("/sellers/{id}", h.sellerPage)
		s.mux.Get("/products/{id}/reviews", h.reviewsPage)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", what+" not found")
		return
	}
	log.Error().Err(err).Str("resource", what).Msg("query failed")
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers 304 when the client already holds this version.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", name+" must be a positive number")
		return 0, false
	}
	return id, true
}

// listOptions reads filter, sort, q, limit and cursor from the query string.
func listOptions(q url.Values) (analysis.ListOptions, error) {
	f, err := analysis.ParseFilter(q.Get("filter"))
	if err != nil {
		return analysis.ListOptions{}, err
	}
	s, err := analysis.ParseSort(q.Get("sort"))
	if err != nil {
		return analysis.ListOptions{}, err
	}
	o := analysis.ListOptions{Filter: f, Sort: s, Query: q.Get("q"), Limit: analysis.DefaultLimit, Cursor: q.Get("cursor")}
	if ls := q.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > analysis.MaxLimit {
			return analysis.ListOptions{}, fmt.Errorf("limit must be an integer between 1 and %d", analysis.MaxLimit)
		}
		o.Limit = l
	}
	if o.Cursor != "" {
		if n, err := strconv.Atoi(o.Cursor); err != nil || n < 0 {
			return analysis.ListOptions{}, fmt.Errorf("invalid cursor %q", o.Cursor)
		}
	}
	return o, nil
}

/********** JSON API **********/

func (h *Handlers) getSeller(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	v, err := h.Q.GetSeller(r.Context(), id)
	if err != nil {
		writeError(w, err, "seller")
		return
	}
	writeJSON(w, r, v)
}

func (h *Handlers) getTrust(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	v, err := h.Q.Trust(r.Context(), id)
	if err != nil {
		writeError(w, err, "seller")
		return
	}
	writeJSON(w, r, v)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	o, err := listOptions(r.URL.Query())
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	out, err := h.Q.ReviewsPage(r.Context(), id, o)
	if err != nil {
		writeError(w, err, "product")
		return
	}
	observeCards(out.Items, "api")
	writeJSON(w, r, out)
}

func (h *Handlers) getStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	st, err := h.Q.Stats(r.Context(), id)
	if err != nil {
		writeError(w, err, "product")
		return
	}
	writeJSON(w, r, st)
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rid, ok := pathID(w, r, "reviewID")
	if !ok {
		return
	}
	c, err := h.Q.Explain(r.Context(), id, rid)
	if err != nil {
		writeError(w, err, "review")
		return
	}
	observability.ObserveVerdict(string(c.Review.Classification), "api")
	writeJSON(w, r, c)
}

func observeCards(cards []app.ReviewCard, surface string) {
	for _, c := range cards {
		observability.ObserveVerdict(string(c.Review.Classification), surface)
	}
}

/********** HTML pages **********/

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, fmt.Sprintf("/sellers/%d", h.DefaultSellerID), http.StatusFound)
}

func writeHTMLError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	log.Error().Err(err).Msg("page failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (h *Handlers) sellerPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid seller id", http.StatusBadRequest)
		return
	}
	v, err := h.Q.GetSeller(r.Context(), id)
	if err != nil {
		writeHTMLError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Pages.Seller(w, web.SellerData{SellerView: v, ProductID: h.DefaultProductID}); err != nil {
		writeHTMLError(w, err)
	}
}

func (h *Handlers) reviewsPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	q := r.URL.Query()
	o, err := listOptions(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pg, err := h.Q.ReviewsPage(r.Context(), id, o)
	if err != nil {
		writeHTMLError(w, err)
		return
	}

	observeCards(pg.Items, "page")
	data := web.ReviewsData{ReviewsPage: pg, SellerID: pg.Product.SellerID}
	if pg.NextCursor != nil {
		q.Set("cursor", *pg.NextCursor)
		data.NextURL = r.URL.Path + "?" + q.Encode()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Pages.Reviews(w, data); err != nil {
		writeHTMLError(w, err)
	}
}
