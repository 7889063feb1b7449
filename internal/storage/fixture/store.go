// Package fixture is the in-memory catalogue store, seeded from compiled-in
// records or from a YAML catalogue file.
package fixture

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"seller_lens/internal/domain"
)

type Miss struct {
	Kind   string
	ID     int64
	Status int
	Reason string
}

type Store struct {
	mu       sync.RWMutex
	sellers  map[int64]domain.Seller
	products map[int64]domain.Product
	reviews  map[int64]domain.Review
	misses   []Miss
}

func New(c Catalog) *Store {
	s := &Store{
		sellers:  make(map[int64]domain.Seller, len(c.Sellers)),
		products: make(map[int64]domain.Product, len(c.Products)),
		reviews:  make(map[int64]domain.Review, len(c.Reviews)),
	}
	for _, v := range c.Sellers {
		s.sellers[v.ID] = v
	}
	for _, v := range c.Products {
		s.products[v.ID] = v
	}
	for _, v := range c.Reviews {
		s.reviews[v.ID] = v
	}
	return s
}

// NewDefault is a store over the compiled-in catalogue.
func NewDefault() *Store { return New(Default()) }

func (s *Store) UpsertSeller(ctx context.Context, v domain.Seller) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sellers[v.ID] = v
	return nil
}

func (s *Store) UpsertProduct(ctx context.Context, v domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[v.ID] = v
	return nil
}

func (s *Store) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rs {
		if r.ID == 0 {
			return fmt.Errorf("review without id for product %d", r.ProductID)
		}
		s.reviews[r.ID] = r
	}
	return nil
}

func (s *Store) LogMiss(ctx context.Context, kind string, id int64, status int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.misses = append(s.misses, Miss{Kind: kind, ID: id, Status: status, Reason: reason})
	return nil
}

func (s *Store) Misses() []Miss {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Miss(nil), s.misses...)
}

func (s *Store) GetSeller(ctx context.Context, id int64) (domain.Seller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sellers[id]
	if !ok {
		return domain.Seller{}, domain.ErrNotFound
	}
	return v, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return v, nil
}

// ListReviews returns the product's reviews ordered by id.
func (s *Store) ListReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.products[productID]; !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Review, 0, 8)
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Snapshot returns every record, ordered by id, for seeding another store.
func (s *Store) Snapshot() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c Catalog
	for _, v := range s.sellers {
		c.Sellers = append(c.Sellers, v)
	}
	for _, v := range s.products {
		c.Products = append(c.Products, v)
	}
	for _, v := range s.reviews {
		c.Reviews = append(c.Reviews, v)
	}
	sort.Slice(c.Sellers, func(i, j int) bool { return c.Sellers[i].ID < c.Sellers[j].ID })
	sort.Slice(c.Products, func(i, j int) bool { return c.Products[i].ID < c.Products[j].ID })
	sort.Slice(c.Reviews, func(i, j int) bool { return c.Reviews[i].ID < c.Reviews[j].ID })
	return c
}
