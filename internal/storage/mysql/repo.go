package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"seller_lens/internal/domain"
)

// reviewsPerInsert bounds the placeholder count of one multi-row INSERT.
const reviewsPerInsert = 500

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// sellerProfile is the nested part of a seller kept in one JSON column.
type sellerProfile struct {
	Shipping       domain.Shipping         `json:"shipping"`
	Feedback       []domain.FeedbackWindow `json:"feedback"`
	RecentFeedback []domain.FeedbackEntry  `json:"recent_feedback"`
	Checks         []domain.QualityFlag    `json:"checks"`
	Metrics        domain.QualityMetrics   `json:"metrics"`
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertSeller(ctx context.Context, s domain.Seller) error {
	profile, err := json.Marshal(sellerProfile{
		Shipping:       s.Shipping,
		Feedback:       s.Feedback,
		RecentFeedback: s.RecentFeedback,
		Checks:         s.Trust.Checks,
		Metrics:        s.Trust.Metrics,
	})
	if err != nil {
		return fmt.Errorf("marshal seller profile: %w", err)
	}
	_, err = r.db.ExecContext(ctx, upsertSellerSQL,
		s.ID,
		s.Name,
		valStr(s.Location),
		s.Rating,
		s.PositivePercent,
		s.RatingCount,
		valStr(s.Description),
		s.Verified,
		s.Trust.Score,
		string(profile),
	)
	return err
}

func (r *Repo) UpsertProduct(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, upsertProductSQL, p.ID, valID(p.SellerID), p.Name)
	return err
}

// UpsertReviews writes all rows in one transaction, in multi-row batches.
func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for start := 0; start < len(rs); start += reviewsPerInsert {
		end := start + reviewsPerInsert
		if end > len(rs) {
			end = len(rs)
		}
		if err := insertReviews(ctx, tx, rs[start:end]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertReviews(ctx context.Context, tx *sql.Tx, rs []domain.Review) error {
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*11)
	for _, rv := range rs {
		if rv.ID == 0 {
			return fmt.Errorf("review without id for product %d", rv.ProductID)
		}
		var flags any
		if rv.Flags != nil {
			b, err := json.Marshal(rv.Flags)
			if err != nil {
				return fmt.Errorf("marshal flags of review %d: %w", rv.ID, err)
			}
			flags = string(b)
		}
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			rv.ID,
			rv.ProductID,
			rv.Reviewer,
			rv.Rating,
			rv.Title,
			valStr(rv.Content),
			valStr(rv.Date),
			rv.Verified,
			rv.Helpful,
			string(rv.Classification),
			flags,
		)
	}
	_, err := tx.ExecContext(ctx, insertReviewsPrefix+strings.Join(values, ",")+insertReviewsOnDup, args...)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, kind string, id int64, status int, reason string) error {
	if len(reason) > 255 {
		reason = reason[:255]
	}
	_, err := r.db.ExecContext(ctx, insertMissSQL, kind, id, status, reason)
	return err
}

func (r *Repo) GetSeller(ctx context.Context, id int64) (domain.Seller, error) {
	var (
		s           domain.Seller
		location    sql.NullString
		description sql.NullString
		profile     []byte
	)
	err := r.db.QueryRowContext(ctx, getSellerSQL, id).Scan(
		&s.ID, &s.Name, &location, &s.Rating, &s.PositivePercent, &s.RatingCount,
		&description, &s.Verified, &s.Trust.Score, &profile,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Seller{}, domain.ErrNotFound
		}
		return domain.Seller{}, err
	}
	s.Location = location.String
	s.Description = description.String

	var p sellerProfile
	if err := json.Unmarshal(profile, &p); err != nil {
		return domain.Seller{}, fmt.Errorf("decode profile of seller %d: %w", id, err)
	}
	s.Shipping = p.Shipping
	s.Feedback = p.Feedback
	s.RecentFeedback = p.RecentFeedback
	s.Trust.Checks = p.Checks
	s.Trust.Metrics = p.Metrics
	return s, nil
}

func (r *Repo) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var (
		p        domain.Product
		sellerID sql.NullInt64
	)
	if err := r.db.QueryRowContext(ctx, getProductSQL, id).Scan(&p.ID, &sellerID, &p.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, err
	}
	p.SellerID = sellerID.Int64
	return p, nil
}

// ListReviews returns the product's reviews ordered by id; an unknown product
// is ErrNotFound rather than an empty list.
func (r *Repo) ListReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	if _, err := r.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Review, 0, 16)
	for rows.Next() {
		var (
			rv      domain.Review
			content sql.NullString
			date    sql.NullString
			class   string
			flags   []byte
		)
		if err := rows.Scan(
			&rv.ID, &rv.ProductID, &rv.Reviewer, &rv.Rating, &rv.Title, &content,
			&date, &rv.Verified, &rv.Helpful, &class, &flags,
		); err != nil {
			return nil, err
		}
		rv.Content = content.String
		rv.Date = date.String
		rv.Classification = domain.Classification(class)

		var bag map[string]any
		if len(flags) > 0 {
			if err := json.Unmarshal(flags, &bag); err != nil {
				return nil, fmt.Errorf("decode flags of review %d: %w", rv.ID, err)
			}
		}
		rv.Flags = domain.DecodeFlags(rv.Classification, bag)
		out = append(out, rv)
	}
	return out, rows.Err()
}
