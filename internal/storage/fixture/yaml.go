package fixture

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"seller_lens/internal/domain"
)

type fileCatalog struct {
	Sellers  []domain.Seller `yaml:"sellers"`
	Products []struct {
		ID       int64  `yaml:"id"`
		SellerID int64  `yaml:"seller_id"`
		Name     string `yaml:"name"`
	} `yaml:"products"`
	Reviews []struct {
		ID             int64          `yaml:"id"`
		ProductID      int64          `yaml:"product_id"`
		Reviewer       string         `yaml:"reviewer"`
		Rating         int            `yaml:"rating"`
		Title          string         `yaml:"title"`
		Content        string         `yaml:"content"`
		Date           string         `yaml:"date"`
		Verified       bool           `yaml:"verified"`
		Helpful        int            `yaml:"helpful"`
		Classification string         `yaml:"classification"`
		Flags          map[string]any `yaml:"flags"`
	} `yaml:"reviews"`
}

// LoadFile reads a YAML catalogue file.
func LoadFile(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML catalogue. Review flags are read as an untyped bag and
// narrowed to the variant of each review's classification.
func Parse(b []byte) (Catalog, error) {
	var fc fileCatalog
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	var c Catalog
	c.Sellers = fc.Sellers
	for _, p := range fc.Products {
		c.Products = append(c.Products, domain.Product{ID: p.ID, SellerID: p.SellerID, Name: p.Name})
	}
	seen := make(map[int64]struct{}, len(fc.Reviews))
	for _, r := range fc.Reviews {
		if _, dup := seen[r.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate review id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Rating < 1 || r.Rating > 5 {
			return Catalog{}, fmt.Errorf("review %d: rating %d out of range", r.ID, r.Rating)
		}
		cl := domain.Classification(r.Classification)
		if !cl.Known() {
			return Catalog{}, fmt.Errorf("review %d: unknown classification %q", r.ID, r.Classification)
		}
		c.Reviews = append(c.Reviews, domain.Review{
			ID:             r.ID,
			ProductID:      r.ProductID,
			Reviewer:       r.Reviewer,
			Rating:         r.Rating,
			Title:          r.Title,
			Content:        r.Content,
			Date:           r.Date,
			Verified:       r.Verified,
			Helpful:        r.Helpful,
			Classification: cl,
			Flags:          domain.DecodeFlags(cl, r.Flags),
		})
	}
	return c, nil
}
