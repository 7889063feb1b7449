package domain

import (
	"encoding/json"
	"time"
)

type Classification string

const (
	ClassReal       Classification = "real"
	ClassBotted     Classification = "botted"
	ClassSuspicious Classification = "suspicious"
)

// Classifications lists the known labels in display order.
var Classifications = []Classification{ClassReal, ClassBotted, ClassSuspicious}

func (c Classification) Known() bool {
	switch c {
	case ClassReal, ClassBotted, ClassSuspicious:
		return true
	}
	return false
}

const DateLayout = "2006-01-02"

type Review struct {
	ID             int64          `json:"id"`
	ProductID      int64          `json:"product_id"`
	Reviewer       string         `json:"reviewer"`
	Rating         int            `json:"rating"` // 1..5
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Date           string         `json:"date"` // YYYY-MM-DD
	Verified       bool           `json:"verified"`
	Helpful        int            `json:"helpful"`
	Classification Classification `json:"classification"`
	Flags          Flags          `json:"flags"`
}

// Day parses Date; the zero time is returned for malformed dates.
func (r Review) Day() time.Time {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UnmarshalJSON picks the flag variant from the classification tag.
func (r *Review) UnmarshalJSON(b []byte) error {
	type plain Review
	var aux struct {
		plain
		Flags map[string]any `json:"flags"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = Review(aux.plain)
	r.Flags = DecodeFlags(r.Classification, aux.Flags)
	return nil
}

type Product struct {
	ID       int64  `json:"id"`
	SellerID int64  `json:"seller_id"`
	Name     string `json:"name"`
}
