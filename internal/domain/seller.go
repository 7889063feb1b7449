package domain

type Seller struct {
	ID              int64            `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	Location        string           `json:"location" yaml:"location"`
	Rating          float64          `json:"rating" yaml:"rating"` // 0..5, halves allowed
	PositivePercent int              `json:"positive_percent" yaml:"positive_percent"`
	RatingCount     int              `json:"rating_count" yaml:"rating_count"`
	Description     string           `json:"description" yaml:"description"`
	Verified        bool             `json:"verified" yaml:"verified"`
	Shipping        Shipping         `json:"shipping" yaml:"shipping"`
	Feedback        []FeedbackWindow `json:"feedback" yaml:"feedback"`
	RecentFeedback  []FeedbackEntry  `json:"recent_feedback" yaml:"recent_feedback"`
	Trust           TrustProfile     `json:"trust" yaml:"trust"`
}

type Shipping struct {
	Window   string               `json:"window" yaml:"window"`
	Channels []FulfillmentChannel `json:"channels" yaml:"channels"`
}

// FulfillmentChannel cells are display text ("1,000+", "No shipments").
type FulfillmentChannel struct {
	Name          string `json:"name" yaml:"name"`
	Orders        string `json:"orders" yaml:"orders"`
	ShippedOnTime string `json:"shipped_on_time" yaml:"shipped_on_time"`
}

// FeedbackWindow holds the positive/neutral/negative split for one period.
type FeedbackWindow struct {
	Window   string `json:"window" yaml:"window"`
	Positive int    `json:"positive" yaml:"positive"`
	Neutral  int    `json:"neutral" yaml:"neutral"`
	Negative int    `json:"negative" yaml:"negative"`
}

type FeedbackEntry struct {
	Rating int    `json:"rating" yaml:"rating"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Date   string `json:"date" yaml:"date"`
	Note   string `json:"note,omitempty" yaml:"note,omitempty"`
}

// TrustProfile keeps the score and the checks as independent values; the
// score is not derived from the checks.
type TrustProfile struct {
	Score   int            `json:"score" yaml:"score"`
	Checks  []QualityFlag  `json:"checks" yaml:"checks"`
	Metrics QualityMetrics `json:"metrics" yaml:"metrics"`
}

type CheckStatus string

const (
	CheckPass    CheckStatus = "pass"
	CheckWarning CheckStatus = "warning"
	CheckFail    CheckStatus = "fail"
)

type QualityFlag struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"` // threshold predicate as text
	Status      CheckStatus `json:"status" yaml:"status"`
	Value       float64     `json:"value" yaml:"value"`         // 0..1
	Threshold   float64     `json:"threshold" yaml:"threshold"` // 0..1
	Icon        string      `json:"icon" yaml:"icon"`
}

type QualityMetrics struct {
	ReturnRate    float64 `json:"return_rate" yaml:"return_rate"`
	AvgReturnDays float64 `json:"avg_return_days" yaml:"avg_return_days"`
	QualityTrend  string  `json:"quality_trend" yaml:"quality_trend"`
}
