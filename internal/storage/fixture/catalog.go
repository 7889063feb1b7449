package fixture

import "seller_lens/internal/domain"

const (
	SellerID  int64 = 1
	ProductID int64 = 1
)

type Catalog = domain.Catalog

// Default returns the compiled-in catalogue: one seller, one product and the
// eight-review sample. Every call returns fresh slices.
func Default() Catalog {
	return Catalog{
		Sellers:  []domain.Seller{leclerc()},
		Products: []domain.Product{{ID: ProductID, SellerID: SellerID, Name: "Leclerc Fan"}},
		Reviews:  sampleReviews(),
	}
}

func leclerc() domain.Seller {
	return domain.Seller{
		ID:              SellerID,
		Name:            "Leclerc Technologies Private Limited",
		Location:        "Monaco",
		Rating:          3.5,
		PositivePercent: 65,
		RatingCount:     108,
		Description: "Leclerc Technologies Private Limited is committed to providing each customer " +
			"with the highest standard of customer service.",
		Verified: true,
		Shipping: domain.Shipping{
			Window: "30 days",
			Channels: []domain.FulfillmentChannel{
				{Name: "Fulfilled by seller", Orders: "No orders", ShippedOnTime: "No shipments"},
				{Name: "Fulfilled by Amazon", Orders: "1,000+", ShippedOnTime: "Same as Amazon Prime"},
			},
		},
		Feedback: []domain.FeedbackWindow{
			{Window: "30 days", Positive: 56, Neutral: 0, Negative: 44},
			{Window: "90 days", Positive: 59, Neutral: 2, Negative: 39},
			{Window: "12 months", Positive: 65, Neutral: 3, Negative: 32},
			{Window: "Lifetime", Positive: 87, Neutral: 2, Negative: 12},
		},
		RecentFeedback: []domain.FeedbackEntry{
			{Rating: 5, Title: "Good", Author: "Mannu goswami", Date: "2025-06-07"},
			{
				Rating: 1,
				Title:  "It has not reached us yet.... Long been waiting for fan. You know it is basic need.",
				Author: "Shilpa",
				Date:   "2025-06-06",
				Note: "Message from Amazon: This item was fulfilled by Amazon, and we take responsibility " +
					"for this fulfillment experience.",
			},
		},
		Trust: domain.TrustProfile{
			Score: 97,
			Checks: []domain.QualityFlag{
				{Name: "Manufacturing Defect Risk", Description: "return_rate > 0.15 & trend > 0.1", Status: domain.CheckPass, Value: 0.08, Threshold: 0.15, Icon: "package"},
				{Name: "Counterfeit Suspected", Description: "return_rate > 0.2 & orders > 20", Status: domain.CheckPass, Value: 0.08, Threshold: 0.2, Icon: "shield"},
				{Name: "Immediate Return Pattern", Description: "avg_days < 3 & return_rate > 0.1", Status: domain.CheckWarning, Value: 0.12, Threshold: 0.1, Icon: "rotate-ccw"},
				{Name: "Deteriorating Quality", Description: "trend > 0.2", Status: domain.CheckPass, Value: 0.05, Threshold: 0.2, Icon: "trending-up"},
				{Name: "Chronic Quality Issues", Description: "seller_return_rate > 0.25", Status: domain.CheckPass, Value: 0.18, Threshold: 0.25, Icon: "alert-triangle"},
				{Name: "Current Seller Issue", Description: "recent_ratio > 0.3 & diff > 0.1", Status: domain.CheckPass, Value: 0.15, Threshold: 0.3, Icon: "info"},
				{Name: "New Seller Risk", Description: "products <= 5 & return_rate > 0.2", Status: domain.CheckPass, Value: 0.08, Threshold: 0.2, Icon: "check-circle"},
			},
			Metrics: domain.QualityMetrics{ReturnRate: 0.082, AvgReturnDays: 12.5, QualityTrend: "Improving"},
		},
	}
}

func sampleReviews() []domain.Review {
	return []domain.Review{
		{
			ID: 1, ProductID: ProductID, Reviewer: "Sarah Johnson", Rating: 5,
			Title: "Absolutely love this ceiling fan!",
			Content: "I purchased this Leclerc fan 3 months ago and it has exceeded my expectations. The remote control " +
				"works perfectly, the LED lighting is bright and adjustable, and the power consumption is remarkably low. " +
				"Installation was straightforward with clear instructions. The build quality feels premium and it operates " +
				"silently even at high speeds. Highly recommend for anyone looking for an energy-efficient ceiling fan.",
			Date: "2025-01-15", Verified: true, Helpful: 23,
			Classification: domain.ClassReal,
			Flags: domain.RealFlags{
				DetailedContent:  true,
				NaturalLanguage:  true,
				SpecificDetails:  true,
				VerifiedPurchase: true,
			},
		},
		{
			ID: 2, ProductID: ProductID, Reviewer: "RajeshK123", Rating: 5,
			Title:   "Good product",
			Content: "Good product. Fast delivery. Good quality. Recommended.",
			Date:    "2025-01-10", Verified: true, Helpful: 2,
			Classification: domain.ClassBotted,
			Flags: domain.BottedFlags{
				RepeatedKeywords:   []string{"good", "good", "good"},
				ShortContent:       true,
				GenericLanguage:    true,
				SuspiciousUsername: true,
				LowEngagement:      true,
			},
		},
		{
			ID: 3, ProductID: ProductID, Reviewer: "Mike Chen", Rating: 1,
			Title: "Terrible experience",
			Content: "This fan is absolutely amazing! The quality is outstanding and I love everything about it. " +
				"The remote works great and the LED lights are perfect. Installation was super easy and it looks " +
				"fantastic in my room. Definitely buying more!",
			Date: "2025-01-08", Verified: false, Helpful: 0,
			Classification: domain.ClassSuspicious,
			Flags: domain.SuspiciousFlags{
				StarReviewMismatch:   true,
				UnverifiedPurchase:   true,
				ContradictoryContent: true,
			},
		},
		{
			ID: 4, ProductID: ProductID, Reviewer: "ProductTester2024", Rating: 5,
			Title: "Excellent fan",
			Content: "Excellent fan with great features. The BLDC motor is very efficient and the remote control " +
				"functionality is smooth. LED lights provide good illumination. Overall satisfied with the purchase.",
			Date: "2025-01-10", Verified: true, Helpful: 1,
			Classification: domain.ClassSuspicious,
			Flags: domain.SuspiciousFlags{
				SameTimeCluster:   true,
				TemplatedLanguage: true,
			},
		},
		{
			ID: 5, ProductID: ProductID, Reviewer: "Jennifer Williams", Rating: 4,
			Title: "Good fan but minor issues",
			Content: "The fan works well overall and the energy efficiency is as advertised. However, I noticed the " +
				"remote occasionally doesn't respond on the first press, and the LED light could be a bit brighter. " +
				"The installation manual could be clearer about the wiring. Despite these minor issues, it's a decent " +
				"purchase for the price point.",
			Date: "2024-12-28", Verified: true, Helpful: 18,
			Classification: domain.ClassReal,
			Flags: domain.RealFlags{
				BalancedReview:       true,
				ConstructiveFeedback: true,
				NaturalLanguage:      true,
				VerifiedPurchase:     true,
			},
		},
		{
			ID: 6, ProductID: ProductID, Reviewer: "fan_lover_2024", Rating: 5,
			Title:   "Best fan ever",
			Content: "Best fan ever. Amazing quality. Fast shipping. Great seller. Highly recommended. Will buy again.",
			Date:    "2025-01-10", Verified: true, Helpful: 0,
			Classification: domain.ClassBotted,
			Flags: domain.BottedFlags{
				RepeatedKeywords:   []string{"best", "great", "amazing"},
				ShortSentences:     true,
				GenericPhrases:     true,
				SuspiciousUsername: true,
			},
		},
		{
			ID: 7, ProductID: ProductID, Reviewer: "David Thompson", Rating: 3,
			Title: "Average performance",
			Content: "The fan is okay but not exceptional. The remote works fine most of the time, though there's " +
				"occasional lag. The LED lights are adequate but not as bright as I expected. Installation took longer " +
				"than anticipated due to unclear instructions. It does the job but there are probably better options " +
				"available at this price range.",
			Date: "2024-11-15", Verified: true, Helpful: 12,
			Classification: domain.ClassReal,
			Flags: domain.RealFlags{
				HonestCriticism:  true,
				VerifiedPurchase: true,
			},
		},
		{
			ID: 8, ProductID: ProductID, Reviewer: "QuickBuyer99", Rating: 5,
			Title: "Perfect",
			Content: "Perfect product perfect delivery perfect everything thank you so much will definitely recommend " +
				"to everyone amazing experience",
			Date: "2025-01-11", Verified: false, Helpful: 0,
			Classification: domain.ClassBotted,
			Flags: domain.BottedFlags{
				RepeatedKeywords:    []string{"perfect", "perfect", "perfect"},
				RunOnSentence:       true,
				ExcessivePositivity: true,
			},
		},
	}
}
