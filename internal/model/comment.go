package model

// Sentiment is the classification of a single community comment
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ClassificationTier records which strategy produced a comment's sentiment label
type ClassificationTier string

const (
	// TierRule means the rule score was confident enough on its own
	TierRule ClassificationTier = "rule"
	// TierLLM means the external classifier was consulted for a borderline case
	TierLLM ClassificationTier = "llm"
	// TierFallback means the external classifier failed and the rule result was used
	TierFallback ClassificationTier = "fallback"
)

// UserType describes who posted a community comment
type UserType string

const (
	UserTypeUndergraduate UserType = "undergraduate"
	UserTypeGraduate      UserType = "graduate"
	UserTypeUnspecified   UserType = "unspecified"
)

// Comment is one community remark about an apartment or area.
// Comments are created, classified, and discarded within a single
// analysis request.
type Comment struct {
	ID            string             `json:"id"`
	Text          string             `json:"text"`
	Subreddit     string             `json:"subreddit"`
	Category      string             `json:"category"`
	UserType      UserType           `json:"userType"`
	Score         int                `json:"score"` // community upvotes, may be negative
	TimePosted    string             `json:"timePosted"`
	AgeMonths     int                `json:"ageMonths"`
	Sentiment     Sentiment          `json:"sentiment"`
	Tier          ClassificationTier `json:"tier"`
	RecencyWeight float64            `json:"recencyWeight"`
}

// SentimentBreakdown counts comments per sentiment class
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// StudentReviews is the aggregated community perspective for one request
type StudentReviews struct {
	Subreddit     string             `json:"subreddit"`
	Comments      []Comment          `json:"comments"`
	TotalMentions int                `json:"totalMentions"`
	OverallScore  float64            `json:"overallScore"` // 1.0 - 5.0
	Breakdown     SentimentBreakdown `json:"sentimentBreakdown"`
	PositiveRatio float64            `json:"positiveRatio"` // weighted
	NegativeRatio float64            `json:"negativeRatio"` // weighted
	Source        string             `json:"source"`
	Note          string             `json:"note,omitempty"`
}
