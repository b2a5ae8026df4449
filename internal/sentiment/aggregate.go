package sentiment

import "github.com/mukujayCS/Apartment-Hunter/internal/model"

// Totals holds the weighted sentiment sums for one request's comment set.
// Neutral comments count toward TotalWeight but not toward either side.
type Totals struct {
	WeightedPositive float64
	WeightedNegative float64
	TotalWeight      float64
	Positive         int
	Negative         int
	Neutral          int
}

// Tally computes weighted totals over labelled, weighted comments.
func Tally(comments []model.Comment) Totals {
	var t Totals
	for _, c := range comments {
		t.TotalWeight += c.RecencyWeight
		switch c.Sentiment {
		case model.SentimentPositive:
			t.WeightedPositive += c.RecencyWeight
			t.Positive++
		case model.SentimentNegative:
			t.WeightedNegative += c.RecencyWeight
			t.Negative++
		default:
			t.Neutral++
		}
	}
	return t
}

// PositiveRatio is the weighted share of positive comments (0 when empty).
func (t Totals) PositiveRatio() float64 {
	if t.TotalWeight == 0 {
		return 0
	}
	return t.WeightedPositive / t.TotalWeight
}

// NegativeRatio is the weighted share of negative comments (0 when empty).
func (t Totals) NegativeRatio() float64 {
	if t.TotalWeight == 0 {
		return 0
	}
	return t.WeightedNegative / t.TotalWeight
}

// StudentScore maps the weighted sentiment ratios to a 1-5 star score.
// Dominant negative (>0.5) pins the score at 2.0 and dominant positive
// at 4.5; the middle region interpolates continuously between them so
// the thresholds don't produce jumps. An empty comment set scores a
// neutral 3.0.
func (t Totals) StudentScore() float64 {
	if t.TotalWeight == 0 {
		return 3.0
	}

	rPos := t.PositiveRatio()
	rNeg := t.NegativeRatio()

	switch {
	case rNeg > 0.5:
		return 2.0
	case rPos > 0.5:
		return 4.5
	}

	score := 3.0 + 1.5*clamp(rPos-rNeg, -1, 1)
	return clamp(score, 1.0, 5.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
