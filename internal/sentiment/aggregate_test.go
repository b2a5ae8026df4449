package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

func comment(s model.Sentiment, weight float64) model.Comment {
	return model.Comment{Sentiment: s, RecencyWeight: weight}
}

func TestStudentScoreMostlyNegative(t *testing.T) {
	comments := []model.Comment{
		comment(model.SentimentNegative, 1.5),
		comment(model.SentimentNegative, 1.2),
		comment(model.SentimentPositive, 1.0),
	}
	tally := Tally(comments)
	assert.Greater(t, tally.NegativeRatio(), 0.5)
	assert.Equal(t, 2.0, tally.StudentScore())
}

func TestStudentScoreMostlyPositive(t *testing.T) {
	comments := []model.Comment{
		comment(model.SentimentPositive, 1.5),
		comment(model.SentimentPositive, 1.5),
		comment(model.SentimentNegative, 0.7),
	}
	tally := Tally(comments)
	assert.Greater(t, tally.PositiveRatio(), 0.5)
	assert.Equal(t, 4.5, tally.StudentScore())
}

func TestStudentScoreBalancedInterpolates(t *testing.T) {
	// Equal weighted shares on both sides: r_pos - r_neg = 0, score 3.0.
	comments := []model.Comment{
		comment(model.SentimentPositive, 1.0),
		comment(model.SentimentNegative, 1.0),
		comment(model.SentimentNeutral, 2.0),
	}
	assert.InDelta(t, 3.0, Tally(comments).StudentScore(), 1e-9)
}

func TestStudentScoreSlightlyPositive(t *testing.T) {
	// r_pos = 0.4, r_neg = 0.2 -> 3.0 + 1.5*0.2 = 3.3
	comments := []model.Comment{
		comment(model.SentimentPositive, 2.0),
		comment(model.SentimentNegative, 1.0),
		comment(model.SentimentNeutral, 2.0),
	}
	assert.InDelta(t, 3.3, Tally(comments).StudentScore(), 1e-9)
}

func TestStudentScoreEmptyDefaultsNeutral(t *testing.T) {
	tally := Tally(nil)
	assert.Equal(t, 3.0, tally.StudentScore())
	assert.Equal(t, 0.0, tally.PositiveRatio())
	assert.Equal(t, 0.0, tally.NegativeRatio())
}

func TestStudentScoreWithinBounds(t *testing.T) {
	cases := [][]model.Comment{
		{comment(model.SentimentNegative, 5.0)},
		{comment(model.SentimentPositive, 5.0)},
		{comment(model.SentimentNeutral, 1.0)},
		{
			comment(model.SentimentPositive, 0.7),
			comment(model.SentimentNegative, 0.7),
			comment(model.SentimentNegative, 0.7),
		},
	}
	for _, comments := range cases {
		score := Tally(comments).StudentScore()
		assert.GreaterOrEqual(t, score, 1.0)
		assert.LessOrEqual(t, score, 5.0)
	}
}

func TestTallyCountsNeutralInTotalOnly(t *testing.T) {
	comments := []model.Comment{
		comment(model.SentimentNeutral, 1.2),
		comment(model.SentimentPositive, 1.0),
	}
	tally := Tally(comments)
	assert.Equal(t, 1, tally.Neutral)
	assert.InDelta(t, 2.2, tally.TotalWeight, 1e-9)
	assert.InDelta(t, 1.0, tally.WeightedPositive, 1e-9)
	assert.Equal(t, 0.0, tally.WeightedNegative)
}
