package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

func TestTextRisk(t *testing.T) {
	assert.Equal(t, 1.0, TextRisk(nil))
	assert.Equal(t, 1.0, TextRisk([]model.RedFlag{}))

	oneLow := []model.RedFlag{{Severity: model.SeverityLow}}
	assert.InDelta(t, 1.35, TextRisk(oneLow), 1e-9)

	oneHigh := []model.RedFlag{{Severity: model.SeverityHigh}}
	assert.InDelta(t, 2.35, TextRisk(oneHigh), 1e-9)

	// Many high flags saturate at the ceiling
	var manyHigh []model.RedFlag
	for i := 0; i < 10; i++ {
		manyHigh = append(manyHigh, model.RedFlag{Severity: model.SeverityHigh})
	}
	assert.Equal(t, 3.0, TextRisk(manyHigh))

	// More flags never lowers risk
	prev := 1.0
	flags := []model.RedFlag{}
	for i := 0; i < 6; i++ {
		flags = append(flags, model.RedFlag{Severity: model.SeverityMedium})
		risk := TextRisk(flags)
		assert.GreaterOrEqual(t, risk, prev)
		prev = risk
	}
}

func TestImageRisk(t *testing.T) {
	assert.Equal(t, 1.0, ImageRisk(10))
	assert.Equal(t, 1.0, ImageRisk(7))
	assert.Equal(t, 2.0, ImageRisk(6.9))
	assert.Equal(t, 2.0, ImageRisk(4))
	assert.Equal(t, 3.0, ImageRisk(3.9))
	assert.Equal(t, 3.0, ImageRisk(0), "no usable photos is maximum risk")
}

func TestStudentRisk(t *testing.T) {
	assert.Equal(t, 1.0, StudentRisk(0))
	assert.Equal(t, 1.0, StudentRisk(0.29))
	assert.Equal(t, 2.0, StudentRisk(0.3))
	assert.Equal(t, 2.0, StudentRisk(0.59))
	assert.Equal(t, 3.0, StudentRisk(0.6))
	assert.Equal(t, 3.0, StudentRisk(1))
}

func TestRiskLabelBoundaries(t *testing.T) {
	assert.Equal(t, model.RiskLow, RiskLabel(1.0))
	assert.Equal(t, model.RiskLow, RiskLabel(1.5))
	assert.Equal(t, model.RiskMedium, RiskLabel(1.51))
	assert.Equal(t, model.RiskMedium, RiskLabel(2.5))
	assert.Equal(t, model.RiskHigh, RiskLabel(2.51))
	assert.Equal(t, model.RiskHigh, RiskLabel(3.0))
}

func TestBuildAssessmentAveragesDimensions(t *testing.T) {
	// text 3.0 (many high flags), image 2.0 (quality 5), student 1.0 (ratio 0.1)
	text := &model.TextAnalysis{
		RedFlags: []model.RedFlag{
			{Severity: model.SeverityHigh}, {Severity: model.SeverityHigh},
			{Severity: model.SeverityHigh}, {Severity: model.SeverityHigh},
		},
	}
	image := &model.ImageAnalysis{
		QualityScore: 5,
		PhotoIssues:  []model.PhotoIssue{{Severity: model.SeverityMedium}},
	}
	reviews := &model.StudentReviews{NegativeRatio: 0.1, OverallScore: 4.2}

	assessment := BuildAssessment(text, image, reviews, []string{"a note"})

	assert.Equal(t, 3.0, assessment.TextRisk)
	assert.Equal(t, 2.0, assessment.ImageRisk)
	assert.Equal(t, 1.0, assessment.StudentRisk)
	assert.Equal(t, model.RiskMedium, assessment.RiskLevel)
	assert.Equal(t, 4, assessment.RedFlagCount)
	assert.Equal(t, 1, assessment.PhotoIssueCount)
	assert.Equal(t, 4.2, assessment.StudentScore)
	assert.Equal(t, []string{"a note"}, assessment.Notes)
	assert.Contains(t, assessment.Summary, "4 red flag(s)")
	assert.Contains(t, assessment.Recommendation, "caution")
}

func TestBuildAssessmentCleanListing(t *testing.T) {
	text := &model.TextAnalysis{}
	image := &model.ImageAnalysis{QualityScore: 8}
	reviews := &model.StudentReviews{NegativeRatio: 0.1, OverallScore: 4.5}

	assessment := BuildAssessment(text, image, reviews, nil)

	assert.Equal(t, model.RiskLow, assessment.RiskLevel)
	assert.Equal(t, "This listing looks relatively solid. No major red flags detected.", assessment.Summary)
	assert.Empty(t, assessment.Notes)
}

func TestBuildAssessmentHighRisk(t *testing.T) {
	var flags []model.RedFlag
	for i := 0; i < 8; i++ {
		flags = append(flags, model.RedFlag{Severity: model.SeverityHigh})
	}
	text := &model.TextAnalysis{RedFlags: flags}
	image := &model.ImageAnalysis{QualityScore: 2}
	reviews := &model.StudentReviews{NegativeRatio: 0.8}

	assessment := BuildAssessment(text, image, reviews, nil)

	assert.Equal(t, model.RiskHigh, assessment.RiskLevel)
	assert.Contains(t, assessment.Recommendation, "Major red flags")
}
