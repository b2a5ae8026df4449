package service

import (
	"fmt"
	"strings"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

// Risk dimension calculators. Each maps its evidence to a common 1-3
// scale (1 = low risk, 3 = high risk) so the overall verdict is a plain
// average. Averaging is intentional: a dimension pinned at 3 keeps the
// overall score out of the "low" band no matter how good the others are.

// TextRisk grows with the red flag count and the share of high-severity
// flags. Zero flags is exactly 1.0.
func TextRisk(flags []model.RedFlag) float64 {
	if len(flags) == 0 {
		return 1.0
	}
	high := 0
	for _, f := range flags {
		if f.Severity == model.SeverityHigh {
			high++
		}
	}
	highShare := float64(high) / float64(len(flags))
	return clampRisk(1.0 + 0.35*float64(len(flags)) + 1.0*highShare)
}

// ImageRisk maps the 0-10 photo quality score to risk. Quality 0 (no or
// unusable photos) is maximum risk: absence of evidence is itself a flag.
func ImageRisk(qualityScore float64) float64 {
	switch {
	case qualityScore >= 7:
		return 1.0
	case qualityScore >= 4:
		return 2.0
	default:
		return 3.0
	}
}

// StudentRisk maps the weighted negative comment ratio to risk
func StudentRisk(negativeRatio float64) float64 {
	switch {
	case negativeRatio < 0.3:
		return 1.0
	case negativeRatio < 0.6:
		return 2.0
	default:
		return 3.0
	}
}

// RiskLabel maps the averaged dimension score to the verdict label.
// Boundary values take the lower-risk label.
func RiskLabel(avgRisk float64) model.RiskLevel {
	switch {
	case avgRisk <= 1.5:
		return model.RiskLow
	case avgRisk <= 2.5:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// BuildAssessment combines the three analysis branches into the overall
// verdict. Notes carry annotations about degraded branches.
func BuildAssessment(text *model.TextAnalysis, image *model.ImageAnalysis, reviews *model.StudentReviews, notes []string) model.OverallAssessment {
	textRisk := TextRisk(text.RedFlags)
	imageRisk := ImageRisk(image.QualityScore)
	studentRisk := StudentRisk(reviews.NegativeRatio)

	avgRisk := (textRisk + imageRisk + studentRisk) / 3
	level := RiskLabel(avgRisk)

	return model.OverallAssessment{
		RiskLevel:       level,
		TextRisk:        textRisk,
		ImageRisk:       imageRisk,
		StudentRisk:     studentRisk,
		RedFlagCount:    len(text.RedFlags),
		PhotoIssueCount: len(image.PhotoIssues),
		StudentScore:    reviews.OverallScore,
		Summary:         buildSummary(textRisk, imageRisk, studentRisk, len(text.RedFlags)),
		Recommendation:  recommendationFor(level),
		Notes:           notes,
	}
}

func recommendationFor(level model.RiskLevel) string {
	switch level {
	case model.RiskLow:
		return "This listing looks relatively safe. Still ask the suggested questions!"
	case model.RiskMedium:
		return "Proceed with caution. Make sure to ask all the suggested questions and schedule a tour."
	default:
		return "Major red flags detected. Consider other options or investigate thoroughly before proceeding."
	}
}

func buildSummary(textRisk, imageRisk, studentRisk float64, redFlagCount int) string {
	var concerns []string

	if textRisk >= 3 {
		concerns = append(concerns, "listing description has serious issues")
	} else if textRisk >= 2 {
		concerns = append(concerns, "listing description raises some concerns")
	}

	if imageRisk >= 3 {
		concerns = append(concerns, "photos are misleading or poor quality")
	} else if imageRisk >= 2 {
		concerns = append(concerns, "photo quality could be better")
	}

	if studentRisk >= 3 {
		concerns = append(concerns, "student reviews are largely negative")
	} else if studentRisk >= 2 {
		concerns = append(concerns, "student reviews are mixed")
	}

	if len(concerns) == 0 {
		return "This listing looks relatively solid. No major red flags detected."
	}

	joined := strings.Join(concerns, ", ")
	return fmt.Sprintf("Found %d red flag(s). %s.", redFlagCount, strings.ToUpper(joined[:1])+joined[1:])
}

func clampRisk(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 3 {
		return 3
	}
	return v
}
