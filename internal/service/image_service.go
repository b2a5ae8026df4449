package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

// ImageAnalyzer inspects listing photos for quality issues and
// misleading presentation. Unlike the text analyzer, it never fails the
// request: photos are optional evidence, so errors degrade to a
// low-severity placeholder issue.
type ImageAnalyzer struct {
	llm    LLM
	model  string
	logger *zap.Logger
}

// NewImageAnalyzer creates a new listing photo analyzer
func NewImageAnalyzer(llm LLM, modelName string, logger *zap.Logger) *ImageAnalyzer {
	return &ImageAnalyzer{llm: llm, model: modelName, logger: logger}
}

// AnalyzePhotos analyzes up to five listing photos. The boolean result
// reports whether the analysis degraded due to an analyzer failure.
func (s *ImageAnalyzer) AnalyzePhotos(ctx context.Context, images []model.ImageAttachment) (*model.ImageAnalysis, bool) {
	if len(images) == 0 {
		return &model.ImageAnalysis{
			PhotoIssues:          []model.PhotoIssue{},
			PositiveObservations: []model.PositiveObservation{},
			QualityScore:         0,
			Summary:              "No photos provided",
		}, false
	}

	if !s.llm.Enabled() {
		return s.mockAnalysis(len(images)), false
	}

	response, err := s.llm.GenerateWithImages(ctx, s.model, s.buildPrompt(), images)
	if err != nil {
		s.logger.Warn("image analysis failed", zap.Error(err), zap.Int("photos", len(images)))
		return s.degradedAnalysis(len(images), err), true
	}

	return s.parseResponse(response), false
}

func (s *ImageAnalyzer) buildPrompt() string {
	return `You are analyzing apartment listing photos for college students. Identify visual red flags, quality issues, and assess photo authenticity.

Analyze these listing photos and respond in JSON format:
{
  "photo_issues": [
    {
      "issue": "description of the problem",
      "severity": "low/medium/high",
      "photo_number": 1,
      "explanation": "why this is concerning"
    }
  ],
  "positive_observations": [
    {
      "observation": "what looks good",
      "photo_number": 1
    }
  ],
  "quality_score": 0-10,
  "summary": "Overall assessment of the photos"
}

RED FLAGS TO IDENTIFY:
- Wide-angle lens distortion making spaces look bigger
- Strategic camera angles hiding issues
- Heavy filters or photo editing
- Stock photos or photos from other listings
- Poor lighting hiding damage or dirt
- Missing key areas (bathroom, kitchen, bedroom)
- Photos taken during staging vs actual condition
- Inconsistent photo quality (mix of professional and amateur)
- Clutter or mess visible in background
- Signs of damage (cracks, stains, peeling paint)
- Misleading photos (showing amenities not in unit)
- Too few photos (< 3 photos is suspicious)
- Blurry or low-quality images
- Photos don't match description

POSITIVE SIGNS:
- Well-lit, clear photos
- Multiple angles of each room
- Honest representation of space
- Shows important details (appliances, storage, fixtures)
- Recent photos (can tell by furnishings/style)
- Consistent quality across all photos
- Natural lighting
- Shows actual condition, not staged

Be specific about which photo number has which issue. Quality score: 10 = excellent, honest photos; 0 = major red flags or missing photos.`
}

func (s *ImageAnalyzer) parseResponse(response string) *model.ImageAnalysis {
	var raw struct {
		PhotoIssues []struct {
			Issue       string `json:"issue"`
			Severity    string `json:"severity"`
			PhotoNumber int    `json:"photo_number"`
			Explanation string `json:"explanation"`
		} `json:"photo_issues"`
		PositiveObservations []struct {
			Observation string `json:"observation"`
			PhotoNumber int    `json:"photo_number"`
		} `json:"positive_observations"`
		QualityScore float64 `json:"quality_score"`
		Summary      string  `json:"summary"`
	}

	if err := json.Unmarshal([]byte(stripFences(response)), &raw); err != nil {
		s.logger.Warn("unparseable image analysis response", zap.Error(err))
		summary := response
		if len(summary) > 200 {
			summary = summary[:200] + "..."
		}
		return &model.ImageAnalysis{
			PhotoIssues: []model.PhotoIssue{{
				Issue:       "Unable to parse structured analysis",
				Severity:    model.SeverityLow,
				PhotoNumber: 0,
				Explanation: "Analysis format error",
			}},
			PositiveObservations: []model.PositiveObservation{},
			QualityScore:         5,
			Summary:              summary,
		}
	}

	analysis := &model.ImageAnalysis{
		PhotoIssues:          make([]model.PhotoIssue, 0, len(raw.PhotoIssues)),
		PositiveObservations: make([]model.PositiveObservation, 0, len(raw.PositiveObservations)),
		QualityScore:         clampQuality(raw.QualityScore),
		Summary:              raw.Summary,
	}
	for _, issue := range raw.PhotoIssues {
		analysis.PhotoIssues = append(analysis.PhotoIssues, model.PhotoIssue{
			Issue:       issue.Issue,
			Severity:    model.NormalizeSeverity(issue.Severity),
			PhotoNumber: issue.PhotoNumber,
			Explanation: issue.Explanation,
		})
	}
	for _, obs := range raw.PositiveObservations {
		analysis.PositiveObservations = append(analysis.PositiveObservations, model.PositiveObservation{
			Observation: obs.Observation,
			PhotoNumber: obs.PhotoNumber,
		})
	}
	return analysis
}

func (s *ImageAnalyzer) degradedAnalysis(numImages int, err error) *model.ImageAnalysis {
	msg := err.Error()
	if len(msg) > 100 {
		msg = msg[:100]
	}
	return &model.ImageAnalysis{
		PhotoIssues: []model.PhotoIssue{{
			Issue:       "Image analysis error: " + msg,
			Severity:    model.SeverityLow,
			PhotoNumber: 0,
			Explanation: fmt.Sprintf("%d photo(s) provided but analysis failed.", numImages),
		}},
		PositiveObservations: []model.PositiveObservation{},
		QualityScore:         5,
		Summary:              "Image analysis encountered an error.",
	}
}

func (s *ImageAnalyzer) mockAnalysis(numImages int) *model.ImageAnalysis {
	analysis := &model.ImageAnalysis{
		PhotoIssues:          []model.PhotoIssue{},
		PositiveObservations: []model.PositiveObservation{},
		QualityScore:         6,
		Summary:              fmt.Sprintf("Mock analysis of %d photo(s) (no API key configured).", numImages),
	}
	if numImages < 3 {
		analysis.PhotoIssues = append(analysis.PhotoIssues, model.PhotoIssue{
			Issue:       "Too few photos",
			Severity:    model.SeverityMedium,
			PhotoNumber: 0,
			Explanation: "Fewer than 3 photos makes it hard to judge the actual condition",
		})
		analysis.QualityScore = 4
	}
	return analysis
}

func clampQuality(q float64) float64 {
	if q < 0 {
		return 0
	}
	if q > 10 {
		return 10
	}
	return q
}
