package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

// AnalyzeRequest is one inbound analysis job
type AnalyzeRequest struct {
	ListingText string
	Address     string
	University  string
	Images      []model.ImageAttachment
}

// AnalyzeService orchestrates one analysis request: the three evidence
// branches run concurrently, join, and feed the finding tagger, the
// question pipeline, and the overall assessment. Everything it builds
// is scoped to the request and discarded with the response.
type AnalyzeService struct {
	text      *TextAnalyzer
	images    *ImageAnalyzer
	students  *StudentService
	questions *QuestionService
	logger    *zap.Logger
}

// NewAnalyzeService creates the analysis orchestrator
func NewAnalyzeService(text *TextAnalyzer, images *ImageAnalyzer, students *StudentService, questions *QuestionService, logger *zap.Logger) *AnalyzeService {
	return &AnalyzeService{
		text:      text,
		images:    images,
		students:  students,
		questions: questions,
		logger:    logger,
	}
}

// Analyze runs the full pipeline for one listing. Only a text-analysis
// failure aborts; the image and student branches degrade gracefully and
// annotate the assessment notes instead.
func (s *AnalyzeService) Analyze(ctx context.Context, req AnalyzeRequest) (*model.AnalysisResult, error) {
	requestID := uuid.New().String()
	logger := s.logger.With(zap.String("requestId", requestID))
	logger.Info("analysis started",
		zap.String("university", req.University),
		zap.Int("images", len(req.Images)))

	var (
		textAnalysis  *model.TextAnalysis
		imageAnalysis *model.ImageAnalysis
		reviews       *model.StudentReviews
		imageNote     string
		studentNote   string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		textAnalysis, err = s.text.AnalyzeListing(gctx, req.ListingText, req.Address)
		return err
	})

	g.Go(func() error {
		var degraded bool
		imageAnalysis, degraded = s.images.AnalyzePhotos(gctx, req.Images)
		if degraded {
			imageNote = "Photo analysis was unavailable; image risk is based on a neutral default."
		}
		return nil
	})

	g.Go(func() error {
		var err error
		reviews, err = s.students.StudentInsights(gctx, req.University, 0)
		if err != nil {
			logger.Warn("student pipeline failed", zap.Error(err))
			reviews = &model.StudentReviews{
				Comments: []model.Comment{},
				Source:   "mock_reddit",
			}
			reviews.OverallScore = 3.0
			studentNote = "Community reviews were unavailable; student score defaults to neutral."
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	findings := TagFindings(textAnalysis, imageAnalysis)
	questions := s.questions.Generate(ctx, findings, req.ListingText)

	var notes []string
	if imageNote != "" {
		notes = append(notes, imageNote)
	}
	if studentNote != "" {
		notes = append(notes, studentNote)
	}

	result := &model.AnalysisResult{
		RequestID:         requestID,
		TextAnalysis:      *textAnalysis,
		ImageAnalysis:     *imageAnalysis,
		StudentReviews:    *reviews,
		Findings:          findings,
		Questions:         questions,
		OverallAssessment: BuildAssessment(textAnalysis, imageAnalysis, reviews, notes),
	}

	logger.Info("analysis complete",
		zap.String("riskLevel", string(result.OverallAssessment.RiskLevel)),
		zap.Int("findings", len(findings)),
		zap.Int("questions", len(questions)))
	return result, nil
}
