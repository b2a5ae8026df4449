package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mukujayCS/Apartment-Hunter/internal/cache"
	"github.com/mukujayCS/Apartment-Hunter/internal/model"
	"github.com/mukujayCS/Apartment-Hunter/internal/repository"
	"github.com/mukujayCS/Apartment-Hunter/internal/sentiment"
)

// tier1Threshold is the rule-score confidence at which the external
// classifier is skipped entirely.
const tier1Threshold = 3.0

// classifyConcurrency bounds parallel comment classification; only
// Tier 2 escalations actually hit the network.
const classifyConcurrency = 4

// defaultCommentLimit caps how many community comments one analysis pulls in
const defaultCommentLimit = 10

// StudentService runs the community sentiment pipeline: fetch comments
// for a university's forum, classify each one through the tiered
// rule/LLM router, apply recency weights, and aggregate a student score.
type StudentService struct {
	repo   repository.CommentRepo
	cache  cache.ReviewCache // optional, may be nil
	llm    LLM
	model  string
	logger *zap.Logger
	now    func() time.Time
}

// NewStudentService creates a new student context service
func NewStudentService(repo repository.CommentRepo, reviewCache cache.ReviewCache, llm LLM, modelName string, logger *zap.Logger) *StudentService {
	return &StudentService{
		repo:   repo,
		cache:  reviewCache,
		llm:    llm,
		model:  modelName,
		logger: logger,
		now:    time.Now,
	}
}

// StudentInsights fetches and classifies community comments for the
// given university and aggregates them into a StudentReviews document.
// All comment IDs are freshly stamped and scoped to this request.
func (s *StudentService) StudentInsights(ctx context.Context, university string, limit int) (*model.StudentReviews, error) {
	if limit <= 0 {
		limit = defaultCommentLimit
	}

	subreddit, err := s.repo.SubredditFor(ctx, university)
	if err != nil {
		return nil, fmt.Errorf("resolve forum for %q: %w", university, err)
	}

	comments, cached := s.fromCache(ctx, subreddit)
	if !cached {
		comments, err = s.classifyForum(ctx, subreddit, limit)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, subreddit, comments)
	}
	if len(comments) > limit {
		comments = comments[:limit]
	}

	// Request-scoped IDs, even on cache hits
	for i := range comments {
		comments[i].ID = uuid.New().String()
	}

	tally := sentiment.Tally(comments)
	return &model.StudentReviews{
		Subreddit:     subreddit,
		Comments:      comments,
		TotalMentions: len(comments),
		OverallScore:  tally.StudentScore(),
		Breakdown: model.SentimentBreakdown{
			Positive: tally.Positive,
			Negative: tally.Negative,
			Neutral:  tally.Neutral,
		},
		PositiveRatio: tally.PositiveRatio(),
		NegativeRatio: tally.NegativeRatio(),
		Source:        "mock_reddit",
		Note:          "Simulated community data; Reddit API access requires pre-approval.",
	}, nil
}

func (s *StudentService) classifyForum(ctx context.Context, subreddit string, limit int) ([]model.Comment, error) {
	raw, err := s.repo.DiverseComments(ctx, subreddit, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", subreddit, err)
	}

	comments := make([]model.Comment, len(raw))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(classifyConcurrency)
	for i, rc := range raw {
		i, rc := i, rc
		g.Go(func() error {
			comments[i] = s.buildComment(gctx, subreddit, rc)
			return nil
		})
	}
	// Classification goroutines never return errors; Tier 2 failures
	// fall back locally.
	_ = g.Wait()
	return comments, nil
}

func (s *StudentService) buildComment(ctx context.Context, subreddit string, rc repository.StoredComment) model.Comment {
	label, tier := s.classify(ctx, rc.Text)
	age := sentiment.MonthsSince(rc.TimePosted, s.now())

	return model.Comment{
		Text:          rc.Text,
		Subreddit:     subreddit,
		Category:      rc.Category,
		UserType:      normalizeUserType(rc.UserType),
		Score:         rc.Score,
		TimePosted:    rc.TimePosted,
		AgeMonths:     age,
		Sentiment:     label,
		Tier:          tier,
		RecencyWeight: sentiment.Weight(age),
	}
}

// classify routes one comment through the three classification tiers.
// Exactly one label and one tier come out, always.
func (s *StudentService) classify(ctx context.Context, text string) (model.Sentiment, model.ClassificationTier) {
	score := sentiment.Score(text)

	// Tier 1: the rule engine is confident, no external call
	if math.Abs(score) >= tier1Threshold {
		return signLabel(score), model.TierRule
	}

	// Tier 2: borderline case, ask the nuanced classifier
	if s.llm.Enabled() {
		if label, ok := s.classifyLLM(ctx, text); ok {
			return label, model.TierLLM
		}
	}

	// Tier 3: classifier unavailable or misbehaving, rule result decides
	return signLabel(score), model.TierFallback
}

func (s *StudentService) classifyLLM(ctx context.Context, text string) (model.Sentiment, bool) {
	prompt := fmt.Sprintf(`You are analyzing Reddit comments written by college students about apartments.

Classify the sentiment as EXACTLY one of:
positive
neutral
negative

Rules:
- Complaints about noise, walls, neighbors, studying conditions, safety, landlords, or maintenance are NEGATIVE.
- Phrases like "would not recommend", numeric ratings below 5/10, or warnings to others are NEGATIVE.
- Mixed or descriptive comments without clear satisfaction or dissatisfaction are NEUTRAL.
- Praise or recommendations are POSITIVE.
- Do NOT default to neutral if the comment clearly harms quality of life.

Return only ONE word.

Comment:
%s`, text)

	response, err := s.llm.GenerateText(ctx, s.model, prompt)
	if err != nil {
		s.logger.Warn("sentiment classifier call failed", zap.Error(err))
		return "", false
	}

	answer := strings.ToLower(strings.TrimSpace(stripFences(response)))
	answer = strings.Trim(answer, `"'.`)
	first := answer
	if fields := strings.Fields(answer); len(fields) > 0 {
		first = fields[0]
	}

	switch model.Sentiment(first) {
	case model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral:
		return model.Sentiment(first), true
	}
	// Tolerate chatty responses that still contain a clear label
	switch {
	case strings.Contains(answer, "positive"):
		return model.SentimentPositive, true
	case strings.Contains(answer, "negative"):
		return model.SentimentNegative, true
	}

	s.logger.Warn("sentiment classifier returned unexpected label", zap.String("response", truncate(answer, 50)))
	return "", false
}

func (s *StudentService) fromCache(ctx context.Context, subreddit string) ([]model.Comment, bool) {
	if s.cache == nil {
		return nil, false
	}
	comments, err := s.cache.Get(ctx, subreddit)
	if err != nil {
		s.logger.Warn("review cache read failed", zap.String("subreddit", subreddit), zap.Error(err))
		return nil, false
	}
	return comments, comments != nil
}

func (s *StudentService) toCache(ctx context.Context, subreddit string, comments []model.Comment) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, subreddit, comments); err != nil {
		s.logger.Warn("review cache write failed", zap.String("subreddit", subreddit), zap.Error(err))
	}
}

func signLabel(score float64) model.Sentiment {
	switch {
	case score > 0:
		return model.SentimentPositive
	case score < 0:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

func normalizeUserType(ut string) model.UserType {
	switch model.UserType(ut) {
	case model.UserTypeUndergraduate, model.UserTypeGraduate:
		return model.UserType(ut)
	}
	return model.UserTypeUnspecified
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
