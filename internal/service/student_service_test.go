package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
	"github.com/mukujayCS/Apartment-Hunter/internal/repository"
)

type fakeLLM struct {
	mu        sync.Mutex
	enabled   bool
	textResp  string
	textErr   error
	imageResp string
	imageErr  error
	textCalls int
}

func (f *fakeLLM) Enabled() bool { return f.enabled }

func (f *fakeLLM) GenerateText(ctx context.Context, modelName, prompt string) (string, error) {
	f.mu.Lock()
	f.textCalls++
	f.mu.Unlock()
	return f.textResp, f.textErr
}

func (f *fakeLLM) GenerateWithImages(ctx context.Context, modelName, prompt string, images []model.ImageAttachment) (string, error) {
	return f.imageResp, f.imageErr
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.textCalls
}

type fakeCommentRepo struct {
	subreddit     string
	comments      []repository.StoredComment
	err           error
	diverseCalls  int
	lastSubreddit string
}

func (f *fakeCommentRepo) SubredditFor(ctx context.Context, university string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.subreddit, nil
}

func (f *fakeCommentRepo) DiverseComments(ctx context.Context, subreddit string, limit int) ([]repository.StoredComment, error) {
	f.diverseCalls++
	f.lastSubreddit = subreddit
	if f.err != nil {
		return nil, f.err
	}
	return f.comments, nil
}

func (f *fakeCommentRepo) CommentsByCategory(ctx context.Context, subreddit, category string, limit int) ([]repository.StoredComment, error) {
	return f.comments, f.err
}

func (f *fakeCommentRepo) Categories(ctx context.Context) ([]string, error) {
	return []string{"noise"}, f.err
}

type fakeReviewCache struct {
	stored map[string][]model.Comment
	getErr error
	sets   int
}

func (f *fakeReviewCache) Set(ctx context.Context, subreddit string, comments []model.Comment) error {
	f.sets++
	if f.stored == nil {
		f.stored = make(map[string][]model.Comment)
	}
	f.stored[subreddit] = comments
	return nil
}

func (f *fakeReviewCache) Get(ctx context.Context, subreddit string) ([]model.Comment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored[subreddit], nil
}

func newTestStudentService(repo repository.CommentRepo, cache *fakeReviewCache, llm LLM) *StudentService {
	svc := NewStudentService(repo, nil, llm, "test-model", zap.NewNop())
	if cache != nil {
		svc.cache = cache
	}
	svc.now = func() time.Time { return time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestClassifyConfidentNegativeSkipsLLM(t *testing.T) {
	llm := &fakeLLM{enabled: true, textResp: "positive"}
	svc := newTestStudentService(&fakeCommentRepo{}, nil, llm)

	label, tier := svc.classify(context.Background(), "roaches everywhere, absolute nightmare")

	assert.Equal(t, model.SentimentNegative, label)
	assert.Equal(t, model.TierRule, tier)
	assert.Zero(t, llm.calls(), "confident rule scores must not call the classifier")
}

func TestClassifyConfidentPositiveSkipsLLM(t *testing.T) {
	llm := &fakeLLM{enabled: true, textResp: "negative"}
	svc := newTestStudentService(&fakeCommentRepo{}, nil, llm)

	label, tier := svc.classify(context.Background(), "highly recommend, great location")

	assert.Equal(t, model.SentimentPositive, label)
	assert.Equal(t, model.TierRule, tier)
	assert.Zero(t, llm.calls())
}

func TestClassifyBorderlineEscalates(t *testing.T) {
	llm := &fakeLLM{enabled: true, textResp: "negative"}
	svc := newTestStudentService(&fakeCommentRepo{}, nil, llm)

	label, tier := svc.classify(context.Background(), "the rent went up this year")

	assert.Equal(t, model.SentimentNegative, label)
	assert.Equal(t, model.TierLLM, tier)
	assert.Equal(t, 1, llm.calls())
}

func TestClassifyChattyResponseStillParsed(t *testing.T) {
	llm := &fakeLLM{enabled: true, textResp: "The sentiment here is Positive."}
	svc := newTestStudentService(&fakeCommentRepo{}, nil, llm)

	label, tier := svc.classify(context.Background(), "the rent went up this year")

	assert.Equal(t, model.SentimentPositive, label)
	assert.Equal(t, model.TierLLM, tier)
}

func TestClassifyFallsBackOnLLMError(t *testing.T) {
	llm := &fakeLLM{enabled: true, textErr: errors.New("timeout")}
	svc := newTestStudentService(&fakeCommentRepo{}, nil, llm)

	label, tier := svc.classify(context.Background(), "the rent went up this year")

	assert.Equal(t, model.SentimentNeutral, label)
	assert.Equal(t, model.TierFallback, tier)
}

func TestClassifyFallsBackOnGarbageResponse(t *testing.T) {
	llm := &fakeLLM{enabled: true, textResp: "banana"}
	svc := newTestStudentService(&fakeCommentRepo{}, nil, llm)

	label, tier := svc.classify(context.Background(), "the rent went up this year")

	assert.Equal(t, model.SentimentNeutral, label)
	assert.Equal(t, model.TierFallback, tier)
}

func TestClassifyDisabledLLMUsesFallbackTier(t *testing.T) {
	llm := &fakeLLM{enabled: false}
	svc := newTestStudentService(&fakeCommentRepo{}, nil, llm)

	_, tier := svc.classify(context.Background(), "the rent went up this year")

	assert.Equal(t, model.TierFallback, tier)
	assert.Zero(t, llm.calls())
}

func TestStudentInsightsAggregates(t *testing.T) {
	repo := &fakeCommentRepo{
		subreddit: "UIUC",
		comments: []repository.StoredComment{
			{Subreddit: "UIUC", Category: "pests", Text: "roaches and mold everywhere", Score: 40, TimePosted: "2026-07", UserType: "undergraduate"},
			{Subreddit: "UIUC", Category: "location", Text: "highly recommend, great location", Score: 25, TimePosted: "2025-10", UserType: "graduate"},
			{Subreddit: "UIUC", Category: "rent", Text: "the rent went up this year", Score: 5, TimePosted: "2024-01", UserType: "alumni"},
		},
	}
	svc := newTestStudentService(repo, nil, &fakeLLM{enabled: false})

	reviews, err := svc.StudentInsights(context.Background(), "UIUC", 0)
	require.NoError(t, err)

	assert.Equal(t, "UIUC", reviews.Subreddit)
	assert.Equal(t, 3, reviews.TotalMentions)
	assert.Equal(t, 1, reviews.Breakdown.Positive)
	assert.Equal(t, 1, reviews.Breakdown.Negative)
	assert.Equal(t, 1, reviews.Breakdown.Neutral)
	assert.Equal(t, "mock_reddit", reviews.Source)
	assert.NotEmpty(t, reviews.Note)

	seen := make(map[string]bool)
	for _, c := range reviews.Comments {
		require.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID], "comment IDs must be unique")
		seen[c.ID] = true
		assert.Greater(t, c.RecencyWeight, 0.0)
	}

	// "alumni" is not a recognized user type
	assert.Equal(t, model.UserTypeUnspecified, reviews.Comments[2].UserType)
	assert.Equal(t, model.UserTypeUndergraduate, reviews.Comments[0].UserType)
}

func TestStudentInsightsRecencyWeights(t *testing.T) {
	repo := &fakeCommentRepo{
		subreddit: "UIUC",
		comments: []repository.StoredComment{
			{Subreddit: "UIUC", Category: "noise", Text: "roaches and mold everywhere", TimePosted: "2026-07"},
			{Subreddit: "UIUC", Category: "noise", Text: "roaches and mold everywhere", TimePosted: "2024-01"},
		},
	}
	svc := newTestStudentService(repo, nil, &fakeLLM{enabled: false})

	reviews, err := svc.StudentInsights(context.Background(), "UIUC", 0)
	require.NoError(t, err)

	assert.Equal(t, 1.5, reviews.Comments[0].RecencyWeight)
	assert.Equal(t, 0.7, reviews.Comments[1].RecencyWeight)
}

func TestStudentInsightsCacheHitSkipsRepo(t *testing.T) {
	repo := &fakeCommentRepo{subreddit: "UIUC"}
	cache := &fakeReviewCache{
		stored: map[string][]model.Comment{
			"UIUC": {
				{Text: "clean and quiet", Sentiment: model.SentimentPositive, Tier: model.TierRule, RecencyWeight: 1.5},
			},
		},
	}
	svc := newTestStudentService(repo, cache, &fakeLLM{enabled: false})

	reviews, err := svc.StudentInsights(context.Background(), "UIUC", 0)
	require.NoError(t, err)

	assert.Zero(t, repo.diverseCalls, "cache hit must not refetch comments")
	require.Len(t, reviews.Comments, 1)
	assert.NotEmpty(t, reviews.Comments[0].ID, "cached comments get request-scoped IDs")
	assert.Equal(t, 1, reviews.Breakdown.Positive)
}

func TestStudentInsightsCacheMissPopulatesCache(t *testing.T) {
	repo := &fakeCommentRepo{
		subreddit: "UIUC",
		comments: []repository.StoredComment{
			{Subreddit: "UIUC", Category: "noise", Text: "the rent went up this year", TimePosted: "2026-07"},
		},
	}
	cache := &fakeReviewCache{}
	svc := newTestStudentService(repo, cache, &fakeLLM{enabled: false})

	_, err := svc.StudentInsights(context.Background(), "UIUC", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.diverseCalls)
	assert.Equal(t, 1, cache.sets)
}

func TestStudentInsightsRepoError(t *testing.T) {
	repo := &fakeCommentRepo{err: errors.New("mongo down")}
	svc := newTestStudentService(repo, nil, &fakeLLM{enabled: false})

	_, err := svc.StudentInsights(context.Background(), "UIUC", 0)
	assert.Error(t, err)
}

func TestNormalizeUserType(t *testing.T) {
	assert.Equal(t, model.UserTypeUndergraduate, normalizeUserType("undergraduate"))
	assert.Equal(t, model.UserTypeGraduate, normalizeUserType("graduate"))
	assert.Equal(t, model.UserTypeUnspecified, normalizeUserType("parent"))
	assert.Equal(t, model.UserTypeUnspecified, normalizeUserType(""))
}
