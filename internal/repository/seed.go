package repository

import (
	"context"
	"embed"
	"encoding/json"
	"math/rand"
	"strings"
)

//go:embed data/community_comments.json
var seedFS embed.FS

// SeedData is the embedded community dataset. It stands in for the
// Reddit API, whose access policy requires pre-approval; the repository
// interface stays the same if a live integration lands later.
type SeedData struct {
	Mappings map[string]string `json:"mappings"`
	Comments []StoredComment   `json:"comments"`
}

func loadSeedData() (*SeedData, error) {
	raw, err := seedFS.ReadFile("data/community_comments.json")
	if err != nil {
		return nil, err
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

type memoryCommentRepo struct {
	mappings map[string]string
	// subreddit -> category -> comments
	bySubreddit map[string]map[string][]StoredComment
}

// NewMemoryCommentRepo builds an in-memory repository from the embedded
// dataset. Used when no MongoDB is configured, and in tests.
func NewMemoryCommentRepo() (CommentRepo, error) {
	data, err := loadSeedData()
	if err != nil {
		return nil, err
	}
	return newMemoryRepoFromData(data), nil
}

func newMemoryRepoFromData(data *SeedData) CommentRepo {
	repo := &memoryCommentRepo{
		mappings:    data.Mappings,
		bySubreddit: make(map[string]map[string][]StoredComment),
	}
	for _, c := range data.Comments {
		byCategory, ok := repo.bySubreddit[c.Subreddit]
		if !ok {
			byCategory = make(map[string][]StoredComment)
			repo.bySubreddit[c.Subreddit] = byCategory
		}
		byCategory[c.Category] = append(byCategory[c.Category], c)
	}
	return repo
}

func (r *memoryCommentRepo) SubredditFor(_ context.Context, university string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(university))
	if subreddit, ok := r.mappings[key]; ok {
		return subreddit, nil
	}
	return DefaultSubreddit, nil
}

func (r *memoryCommentRepo) DiverseComments(_ context.Context, subreddit string, limit int) ([]StoredComment, error) {
	byCategory, ok := r.bySubreddit[subreddit]
	if !ok {
		byCategory = r.bySubreddit[fallbackSubreddit]
	}

	var all []StoredComment
	for _, category := range commentCategories {
		comments := byCategory[category]
		n := len(comments)
		if n > perCategorySample {
			n = perCategorySample
		}
		all = append(all, comments[:n]...)
	}

	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryCommentRepo) CommentsByCategory(_ context.Context, subreddit, category string, limit int) ([]StoredComment, error) {
	comments := r.bySubreddit[subreddit][category]
	if limit > 0 && len(comments) > limit {
		comments = comments[:limit]
	}
	out := make([]StoredComment, len(comments))
	copy(out, comments)
	return out, nil
}

func (r *memoryCommentRepo) Categories(_ context.Context) ([]string, error) {
	out := make([]string, len(commentCategories))
	copy(out, commentCategories)
	return out, nil
}
