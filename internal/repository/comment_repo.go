package repository

import (
	"context"
	"math/rand"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultSubreddit is used for universities with no dedicated mapping.
// Resolving instead of failing keeps the request alive per the API contract.
const DefaultSubreddit = "college"

// fallbackSubreddit is used when a mapped subreddit has no comments in
// the dataset. The dataset is guaranteed to cover UIUC.
const fallbackSubreddit = "UIUC"

// perCategorySample caps how many comments each category contributes to
// a diverse selection, so one noisy category can't dominate.
const perCategorySample = 2

// Categories present in the community dataset
var commentCategories = []string{
	"location", "safety", "noise", "landlord",
	"transit", "condition", "price", "overall", "social",
}

// StoredComment is a raw community comment as stored in the dataset,
// before any classification happens.
type StoredComment struct {
	Subreddit  string `bson:"subreddit" json:"subreddit"`
	Category   string `bson:"category" json:"category"`
	Text       string `bson:"text" json:"text"`
	Score      int    `bson:"score" json:"score"`
	TimePosted string `bson:"timePosted" json:"time_posted"`
	UserType   string `bson:"userType" json:"user_type"`
}

// SubredditMapping resolves a university name to its discussion forum
type SubredditMapping struct {
	University string `bson:"university" json:"university"`
	Subreddit  string `bson:"subreddit" json:"subreddit"`
}

// CommentRepo is the community data source: university mapping lookups
// and raw comment retrieval. Swappable for a live feed later; the core
// pipeline only sees this interface.
type CommentRepo interface {
	SubredditFor(ctx context.Context, university string) (string, error)
	DiverseComments(ctx context.Context, subreddit string, limit int) ([]StoredComment, error)
	CommentsByCategory(ctx context.Context, subreddit, category string, limit int) ([]StoredComment, error)
	Categories(ctx context.Context) ([]string, error)
}

type mongoCommentRepo struct {
	comments *mongo.Collection
	mappings *mongo.Collection
}

// NewCommentRepo creates a MongoDB-backed comment repository
func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &mongoCommentRepo{
		comments: db.Collection("community_comments"),
		mappings: db.Collection("university_subreddits"),
	}
}

func (r *mongoCommentRepo) SubredditFor(ctx context.Context, university string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(university))
	var m SubredditMapping
	err := r.mappings.FindOne(ctx, bson.M{"university": key}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return DefaultSubreddit, nil
	}
	if err != nil {
		return "", err
	}
	return m.Subreddit, nil
}

func (r *mongoCommentRepo) DiverseComments(ctx context.Context, subreddit string, limit int) ([]StoredComment, error) {
	all, err := r.sampleAcrossCategories(ctx, subreddit)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 && subreddit != fallbackSubreddit {
		// Subreddit not covered by the dataset
		all, err = r.sampleAcrossCategories(ctx, fallbackSubreddit)
		if err != nil {
			return nil, err
		}
	}

	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *mongoCommentRepo) sampleAcrossCategories(ctx context.Context, subreddit string) ([]StoredComment, error) {
	var all []StoredComment
	for _, category := range commentCategories {
		opts := options.Find().SetLimit(perCategorySample)
		cursor, err := r.comments.Find(ctx, bson.M{"subreddit": subreddit, "category": category}, opts)
		if err != nil {
			return nil, err
		}
		var batch []StoredComment
		if err := cursor.All(ctx, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (r *mongoCommentRepo) CommentsByCategory(ctx context.Context, subreddit, category string, limit int) ([]StoredComment, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.comments.Find(ctx, bson.M{"subreddit": subreddit, "category": category}, opts)
	if err != nil {
		return nil, err
	}
	var results []StoredComment
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mongoCommentRepo) Categories(ctx context.Context) ([]string, error) {
	out := make([]string, len(commentCategories))
	copy(out, commentCategories)
	return out, nil
}

// EnsureSeeded loads the embedded dataset into MongoDB when the
// collections are empty, so a fresh deployment works out of the box.
func EnsureSeeded(ctx context.Context, db *mongo.Database) error {
	data, err := loadSeedData()
	if err != nil {
		return err
	}

	comments := db.Collection("community_comments")
	n, err := comments.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n == 0 {
		docs := make([]interface{}, len(data.Comments))
		for i, c := range data.Comments {
			docs[i] = c
		}
		if _, err := comments.InsertMany(ctx, docs); err != nil {
			return err
		}
	}

	mappings := db.Collection("university_subreddits")
	n, err = mappings.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n == 0 {
		docs := make([]interface{}, 0, len(data.Mappings))
		for university, subreddit := range data.Mappings {
			docs = append(docs, SubredditMapping{University: university, Subreddit: subreddit})
		}
		if _, err := mappings.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	return nil
}
