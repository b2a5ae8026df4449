package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mukujayCS/Apartment-Hunter/internal/cache"
	"github.com/mukujayCS/Apartment-Hunter/internal/config"
	"github.com/mukujayCS/Apartment-Hunter/internal/repository"
	"github.com/mukujayCS/Apartment-Hunter/internal/service"
	"github.com/mukujayCS/Apartment-Hunter/internal/transport/rest"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	cfg := config.Load()

	logger.Info("ai config",
		zap.String("textModel", cfg.AI.Models.Text),
		zap.String("visionModel", cfg.AI.Models.Vision),
		zap.String("sentimentModel", cfg.AI.Models.Sentiment),
		zap.String("questionModel", cfg.AI.Models.Question),
		zap.Bool("apiKeyConfigured", cfg.AI.IsEnabled()))
	if !cfg.AI.IsEnabled() {
		logger.Warn("GEMINI_API_KEY not set, using mock analysis")
	}

	// MongoDB is optional. Without it the community dataset is served
	// from the embedded seed file.
	var commentRepo repository.CommentRepo
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			cancel()
			logger.Fatal("failed to ping MongoDB", zap.Error(err))
		}
		cancel()
		logger.Info("connected to MongoDB")

		db := mongoClient.Database(cfg.MongoDatabase)
		if err := repository.EnsureSeeded(ctx, db); err != nil {
			logger.Fatal("failed to seed community comments", zap.Error(err))
		}
		commentRepo = repository.NewCommentRepo(db)
	} else {
		logger.Warn("MONGO_URI not set, using in-memory community dataset")
		commentRepo, err = repository.NewMemoryCommentRepo()
		if err != nil {
			logger.Fatal("failed to load embedded community dataset", zap.Error(err))
		}
	}

	// Redis is optional. Without it review classification runs fresh
	// on every request.
	var reviewCache cache.ReviewCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: strings.TrimPrefix(cfg.RedisAddr, "redis://")})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			logger.Fatal("failed to ping Redis", zap.Error(err))
		}
		logger.Info("connected to Redis")

		reviewCache = cache.NewReviewCache(rdb)
	} else {
		logger.Warn("REDIS_URI not set, review caching disabled")
	}

	// Initialize services
	llm := service.NewGeminiClient(cfg.AI, logger)
	authSvc := service.NewAuthService(cfg.JWTSecret)
	textSvc := service.NewTextAnalyzer(llm, cfg.AI.Models.Text, logger)
	imageSvc := service.NewImageAnalyzer(llm, cfg.AI.Models.Vision, logger)
	studentSvc := service.NewStudentService(commentRepo, reviewCache, llm, cfg.AI.Models.Sentiment, logger)
	questionSvc := service.NewQuestionService(llm, cfg.AI.Models.Question, logger)
	analyzeSvc := service.NewAnalyzeService(textSvc, imageSvc, studentSvc, questionSvc, logger)

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		AnalyzeService: analyzeSvc,
		CommentRepo:    commentRepo,
		MaxImages:      cfg.MaxImages,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
