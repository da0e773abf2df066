package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	docs "github.com/tazhibayda/posts-service/docs"
	"github.com/tazhibayda/posts-service/internal/config"
	api "github.com/tazhibayda/posts-service/internal/http"
	"github.com/tazhibayda/posts-service/internal/log"
	"github.com/tazhibayda/posts-service/internal/metrics"
	"github.com/tazhibayda/posts-service/internal/queue"
	"github.com/tazhibayda/posts-service/internal/repo"
	"github.com/tazhibayda/posts-service/internal/service"
)

// @title Posts API
// @version 0.1.0
// @description Posts with embedded comments and likes.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		defer rds.Close()
	}

	var pub queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		rp, err := queue.NewPublisher(cfg.RabbitURL, queue.Exchange)
		if err != nil {
			logger.Fatal("rabbit connect", zap.Error(err))
		}
		pub = rp
	}
	defer pub.Close()

	metrics.MustRegister()
	docs.SwaggerInfo.BasePath = "/"

	posts := service.NewPostService(repo.NewPostRepo(store))
	h := api.NewHandler(posts, cfg.JWTSecret, rds, cfg.RateLimitPerMin, pub, store)
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("posts-service listening", zap.String("port", cfg.Port))

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("signal received, shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
