package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-api/internal/auth"
	"github.com/iliyamo/blog-api/internal/config"
	"github.com/iliyamo/blog-api/internal/database"
	"github.com/iliyamo/blog-api/internal/handler"
	"github.com/iliyamo/blog-api/internal/middleware"
	"github.com/iliyamo/blog-api/internal/policy"
	"github.com/iliyamo/blog-api/internal/queue"
	"github.com/iliyamo/blog-api/internal/repository"
	"github.com/iliyamo/blog-api/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis backs token revocation and rate limiting.  A nil client is
	// tolerated: revocation becomes a no-op and the limiter disables itself.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: logout revocation and rate limiting disabled")
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.AccessTTLMin)*time.Minute, auth.NewRedisDenylist(rdb))

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)
	comments := repository.NewCommentRepo(db)

	policies := policy.Default()

	authHandler := handler.NewAuthHandler(cfg, users, issuer)
	postHandler := handler.NewPostHandler(posts, comments, policies)
	commentHandler := handler.NewCommentHandler(posts, comments, policies)

	gate := middleware.Gatekeeper(issuer, users)
	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, authHandler, postHandler, commentHandler, gate, limiter)

	// Background consumer records activity events to logs/activity.log.
	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
