package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/agrilink/backend/internal/config"
	"github.com/agrilink/backend/internal/handlers"
	appMiddleware "github.com/agrilink/backend/internal/middleware"
	"github.com/agrilink/backend/internal/moderation"
	"github.com/agrilink/backend/internal/services"
	"github.com/agrilink/backend/internal/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Persistent services
	userService, err := services.NewMongoUserService(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect user store: %v", err)
	}
	defer userService.Close(ctx)

	postService, err := services.NewMongoPostService(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect post store: %v", err)
	}
	defer postService.Close(ctx)

	calendarService, err := services.NewMongoCalendarService(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect calendar store: %v", err)
	}
	defer calendarService.Close(ctx)

	// Price cache; the price service degrades to uncached fetches if Redis
	// is unreachable.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis unavailable, price cache disabled: %v", err)
		redisClient = nil
	}

	marketClient := services.NewMarketClient(cfg.MarketAPIKey, cfg.MarketAPIBaseURL)
	priceService := services.NewPriceService(marketClient, redisClient, cfg.PriceCacheTTL)

	// Moderation term list: custom list on disk wins over the compiled-in one.
	terms := moderation.DefaultTerms
	if termStore, err := storage.NewTermListStore(cfg.DataDir, "moderation_terms.json"); err == nil {
		if custom, err := termStore.Load(); err == nil && len(custom) > 0 {
			log.Printf("Loaded %d custom moderation terms", len(custom))
			terms = custom
		}
	}
	scanner := moderation.NewScanner(terms)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration)
	forumHandler := handlers.NewForumHandler(postService, userService, scanner)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	priceHandler := handlers.NewPriceHandler(priceService)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))

			r.Get("/auth/me", authHandler.Me)

			// Forum routes
			r.Route("/forum", func(r chi.Router) {
				r.Get("/posts", forumHandler.ListPosts)
				r.Post("/posts", forumHandler.CreatePost)
				r.Get("/moderation/me", forumHandler.ModerationStatus)

				r.Route("/posts/{postId}", func(r chi.Router) {
					r.Get("/", forumHandler.GetPost)
					r.Delete("/", forumHandler.DeletePost)
					r.Post("/upvote", forumHandler.UpvotePost)

					// Replies
					r.Post("/replies", forumHandler.AddReply)
					r.Delete("/replies/{replyId}", forumHandler.DeleteReply)
				})
			})

			// Crop calendar routes
			r.Route("/calendar", func(r chi.Router) {
				r.Get("/crops", calendarHandler.ListCrops)
				r.Get("/tasks", calendarHandler.ListTasks)
				r.Post("/schedule", calendarHandler.GenerateSchedule)
				r.Post("/tasks/{taskId}/complete", calendarHandler.CompleteTask)
				r.Delete("/schedule/{crop}", calendarHandler.DeleteSchedule)
			})

			// Market price routes
			r.Route("/prices", func(r chi.Router) {
				r.Get("/latest", priceHandler.Latest)
				r.Get("/compare", priceHandler.Compare)
				r.Get("/heatmap", priceHandler.Heatmap)
			})
		})
	})

	log.Printf("AgriLink API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
