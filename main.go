package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/disneybound/disneyboundbackend/config"
	"github.com/disneybound/disneyboundbackend/database"
	"github.com/disneybound/disneyboundbackend/handlers"
	"github.com/disneybound/disneyboundbackend/llm"
	"github.com/disneybound/disneyboundbackend/repository"
	"github.com/disneybound/disneyboundbackend/services"
	"github.com/disneybound/disneyboundbackend/tmdb"
	"github.com/disneybound/disneyboundbackend/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	characterRepo := repository.NewCharacterRepository(db)

	searcher := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL)
	thumbnailService := services.NewThumbnailService(characterRepo, tmdbClient, cfg.TMDBImageBaseURL, cfg.TMDBAPIKey != "")

	log.Printf("Initializing enrichment worker pool (Workers: %d, Queue Size: %d)...", cfg.NumEnrichmentWorkers, cfg.EnrichmentQueueSize)
	enrichmentProcessor := workers.NewEnrichmentProcessor(characterRepo, thumbnailService, cfg.EnrichmentQueueSize, cfg.NumEnrichmentWorkers)
	defer enrichmentProcessor.Stop()

	cacheService := services.NewCharacterCacheService(characterRepo)
	searchService := services.NewSearchService(cacheService, searcher, enrichmentProcessor)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	characterHandler := &handlers.CharacterHandler{
		SearchService: searchService,
		CharacterRepo: characterRepo,
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/characters", func(r chi.Router) {
			r.Get("/", characterHandler.ListCharacters)
			r.Post("/search", characterHandler.Search)
			r.Get("/{character_id}", characterHandler.GetCharacter)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
