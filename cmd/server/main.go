package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"igcatalog/internal/catalog"
	"igcatalog/internal/config"
	"igcatalog/internal/db"
	"igcatalog/internal/extractor"
	"igcatalog/internal/imaging"
	"igcatalog/internal/observability"
	"igcatalog/internal/pipeline"
	"igcatalog/internal/repository"
	"igcatalog/internal/scrape"
	"igcatalog/internal/storage"
)

func main() {
	cfg := config.Load()

	observability.Start(cfg.MetricsPort)

	pool, err := db.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no Postgres (pgxpool): %v", err)
	}
	defer pool.Close()

	if err := db.Bootstrap(context.Background(), pool); err != nil {
		log.Fatalf("Erro ao criar tabelas: %v", err)
	}

	sqlDB, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no Postgres (db): %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})

	aiClient := openai.NewClient(cfg.OpenAIKey)
	storageClient := storage.New(cfg.StorageURL)

	requestRepo := &repository.RequestRepository{DB: sqlDB}
	productRepo := &repository.ProductRepository{DB: pool}

	pipe := &pipeline.Pipeline{
		Extractor: extractor.New(aiClient),
		Imaging:   imaging.New(aiClient, storageClient),
		Products:  productRepo,
		Requests:  requestRepo,
	}

	handler := &catalog.Handler{
		Requests:   requestRepo,
		Products:   productRepo,
		Cache:      &catalog.Cache{Client: redisClient},
		Scraper:    scrape.New(cfg.ApifyToken),
		Pipeline:   pipe,
		PostsLimit: cfg.PostsLimit,
		ViewFile:   "./views/index.html",
	}

	log.Printf("Catálogo rodando :%s", cfg.HTTPPort)
	http.ListenAndServe(":"+cfg.HTTPPort, catalog.NewRouter(handler))
}
