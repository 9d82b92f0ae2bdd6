package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"igcatalog/internal/config"
	"igcatalog/internal/db"
	"igcatalog/internal/extractor"
	"igcatalog/internal/imaging"
	"igcatalog/internal/model"
	"igcatalog/internal/pipeline"
	"igcatalog/internal/repository"
	"igcatalog/internal/scrape"
	"igcatalog/internal/storage"
)

// go run cmd/pipeline/main.go -mode=handle -handle=lojaexemplo
// go run cmd/pipeline/main.go -mode=file -request=<uuid> -posts=posts.json
func main() {
	mode := flag.String("mode", "handle", "Modo de execução: 'handle' ou 'file'")
	handle := flag.String("handle", "", "Handle do Instagram para processar")
	requestID := flag.String("request", "", "ID de uma solicitação existente (modo file)")
	postsFile := flag.String("posts", "", "Arquivo JSON com os posts já raspados (modo file)")
	flag.Parse()

	cfg := config.Load()

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

	aiClient := openai.NewClient(cfg.OpenAIKey)

	requestRepo := &repository.RequestRepository{DB: sqlDB}
	pipe := &pipeline.Pipeline{
		Extractor: extractor.New(aiClient),
		Imaging:   imaging.New(aiClient, storage.New(cfg.StorageURL)),
		Products:  &repository.ProductRepository{DB: pool},
		Requests:  requestRepo,
	}

	var id string
	var posts []model.ScrapedPost

	switch *mode {
	case "file":
		if *requestID == "" || *postsFile == "" {
			log.Fatal("Modo file exige -request e -posts")
		}
		id = *requestID
		b, err := os.ReadFile(*postsFile)
		if err != nil {
			log.Fatalf("Erro ao ler %s: %v", *postsFile, err)
		}
		if err := json.Unmarshal(b, &posts); err != nil {
			log.Fatalf("Erro ao decodificar %s: %v", *postsFile, err)
		}
	default:
		if *handle == "" {
			log.Fatal("Modo handle exige -handle")
		}
		id, err = requestRepo.Create(*handle)
		if err != nil {
			log.Fatalf("Erro ao criar solicitação: %v", err)
		}
		posts, err = scrape.New(cfg.ApifyToken).ScrapePosts(*handle, cfg.PostsLimit)
		if err != nil {
			log.Fatalf("Erro no scrape de @%s: %v", *handle, err)
		}
	}

	processed, err := pipe.ProcessPosts(context.Background(), id, posts)
	if err != nil {
		log.Fatalf("Erro no pipeline: %v", err)
	}

	log.Printf("Pipeline finalizado: %d produtos aceitos", processed)
}
