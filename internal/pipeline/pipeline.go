package pipeline

import (
	"context"
	"log"

	"igcatalog/internal/imaging"
	"igcatalog/internal/model"
	"igcatalog/internal/observability"
)

// Os colaboradores são interfaces para que testes possam substituí-los;
// o cliente de IA é construído no main e injetado via implementações.
type Extractor interface {
	Extract(ctx context.Context, caption string) (*model.ExtractedProduct, error)
}

type ImageProcessor interface {
	Process(ctx context.Context, imageURL, productName string) imaging.Result
}

type ProductStore interface {
	SaveBatch(ctx context.Context, products []model.Product) error
}

type RequestStore interface {
	UpdateStatus(id, status string) error
}

type Pipeline struct {
	Extractor Extractor
	Imaging   ImageProcessor
	Products  ProductStore
	Requests  RequestStore
}

// ProcessPosts roda o pipeline de uma solicitação: extrai cada legenda,
// descarta posts sem preço, tenta transformar a foto e insere os aceitos
// em lote. Os posts são processados em sequência, na ordem recebida.
// Devolve quantos produtos foram aceitos.
func (p *Pipeline) ProcessPosts(ctx context.Context, requestID string, posts []model.ScrapedPost) (int, error) {
	log.Printf("[Pipeline] Processando %d posts da solicitação %s", len(posts), requestID)

	var accepted []model.Product

	for _, post := range posts {
		observability.PostsProcessedTotal.Inc()

		extracted, err := p.Extractor.Extract(ctx, post.Caption)
		if err != nil {
			observability.ExtractionFailuresTotal.Inc()
			log.Printf("[Pipeline] Extração falhou para o post %s: %v", post.ID, err)
			continue
		}

		// Sem preço resolvido o post não vira produto
		if extracted == nil || extracted.Price == nil {
			log.Printf("[Pipeline] Pulando post %s: sem preço válido", post.ID)
			continue
		}

		log.Printf("[Pipeline] Produto encontrado: %s - %.0f %s",
			extracted.ProductName, *extracted.Price, extracted.Currency)

		result := p.Imaging.Process(ctx, post.DisplayURL, extracted.ProductName)
		if result.Fallback {
			observability.ImageFallbacksTotal.Inc()
			log.Printf("[Pipeline] Imagem do post %s degradada para original: %s", post.ID, result.Reason)
		}

		size := ""
		if extracted.Size != nil {
			size = *extracted.Size
		}

		accepted = append(accepted, model.Product{
			RequestID:         requestID,
			ProductName:       extracted.ProductName,
			Price:             *extracted.Price,
			Size:              size,
			OriginalImageURL:  post.DisplayURL,
			ProcessedImageURL: result.URL,
			IgPostURL:         post.URL,
		})
		observability.ProductsAcceptedTotal.Inc()
	}

	if len(accepted) > 0 {
		if err := p.Products.SaveBatch(ctx, accepted); err != nil {
			return 0, err
		}
		if err := p.Requests.UpdateStatus(requestID, model.StatusCompleted); err != nil {
			return 0, err
		}
	}

	log.Printf("[Pipeline] Solicitação %s: %d produtos válidos salvos", requestID, len(accepted))
	return len(accepted), nil
}
