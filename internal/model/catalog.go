package model

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type CatalogRequest struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Status      string    `json:"status"`
	RequestTime time.Time `json:"requestTime"`
}

type Product struct {
	ID                string    `json:"id"`
	RequestID         string    `json:"requestId"`
	ProductName       string    `json:"productName"`
	Price             float64   `json:"price"`
	Size              string    `json:"size,omitempty"`
	OriginalImageURL  string    `json:"originalImageUrl"`
	ProcessedImageURL string    `json:"processedImageUrl"`
	IgPostURL         string    `json:"igPostUrl"`
	MercadoPagoLink   string    `json:"mercadoPagoLink,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ScrapedPost é o item bruto entregue pelo scraper (Apify).
type ScrapedPost struct {
	ID         string `json:"id"`
	Caption    string `json:"caption"`
	DisplayURL string `json:"displayUrl"`
	URL        string `json:"url"`
}

// ExtractedProduct é a resposta estruturada do modelo de linguagem.
// Price nulo significa "sem preço identificável" e o post é descartado.
type ExtractedProduct struct {
	ProductName string   `json:"productName"`
	Price       *float64 `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	Size        *string  `json:"size"`
}
