package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi"

	"igcatalog/internal/model"
)

const listLimit = 20

type RequestStore interface {
	Create(handle string) (string, error)
	Get(id string) (*model.CatalogRequest, error)
}

type ProductReader interface {
	ListRecent(ctx context.Context, limit int) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

type Scraper interface {
	ScrapePosts(handle string, limit int) ([]model.ScrapedPost, error)
}

type PostsProcessor interface {
	ProcessPosts(ctx context.Context, requestID string, posts []model.ScrapedPost) (int, error)
}

type ProductCache interface {
	GetProducts(ctx context.Context) ([]model.Product, bool)
	SetProducts(ctx context.Context, products []model.Product)
	Invalidate(ctx context.Context)
}

type Handler struct {
	Requests   RequestStore
	Products   ProductReader
	Cache      ProductCache
	Scraper    Scraper
	Pipeline   PostsProcessor
	PostsLimit int
	ViewFile   string
}

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/api/requests", h.CreateRequest)
	r.Get("/api/requests/{id}", h.GetRequest)
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{id}", h.GetProduct)
	r.Get("/", h.View)

	return r
}

type createRequestBody struct {
	Handle string `json:"handle"`
}

type createRequestResponse struct {
	RequestID string `json:"requestId"`
}

// CreateRequest registra a solicitação e dispara scrape + pipeline em
// background. A resposta não espera o processamento.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	json.NewDecoder(r.Body).Decode(&body)

	if body.Handle == "" {
		http.Error(w, "handle obrigatório", http.StatusBadRequest)
		return
	}

	id, err := h.Requests.Create(body.Handle)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	log.Printf("[Catalog] Solicitação %s criada para @%s", id, body.Handle)

	go h.runPipeline(id, body.Handle)

	json.NewEncoder(w).Encode(createRequestResponse{RequestID: id})
}

func (h *Handler) runPipeline(requestID, handle string) {
	ctx := context.Background()

	posts, err := h.Scraper.ScrapePosts(handle, h.PostsLimit)
	if err != nil {
		log.Printf("[Catalog] Scrape falhou para @%s: %v", handle, err)
		return
	}

	processed, err := h.Pipeline.ProcessPosts(ctx, requestID, posts)
	if err != nil {
		log.Printf("[Catalog] Pipeline falhou para %s: %v", requestID, err)
		return
	}

	if processed > 0 {
		h.Cache.Invalidate(ctx)
	}
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.Requests.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if req == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(req)
}

// ListProducts devolve os 20 produtos mais recentes, com cache curto.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if products, ok := h.Cache.GetProducts(ctx); ok {
		json.NewEncoder(w).Encode(products)
		return
	}

	products, err := h.Products.ListRecent(ctx, listLimit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	h.Cache.SetProducts(ctx, products)
	json.NewEncoder(w).Encode(products)
}

// GetProduct devolve 404 sem corpo de erro quando o id não existe;
// ausência não é tratada como falha.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if product == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(product)
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, h.ViewFile)
}
