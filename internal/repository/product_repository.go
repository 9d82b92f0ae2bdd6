package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"igcatalog/internal/model"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

// SaveBatch insere todos os produtos aceitos de uma solicitação em uma
// única transação. Produtos nunca são atualizados depois de criados.
func (r *ProductRepository) SaveBatch(ctx context.Context, products []model.Product) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range products {
		var size interface{}
		if p.Size != "" {
			size = p.Size
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO products
			(id, request_id, product_name, price, size, original_image_url, processed_image_url, ig_post_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.New(), p.RequestID, p.ProductName, p.Price, size, p.OriginalImageURL, p.ProcessedImageURL, p.IgPostURL)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListRecent devolve os produtos mais recentes, do mais novo para o mais antigo.
func (r *ProductRepository) ListRecent(ctx context.Context, limit int) ([]model.Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, request_id, product_name, price, size, original_image_url, processed_image_url, ig_post_url, mercado_pago_link, created_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue // Pula linhas com erro de scan
		}
		list = append(list, p)
	}

	return list, rows.Err()
}

// GetByID devolve nil (sem erro) quando o id não existe.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, request_id, product_name, price, size, original_image_url, processed_image_url, ig_post_url, mercado_pago_link, created_at
		FROM products
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CountByRequest conta quantos produtos uma solicitação gerou.
func (r *ProductRepository) CountByRequest(ctx context.Context, requestID string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM products WHERE request_id = $1
	`, requestID).Scan(&n)
	return n, err
}

func scanProduct(rows pgx.Rows) (model.Product, error) {
	var p model.Product
	var size, mpLink sql.NullString
	err := rows.Scan(&p.ID, &p.RequestID, &p.ProductName, &p.Price, &size,
		&p.OriginalImageURL, &p.ProcessedImageURL, &p.IgPostURL, &mpLink, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	p.Size = size.String
	p.MercadoPagoLink = mpLink.String
	return p, nil
}
