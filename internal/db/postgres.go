package db

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

func New(url string) (*sql.DB, error) {
	return sql.Open("postgres", url)
}

func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, url)
}

// Bootstrap cria as tabelas se ainda não existirem.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_requests (
			id UUID PRIMARY KEY,
			handle TEXT NOT NULL,
			status TEXT NOT NULL,
			request_time TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			request_id UUID NOT NULL REFERENCES catalog_requests(id),
			product_name TEXT NOT NULL,
			price NUMERIC NOT NULL,
			size TEXT,
			original_image_url TEXT NOT NULL,
			processed_image_url TEXT NOT NULL,
			ig_post_url TEXT NOT NULL,
			mercado_pago_link TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}
