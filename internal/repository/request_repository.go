package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"igcatalog/internal/model"
)

type RequestRepository struct {
	DB *sql.DB
}

// Create registra uma nova solicitação de catálogo com status 'pending'.
func (r *RequestRepository) Create(handle string) (string, error) {
	id := uuid.New().String()
	_, err := r.DB.Exec(`
		INSERT INTO catalog_requests (id, handle, status, request_time)
		VALUES ($1, $2, $3, $4)
	`, id, handle, model.StatusPending, time.Now())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *RequestRepository) Get(id string) (*model.CatalogRequest, error) {
	var req model.CatalogRequest
	err := r.DB.QueryRow(`
		SELECT id, handle, status, request_time
		FROM catalog_requests
		WHERE id = $1
	`, id).Scan(&req.ID, &req.Handle, &req.Status, &req.RequestTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) UpdateStatus(id, status string) error {
	_, err := r.DB.Exec(`
		UPDATE catalog_requests
		SET status = $1
		WHERE id = $2
	`, status, id)
	return err
}
