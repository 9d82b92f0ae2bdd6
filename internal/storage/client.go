package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client fala o protocolo de upload em duas fases do storage gerenciado:
// pede uma URL de escrita, envia os bytes, recebe um identificador e
// resolve o identificador para uma URL pública de leitura.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type uploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
}

type uploadResponse struct {
	StorageID string `json:"storageId"`
}

type resolveResponse struct {
	URL string `json:"url"`
}

// Upload envia o blob e devolve o identificador de storage.
func (c *Client) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/upload-url", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage status %d", resp.StatusCode)
	}

	var urlResp uploadURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&urlResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	put, err := http.NewRequestWithContext(ctx, "POST", urlResp.UploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	put.Header.Set("Content-Type", contentType)

	putResp, err := c.HTTP.Do(put)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer putResp.Body.Close()

	if putResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload status %d", putResp.StatusCode)
	}

	var upResp uploadResponse
	if err := json.NewDecoder(putResp.Body).Decode(&upResp); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	return upResp.StorageID, nil
}

// ResolveURL troca um identificador de storage por uma URL pública.
func (c *Client) ResolveURL(ctx context.Context, storageID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/files/"+storageID+"/url", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage status %d", resp.StatusCode)
	}

	var res resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return res.URL, nil
}
