package scrape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"igcatalog/internal/model"
)

const defaultBaseURL = "https://api.apify.com/v2"

// Client dispara o ator de scraping do Instagram e devolve os itens do
// dataset. O scraping em si é todo externo; aqui é só a chamada.
type Client struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
}

func New(token string) *Client {
	return &Client{
		Token:   token,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Minute},
	}
}

type actorInput struct {
	DirectURLs   []string `json:"directUrls"`
	ResultsType  string   `json:"resultsType"`
	ResultsLimit int      `json:"resultsLimit"`
}

// ScrapePosts roda o ator de forma síncrona e devolve os posts do handle.
// Posts que chegarem sem legenda e sem imagem são completados com as meta
// tags da página pública do post.
func (c *Client) ScrapePosts(handle string, limit int) ([]model.ScrapedPost, error) {
	input := actorInput{
		DirectURLs:   []string{"https://www.instagram.com/" + handle + "/"},
		ResultsType:  "posts",
		ResultsLimit: limit,
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(
		"%s/acts/apify~instagram-scraper/run-sync-get-dataset-items?token=%s",
		c.BaseURL,
		c.Token,
	)

	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to run actor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("apify status %d", resp.StatusCode)
	}

	var posts []model.ScrapedPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	for i := range posts {
		if posts[i].Caption != "" || posts[i].DisplayURL != "" || posts[i].URL == "" {
			continue
		}
		caption, imageURL, err := c.fetchPostMeta(posts[i].URL)
		if err != nil {
			log.Printf("[Scrape] Falha ao completar post %s: %v", posts[i].URL, err)
			continue
		}
		posts[i].Caption = caption
		posts[i].DisplayURL = imageURL
	}

	return posts, nil
}

// fetchPostMeta busca a página pública do post e lê as meta tags og:.
func (c *Client) fetchPostMeta(postURL string) (string, string, error) {
	req, err := http.NewRequest("GET", postURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch %s: %w", postURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("post status %d", resp.StatusCode)
	}

	return ParsePostMeta(resp.Body)
}
