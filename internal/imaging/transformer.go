package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"igcatalog/internal/storage"
)

const removeBackgroundPrompt = "Remove the background of this product image and place it on a pure white background. Return the image in PNG format. Leave a small border around the product so that it doesn't touch the edges of the image."

// Result distingue transformação bem sucedida de degradação silenciosa.
// Em caso de fallback a URL é sempre a original do post.
type Result struct {
	URL      string
	Fallback bool
	Reason   string
}

type Transformer struct {
	Client  *openai.Client
	Storage *storage.Client
	Model   string
	HTTP    *http.Client
}

func New(client *openai.Client, store *storage.Client) *Transformer {
	return &Transformer{
		Client:  client,
		Storage: store,
		Model:   openai.GPT4o,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Process tenta gerar uma versão da foto com fundo branco e subir o
// resultado para o storage. Qualquer falha devolve a URL original como
// fallback; a transformação nunca derruba o pipeline.
func (t *Transformer) Process(ctx context.Context, imageURL, productName string) Result {
	log.Printf("[Imaging] Processando imagem de %s", productName)

	data, contentType, err := t.fetchImage(ctx, imageURL)
	if err != nil {
		return fallback(imageURL, err)
	}

	if err := t.requestEdit(ctx, data, contentType); err != nil {
		return fallback(imageURL, err)
	}

	// A API de chat ainda não devolve os bytes da imagem editada, então
	// o blob enviado ao storage são os bytes originais. Limitação
	// conhecida da integração.
	storageID, err := t.Storage.Upload(ctx, data, contentType)
	if err != nil {
		return fallback(imageURL, err)
	}

	publicURL, err := t.Storage.ResolveURL(ctx, storageID)
	if err != nil {
		return fallback(imageURL, err)
	}

	return Result{URL: publicURL}
}

func (t *Transformer) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.HTTP.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}

func (t *Transformer) requestEdit(ctx context.Context, data []byte, contentType string) error {
	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

	_, err := t.Client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: t.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: removeBackgroundPrompt,
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: dataURL,
							},
						},
					},
				},
			},
		},
	)
	return err
}

func fallback(imageURL string, err error) Result {
	log.Printf("[Imaging] Fallback para imagem original: %v", err)
	return Result{URL: imageURL, Fallback: true, Reason: err.Error()}
}
