package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"igcatalog/internal/model"
)

type Extractor struct {
	Client *openai.Client
	Model  string
}

func New(client *openai.Client) *Extractor {
	return &Extractor{
		Client: client,
		Model:  openai.GPT4oMini,
	}
}

// Extract envia a legenda para o modelo e devolve o produto estruturado.
// Legenda vazia devolve nil sem chamar a API. Erro de API ou de parse
// conta como "sem produto" para o chamador; não há retry.
func (e *Extractor) Extract(ctx context.Context, caption string) (*model.ExtractedProduct, error) {
	if strings.TrimSpace(caption) == "" {
		return nil, nil
	}

	resp, err := e.Client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: e.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: ExtractionPrompt(),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: "Caption: \"" + caption + "\"",
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, err
	}

	raw := stripFences(resp.Choices[0].Message.Content)

	var extracted model.ExtractedProduct
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("resposta fora do schema esperado: %w", err)
	}

	return &extracted, nil
}

// stripFences remove marcadores de bloco markdown que alguns modelos
// colocam em volta do JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
