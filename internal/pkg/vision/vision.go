// Package vision wraps the OpenAI vision API for receipt extraction.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
)

// Confidence levels the extractor reports.
const (
	ConfidenceHigh       = "high"
	ConfidenceLow        = "low"
	ConfidenceUnreadable = "unreadable"
)

// Extraction is what the model read off a receipt image.
type Extraction struct {
	Amount        *decimal.Decimal `json:"amount"`
	Merchant      string           `json:"merchant"`
	Date          string           `json:"date"`
	Confidence    string           `json:"confidence"`
	ItemsDetected []string         `json:"items_detected"`
	Currency      string           `json:"currency"`
}

// ReceiptReader is the contract the claims engine depends on.
type ReceiptReader interface {
	ReadReceipt(ctx context.Context, imageBase64 string) (Extraction, error)
}

type Client struct {
	api   *openai.Client
	model string
}

// NewClient returns a ReceiptReader backed by OpenAI, or nil when no API key
// is configured (claim intake then degrades to manual approval).
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		api:   openai.NewClient(apiKey),
		model: openai.GPT4oMini,
	}
}

const extractionPrompt = `You are a receipt reader. Extract from the receipt image and reply with ONLY a JSON object:
{"amount": <total amount as number or null>, "merchant": "<merchant name>", "date": "<YYYY-MM-DD or empty>", "confidence": "<high|low|unreadable>", "items_detected": ["..."], "currency": "<MYR etc>"}
Use "unreadable" confidence when the image is not a receipt or cannot be read.`

// ReadReceipt sends the image to the vision model and parses its reply.
func (c *Client) ReadReceipt(ctx context.Context, imageBase64 string) (Extraction, error) {
	imageURL := imageBase64
	if !strings.HasPrefix(imageURL, "data:") {
		imageURL = "data:image/jpeg;base64," + imageURL
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 500,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractionPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return Extraction{}, fmt.Errorf("vision request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Extraction{}, fmt.Errorf("vision response contained no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var out Extraction
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return Extraction{}, fmt.Errorf("failed to parse vision response: %w", err)
	}

	switch out.Confidence {
	case ConfidenceHigh, ConfidenceLow, ConfidenceUnreadable:
	default:
		out.Confidence = ConfidenceUnreadable
	}

	return out, nil
}
