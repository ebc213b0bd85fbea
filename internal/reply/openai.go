package reply

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

const systemPrompt = "You are a helpful assistant that summarizes nutrition parsing results. " +
	"Given an original user message and a list of parsed nutrition items, return a short friendly message showing each item, calories and protein, " +
	"then the meal totals, and then the user's running total for the day if provided. Use short lines, user-friendly language."

// OpenAIFormatter asks a chat model to phrase the meal confirmation. The
// totals trailer is always appended verbatim so the numbers in the reply
// come from the resolver, not the model.
type OpenAIFormatter struct {
	client *resty.Client
	model  string
}

// NewOpenAIFormatter creates a formatter that calls the chat completions
// API with the given key and model.
func NewOpenAIFormatter(baseURL, apiKey, chatModel string, timeout time.Duration) *OpenAIFormatter {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+apiKey).
		SetTimeout(timeout)

	return &OpenAIFormatter{client: c, model: chatModel}
}

// chatRequest / chatResponse structs for JSON binding

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// FormatMeal implements Formatter.
func (f *OpenAIFormatter) FormatMeal(ctx context.Context, rawText string, result *model.NutritionResult, daily *model.DailyTotals) (string, error) {
	itemLines := make([]string, 0, len(result.Items))
	for _, it := range result.Items {
		itemLines = append(itemLines, fmt.Sprintf("%g %s %s -> %.1f kcal, %.1f g protein", it.Quantity, it.Unit, it.Name, it.Calories, it.ProteinG))
	}
	prompt := fmt.Sprintf("Original message: %s\nParsed items:\n%s\n\nProduce a short friendly reply.", rawText, strings.Join(itemLines, "\n"))

	reqBody := chatRequest{
		Model: f.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   250,
		Temperature: 0.2,
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(cr.Choices[0].Message.Content))
	fmt.Fprintf(&b, "\n\nMeal totals: %.0f kcal, %.1f g protein.", result.TotalCalories, result.TotalProteinG)
	fmt.Fprintf(&b, "\nToday's running totals: %.0f kcal, %.1f g protein.", daily.TotalCalories, daily.TotalProteinG)
	return b.String(), nil
}
