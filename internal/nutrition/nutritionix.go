package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

// Client calls the Nutritionix natural-language nutrients API.
type Client struct {
	client *resty.Client
}

// NewClient creates a Client for the given base URL and app credentials.
// Every request carries the x-app-id/x-app-key headers and is bounded by
// timeout.
func NewClient(baseURL, appID, appKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-app-id", appID).
		SetHeader("x-app-key", appKey).
		SetTimeout(timeout)

	return &Client{client: c}
}

// nutrientsRequest / nutrientsResponse structs for JSON binding

type nutrientsRequest struct {
	Query string `json:"query"`
}

type nutrientsFood struct {
	FoodName    string  `json:"food_name"`
	ServingQty  float64 `json:"serving_qty"`
	ServingUnit string  `json:"serving_unit"`
	NfCalories  float64 `json:"nf_calories"`
	NfProtein   float64 `json:"nf_protein"`
}

type nutrientsResponse struct {
	Foods []nutrientsFood `json:"foods"`
}

// Query sends free text to the nutrients endpoint and returns the resolved
// items in API order. Missing numeric fields decode to 0 and missing names
// are preserved as returned. Transport failures, non-200 statuses and
// malformed bodies all map to model.ErrNutritionUnavailable.
func (c *Client) Query(ctx context.Context, text string) ([]model.ResolvedItem, error) {
	reqBody := nutrientsRequest{Query: text}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/v2/natural/nutrients")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNutritionUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", model.ErrNutritionUnavailable, resp.StatusCode(), resp.String())
	}

	var nr nutrientsResponse
	if err := json.Unmarshal(resp.Body(), &nr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", model.ErrNutritionUnavailable, err)
	}

	items := make([]model.ResolvedItem, 0, len(nr.Foods))
	for _, f := range nr.Foods {
		items = append(items, model.ResolvedItem{
			Name:     f.FoodName,
			Quantity: f.ServingQty,
			Unit:     f.ServingUnit,
			Calories: f.NfCalories,
			ProteinG: f.NfProtein,
		})
	}
	return items, nil
}
