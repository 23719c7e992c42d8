// Package foodapi is a small client for an Open Food Facts compatible
// food-composition API. Lookups are read-only and results are normalized to
// per-100g nutrient values before they reach the rest of the application.
package foodapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Nutrients holds macronutrient values normalized to 100g of product.
type Nutrients struct {
	Calories float64 `json:"calories"` // kcal
	Protein  float64 `json:"protein"`  // g
	Carbs    float64 `json:"carbs"`    // g
	Fat      float64 `json:"fat"`      // g
	Fiber    float64 `json:"fiber"`    // g
	Sodium   float64 `json:"sodium"`   // g
}

// Food is one product returned by the upstream database.
type Food struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand,omitempty"`
	Nutrients Nutrients `json:"nutrients"`
}

// SearchResult is a page of food search matches.
type SearchResult struct {
	Count int    `json:"count"`
	Page  int    `json:"page"`
	Foods []Food `json:"foods"`
}

// Client talks to the upstream food database.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client against the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// upstream wire format; nutriments is an open map whose keys carry the unit
// basis ("_100g" vs "_serving") in the key name.
type rawProduct struct {
	Code            string         `json:"code"`
	ProductName     string         `json:"product_name"`
	Brands          string         `json:"brands"`
	ServingQuantity any            `json:"serving_quantity"`
	Nutriments      map[string]any `json:"nutriments"`
}

type searchResponse struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	Products []rawProduct `json:"products"`
}

type productResponse struct {
	Status  int        `json:"status"`
	Product rawProduct `json:"product"`
}

// Search queries the upstream database for foods matching the given terms.
func (c *Client) Search(ctx context.Context, terms string, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("search_terms", terms)
	q.Set("json", "1")
	q.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.getJSON(ctx, "/cgi/search.pl?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("food search %q: %w", terms, err)
	}

	result := &SearchResult{Count: resp.Count, Page: resp.Page, Foods: make([]Food, 0, len(resp.Products))}
	for _, p := range resp.Products {
		result.Foods = append(result.Foods, p.normalize())
	}
	return result, nil
}

// Product fetches one product by its barcode/code.
func (c *Client) Product(ctx context.Context, code string) (*Food, error) {
	var resp productResponse
	if err := c.getJSON(ctx, "/api/v2/product/"+url.PathEscape(code)+".json", &resp); err != nil {
		return nil, fmt.Errorf("food product %q: %w", code, err)
	}
	if resp.Status != 1 {
		return nil, fmt.Errorf("food product %q: not found", code)
	}
	food := resp.Product.normalize()
	return &food, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// normalize maps the upstream nutriment bag onto per-100g values. The per-100g
// key is preferred; when only a per-serving value exists it is scaled up using
// the serving quantity in grams.
func (p rawProduct) normalize() Food {
	return Food{
		Code:  p.Code,
		Name:  p.ProductName,
		Brand: p.Brands,
		Nutrients: Nutrients{
			Calories: p.per100g("energy-kcal"),
			Protein:  p.per100g("proteins"),
			Carbs:    p.per100g("carbohydrates"),
			Fat:      p.per100g("fat"),
			Fiber:    p.per100g("fiber"),
			Sodium:   p.per100g("sodium"),
		},
	}
}

func (p rawProduct) per100g(nutrient string) float64 {
	if v, ok := asFloat(p.Nutriments[nutrient+"_100g"]); ok {
		return v
	}
	serving, ok := asFloat(p.ServingQuantity)
	if !ok || serving <= 0 {
		return 0
	}
	if v, ok := asFloat(p.Nutriments[nutrient+"_serving"]); ok {
		return v * 100 / serving
	}
	return 0
}

// asFloat tolerates the upstream habit of sending numbers as strings.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
