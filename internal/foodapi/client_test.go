package foodapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "banana", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "1", r.URL.Query().Get("json"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 1,
			"page": 1,
			"products": [{
				"code": "3017620422003",
				"product_name": "Banana",
				"brands": "Acme",
				"nutriments": {
					"energy-kcal_100g": 89,
					"proteins_100g": 1.1,
					"carbohydrates_100g": 22.8,
					"fat_100g": 0.3
				}
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Search(context.Background(), "banana", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Foods, 1)
	food := result.Foods[0]
	assert.Equal(t, "Banana", food.Name)
	assert.InDelta(t, 89, food.Nutrients.Calories, 1e-9)
	assert.InDelta(t, 1.1, food.Nutrients.Protein, 1e-9)
}

func TestProduct_ServingValuesScaledTo100g(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/123.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 1,
			"product": {
				"code": "123",
				"product_name": "Granola Bar",
				"serving_quantity": "25",
				"nutriments": {
					"energy-kcal_serving": 110,
					"proteins_serving": 2.5
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	food, err := client.Product(context.Background(), "123")

	require.NoError(t, err)
	// 110 kcal per 25g serving -> 440 kcal per 100g.
	assert.InDelta(t, 440, food.Nutrients.Calories, 1e-9)
	assert.InDelta(t, 10, food.Nutrients.Protein, 1e-9)
}

func TestProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": 0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Product(context.Background(), "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Search(context.Background(), "banana", 1)

	require.Error(t, err)
}

func TestSearch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Search(ctx, "banana", 1)

	require.Error(t, err)
}
