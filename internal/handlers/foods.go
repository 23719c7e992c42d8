package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nutrition-app-server/internal/foodapi"
	"nutrition-app-server/internal/metrics"
	"nutrition-app-server/internal/utils"
)

// FoodHandler proxies lookups against the upstream food-composition database.
type FoodHandler struct {
	Client  *foodapi.Client
	Log     *zap.Logger
	Metrics *metrics.Collector
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(client *foodapi.Client, log *zap.Logger, collector *metrics.Collector) *FoodHandler {
	return &FoodHandler{Client: client, Log: log, Metrics: collector}
}

// SearchFoods searches the upstream food database.
func (h *FoodHandler) SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "Query parameter 'q' is required")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.Client.Search(c.Request.Context(), query, page)
	if err != nil {
		h.Metrics.FoodLookupsTotal.WithLabelValues("error").Inc()
		h.Log.Warn("food search failed", zap.String("query", query), zap.Error(err))
		utils.BadGateway(c, "Food database lookup failed: "+err.Error())
		return
	}

	h.Metrics.FoodLookupsTotal.WithLabelValues("ok").Inc()
	utils.Success(c, "Foods fetched successfully", result)
}

// GetFoodByCode fetches one product by barcode/code.
func (h *FoodHandler) GetFoodByCode(c *gin.Context) {
	code := c.Param("code")

	food, err := h.Client.Product(c.Request.Context(), code)
	if err != nil {
		h.Metrics.FoodLookupsTotal.WithLabelValues("error").Inc()
		h.Log.Warn("food lookup failed", zap.String("code", code), zap.Error(err))
		utils.NotFound(c, "Food not found: "+err.Error())
		return
	}

	h.Metrics.FoodLookupsTotal.WithLabelValues("ok").Inc()
	utils.Success(c, "Food fetched successfully", food)
}
