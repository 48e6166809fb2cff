// internal/api/handlers/metric_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/bankperf/salesdash/internal/service"
	"github.com/gin-gonic/gin"
)

type MetricHandler struct {
	metricService *service.MetricService
}

func NewMetricHandler(metricService *service.MetricService) *MetricHandler {
	return &MetricHandler{metricService: metricService}
}

// ListMetrics returns the metric catalog in registration order.
// GET /api/v1/metrics
func (h *MetricHandler) ListMetrics(c *gin.Context) {
	metrics, err := h.metricService.ListMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics, "count": len(metrics)})
}

// UpsertMetric creates or replaces a catalog entry by name.
// PUT /api/v1/metrics
func (h *MetricHandler) UpsertMetric(c *gin.Context) {
	var metric domain.ProductMetric
	if err := c.ShouldBindJSON(&metric); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.metricService.UpsertMetric(c.Request.Context(), &metric); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, metric)
}

// DeleteMetric removes a catalog entry by name.
// DELETE /api/v1/metrics/:name
func (h *MetricHandler) DeleteMetric(c *gin.Context) {
	if err := h.metricService.DeleteMetric(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("name")})
}
