// internal/api/handlers/target_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/bankperf/salesdash/internal/service"
	"github.com/gin-gonic/gin"
)

type TargetHandler struct {
	targetService *service.TargetService
}

func NewTargetHandler(targetService *service.TargetService) *TargetHandler {
	return &TargetHandler{
		targetService: targetService,
	}
}

// ListStaffTargets returns KRA targets, optionally filtered by period and
// period type.
// GET /api/v1/targets?period=YYYY-MM&period_type=monthly
func (h *TargetHandler) ListStaffTargets(c *gin.Context) {
	period := c.Query("period")
	periodType := domain.PeriodType(c.DefaultQuery("period_type", string(domain.PeriodMonthly)))

	targets, err := h.targetService.ListStaffTargets(c.Request.Context(), period, periodType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"targets": targets, "count": len(targets)})
}

// CreateTarget adds a KRA target. Duplicate (employee, metric, period,
// period type) definitions are rejected with 409.
// POST /api/v1/targets
func (h *TargetHandler) CreateTarget(c *gin.Context) {
	var target domain.Target
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.targetService.CreateTarget(c.Request.Context(), &target); err != nil {
		if errors.Is(err, repository.ErrDuplicateTarget) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, target)
}

// UpdateTarget changes an existing KRA target's value.
// PUT /api/v1/targets/:id
func (h *TargetHandler) UpdateTarget(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return
	}
	var target domain.Target
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target.ID = id
	if err := h.targetService.UpdateTarget(c.Request.Context(), &target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, target)
}

// DeleteTarget removes a KRA target.
// DELETE /api/v1/targets/:id
func (h *TargetHandler) DeleteTarget(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return
	}
	if err := h.targetService.DeleteTarget(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ListBranchTargets returns branch-level targets for a month.
// GET /api/v1/branch-targets?period=YYYY-MM
func (h *TargetHandler) ListBranchTargets(c *gin.Context) {
	targets, err := h.targetService.ListBranchTargets(c.Request.Context(), c.Query("period"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch_targets": targets, "count": len(targets)})
}

// UpsertBranchTarget creates or replaces a branch target for
// (branch, metric, period).
// PUT /api/v1/branch-targets
func (h *TargetHandler) UpsertBranchTarget(c *gin.Context) {
	var target domain.BranchTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.targetService.UpsertBranchTarget(c.Request.Context(), &target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, target)
}

// DeleteBranchTarget removes a branch target.
// DELETE /api/v1/branch-targets/:id
func (h *TargetHandler) DeleteBranchTarget(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch target id"})
		return
	}
	if err := h.targetService.DeleteBranchTarget(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "branch target not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
