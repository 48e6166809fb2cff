// internal/api/handlers/staff_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/bankperf/salesdash/internal/service"
	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	staffService *service.StaffService
}

func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
	}
}

// ListStaff returns the full roster.
// GET /api/v1/staff
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.staffService.ListStaff(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff, "count": len(staff)})
}

// GetStaff returns one roster entry by employee code.
// GET /api/v1/staff/:employee_code
func (h *StaffHandler) GetStaff(c *gin.Context) {
	staff, err := h.staffService.GetStaff(c.Request.Context(), c.Param("employee_code"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, staff)
}

// CreateStaff adds a roster entry.
// POST /api/v1/staff
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var staff domain.Staff
	if err := c.ShouldBindJSON(&staff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.staffService.CreateStaff(c.Request.Context(), &staff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// UpdateStaff replaces a roster entry. The employee code in the path wins
// over any code in the body.
// PUT /api/v1/staff/:employee_code
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	var staff domain.Staff
	if err := c.ShouldBindJSON(&staff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	staff.EmployeeCode = c.Param("employee_code")
	if err := h.staffService.UpdateStaff(c.Request.Context(), &staff); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaff removes a roster entry and clears dangling reporting links.
// DELETE /api/v1/staff/:employee_code
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	if err := h.staffService.DeleteStaff(c.Request.Context(), c.Param("employee_code")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("employee_code")})
}

// ListBranches returns branch master data.
// GET /api/v1/branches
func (h *StaffHandler) ListBranches(c *gin.Context) {
	branches, err := h.staffService.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches, "count": len(branches)})
}

// UpsertBranch creates or replaces a branch by name.
// PUT /api/v1/branches
func (h *StaffHandler) UpsertBranch(c *gin.Context) {
	var branch domain.Branch
	if err := c.ShouldBindJSON(&branch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.staffService.UpsertBranch(c.Request.Context(), &branch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, branch)
}

// DeleteBranch removes a branch by name.
// DELETE /api/v1/branches/:name
func (h *StaffHandler) DeleteBranch(c *gin.Context) {
	if err := h.staffService.DeleteBranch(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "branch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("name")})
}
