// internal/api/handlers/runrate_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/bankperf/salesdash/internal/service"
	"github.com/gin-gonic/gin"
)

type RunRateHandler struct {
	runRateService *service.RunRateService
}

func NewRunRateHandler(runRateService *service.RunRateService) *RunRateHandler {
	return &RunRateHandler{
		runRateService: runRateService,
	}
}

// GetReport serves the run-rate dashboard payload for one subject.
// GET /api/v1/runrate/:employee_code?month=YYYY-MM&as_of=YYYY-MM-DD
func (h *RunRateHandler) GetReport(c *gin.Context) {
	employeeCode := c.Param("employee_code")
	if employeeCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_code is required"})
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	month := c.Query("month")
	if month == "" {
		month = asOf.Format("2006-01")
	}

	report, err := h.runRateService.GetReport(c.Request.Context(), employeeCode, month, asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetScope exposes the resolved visibility set for one subject, mostly for
// troubleshooting hierarchy data.
// GET /api/v1/runrate/:employee_code/scope
func (h *RunRateHandler) GetScope(c *gin.Context) {
	employeeCode := c.Param("employee_code")
	if employeeCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_code is required"})
		return
	}

	scope, err := h.runRateService.GetScope(c.Request.Context(), employeeCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee_code": employeeCode,
		"all_access":    scope.AllAccess,
		"employees":     scope.Employees(),
		"branches":      scope.Branches(),
	})
}
