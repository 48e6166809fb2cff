// internal/api/handlers/achievement_handler.go
package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AchievementHandler struct {
	achievementService *service.AchievementService
}

func NewAchievementHandler(achievementService *service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// ListRows returns the raw achievement rows for a month.
// GET /api/v1/achievements?month=YYYY-MM
func (h *AchievementHandler) ListRows(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required"})
		return
	}

	rows, err := h.achievementService.ListRows(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

// Submit accepts one day's figures for one staff member. Grand totals are
// recomputed server-side, so clients cannot submit inconsistent totals.
// POST /api/v1/achievements
func (h *AchievementHandler) Submit(c *gin.Context) {
	var row domain.AchievementRow
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.achievementService.Submit(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Upload handles achievement file uploads for processing
func (h *AchievementHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	uploadedFiles := make([]*domain.UploadedFile, 0, len(files))
	for _, file := range files {
		// Save the uploaded file temporarily
		filePath := filepath.Join("data/uploads", file.Filename)
		if err := c.SaveUploadedFile(file, filePath); err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
			continue
		}

		uploadedFiles = append(uploadedFiles, &domain.UploadedFile{
			Filename: file.Filename,
			Path:     filePath,
			Size:     file.Size,
		})
	}

	if len(uploadedFiles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid files to process"})
		return
	}

	// Process files in the background
	go func() {
		_, err := h.achievementService.ImportFiles(context.Background(), uploadedFiles)
		if err != nil {
			log.Error().Err(err).Msg("failed to import achievement files")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "files are being processed",
		"count":   len(uploadedFiles),
	})
}
