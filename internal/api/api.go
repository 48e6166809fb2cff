// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/bankperf/salesdash/internal/api/handlers"
	"github.com/bankperf/salesdash/internal/api/middleware"
	"github.com/bankperf/salesdash/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	RunRateService     *service.RunRateService
	StaffService       *service.StaffService
	TargetService      *service.TargetService
	MetricService      *service.MetricService
	AchievementService *service.AchievementService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.RunRateService != nil {
			runRateHandler := handlers.NewRunRateHandler(services.RunRateService)
			runRateGroup := apiGroup.Group("/runrate")
			{
				runRateGroup.GET("/:employee_code", runRateHandler.GetReport)
				runRateGroup.GET("/:employee_code/scope", runRateHandler.GetScope)
			}
		}

		if services.StaffService != nil {
			staffHandler := handlers.NewStaffHandler(services.StaffService)
			staffGroup := apiGroup.Group("/staff")
			{
				staffGroup.GET("", staffHandler.ListStaff)
				staffGroup.POST("", staffHandler.CreateStaff)
				staffGroup.GET("/:employee_code", staffHandler.GetStaff)
				staffGroup.PUT("/:employee_code", staffHandler.UpdateStaff)
				staffGroup.DELETE("/:employee_code", staffHandler.DeleteStaff)
			}

			branchGroup := apiGroup.Group("/branches")
			{
				branchGroup.GET("", staffHandler.ListBranches)
				branchGroup.PUT("", staffHandler.UpsertBranch)
				branchGroup.DELETE("/:name", staffHandler.DeleteBranch)
			}
		}

		if services.TargetService != nil {
			targetHandler := handlers.NewTargetHandler(services.TargetService)
			targetGroup := apiGroup.Group("/targets")
			{
				targetGroup.GET("", targetHandler.ListStaffTargets)
				targetGroup.POST("", targetHandler.CreateTarget)
				targetGroup.PUT("/:id", targetHandler.UpdateTarget)
				targetGroup.DELETE("/:id", targetHandler.DeleteTarget)
			}

			branchTargetGroup := apiGroup.Group("/branch-targets")
			{
				branchTargetGroup.GET("", targetHandler.ListBranchTargets)
				branchTargetGroup.PUT("", targetHandler.UpsertBranchTarget)
				branchTargetGroup.DELETE("/:id", targetHandler.DeleteBranchTarget)
			}
		}

		if services.MetricService != nil {
			metricHandler := handlers.NewMetricHandler(services.MetricService)
			metricGroup := apiGroup.Group("/metrics")
			{
				metricGroup.GET("", metricHandler.ListMetrics)
				metricGroup.PUT("", metricHandler.UpsertMetric)
				metricGroup.DELETE("/:name", metricHandler.DeleteMetric)
			}
		}

		if services.AchievementService != nil {
			achievementHandler := handlers.NewAchievementHandler(services.AchievementService)
			achievementGroup := apiGroup.Group("/achievements")
			{
				achievementGroup.GET("", achievementHandler.ListRows)
				achievementGroup.POST("", achievementHandler.Submit)
				achievementGroup.POST("/upload", achievementHandler.Upload)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
