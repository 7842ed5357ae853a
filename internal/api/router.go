// Package api assembles the HTTP router from the area handlers.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminapi "github.com/startup-demoday/jurado/internal/api/admin"
	dashboardapi "github.com/startup-demoday/jurado/internal/api/dashboard"
	evaluationsapi "github.com/startup-demoday/jurado/internal/api/evaluations"
	judgesapi "github.com/startup-demoday/jurado/internal/api/judges"
	questionsapi "github.com/startup-demoday/jurado/internal/api/questions"
	"github.com/startup-demoday/jurado/internal/api/middleware"
	"github.com/startup-demoday/jurado/internal/config"
	"github.com/startup-demoday/jurado/internal/repository"
)

// Handlers bundles the area handlers mounted on the router.
type Handlers struct {
	Dashboard   *dashboardapi.Handler
	Evaluations *evaluationsapi.Handler
	Judges      *judgesapi.Handler
	Questions   *questionsapi.Handler
	Admin       *adminapi.Handler
}

// NewRouter builds the gin engine with all routes and middleware attached.
// rateLimiter may be nil when the limiter is disabled.
func NewRouter(
	cfg *config.Config,
	handlers Handlers,
	rateLimiter *middleware.RateLimiter,
	db *repository.DB,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	if rateLimiter != nil {
		router.Use(rateLimiter.Handler())
	}

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "component": "postgres"})
			return
		}
		if rateLimiter != nil {
			if err := rateLimiter.Healthy(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "component": "redis"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard", handlers.Dashboard.GetDashboard)
		v1.GET("/dashboard/judge-stats", handlers.Dashboard.GetJudgeStats)

		v1.POST("/evaluations", handlers.Evaluations.Record)
		v1.GET("/evaluations", handlers.Evaluations.List)

		v1.GET("/projects/:id/questions", handlers.Questions.GetForProject)

		v1.GET("/judges/validate/:token", handlers.Judges.Validate)
		v1.POST("/judges/close-voting", handlers.Judges.CloseVoting)
		v1.GET("/judges/voting-status", handlers.Judges.Status)

		admin := v1.Group("/admin")
		{
			admin.POST("/programs", handlers.Admin.CreateProgram)
			admin.GET("/programs", handlers.Admin.ListPrograms)
			admin.PUT("/programs/:id", handlers.Admin.UpdateProgram)
			admin.DELETE("/programs/:id", handlers.Admin.DeleteProgram)

			admin.POST("/blocks", handlers.Admin.CreateBlock)
			admin.GET("/blocks", handlers.Admin.ListBlocks)
			admin.PUT("/blocks/:id", handlers.Admin.UpdateBlock)
			admin.DELETE("/blocks/:id", handlers.Admin.DeleteBlock)

			admin.POST("/questions", handlers.Admin.CreateQuestion)
			admin.GET("/questions", handlers.Admin.ListQuestions)
			admin.PUT("/questions/:id", handlers.Admin.UpdateQuestion)
			admin.DELETE("/questions/:id", handlers.Admin.DeleteQuestion)

			admin.POST("/teams", handlers.Admin.CreateTeam)
			admin.GET("/teams", handlers.Admin.ListTeams)

			admin.POST("/projects", handlers.Admin.CreateProject)
			admin.GET("/projects", handlers.Admin.ListProjects)
			admin.PUT("/projects/:id", handlers.Admin.UpdateProject)
			admin.DELETE("/projects/:id", handlers.Admin.DeleteProject)

			admin.POST("/judges", handlers.Admin.CreateJudge)
			admin.GET("/judges", handlers.Admin.ListJudges)

			admin.POST("/seed", handlers.Admin.SeedDemoData)
		}
	}

	return router
}
