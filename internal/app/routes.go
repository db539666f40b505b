package app

import (
	"github.com/gin-gonic/gin"

	"github.com/econlab/hypothesis-core/internal/modules/aicomment"
	"github.com/econlab/hypothesis-core/internal/modules/discussion"
	"github.com/econlab/hypothesis-core/internal/modules/feedback"
	"github.com/econlab/hypothesis-core/internal/modules/health"
	"github.com/econlab/hypothesis-core/internal/modules/hypothesis"
	"github.com/econlab/hypothesis-core/internal/pkg/gemini"
	"github.com/econlab/hypothesis-core/internal/pkg/github"
	"github.com/econlab/hypothesis-core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "hypothesis-core",
			"version": "1.0.0",
		})
	})

	geminiClient := gemini.New(a.cfg.Gemini)
	githubClient := github.New(a.cfg.GitHub)

	api := r.Group("/api")
	health.RegisterRoutes(api, db)

	hypothesisSvc := hypothesis.NewService(db, geminiClient, a.logger)
	hypothesis.NewHandler(hypothesisSvc).RegisterRoutes(api)

	discussionSvc := discussion.NewService(db, a.logger)
	discussion.NewHandler(discussionSvc).RegisterRoutes(api)

	aicommentSvc := aicomment.NewService(db, geminiClient, a.logger)
	aicomment.NewHandler(aicommentSvc).RegisterRoutes(api)

	feedbackSvc := feedback.NewService(db, githubClient, a.logger)
	feedback.NewHandler(feedbackSvc).RegisterRoutes(api)
}
