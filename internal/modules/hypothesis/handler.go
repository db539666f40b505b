package hypothesis

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/econlab/hypothesis-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/hypotheses")
	g.GET("", h.list)
	g.GET("/stats", h.stats)
	g.GET("/export", h.exportCSV)
	g.POST("/generate", h.generate)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	var filters ListFilters
	filters.Category = c.Query("category")
	filters.Search = c.Query("search")
	if raw := c.Query("min_confidence"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "min_confidence must be an integer")
			return
		}
		filters.MinConfidence = &v
	}

	items, err := h.svc.List(filters)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"total":   len(items),
	})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.svc.GetByID(id)
	if err != nil {
		if errors.Is(err, errHypothesisNotFound) {
			response.NotFoundMsg(c, "Hypothesis not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *Handler) generate(c *gin.Context) {
	var dto GenerateDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	saved, err := h.svc.Generate(c.Request.Context(), dto.Count)
	if err != nil {
		if errors.Is(err, errBadGeneration) {
			response.BadGateway(c, "generation backend returned malformed output")
			return
		}
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    saved,
		"message": fmt.Sprintf("%d 件の新しい仮説を生成しました", len(saved)),
	})
}

func (h *Handler) stats(c *gin.Context) {
	data, err := h.svc.Stats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		if errors.Is(err, errHypothesisNotFound) {
			response.NotFoundMsg(c, "Hypothesis not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "仮説を削除しました"})
}

func (h *Handler) exportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename=hypotheses.csv`)
	if err := h.svc.WriteCSV(c.Writer); err != nil {
		response.InternalError(c, err)
		return
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
