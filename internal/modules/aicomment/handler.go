package aicomment

import (
	"errors"
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
	g := rg.Group("/ai-comment")
	g.POST("/generate/:id", h.generate)
	g.POST("/reply/:id", h.reply)
	g.POST("/auto-trigger/:id", h.autoTrigger)
	g.POST("/batch-process", h.batchProcess)
}

func (h *Handler) generate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.svc.CommentOnHypothesis(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if entry == nil {
		response.InternalError(c, errors.New("Failed to generate AI comment"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "AI comment generated successfully",
		"discussion": entry,
	})
}

func (h *Handler) reply(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.svc.ReplyToComment(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if entry == nil {
		response.InternalError(c, errors.New("Failed to generate AI reply"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "AI reply generated successfully",
		"discussion": entry,
	})
}

func (h *Handler) autoTrigger(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var dto AutoTriggerDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	if !dto.Force && !h.svc.ShouldAutoComment(id) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "AI comment not needed at this time",
			"triggered": false,
		})
		return
	}

	entry, err := h.svc.CommentOnHypothesis(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if entry == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to auto-trigger AI comment",
			"triggered": false,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "AI comment auto-triggered successfully",
		"discussion": entry,
		"triggered":  true,
	})
}

func (h *Handler) batchProcess(c *gin.Context) {
	var dto BatchProcessDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	results := h.svc.BatchProcess(c.Request.Context(), dto.HypothesisIDs)
	c.JSON(http.StatusOK, gin.H{
		"message":         "Batch processing completed",
		"results":         results,
		"total_processed": len(results),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errHypothesisNotFound):
		response.NotFoundMsg(c, "Hypothesis not found")
	case errors.Is(err, errCommentNotFound):
		response.NotFoundMsg(c, "Comment not found")
	default:
		response.InternalError(c, err)
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
