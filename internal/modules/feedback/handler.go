package feedback

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/econlab/hypothesis-core/internal/pkg/github"
	"github.com/econlab/hypothesis-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/feedback")
	g.POST("", h.submit)
	g.GET("/:id", h.list)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if dto.HypothesisID == 0 {
		response.BadRequest(c, "Missing required field: hypothesis_id")
		return
	}

	issue, err := h.svc.Submit(c.Request.Context(), dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"issue_number": issue.Number,
		"issue_url":    issue.HTMLURL,
	})
}

func (h *Handler) list(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	entries, err := h.svc.FetchForHypothesis(c.Request.Context(), uint(id))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"total":   len(entries),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, github.ErrNotConfigured):
		response.ServiceUnavailable(c, "feedback backend is not configured")
	case errors.Is(err, errHypothesisNotFound):
		response.NotFoundMsg(c, "Hypothesis not found")
	default:
		response.InternalError(c, err)
	}
}
