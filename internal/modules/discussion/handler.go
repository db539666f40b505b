package discussion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/econlab/hypothesis-core/internal/pkg/pagination"
	"github.com/econlab/hypothesis-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/discussions")
	g.POST("", h.create)
	g.GET("/stats/:id", h.stats)
	// The bare :id route and /stats/:id take a hypothesis id; every other
	// :id route takes a discussion id.
	g.GET("/:id", h.listByHypothesis)
	g.GET("/:id/replies", h.replies)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/like", h.like)
	g.POST("/:id/dislike", h.dislike)
}

func (h *Handler) listByHypothesis(c *gin.Context) {
	hypothesisID, ok := parseID(c)
	if !ok {
		return
	}

	q := pagination.FromContext(c)
	items, meta, err := h.svc.ListByHypothesis(hypothesisID, q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"discussions":  items,
		"total":        meta.Total,
		"pages":        meta.Pages,
		"current_page": meta.CurrentPage,
		"per_page":     meta.PerPage,
		"has_next":     meta.HasNext,
		"has_prev":     meta.HasPrev,
	})
}

func (h *Handler) replies(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	items, err := h.svc.Replies(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replies": items, "total": len(items)})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.svc.Create(dto)
	if err != nil {
		var verr validationError
		if errors.As(err, &verr) {
			response.BadRequest(c, verr.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.svc.Update(id, dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discussion deleted successfully"})
}

func (h *Handler) like(c *gin.Context) {
	h.react(c, h.svc.Like, "Liked successfully")
}

func (h *Handler) dislike(c *gin.Context) {
	h.react(c, h.svc.Dislike, "Disliked successfully")
}

func (h *Handler) react(c *gin.Context, bump func(uint) (int, int, error), message string) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	likes, dislikes, err := bump(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"likes":    likes,
		"dislikes": dislikes,
	})
}

func (h *Handler) stats(c *gin.Context) {
	hypothesisID, ok := parseID(c)
	if !ok {
		return
	}

	data, err := h.svc.Stats(hypothesisID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, errDiscussionNotFound) {
		response.NotFoundMsg(c, "Discussion not found")
		return
	}
	response.InternalError(c, err)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
