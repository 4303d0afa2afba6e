package applications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/sessions"
	"jobboard-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the application service.
type Handler struct {
	Svc     *Service
	Archive Repo
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, archive Repo) *Handler {
	return &Handler{Svc: svc, Archive: archive}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications/submit", h.submit)
	rg.GET("/applications", h.list)
}

func (h *Handler) submit(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session_id is required", nil)
		return
	}
	c.Set("sessionId", sessionID)

	result, err := h.Svc.Submit(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		return
	}

	respond.OK(c, result)
}

func (h *Handler) list(c *gin.Context) {
	jobID := c.Query("job_id")

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	apps, err := h.Archive.List(c.Request.Context(), jobID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}

	respond.OK(c, gin.H{"applications": apps, "count": len(apps)})
}
