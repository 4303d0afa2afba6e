package sessions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the session registry.
type Handler struct {
	Repo         Repo
	Jobs         jobs.Repo
	MCPServerURL string
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo, jobsRepo jobs.Repo, mcpServerURL string) *Handler {
	return &Handler{Repo: repo, Jobs: jobsRepo, MCPServerURL: mcpServerURL}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions/create", h.create)
	rg.GET("/sessions/:id/status", h.status)
}

type createRequest struct {
	JobID     string `json:"job_id"`
	UserAgent string `json:"user_agent"`
}

type createResponse struct {
	SessionID    string `json:"session_id"`
	JobID        string `json:"job_id"`
	MCPServerURL string `json:"mcp_server_url"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.JobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job_id is required", nil)
		return
	}
	c.Set("jobId", req.JobID)

	if _, err := h.Jobs.Get(c.Request.Context(), req.JobID); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load job", nil)
		return
	}

	sess, err := h.Repo.Create(c.Request.Context(), req.JobID, req.UserAgent)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create session", nil)
		return
	}
	c.Set("sessionId", sess.ID)
	metrics.IncSessionsCreated()

	respond.JSON(c, http.StatusCreated, createResponse{
		SessionID:    sess.ID,
		JobID:        sess.JobID,
		MCPServerURL: h.MCPServerURL,
	})
}

type statusResponse struct {
	SessionID            string            `json:"session_id"`
	JobID                string            `json:"job_id"`
	Status               string            `json:"status"`
	ApplicationData      map[string]string `json:"application_data"`
	CompletionPercentage float64           `json:"completion_percentage"`
	FilledFields         []string          `json:"filled_fields"`
	RequiredFields       []string          `json:"required_fields"`
}

func (h *Handler) status(c *gin.Context) {
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	sess, err := h.Repo.Get(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load session", nil)
		return
	}

	completion, filled := Completion(sess.Fields)
	respond.OK(c, statusResponse{
		SessionID:            sess.ID,
		JobID:                sess.JobID,
		Status:               sess.Status,
		ApplicationData:      sess.Fields,
		CompletionPercentage: completion,
		FilledFields:         filled,
		RequiredFields:       RequiredFields,
	})
}
