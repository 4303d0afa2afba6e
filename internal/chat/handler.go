package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/sessions"
	"jobboard-backend/internal/shared/server/respond"
)

// Handler wires the chat endpoint to the chat service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

type chatRequest struct {
	SessionID           string        `json:"session_id"`
	Message             string        `json:"message"`
	JobID               string        `json:"job_id"`
	JobTitle            string        `json:"job_title"`
	Department          string        `json:"department"`
	ConversationHistory []llm.Message `json:"conversation_history"`
}

func (h *Handler) chat(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusServiceUnavailable, "chat_unavailable", "chat assistant is not configured", nil)
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.SessionID == "" || req.Message == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session_id and message are required", nil)
		return
	}
	c.Set("sessionId", req.SessionID)
	c.Set("jobId", req.JobID)

	reply, err := h.Svc.Respond(c.Request.Context(), Input{
		SessionID:  req.SessionID,
		Message:    req.Message,
		JobID:      req.JobID,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		History:    req.ConversationHistory,
	})
	if err != nil {
		var llmErr ErrLLMFailure
		switch {
		case errors.Is(err, sessions.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		case errors.As(err, &llmErr):
			respond.Error(c, http.StatusBadGateway, "llm_error", "assistant is temporarily unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process chat message", nil)
		}
		return
	}

	respond.OK(c, reply)
}
