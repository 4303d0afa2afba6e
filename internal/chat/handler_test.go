package chat_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/chat"
	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/relay"
	"jobboard-backend/internal/sessions"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f fakeLLM) Complete(ctx context.Context, system string, messages []llm.Message) (string, error) {
	return f.reply, f.err
}

func newTestRouter(t *testing.T, client llm.Client) (*gin.Engine, sessions.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessionRepo := sessions.NewMemoryRepo()
	sess, err := sessionRepo.Create(context.Background(), "job_001", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	svc := chat.NewService(client, sessionRepo, relay.NewMemoryRelay())

	r := gin.New()
	api := r.Group("/api")
	chat.NewHandler(svc).RegisterRoutes(api)
	return r, sess
}

func postChat(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestChat(t *testing.T) {
	client := fakeLLM{reply: `{"response":"Welcome aboard!","field_updates":{"name":"Ada"}}`}
	r, sess := newTestRouter(t, client)

	rec := postChat(t, r, `{"session_id":"`+sess.ID+`","message":"I'm Ada"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var reply chat.Reply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reply.Response != "Welcome aboard!" {
		t.Fatalf("unexpected response %q", reply.Response)
	}
	if reply.FieldUpdates["name"] != "Ada" {
		t.Fatalf("unexpected field updates: %v", reply.FieldUpdates)
	}
}

func TestChatValidation(t *testing.T) {
	r, _ := newTestRouter(t, fakeLLM{reply: "ok"})

	if rec := postChat(t, r, `{"message":"hi"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing session_id, got %d", rec.Code)
	}
	if rec := postChat(t, r, `not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestChatUnknownSession(t *testing.T) {
	r, _ := newTestRouter(t, fakeLLM{reply: "ok"})

	rec := postChat(t, r, `{"session_id":"missing","message":"hi"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestChatProviderFailure(t *testing.T) {
	r, sess := newTestRouter(t, fakeLLM{err: errors.New("overloaded")})

	rec := postChat(t, r, `{"session_id":"`+sess.ID+`","message":"hi"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChatUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	chat.NewHandler(nil).RegisterRoutes(api)

	rec := postChat(t, r, `{"session_id":"s","message":"hi"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
