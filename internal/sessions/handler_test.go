package sessions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/sessions"
)

func newTestRouter(t *testing.T) (*gin.Engine, sessions.Repo, jobs.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jobsRepo := jobs.NewMemoryRepo()
	if err := jobsRepo.Seed(context.Background(), []jobs.Job{{ID: "eng-42", Title: "Engineer", Department: "Platform"}}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	sessionRepo := sessions.NewMemoryRepo()

	r := gin.New()
	api := r.Group("/api")
	sessions.NewHandler(sessionRepo, jobsRepo, "http://tools.example.com").RegisterRoutes(api)
	return r, sessionRepo, jobsRepo
}

func TestCreateSession(t *testing.T) {
	r, _, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{"job_id":"eng-42","user_agent":"test-agent"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/create", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SessionID    string `json:"session_id"`
		JobID        string `json:"job_id"`
		MCPServerURL string `json:"mcp_server_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatalf("expected a session id")
	}
	if resp.JobID != "eng-42" {
		t.Fatalf("expected job id eng-42, got %q", resp.JobID)
	}
	if resp.MCPServerURL != "http://tools.example.com" {
		t.Fatalf("expected mcp server url, got %q", resp.MCPServerURL)
	}
}

func TestCreateSessionUnknownJob(t *testing.T) {
	r, _, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{"job_id":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/create", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateSessionMissingJobID(t *testing.T) {
	r, _, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/create", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionStatus(t *testing.T) {
	r, sessionRepo, _ := newTestRouter(t)

	sess, err := sessionRepo.Create(context.Background(), "eng-42", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := sessionRepo.SetField(context.Background(), sess.ID, "name", "Ada"); err != nil {
		t.Fatalf("set field failed: %v", err)
	}
	if err := sessionRepo.SetField(context.Background(), sess.ID, "email", "ada@example.com"); err != nil {
		t.Fatalf("set field failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID+"/status", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SessionID            string            `json:"session_id"`
		Status               string            `json:"status"`
		ApplicationData      map[string]string `json:"application_data"`
		CompletionPercentage float64           `json:"completion_percentage"`
		FilledFields         []string          `json:"filled_fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != sessions.StatusOpen {
		t.Fatalf("expected open, got %q", resp.Status)
	}
	if resp.ApplicationData["name"] != "Ada" {
		t.Fatalf("expected application data, got %v", resp.ApplicationData)
	}
	if len(resp.FilledFields) != 2 {
		t.Fatalf("expected 2 filled fields, got %v", resp.FilledFields)
	}
}

func TestSessionStatusNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/missing/status", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
