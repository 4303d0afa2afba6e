package applications_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/applications"
	"jobboard-backend/internal/sessions"
)

func newTestRouter(t *testing.T) (*gin.Engine, sessions.Repo, *applications.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessionRepo := sessions.NewMemoryRepo()
	archive := applications.NewMemoryRepo()
	svc := applications.NewService(sessionRepo, archive)

	r := gin.New()
	api := r.Group("/api")
	applications.NewHandler(svc, archive).RegisterRoutes(api)
	return r, sessionRepo, archive
}

func TestSubmitApplication(t *testing.T) {
	r, sessionRepo, _ := newTestRouter(t)

	sess, err := sessionRepo.Create(context.Background(), "job_001", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/applications/submit?session_id="+sess.ID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result applications.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.ApplicationID == "" {
		t.Fatalf("expected an application id")
	}
}

func TestSubmitApplicationMissingSessionID(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/applications/submit", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSubmitApplicationUnknownSession(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/applications/submit?session_id=missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListApplications(t *testing.T) {
	r, _, archive := newTestRouter(t)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []applications.Application{
		{ID: "job_001-aaaa", SessionID: "aaaa", JobID: "job_001", Fields: map[string]string{"name": "Ada"}, SubmittedAt: now},
		{ID: "job_002-bbbb", SessionID: "bbbb", JobID: "job_002", Fields: map[string]string{"name": "Grace"}, SubmittedAt: now.Add(time.Minute)},
	}
	for _, app := range seed {
		if err := archive.Create(ctx, app); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/applications?job_id=job_002", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Applications []applications.Application `json:"applications"`
		Count        int                        `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Applications) != 1 {
		t.Fatalf("expected one filtered application, got %+v", resp)
	}
	if resp.Applications[0].JobID != "job_002" {
		t.Fatalf("unexpected application: %+v", resp.Applications[0])
	}
}

func TestListApplicationsClampsLimit(t *testing.T) {
	r, _, archive := newTestRouter(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		app := applications.Application{
			ID:          "job_001-" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			JobID:       "job_001",
			SubmittedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := archive.Create(ctx, app); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/applications?limit=500", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 50 {
		t.Fatalf("expected limit clamped to 50, got %d", resp.Count)
	}
}
