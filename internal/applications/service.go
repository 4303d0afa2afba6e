package applications

import (
	"context"
	"errors"
	"time"

	"jobboard-backend/internal/sessions"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/telemetry"
)

// Result is what a submit returns to the caller, whether it was the first
// submit or a repeat.
type Result struct {
	Success          bool   `json:"success"`
	ApplicationID    string `json:"application_id"`
	Message          string `json:"message"`
	AlreadySubmitted bool   `json:"-"`
}

// Service finalizes applications: it flips the session to submitted and
// archives the field snapshot.
type Service struct {
	Sessions sessions.Repo
	Archive  Repo
}

// NewService constructs a Service.
func NewService(sessionRepo sessions.Repo, archive Repo) *Service {
	return &Service{Sessions: sessionRepo, Archive: archive}
}

// Submit transitions the session to submitted and archives its fields.
// Repeat submits succeed idempotently and never touch the stored fields.
func (s *Service) Submit(ctx context.Context, sessionID string) (Result, error) {
	sess, err := s.Sessions.Submit(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrAlreadySubmitted) {
			return Result{
				Success:          true,
				ApplicationID:    applicationID(sess.JobID, sess.ID),
				Message:          "Application already submitted",
				AlreadySubmitted: true,
			}, nil
		}
		return Result{}, err
	}

	app := Application{
		ID:          applicationID(sess.JobID, sess.ID),
		SessionID:   sess.ID,
		JobID:       sess.JobID,
		Fields:      sess.Fields,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.Archive.Create(ctx, app); err != nil {
		return Result{}, err
	}

	metrics.IncApplicationsSubmitted()
	telemetry.Info("application.submitted", map[string]any{
		"session_id":     sess.ID,
		"job_id":         sess.JobID,
		"application_id": app.ID,
	})

	return Result{
		Success:       true,
		ApplicationID: app.ID,
		Message:       "Application submitted successfully",
	}, nil
}

func applicationID(jobID, sessionID string) string {
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	return jobID + "-" + short
}
