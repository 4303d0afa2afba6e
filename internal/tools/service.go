// Package tools exposes the named operations the external AI tool-caller may
// invoke. Every operation is a thin wrapper: a read or write against the
// session registry followed, for writes, by a publish on the update relay.
package tools

import (
	"context"

	"jobboard-backend/internal/applications"
	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/relay"
	"jobboard-backend/internal/sessions"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/telemetry"
)

// Fixed-field tool variants write to these keys.
const (
	FieldSkills    = "skills"
	FieldStatement = "motivation"
)

// Service implements the tool operations against the shared store.
type Service struct {
	Jobs         jobs.Repo
	Sessions     sessions.Repo
	Relay        relay.Relay
	Applications *applications.Service
}

// NewService constructs a Service.
func NewService(jobsRepo jobs.Repo, sessionRepo sessions.Repo, r relay.Relay, apps *applications.Service) *Service {
	return &Service{Jobs: jobsRepo, Sessions: sessionRepo, Relay: r, Applications: apps}
}

// GetJobDetails looks a posting up for conversational context.
func (s *Service) GetJobDetails(ctx context.Context, jobID string) (jobs.Job, error) {
	metrics.IncToolCalls()
	return s.Jobs.Get(ctx, jobID)
}

// WriteField stores one field value and relays it to the session's open
// connections. The publish never happens when the registry write fails, so a
// browser can only ever see values that actually landed in the store. Relay
// failures after a successful write are logged and swallowed: delivery is
// best-effort by contract.
func (s *Service) WriteField(ctx context.Context, sessionID, fieldName, value string) error {
	metrics.IncToolCalls()

	if err := s.Sessions.SetField(ctx, sessionID, fieldName, value); err != nil {
		return err
	}

	ev := relay.NewFieldUpdate(sessionID, fieldName, value)
	if err := s.Relay.Publish(ctx, ev); err != nil {
		telemetry.Error("tools.publish_failed", map[string]any{
			"session_id": sessionID,
			"field_name": fieldName,
			"error":      err.Error(),
		})
		return nil
	}
	metrics.IncFieldUpdatesPublished()
	return nil
}

// SubmitApplication finalizes the session's application.
func (s *Service) SubmitApplication(ctx context.Context, sessionID string) (applications.Result, error) {
	metrics.IncToolCalls()
	return s.Applications.Submit(ctx, sessionID)
}

// Status is the completion snapshot returned to the tool caller.
type Status struct {
	SessionID            string            `json:"session_id"`
	JobID                string            `json:"job_id"`
	Status               string            `json:"status"`
	Fields               map[string]string `json:"fields"`
	CompletionPercentage float64           `json:"completion_percentage"`
	FilledFields         []string          `json:"filled_fields"`
	RequiredFields       []string          `json:"required_fields"`
}

// ApplicationStatus reports how far along a session's application is.
func (s *Service) ApplicationStatus(ctx context.Context, sessionID string) (Status, error) {
	metrics.IncToolCalls()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return Status{}, err
	}
	completion, filled := sessions.Completion(sess.Fields)
	return Status{
		SessionID:            sess.ID,
		JobID:                sess.JobID,
		Status:               sess.Status,
		Fields:               sess.Fields,
		CompletionPercentage: completion,
		FilledFields:         filled,
		RequiredFields:       sessions.RequiredFields,
	}, nil
}

var encouragements = map[string]string{
	"nervous":    "It's completely natural to feel nervous about internal moves. Remember, your company values your growth and wants to see you succeed. You already know the culture and have proven yourself here.",
	"unsure":     "It's okay to explore opportunities even if you're not 100% sure. This conversation is about discovering if this role aligns with your goals. There's no pressure - just be yourself.",
	"excited":    "Your enthusiasm is wonderful! That positive energy will really come through in your application. Let's channel that excitement into showcasing your strengths.",
	"general":    "You're doing great! Remember, applying for internal positions shows initiative and ambition. Your company wants to retain talented people like you.",
	"experience": "Every role you've had has given you valuable skills. Even experiences that seem unrelated often provide transferable skills that are highly valuable.",
	"skills":     "Don't underestimate your abilities. The skills you use daily in your current role are valuable assets. Let's identify how they apply to this new opportunity.",
}

// Encouragement returns a contextual supportive message for the assistant.
func (s *Service) Encouragement(context string) string {
	metrics.IncToolCalls()
	if msg, ok := encouragements[context]; ok {
		return msg
	}
	return encouragements["general"]
}

var fieldAcknowledgements = map[string]string{
	"name":       "Thank you! It's great to connect with you.",
	"email":      "Perfect, I've noted your contact information.",
	"phone":      "Got it, thank you for providing that.",
	"experience": "That's excellent experience! Your background really aligns well with this role.",
	"skills":     "Those are impressive skills! They'll definitely be valuable in this position.",
	"motivation": "I can really feel your enthusiasm! Your passion for this role comes through clearly.",
}

// AcknowledgeField returns the assistant-facing confirmation for a field write.
func AcknowledgeField(fieldName string) string {
	if msg, ok := fieldAcknowledgements[fieldName]; ok {
		return msg
	}
	return "Thank you for sharing that with me!"
}
