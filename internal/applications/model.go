package applications

import "time"

// Application is the archived record of one submitted session.
type Application struct {
	ID          string            `json:"application_id"`
	SessionID   string            `json:"session_id"`
	JobID       string            `json:"job_id"`
	Fields      map[string]string `json:"fields"`
	SubmittedAt time.Time         `json:"submitted_at"`
}
