package sessions

import "time"

const (
	StatusOpen      = "open"
	StatusSubmitted = "submitted"
)

// Session ties one application attempt to one browser tab and one job posting.
// Fields holds whatever keys a writer supplied; the registry does not validate
// field names against a fixed vocabulary.
type Session struct {
	ID        string            `json:"session_id"`
	JobID     string            `json:"job_id"`
	UserAgent string            `json:"user_agent,omitempty"`
	Fields    map[string]string `json:"fields"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// RequiredFields are the fields counted toward completion percentage.
var RequiredFields = []string{"name", "email", "phone"}

// Completion reports how far along an application is, as a percentage of the
// required fields that have a value.
func Completion(fields map[string]string) (float64, []string) {
	filled := make([]string, 0, len(RequiredFields))
	for _, name := range RequiredFields {
		if fields[name] != "" {
			filled = append(filled, name)
		}
	}
	return float64(len(filled)) / float64(len(RequiredFields)) * 100, filled
}
