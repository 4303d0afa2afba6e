package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/relay"
	"jobboard-backend/internal/sessions"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/telemetry"
)

// ErrLLMFailure wraps provider errors so the handler can map them to 502.
type ErrLLMFailure struct {
	Err error
}

func (e ErrLLMFailure) Error() string { return "llm failure: " + e.Err.Error() }
func (e ErrLLMFailure) Unwrap() error { return e.Err }

// Reply is the assistant's answer plus any field values it extracted from the
// candidate's message.
type Reply struct {
	Response     string            `json:"response"`
	FieldUpdates map[string]string `json:"field_updates"`
}

// Service drives the text-chat skin: it asks the model for a reply and a set
// of field updates, writes each update into the registry, and publishes it on
// the relay so the open form fills in live.
type Service struct {
	LLM      llm.Client
	Sessions sessions.Repo
	Relay    relay.Relay
}

// NewService constructs a Service.
func NewService(client llm.Client, sessionRepo sessions.Repo, r relay.Relay) *Service {
	return &Service{LLM: client, Sessions: sessionRepo, Relay: r}
}

// Input carries one chat turn with its job context.
type Input struct {
	SessionID  string
	Message    string
	JobID      string
	JobTitle   string
	Department string
	History    []llm.Message
}

// Respond runs one chat turn. The session must exist before any field is
// written; a missing session surfaces sessions.ErrNotFound.
func (s *Service) Respond(ctx context.Context, in Input) (Reply, error) {
	if _, err := s.Sessions.Get(ctx, in.SessionID); err != nil {
		return Reply{}, err
	}

	messages := make([]llm.Message, 0, len(in.History)+1)
	messages = append(messages, in.History...)
	messages = append(messages, llm.Message{Role: "user", Content: in.Message})

	started := metrics.NowMillis()
	raw, err := s.LLM.Complete(ctx, systemPrompt(in.JobTitle, in.Department), messages)
	metrics.ObserveChatDurationMs(metrics.NowMillis() - started)
	if err != nil {
		return Reply{}, ErrLLMFailure{Err: err}
	}

	reply := parseReply(raw)
	for field, value := range reply.FieldUpdates {
		if err := s.Sessions.SetField(ctx, in.SessionID, field, value); err != nil {
			telemetry.Error("chat.set_field_failed", map[string]any{
				"session_id": in.SessionID,
				"field_name": field,
				"error":      err.Error(),
			})
			continue
		}
		ev := relay.NewFieldUpdate(in.SessionID, field, value)
		if err := s.Relay.Publish(ctx, ev); err != nil {
			telemetry.Error("chat.publish_failed", map[string]any{
				"session_id": in.SessionID,
				"field_name": field,
				"error":      err.Error(),
			})
			continue
		}
		metrics.IncFieldUpdatesPublished()
	}

	return reply, nil
}

// parseReply expects the model to answer with a JSON envelope but tolerates
// prose around it; when no envelope can be recovered the whole output becomes
// the response text.
func parseReply(raw string) Reply {
	var reply Reply
	if err := json.Unmarshal([]byte(raw), &reply); err == nil && reply.Response != "" {
		return normalized(reply)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &reply); err == nil && reply.Response != "" {
			return normalized(reply)
		}
	}

	return Reply{Response: strings.TrimSpace(raw), FieldUpdates: map[string]string{}}
}

func normalized(reply Reply) Reply {
	if reply.FieldUpdates == nil {
		reply.FieldUpdates = map[string]string{}
	}
	return reply
}

func systemPrompt(jobTitle, department string) string {
	return fmt.Sprintf(`You are a supportive AI career coach helping an employee apply for the internal position "%s" in the %s department.

Be warm, encouraging, and professional. Help them articulate their transferable skills and reduce anxiety about internal moves.

As the candidate shares information, extract values for these application fields when present: name, email, phone, experience, skills, motivation.

Always answer with a single JSON object of the form:
{"response": "<your reply to the candidate>", "field_updates": {"<field>": "<value>"}}

Only include fields the candidate actually provided in their latest message. Use an empty object when there is nothing to record.`, jobTitle, department)
}
