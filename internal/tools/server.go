package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/sessions"
)

const serverName = "internal-mobility-assistant"

const instructions = `You are a supportive AI career coach helping employees explore internal opportunities within their organization.

Your role is to:
1. Help employees articulate their transferable skills and experience
2. Reduce anxiety about applying for internal positions
3. Encourage professional growth and career development
4. Guide them through the application process with warmth and professionalism

Be warm, encouraging, and professional. Help them recognize their value and potential.
Remember that they already work for the company, so focus on their growth journey and transferable skills.

When they share information:
- Use update_application_field to save their responses in real-time
- Always be positive and help them see their strengths
- Provide encouragement and constructive feedback

Start by asking about the position they're interested in and what excites them about it.`

// NewMCPServer builds the MCP server with every tool operation registered.
func NewMCPServer(svc *Service, version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(false),
	)

	s.AddTool(mcp.NewTool("get_job_details",
		mcp.WithDescription("Get details about an internal position to provide context for the conversation."),
		mcp.WithString("job_id", mcp.Required(), mcp.Description("The ID of the internal position")),
	), svc.handleGetJobDetails)

	s.AddTool(mcp.NewTool("update_application_field",
		mcp.WithDescription("Update a specific field in the job application form in real-time as the candidate provides information."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session ID for this application")),
		mcp.WithString("field_name", mcp.Required(), mcp.Description("The field to update (name, email, phone, experience, skills, motivation)")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value to set for the field")),
	), svc.handleUpdateApplicationField)

	s.AddTool(mcp.NewTool("submit_key_skills",
		mcp.WithDescription("Record the candidate's key skills for the application."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session ID for this application")),
		mcp.WithString("skills_text", mcp.Required(), mcp.Description("The candidate's key skills")),
	), svc.handleSubmitKeySkills)

	s.AddTool(mcp.NewTool("submit_personal_statement",
		mcp.WithDescription("Record the candidate's personal statement for the application."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session ID for this application")),
		mcp.WithString("statement_text", mcp.Required(), mcp.Description("The candidate's personal statement")),
	), svc.handleSubmitPersonalStatement)

	s.AddTool(mcp.NewTool("submit_application",
		mcp.WithDescription("Submit the completed application for the internal position."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session ID for this application")),
	), svc.handleSubmitApplication)

	s.AddTool(mcp.NewTool("get_application_status",
		mcp.WithDescription("Check which application fields are filled and how complete the application is."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session ID for this application")),
	), svc.handleApplicationStatus)

	s.AddTool(mcp.NewTool("get_encouragement",
		mcp.WithDescription("Provide contextual encouragement during the application process."),
		mcp.WithString("context", mcp.Description("The context for encouragement (e.g. nervous, unsure, excited)")),
	), svc.handleEncouragement)

	return s
}

// NewSSEServer wraps the MCP server in its SSE transport.
func NewSSEServer(s *server.MCPServer, baseURL string) *server.SSEServer {
	return server.NewSSEServer(s, server.WithBaseURL(baseURL))
}

func (s *Service) handleGetJobDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := req.RequireString("job_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	job, err := s.GetJobDetails(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return mcp.NewToolResultError("job not found: " + jobID), nil
		}
		return mcp.NewToolResultError("failed to load job: " + err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"job":     job,
		"message": "I've reviewed the position details. This looks like an exciting opportunity! What aspects of this role appeal most to you?",
	})
}

func (s *Service) handleUpdateApplicationField(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fieldName, err := req.RequireString("field_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.writeFieldResult(ctx, sessionID, fieldName, value)
}

func (s *Service) handleSubmitKeySkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("skills_text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.writeFieldResult(ctx, sessionID, FieldSkills, text)
}

func (s *Service) handleSubmitPersonalStatement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("statement_text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.writeFieldResult(ctx, sessionID, FieldStatement, text)
}

func (s *Service) writeFieldResult(ctx context.Context, sessionID, fieldName, value string) (*mcp.CallToolResult, error) {
	if err := s.WriteField(ctx, sessionID, fieldName, value); err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return mcp.NewToolResultError("session not found: " + sessionID), nil
		}
		return mcp.NewToolResultError("failed to update field: " + err.Error()), nil
	}
	return jsonResult(map[string]any{
		"success":    true,
		"field_name": fieldName,
		"message":    AcknowledgeField(fieldName),
	})
}

func (s *Service) handleSubmitApplication(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.SubmitApplication(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return mcp.NewToolResultError("session not found: " + sessionID), nil
		}
		return mcp.NewToolResultError("failed to submit application: " + err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success":        result.Success,
		"application_id": result.ApplicationID,
		"message":        "Congratulations! Your application has been submitted successfully. The hiring team will review your application and reach out soon. Best of luck!",
		"next_steps":     "You'll receive an email confirmation shortly. The hiring manager typically responds within 3-5 business days.",
	})
}

func (s *Service) handleApplicationStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status, err := s.ApplicationStatus(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return mcp.NewToolResultError("session not found: " + sessionID), nil
		}
		return mcp.NewToolResultError("failed to load status: " + err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"status":  status,
	})
}

func (s *Service) handleEncouragement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("context", "general")
	return jsonResult(map[string]any{
		"success": true,
		"message": s.Encouragement(topic),
		"context": topic,
	})
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
