package llm

// Message represents one chat message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles used in report requests. Every request is exactly two messages:
// a system prompt followed by the user content.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ReportMessages builds the fixed two-message sequence for a report request.
func ReportMessages(systemPrompt, userContent string) []Message {
	return []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: userContent},
	}
}

// Request parameters shared by the REST backends.
const (
	MaxTokens   = 4000
	Temperature = 0.7
	TopP        = 1
)
