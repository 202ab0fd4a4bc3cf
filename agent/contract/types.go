package contract

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Turn is one message in a conversation. Assistant turns may carry tool
// call requests; tool turns carry the id of the request they answer.
type Turn struct {
	Role       Role              `json:"role"`
	Content    string            `json:"content"`
	ToolCalls  []ToolCallRequest `json:"tool_calls,omitempty"`
	ToolCallID string            `json:"tool_call_id,omitempty"`
}

// ToolCallRequest is produced by the completion API. Arguments is the raw
// JSON object string exactly as the model emitted it.
type ToolCallRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCallResult answers one ToolCallRequest. Content is the JSON-serialized
// handler output fed back to the model as a tool turn.
type ToolCallResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
}

// ToolSpec describes one callable tool to the model. Parameters is a
// JSON-Schema object (type, properties, required).
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// CompletionResponse is one assistant message from the completion API:
// either plain content (terminal) or one or more tool call requests.
type CompletionResponse struct {
	Content   string
	ToolCalls []ToolCallRequest
}
