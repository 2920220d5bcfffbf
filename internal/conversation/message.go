package conversation

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single turn in a booking conversation. The transcript is
// owned by the caller; the engine only reads it.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
