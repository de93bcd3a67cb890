package dto

// InboundMessage is the normalized shape both transports hand to the
// dispatcher: a stable opaque user identity plus the trimmed message text.
type InboundMessage struct {
	ExternalId string
	Text       string
}

type MenuOption struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Reply is the single response produced for every inbound message. Document
// is set only by the export handler; transports that cannot deliver files
// fall back to the Message text.
type Reply struct {
	Message  string         `json:"message"`
	Buttons  [][]MenuOption `json:"buttons,omitempty"`
	Document []byte         `json:"-"`
	FileName string         `json:"-"`
}

type SendChatRequest struct {
	Text string `json:"text" validate:"required"`
}

type SessionOverviewResponse struct {
	SessionId   string `json:"sessionId"`
	CreatedAt   string `json:"createdAt"`
	FirstPrompt string `json:"firstPrompt"`
}

type SessionHistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SessionHistoryResponse struct {
	SessionId string                  `json:"sessionId"`
	Messages  []SessionHistoryMessage `json:"messages"`
}
