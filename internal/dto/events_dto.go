package dto

// Payloads carried on the in-process event bus.

type ChatTurnCompletedMessage struct {
	UserId        string `json:"userId"`
	ChatSessionId string `json:"chatSessionId"`
	Fallback      bool   `json:"fallback"`
}

type NoteChunkAppendedMessage struct {
	UserId string `json:"userId"`
	NoteId string `json:"noteId"`
}
