package transcribe

import "context"

// Provider converts one audio blob into text.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, name string) (string, error)
}
