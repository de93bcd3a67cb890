package iotype

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ai-copychat-be/pkg/transcribe"
)

// statusOK is the success code in IoType's response envelope.
const statusOK = 100

// IoTypeProvider posts audio to the IoType speech-to-text service.
type IoTypeProvider struct {
	URL    string
	Token  string
	Client *http.Client
}

var _ transcribe.Provider = &IoTypeProvider{}

func NewIoTypeProvider(url, token string) *IoTypeProvider {
	return &IoTypeProvider{
		URL:   url,
		Token: token,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type transcriptionResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func (p *IoTypeProvider) Transcribe(ctx context.Context, audio []byte, name string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio is empty: %s", name)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("type", "file"); err != nil {
		return "", fmt.Errorf("write form field: %w", err)
	}
	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.URL, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", p.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if parsed.Status != statusOK {
		if parsed.Message != "" {
			return "", fmt.Errorf("transcription rejected: %s", parsed.Message)
		}
		return "", fmt.Errorf("transcription rejected: status %d", parsed.Status)
	}

	return parsed.Result, nil
}
