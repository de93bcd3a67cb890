package transcribe

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Chunk is one audio fragment of an upload, in submission order.
type Chunk struct {
	Name        string
	ContentType string
	Audio       []byte
}

// Assembler fans chunk transcriptions out in parallel and reassembles the
// transcript strictly by submission index. Each chunk gets its own bounded
// retry loop; a chunk that still fails after MaxAttempts contributes nothing
// rather than failing the whole upload.
type Assembler struct {
	provider    Provider
	maxAttempts int
	retryDelay  time.Duration
}

func NewAssembler(provider Provider, maxAttempts int, retryDelay time.Duration) *Assembler {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Assembler{
		provider:    provider,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// TranscribeAll returns the combined transcript: per-chunk results in
// submission order, empty results skipped, joined by single spaces.
func (a *Assembler) TranscribeAll(ctx context.Context, chunks []Chunk) string {
	results := make([]string, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(idx int, c Chunk) {
			defer wg.Done()
			results[idx] = a.transcribeWithRetry(ctx, c)
		}(i, chunk)
	}
	wg.Wait()

	parts := make([]string, 0, len(results))
	for _, r := range results {
		if strings.TrimSpace(r) != "" {
			parts = append(parts, r)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (a *Assembler) transcribeWithRetry(ctx context.Context, chunk Chunk) string {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		text, err := a.provider.Transcribe(ctx, chunk.Audio, chunk.Name)
		if err == nil && text != "" {
			return text
		}
		if attempt == a.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(a.retryDelay):
		}
	}
	return ""
}
