package adaptive

import "context"

// TextGenerator is the text-generation capability the pipeline runs against.
// Implementations fail with an error carrying HTTPStatusCode() on upstream
// non-success.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, user string, temperature float64) (string, error)
}

// SpeechSynthesizer turns passage text into audio bytes. Callers pre-truncate
// to the vendor ceiling.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioStore persists synthesized audio and returns a retrievable URL. The
// pipeline treats the URL as an opaque string.
type AudioStore interface {
	UploadAudio(ctx context.Context, key string, data []byte) (string, error)
}

// ProgressReporter receives per-category completion signals during a batch.
// Reporters must be non-blocking and must never fail the batch.
type ProgressReporter interface {
	ReportCategory(ctx context.Context, category Category, failed bool)
}
