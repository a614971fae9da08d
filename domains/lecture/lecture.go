package lecture

import (
	"context"
	"errors"
)

type Kind string

const (
	KindNotes      Kind = "notes"
	KindTranscript Kind = "transcript"
)

// Kinds lists every request kind the service can generate.
var Kinds = []Kind{KindNotes, KindTranscript}

var (
	// ErrMediaNotFound means the lecture page had no discoverable audio link.
	ErrMediaNotFound = errors.New("could not find MP3 link on the page")
	// ErrGenerationBlocked means the model returned no usable content.
	ErrGenerationBlocked = errors.New("generation returned no usable content")
)

type ProcessRequest struct {
	URL  string `json:"url"`
	Type Kind   `json:"type"`
}

type ProcessResponse struct {
	Notes  string `json:"notes"`
	Cached bool   `json:"cached"`
}

type NormalizeResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	NotesKey string `json:"notes_key"`
}

// MediaResolver finds the audio file behind a lecture page.
type MediaResolver interface {
	Resolve(ctx context.Context, pageURL string) (string, error)
}

// Generator submits a local audio file plus an instruction prompt to the
// model and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, audioPath string, prompt string) (string, error)
}

type IProcessUsecase interface {
	Process(ctx context.Context, request ProcessRequest) (ProcessResponse, error)
	Normalize(ctx context.Context, rawURL string) (NormalizeResponse, error)
}
