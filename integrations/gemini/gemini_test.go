package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestExtractText_OK(t *testing.T) {
	text, err := extractText(textResponse("  ## Notes\n- point  "))
	require.NoError(t, err)
	assert.Equal(t, "## Notes\n- point", text)
}

func TestExtractText_Blocked(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"prompt blocked": {
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			Candidates:     textResponse("ignored").Candidates,
		},
		"empty text": {
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		},
		"sentinel reply": textResponse(`ERROR: Unable to process audio file.`),
	}

	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := extractText(resp)
			assert.ErrorIs(t, err, domainLecture.ErrGenerationBlocked)
		})
	}
}

func TestWaitForActive_PollsUntilActive(t *testing.T) {
	calls := 0
	get := func(_ context.Context, name string) (*genai.File, error) {
		calls++
		state := genai.FileStateProcessing
		if calls == 3 {
			state = genai.FileStateActive
		}
		return &genai.File{Name: name, State: state, URI: "https://files/abc"}, nil
	}

	file, err := waitForActive(context.Background(), get, &genai.File{Name: "files/abc", State: genai.FileStateProcessing}, time.Millisecond, 10)
	require.NoError(t, err)
	assert.Equal(t, genai.FileStateActive, file.State)
	assert.Equal(t, 3, calls)
}

func TestWaitForActive_AlreadyActive(t *testing.T) {
	get := func(context.Context, string) (*genai.File, error) {
		t.Fatal("must not poll an active file")
		return nil, nil
	}
	file, err := waitForActive(context.Background(), get, &genai.File{Name: "files/x", State: genai.FileStateActive}, time.Millisecond, 3)
	require.NoError(t, err)
	assert.Equal(t, "files/x", file.Name)
}

func TestWaitForActive_Failed(t *testing.T) {
	get := func(_ context.Context, name string) (*genai.File, error) {
		return &genai.File{Name: name, State: genai.FileStateFailed, Error: &genai.FileStatus{Message: "bad codec"}}, nil
	}
	_, err := waitForActive(context.Background(), get, &genai.File{Name: "files/x", State: genai.FileStateProcessing}, time.Millisecond, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad codec")
}

func TestWaitForActive_GivesUp(t *testing.T) {
	get := func(_ context.Context, name string) (*genai.File, error) {
		return &genai.File{Name: name, State: genai.FileStateProcessing}, nil
	}
	_, err := waitForActive(context.Background(), get, &genai.File{Name: "files/x", State: genai.FileStateProcessing}, time.Millisecond, 3)
	assert.Error(t, err)
}

func TestWaitForActive_PollError(t *testing.T) {
	boom := errors.New("boom")
	get := func(context.Context, string) (*genai.File, error) { return nil, boom }
	_, err := waitForActive(context.Background(), get, &genai.File{Name: "files/x"}, time.Millisecond, 3)
	assert.ErrorIs(t, err, boom)
}

func TestWaitForActive_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	get := func(context.Context, string) (*genai.File, error) {
		return &genai.File{State: genai.FileStateProcessing}, nil
	}
	_, err := waitForActive(ctx, get, &genai.File{Name: "files/x", State: genai.FileStateProcessing}, time.Hour, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig()
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.2, *cfg.Temperature, 0.0001)
	assert.Equal(t, int32(65000), cfg.MaxOutputTokens)
	assert.Len(t, cfg.SafetySettings, 4)
	for _, s := range cfg.SafetySettings {
		assert.Equal(t, genai.HarmBlockThresholdBlockNone, s.Threshold)
	}
}
