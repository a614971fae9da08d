package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// unprocessableReply is what the prompts ask the model to answer when it
// cannot hear the audio.
const unprocessableReply = "ERROR: Unable to process audio file."

const audioMIMEType = "audio/mpeg"

type Config struct {
	APIKey string
	// Models are tried in order; a blocked answer stops the fallback.
	Models       []string
	PollInterval time.Duration
	PollAttempts int
}

type Client struct {
	client       *genai.Client
	models       []string
	pollInterval time.Duration
	pollAttempts int
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if len(cfg.Models) == 0 {
		return nil, errors.New("gemini model list is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = 30
	}

	return &Client{
		client:       client,
		models:       cfg.Models,
		pollInterval: cfg.PollInterval,
		pollAttempts: cfg.PollAttempts,
	}, nil
}

// Generate uploads the audio file, waits until Gemini has processed it and
// asks each configured model in turn for a response to prompt.
// Returns an error wrapping domainLecture.ErrGenerationBlocked when the model
// answered without usable text.
func (c *Client) Generate(ctx context.Context, audioPath string, prompt string) (string, error) {
	logrus.Infof("[GEMINI] uploading %s", audioPath)
	file, err := c.client.Files.UploadFromPath(ctx, audioPath, &genai.UploadFileConfig{
		MIMEType:    audioMIMEType,
		DisplayName: "yutorah_shiur.mp3",
	})
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}
	defer c.deleteRemote(file.Name)

	file, err = waitForActive(ctx, func(ctx context.Context, name string) (*genai.File, error) {
		return c.client.Files.Get(ctx, name, nil)
	}, file, c.pollInterval, c.pollAttempts)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, model := range c.models {
		logrus.Infof("[GEMINI] generating with %s", model)
		text, err := c.generate(ctx, model, file, prompt)
		if err == nil {
			return text, nil
		}
		if errors.Is(err, domainLecture.ErrGenerationBlocked) || ctx.Err() != nil {
			return "", err
		}
		logrus.WithError(err).Warnf("[GEMINI] model %s failed", model)
		lastErr = err
	}
	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (c *Client) generate(ctx context.Context, model string, file *genai.File, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, file.MIMEType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, model, contents, generationConfig())
	if err != nil {
		return "", err
	}
	return extractText(result)
}

func generationConfig() *genai.GenerateContentConfig {
	blockNone := func(category genai.HarmCategory) *genai.SafetySetting {
		return &genai.SafetySetting{Category: category, Threshold: genai.HarmBlockThresholdBlockNone}
	}
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		TopP:            genai.Ptr[float32](0.9),
		MaxOutputTokens: 65000,
		SafetySettings: []*genai.SafetySetting{
			blockNone(genai.HarmCategoryHarassment),
			blockNone(genai.HarmCategoryHateSpeech),
			blockNone(genai.HarmCategoryDangerousContent),
			blockNone(genai.HarmCategorySexuallyExplicit),
		},
	}
}

// extractText returns the model text or ErrGenerationBlocked when there is none.
func extractText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", fmt.Errorf("%w: empty response", domainLecture.ErrGenerationBlocked)
	}
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("%w: prompt blocked (%s)", domainLecture.ErrGenerationBlocked, fb.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", domainLecture.ErrGenerationBlocked)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		reason := result.Candidates[0].FinishReason
		return "", fmt.Errorf("%w: empty text (finish reason %q)", domainLecture.ErrGenerationBlocked, reason)
	}
	if strings.HasPrefix(text, unprocessableReply) {
		return "", fmt.Errorf("%w: model could not process the audio", domainLecture.ErrGenerationBlocked)
	}
	return text, nil
}

type fileGetter func(ctx context.Context, name string) (*genai.File, error)

// waitForActive polls until the uploaded file leaves the PROCESSING state.
func waitForActive(ctx context.Context, get fileGetter, file *genai.File, interval time.Duration, attempts int) (*genai.File, error) {
	for i := 0; i < attempts; i++ {
		switch file.State {
		case genai.FileStateActive:
			return file, nil
		case genai.FileStateFailed:
			msg := "unknown reason"
			if file.Error != nil && file.Error.Message != "" {
				msg = file.Error.Message
			}
			return nil, fmt.Errorf("gemini file processing failed: %s", msg)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		next, err := get(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("poll uploaded file: %w", err)
		}
		file = next
	}
	if file.State == genai.FileStateActive {
		return file, nil
	}
	return nil, errors.New("timed out waiting for gemini file processing")
}

func (c *Client) deleteRemote(name string) {
	if name == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := c.client.Files.Delete(ctx, name, nil); err != nil {
		logrus.WithError(err).Warnf("[GEMINI] failed to delete uploaded file %s", name)
	}
}
