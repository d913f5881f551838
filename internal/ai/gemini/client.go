package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"resume-tailor/internal/ai"
	"resume-tailor/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	Provider              = "gemini"
	defaultModel          = "gemini-2.5-flash"
	defaultEmbeddingModel = "text-embedding-004"
	defaultMaxRetries     = 2
	defaultMaxLogLength   = 200
)

var sleep = time.Sleep

type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Client implements ai.Completer and ai.Embedder on top of the Google GenAI SDK.
type Client struct {
	models         modelsAPI
	model          string
	embeddingModel string
	maxRetries     int
	maxLogLen      int
	logger         *zap.Logger
}

type Options struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	MaxRetries     int
	MaxLogLength   int
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, opts Options, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClient(c.Models, opts, log), nil
}

func newClient(models modelsAPI, opts Options, log *zap.Logger) *Client {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	embeddingModel := strings.TrimSpace(opts.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Client{
		models:         models,
		model:          model,
		embeddingModel: embeddingModel,
		maxRetries:     maxRetries,
		maxLogLen:      maxLogLen,
		logger:         logger.WithCommonFields(log, Provider, model),
	}
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// CompleteJSON sends the system prompt and user content in JSON response mode.
// Temporary provider errors (429, 5xx) are retried with a linear backoff.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userContent string) (ai.Completion, error) {
	if c == nil || c.models == nil {
		return ai.Completion{}, errors.New("gemini client is not initialized")
	}
	userContent = strings.TrimSpace(userContent)
	if userContent == "" {
		return ai.Completion{}, errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if s := strings.TrimSpace(systemPrompt); s != "" {
		cfg.SystemInstruction = genai.NewContentFromText(s, genai.RoleUser)
	}

	c.logger.Debug("generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(userContent)),
		zap.String("prompt_preview", logger.TruncateForLog(userContent, c.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		if err := ctx.Err(); err != nil {
			return ai.Completion{}, err
		}

		resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(userContent), cfg)
		if err != nil {
			lastErr = fmt.Errorf("generate content: %w", err)
			if !isTemporary(err) {
				return ai.Completion{}, lastErr
			}
			c.logger.Warn("generate content failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}

		text := responseText(resp)
		if text == "" {
			return ai.Completion{}, ai.ErrEmptyResponse
		}

		out := ai.Completion{Text: text}
		if resp.UsageMetadata != nil {
			out.TokenUsage = int(resp.UsageMetadata.TotalTokenCount)
		}

		c.logger.Debug("generate content response",
			zap.Int("response_length", utf8.RuneCountInString(text)),
			zap.Int("token_usage", out.TokenUsage),
			zap.String("response_preview", logger.TruncateForLog(text, c.maxLogLen)),
		)
		return out, nil
	}

	return ai.Completion{}, lastErr
}

// Embed returns the embedding vector for text. Errors are returned as-is.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini client is not initialized")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("embedding input must not be empty")
	}

	resp, err := c.models.EmbedContent(ctx, c.embeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, ai.ErrEmptyResponse
	}
	return resp.Embeddings[0].Values, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			b.WriteString(part.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(b.String())
}

func isTemporary(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Code >= http.StatusInternalServerError
	}
	return false
}
