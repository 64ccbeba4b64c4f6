package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/spielberg/internal/errors"
	"github.com/diogo/spielberg/internal/models"
)

// maxResponseSize caps how much of a response body is read
const maxResponseSize = 8 << 20

// GenerateOptions contains options for content generation
type GenerateOptions struct {
	Model             models.Model
	SystemInstruction string
	Temperature       *float64
}

// GenerateContent sends the conversation to Gemini and returns the reply.
// contents must end with a user turn.
func (c *GeminiClient) GenerateContent(ctx context.Context, contents []models.Content, opts *GenerateOptions) (*models.ModelOutput, error) {
	if len(contents) == 0 || strings.TrimSpace(contents[len(contents)-1].Text()) == "" {
		return nil, apierrors.ErrEmptyPrompt
	}

	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	model := c.GetModel()
	if opts != nil && !opts.Model.IsUnspecified() {
		model = opts.Model
	}

	payload, err := buildPayload(contents, model, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	endpoint := c.endpoint(model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set(models.HeaderAPIKey, c.apiKey)

	log := c.logger.With(zap.String("model", model.Name), zap.Int("turns", len(contents)))
	log.Debug("generate content", zap.Int("payload_bytes", len(payload)))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("generate content failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, transportError(ctx, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, transportError(ctx, endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn("generate content rejected",
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return nil, apierrors.HandleHTTPStatus(resp.StatusCode, endpoint, body)
	}

	output, err := parseResponse(body)
	if err != nil {
		log.Warn("generate content unusable", zap.Error(err))
		return nil, err
	}

	log.Debug("generate content done",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("finish_reason", output.FinishReason()),
		zap.Int64("total_tokens", output.Usage.TotalTokens))
	return output, nil
}

// transportError classifies a failed round trip, preferring the context's verdict
func transportError(ctx context.Context, endpoint string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apierrors.NewTimeoutError(endpoint)
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("request cancelled: %w", context.Canceled)
	case strings.Contains(err.Error(), "Client.Timeout"):
		return apierrors.NewTimeoutError(err.Error())
	default:
		return apierrors.NewNetworkErrorWithEndpoint("generate content", endpoint, err)
	}
}

// buildPayload creates the JSON body for generateContent
func buildPayload(contents []models.Content, model models.Model, opts *GenerateOptions) ([]byte, error) {
	req := models.GenerateRequest{Contents: contents}

	if opts != nil && strings.TrimSpace(opts.SystemInstruction) != "" {
		req.SystemInstruction = &models.Content{
			Parts: []models.Part{{Text: opts.SystemInstruction}},
		}
	}

	var genCfg models.GenerationConfig
	if opts != nil && opts.Temperature != nil {
		genCfg.Temperature = opts.Temperature
	}
	if model.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = model.MaxOutputTokens
	}
	if genCfg.Temperature != nil || genCfg.MaxOutputTokens > 0 {
		req.GenerationConfig = &genCfg
	}

	return json.Marshal(req)
}

// parseResponse parses a generateContent response body
func parseResponse(body []byte) (*models.ModelOutput, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)

	if reason := parsed.Get(PathBlockReason).String(); reason != "" {
		return nil, apierrors.NewBlockedError(reason)
	}

	candidateList := parsed.Get(PathCandidates)
	if !candidateList.IsArray() || len(candidateList.Array()) == 0 {
		return nil, apierrors.NewParseError("no candidates found", PathCandidates)
	}

	var candidates []models.Candidate
	var lastFinish string
	candidateList.ForEach(func(idx, candValue gjson.Result) bool {
		finish := candValue.Get(PathCandFinishReason).String()
		lastFinish = finish

		var text strings.Builder
		candValue.Get(PathCandParts).ForEach(func(_, part gjson.Result) bool {
			// Thought summaries are not part of the reply
			if part.Get(PathPartThought).Bool() {
				return true
			}
			text.WriteString(part.Get(PathPartText).String())
			return true
		})

		if text.Len() == 0 {
			return true
		}

		index := int(idx.Int())
		if v := candValue.Get(PathCandIndex); v.Exists() {
			index = int(v.Int())
		}

		candidates = append(candidates, models.Candidate{
			Text:         text.String(),
			FinishReason: finish,
			Index:        index,
		})
		return true
	})

	if len(candidates) == 0 {
		if lastFinish == models.FinishSafety || lastFinish == models.FinishRecitation {
			return nil, apierrors.NewBlockedError(lastFinish)
		}
		return nil, fmt.Errorf("%w: candidates carried no text (finish reason %q)", apierrors.ErrNoContent, lastFinish)
	}

	return &models.ModelOutput{
		Candidates:   candidates,
		Chosen:       0,
		ModelVersion: parsed.Get(PathModelVersion).String(),
		Usage: models.UsageMetadata{
			PromptTokens:     parsed.Get(PathUsagePrompt).Int(),
			CandidatesTokens: parsed.Get(PathUsageCandidates).Int(),
			TotalTokens:      parsed.Get(PathUsageTotal).Int(),
		},
	}, nil
}
