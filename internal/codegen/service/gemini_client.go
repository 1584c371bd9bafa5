// Package service provides the HTTP client for the generative language API.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	apperrors "github.com/utenadev/gca4g/internal/errors"
)

// maxErrorBodySize bounds how much of a failed response body is kept in APIError.
const maxErrorBodySize = 64 * 1024

// GenerationClient sends one prompt to the model and returns its validated answer.
type GenerationClient interface {
	Generate(ctx context.Context, apiKey, prompt string) (*codegenDomain.Response, error)
}

// GeminiConfig holds the settings of the Gemini client.
type GeminiConfig struct {
	BaseURL        string
	Model          string
	RequestTimeout time.Duration
	MaxAttempts    int
	BackoffInitial time.Duration
}

// GeminiClient calls the generateContent endpoint with a per-attempt timeout
// and exponential backoff between attempts.
type GeminiClient struct {
	httpClient *http.Client
	config     GeminiConfig
	logger     *slog.Logger
}

// NewGeminiClient creates a GeminiClient. A nil httpClient uses a default client.
func NewGeminiClient(httpClient *http.Client, config GeminiConfig, logger *slog.Logger) *GeminiClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &GeminiClient{
		httpClient: httpClient,
		config:     config,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate posts prompt to the model.
//
// Timeouts, 5xx statuses and transport failures are retried up to MaxAttempts
// in total. Client errors, malformed answers and cancellation of ctx end the
// call immediately. When retries are exhausted the last error is returned.
func (g *GeminiClient) Generate(ctx context.Context, apiKey, prompt string) (*codegenDomain.Response, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	attempt := 0
	operation := func() (*codegenDomain.Response, error) {
		attempt++
		resp, err := g.attempt(ctx, apiKey, body)
		if err == nil {
			return resp, nil
		}

		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		if !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		g.logger.Warn("generation attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", g.config.MaxAttempts),
			slog.Any("error", err),
		)
		return nil, err
	}

	resp, err := backoff.RetryWithData(operation, g.backOff(ctx))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// backOff returns the policy 1x, 2x, 4x the initial interval between attempts.
func (g *GeminiClient) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.config.BackoffInitial
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = g.config.BackoffInitial << g.config.MaxAttempts
	b.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(g.config.MaxAttempts-1)), ctx)
}

// attempt performs a single request bounded by RequestTimeout.
func (g *GeminiClient) attempt(ctx context.Context, apiKey string, body []byte) (*codegenDomain.Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, g.config.RequestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(g.config.BaseURL, "/"), g.config.Model)
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, g.transportError(ctx, attemptCtx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if readErr != nil && attemptCtx.Err() != nil {
			return nil, g.transportError(ctx, attemptCtx, readErr)
		}
		return nil, apperrors.NewAPIError(resp.StatusCode, string(data))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if attemptCtx.Err() != nil {
			return nil, g.transportError(ctx, attemptCtx, err)
		}
		return nil, apperrors.Wrap(codegenDomain.ErrMalformedResponse, err.Error())
	}

	return parseCandidate(&decoded)
}

// transportError classifies a failed round trip.
func (g *GeminiClient) transportError(ctx, attemptCtx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrTimeout, fmt.Sprintf("no response within %s", g.config.RequestTimeout))
	}
	return fmt.Errorf("request failed: %w", err)
}

// parseCandidate extracts and validates the updates document from the first candidate.
func parseCandidate(decoded *generateResponse) (*codegenDomain.Response, error) {
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 ||
		decoded.Candidates[0].Content.Parts[0].Text == "" {
		return nil, codegenDomain.ErrEmptyCandidate
	}

	var result codegenDomain.Response
	if err := json.Unmarshal([]byte(decoded.Candidates[0].Content.Parts[0].Text), &result); err != nil {
		return nil, apperrors.Wrap(codegenDomain.ErrMalformedResponse, err.Error())
	}
	if err := result.Validate(); err != nil {
		return nil, apperrors.Wrap(codegenDomain.ErrMalformedResponse, err.Error())
	}
	return &result, nil
}

// retryable reports whether err is a transient failure.
func retryable(err error) bool {
	if errors.Is(err, apperrors.ErrMalformed) || errors.Is(err, apperrors.ErrInvalidInput) {
		return false
	}

	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ServerSide()
	}
	return true
}
