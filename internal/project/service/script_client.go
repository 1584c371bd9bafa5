// Package service provides the HTTP client for the Apps Script projects API.
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
	"net/url"
	"strings"
	"time"

	apperrors "github.com/utenadev/gca4g/internal/errors"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
)

const maxErrorBodySize = 64 * 1024

// ScriptClient reads and replaces the content of an Apps Script project.
type ScriptClient interface {
	GetContent(ctx context.Context, accessToken, scriptID string) ([]projectDomain.GasFile, error)
	UpdateContent(ctx context.Context, accessToken, scriptID string, files []projectDomain.GasFile) error
}

// scriptClient implements ScriptClient over HTTP.
type scriptClient struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewScriptClient creates a ScriptClient. A nil httpClient uses a default client.
func NewScriptClient(httpClient *http.Client, baseURL string, timeout time.Duration, logger *slog.Logger) ScriptClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &scriptClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		logger:     logger,
	}
}

type contentFile struct {
	Name   string                 `json:"name"`
	Type   projectDomain.FileType `json:"type"`
	Source *string                `json:"source,omitempty"`
}

type contentBody struct {
	Files []contentFile `json:"files"`
}

// GetContent fetches all files of the project. A file without source gets an empty source.
func (s *scriptClient) GetContent(ctx context.Context, accessToken, scriptID string) ([]projectDomain.GasFile, error) {
	var body contentBody
	if err := s.call(ctx, http.MethodGet, accessToken, scriptID, ":getContent", nil, &body); err != nil {
		return nil, err
	}

	files := make([]projectDomain.GasFile, 0, len(body.Files))
	for _, f := range body.Files {
		file := projectDomain.GasFile{Name: f.Name, Type: f.Type}
		if f.Source != nil {
			file.Source = *f.Source
		}
		files = append(files, file)
	}

	s.logger.Debug("project content pulled", slog.String("script_id", scriptID), slog.Int("files", len(files)))
	return files, nil
}

// UpdateContent replaces the project files.
func (s *scriptClient) UpdateContent(
	ctx context.Context,
	accessToken, scriptID string,
	files []projectDomain.GasFile,
) error {
	body := contentBody{Files: make([]contentFile, 0, len(files))}
	for _, f := range files {
		source := f.Source
		body.Files = append(body.Files, contentFile{Name: f.Name, Type: f.Type, Source: &source})
	}

	if err := s.call(ctx, http.MethodPut, accessToken, scriptID, ":updateContent", &body, nil); err != nil {
		return err
	}

	s.logger.Debug("project content pushed", slog.String("script_id", scriptID), slog.Int("files", len(files)))
	return nil
}

// call performs one authenticated request and decodes the JSON answer into out when non-nil.
func (s *scriptClient) call(
	ctx context.Context,
	method, accessToken, scriptID, suffix string,
	in, out any,
) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := s.baseURL + "/" + url.PathEscape(scriptID) + suffix
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apperrors.Wrap(apperrors.ErrTimeout, fmt.Sprintf("no response within %s", s.timeout))
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		s.logger.Error("apps script request failed",
			slog.String("method", method),
			slog.String("script_id", scriptID),
			slog.Int("status", resp.StatusCode),
		)
		return apperrors.NewAPIError(resp.StatusCode, string(data))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrMalformed, err.Error())
	}
	return nil
}
