// Package genai adapts the Google Gen AI SDK to the single-turn prompt calls
// the advisory service makes. Each call is one attempt bounded by the
// caller's context; callers decide what a failure means.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gemini "google.golang.org/genai"
)

// Schema is the subset of the Gemini response schema used for structured
// output. Type names are upper case (OBJECT, STRING, ...).
type Schema struct {
	Type        string
	Description string
	Enum        []string
	Properties  map[string]*Schema
	Required    []string
}

// Request is a single-turn prompt. A non-nil ResponseSchema asks the model
// for JSON output matching it.
type Request struct {
	Prompt         string
	ResponseSchema *Schema
}

// Config holds client settings. BaseURL and HTTPClient are optional.
type Config struct {
	BaseURL    string
	Model      string
	APIKey     string
	HTTPClient *http.Client
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*gemini.Content, config *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error)
}

// Client talks to one model.
type Client struct {
	model  string
	models contentGenerator
}

// New validates the configuration and builds an SDK client for the Gemini
// API backend.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &Error{Code: "missing_api_key", Message: "API key is required"}
	}
	if cfg.Model == "" {
		return nil, &Error{Code: "missing_model", Message: "model is required"}
	}

	sdk, err := gemini.NewClient(ctx, &gemini.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     gemini.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: gemini.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, &Error{Code: "client_error", Message: "failed to create client", Err: err}
	}
	return newClient(cfg.Model, sdk.Models), nil
}

func newClient(model string, models contentGenerator) *Client {
	return &Client{model: model, models: models}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends the prompt and returns the trimmed text of the first
// candidate.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	var config *gemini.GenerateContentConfig
	if req.ResponseSchema != nil {
		config = &gemini.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   toSDKSchema(req.ResponseSchema),
		}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, gemini.Text(req.Prompt), config)
	if err != nil {
		return "", classify(ctx, err)
	}
	if resp == nil {
		return "", &Error{Code: "empty_response", Message: "no response"}
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &Error{Code: "blocked", Message: "prompt blocked: " + string(resp.PromptFeedback.BlockReason)}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", &Error{Code: "empty_response", Message: "no candidates in response"}
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", &Error{Code: "empty_response", Message: "candidate has no text"}
	}
	return text, nil
}

func toSDKSchema(s *Schema) *gemini.Schema {
	if s == nil {
		return nil
	}
	out := &gemini.Schema{
		Type:        gemini.Type(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*gemini.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSDKSchema(prop)
		}
	}
	return out
}

// classify maps SDK and transport failures onto stable buckets.
func classify(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Code: "timeout", Message: "request timed out", Err: err}
	}
	var apiErr gemini.APIError
	if errors.As(err, &apiErr) {
		return &Error{Code: "http_" + statusBucket(apiErr.Code), Message: apiErr.Message, StatusCode: apiErr.Code, Err: err}
	}
	var apiErrPtr *gemini.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &Error{Code: "http_" + statusBucket(apiErrPtr.Code), Message: apiErrPtr.Message, StatusCode: apiErrPtr.Code, Err: err}
	}
	return &Error{Code: "network_error", Message: "request failed", Err: err}
}

func statusBucket(code int) string {
	switch {
	case code == http.StatusBadRequest:
		return "bad_request"
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return "unauthorized"
	case code == http.StatusNotFound:
		return "not_found"
	case code == http.StatusTooManyRequests:
		return "rate_limited"
	case code >= 500:
		return "server_error"
	default:
		return "unexpected_status"
	}
}

// Error describes a failed call. Code is a stable bucket suitable for
// metrics labels.
type Error struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("genai: %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return "genai: " + e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code extracts the failure bucket from err, or "unknown".
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "unknown"
}
