package genai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gemini "google.golang.org/genai"
)

type fakeModels struct {
	calls    int
	model    string
	contents []*gemini.Content
	config   *gemini.GenerateContentConfig
	resp     *gemini.GenerateContentResponse
	err      error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*gemini.Content, config *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(parts ...string) *gemini.GenerateContentResponse {
	content := &gemini.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &gemini.Part{Text: p})
	}
	return &gemini.GenerateContentResponse{Candidates: []*gemini.Candidate{{Content: content}}}
}

func TestNewRequiresKeyAndModel(t *testing.T) {
	_, err := New(context.Background(), Config{Model: "m"})
	assert.Equal(t, "missing_api_key", Code(err))

	_, err = New(context.Background(), Config{APIKey: "k"})
	assert.Equal(t, "missing_model", Code(err))
}

func TestGenerateSendsSchemaAndReturnsText(t *testing.T) {
	models := &fakeModels{resp: textResponse(`{"priority":`, `"HIGH"}`)}
	client := newClient("test-model", models)

	text, err := client.Generate(context.Background(), Request{
		Prompt: "classify",
		ResponseSchema: &Schema{
			Type:       "OBJECT",
			Properties: map[string]*Schema{"priority": {Type: "STRING", Description: "level"}},
			Required:   []string{"priority"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"priority":"HIGH"}`, text)

	assert.Equal(t, "test-model", models.model)
	require.Len(t, models.contents, 1)
	require.Len(t, models.contents[0].Parts, 1)
	assert.Equal(t, "classify", models.contents[0].Parts[0].Text)

	require.NotNil(t, models.config)
	assert.Equal(t, "application/json", models.config.ResponseMIMEType)
	require.NotNil(t, models.config.ResponseSchema)
	assert.Equal(t, gemini.Type("OBJECT"), models.config.ResponseSchema.Type)
	assert.Equal(t, []string{"priority"}, models.config.ResponseSchema.Required)
	require.Contains(t, models.config.ResponseSchema.Properties, "priority")
	assert.Equal(t, gemini.Type("STRING"), models.config.ResponseSchema.Properties["priority"].Type)
}

func TestGeneratePlainPromptHasNoConfig(t *testing.T) {
	models := &fakeModels{resp: textResponse("  insight  ")}
	client := newClient("m", models)

	text, err := client.Generate(context.Background(), Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "insight", text)
	assert.Nil(t, models.config)
}

func TestGenerateErrorBuckets(t *testing.T) {
	cases := []struct {
		name string
		resp *gemini.GenerateContentResponse
		err  error
		code string
	}{
		{"unauthorized", nil, gemini.APIError{Code: http.StatusForbidden, Message: "denied"}, "http_unauthorized"},
		{"rate limited", nil, gemini.APIError{Code: http.StatusTooManyRequests}, "http_rate_limited"},
		{"server error", nil, gemini.APIError{Code: http.StatusBadGateway}, "http_server_error"},
		{"deadline", nil, context.DeadlineExceeded, "timeout"},
		{"transport", nil, errors.New("connection refused"), "network_error"},
		{"nil response", nil, nil, "empty_response"},
		{"no candidates", &gemini.GenerateContentResponse{}, nil, "empty_response"},
		{"blank text", textResponse("   "), nil, "empty_response"},
		{"blocked", &gemini.GenerateContentResponse{PromptFeedback: &gemini.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"}}, nil, "blocked"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			models := &fakeModels{resp: tc.resp, err: tc.err}
			_, err := newClient("m", models).Generate(context.Background(), Request{Prompt: "p"})
			require.Error(t, err)
			assert.Equal(t, tc.code, Code(err))
			assert.Equal(t, 1, models.calls)
		})
	}
}

func TestGenerateThroughSDK(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Check the plumbing in block B."}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), Config{BaseURL: srv.URL, Model: "test-model", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "test-model", client.Model())

	text, err := client.Generate(context.Background(), Request{Prompt: "predict"})
	require.NoError(t, err)
	assert.Equal(t, "Check the plumbing in block B.", text)
	assert.True(t, strings.HasSuffix(path, "test-model:generateContent"), path)
}

func TestCodeUnknown(t *testing.T) {
	assert.Equal(t, "unknown", Code(context.Canceled))
}
