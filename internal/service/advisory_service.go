package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-desk-api/internal/models"
	"github.com/noah-isme/hostel-desk-api/pkg/genai"
)

const (
	FallbackPrediction         = "Unable to generate predictive insights at this time."
	InsufficientDataPrediction = "Insufficient data for predictive analytics."
	FallbackAllocation         = "Suggest manual allocation for this case."

	opClassify = "classify_priority"
	opPredict  = "predict_maintenance"
	opAllocate = "suggest_allocation"
)

// TextGenerator is the external text-generation capability.
type TextGenerator interface {
	Generate(ctx context.Context, req genai.Request) (string, error)
}

var prioritySchema = &genai.Schema{
	Type: "OBJECT",
	Properties: map[string]*genai.Schema{
		"priority": {Type: "STRING", Description: "The classified priority level"},
	},
	Required: []string{"priority"},
}

// AdvisoryParams wires the advisory service.
type AdvisoryParams struct {
	Generator TextGenerator
	Cache     *CacheService
	Metrics   *MetricsService
	Logger    *zap.Logger
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// AdvisoryService produces non-authoritative suggestions. Every method
// returns a usable value: failures are logged and replaced by a fixed
// fallback. Each call builds its own request, so concurrent calls never
// share state.
type AdvisoryService struct {
	generator TextGenerator
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	timeout   time.Duration
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewAdvisoryService builds the service. A nil Generator means every call
// returns its fallback.
func NewAdvisoryService(p AdvisoryParams) *AdvisoryService {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &AdvisoryService{
		generator: p.Generator,
		cache:     p.Cache,
		metrics:   p.Metrics,
		logger:    logger,
		timeout:   timeout,
		cacheTTL:  p.CacheTTL,
		now:       time.Now,
	}
}

// ClassifyPriority suggests a priority for description. Unknown labels and
// failures give MEDIUM.
func (s *AdvisoryService) ClassifyPriority(ctx context.Context, description string) models.ComplaintPriority {
	prompt := fmt.Sprintf(`Classify the priority of this hostel maintenance complaint: %q.
Return one of: LOW, MEDIUM, HIGH, CRITICAL.
Critical: Safety issues, severe leakage, total power failure.
Low: Minor furniture scratches, slow fan (not stopped).`, description)

	text, ok := s.generate(ctx, opClassify, genai.Request{Prompt: prompt, ResponseSchema: prioritySchema})
	if !ok {
		return models.PriorityMedium
	}

	var out struct {
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		s.logger.Warn("advisory response malformed", zap.String("operation", opClassify), zap.Error(err))
		return models.PriorityMedium
	}
	return models.ParsePriority(out.Priority)
}

// PredictMaintenance writes a short preventive-maintenance insight from the
// complaint history.
func (s *AdvisoryService) PredictMaintenance(ctx context.Context, complaints []models.Complaint) string {
	if len(complaints) == 0 {
		return InsufficientDataPrediction
	}

	lines := make([]string, len(complaints))
	for i, c := range complaints {
		lines[i] = c.Category + ": " + c.Description
	}
	prompt := fmt.Sprintf(`Based on these past maintenance complaints in a hostel, provide a short predictive insight about what needs preventive maintenance next.

Historical Data:
%s

Provide a concise 2-sentence professional insight.`, strings.Join(lines, "\n"))

	text, ok := s.generateCached(ctx, opPredict, prompt)
	if !ok {
		return FallbackPrediction
	}
	return text
}

// SuggestAllocation recommends one of rooms for the given preferences.
func (s *AdvisoryService) SuggestAllocation(ctx context.Context, preferences []string, rooms []models.Room) string {
	lines := make([]string, len(rooms))
	for i, r := range rooms {
		lines[i] = fmt.Sprintf("Room %s (%s, %s)", r.Number, r.Type, strings.Join(r.Features, ", "))
	}
	prompt := fmt.Sprintf(`Given these student preferences: [%s], and these available rooms:
%s

Suggest the best room and briefly explain why.`, strings.Join(preferences, ", "), strings.Join(lines, "\n"))

	text, ok := s.generateCached(ctx, opAllocate, prompt)
	if !ok {
		return FallbackAllocation
	}
	return text
}

func (s *AdvisoryService) generateCached(ctx context.Context, op, prompt string) (string, bool) {
	key := advisoryCacheKey(op, prompt)

	var cached string
	if hit, _ := s.cache.Get(ctx, key, &cached); hit && cached != "" {
		s.metrics.ObserveAdvisory(op, "cached", 0)
		return cached, true
	}

	text, ok := s.generate(ctx, op, genai.Request{Prompt: prompt})
	if ok {
		_ = s.cache.Set(ctx, key, text, s.cacheTTL)
	}
	return text, ok
}

// generate makes exactly one bounded attempt.
func (s *AdvisoryService) generate(ctx context.Context, op string, req genai.Request) (string, bool) {
	if s.generator == nil {
		s.metrics.ObserveAdvisory(op, "disabled", 0)
		return "", false
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	text, err := s.generator.Generate(callCtx, req)
	elapsed := s.now().Sub(start)
	if err == nil && strings.TrimSpace(text) == "" {
		err = &genai.Error{Code: "empty_response", Message: "empty text"}
	}
	if err != nil {
		code := genai.Code(err)
		s.metrics.ObserveAdvisory(op, code, elapsed)
		s.logger.Warn("advisory call failed, using fallback",
			zap.String("operation", op),
			zap.String("code", code),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return "", false
	}

	s.metrics.ObserveAdvisory(op, "success", elapsed)
	return strings.TrimSpace(text), true
}

func advisoryCacheKey(op, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "advisory:" + op + ":" + hex.EncodeToString(sum[:])
}
