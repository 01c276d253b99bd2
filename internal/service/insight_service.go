package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-desk-api/internal/models"
	"github.com/noah-isme/hostel-desk-api/pkg/jobs"
)

// InitialInsightText is shown until the first prediction lands.
const InitialInsightText = "Analyzing historical patterns..."

const insightJobType = "insight.refresh"

type maintenancePredictor interface {
	PredictMaintenance(ctx context.Context, complaints []models.Complaint) string
}

type insightRequest struct {
	version    uint64
	complaints []models.Complaint
}

// InsightParams wires the insight board.
type InsightParams struct {
	Predictor  maintenancePredictor
	Metrics    *MetricsService
	Logger     *zap.Logger
	Workers    int
	BufferSize int
}

// InsightService keeps the latest predictive-maintenance insight. Refreshes
// run on a background queue; each carries the complaint-store version it was
// computed from and only results newer than the applied one are kept, so a
// slow early call never overwrites a later one.
type InsightService struct {
	predictor maintenancePredictor
	metrics   *MetricsService
	logger    *zap.Logger
	queue     *jobs.Queue
	now       func() time.Time

	mu      sync.RWMutex
	current models.Insight
}

// NewInsightService builds the board and its worker queue. Call Start
// before Refresh.
func NewInsightService(p InsightParams) *InsightService {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &InsightService{
		predictor: p.Predictor,
		metrics:   p.Metrics,
		logger:    logger,
		now:       time.Now,
		current:   models.Insight{Text: InitialInsightText, Status: models.InsightPending},
	}
	s.queue = jobs.NewQueue("insights", s.handle, jobs.QueueConfig{
		Workers:    p.Workers,
		BufferSize: p.BufferSize,
		Logger:     logger,
	})
	return s
}

// Start launches the workers.
func (s *InsightService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop waits for in-flight refreshes to exit.
func (s *InsightService) Stop() {
	s.queue.Stop()
}

// Refresh schedules a prediction over complaints taken at version. It never
// blocks; a full queue drops the request since a later refresh supersedes it.
func (s *InsightService) Refresh(version uint64, complaints []models.Complaint) {
	snapshot := make([]models.Complaint, len(complaints))
	copy(snapshot, complaints)

	err := s.queue.TryEnqueue(jobs.Job{
		ID:      fmt.Sprintf("insight-%d", version),
		Type:    insightJobType,
		Payload: insightRequest{version: version, complaints: snapshot},
	})
	if err != nil {
		s.metrics.RecordInsightRefresh("dropped")
		if errors.Is(err, jobs.ErrQueueFull) {
			s.logger.Debug("insight refresh dropped", zap.Uint64("version", version))
			return
		}
		s.logger.Warn("insight refresh not scheduled", zap.Uint64("version", version), zap.Error(err))
	}
}

// Current returns the latest applied insight.
func (s *InsightService) Current() models.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.current
	if out.GeneratedAt != nil {
		at := *out.GeneratedAt
		out.GeneratedAt = &at
	}
	return out
}

func (s *InsightService) handle(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(insightRequest)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	if s.superseded(req.version) {
		s.metrics.RecordInsightRefresh("stale")
		return nil
	}

	text := s.predictor.PredictMaintenance(ctx, req.complaints)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Status == models.InsightReady && req.version < s.current.Version {
		s.metrics.RecordInsightRefresh("stale")
		s.logger.Debug("stale insight discarded", zap.Uint64("version", req.version), zap.Uint64("applied", s.current.Version))
		return nil
	}
	at := s.now().UTC()
	s.current = models.Insight{Text: text, Status: models.InsightReady, Version: req.version, GeneratedAt: &at}
	s.metrics.RecordInsightRefresh("applied")
	return nil
}

func (s *InsightService) superseded(version uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Status == models.InsightReady && version < s.current.Version
}
