package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-desk-api/internal/models"
)

type gatedPredictor struct {
	mu    sync.Mutex
	gates map[int]chan struct{}
}

func newGatedPredictor() *gatedPredictor {
	return &gatedPredictor{gates: map[int]chan struct{}{}}
}

func (p *gatedPredictor) gate(n int) chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.gates[n]
	if !ok {
		ch = make(chan struct{})
		p.gates[n] = ch
	}
	return ch
}

// PredictMaintenance waits until the gate for len(complaints) opens.
func (p *gatedPredictor) PredictMaintenance(ctx context.Context, complaints []models.Complaint) string {
	select {
	case <-p.gate(len(complaints)):
	case <-ctx.Done():
	}
	return fmt.Sprintf("insight over %d", len(complaints))
}

func complaintsOf(n int) []models.Complaint {
	return make([]models.Complaint, n)
}

func TestInsightServiceInitialState(t *testing.T) {
	svc := NewInsightService(InsightParams{Predictor: newGatedPredictor()})

	current := svc.Current()
	assert.Equal(t, InitialInsightText, current.Text)
	assert.Equal(t, models.InsightPending, current.Status)
	assert.Nil(t, current.GeneratedAt)
}

func TestInsightServiceAppliesResult(t *testing.T) {
	predictor := newGatedPredictor()
	svc := NewInsightService(InsightParams{Predictor: predictor})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Refresh(1, complaintsOf(3))
	close(predictor.gate(3))

	require.Eventually(t, func() bool { return svc.Current().Status == models.InsightReady }, time.Second, 5*time.Millisecond)
	current := svc.Current()
	assert.Equal(t, "insight over 3", current.Text)
	assert.Equal(t, uint64(1), current.Version)
	assert.NotNil(t, current.GeneratedAt)
}

func TestInsightServiceDropsOutOfOrderCompletion(t *testing.T) {
	predictor := newGatedPredictor()
	svc := NewInsightService(InsightParams{Predictor: predictor, Workers: 2})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Refresh(1, complaintsOf(1))
	svc.Refresh(2, complaintsOf(2))

	close(predictor.gate(2))
	require.Eventually(t, func() bool { return svc.Current().Version == 2 }, time.Second, 5*time.Millisecond)

	close(predictor.gate(1))
	time.Sleep(50 * time.Millisecond)

	current := svc.Current()
	assert.Equal(t, uint64(2), current.Version)
	assert.Equal(t, "insight over 2", current.Text)
}

func TestInsightServiceRefreshBeforeStartIsDropped(t *testing.T) {
	svc := NewInsightService(InsightParams{Predictor: newGatedPredictor()})

	assert.NotPanics(t, func() { svc.Refresh(1, complaintsOf(1)) })
	assert.Equal(t, models.InsightPending, svc.Current().Status)
}

func TestInsightServiceRefreshCopiesInput(t *testing.T) {
	predictor := newGatedPredictor()
	svc := NewInsightService(InsightParams{Predictor: predictor})
	svc.Start(context.Background())
	defer svc.Stop()

	input := []models.Complaint{{ID: "c1"}}
	svc.Refresh(1, input)
	input = append(input[:0], models.Complaint{ID: "mutated"}, models.Complaint{ID: "extra"})
	close(predictor.gate(1))

	require.Eventually(t, func() bool { return svc.Current().Status == models.InsightReady }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "insight over 1", svc.Current().Text)
	assert.Len(t, input, 2)
}
