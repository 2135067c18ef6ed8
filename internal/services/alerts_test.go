package services

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/recruiting-ops/internal/engine"
)

type recordingSMSSender struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingSMSSender) SendMessage(phoneNumber, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, phoneNumber+": "+message)
	return nil
}

func (s *recordingSMSSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func overResult() *engine.BudgetAllocationResult {
	return &engine.BudgetAllocationResult{
		TotalAllocated:  1900000,
		AvailableBudget: 1680000,
		Remaining:       -220000,
		Status:          engine.StatusOver,
		Violations: []engine.GuardrailViolation{
			{Kind: engine.ViolationOverMax, PlayerID: "qb1", PlayerName: "QB One", Value: 300000, Threshold: 250000},
		},
	}
}

func withinResult() *engine.BudgetAllocationResult {
	return &engine.BudgetAllocationResult{
		TotalAllocated:  500000,
		AvailableBudget: 1680000,
		Remaining:       1180000,
		Status:          engine.StatusWithin,
	}
}

func TestGuardrailAlertFiresOnTransitionOnly(t *testing.T) {
	sender := &recordingSMSSender{}
	limiter := NewSMSRateLimiter(10, time.Hour)
	service := NewGuardrailAlertService(sender, limiter, []string{"+15550001111"}, logrus.New())

	// Healthy sweep, nothing fires.
	service.CheckAndNotify(withinResult())
	assert.Equal(t, 0, sender.count())

	// Badge flips to over: one alert.
	service.CheckAndNotify(overResult())
	assert.Equal(t, 1, sender.count())

	// Still over: the breach persists but no new transition happened.
	service.CheckAndNotify(overResult())
	assert.Equal(t, 1, sender.count())

	// Recovered, then breached again: a second alert.
	service.CheckAndNotify(withinResult())
	service.CheckAndNotify(overResult())
	assert.Equal(t, 2, sender.count())
}

func TestGuardrailAlertAllRecipients(t *testing.T) {
	sender := &recordingSMSSender{}
	limiter := NewSMSRateLimiter(10, time.Hour)
	recipients := []string{"+15550001111", "+15550002222", "+15550003333"}
	service := NewGuardrailAlertService(sender, limiter, recipients, logrus.New())

	service.CheckAndNotify(overResult())
	assert.Equal(t, len(recipients), sender.count())
}

func TestGuardrailAlertRespectsRateLimit(t *testing.T) {
	sender := &recordingSMSSender{}
	limiter := NewSMSRateLimiter(1, time.Hour)
	service := NewGuardrailAlertService(sender, limiter, []string{"+15550001111"}, logrus.New())

	service.CheckAndNotify(overResult())
	service.CheckAndNotify(withinResult())
	service.CheckAndNotify(overResult())

	// Second transition alert is suppressed by the per-recipient window.
	assert.Equal(t, 1, sender.count())
}

func TestSMSRateLimiterWindow(t *testing.T) {
	limiter := NewSMSRateLimiter(2, time.Hour)

	require.NoError(t, limiter.Allow("+15550001111"))
	require.NoError(t, limiter.Allow("+15550001111"))
	assert.Error(t, limiter.Allow("+15550001111"))

	// Other recipients have their own window.
	assert.NoError(t, limiter.Allow("+15550002222"))
}
