package services

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/gridironhq/recruiting-ops/internal/engine"
)

// SMSSender delivers one message to one phone number.
type SMSSender interface {
	SendMessage(phoneNumber, message string) error
}

// TwilioSMSSender sends guardrail alerts through the Twilio API.
type TwilioSMSSender struct {
	client     *twilio.RestClient
	fromNumber string
}

func NewTwilioSMSSender(accountSID, authToken, fromNumber string) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSSender{client: client, fromNumber: fromNumber}
}

func (s *TwilioSMSSender) SendMessage(phoneNumber, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", phoneNumber, err)
	}
	return nil
}

// MockSMSSender logs instead of sending. Default in development.
type MockSMSSender struct {
	logger *logrus.Logger
}

func NewMockSMSSender(logger *logrus.Logger) *MockSMSSender {
	return &MockSMSSender{logger: logger}
}

func (s *MockSMSSender) SendMessage(phoneNumber, message string) error {
	s.logger.Infof("MOCK SMS to %s: %s", phoneNumber, message)
	return nil
}

// GuardrailAlertService notifies recipients when the budget badge flips to
// `over`. Alerts fire on the transition only; the nightly sweep re-checks, so
// a persistent breach alerts once per status change, not once per sweep.
type GuardrailAlertService struct {
	sender      SMSSender
	rateLimiter *SMSRateLimiter
	recipients  []string
	logger      *logrus.Logger

	mu         sync.Mutex
	lastStatus engine.BadgeStatus
}

func NewGuardrailAlertService(sender SMSSender, rateLimiter *SMSRateLimiter, recipients []string, logger *logrus.Logger) *GuardrailAlertService {
	return &GuardrailAlertService{
		sender:      sender,
		rateLimiter: rateLimiter,
		recipients:  recipients,
		logger:      logger,
		lastStatus:  engine.StatusWithin,
	}
}

// CheckAndNotify inspects an allocation result and sends alerts when the
// badge has worsened to `over` since the previous check.
func (s *GuardrailAlertService) CheckAndNotify(result *engine.BudgetAllocationResult) {
	s.mu.Lock()
	previous := s.lastStatus
	s.lastStatus = result.Status
	s.mu.Unlock()

	if result.Status != engine.StatusOver || previous == engine.StatusOver {
		return
	}

	message := s.formatAlert(result)
	for _, recipient := range s.recipients {
		if err := s.rateLimiter.Allow(recipient); err != nil {
			s.logger.Warnf("Skipping guardrail alert to %s: %v", recipient, err)
			continue
		}
		if err := s.sender.SendMessage(recipient, message); err != nil {
			s.logger.Errorf("Failed to deliver guardrail alert: %v", err)
		}
	}
}

func (s *GuardrailAlertService) formatAlert(result *engine.BudgetAllocationResult) string {
	overMax := 0
	for _, v := range result.Violations {
		if v.Kind == engine.ViolationOverMax {
			overMax++
		}
	}
	return fmt.Sprintf("Budget guardrail breached: %d OVER_MAX violation(s), remaining $%.0f of $%.0f",
		overMax, result.Remaining, result.AvailableBudget)
}
