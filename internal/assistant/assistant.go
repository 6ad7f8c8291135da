// Package assistant implements the beneficiary help assistant: a
// deterministic keyword classifier over a fixed, ordered rule table. It is
// not a learned model; re-ordering the rules changes behavior.
package assistant

import (
	"log"
	"strings"

	"nyayadhaar/backend/internal/metrics"
	"nyayadhaar/backend/internal/models"

	"github.com/google/uuid"
)

// ExchangeLog is where answered exchanges are appended. The storage service
// satisfies it.
type ExchangeLog interface {
	SaveChatExchange(exchange *models.ChatExchange) error
}

// Service answers beneficiary questions and logs each exchange.
type Service struct {
	Log ExchangeLog
}

// NewService creates the assistant service.
func NewService(l ExchangeLog) *Service {
	return &Service{Log: l}
}

// NewSessionID mints the session id for one widget activation. All
// exchanges of that activation reuse it; there is no expiry.
func NewSessionID() string {
	return uuid.New().String()
}

// Classify selects the response for an utterance. The input is lowercased
// and the rules are evaluated in table order; within a rule any trigger
// substring matches. The first matching rule wins. With no match the fixed
// fallback is returned. The returned key names the matched rule.
func Classify(text string) (responseText, ruleKey string) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, trigger := range r.Triggers {
			if strings.Contains(lower, trigger) {
				return r.Response, r.Key
			}
		}
	}
	return fallbackResponse, FallbackKey
}

// ClassifyAndRespond computes the response for the caller's message and
// appends the exchange to the log as a detached side effect. The append is
// best-effort: a storage failure is logged and never delays or blocks the
// response.
func (s *Service) ClassifyAndRespond(profile *models.Profile, sessionID, text string) string {
	response, key := Classify(text)
	metrics.ChatExchangesTotal.WithLabelValues(key).Inc()

	exchange := &models.ChatExchange{
		UserID:    profile.ID,
		SessionID: sessionID,
		Message:   text,
		Response:  response,
	}
	go func() {
		if err := s.Log.SaveChatExchange(exchange); err != nil {
			log.Printf("WARNING: chat exchange log append failed for session %s: %v", sessionID, err)
		}
	}()

	return response
}
