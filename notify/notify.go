package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// SettlementEvent is published once per round, after every bet resolution for
// that round has been committed.
type SettlementEvent struct {
	RoundID int64  `json:"round_id"`
	Period  int64  `json:"period"`
	Color   string `json:"color"`
	Number  int    `json:"number"`
}

// Sink receives settlement-complete events. Delivery is best-effort and
// at-most-once; a failed emission is the caller's to log, never to retry.
type Sink interface {
	SettlementCompleted(ev SettlementEvent) error
}

type LogSink struct{}

func (LogSink) SettlementCompleted(ev SettlementEvent) error {
	log.Printf("round %d settled: color=%s number=%d", ev.RoundID, ev.Color, ev.Number)
	return nil
}

// WebhookSink forwards events to the push-delivery service.
type WebhookSink struct {
	URL    string
	Client *http.Client
}

func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *WebhookSink) SettlementCompleted(ev SettlementEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.URL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
