package service

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"kairopay/internal/domain"
	"kairopay/internal/logger"
	"kairopay/internal/repository"
	"kairopay/pkg/utils"

	"gorm.io/gorm"
)

const SignatureHeader = "X-KairoPay-Signature"

type webhookTask struct {
	url   string
	event domain.WebhookEvent
}

// WebhookSenderService drains a bounded queue of lifecycle events in a
// single background worker. Delivery is best-effort: one attempt, outcome
// written to the events table, never surfaced to the request that queued it.
type WebhookSenderService struct {
	secret string
	queue  chan webhookTask
	done   chan struct{}
	client *http.Client
	events repository.Events
	db     *gorm.DB
	l      logger.Logger

	mu     sync.RWMutex
	closed bool
}

func NewWebhookSenderService(secret string, queueSize, timeoutSeconds int, events repository.Events, db *gorm.DB, l logger.Logger) *WebhookSenderService {
	return &WebhookSenderService{
		secret: secret,
		queue:  make(chan webhookTask, queueSize),
		done:   make(chan struct{}),
		client: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		events: events,
		db:     db,
		l:      l,
	}
}

func (s *WebhookSenderService) Start() {
	go s.run()
}

// Close stops accepting events and waits for the worker to drain the queue.
func (s *WebhookSenderService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.queue)
	<-s.done
}

func (s *WebhookSenderService) Enqueue(url string, event domain.WebhookEvent) {
	// the read lock keeps Close from closing the queue under a send in flight
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.audit(event, "", domain.EVENT_STATUS_DROPPED)
		s.l.TemplWebhookErr("sender closed, event dropped", url, event.Event, event.OrderID, nil)
		return
	}

	select {
	case s.queue <- webhookTask{url: url, event: event}:
	default:
		s.audit(event, "", domain.EVENT_STATUS_DROPPED)
		s.l.TemplWebhookErr("webhook queue full, event dropped", url, event.Event, event.OrderID, nil)
	}
}

func (s *WebhookSenderService) run() {
	for task := range s.queue {
		s.dispatch(task.url, task.event)
	}
	close(s.done)
}

func (s *WebhookSenderService) dispatch(url string, event domain.WebhookEvent) {
	unsigned, err := json.Marshal(event)
	if err != nil {
		s.l.TemplWebhookErr("marshal event error: "+err.Error(), url, event.Event, event.OrderID, nil)
		return
	}

	signature := s.Signature(unsigned)

	// the body carries the same sha256=<hex> form as the header
	event.Signature = "sha256=" + signature
	payload, err := json.Marshal(event)
	if err != nil {
		s.l.TemplWebhookErr("marshal signed event error: "+err.Error(), url, event.Event, event.OrderID, nil)
		return
	}

	err = s.send(url, signature, payload)
	if err != nil {
		s.audit(event, string(payload), domain.EVENT_STATUS_FAILED)
		s.l.TemplWebhookErr("send error: "+err.Error(), url, event.Event, event.OrderID, payload)
		return
	}

	s.audit(event, string(payload), domain.EVENT_STATUS_SENT)
	s.l.TemplWebhookInfo("webhook delivered", url, event.Event, event.OrderID)
}

func (s *WebhookSenderService) send(url, signature string, payload []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, "sha256="+signature)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("invalid status code: %d", resp.StatusCode)
	}
	return nil
}

// Signature is the hex HMAC-SHA256 of the unsigned event body.
func (s *WebhookSenderService) Signature(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *WebhookSenderService) audit(event domain.WebhookEvent, payload, status string) {
	if payload == "" {
		// event never made it to the wire; record the unsigned body
		payload = string(utils.MustMarshal(event))
	}
	err := s.events.Create(s.db, event.Event, event.OrderID, payload, status)
	if err != nil {
		s.l.TemplWebhookErr("audit write error: "+err.Error(), logger.NA, event.Event, event.OrderID, nil)
	}
}
