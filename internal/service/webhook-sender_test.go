package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kairopay/internal/config"
	"kairopay/internal/domain"
	"kairopay/internal/logger"
	"kairopay/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSender(t *testing.T, queueSize int) (*WebhookSenderService, *fakeEventsRepo) {
	t.Helper()
	events := newFakeEventsRepo()
	l := logger.Init(&config.Config{Prod_env: false})
	return NewWebhookSenderService("test-secret", queueSize, 5, events, nil, l), events
}

func TestWebhookDelivery(t *testing.T) {
	type received struct {
		header string
		body   []byte
	}
	got := make(chan received, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got <- received{header: r.Header.Get(SignatureHeader), body: body}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s, events := newSender(t, 8)
	s.Start()

	event := domain.NewWebhookEvent(domain.EVENT_ORDER_COMPLETE, domain.WebhookEvent{
		OrderID:    "ord_test000000000001",
		TxHash:     "0xabc",
		Chain:      "ethereum",
		Asset:      "USDC",
		Amount:     "25",
		MerchantID: "m_test00000000000001",
		AppID:      "app_test000000000001",
	})

	s.Enqueue(server.URL, event)
	s.Close()

	r := <-got

	parsed, err := utils.Unmarshal[domain.WebhookEvent](r.body)
	require.NoError(t, err)
	body := *parsed
	assert.Equal(t, domain.EVENT_ORDER_COMPLETE, body.Event)
	assert.Equal(t, "0xabc", body.TxHash)
	require.NotEmpty(t, body.Signature)

	// signature covers the event without its signature field
	unsignedBody := body
	unsignedBody.Signature = ""
	unsigned, err := json.Marshal(unsignedBody)
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write(unsigned)
	expected := hex.EncodeToString(mac.Sum(nil))

	// body and header carry the same sha256=<hex> form
	assert.Equal(t, "sha256="+expected, body.Signature)
	assert.Equal(t, "sha256="+expected, r.header)

	rows, err := events.FindByRelation(nil, "ord_test000000000001")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.EVENT_STATUS_SENT, rows[0].Status)
}

func TestWebhookNon2xxIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s, events := newSender(t, 8)
	s.Start()

	s.Enqueue(server.URL, domain.NewWebhookEvent(domain.EVENT_ORDER_CREATED, domain.WebhookEvent{
		OrderID: "ord_test000000000002",
	}))
	s.Close()

	rows, err := events.FindByRelation(nil, "ord_test000000000002")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.EVENT_STATUS_FAILED, rows[0].Status)
}

func TestWebhookUnreachableTarget(t *testing.T) {
	s, events := newSender(t, 8)
	s.Start()

	s.Enqueue("http://127.0.0.1:1/hook", domain.NewWebhookEvent(domain.EVENT_ORDER_CREATED, domain.WebhookEvent{
		OrderID: "ord_test000000000003",
	}))
	s.Close()

	rows, err := events.FindByRelation(nil, "ord_test000000000003")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.EVENT_STATUS_FAILED, rows[0].Status)
}

func TestWebhookQueueOverflowDrops(t *testing.T) {
	// worker never started, so the queue fills up
	s, events := newSender(t, 1)

	s.Enqueue("http://example.com", domain.NewWebhookEvent(domain.EVENT_ORDER_CREATED, domain.WebhookEvent{OrderID: "ord_queued0000000001"}))
	s.Enqueue("http://example.com", domain.NewWebhookEvent(domain.EVENT_ORDER_CREATED, domain.WebhookEvent{OrderID: "ord_dropped000000001"}))

	rows, err := events.FindByRelation(nil, "ord_dropped000000001")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.EVENT_STATUS_DROPPED, rows[0].Status)

	// the queued one was never attempted, so it has no audit row yet
	rows, err = events.FindByRelation(nil, "ord_queued0000000001")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEnqueueAfterCloseDrops(t *testing.T) {
	s, events := newSender(t, 8)
	s.Start()
	s.Close()

	// must not panic on the closed queue; the event is dropped with an audit row
	s.Enqueue("http://example.com", domain.NewWebhookEvent(domain.EVENT_ORDER_CREATED, domain.WebhookEvent{OrderID: "ord_afterclose000001"}))

	rows, err := events.FindByRelation(nil, "ord_afterclose000001")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.EVENT_STATUS_DROPPED, rows[0].Status)

	// a second Close is a no-op
	s.Close()
}

func TestSignatureDeterministic(t *testing.T) {
	s, _ := newSender(t, 1)

	a := s.Signature([]byte(`{"event":"order.created"}`))
	b := s.Signature([]byte(`{"event":"order.created"}`))
	c := s.Signature([]byte(`{"event":"order.pending"}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex sha256
}
