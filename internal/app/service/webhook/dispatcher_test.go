package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/staxpay/gateway/internal/models"
	cfgpkg "github.com/staxpay/gateway/pkg/config"
	"github.com/staxpay/gateway/pkg/types"
)

// memStore is an in-memory Store for dispatcher tests.
type memStore struct {
	mu     sync.Mutex
	subs   []*models.WebhookSubscription
	events map[string]*models.WebhookEvent
	saves  []models.WebhookEvent
}

func newMemStore(subs ...*models.WebhookSubscription) *memStore {
	return &memStore{subs: subs, events: map[string]*models.WebhookEvent{}}
}

func (m *memStore) ActiveSubscriptions(_ context.Context, merchantID string, event types.EventType) ([]*models.WebhookSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.WebhookSubscription
	for _, sub := range m.subs {
		if sub.MerchantID == merchantID && sub.Active && sub.SubscribedTo(event) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *memStore) CreateEvent(_ context.Context, ev *models.WebhookEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ev
	m.events[ev.ID] = &cp
	return nil
}

func (m *memStore) SaveEventAttempt(_ context.Context, ev *models.WebhookEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, *ev)
	m.events[ev.ID] = ev
	return nil
}

func (m *memStore) byType(event types.EventType) []*models.WebhookEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.WebhookEvent
	for _, ev := range m.events {
		if ev.EventType == event {
			out = append(out, ev)
		}
	}
	return out
}

func testSubscription(id, merchantID, url string, events ...string) *models.WebhookSubscription {
	return &models.WebhookSubscription{
		ID:         id,
		MerchantID: merchantID,
		URL:        url,
		Events:     datatypes.NewJSONSlice(events),
		Secret:     "topsecret-" + id,
		Active:     true,
	}
}

func testConfig() *cfgpkg.Config {
	return &cfgpkg.Config{Webhooks: cfgpkg.WebhookConfig{
		Timeout:           time.Second,
		MaxAttempts:       3,
		RetryDelays:       []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond},
		QueueSize:         16,
		Workers:           1,
		ResponseBodyLimit: 1000,
	}}
}

func TestDispatch_ExpandsLegacyAlias(t *testing.T) {
	store := newMemStore(
		testSubscription("sub-1", "m1", "http://sub1.test", "payment.succeeded"),
		testSubscription("sub-2", "m1", "http://sub2.test", "payment.confirmed"),
		testSubscription("sub-3", "m2", "http://sub3.test", "payment.succeeded"),
	)
	svc := NewService(testConfig(), zap.NewNop().Sugar(), store)

	svc.Dispatch(context.Background(), "m1", types.EventPaymentSucceeded, map[string]any{"id": "pay-1"})

	succeeded := store.byType(types.EventPaymentSucceeded)
	require.Len(t, succeeded, 1)
	assert.Equal(t, "sub-1", succeeded[0].SubscriptionID)
	assert.Equal(t, types.DeliveryStatusPending, succeeded[0].Status)

	confirmed := store.byType(types.EventPaymentConfirmed)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "sub-2", confirmed[0].SubscriptionID)

	var body envelope
	require.NoError(t, json.Unmarshal(confirmed[0].Payload, &body))
	assert.Equal(t, "payment.confirmed", body.Type)

	assert.Len(t, svc.queue, 2)
}

func TestDispatch_SkipsUnsubscribedEvents(t *testing.T) {
	store := newMemStore(testSubscription("sub-1", "m1", "http://sub1.test", "payment.failed"))
	svc := NewService(testConfig(), zap.NewNop().Sugar(), store)

	svc.Dispatch(context.Background(), "m1", types.EventPaymentSucceeded, map[string]any{"id": "pay-1"})

	assert.Empty(t, store.byType(types.EventPaymentSucceeded))
	assert.Empty(t, store.byType(types.EventPaymentConfirmed))
	assert.Len(t, svc.queue, 0)
}

func TestDispatch_FullQueueLeavesRecordPending(t *testing.T) {
	cfg := testConfig()
	cfg.Webhooks.QueueSize = 1
	store := newMemStore(
		testSubscription("sub-1", "m1", "http://sub1.test", "payment.failed"),
		testSubscription("sub-2", "m1", "http://sub2.test", "payment.failed"),
	)
	svc := NewService(cfg, zap.NewNop().Sugar(), store)

	done := make(chan struct{})
	go func() {
		svc.Dispatch(context.Background(), "m1", types.EventPaymentFailed, map[string]any{"id": "pay-1"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked on a full queue")
	}

	records := store.byType(types.EventPaymentFailed)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, types.DeliveryStatusPending, rec.Status)
	}
	assert.Len(t, svc.queue, 1)
}

func TestProcess_DeliversSignedPayload(t *testing.T) {
	var (
		gotSignature string
		gotEventType string
		gotBody      []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get(SignatureHeader)
		gotEventType = r.Header.Get(EventTypeHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	store := newMemStore()
	svc := NewService(testConfig(), zap.NewNop().Sugar(), store)

	payload := []byte(`{"type":"payment.succeeded","data":{"id":"pay-1"}}`)
	rec := &models.WebhookEvent{
		ID:             "ev-1",
		SubscriptionID: "sub-1",
		MerchantID:     "m1",
		EventType:      types.EventPaymentSucceeded,
		Payload:        datatypes.JSON(payload),
		Status:         types.DeliveryStatusPending,
	}
	require.NoError(t, store.CreateEvent(context.Background(), rec))

	svc.process(task{rec: rec, url: srv.URL, secret: "s3cr3t"})

	assert.Equal(t, types.DeliveryStatusDelivered, rec.Status)
	assert.Equal(t, 1, rec.Attempts)
	assert.Equal(t, http.StatusOK, rec.ResponseCode)
	assert.Equal(t, "ok", rec.ResponseBody)
	require.NotNil(t, rec.LastAttemptAt)

	assert.Equal(t, "payment.succeeded", gotEventType)
	assert.Equal(t, payload, gotBody)
	assert.True(t, Verify("s3cr3t", gotBody, gotSignature))
}

func TestProcess_RetriesThenFails(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 50)))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Webhooks.ResponseBodyLimit = 20
	store := newMemStore()
	svc := NewService(cfg, zap.NewNop().Sugar(), store)

	rec := &models.WebhookEvent{
		ID:        "ev-1",
		EventType: types.EventPaymentFailed,
		Payload:   datatypes.JSON(`{"type":"payment.failed","data":{}}`),
		Status:    types.DeliveryStatusPending,
	}
	svc.process(task{rec: rec, url: srv.URL, secret: "s3cr3t"})

	assert.Equal(t, 3, hits)
	assert.Equal(t, types.DeliveryStatusFailed, rec.Status)
	assert.Equal(t, 3, rec.Attempts)
	assert.Equal(t, http.StatusBadGateway, rec.ResponseCode)
	assert.Len(t, rec.ResponseBody, 20)

	require.Len(t, store.saves, 3)
	assert.Equal(t, types.DeliveryStatusPending, store.saves[0].Status)
	assert.Equal(t, types.DeliveryStatusPending, store.saves[1].Status)
	assert.Equal(t, types.DeliveryStatusFailed, store.saves[2].Status)
}

func TestProcess_TransportFailureRecordsZeroCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	store := newMemStore()
	svc := NewService(testConfig(), zap.NewNop().Sugar(), store)

	rec := &models.WebhookEvent{
		ID:        "ev-1",
		EventType: types.EventPaymentFailed,
		Payload:   datatypes.JSON(`{}`),
		Status:    types.DeliveryStatusPending,
	}
	svc.process(task{rec: rec, url: srv.URL, secret: "s3cr3t"})

	assert.Equal(t, types.DeliveryStatusFailed, rec.Status)
	assert.Equal(t, 3, rec.Attempts)
	assert.Equal(t, 0, rec.ResponseCode)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	assert.Equal(t, strings.Repeat("x", 1000), truncate(strings.Repeat("x", 2000), 0))
}
