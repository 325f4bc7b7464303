package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/staxpay/gateway/internal/models"
	cfgpkg "github.com/staxpay/gateway/pkg/config"
	"github.com/staxpay/gateway/pkg/logctx"
	"github.com/staxpay/gateway/pkg/metrics"
	"github.com/staxpay/gateway/pkg/tool"
	"github.com/staxpay/gateway/pkg/types"
)

// Dispatcher fans a domain event out to every matching subscription.
// Dispatch returns before any network activity happens; delivery failures
// never reach the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, merchantID string, event types.EventType, data any)
}

// envelope is the wire body POSTed to subscribers.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type task struct {
	rec    *models.WebhookEvent
	url    string
	secret string
}

// Service delivers signed webhook payloads through a bounded queue consumed
// by a fixed pool of workers.
type Service struct {
	cfg    *cfgpkg.Config
	log    *zap.SugaredLogger
	store  Store
	client *http.Client

	queue chan task
	quit  chan struct{}
	wg    sync.WaitGroup
}

func NewService(cfg *cfgpkg.Config, log *zap.SugaredLogger, store Store) *Service {
	return &Service{
		cfg:    cfg,
		log:    log,
		store:  store,
		client: &http.Client{Timeout: cfg.Webhooks.Timeout},
		queue:  make(chan task, cfg.Webhooks.QueueSize),
		quit:   make(chan struct{}),
	}
}

// Dispatch expands legacy event aliases, persists one pending delivery
// record per matching subscription, and queues each for delivery. A full
// queue leaves the record pending; it never blocks.
func (s *Service) Dispatch(ctx context.Context, merchantID string, event types.EventType, data any) {
	log := logctx.FromCtx(ctx, s.log)
	for _, emitted := range event.Emitted() {
		subs, err := s.store.ActiveSubscriptions(ctx, merchantID, emitted)
		if err != nil {
			log.Errorw("webhook: subscription lookup failed", "merchant_id", merchantID, "event", emitted, "err", err)
			continue
		}
		if len(subs) == 0 {
			continue
		}
		body, err := json.Marshal(envelope{Type: string(emitted), Data: data})
		if err != nil {
			log.Errorw("webhook: payload marshal failed", "event", emitted, "err", err)
			continue
		}
		for _, sub := range subs {
			rec := &models.WebhookEvent{
				ID:             tool.GenerateUUIDV7(),
				SubscriptionID: sub.ID,
				MerchantID:     merchantID,
				EventType:      emitted,
				Payload:        datatypes.JSON(body),
				Status:         types.DeliveryStatusPending,
			}
			if err := s.store.CreateEvent(ctx, rec); err != nil {
				log.Errorw("webhook: delivery record create failed", "event", emitted, "subscription_id", sub.ID, "err", err)
				continue
			}
			s.enqueue(log, task{rec: rec, url: sub.URL, secret: sub.Secret})
		}
	}
}

func (s *Service) enqueue(log *zap.SugaredLogger, t task) {
	select {
	case s.queue <- t:
		metrics.SetWebhookQueueDepth(len(s.queue))
	default:
		log.Errorw("webhook: queue full, delivery left pending", "event_id", t.rec.ID, "url", t.url)
	}
}

// Start launches the delivery workers. Stop waits for them to finish the
// attempt in hand; queued tasks stay pending in the store.
func (s *Service) Start() {
	workers := s.cfg.Webhooks.Workers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

func (s *Service) Stop() {
	close(s.quit)
	s.wg.Wait()
}

func (s *Service) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.quit:
			return
		case t := <-s.queue:
			metrics.SetWebhookQueueDepth(len(s.queue))
			s.process(t)
		}
	}
}

// process runs the full retry schedule for one delivery record.
func (s *Service) process(t task) {
	ctx := context.Background()
	for {
		code, respBody, err := s.attempt(t)
		t.rec.Attempts++
		t.rec.LastAttemptAt = lo.ToPtr(time.Now())
		t.rec.ResponseCode = code
		t.rec.ResponseBody = truncate(respBody, s.cfg.Webhooks.ResponseBodyLimit)

		if err == nil && code >= 200 && code < 300 {
			t.rec.Status = types.DeliveryStatusDelivered
			s.saveAttempt(ctx, t.rec)
			metrics.WebhookDelivery("delivered")
			return
		}

		if t.rec.Attempts >= s.cfg.Webhooks.MaxAttempts {
			t.rec.Status = types.DeliveryStatusFailed
			s.saveAttempt(ctx, t.rec)
			metrics.WebhookDelivery("failed")
			s.log.Warnw("webhook: delivery failed permanently",
				"event_id", t.rec.ID, "event", t.rec.EventType, "url", t.url,
				"attempts", t.rec.Attempts, "response_code", code)
			return
		}

		s.saveAttempt(ctx, t.rec)
		metrics.WebhookDelivery("retry")
		select {
		case <-s.quit:
			return
		case <-time.After(s.cfg.Webhooks.RetryDelayAt(t.rec.Attempts)):
		}
	}
}

// attempt performs a single signed POST. A transport failure returns code 0.
func (s *Service) attempt(t task) (int, string, error) {
	payload := []byte(t.rec.Payload)
	req, err := http.NewRequest(http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, Sign(t.secret, payload))
	req.Header.Set(EventTypeHeader, string(t.rec.EventType))

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	limit := s.cfg.Webhooks.ResponseBodyLimit
	if limit <= 0 {
		limit = 1000
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, int64(limit)+1))
	return resp.StatusCode, string(body), nil
}

func (s *Service) saveAttempt(ctx context.Context, rec *models.WebhookEvent) {
	if err := s.store.SaveEventAttempt(ctx, rec); err != nil {
		s.log.Errorw("webhook: delivery record update failed", "event_id", rec.ID, "err", err)
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		limit = 1000
	}
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
