package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/metrics"
	"gearflow-backend/internal/repository"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
)

// pushPayload is the JSON body stored in the queue and delivered to the
// browser service worker.
type pushPayload struct {
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type pushService struct {
	queueRepo       repository.PushQueueRepository
	vapidPublicKey  string
	vapidPrivateKey string
	subject         string
	maxAttempts     int32
}

func NewPushService(queueRepo repository.PushQueueRepository, vapidPublicKey, vapidPrivateKey, subject string, maxAttempts int) PushService {
	return &pushService{
		queueRepo:       queueRepo,
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		subject:         subject,
		maxAttempts:     int32(maxAttempts),
	}
}

func (s *pushService) Enqueue(ctx context.Context, userID, title, message string, metadata map[string]string) error {
	payload, err := json.Marshal(pushPayload{Title: title, Message: message, Metadata: metadata})
	if err != nil {
		return err
	}
	item := &domain.PushQueueItem{
		ID:      uuid.NewString(),
		UserID:  userID,
		Payload: payload,
	}
	return s.queueRepo.Enqueue(ctx, item)
}

func (s *pushService) Subscribe(ctx context.Context, sub *domain.PushSubscription) error {
	if sub.Endpoint == "" || sub.P256dh == "" || sub.Auth == "" {
		return domain.Errorf(domain.ErrValidation, "endpoint, p256dh and auth keys are required")
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	return s.queueRepo.SaveSubscription(ctx, sub)
}

// ProcessQueue drains one batch of pending payloads, delivering each to every
// subscription the target user has registered. Items without subscriptions are
// marked sent so they do not clog the queue.
func (s *pushService) ProcessQueue(ctx context.Context, batchSize int32) (int, int, error) {
	items, err := s.queueRepo.DequeuePending(ctx, batchSize)
	if err != nil {
		return 0, 0, err
	}

	var sent, failed int
	for _, item := range items {
		if err := s.deliver(ctx, &item); err != nil {
			attempts := item.Attempts + 1
			if attempts < s.maxAttempts {
				// Stays pending; the next run retries it.
				metrics.PushQueueProcessed.WithLabelValues("retried").Inc()
				if markErr := s.queueRepo.MarkRetry(ctx, item.ID, attempts, err.Error()); markErr != nil {
					logger.Error("Failed to mark push item for retry", "id", item.ID, "error", markErr)
				}
				continue
			}
			failed++
			metrics.PushQueueProcessed.WithLabelValues("failed").Inc()
			if markErr := s.queueRepo.MarkFailed(ctx, item.ID, attempts, err.Error()); markErr != nil {
				logger.Error("Failed to mark push item failed", "id", item.ID, "error", markErr)
			}
			continue
		}
		sent++
		metrics.PushQueueProcessed.WithLabelValues("sent").Inc()
		if markErr := s.queueRepo.MarkSent(ctx, item.ID); markErr != nil {
			logger.Error("Failed to mark push item sent", "id", item.ID, "error", markErr)
		}
	}
	return sent, failed, nil
}

func (s *pushService) deliver(ctx context.Context, item *domain.PushQueueItem) error {
	subs, err := s.queueRepo.ListSubscriptions(ctx, item.UserID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}

	var lastErr error
	for _, sub := range subs {
		target := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256dh,
				Auth:   sub.Auth,
			},
		}
		logger.ExternalServiceCall("webpush", "send", "endpoint", sub.Endpoint)
		resp, err := webpush.SendNotification(item.Payload, target, &webpush.Options{
			Subscriber:      s.subject,
			VAPIDPublicKey:  s.vapidPublicKey,
			VAPIDPrivateKey: s.vapidPrivateKey,
			TTL:             3600,
		})
		if err != nil {
			logger.ExternalServiceResult("webpush", "send", err)
			lastErr = err
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
			// Browser dropped the subscription; clean it up.
			if delErr := s.queueRepo.DeleteSubscription(ctx, sub.ID); delErr != nil {
				logger.Error("Failed to delete stale push subscription", "id", sub.ID, "error", delErr)
			}
			continue
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
			logger.ExternalServiceResult("webpush", "send", lastErr)
			continue
		}
		logger.ExternalServiceResult("webpush", "send", nil)
	}
	return lastErr
}
