package producer

import (
	"context"
	"time"

	"go-texerp/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// outboxBatchSize caps how many rows one tick picks up. Document saves
// arrive in bursts at day close; a bounded batch keeps a backlog from
// starving the poll loop.
const outboxBatchSize = 50

// DrainOutbox polls the document event outbox and publishes pending
// rows to Kafka until the context is cancelled.
func DrainOutbox(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainOnce(ctx, repo, writer, log); err != nil {
				log.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

// drainOnce publishes one batch. A row that fails to publish is marked
// failed and skipped; the rest of the batch still goes out.
func drainOnce(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, outboxBatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// the event went out but stays pending, so the next tick
			// resends it; consumers must tolerate duplicates
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	logger.Info("outbox batch drained",
		zap.Int("pending", len(events)),
		zap.Int("sent", sent),
	)
	return nil
}
