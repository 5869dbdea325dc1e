package workers

import (
	"context"
	"log/slog"
	"time"

	application "marlowe/contexts/rights-enforcement/access-service/application"
	"marlowe/contexts/rights-enforcement/access-service/ports"
	"marlowe/internal/shared/events"
)

// OutboxRelay drains pending licensing events to the bus. Rows are
// wrapped into the canonical envelope here; the stored payload stays
// the raw domain payload written by the command.
type OutboxRelay struct {
	Outbox        ports.OutboxRepository
	Publisher     ports.EventPublisher
	Clock         ports.Clock
	Topic         string
	SourceService string
	BatchSize     int
	Logger        *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = "licensing.events"
	}
	source := r.SourceService
	if source == "" {
		source = "marlowe"
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list pending failed",
			"event", "licensing_outbox_list_failed",
			"module", "rights-enforcement/access-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, message := range pending {
		envelope := events.Envelope{
			EventID:       message.OutboxID,
			EventType:     message.EventType,
			OccurredAt:    message.CreatedAt,
			SourceService: source,
			PartitionKey:  message.PartitionKey,
			SchemaVersion: 1,
			Data:          message.Payload,
		}

		if err := r.Publisher.Publish(ctx, topic, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "licensing_outbox_publish_failed",
				"module", "rights-enforcement/access-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_type", message.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, now); err != nil {
			logger.Error("outbox mark sent failed",
				"event", "licensing_outbox_mark_sent_failed",
				"module", "rights-enforcement/access-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("outbox relay cycle completed",
			"event", "licensing_outbox_relay_completed",
			"module", "rights-enforcement/access-service",
			"layer", "worker",
			"sent_count", len(pending),
		)
	}
	return nil
}
