package ports

import (
	"context"
	"time"

	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
	"marlowe/internal/shared/events"
)

// OutboxEvent is the outbound integration payload persisted atomically
// with the state change that caused it.
type OutboxEvent struct {
	EventID      string
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

// GrantRepository owns grant persistence and the write transaction
// boundaries of the access ledger.
type GrantRepository interface {
	GetGrant(ctx context.Context, contentID uint64, user string) (entities.Grant, bool, error)
	ListGrantsByUser(ctx context.Context, user string) ([]entities.Grant, error)
	// UpsertGrantWithOutbox overwrites the (contentID, user) grant and
	// persists the outbox event in the same transaction. Re-purchase
	// resets the existing row.
	UpsertGrantWithOutbox(ctx context.Context, grant entities.Grant, event OutboxEvent) error
	// DeactivateGrantWithOutbox flips the stored active flag and persists
	// the outbox event atomically.
	DeactivateGrantWithOutbox(
		ctx context.Context,
		contentID uint64,
		user string,
		updatedAt time.Time,
		event OutboxEvent,
	) error
}

// AccessKeyRepository owns the per-content access key.
type AccessKeyRepository interface {
	GetAccessKey(ctx context.Context, contentID uint64) (entities.AccessKey, bool, error)
	// RotateAccessKey overwrites the content's key, saves the caller's
	// post-accounting grant and persists the outbox event in one
	// transaction.
	RotateAccessKey(
		ctx context.Context,
		key entities.AccessKey,
		grant entities.Grant,
		event OutboxEvent,
	) error
}

// LicenseOffer is the offer projection the access service needs at
// purchase time, resolved from the license registry.
type LicenseOffer struct {
	LicenseID       uint64
	ContentID       uint64
	Creator         string
	LicenseType     string
	Price           int64
	DurationMinutes *int64
	MaxUses         *int64
	Active          bool
}

// LicenseSource resolves offers from the license registry. found is
// false when the license does not exist.
type LicenseSource interface {
	LicenseByID(ctx context.Context, licenseID uint64) (offer LicenseOffer, found bool, err error)
}

// ContentOwnership resolves the current content owner from the content
// registry. found is false when the content does not exist.
type ContentOwnership interface {
	OwnerOf(ctx context.Context, contentID uint64) (owner string, found bool, err error)
}

// PaymentLedger is the trusted external settlement collaborator. Collect
// settles the full amount from payer to payee or fails without side
// effects; the access service never records a grant after a failure.
type PaymentLedger interface {
	Collect(ctx context.Context, payer string, payee string, amount int64, reference string) error
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// Clock allows deterministic testing of expiry and accounting rules.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts event/payment reference identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
