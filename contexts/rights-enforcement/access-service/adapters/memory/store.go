package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	application "marlowe/contexts/rights-enforcement/access-service/application"
	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
	"marlowe/contexts/rights-enforcement/access-service/ports"
)

type grantKey struct {
	contentID uint64
	user      string
}

// Store is the in-memory access ledger for local runtime and tests. The
// store mutex is the transaction boundary: grant writes and their outbox
// rows land together or not at all.
type Store struct {
	mu          sync.RWMutex
	grants      map[grantKey]entities.Grant
	keys        map[uint64]entities.AccessKey
	outbox      map[string]ports.OutboxMessage
	outboxOrder []string
	outboxSent  map[string]time.Time
	logger      *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		grants:     make(map[grantKey]entities.Grant),
		keys:       make(map[uint64]entities.AccessKey),
		outbox:     make(map[string]ports.OutboxMessage),
		outboxSent: make(map[string]time.Time),
		logger:     application.ResolveLogger(logger),
	}
}

func (s *Store) GetGrant(_ context.Context, contentID uint64, user string) (entities.Grant, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grant, ok := s.grants[grantKey{contentID: contentID, user: user}]
	return grant, ok, nil
}

func (s *Store) ListGrantsByUser(_ context.Context, user string) ([]entities.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []entities.Grant
	for key, grant := range s.grants {
		if key.user == user {
			items = append(items, grant)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ContentID < items[j].ContentID
	})
	return items, nil
}

func (s *Store) UpsertGrantWithOutbox(_ context.Context, grant entities.Grant, event ports.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grants[grantKey{contentID: grant.ContentID, user: grant.User}] = grant
	s.appendOutboxLocked(event)
	return nil
}

func (s *Store) DeactivateGrantWithOutbox(
	_ context.Context,
	contentID uint64,
	user string,
	updatedAt time.Time,
	event ports.OutboxEvent,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := grantKey{contentID: contentID, user: user}
	grant, ok := s.grants[key]
	if !ok {
		return nil
	}
	grant.Active = false
	grant.UpdatedAt = updatedAt.UTC()
	s.grants[key] = grant
	s.appendOutboxLocked(event)
	return nil
}

func (s *Store) GetAccessKey(_ context.Context, contentID uint64) (entities.AccessKey, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[contentID]
	return key, ok, nil
}

func (s *Store) RotateAccessKey(
	_ context.Context,
	key entities.AccessKey,
	grant entities.Grant,
	event ports.OutboxEvent,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[key.ContentID] = key
	s.grants[grantKey{contentID: grant.ContentID, user: grant.User}] = grant
	s.appendOutboxLocked(event)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []ports.OutboxMessage
	for _, outboxID := range s.outboxOrder {
		if _, sent := s.outboxSent[outboxID]; sent {
			continue
		}
		pending = append(pending, s.outbox[outboxID])
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outboxSent[outboxID] = sentAt.UTC()
	return nil
}

func (s *Store) appendOutboxLocked(event ports.OutboxEvent) {
	if _, exists := s.outbox[event.EventID]; exists {
		return
	}
	s.outbox[event.EventID] = ports.OutboxMessage{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      event.Payload,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	s.outboxOrder = append(s.outboxOrder, event.EventID)
}
