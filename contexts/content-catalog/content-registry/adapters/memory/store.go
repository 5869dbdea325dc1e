package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	application "marlowe/contexts/content-catalog/content-registry/application"
	"marlowe/contexts/content-catalog/content-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
)

// Store is an in-memory adapter implementing the content registry ports
// for local runtime and tests. It is not intended as production
// persistence. The store mutex gives each operation the serialized,
// all-or-nothing visibility the registry assumes.
type Store struct {
	mu       sync.RWMutex
	contents map[uint64]entities.Content
	sequence uint64
	logger   *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		contents: make(map[uint64]entities.Content),
		logger:   application.ResolveLogger(logger),
	}
}

func (s *Store) CreateContent(_ context.Context, content entities.Content) (entities.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	content.ContentID = s.sequence
	s.contents[content.ContentID] = content
	return content, nil
}

func (s *Store) GetContent(_ context.Context, contentID uint64) (entities.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.contents[contentID]
	if !ok {
		return entities.Content{}, domainerrors.ErrContentNotFound
	}
	return content, nil
}

func (s *Store) ListContentsByCreator(_ context.Context, creator string) ([]entities.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []entities.Content
	for _, content := range s.contents {
		if content.Creator == creator {
			items = append(items, content)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ContentID < items[j].ContentID
	})
	return items, nil
}

func (s *Store) UpdateContentMetadata(
	_ context.Context,
	contentID uint64,
	title string,
	description string,
	isPublic bool,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.contents[contentID]
	if !ok {
		return domainerrors.ErrContentNotFound
	}
	content.Title = title
	content.Description = description
	content.IsPublic = isPublic
	content.UpdatedAt = updatedAt.UTC()
	s.contents[contentID] = content
	return nil
}

func (s *Store) UpdateContentOwner(
	_ context.Context,
	contentID uint64,
	newOwner string,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.contents[contentID]
	if !ok {
		return domainerrors.ErrContentNotFound
	}
	content.Creator = newOwner
	content.UpdatedAt = updatedAt.UTC()
	s.contents[contentID] = content
	return nil
}
