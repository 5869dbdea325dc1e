package memory

import (
	"context"
	"testing"
	"time"

	"marlowe/contexts/content-catalog/content-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
)

func seedContent(t *testing.T, store *Store, creator string) entities.Content {
	t.Helper()
	content, err := entities.NewContent(
		creator,
		"Night Sketches",
		"study set",
		"0x9b8a7c6f5e4d3c2b1a0f",
		"image/png",
		false,
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("new content failed: %v", err)
	}
	stored, err := store.CreateContent(context.Background(), content)
	if err != nil {
		t.Fatalf("create content failed: %v", err)
	}
	return stored
}

func TestCreateContentAssignsMonotonicIDs(t *testing.T) {
	store := NewStore(nil)

	first := seedContent(t, store, "creator_1")
	second := seedContent(t, store, "creator_1")

	if first.ContentID != 1 {
		t.Fatalf("expected first content id 1, got %d", first.ContentID)
	}
	if second.ContentID != 2 {
		t.Fatalf("expected second content id 2, got %d", second.ContentID)
	}
}

func TestGetContentMissing(t *testing.T) {
	store := NewStore(nil)

	_, err := store.GetContent(context.Background(), 99)
	if err != domainerrors.ErrContentNotFound {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestUpdateContentMetadataPreservesImmutableFields(t *testing.T) {
	store := NewStore(nil)
	stored := seedContent(t, store, "creator_1")

	updatedAt := stored.CreatedAt.Add(time.Hour)
	if err := store.UpdateContentMetadata(
		context.Background(), stored.ContentID, "Renamed", "new description", true, updatedAt,
	); err != nil {
		t.Fatalf("update metadata failed: %v", err)
	}

	got, err := store.GetContent(context.Background(), stored.ContentID)
	if err != nil {
		t.Fatalf("get content failed: %v", err)
	}
	if got.Title != "Renamed" || !got.IsPublic {
		t.Fatalf("expected mutated metadata, got %+v", got)
	}
	if got.ContentHash != stored.ContentHash {
		t.Fatal("content hash must not change through metadata updates")
	}
	if !got.CreatedAt.Equal(stored.CreatedAt) {
		t.Fatal("creation date must not change through metadata updates")
	}
	if got.Creator != stored.Creator {
		t.Fatal("creator must not change through metadata updates")
	}
}

func TestUpdateContentOwner(t *testing.T) {
	store := NewStore(nil)
	stored := seedContent(t, store, "creator_1")

	if err := store.UpdateContentOwner(
		context.Background(), stored.ContentID, "creator_2", stored.CreatedAt.Add(time.Minute),
	); err != nil {
		t.Fatalf("update owner failed: %v", err)
	}

	got, err := store.GetContent(context.Background(), stored.ContentID)
	if err != nil {
		t.Fatalf("get content failed: %v", err)
	}
	if got.Creator != "creator_2" {
		t.Fatalf("expected new owner, got %s", got.Creator)
	}
}

func TestListContentsByCreatorOrdersByID(t *testing.T) {
	store := NewStore(nil)
	seedContent(t, store, "creator_1")
	seedContent(t, store, "creator_2")
	seedContent(t, store, "creator_1")

	items, err := store.ListContentsByCreator(context.Background(), "creator_1")
	if err != nil {
		t.Fatalf("list contents failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ContentID != 1 || items[1].ContentID != 3 {
		t.Fatalf("expected ids [1 3], got [%d %d]", items[0].ContentID, items[1].ContentID)
	}
}
