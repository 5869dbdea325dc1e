package unit

import (
	"context"
	"errors"
	"testing"

	contenterrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	contenthttp "marlowe/contexts/content-catalog/content-registry/transport/http"
	"marlowe/internal/shared/authz"
)

func TestContentRegistrationAssignsSequentialIDs(t *testing.T) {
	stack := newLicensingStack()

	first, err := stack.contents.Handler.RegisterContentHandler(
		context.Background(),
		"alice",
		contenthttp.RegisterContentRequest{
			Title:       "Winter Set",
			Description: "studio session",
			ContentHash: "hash-a",
			ContentType: "audio",
			IsPublic:    true,
		},
	)
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if first.Item.ContentID != 1 {
		t.Fatalf("expected content id 1, got %d", first.Item.ContentID)
	}
	if first.Item.Creator != "alice" {
		t.Fatalf("expected creator alice, got %s", first.Item.Creator)
	}

	second, err := stack.contents.Handler.RegisterContentHandler(
		context.Background(),
		"bob",
		contenthttp.RegisterContentRequest{
			Title:       "Spring Set",
			ContentHash: "hash-b",
			ContentType: "video",
		},
	)
	if err != nil {
		t.Fatalf("second registration failed: %v", err)
	}
	if second.Item.ContentID != 2 {
		t.Fatalf("expected content id 2, got %d", second.Item.ContentID)
	}
}

func TestContentRegistrationRejectsBlankFields(t *testing.T) {
	stack := newLicensingStack()

	_, err := stack.contents.Handler.RegisterContentHandler(
		context.Background(),
		"alice",
		contenthttp.RegisterContentRequest{
			Title:       "",
			ContentHash: "hash-a",
		},
	)
	if !errors.Is(err, contenterrors.ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}

	_, err = stack.contents.Handler.RegisterContentHandler(
		context.Background(),
		"alice",
		contenthttp.RegisterContentRequest{
			Title:       "No Hash",
			ContentHash: "   ",
		},
	)
	if !errors.Is(err, contenterrors.ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent for blank hash, got %v", err)
	}
}

func TestContentMetadataUpdateIsOwnerOnly(t *testing.T) {
	stack := newLicensingStack()
	registered, err := stack.contents.Handler.RegisterContentHandler(
		context.Background(),
		"alice",
		contenthttp.RegisterContentRequest{Title: "Set", ContentHash: "hash-a"},
	)
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, err = stack.contents.Handler.UpdateMetadataHandler(
		context.Background(),
		"mallory",
		registered.Item.ContentID,
		contenthttp.UpdateMetadataRequest{Title: "Hijacked"},
	)
	if !errors.Is(err, authz.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	updated, err := stack.contents.Handler.UpdateMetadataHandler(
		context.Background(),
		"alice",
		registered.Item.ContentID,
		contenthttp.UpdateMetadataRequest{
			Title:       "Set (remastered)",
			Description: "new master",
			IsPublic:    true,
		},
	)
	if err != nil {
		t.Fatalf("owner metadata update failed: %v", err)
	}
	if updated.Item.Title != "Set (remastered)" || !updated.Item.IsPublic {
		t.Fatalf("metadata not applied: %+v", updated.Item)
	}
	if updated.Item.ContentHash != "hash-a" {
		t.Fatalf("content hash must be immutable, got %s", updated.Item.ContentHash)
	}
}

func TestContentOwnershipTransferMovesAuthority(t *testing.T) {
	stack := newLicensingStack()
	registered, err := stack.contents.Handler.RegisterContentHandler(
		context.Background(),
		"alice",
		contenthttp.RegisterContentRequest{Title: "Set", ContentHash: "hash-a"},
	)
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	contentID := registered.Item.ContentID

	transferred, err := stack.contents.Handler.TransferOwnershipHandler(
		context.Background(),
		"alice",
		contentID,
		contenthttp.TransferOwnershipRequest{NewOwner: "bob"},
	)
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if transferred.Item.Creator != "bob" {
		t.Fatalf("expected owner bob, got %s", transferred.Item.Creator)
	}

	// The previous owner lost all mutation authority.
	_, err = stack.contents.Handler.UpdateMetadataHandler(
		context.Background(),
		"alice",
		contentID,
		contenthttp.UpdateMetadataRequest{Title: "stale"},
	)
	if !errors.Is(err, authz.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for old owner, got %v", err)
	}

	check, err := stack.contents.Handler.VerifyOwnershipHandler(context.Background(), contentID, "bob")
	if err != nil {
		t.Fatalf("verify ownership failed: %v", err)
	}
	if !check.IsOwner {
		t.Fatalf("expected bob to own content %d", contentID)
	}
	check, err = stack.contents.Handler.VerifyOwnershipHandler(context.Background(), contentID, "alice")
	if err != nil {
		t.Fatalf("verify ownership failed: %v", err)
	}
	if check.IsOwner {
		t.Fatalf("expected alice to no longer own content %d", contentID)
	}
}

func TestVerifyOwnershipIsFalseForMissingContent(t *testing.T) {
	stack := newLicensingStack()

	check, err := stack.contents.Handler.VerifyOwnershipHandler(context.Background(), 42, "alice")
	if err != nil {
		t.Fatalf("verify ownership on missing content must not error: %v", err)
	}
	if check.IsOwner {
		t.Fatalf("expected false for missing content")
	}
}

func TestListContentsReturnsOnlyCreatorsItems(t *testing.T) {
	stack := newLicensingStack()

	for _, item := range []struct {
		creator string
		hash    string
	}{
		{"alice", "hash-a"},
		{"bob", "hash-b"},
		{"alice", "hash-c"},
	} {
		_, err := stack.contents.Handler.RegisterContentHandler(
			context.Background(),
			item.creator,
			contenthttp.RegisterContentRequest{Title: "t-" + item.hash, ContentHash: item.hash},
		)
		if err != nil {
			t.Fatalf("registration failed: %v", err)
		}
	}

	listed, err := stack.contents.Handler.ListContentsHandler(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed.Items) != 2 {
		t.Fatalf("expected 2 items for alice, got %d", len(listed.Items))
	}
	for _, item := range listed.Items {
		if item.Creator != "alice" {
			t.Fatalf("unexpected creator in listing: %s", item.Creator)
		}
	}

	getMissing, err := stack.contents.Handler.GetContentHandler(context.Background(), 99)
	if !errors.Is(err, contenterrors.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v (resp %+v)", err, getMissing)
	}
}
