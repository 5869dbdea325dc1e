package entities

import (
	"strings"
	"time"

	domainerrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
)

// Content is a registered, content-addressed work with a single current
// owner. ContentID is assigned by the repository, monotonically from 1.
// ContentHash and CreatedAt never change after registration.
type Content struct {
	ContentID   uint64
	Creator     string
	Title       string
	Description string
	ContentHash string
	ContentType string
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewContent(
	creator string,
	title string,
	description string,
	contentHash string,
	contentType string,
	isPublic bool,
	createdAt time.Time,
) (Content, error) {
	if strings.TrimSpace(creator) == "" ||
		strings.TrimSpace(title) == "" ||
		strings.TrimSpace(contentHash) == "" {
		return Content{}, domainerrors.ErrInvalidContent
	}

	return Content{
		Creator:     creator,
		Title:       title,
		Description: description,
		ContentHash: contentHash,
		ContentType: contentType,
		IsPublic:    isPublic,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}, nil
}

// OwnedBy reports whether principal is the current owner.
func (c Content) OwnedBy(principal string) bool {
	return principal != "" && c.Creator == principal
}
