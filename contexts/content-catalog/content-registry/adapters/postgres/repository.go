package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marlowe/contexts/content-catalog/content-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	"marlowe/contexts/content-catalog/content-registry/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateContent(ctx context.Context, content entities.Content) (entities.Content, error) {
	row := contentModelFromEntity(content)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Content{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetContent(ctx context.Context, contentID uint64) (entities.Content, error) {
	var row contentModel
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Content{}, domainerrors.ErrContentNotFound
		}
		return entities.Content{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListContentsByCreator(ctx context.Context, creator string) ([]entities.Content, error) {
	var rows []contentModel
	if err := r.db.WithContext(ctx).
		Where("creator = ?", creator).
		Order("content_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Content, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateContentMetadata(
	ctx context.Context,
	contentID uint64,
	title string,
	description string,
	isPublic bool,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&contentModel{}).
		Where("content_id = ?", contentID).
		Updates(map[string]any{
			"title":       title,
			"description": description,
			"is_public":   isPublic,
			"updated_at":  updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContentNotFound
	}
	return nil
}

func (r *Repository) UpdateContentOwner(
	ctx context.Context,
	contentID uint64,
	newOwner string,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&contentModel{}).
		Where("content_id = ?", contentID).
		Updates(map[string]any{
			"creator":    newOwner,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContentNotFound
	}
	return nil
}

type contentModel struct {
	ContentID   uint64    `gorm:"column:content_id;primaryKey;autoIncrement"`
	Creator     string    `gorm:"column:creator"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	ContentHash string    `gorm:"column:content_hash"`
	ContentType string    `gorm:"column:content_type"`
	IsPublic    bool      `gorm:"column:is_public"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (contentModel) TableName() string {
	return "catalog_contents"
}

func (m contentModel) toEntity() entities.Content {
	return entities.Content{
		ContentID:   m.ContentID,
		Creator:     m.Creator,
		Title:       m.Title,
		Description: m.Description,
		ContentHash: m.ContentHash,
		ContentType: m.ContentType,
		IsPublic:    m.IsPublic,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func contentModelFromEntity(content entities.Content) contentModel {
	return contentModel{
		ContentID:   content.ContentID,
		Creator:     content.Creator,
		Title:       content.Title,
		Description: content.Description,
		ContentHash: content.ContentHash,
		ContentType: content.ContentType,
		IsPublic:    content.IsPublic,
		CreatedAt:   content.CreatedAt.UTC(),
		UpdatedAt:   content.UpdatedAt.UTC(),
	}
}

var _ ports.ContentRepository = (*Repository)(nil)
