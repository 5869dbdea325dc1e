package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marlowe/contexts/content-catalog/license-registry/domain/entities"
	domainerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
	"marlowe/contexts/content-catalog/license-registry/ports"

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

func (r *Repository) CreateLicense(ctx context.Context, license entities.License) (entities.License, error) {
	row := licenseModelFromEntity(license)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.License{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetLicense(ctx context.Context, licenseID uint64) (entities.License, error) {
	var row licenseModel
	err := r.db.WithContext(ctx).
		Where("license_id = ?", licenseID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.License{}, domainerrors.ErrLicenseNotFound
		}
		return entities.License{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListLicensesByContent(ctx context.Context, contentID uint64) ([]entities.License, error) {
	var rows []licenseModel
	if err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("license_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.License, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ReplaceLicenseTerms(
	ctx context.Context,
	licenseID uint64,
	terms entities.Terms,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&licenseModel{}).
		Where("license_id = ?", licenseID).
		Updates(map[string]any{
			"price":                terms.Price,
			"duration_minutes":     terms.DurationMinutes,
			"max_uses":             terms.MaxUses,
			"commercial_use":       terms.CommercialUse,
			"modification_allowed": terms.ModificationAllowed,
			"active":               terms.Active,
			"updated_at":           updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrLicenseNotFound
	}
	return nil
}

func (r *Repository) SetLicenseActive(
	ctx context.Context,
	licenseID uint64,
	active bool,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&licenseModel{}).
		Where("license_id = ?", licenseID).
		Updates(map[string]any{
			"active":     active,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrLicenseNotFound
	}
	return nil
}

type licenseModel struct {
	LicenseID           uint64    `gorm:"column:license_id;primaryKey;autoIncrement"`
	ContentID           uint64    `gorm:"column:content_id;index"`
	Creator             string    `gorm:"column:creator"`
	LicenseType         string    `gorm:"column:license_type"`
	Price               int64     `gorm:"column:price"`
	DurationMinutes     *int64    `gorm:"column:duration_minutes"`
	MaxUses             *int64    `gorm:"column:max_uses"`
	CommercialUse       bool      `gorm:"column:commercial_use"`
	ModificationAllowed bool      `gorm:"column:modification_allowed"`
	Active              bool      `gorm:"column:active"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (licenseModel) TableName() string {
	return "catalog_licenses"
}

func (m licenseModel) toEntity() entities.License {
	return entities.License{
		LicenseID:           m.LicenseID,
		ContentID:           m.ContentID,
		Creator:             m.Creator,
		LicenseType:         m.LicenseType,
		Price:               m.Price,
		DurationMinutes:     m.DurationMinutes,
		MaxUses:             m.MaxUses,
		CommercialUse:       m.CommercialUse,
		ModificationAllowed: m.ModificationAllowed,
		Active:              m.Active,
		CreatedAt:           m.CreatedAt.UTC(),
		UpdatedAt:           m.UpdatedAt.UTC(),
	}
}

func licenseModelFromEntity(license entities.License) licenseModel {
	return licenseModel{
		LicenseID:           license.LicenseID,
		ContentID:           license.ContentID,
		Creator:             license.Creator,
		LicenseType:         license.LicenseType,
		Price:               license.Price,
		DurationMinutes:     license.DurationMinutes,
		MaxUses:             license.MaxUses,
		CommercialUse:       license.CommercialUse,
		ModificationAllowed: license.ModificationAllowed,
		Active:              license.Active,
		CreatedAt:           license.CreatedAt.UTC(),
		UpdatedAt:           license.UpdatedAt.UTC(),
	}
}

var _ ports.LicenseRepository = (*Repository)(nil)
