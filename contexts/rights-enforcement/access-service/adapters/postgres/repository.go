package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marlowe/contexts/rights-enforcement/access-service/domain/entities"
	"marlowe/contexts/rights-enforcement/access-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
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

func (r *Repository) GetGrant(ctx context.Context, contentID uint64, user string) (entities.Grant, bool, error) {
	var row grantModel
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND user_principal = ?", contentID, user).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Grant{}, false, nil
		}
		return entities.Grant{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListGrantsByUser(ctx context.Context, user string) ([]entities.Grant, error) {
	var rows []grantModel
	if err := r.db.WithContext(ctx).
		Where("user_principal = ?", user).
		Order("content_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Grant, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpsertGrantWithOutbox(ctx context.Context, grant entities.Grant, event ports.OutboxEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := grantModelFromEntity(grant)
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "content_id"}, {Name: "user_principal"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"license_id", "purchased_at", "expires_at", "uses_left", "active", "updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return insertOutbox(tx, event)
	})
}

func (r *Repository) DeactivateGrantWithOutbox(
	ctx context.Context,
	contentID uint64,
	user string,
	updatedAt time.Time,
	event ports.OutboxEvent,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&grantModel{}).
			Where("content_id = ? AND user_principal = ?", contentID, user).
			Updates(map[string]any{
				"active":     false,
				"updated_at": updatedAt.UTC(),
			}).Error; err != nil {
			return err
		}
		return insertOutbox(tx, event)
	})
}

func (r *Repository) GetAccessKey(ctx context.Context, contentID uint64) (entities.AccessKey, bool, error) {
	var row accessKeyModel
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AccessKey{}, false, nil
		}
		return entities.AccessKey{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) RotateAccessKey(
	ctx context.Context,
	key entities.AccessKey,
	grant entities.Grant,
	event ports.OutboxEvent,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keyRow := accessKeyModel{
			ContentID: key.ContentID,
			Key:       key.Key,
			UpdatedAt: key.UpdatedAt.UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_key", "updated_at"}),
		}).Create(&keyRow).Error; err != nil {
			return err
		}

		if err := tx.Model(&grantModel{}).
			Where("content_id = ? AND user_principal = ?", grant.ContentID, grant.User).
			Updates(map[string]any{
				"uses_left":  grant.UsesLeft,
				"updated_at": grant.UpdatedAt.UTC(),
			}).Error; err != nil {
			return err
		}
		return insertOutbox(tx, event)
	})
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		}).Error
}

// insertOutbox tolerates event id replays so a retried transaction does
// not duplicate messages.
func insertOutbox(tx *gorm.DB, event ports.OutboxEvent) error {
	row := outboxModel{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      event.Payload,
		Status:       outboxStatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	if err := tx.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type grantModel struct {
	ContentID   uint64     `gorm:"column:content_id;primaryKey"`
	User        string     `gorm:"column:user_principal;primaryKey"`
	LicenseID   uint64     `gorm:"column:license_id"`
	PurchasedAt time.Time  `gorm:"column:purchased_at"`
	ExpiresAt   *time.Time `gorm:"column:expires_at"`
	UsesLeft    *int64     `gorm:"column:uses_left"`
	Active      bool       `gorm:"column:active"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (grantModel) TableName() string {
	return "access_grants"
}

func (m grantModel) toEntity() entities.Grant {
	grant := entities.Grant{
		ContentID:   m.ContentID,
		LicenseID:   m.LicenseID,
		User:        m.User,
		PurchasedAt: m.PurchasedAt.UTC(),
		UsesLeft:    m.UsesLeft,
		Active:      m.Active,
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.ExpiresAt != nil {
		expiry := m.ExpiresAt.UTC()
		grant.ExpiresAt = &expiry
	}
	return grant
}

func grantModelFromEntity(grant entities.Grant) grantModel {
	row := grantModel{
		ContentID:   grant.ContentID,
		User:        grant.User,
		LicenseID:   grant.LicenseID,
		PurchasedAt: grant.PurchasedAt.UTC(),
		UsesLeft:    grant.UsesLeft,
		Active:      grant.Active,
		UpdatedAt:   grant.UpdatedAt.UTC(),
	}
	if grant.ExpiresAt != nil {
		expiry := grant.ExpiresAt.UTC()
		row.ExpiresAt = &expiry
	}
	return row
}

type accessKeyModel struct {
	ContentID uint64    `gorm:"column:content_id;primaryKey"`
	Key       string    `gorm:"column:access_key"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accessKeyModel) TableName() string {
	return "access_keys"
}

func (m accessKeyModel) toEntity() entities.AccessKey {
	return entities.AccessKey{
		ContentID: m.ContentID,
		Key:       m.Key,
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "access_outbox"
}

var _ ports.GrantRepository = (*Repository)(nil)
var _ ports.AccessKeyRepository = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
