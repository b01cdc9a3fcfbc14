package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fwtracker/backend/internal/domain"
)

// FrameworkDataRow is a framework-data row joined with its item's display fields.
type FrameworkDataRow struct {
	ItemID      uint
	DataJSON    string
	Title       string
	Description string
}

// FrameworkRepository defines data operations for framework attachments and
// per-item framework data.
type FrameworkRepository interface {
	// Attach adds a framework key to a list; attaching twice is a no-op.
	Attach(ctx context.Context, listID uint, key string) error
	// Detach removes the attachment but retains stored per-item data,
	// so re-attaching restores prior placements.
	Detach(ctx context.Context, listID uint, key string) error
	KeysForList(ctx context.Context, listID uint) ([]string, error)

	UpsertItemData(ctx context.Context, row *domain.ItemFrameworkData) error
	FindItemData(ctx context.Context, itemID uint, key string) (*domain.ItemFrameworkData, error)
	DataForList(ctx context.Context, listID uint, key string) ([]FrameworkDataRow, error)
	// BatchUpsertItemData writes many rows atomically.
	BatchUpsertItemData(ctx context.Context, rows []domain.ItemFrameworkData) error
}

type gormFrameworkRepository struct {
	db *gorm.DB
}

// NewGormFrameworkRepository creates a new GORM framework repository.
func NewGormFrameworkRepository(db *gorm.DB) FrameworkRepository {
	return &gormFrameworkRepository{db: db}
}

func (r *gormFrameworkRepository) Attach(ctx context.Context, listID uint, key string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.ListFramework{ListID: listID, FrameworkKey: key}).Error
}

func (r *gormFrameworkRepository) Detach(ctx context.Context, listID uint, key string) error {
	return r.db.WithContext(ctx).
		Where("list_id = ? AND framework_key = ?", listID, key).
		Delete(&domain.ListFramework{}).Error
}

func (r *gormFrameworkRepository) KeysForList(ctx context.Context, listID uint) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&domain.ListFramework{}).
		Where("list_id = ?", listID).
		Order("created_at, id").
		Pluck("framework_key", &keys).Error
	return keys, err
}

func upsertItemData(tx *gorm.DB, row *domain.ItemFrameworkData) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "framework_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data_json", "updated_at"}),
	}).Create(row).Error
}

func (r *gormFrameworkRepository) UpsertItemData(ctx context.Context, row *domain.ItemFrameworkData) error {
	return upsertItemData(r.db.WithContext(ctx), row)
}

func (r *gormFrameworkRepository) FindItemData(ctx context.Context, itemID uint, key string) (*domain.ItemFrameworkData, error) {
	var row domain.ItemFrameworkData
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND framework_key = ?", itemID, key).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormFrameworkRepository) DataForList(ctx context.Context, listID uint, key string) ([]FrameworkDataRow, error) {
	var rows []FrameworkDataRow
	err := r.db.WithContext(ctx).Model(&domain.ItemFrameworkData{}).
		Select("item_framework_data.item_id, item_framework_data.data_json, items.title, items.description").
		Joins("JOIN items ON items.id = item_framework_data.item_id").
		Where("item_framework_data.framework_key = ? AND items.list_id = ?", key, listID).
		Scan(&rows).Error
	return rows, err
}

func (r *gormFrameworkRepository) BatchUpsertItemData(ctx context.Context, rows []domain.ItemFrameworkData) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := upsertItemData(tx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
