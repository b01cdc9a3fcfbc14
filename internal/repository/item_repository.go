package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fwtracker/backend/internal/domain"
)

// ErrNotInList reports that a submitted item id does not belong to the
// list an aggregate operation targets.
var ErrNotInList = errors.New("item not in list")

// ItemRepository defines data operations for items and their tag links.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	FindByID(ctx context.Context, id uint) (*domain.Item, error)
	ListByList(ctx context.Context, listID uint) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uint) error
	NextPosition(ctx context.Context, listID uint) (int, error)
	IDsForList(ctx context.Context, listID uint) ([]uint, error)

	// Reorder rewrites positions for the full ordering in one transaction.
	Reorder(ctx context.Context, listID uint, orderedIDs []uint) error
	// BulkDelete removes the given items of a list atomically.
	BulkDelete(ctx context.Context, listID uint, ids []uint) error
	// BulkMove reassigns the given items to another list atomically.
	BulkMove(ctx context.Context, fromListID, toListID uint, ids []uint) error

	AddTag(ctx context.Context, itemID, tagID uint) error
	RemoveTag(ctx context.Context, itemID, tagID uint) error
}

type gormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM item repository.
func NewGormItemRepository(db *gorm.DB) ItemRepository {
	return &gormItemRepository{db: db}
}

func (r *gormItemRepository) Create(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	if err := r.db.WithContext(ctx).Preload("Tags").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormItemRepository) ListByList(ctx context.Context, listID uint) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("list_id = ?", listID).
		Order("position, id").
		Find(&items).Error
	return items, err
}

func (r *gormItemRepository) Update(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

// Delete removes an item plus its comments, tag links and framework data.
func (r *gormItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteItemRows(tx, []uint{id})
	})
}

func deleteItemRows(tx *gorm.DB, ids []uint) error {
	if err := tx.Where("item_id IN ?", ids).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("item_id IN ?", ids).Delete(&domain.ItemFrameworkData{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM item_tags WHERE item_id IN ?", ids).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&domain.Item{}).Error
}

func (r *gormItemRepository) NextPosition(ctx context.Context, listID uint) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("list_id = ?", listID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	return next, err
}

func (r *gormItemRepository) IDsForList(ctx context.Context, listID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("list_id = ?", listID).
		Order("position, id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *gormItemRepository) Reorder(ctx context.Context, listID uint, orderedIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx, id := range orderedIDs {
			res := tx.Model(&domain.Item{}).
				Where("id = ? AND list_id = ?", id, listID).
				Update("position", idx)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != 1 {
				return fmt.Errorf("%w: item %d, list %d", ErrNotInList, id, listID)
			}
		}
		return nil
	})
}

func (r *gormItemRepository) BulkDelete(ctx context.Context, listID uint, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := verifyMembership(tx, listID, ids); err != nil {
			return err
		}
		return deleteItemRows(tx, ids)
	})
}

func (r *gormItemRepository) BulkMove(ctx context.Context, fromListID, toListID uint, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := verifyMembership(tx, fromListID, ids); err != nil {
			return err
		}
		var next int
		err := tx.Model(&domain.Item{}).
			Where("list_id = ?", toListID).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error
		if err != nil {
			return err
		}
		for i, id := range ids {
			err := tx.Model(&domain.Item{}).
				Where("id = ?", id).
				Updates(map[string]any{"list_id": toListID, "position": next + i}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// verifyMembership fails unless every id is an item of the given list,
// making the bulk operations all-or-nothing.
func verifyMembership(tx *gorm.DB, listID uint, ids []uint) error {
	var count int64
	err := tx.Model(&domain.Item{}).
		Where("list_id = ? AND id IN ?", listID, ids).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return fmt.Errorf("%w: %d of %d ids do not belong to list %d", ErrNotInList, int64(len(ids))-count, len(ids), listID)
	}
	return nil
}

func (r *gormItemRepository) AddTag(ctx context.Context, itemID, tagID uint) error {
	return r.db.WithContext(ctx).
		Table("item_tags").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]any{"item_id": itemID, "tag_id": tagID}).Error
}

func (r *gormItemRepository) RemoveTag(ctx context.Context, itemID, tagID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM item_tags WHERE item_id = ? AND tag_id = ?", itemID, tagID).Error
}
