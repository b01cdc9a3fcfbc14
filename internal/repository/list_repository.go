package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fwtracker/backend/internal/domain"
)

// ListCounts carries per-list item totals for list summaries.
type ListCounts struct {
	ItemCount      int64
	CompletedCount int64
}

// ShareWithGrantee is a share row joined with the grantee's username.
type ShareWithGrantee struct {
	domain.Share
	Username string `json:"username"`
}

// SharedList is a list shared to a user, joined with the grant and owner name.
type SharedList struct {
	domain.List
	Permission domain.Permission `json:"permission"`
	OwnerName  string            `json:"owner_name"`
	ShareID    uint              `json:"share_id"`
}

// ListRepository defines data operations for lists and their share grants.
type ListRepository interface {
	Create(ctx context.Context, list *domain.List) error
	// CreateWithItems creates a list, its items and framework attachments
	// in one transaction; a failure leaves nothing behind.
	CreateWithItems(ctx context.Context, list *domain.List, items []domain.Item, frameworkKeys []string) error
	FindByID(ctx context.Context, id uint) (*domain.List, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.List, error)
	Update(ctx context.Context, list *domain.List) error
	Delete(ctx context.Context, id uint) error
	Counts(ctx context.Context, listID uint) (ListCounts, error)

	UpsertShare(ctx context.Context, share *domain.Share) error
	FindShare(ctx context.Context, listID, granteeID uint) (*domain.Share, error)
	FindShareByID(ctx context.Context, id uint) (*domain.Share, error)
	DeleteShare(ctx context.Context, id uint) error
	SharesForList(ctx context.Context, listID uint) ([]ShareWithGrantee, error)
	ListsSharedWith(ctx context.Context, granteeID uint) ([]SharedList, error)
}

type gormListRepository struct {
	db *gorm.DB
}

// NewGormListRepository creates a new GORM list repository.
func NewGormListRepository(db *gorm.DB) ListRepository {
	return &gormListRepository{db: db}
}

func (r *gormListRepository) Create(ctx context.Context, list *domain.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *gormListRepository) CreateWithItems(ctx context.Context, list *domain.List, items []domain.Item, frameworkKeys []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(list).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ListID = list.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		for _, key := range frameworkKeys {
			attach := domain.ListFramework{ListID: list.ID, FrameworkKey: key}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&attach).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormListRepository) FindByID(ctx context.Context, id uint) (*domain.List, error) {
	var list domain.List
	if err := r.db.WithContext(ctx).First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *gormListRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.List, error) {
	var lists []domain.List
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&lists).Error
	return lists, err
}

func (r *gormListRepository) Update(ctx context.Context, list *domain.List) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// Delete removes a list and everything hanging off it in one transaction.
// Cascades are done explicitly so behavior is identical on both backends.
func (r *gormListRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&domain.Item{}).Select("id").Where("list_id = ?", id)
		if err := tx.Where("item_id IN (?)", itemIDs).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", itemIDs).Delete(&domain.ItemFrameworkData{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM item_tags WHERE item_id IN (SELECT id FROM items WHERE list_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", id).Delete(&domain.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", id).Delete(&domain.Share{}).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", id).Delete(&domain.ListFramework{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.List{}, id).Error
	})
}

func (r *gormListRepository) Counts(ctx context.Context, listID uint) (ListCounts, error) {
	var counts ListCounts
	err := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("list_id = ?", listID).
		Count(&counts.ItemCount).Error
	if err != nil {
		return counts, err
	}
	err = r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("list_id = ? AND completed = ?", listID, true).
		Count(&counts.CompletedCount).Error
	return counts, err
}

// UpsertShare inserts a grant or, for an existing (list, grantee) pair,
// updates the permission in place.
func (r *gormListRepository) UpsertShare(ctx context.Context, share *domain.Share) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "list_id"}, {Name: "grantee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission"}),
	}).Create(share).Error
}

func (r *gormListRepository) FindShare(ctx context.Context, listID, granteeID uint) (*domain.Share, error) {
	var share domain.Share
	err := r.db.WithContext(ctx).
		Where("list_id = ? AND grantee_id = ?", listID, granteeID).
		First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *gormListRepository) FindShareByID(ctx context.Context, id uint) (*domain.Share, error) {
	var share domain.Share
	if err := r.db.WithContext(ctx).First(&share, id).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *gormListRepository) DeleteShare(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Share{}, id).Error
}

func (r *gormListRepository) SharesForList(ctx context.Context, listID uint) ([]ShareWithGrantee, error) {
	var rows []ShareWithGrantee
	err := r.db.WithContext(ctx).Model(&domain.Share{}).
		Select("shares.*, users.username AS username").
		Joins("JOIN users ON users.id = shares.grantee_id").
		Where("shares.list_id = ?", listID).
		Scan(&rows).Error
	return rows, err
}

func (r *gormListRepository) ListsSharedWith(ctx context.Context, granteeID uint) ([]SharedList, error) {
	var rows []SharedList
	err := r.db.WithContext(ctx).Model(&domain.List{}).
		Select("lists.*, shares.permission AS permission, shares.id AS share_id, users.username AS owner_name").
		Joins("JOIN shares ON shares.list_id = lists.id").
		Joins("JOIN users ON users.id = lists.owner_id").
		Where("shares.grantee_id = ?", granteeID).
		Scan(&rows).Error
	return rows, err
}
