package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
)

// RecentItem is an item row joined with its parent list's name.
type RecentItem struct {
	domain.Item
	ListName string `json:"list_name"`
}

// FrameworkUsage is one framework key with its attachment count.
type FrameworkUsage struct {
	FrameworkKey string
	Count        int64
}

// StatsRepository serves the dashboard's read-only aggregates.
type StatsRepository interface {
	TotalLists(ctx context.Context, ownerID uint) (int64, error)
	TotalItems(ctx context.Context, ownerID uint) (int64, error)
	CompletedItems(ctx context.Context, ownerID uint) (int64, error)
	// OverdueItems counts open items whose due date is before today (YYYY-MM-DD).
	OverdueItems(ctx context.Context, ownerID uint, today string) (int64, error)
	OpenHighPriorityItems(ctx context.Context, ownerID uint) (int64, error)
	FrameworkUsage(ctx context.Context, ownerID uint) ([]FrameworkUsage, error)
	RecentItems(ctx context.Context, ownerID uint, limit int) ([]RecentItem, error)
}

type gormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new GORM stats repository.
func NewGormStatsRepository(db *gorm.DB) StatsRepository {
	return &gormStatsRepository{db: db}
}

func (r *gormStatsRepository) ownedItems(ctx context.Context, ownerID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Item{}).
		Joins("JOIN lists ON lists.id = items.list_id").
		Where("lists.owner_id = ?", ownerID)
}

func (r *gormStatsRepository) TotalLists(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.List{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *gormStatsRepository) TotalItems(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.ownedItems(ctx, ownerID).Count(&count).Error
	return count, err
}

func (r *gormStatsRepository) CompletedItems(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.ownedItems(ctx, ownerID).Where("items.completed = ?", true).Count(&count).Error
	return count, err
}

func (r *gormStatsRepository) OverdueItems(ctx context.Context, ownerID uint, today string) (int64, error) {
	var count int64
	err := r.ownedItems(ctx, ownerID).
		Where("items.due_date IS NOT NULL AND items.due_date < ? AND items.completed = ?", today, false).
		Count(&count).Error
	return count, err
}

func (r *gormStatsRepository) OpenHighPriorityItems(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.ownedItems(ctx, ownerID).
		Where("items.priority = ? AND items.completed = ?", domain.PriorityHigh, false).
		Count(&count).Error
	return count, err
}

func (r *gormStatsRepository) FrameworkUsage(ctx context.Context, ownerID uint) ([]FrameworkUsage, error) {
	var rows []FrameworkUsage
	err := r.db.WithContext(ctx).Model(&domain.ListFramework{}).
		Select("list_frameworks.framework_key, COUNT(*) AS count").
		Joins("JOIN lists ON lists.id = list_frameworks.list_id").
		Where("lists.owner_id = ?", ownerID).
		Group("list_frameworks.framework_key").
		Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepository) RecentItems(ctx context.Context, ownerID uint, limit int) ([]RecentItem, error) {
	var rows []RecentItem
	err := r.db.WithContext(ctx).Model(&domain.Item{}).
		Select("items.*, lists.name AS list_name").
		Joins("JOIN lists ON lists.id = items.list_id").
		Where("lists.owner_id = ?", ownerID).
		Order("items.created_at DESC, items.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
