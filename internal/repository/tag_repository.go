package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
)

// TagRepository defines data operations for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	FindByID(ctx context.Context, id uint) (*domain.Tag, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.Tag, error)
	// Delete removes the tag and every item link referencing it.
	Delete(ctx context.Context, id uint) error
}

type gormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GORM tag repository.
func NewGormTagRepository(db *gorm.DB) TagRepository {
	return &gormTagRepository{db: db}
}

func (r *gormTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *gormTagRepository) FindByID(ctx context.Context, id uint) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *gormTagRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name").
		Find(&tags).Error
	return tags, err
}

func (r *gormTagRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM item_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Tag{}, id).Error
	})
}
