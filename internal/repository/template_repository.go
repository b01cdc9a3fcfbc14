package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
)

// TemplateRepository defines data operations for list templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.Template) error
	FindByID(ctx context.Context, id uint) (*domain.Template, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.Template, error)
	Delete(ctx context.Context, id uint) error
}

type gormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GORM template repository.
func NewGormTemplateRepository(db *gorm.DB) TemplateRepository {
	return &gormTemplateRepository{db: db}
}

func (r *gormTemplateRepository) Create(ctx context.Context, template *domain.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *gormTemplateRepository) FindByID(ctx context.Context, id uint) (*domain.Template, error) {
	var template domain.Template
	if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *gormTemplateRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Template, error) {
	var templates []domain.Template
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&templates).Error
	return templates, err
}

func (r *gormTemplateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Template{}, id).Error
}
