package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
)

// CommentWithAuthor is a comment row joined with the author's username.
type CommentWithAuthor struct {
	domain.Comment
	Username string `json:"username"`
}

// CommentRepository defines data operations for item comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)
	ListByItem(ctx context.Context, itemID uint) ([]CommentWithAuthor, error)
	Delete(ctx context.Context, id uint) error
}

type gormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM comment repository.
func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *gormCommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *gormCommentRepository) ListByItem(ctx context.Context, itemID uint) ([]CommentWithAuthor, error) {
	var rows []CommentWithAuthor
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.item_id = ?", itemID).
		Order("comments.created_at ASC, comments.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *gormCommentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Comment{}, id).Error
}
