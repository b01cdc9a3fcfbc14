package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

// CommentRequest holds the data needed to create a comment.
type CommentRequest struct {
	Content string `json:"content"`
}

// CommentService implements item comments. Comments are immutable once
// created; the only mutation is deletion.
type CommentService interface {
	GetComments(ctx context.Context, userID, itemID uint) ([]repository.CommentWithAuthor, error)
	CreateComment(ctx context.Context, userID, itemID uint, req CommentRequest) (*domain.Comment, error)
	// DeleteComment is allowed for the comment's author or the owner of
	// the list containing the item.
	DeleteComment(ctx context.Context, userID, commentID uint) error
}

type commentService struct {
	comments repository.CommentRepository
	items    repository.ItemRepository
	lists    repository.ListRepository
}

// NewCommentService creates a new instance of commentService.
func NewCommentService(comments repository.CommentRepository, items repository.ItemRepository, lists repository.ListRepository) CommentService {
	return &commentService{comments: comments, items: items, lists: lists}
}

func (s *commentService) GetComments(ctx context.Context, userID, itemID uint) ([]repository.CommentWithAuthor, error) {
	if _, err := itemAccess(ctx, s.items, s.lists, userID, itemID, accessRead); err != nil {
		return nil, err
	}
	rows, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.CommentWithAuthor{}
	}
	return rows, nil
}

func (s *commentService) CreateComment(ctx context.Context, userID, itemID uint, req CommentRequest) (*domain.Comment, error) {
	if _, err := itemAccess(ctx, s.items, s.lists, userID, itemID, accessWrite); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrValidation)
	}
	comment := &domain.Comment{ItemID: itemID, AuthorID: userID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return err
	}
	if comment.AuthorID != userID {
		item, err := s.items.FindByID(ctx, comment.ItemID)
		if err != nil {
			return err
		}
		list, err := s.lists.FindByID(ctx, item.ListID)
		if err != nil {
			return err
		}
		if list.OwnerID != userID {
			return fmt.Errorf("%w: only the author or the list owner may delete a comment", ErrForbidden)
		}
	}
	return s.comments.Delete(ctx, commentID)
}
