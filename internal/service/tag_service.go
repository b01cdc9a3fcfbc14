package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

const defaultTagColor = "#6366f1"

// TagRequest holds the data needed to create a tag.
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagService implements tag CRUD and item tag assignment.
type TagService interface {
	GetTags(ctx context.Context, userID uint) ([]domain.Tag, error)
	CreateTag(ctx context.Context, userID uint, req TagRequest) (*domain.Tag, error)
	// DeleteTag removes the tag from every item that referenced it;
	// deleting an unknown tag fails with ErrNotFound.
	DeleteTag(ctx context.Context, userID, tagID uint) error
	// AssignTag and RemoveTag are idempotent.
	AssignTag(ctx context.Context, userID, itemID, tagID uint) error
	RemoveTag(ctx context.Context, userID, itemID, tagID uint) error
}

type tagService struct {
	tags  repository.TagRepository
	items repository.ItemRepository
	lists repository.ListRepository
}

// NewTagService creates a new instance of tagService.
func NewTagService(tags repository.TagRepository, items repository.ItemRepository, lists repository.ListRepository) TagService {
	return &tagService{tags: tags, items: items, lists: lists}
}

func (s *tagService) GetTags(ctx context.Context, userID uint) ([]domain.Tag, error) {
	tags, err := s.tags.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

func (s *tagService) CreateTag(ctx context.Context, userID uint, req TagRequest) (*domain.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", ErrValidation)
	}
	color := req.Color
	if !colorPattern.MatchString(color) {
		color = defaultTagColor
	}
	tag := &domain.Tag{OwnerID: userID, Name: name, Color: color}
	if err := s.tags.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: tag already exists", ErrConflict)
		}
		return nil, err
	}
	return tag, nil
}

// ownedTag resolves a tag the actor must own; foreign tags surface as not found.
func (s *tagService) ownedTag(ctx context.Context, userID, tagID uint) (*domain.Tag, error) {
	tag, err := s.tags.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tag %d", ErrNotFound, tagID)
		}
		return nil, err
	}
	if tag.OwnerID != userID {
		return nil, fmt.Errorf("%w: tag %d", ErrNotFound, tagID)
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, userID, tagID uint) error {
	if _, err := s.ownedTag(ctx, userID, tagID); err != nil {
		return err
	}
	return s.tags.Delete(ctx, tagID)
}

func (s *tagService) AssignTag(ctx context.Context, userID, itemID, tagID uint) error {
	if _, err := itemAccess(ctx, s.items, s.lists, userID, itemID, accessWrite); err != nil {
		return err
	}
	if _, err := s.ownedTag(ctx, userID, tagID); err != nil {
		return err
	}
	return s.items.AddTag(ctx, itemID, tagID)
}

func (s *tagService) RemoveTag(ctx context.Context, userID, itemID, tagID uint) error {
	if _, err := itemAccess(ctx, s.items, s.lists, userID, itemID, accessWrite); err != nil {
		return err
	}
	return s.items.RemoveTag(ctx, itemID, tagID)
}
