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

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const maxBatchSize = 500

// ItemRequest holds the data needed to create or update an item.
type ItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// ItemService implements item CRUD and the aggregate item operations.
type ItemService interface {
	GetItems(ctx context.Context, userID, listID uint) ([]domain.Item, error)
	CreateItem(ctx context.Context, userID, listID uint, req ItemRequest) (*domain.Item, error)
	UpdateItem(ctx context.Context, userID, listID, itemID uint, req ItemRequest) (*domain.Item, error)
	DeleteItem(ctx context.Context, userID, listID, itemID uint) error
	// ToggleItem flips completion and returns the new value.
	ToggleItem(ctx context.Context, userID, listID, itemID uint) (bool, error)
	// Reorder accepts the full ordering; the submitted ids must be an
	// exact permutation of the list's current item ids.
	Reorder(ctx context.Context, userID, listID uint, orderedIDs []uint) error
	// BulkDelete removes the given items, all-or-nothing.
	BulkDelete(ctx context.Context, userID, listID uint, ids []uint) error
	// BulkMove reassigns the given items to another writable list, all-or-nothing.
	BulkMove(ctx context.Context, userID, listID, targetListID uint, ids []uint) error
}

type itemService struct {
	items repository.ItemRepository
	lists repository.ListRepository
}

// NewItemService creates a new instance of itemService.
func NewItemService(items repository.ItemRepository, lists repository.ListRepository) ItemService {
	return &itemService{items: items, lists: lists}
}

func parsePriority(raw string) (domain.Priority, error) {
	if raw == "" {
		return domain.PriorityMedium, nil
	}
	p := domain.Priority(raw)
	if !domain.ValidPriority(p) {
		return "", fmt.Errorf("%w: priority must be low, medium or high", ErrValidation)
	}
	return p, nil
}

func parseDueDate(raw *string) (*string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if !datePattern.MatchString(*raw) {
		return nil, fmt.Errorf("%w: due_date must be YYYY-MM-DD", ErrValidation)
	}
	return raw, nil
}

func (s *itemService) GetItems(ctx context.Context, userID, listID uint) ([]domain.Item, error) {
	if _, err := listAccess(ctx, s.lists, userID, listID, accessRead); err != nil {
		return nil, err
	}
	items, err := s.items.ListByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Tags == nil {
			items[i].Tags = []domain.Tag{}
		}
	}
	return items, nil
}

func (s *itemService) CreateItem(ctx context.Context, userID, listID uint, req ItemRequest) (*domain.Item, error) {
	if _, err := listAccess(ctx, s.lists, userID, listID, accessWrite); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	position, err := s.items.NextPosition(ctx, listID)
	if err != nil {
		return nil, err
	}
	item := &domain.Item{
		ListID:      listID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		DueDate:     dueDate,
		Position:    position,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Tags = []domain.Tag{}
	return item, nil
}

// itemInList resolves an item, requiring it to belong to the given list.
func (s *itemService) itemInList(ctx context.Context, userID, listID, itemID uint, level accessLevel) (*domain.Item, error) {
	if _, err := listAccess(ctx, s.lists, userID, listID, level); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrNotFound, itemID)
		}
		return nil, err
	}
	if item.ListID != listID {
		return nil, fmt.Errorf("%w: item %d", ErrNotFound, itemID)
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, userID, listID, itemID uint, req ItemRequest) (*domain.Item, error) {
	item, err := s.itemInList(ctx, userID, listID, itemID, accessWrite)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	item.Title = title
	item.Description = strings.TrimSpace(req.Description)
	item.Priority = priority
	item.DueDate = dueDate
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, userID, listID, itemID uint) error {
	if _, err := s.itemInList(ctx, userID, listID, itemID, accessWrite); err != nil {
		return err
	}
	return s.items.Delete(ctx, itemID)
}

func (s *itemService) ToggleItem(ctx context.Context, userID, listID, itemID uint) (bool, error) {
	item, err := s.itemInList(ctx, userID, listID, itemID, accessWrite)
	if err != nil {
		return false, err
	}
	item.Completed = !item.Completed
	if err := s.items.Update(ctx, item); err != nil {
		return false, err
	}
	return item.Completed, nil
}

func (s *itemService) Reorder(ctx context.Context, userID, listID uint, orderedIDs []uint) error {
	if _, err := listAccess(ctx, s.lists, userID, listID, accessWrite); err != nil {
		return err
	}
	if len(orderedIDs) > maxBatchSize {
		return fmt.Errorf("%w: too many items", ErrValidation)
	}
	current, err := s.items.IDsForList(ctx, listID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(current) {
		return fmt.Errorf("%w: order must contain every item of the list exactly once", ErrValidation)
	}
	seen := make(map[uint]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}
	for _, id := range orderedIDs {
		if !seen[id] {
			return fmt.Errorf("%w: order must contain every item of the list exactly once", ErrValidation)
		}
		delete(seen, id)
	}
	return s.items.Reorder(ctx, listID, orderedIDs)
}

func uniqueIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids are required", ErrValidation)
	}
	if len(ids) > maxBatchSize {
		return nil, fmt.Errorf("%w: too many ids", ErrValidation)
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *itemService) BulkDelete(ctx context.Context, userID, listID uint, ids []uint) error {
	if _, err := listAccess(ctx, s.lists, userID, listID, accessWrite); err != nil {
		return err
	}
	unique, err := uniqueIDs(ids)
	if err != nil {
		return err
	}
	if err := s.items.BulkDelete(ctx, listID, unique); err != nil {
		if errors.Is(err, repository.ErrNotInList) {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return err
	}
	return nil
}

func (s *itemService) BulkMove(ctx context.Context, userID, listID, targetListID uint, ids []uint) error {
	if _, err := listAccess(ctx, s.lists, userID, listID, accessWrite); err != nil {
		return err
	}
	if _, err := listAccess(ctx, s.lists, userID, targetListID, accessWrite); err != nil {
		return err
	}
	if listID == targetListID {
		return fmt.Errorf("%w: target list must differ from the source list", ErrValidation)
	}
	unique, err := uniqueIDs(ids)
	if err != nil {
		return err
	}
	if err := s.items.BulkMove(ctx, listID, targetListID, unique); err != nil {
		if errors.Is(err, repository.ErrNotInList) {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return err
	}
	return nil
}
