package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

// ListRequest holds the data needed to create or update a list.
type ListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListSummary is a list plus the counters the overview screen shows.
type ListSummary struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	ItemCount      int64     `json:"item_count"`
	CompletedCount int64     `json:"completed_count"`
	Frameworks     []string  `json:"frameworks"`
	Shared         bool      `json:"shared"`
}

// ListService implements list CRUD scoped to the owning user.
type ListService interface {
	GetLists(ctx context.Context, userID uint) ([]ListSummary, error)
	CreateList(ctx context.Context, userID uint, req ListRequest) (*domain.List, error)
	UpdateList(ctx context.Context, userID, listID uint, req ListRequest) (*domain.List, error)
	DeleteList(ctx context.Context, userID, listID uint) error
}

type listService struct {
	lists      repository.ListRepository
	frameworks repository.FrameworkRepository
}

// NewListService creates a new instance of listService.
func NewListService(lists repository.ListRepository, frameworks repository.FrameworkRepository) ListService {
	return &listService{lists: lists, frameworks: frameworks}
}

func (s *listService) GetLists(ctx context.Context, userID uint) ([]ListSummary, error) {
	lists, err := s.lists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		counts, err := s.lists.Counts(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		keys, err := s.frameworks.KeysForList(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		if keys == nil {
			keys = []string{}
		}
		summaries = append(summaries, ListSummary{
			ID:             l.ID,
			Name:           l.Name,
			Description:    l.Description,
			CreatedAt:      l.CreatedAt,
			ItemCount:      counts.ItemCount,
			CompletedCount: counts.CompletedCount,
			Frameworks:     keys,
		})
	}
	return summaries, nil
}

func (s *listService) CreateList(ctx context.Context, userID uint, req ListRequest) (*domain.List, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: list name is required", ErrValidation)
	}
	list := &domain.List{OwnerID: userID, Name: name, Description: strings.TrimSpace(req.Description)}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *listService) UpdateList(ctx context.Context, userID, listID uint, req ListRequest) (*domain.List, error) {
	list, err := ownedList(ctx, s.lists, userID, listID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: list name is required", ErrValidation)
	}
	list.Name = name
	list.Description = strings.TrimSpace(req.Description)
	if err := s.lists.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *listService) DeleteList(ctx context.Context, userID, listID uint) error {
	if _, err := ownedList(ctx, s.lists, userID, listID); err != nil {
		return err
	}
	return s.lists.Delete(ctx, listID)
}
