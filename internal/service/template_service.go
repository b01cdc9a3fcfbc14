package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

// TemplateItem is one entry of a template's item snapshot. Tags, comments
// and framework data are deliberately excluded from snapshots.
type TemplateItem struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
	DueDate     *string         `json:"due_date,omitempty"`
}

// TemplateRequest names a template being saved or a list being created from one.
type TemplateRequest struct {
	Name string `json:"name"`
}

// TemplateResponse is a template with its snapshot decoded.
type TemplateResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Items       []TemplateItem `json:"items"`
	CreatedAt   string         `json:"created_at"`
}

// TemplateService implements immutable list snapshots usable to seed new lists.
type TemplateService interface {
	GetTemplates(ctx context.Context, userID uint) ([]TemplateResponse, error)
	// SaveFromList snapshots the list's current items; the template keeps
	// no live link back to the source list.
	SaveFromList(ctx context.Context, userID, listID uint, req TemplateRequest) (*domain.Template, error)
	// CreateList materializes a new list from the snapshot with fresh
	// item identities and no framework data.
	CreateList(ctx context.Context, userID, templateID uint, req TemplateRequest) (*domain.List, error)
	DeleteTemplate(ctx context.Context, userID, templateID uint) error
}

type templateService struct {
	templates repository.TemplateRepository
	lists     repository.ListRepository
	items     repository.ItemRepository
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templates repository.TemplateRepository, lists repository.ListRepository, items repository.ItemRepository) TemplateService {
	return &templateService{templates: templates, lists: lists, items: items}
}

func (s *templateService) GetTemplates(ctx context.Context, userID uint) ([]TemplateResponse, error) {
	templates, err := s.templates.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		var items []TemplateItem
		if err := json.Unmarshal([]byte(t.ItemsJSON), &items); err != nil {
			items = []TemplateItem{}
		}
		out = append(out, TemplateResponse{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Items:       items,
			CreatedAt:   t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out, nil
}

func (s *templateService) SaveFromList(ctx context.Context, userID, listID uint, req TemplateRequest) (*domain.Template, error) {
	list, err := ownedList(ctx, s.lists, userID, listID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrValidation)
	}
	items, err := s.items.ListByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	snapshot := make([]TemplateItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, TemplateItem{
			Title:       item.Title,
			Description: item.Description,
			Priority:    item.Priority,
			DueDate:     item.DueDate,
		})
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	template := &domain.Template{
		OwnerID:     userID,
		Name:        name,
		Description: list.Description,
		ItemsJSON:   string(raw),
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// ownedTemplate resolves a template the actor must own.
func (s *templateService) ownedTemplate(ctx context.Context, userID, templateID uint) (*domain.Template, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: template %d", ErrNotFound, templateID)
		}
		return nil, err
	}
	if template.OwnerID != userID {
		return nil, fmt.Errorf("%w: template %d", ErrNotFound, templateID)
	}
	return template, nil
}

func (s *templateService) CreateList(ctx context.Context, userID, templateID uint, req TemplateRequest) (*domain.List, error) {
	template, err := s.ownedTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = template.Name
	}
	var snapshot []TemplateItem
	if err := json.Unmarshal([]byte(template.ItemsJSON), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: template snapshot is corrupt", ErrValidation)
	}
	list := &domain.List{OwnerID: userID, Name: name, Description: template.Description}
	items := make([]domain.Item, 0, len(snapshot))
	for idx, entry := range snapshot {
		priority := entry.Priority
		if !domain.ValidPriority(priority) {
			priority = domain.PriorityMedium
		}
		items = append(items, domain.Item{
			Title:       entry.Title,
			Description: entry.Description,
			Priority:    priority,
			DueDate:     entry.DueDate,
			Position:    idx,
		})
	}
	if err := s.lists.CreateWithItems(ctx, list, items, nil); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, userID, templateID uint) error {
	if _, err := s.ownedTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	return s.templates.Delete(ctx, templateID)
}
