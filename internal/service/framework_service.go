package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

// FrameworkItemData is one item's stored payload for a framework view.
type FrameworkItemData struct {
	Data        map[string]any `json:"data"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
}

// FrameworkService implements the framework catalog, per-list attachment
// and per-item framework data.
type FrameworkService interface {
	Catalog() []domain.Framework
	GetListFrameworks(ctx context.Context, userID, listID uint) ([]string, error)
	// AttachFramework is idempotent; unknown keys fail validation.
	AttachFramework(ctx context.Context, userID, listID uint, key string) error
	// DetachFramework retains stored per-item data so a later re-attach
	// restores prior placements.
	DetachFramework(ctx context.Context, userID, listID uint, key string) error
	// SetItemData merges the partial payload field-by-field into the
	// item's stored data for the key, validating against the catalog schema.
	SetItemData(ctx context.Context, userID, itemID uint, key string, payload map[string]any) (map[string]any, error)
	// GetListData returns item-id → stored payload for one framework view.
	GetListData(ctx context.Context, userID, listID uint, key string) (map[string]FrameworkItemData, error)
	// BatchSetData merges payloads for many items of one list atomically.
	BatchSetData(ctx context.Context, userID, listID uint, key string, payloads map[string]map[string]any) error
}

type frameworkService struct {
	frameworks repository.FrameworkRepository
	lists      repository.ListRepository
	items      repository.ItemRepository
}

// NewFrameworkService creates a new instance of frameworkService.
func NewFrameworkService(frameworks repository.FrameworkRepository, lists repository.ListRepository, items repository.ItemRepository) FrameworkService {
	return &frameworkService{frameworks: frameworks, lists: lists, items: items}
}

func (s *frameworkService) Catalog() []domain.Framework {
	return domain.FrameworkCatalog()
}

func (s *frameworkService) GetListFrameworks(ctx context.Context, userID, listID uint) ([]string, error) {
	if _, err := listAccess(ctx, s.lists, userID, listID, accessRead); err != nil {
		return nil, err
	}
	keys, err := s.frameworks.KeysForList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

func (s *frameworkService) AttachFramework(ctx context.Context, userID, listID uint, key string) error {
	if !domain.ValidFrameworkKey(key) {
		return fmt.Errorf("%w: unknown framework %q", ErrValidation, key)
	}
	if _, err := ownedList(ctx, s.lists, userID, listID); err != nil {
		return err
	}
	return s.frameworks.Attach(ctx, listID, key)
}

func (s *frameworkService) DetachFramework(ctx context.Context, userID, listID uint, key string) error {
	if _, err := ownedList(ctx, s.lists, userID, listID); err != nil {
		return err
	}
	return s.frameworks.Detach(ctx, listID, key)
}

// mergeItemData loads the stored payload for (itemID, key), merges the
// partial payload over it and returns the marshaled result.
func (s *frameworkService) mergeItemData(ctx context.Context, itemID uint, key string, payload map[string]any) (map[string]any, string, error) {
	merged := map[string]any{}
	existing, err := s.frameworks.FindItemData(ctx, itemID, key)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	if existing != nil {
		if err := json.Unmarshal([]byte(existing.DataJSON), &merged); err != nil {
			// a corrupt stored blob should not brick the item; start over
			merged = map[string]any{}
		}
	}
	for field, value := range payload {
		merged[field] = value
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, "", err
	}
	return merged, string(raw), nil
}

func (s *frameworkService) SetItemData(ctx context.Context, userID, itemID uint, key string, payload map[string]any) (map[string]any, error) {
	if !domain.ValidFrameworkKey(key) {
		return nil, fmt.Errorf("%w: unknown framework %q", ErrValidation, key)
	}
	if err := domain.ValidateFrameworkPayload(key, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := itemAccess(ctx, s.items, s.lists, userID, itemID, accessWrite); err != nil {
		return nil, err
	}
	merged, raw, err := s.mergeItemData(ctx, itemID, key, payload)
	if err != nil {
		return nil, err
	}
	row := &domain.ItemFrameworkData{ItemID: itemID, FrameworkKey: key, DataJSON: raw}
	if err := s.frameworks.UpsertItemData(ctx, row); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *frameworkService) GetListData(ctx context.Context, userID, listID uint, key string) (map[string]FrameworkItemData, error) {
	if !domain.ValidFrameworkKey(key) {
		return nil, fmt.Errorf("%w: unknown framework %q", ErrValidation, key)
	}
	if _, err := listAccess(ctx, s.lists, userID, listID, accessRead); err != nil {
		return nil, err
	}
	rows, err := s.frameworks.DataForList(ctx, listID, key)
	if err != nil {
		return nil, err
	}
	result := make(map[string]FrameworkItemData, len(rows))
	for _, row := range rows {
		data := map[string]any{}
		if err := json.Unmarshal([]byte(row.DataJSON), &data); err != nil {
			data = map[string]any{}
		}
		result[strconv.FormatUint(uint64(row.ItemID), 10)] = FrameworkItemData{
			Data:        data,
			Title:       row.Title,
			Description: row.Description,
		}
	}
	return result, nil
}

func (s *frameworkService) BatchSetData(ctx context.Context, userID, listID uint, key string, payloads map[string]map[string]any) error {
	if !domain.ValidFrameworkKey(key) {
		return fmt.Errorf("%w: unknown framework %q", ErrValidation, key)
	}
	if len(payloads) == 0 {
		return fmt.Errorf("%w: items are required", ErrValidation)
	}
	if len(payloads) > maxBatchSize {
		return fmt.Errorf("%w: too many items", ErrValidation)
	}
	if _, err := listAccess(ctx, s.lists, userID, listID, accessWrite); err != nil {
		return err
	}
	members, err := s.items.IDsForList(ctx, listID)
	if err != nil {
		return err
	}
	inList := make(map[uint]bool, len(members))
	for _, id := range members {
		inList[id] = true
	}

	rows := make([]domain.ItemFrameworkData, 0, len(payloads))
	for rawID, payload := range payloads {
		id64, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: invalid item id %q", ErrValidation, rawID)
		}
		itemID := uint(id64)
		if !inList[itemID] {
			return fmt.Errorf("%w: item %d is not part of list %d", ErrValidation, itemID, listID)
		}
		if err := domain.ValidateFrameworkPayload(key, payload); err != nil {
			return fmt.Errorf("%w: item %d: %v", ErrValidation, itemID, err)
		}
		_, raw, err := s.mergeItemData(ctx, itemID, key, payload)
		if err != nil {
			return err
		}
		rows = append(rows, domain.ItemFrameworkData{ItemID: itemID, FrameworkKey: key, DataJSON: raw})
	}
	return s.frameworks.BatchUpsertItemData(ctx, rows)
}
