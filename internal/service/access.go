package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

type accessLevel int

const (
	accessRead accessLevel = iota
	accessWrite
)

// listAccess resolves a list and checks the actor may act on it at the
// requested level. Owners may do anything; grantees read with "view" and
// additionally write items with "edit". Lists invisible to the actor
// surface as not found rather than forbidden.
func listAccess(ctx context.Context, lists repository.ListRepository, userID, listID uint, level accessLevel) (*domain.List, error) {
	list, err := lists.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: list %d", ErrNotFound, listID)
		}
		return nil, err
	}
	if list.OwnerID == userID {
		return list, nil
	}
	share, err := lists.FindShare(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: list %d", ErrNotFound, listID)
		}
		return nil, err
	}
	if level == accessWrite && share.Permission != domain.PermissionEdit {
		return nil, fmt.Errorf("%w: list %d is shared read-only", ErrForbidden, listID)
	}
	return list, nil
}

// ownedList resolves a list the actor must own outright.
func ownedList(ctx context.Context, lists repository.ListRepository, userID, listID uint) (*domain.List, error) {
	list, err := lists.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: list %d", ErrNotFound, listID)
		}
		return nil, err
	}
	if list.OwnerID != userID {
		return nil, fmt.Errorf("%w: list %d", ErrNotFound, listID)
	}
	return list, nil
}

// itemAccess resolves an item through its parent list's access rules.
func itemAccess(ctx context.Context, items repository.ItemRepository, lists repository.ListRepository, userID, itemID uint, level accessLevel) (*domain.Item, error) {
	item, err := items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrNotFound, itemID)
		}
		return nil, err
	}
	if _, err := listAccess(ctx, lists, userID, item.ListID, level); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrNotFound, itemID)
		}
		return nil, err
	}
	return item, nil
}
