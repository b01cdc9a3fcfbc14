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

// ShareRequest holds the data needed to grant access to a list.
type ShareRequest struct {
	Username   string `json:"username"`
	Permission string `json:"permission"`
}

// SharedListSummary is a list shared to the current user, with the
// owner's name, the granted permission and an item count.
type SharedListSummary struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	OwnerName   string            `json:"owner_name"`
	Permission  domain.Permission `json:"permission"`
	ItemCount   int64             `json:"item_count"`
	Shared      bool              `json:"shared"`
}

// ShareService implements list sharing. All grant management is owner-only.
type ShareService interface {
	// ShareList grants the named user access; re-sharing an existing
	// grantee updates the permission instead of duplicating the grant.
	ShareList(ctx context.Context, ownerID, listID uint, req ShareRequest) (*domain.Share, error)
	GetShares(ctx context.Context, ownerID, listID uint) ([]repository.ShareWithGrantee, error)
	Unshare(ctx context.Context, ownerID, listID, shareID uint) error
	SharedWithMe(ctx context.Context, userID uint) ([]SharedListSummary, error)
}

type shareService struct {
	lists repository.ListRepository
	users repository.UserRepository
}

// NewShareService creates a new instance of shareService.
func NewShareService(lists repository.ListRepository, users repository.UserRepository) ShareService {
	return &shareService{lists: lists, users: users}
}

func (s *shareService) ShareList(ctx context.Context, ownerID, listID uint, req ShareRequest) (*domain.Share, error) {
	if _, err := ownedList(ctx, s.lists, ownerID, listID); err != nil {
		return nil, err
	}
	permission := domain.Permission(req.Permission)
	if req.Permission == "" {
		permission = domain.PermissionView
	}
	if !domain.ValidPermission(permission) {
		return nil, fmt.Errorf("%w: permission must be view or edit", ErrValidation)
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))
	grantee, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
		}
		return nil, err
	}
	if grantee.ID == ownerID {
		return nil, fmt.Errorf("%w: cannot share a list with yourself", ErrValidation)
	}
	share := &domain.Share{ListID: listID, GranteeID: grantee.ID, Permission: permission}
	if err := s.lists.UpsertShare(ctx, share); err != nil {
		return nil, err
	}
	// The upsert may have updated an existing grant; re-read for the row id.
	return s.lists.FindShare(ctx, listID, grantee.ID)
}

func (s *shareService) GetShares(ctx context.Context, ownerID, listID uint) ([]repository.ShareWithGrantee, error) {
	if _, err := ownedList(ctx, s.lists, ownerID, listID); err != nil {
		return nil, err
	}
	rows, err := s.lists.SharesForList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.ShareWithGrantee{}
	}
	return rows, nil
}

func (s *shareService) Unshare(ctx context.Context, ownerID, listID, shareID uint) error {
	if _, err := ownedList(ctx, s.lists, ownerID, listID); err != nil {
		return err
	}
	share, err := s.lists.FindShareByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: share %d", ErrNotFound, shareID)
		}
		return err
	}
	if share.ListID != listID {
		return fmt.Errorf("%w: share %d", ErrNotFound, shareID)
	}
	return s.lists.DeleteShare(ctx, shareID)
}

func (s *shareService) SharedWithMe(ctx context.Context, userID uint) ([]SharedListSummary, error) {
	rows, err := s.lists.ListsSharedWith(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]SharedListSummary, 0, len(rows))
	for _, row := range rows {
		counts, err := s.lists.Counts(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, SharedListSummary{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			OwnerName:   row.OwnerName,
			Permission:  row.Permission,
			ItemCount:   counts.ItemCount,
			Shared:      true,
		})
	}
	return summaries, nil
}
