package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwtracker/backend/internal/domain"
)

func TestShareListViewPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	list := env.createList(t, alice.ID, "Inbox")
	env.createItem(t, alice.ID, list.ID, "a")

	share, err := env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionView, share.Permission)

	// bob can read but not write
	items, err := env.itemSvc.GetItems(ctx, bob.ID, list.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = env.itemSvc.CreateItem(ctx, bob.ID, list.ID, ItemRequest{Title: "nope"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestShareListEditPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	list := env.createList(t, alice.ID, "Inbox")

	_, err := env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "bob", Permission: "edit"})
	require.NoError(t, err)

	item, err := env.itemSvc.CreateItem(ctx, bob.ID, list.ID, ItemRequest{Title: "from bob"})
	require.NoError(t, err)

	// the owner sees bob's item
	items, err := env.itemSvc.GetItems(ctx, alice.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	// editors still cannot manage the list itself
	_, err = env.shareSvc.ShareList(ctx, bob.ID, list.ID, ShareRequest{Username: "alice"})
	assert.ErrorIs(t, err, ErrNotFound)
	err = env.listSvc.DeleteList(ctx, bob.ID, list.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReshareUpdatesPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")
	list := env.createList(t, alice.ID, "Inbox")

	first, err := env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "bob", Permission: "view"})
	require.NoError(t, err)
	second, err := env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "bob", Permission: "edit"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.PermissionEdit, second.Permission)

	shares, err := env.shareSvc.GetShares(ctx, alice.ID, list.ID)
	require.NoError(t, err)
	assert.Len(t, shares, 1)
}

func TestShareValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, alice.ID, "Inbox")

	_, err := env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "alice"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	env.createUser(t, "bob")
	_, err = env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "bob", Permission: "admin"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUnshareRevokesAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	list := env.createList(t, alice.ID, "Inbox")

	share, err := env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "bob", Permission: "edit"})
	require.NoError(t, err)

	require.NoError(t, env.shareSvc.Unshare(ctx, alice.ID, list.ID, share.ID))

	_, err = env.itemSvc.GetItems(ctx, bob.ID, list.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSharedWithMe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	list := env.createList(t, alice.ID, "Inbox")
	env.createItem(t, alice.ID, list.ID, "a")

	_, err := env.shareSvc.ShareList(ctx, alice.ID, list.ID, ShareRequest{Username: "bob", Permission: "edit"})
	require.NoError(t, err)

	shared, err := env.shareSvc.SharedWithMe(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "Inbox", shared[0].Name)
	assert.Equal(t, "alice", shared[0].OwnerName)
	assert.Equal(t, domain.PermissionEdit, shared[0].Permission)
	assert.Equal(t, int64(1), shared[0].ItemCount)
}
