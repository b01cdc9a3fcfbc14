package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachDetachFramework(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, alice.ID, "Inbox")

	require.NoError(t, env.frameworkSvc.AttachFramework(ctx, alice.ID, list.ID, "kanban"))
	// attaching twice stays a single entry
	require.NoError(t, env.frameworkSvc.AttachFramework(ctx, alice.ID, list.ID, "kanban"))

	keys, err := env.frameworkSvc.GetListFrameworks(ctx, alice.ID, list.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"kanban"}, keys)

	err = env.frameworkSvc.AttachFramework(ctx, alice.ID, list.ID, "gtd")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, env.frameworkSvc.DetachFramework(ctx, alice.ID, list.ID, "kanban"))
	keys, err = env.frameworkSvc.GetListFrameworks(ctx, alice.ID, list.ID)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSetItemDataValidatesPayload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, alice.ID, "Inbox")
	item := env.createItem(t, alice.ID, list.ID, "a")

	_, err := env.frameworkSvc.SetItemData(ctx, alice.ID, item.ID, "kanban", map[string]any{"column": "launchpad"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.frameworkSvc.SetItemData(ctx, alice.ID, item.ID, "kanban", map[string]any{"velocity": "high"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.frameworkSvc.SetItemData(ctx, alice.ID, item.ID, "timeboxing", map[string]any{"minutes": -5.0})
	assert.ErrorIs(t, err, ErrValidation)

	data, err := env.frameworkSvc.SetItemData(ctx, alice.ID, item.ID, "kanban", map[string]any{"column": "doing"})
	require.NoError(t, err)
	assert.Equal(t, "doing", data["column"])
}

func TestSetItemDataMergesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, alice.ID, "Inbox")
	item := env.createItem(t, alice.ID, list.ID, "a")

	_, err := env.frameworkSvc.SetItemData(ctx, alice.ID, item.ID, "timeboxing", map[string]any{"minutes": 25.0})
	require.NoError(t, err)

	data, err := env.frameworkSvc.SetItemData(ctx, alice.ID, item.ID, "timeboxing", map[string]any{"status": "running"})
	require.NoError(t, err)
	assert.Equal(t, 25.0, data["minutes"])
	assert.Equal(t, "running", data["status"])
}

func TestDetachRetainsItemData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, alice.ID, "Inbox")
	item := env.createItem(t, alice.ID, list.ID, "a")

	require.NoError(t, env.frameworkSvc.AttachFramework(ctx, alice.ID, list.ID, "kanban"))
	_, err := env.frameworkSvc.SetItemData(ctx, alice.ID, item.ID, "kanban", map[string]any{"column": "review"})
	require.NoError(t, err)

	require.NoError(t, env.frameworkSvc.DetachFramework(ctx, alice.ID, list.ID, "kanban"))
	require.NoError(t, env.frameworkSvc.AttachFramework(ctx, alice.ID, list.ID, "kanban"))

	data, err := env.frameworkSvc.GetListData(ctx, alice.ID, list.ID, "kanban")
	require.NoError(t, err)
	entry, ok := data[strconv.FormatUint(uint64(item.ID), 10)]
	require.True(t, ok)
	assert.Equal(t, "review", entry.Data["column"])
	assert.Equal(t, "a", entry.Title)
}

func TestBatchSetDataScopedToList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, alice.ID, "Inbox")
	other := env.createList(t, alice.ID, "Other")

	a := env.createItem(t, alice.ID, list.ID, "a")
	b := env.createItem(t, alice.ID, list.ID, "b")
	foreign := env.createItem(t, alice.ID, other.ID, "foreign")

	err := env.frameworkSvc.BatchSetData(ctx, alice.ID, list.ID, "kanban", map[string]map[string]any{
		strconv.FormatUint(uint64(foreign.ID), 10): {"column": "doing"},
	})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, env.frameworkSvc.BatchSetData(ctx, alice.ID, list.ID, "kanban", map[string]map[string]any{
		strconv.FormatUint(uint64(a.ID), 10): {"column": "doing"},
		strconv.FormatUint(uint64(b.ID), 10): {"column": "done"},
	}))

	data, err := env.frameworkSvc.GetListData(ctx, alice.ID, list.ID, "kanban")
	require.NoError(t, err)
	assert.Len(t, data, 2)
}
