package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTemplateFromList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, alice.ID, "Groceries")
	env.createItem(t, alice.ID, list.ID, "milk")
	env.createItem(t, alice.ID, list.ID, "bread")

	_, err := env.templateSvc.SaveFromList(ctx, alice.ID, list.ID, TemplateRequest{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.templateSvc.SaveFromList(ctx, alice.ID, list.ID, TemplateRequest{Name: "Weekly shop"})
	require.NoError(t, err)

	templates, err := env.templateSvc.GetTemplates(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Weekly shop", templates[0].Name)
	require.Len(t, templates[0].Items, 2)
	assert.Equal(t, "milk", templates[0].Items[0].Title)
}

func TestCreateListFromTemplateIsIndependent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	source := env.createList(t, alice.ID, "Groceries")
	milk := env.createItem(t, alice.ID, source.ID, "milk")

	// framework data on the source must not travel through the template
	_, err := env.frameworkSvc.SetItemData(ctx, alice.ID, milk.ID, "kanban", map[string]any{"column": "doing"})
	require.NoError(t, err)

	template, err := env.templateSvc.SaveFromList(ctx, alice.ID, source.ID, TemplateRequest{Name: "Shop"})
	require.NoError(t, err)

	fresh, err := env.templateSvc.CreateList(ctx, alice.ID, template.ID, TemplateRequest{Name: "Next week"})
	require.NoError(t, err)
	assert.Equal(t, "Next week", fresh.Name)
	assert.NotEqual(t, source.ID, fresh.ID)

	items, err := env.itemSvc.GetItems(ctx, alice.ID, fresh.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEqual(t, milk.ID, items[0].ID)
	assert.False(t, items[0].Completed)

	data, err := env.frameworkSvc.GetListData(ctx, alice.ID, fresh.ID, "kanban")
	require.NoError(t, err)
	assert.Empty(t, data)

	// mutating the new list leaves the source untouched
	require.NoError(t, env.itemSvc.DeleteItem(ctx, alice.ID, fresh.ID, items[0].ID))
	sourceItems, err := env.itemSvc.GetItems(ctx, alice.ID, source.ID)
	require.NoError(t, err)
	assert.Len(t, sourceItems, 1)
}

func TestCreateListFromTemplateDefaultsName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	source := env.createList(t, alice.ID, "Groceries")
	env.createItem(t, alice.ID, source.ID, "milk")

	template, err := env.templateSvc.SaveFromList(ctx, alice.ID, source.ID, TemplateRequest{Name: "Shop"})
	require.NoError(t, err)

	fresh, err := env.templateSvc.CreateList(ctx, alice.ID, template.ID, TemplateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Shop", fresh.Name)
}

func TestTemplateOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	source := env.createList(t, alice.ID, "Groceries")
	template, err := env.templateSvc.SaveFromList(ctx, alice.ID, source.ID, TemplateRequest{Name: "Shop"})
	require.NoError(t, err)

	_, err = env.templateSvc.CreateList(ctx, bob.ID, template.ID, TemplateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
	err = env.templateSvc.DeleteTemplate(ctx, bob.ID, template.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.templateSvc.DeleteTemplate(ctx, alice.ID, template.ID))
	err = env.templateSvc.DeleteTemplate(ctx, alice.ID, template.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
