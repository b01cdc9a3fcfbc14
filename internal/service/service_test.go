package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/database"
	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

// testEnv wires every service over a fresh in-memory database.
type testEnv struct {
	db *gorm.DB

	users      repository.UserRepository
	lists      repository.ListRepository
	items      repository.ItemRepository
	stats      repository.StatsRepository
	frameworks repository.FrameworkRepository

	auth         AuthService
	listSvc      ListService
	itemSvc      ItemService
	tagSvc       TagService
	commentSvc   CommentService
	shareSvc     ShareService
	frameworkSvc FrameworkService
	templateSvc  TemplateService
	transferSvc  TransferService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewTest()
	require.NoError(t, err)

	users := repository.NewGormUserRepository(db)
	lists := repository.NewGormListRepository(db)
	items := repository.NewGormItemRepository(db)
	tags := repository.NewGormTagRepository(db)
	comments := repository.NewGormCommentRepository(db)
	templates := repository.NewGormTemplateRepository(db)
	frameworks := repository.NewGormFrameworkRepository(db)
	stats := repository.NewGormStatsRepository(db)

	return &testEnv{
		db:           db,
		users:        users,
		lists:        lists,
		items:        items,
		stats:        stats,
		frameworks:   frameworks,
		auth:         NewAuthService(users, time.Hour),
		listSvc:      NewListService(lists, frameworks),
		itemSvc:      NewItemService(items, lists),
		tagSvc:       NewTagService(tags, items, lists),
		commentSvc:   NewCommentService(comments, items, lists),
		shareSvc:     NewShareService(lists, users),
		frameworkSvc: NewFrameworkService(frameworks, lists, items),
		templateSvc:  NewTemplateService(templates, lists, items),
		transferSvc:  NewTransferService(lists, items, frameworks),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	session, err := e.auth.Register(context.Background(), CredentialsRequest{Username: username, Password: "secret1"})
	require.NoError(t, err)
	return session.User
}

func (e *testEnv) createList(t *testing.T, userID uint, name string) *domain.List {
	t.Helper()
	list, err := e.listSvc.CreateList(context.Background(), userID, ListRequest{Name: name})
	require.NoError(t, err)
	return list
}

func (e *testEnv) createItem(t *testing.T, userID, listID uint, title string) *domain.Item {
	t.Helper()
	item, err := e.itemSvc.CreateItem(context.Background(), userID, listID, ItemRequest{Title: title})
	require.NoError(t, err)
	return item
}
