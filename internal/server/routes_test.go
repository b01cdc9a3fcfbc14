package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/database"
	"github.com/fwtracker/backend/internal/repository"
	"github.com/fwtracker/backend/internal/service"
)

type testDBService struct {
	db *gorm.DB
}

func (t *testDBService) Health() map[string]string {
	return map[string]string{"status": "up", "backend": "sqlite"}
}
func (t *testDBService) Close() error    { return nil }
func (t *testDBService) GetDB() *gorm.DB { return t.db }
func (t *testDBService) Backend() string { return "sqlite" }

func newTestHandler(t *testing.T) http.Handler {
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

	srv := &Server{
		port: 0,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		db:   &testDBService{db: db},
		svc: Services{
			Auth:       service.NewAuthService(users, SessionTTL()),
			Lists:      service.NewListService(lists, frameworks),
			Items:      service.NewItemService(items, lists),
			Tags:       service.NewTagService(tags, items, lists),
			Comments:   service.NewCommentService(comments, items, lists),
			Shares:     service.NewShareService(lists, users),
			Frameworks: service.NewFrameworkService(frameworks, lists, items),
			Templates:  service.NewTemplateService(templates, lists, items),
			Transfers:  service.NewTransferService(lists, items, frameworks),
			Dashboard:  service.NewDashboardService(stats),
		},
		rl: map[string]*rateBucket{},
	}
	return srv.RegisterRoutes()
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rec
}

func (c *client) register(username string) {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/register", map[string]string{"username": username, "password": "secret1"})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	c := &client{t: t, handler: newTestHandler(t)}
	rec := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "up", body["status"])
	assert.Equal(t, "sqlite", body["backend"])
}

func TestAuthFlow(t *testing.T) {
	c := &client{t: t, handler: newTestHandler(t)}

	// no session yet
	rec := c.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c.register("alice")
	require.NotEmpty(t, c.cookies)
	assert.True(t, c.cookies[0].HttpOnly)

	rec = c.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "alice", me["username"])

	rec = c.do(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// the logout response replaced the cookie with an expired one
	rec = c.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterConflict(t *testing.T) {
	handler := newTestHandler(t)
	a := &client{t: t, handler: handler}
	a.register("alice")

	b := &client{t: t, handler: handler}
	rec := b.do(http.MethodPost, "/api/register", map[string]string{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMalformedJSONRejected(t *testing.T) {
	c := &client{t: t, handler: newTestHandler(t)}
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader([]byte("{not json")))
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndItemEndpoints(t *testing.T) {
	c := &client{t: t, handler: newTestHandler(t)}
	c.register("alice")

	rec := c.do(http.MethodPost, "/api/lists", map[string]string{"name": "Inbox"})
	require.Equal(t, http.StatusCreated, rec.Code)
	list := decodeBody[map[string]any](t, rec)
	listID := int(list["id"].(float64))

	rec = c.do(http.MethodPost, fmt.Sprintf("/api/lists/%d/items", listID), map[string]string{"title": "buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code)
	item := decodeBody[map[string]any](t, rec)
	itemID := int(item["id"].(float64))

	rec = c.do(http.MethodPut, fmt.Sprintf("/api/lists/%d/items/%d/toggle", listID, itemID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decodeBody[map[string]bool](t, rec)
	assert.True(t, toggled["completed"])

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/lists/%d/items", listID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody[[]map[string]any](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, true, items[0]["completed"])

	rec = c.do(http.MethodDelete, fmt.Sprintf("/api/lists/%d", listID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/api/lists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lists := decodeBody[[]map[string]any](t, rec)
	assert.Empty(t, lists)
}

func TestFrameworkEndpoints(t *testing.T) {
	c := &client{t: t, handler: newTestHandler(t)}
	c.register("alice")

	rec := c.do(http.MethodGet, "/api/frameworks-catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	catalog := decodeBody[[]map[string]any](t, rec)
	assert.Len(t, catalog, 6)

	rec = c.do(http.MethodPost, "/api/lists", map[string]string{"name": "Board"})
	require.Equal(t, http.StatusCreated, rec.Code)
	listID := int(decodeBody[map[string]any](t, rec)["id"].(float64))

	rec = c.do(http.MethodPost, fmt.Sprintf("/api/lists/%d/frameworks", listID), map[string]string{"key": "kanban"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.do(http.MethodPost, fmt.Sprintf("/api/lists/%d/items", listID), map[string]string{"title": "task"})
	require.Equal(t, http.StatusCreated, rec.Code)
	itemID := int(decodeBody[map[string]any](t, rec)["id"].(float64))

	rec = c.do(http.MethodPut, fmt.Sprintf("/api/items/%d/framework-data/kanban", itemID), map[string]string{"column": "doing"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPut, fmt.Sprintf("/api/items/%d/framework-data/kanban", itemID), map[string]string{"column": "warp"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/lists/%d/framework-data/kanban", listID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody[map[string]map[string]any](t, rec)
	require.Len(t, data, 1)
	entry := data[fmt.Sprintf("%d", itemID)]
	assert.Equal(t, "doing", entry["data"].(map[string]any)["column"])
}

func TestExportEndpoint(t *testing.T) {
	c := &client{t: t, handler: newTestHandler(t)}
	c.register("alice")

	rec := c.do(http.MethodPost, "/api/lists", map[string]string{"name": "Export me"})
	require.Equal(t, http.StatusCreated, rec.Code)
	listID := int(decodeBody[map[string]any](t, rec)["id"].(float64))

	rec = c.do(http.MethodPost, fmt.Sprintf("/api/lists/%d/items", listID), map[string]string{"title": "a"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/lists/%d/export?format=csv", listID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Export me.csv")
	assert.Contains(t, rec.Body.String(), "title,description,priority,due_date,completed")
}

func TestAuthRateLimit(t *testing.T) {
	c := &client{t: t, handler: newTestHandler(t)}

	var last int
	for i := 0; i < rateLimitMax+1; i++ {
		rec := c.do(http.MethodPost, "/api/login", map[string]string{"username": "ghost", "password": "nope-nope"})
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
