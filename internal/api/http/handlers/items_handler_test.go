package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/inventory-service/internal/api/http"
	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/service"
)

type memItemRepo struct {
	mu        sync.Mutex
	items     map[string]*domain.Item
	readCalls int
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[string]*domain.Item)}
}

func (r *memItemRepo) Create(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *memItemRepo) ListByOwner(_ context.Context, scope repository.ItemScope, _, _ int) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readCalls++
	var result []domain.Item
	for _, item := range r.items {
		if item.OwnerID == scope.OwnerID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *memItemRepo) GetScoped(_ context.Context, scope repository.ItemScope) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readCalls++
	if scope.ItemID == nil {
		return nil, pgx.ErrNoRows
	}
	item, ok := r.items[*scope.ItemID]
	if !ok || item.OwnerID != scope.OwnerID {
		return nil, pgx.ErrNoRows
	}
	clone := *item
	return &clone, nil
}

func (r *memItemRepo) UpdateScoped(_ context.Context, scope repository.ItemScope, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scope.ItemID == nil {
		return pgx.ErrNoRows
	}
	existing, ok := r.items[*scope.ItemID]
	if !ok || existing.OwnerID != scope.OwnerID {
		return pgx.ErrNoRows
	}
	clone := *item
	clone.ID = existing.ID
	clone.OwnerID = existing.OwnerID
	r.items[existing.ID] = &clone
	return nil
}

func (r *memItemRepo) DeleteScoped(_ context.Context, scope repository.ItemScope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scope.ItemID == nil {
		return pgx.ErrNoRows
	}
	existing, ok := r.items[*scope.ItemID]
	if !ok || existing.OwnerID != scope.OwnerID {
		return pgx.ErrNoRows
	}
	delete(r.items, existing.ID)
	return nil
}

func (r *memItemRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.OwnerID == ownerID {
			delete(r.items, id)
		}
	}
	return nil
}

type itemsFixture struct {
	app    *fiber.App
	repo   *memItemRepo
	tokens *auth.TokenManager
}

func newItemsFixture(t *testing.T) *itemsFixture {
	t.Helper()

	repo := newMemItemRepo()
	tokens := auth.NewTokenManager("test-secret", "https://www.demo.com", 24*time.Hour)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), nil, 0)

	gate := auth.NewAuthMiddleware(tokens).Handle
	itemsHandler := handlers.NewItemsHandler(service.NewItemService(repo, nil))

	items := app.Group("/items", gate)
	items.Get("", itemsHandler.ListItems)
	items.Post("", itemsHandler.CreateItem)
	items.Get("/:id", itemsHandler.GetItem)
	items.Patch("/:id", itemsHandler.UpdateItem)
	items.Delete("/:id", itemsHandler.DeleteItem)

	return &itemsFixture{app: app, repo: repo, tokens: tokens}
}

func (f *itemsFixture) request(t *testing.T, method, path, subjectID, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if subjectID != "" {
		token, _, err := f.tokens.Issue(subjectID)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: token})
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestListItems_NoCookie(t *testing.T) {
	t.Parallel()
	f := newItemsFixture(t)

	resp := f.request(t, http.MethodGet, "/items", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, f.repo.readCalls, "rejected requests must not reach storage")
}

func TestCreateItem_ClientOwnerIgnored(t *testing.T) {
	t.Parallel()
	f := newItemsFixture(t)

	resp := f.request(t, http.MethodPost, "/items", "owner-a",
		`{"name":"laptop","owner_id":"owner-b","owner":"owner-b"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Data struct {
			ID      string `json:"id"`
			OwnerID string `json:"owner_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "owner-a", payload.Data.OwnerID)

	stored := f.repo.items[payload.Data.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "owner-a", stored.OwnerID)
}

func TestDeleteItem_ForeignOwner(t *testing.T) {
	t.Parallel()
	f := newItemsFixture(t)

	item := &domain.Item{OwnerID: "owner-b", Name: "camera"}
	require.NoError(t, f.repo.Create(context.Background(), item))

	resp := f.request(t, http.MethodDelete, "/items/"+item.ID, "owner-a", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// the record remains in storage afterwards
	assert.NotNil(t, f.repo.items[item.ID])
}

func TestGetItem_ForeignOwnerLooksMissing(t *testing.T) {
	t.Parallel()
	f := newItemsFixture(t)

	item := &domain.Item{OwnerID: "owner-b", Name: "camera"}
	require.NoError(t, f.repo.Create(context.Background(), item))

	foreign := f.request(t, http.MethodGet, "/items/"+item.ID, "owner-a", "")
	missing := f.request(t, http.MethodGet, "/items/"+uuid.NewString(), "owner-a", "")

	assert.Equal(t, http.StatusNotFound, foreign.StatusCode)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	foreignBody, err := io.ReadAll(foreign.Body)
	require.NoError(t, err)
	missingBody, err := io.ReadAll(missing.Body)
	require.NoError(t, err)
	assert.Equal(t, string(foreignBody), string(missingBody))
}

func TestCreateItem_MissingName(t *testing.T) {
	t.Parallel()
	f := newItemsFixture(t)

	resp := f.request(t, http.MethodPost, "/items", "owner-a", `{"model":"X220"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, f.repo.items)
}
