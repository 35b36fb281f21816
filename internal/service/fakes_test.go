package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeItemRepo struct {
	mu        sync.Mutex
	items     map[string]*domain.Item
	getCalls  int
	listCalls int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*domain.Item)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, scope repository.ItemScope, limit, offset int) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var result []domain.Item
	for _, item := range r.items {
		if item.OwnerID == scope.OwnerID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeItemRepo) GetScoped(_ context.Context, scope repository.ItemScope) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
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

func (r *fakeItemRepo) UpdateScoped(_ context.Context, scope repository.ItemScope, item *domain.Item) error {
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

func (r *fakeItemRepo) DeleteScoped(_ context.Context, scope repository.ItemScope) error {
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

func (r *fakeItemRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.OwnerID == ownerID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *token
	return &clone, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
		}
	}
	return nil
}

type fakeAttemptRepo struct {
	mu       sync.Mutex
	failures map[string]int64
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{failures: make(map[string]int64)}
}

func (r *fakeAttemptRepo) RecordFailure(_ context.Context, email string, _ time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[email]++
	return r.failures[email], nil
}

func (r *fakeAttemptRepo) Failures(_ context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures[email], nil
}

func (r *fakeAttemptRepo) Reset(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.failures, email)
	return nil
}
