package handler

// In-memory store fakes backing the handler tests. They honor the same
// sentinel-error contract as the real repositories.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
	pics  map[string][]byte
	order []string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}, pics: map[string][]byte{}}
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	u.ID = uuid.NewString()
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	s.order = append(s.order, u.ID)
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.users[s.order[i]])
	}
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, id string, upd model.UserUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	if upd.Gender != nil {
		u.Gender = upd.Gender
	}
	if upd.Age != nil {
		u.Age = upd.Age
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	delete(s.pics, id)
	return true, nil
}

func (s *fakeUserStore) GetProfilePicture(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return nil, repository.ErrUserNotFound
	}
	return s.pics[id], nil
}

func (s *fakeUserStore) UpdateProfilePicture(_ context.Context, id string, data []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	s.pics[id] = data
	u.HasPicture = true
	s.users[id] = u
	return true, nil
}

func (s *fakeUserStore) DeleteProfilePicture(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pics[id]; !ok {
		return false, nil
	}
	delete(s.pics, id)
	u := s.users[id]
	u.HasPicture = false
	s.users[id] = u
	return true, nil
}

type refreshRecord struct {
	userID string
	exp    time.Time
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]refreshRecord
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]refreshRecord{}}
}

func (s *fakeTokenStore) StoreRefresh(_ context.Context, userID, tokenHash string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenHash] = refreshRecord{userID: userID, exp: exp}
	return nil
}

func (s *fakeTokenStore) ValidateRefresh(_ context.Context, tokenHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tokens[tokenHash]
	if !ok || time.Now().UTC().After(rec.exp) {
		return "", repository.ErrInvalidRefresh
	}
	return rec.userID, nil
}

func (s *fakeTokenStore) DeleteRefresh(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenHash)
	return nil
}

func (s *fakeTokenStore) DeleteAllForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h, rec := range s.tokens {
		if rec.userID == userID {
			delete(s.tokens, h)
		}
	}
	return nil
}

func (s *fakeTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

type fakePlaceLikeStore struct {
	mu    sync.Mutex
	likes map[string][]string // userID -> placeIDs
}

func newFakePlaceLikeStore() *fakePlaceLikeStore {
	return &fakePlaceLikeStore{likes: map[string][]string{}}
}

func (s *fakePlaceLikeStore) Like(_ context.Context, userID, placeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.likes[userID] {
		if p == placeID {
			return nil
		}
	}
	s.likes[userID] = append(s.likes[userID], placeID)
	return nil
}

func (s *fakePlaceLikeStore) Unlike(_ context.Context, userID, placeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.likes[userID] {
		if p == placeID {
			s.likes[userID] = append(s.likes[userID][:i], s.likes[userID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakePlaceLikeStore) ListByUser(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.likes[userID]))
	copy(out, s.likes[userID])
	return out, nil
}
