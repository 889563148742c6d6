package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock implementation of UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStore) GetUserByExternalID(ctx context.Context, externalID string) (*User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) LinkExternalID(ctx context.Context, id uuid.UUID, externalID, avatarURL string) error {
	args := m.Called(ctx, id, externalID, avatarURL)
	return args.Error(0)
}

func (m *MockUserStore) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserStore) ListUsers(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockUserStore) GetPasswordHash(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockUserStore) StorePasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// MockAdapter is a mock implementation of ProviderAdapter.
type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) ProviderID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAdapter) AuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) ResolveProfile(ctx context.Context, code string) (ExternalProfile, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(ExternalProfile), args.Error(1)
}

// memUserStore is a map-backed UserStore for exercising full resolver flows.
type memUserStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*User
	hashes map[uuid.UUID][]byte

	failCreate error // next CreateUser returns this once when set
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users:  make(map[uuid.UUID]*User),
		hashes: make(map[uuid.UUID][]byte),
	}
}

func (s *memUserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *memUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *memUserStore) GetUserByExternalID(ctx context.Context, externalID string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ExternalID == externalID && externalID != "" {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *memUserStore) CreateUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		err := s.failCreate
		s.failCreate = nil
		return err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	c := *user
	s.users[user.ID] = &c
	return nil
}

func (s *memUserStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	delete(s.hashes, id)
	return nil
}

func (s *memUserStore) LinkExternalID(ctx context.Context, id uuid.UUID, externalID, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.ExternalID = externalID
	if u.AvatarURL == "" {
		u.AvatarURL = avatarURL
	}
	return nil
}

func (s *memUserStore) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (s *memUserStore) ListUsers(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *memUserStore) GetPasswordHash(ctx context.Context, id uuid.UUID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hashes[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return h, nil
}

func (s *memUserStore) StorePasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	s.hashes[id] = hash
	return nil
}

var errStoreDown = errors.New("store down")

var _ UserStore = (*memUserStore)(nil)
