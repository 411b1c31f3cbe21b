package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/google/uuid"

	"tiketi/models"
)

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Authenticate checks a credential pair against the seeded accounts.
func (s *MemoryStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			if u.HashedPassword != hashPassword(password) {
				return nil, ErrInvalidCredentials
			}
			out := *u
			return &out, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// RegisterUser validates and creates a public account.
func (s *MemoryStore) RegisterUser(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		role = models.RoleAttendee
	}
	return s.CreateUser(ctx, models.User{
		Email:          req.Email,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Phone:          strings.TrimSpace(req.Phone),
		Role:           role,
		HashedPassword: hashPassword(req.Password),
	})
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

// CreateUser stores a new account. Emails are unique.
func (s *MemoryStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := s.clk.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := user
	s.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	if err := s.simulate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}
