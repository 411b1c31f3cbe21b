package store

import (
	"context"
	"errors"
	"testing"

	"tiketi/models"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	t.Run("seeded accounts sign in with matching role", func(t *testing.T) {
		cases := []struct {
			email string
			role  models.Role
		}{
			{"admin@example.com", models.RoleAdmin},
			{"organizer@example.com", models.RoleOrganizer},
			{"attendee@example.com", models.RoleAttendee},
		}
		for _, tc := range cases {
			user, err := s.Authenticate(ctx, tc.email, "password")
			if err != nil {
				t.Fatalf("%s: %v", tc.email, err)
			}
			if user.Role != tc.role {
				t.Fatalf("%s: expected role %s, got %s", tc.email, tc.role, user.Role)
			}
		}
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		if _, err := s.Authenticate(ctx, "  Admin@Example.COM ", "password"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Authenticate(ctx, "nobody@example.com", "password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Authenticate(ctx, "admin@example.com", "letmein12")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestRegisterUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	t.Run("creates an account that can sign in", func(t *testing.T) {
		user, err := s.RegisterUser(ctx, models.RegisterRequest{
			Email:     "wanjiku@example.com",
			Password:  "changeme123",
			FirstName: "Wanjiku",
			LastName:  "Kamau",
			Role:      "organizer",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if user.Role != models.RoleOrganizer {
			t.Fatalf("expected organizer role, got %s", user.Role)
		}
		if user.ID == "" {
			t.Fatal("expected generated id")
		}

		if _, err := s.Authenticate(ctx, "wanjiku@example.com", "changeme123"); err != nil {
			t.Fatalf("authenticate after register: %v", err)
		}
	})

	t.Run("unknown role defaults to attendee", func(t *testing.T) {
		user, err := s.RegisterUser(ctx, models.RegisterRequest{
			Email:     "default@example.com",
			Password:  "changeme123",
			FirstName: "Default",
			LastName:  "Role",
			Role:      "superuser",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if user.Role != models.RoleAttendee {
			t.Fatalf("expected attendee, got %s", user.Role)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.RegisterUser(ctx, models.RegisterRequest{
			Email:     "attendee@example.com",
			Password:  "changeme123",
			FirstName: "Dup",
			LastName:  "Email",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestListAndDeleteUsers(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 seeded users, got %d", len(users))
	}

	if err := s.DeleteUser(ctx, "3"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := s.GetUserByID(ctx, "3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteUser(ctx, "3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
