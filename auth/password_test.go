package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"lightbnb/models"
	"lightbnb/storage"
)

type fakeStore struct {
	users  map[string]*models.User
	nextID int64
	addErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*models.User{}, nextID: 1}
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[strings.ToLower(email)], nil
}

func (f *fakeStore) AddUser(_ context.Context, u models.NewUser) (*models.User, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	out := &models.User{ID: f.nextID, Name: u.Name, Email: u.Email, Password: u.Password}
	f.nextID++
	f.users[strings.ToLower(u.Email)] = out
	return out, nil
}

func newTestAuthenticator(store UserStore) *PasswordAuthenticator {
	a := NewPasswordAuthenticator(store)
	a.cost = bcrypt.MinCost
	return a
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newFakeStore()
	a := newTestAuthenticator(store)
	ctx := context.Background()

	u, err := a.Register(ctx, "Alice", "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if u.Password == "correct-horse" {
		t.Fatalf("password stored in plain text")
	}

	got, err := a.Authenticate(ctx, "Alice@Example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated user %d, want %d", got.ID, u.ID)
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	store := newFakeStore()
	a := newTestAuthenticator(store)
	ctx := context.Background()

	if _, err := a.Register(ctx, "Bob", "bob@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := a.Authenticate(ctx, "bob@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	a := newTestAuthenticator(newFakeStore())
	if _, err := a.Register(context.Background(), "C", "c@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegister_EmailExists(t *testing.T) {
	store := newFakeStore()
	a := newTestAuthenticator(store)
	ctx := context.Background()

	if _, err := a.Register(ctx, "Dan", "dan@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := a.Register(ctx, "Dan", "DAN@example.com", "password123"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegister_DuplicateFromStore(t *testing.T) {
	store := newFakeStore()
	store.addErr = storage.ErrDuplicate
	a := newTestAuthenticator(store)

	if _, err := a.Register(context.Background(), "Eve", "eve@example.com", "password123"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}
