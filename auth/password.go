package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"lightbnb/models"
	"lightbnb/storage"
)

const minPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// UserStore is the slice of the gateway that accounts need.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	AddUser(ctx context.Context, u models.NewUser) (*models.User, error)
}

// PasswordAuthenticator registers and logs in users with bcrypt hashes.
type PasswordAuthenticator struct {
	store UserStore
	cost  int
}

func NewPasswordAuthenticator(store UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{store: store, cost: bcrypt.DefaultCost}
}

// Register hashes password and stores a new user.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := a.store.AddUser(ctx, models.NewUser{Name: name, Email: email, Password: string(hash)})
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user when password matches the stored hash.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
