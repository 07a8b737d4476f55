// Package auth registers and logs in users against the local key-value store.
// Records are kept in cleartext under a single key.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/omarshaarawi/sportify/internal/repository"
)

const UsersKey = "REGISTERED_USERS"

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Profile struct {
	Username  string
	Email     string
	FirstName string
}

type Service struct {
	store repository.Store
	// serializes read-modify-write of the user list
	mu sync.Mutex
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return Profile{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return Profile{}, ErrDuplicateUsername
		}
	}

	users = append(users, User{Username: username, Email: email, Password: password})
	if err := repository.SetJSON(ctx, s.store, UsersKey, users); err != nil {
		return Profile{}, fmt.Errorf("saving users: %w", err)
	}

	return Profile{Username: username, Email: email, FirstName: username}, nil
}

// ValidateLogin applies the sign-in form rules.
func ValidateLogin(username, password string) error {
	switch {
	case len(username) < minUsernameLen:
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, minUsernameLen)
	case len(password) < minPasswordLen:
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	return nil
}

// Login matches username and password exactly.
func (s *Service) Login(ctx context.Context, username, password string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return Profile{}, err
	}
	for _, u := range users {
		if u.Username == username && u.Password == password {
			return Profile{Username: u.Username, Email: u.Email, FirstName: u.Username}, nil
		}
	}
	return Profile{}, ErrInvalidCredentials
}

func (s *Service) users(ctx context.Context) ([]User, error) {
	var users []User
	if _, err := repository.GetJSON(ctx, s.store, UsersKey, &users); err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return users, nil
}

// ValidateRegistration applies the sign-up form rules. Register itself
// accepts any input.
func ValidateRegistration(username, email, password string) error {
	switch {
	case len(username) < minUsernameLen:
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, minUsernameLen)
	case !strings.Contains(email, "@"):
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	case len(password) < minPasswordLen:
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	return nil
}
