// Package auth keeps track of who is using the tool. There is no credential check:
// any login succeeds as the demo user.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/at-ishikawa/langcards/internal/storage"
)

const userKey = "user"

const (
	DemoUserID   = "1"
	DemoUserName = "Demo User"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmptyName    = errors.New("name is empty")
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Service struct {
	kv       storage.KeyValue
	validate *validator.Validate
	newID    func() string
}

func NewService(kv storage.KeyValue) *Service {
	return &Service{
		kv:       kv,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		newID:    uuid.NewString,
	}
}

func (s *Service) validateEmail(email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// Login signs in as the demo user. The password is accepted as is.
func (s *Service) Login(ctx context.Context, email, _ string) (User, error) {
	if err := s.validateEmail(email); err != nil {
		return User{}, err
	}
	user := User{ID: DemoUserID, Name: DemoUserName, Email: email}
	if err := s.save(ctx, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Register creates a fresh user with its own vocabulary.
func (s *Service) Register(ctx context.Context, name, email, _ string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrEmptyName
	}
	if err := s.validateEmail(email); err != nil {
		return User{}, err
	}
	user := User{ID: s.newID(), Name: name, Email: email}
	if err := s.save(ctx, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return s.save(ctx, nil)
}

// Current returns the signed-in user, or false when nobody is signed in.
func (s *Service) Current(ctx context.Context) (User, bool, error) {
	data, ok, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return User{}, false, fmt.Errorf("kv.Get(%s) > %w", userKey, err)
	}
	if !ok {
		return User{}, false, nil
	}
	var user *User
	if err := json.Unmarshal(data, &user); err != nil {
		return User{}, false, fmt.Errorf("json.Unmarshal(%s) > %w", userKey, err)
	}
	if user == nil {
		return User{}, false, nil
	}
	return *user, true, nil
}

func (s *Service) save(ctx context.Context, user *User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := s.kv.Set(ctx, userKey, data); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", userKey, err)
	}
	return nil
}
