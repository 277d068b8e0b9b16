package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/store"
	"github.com/ledgerbook-dev/ledgerbook/internal/validate"
)

// Sentinel errors for user management. Authentication failures carry a
// human-readable reason in the wrapped message; callers match the
// sentinel, users read the text.
var (
	ErrDuplicateUser        = errors.New("username already exists")
	ErrDuplicateDocument    = errors.New("document already registered")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotAdministrator     = errors.New("administrator level required")
)

// Service manages system users and their credentials.
type Service struct {
	store          *store.Store
	minPasswordLen int
	log            zerolog.Logger
}

// NewService creates a user Service.
func NewService(st *store.Store, minPasswordLen int, log zerolog.Logger) *Service {
	return &Service{store: st, minPasswordLen: minPasswordLen, log: log}
}

// Authenticate verifies credentials and records one login activity on
// success. Nothing is logged on failure.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, found, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	if !found {
		return model.User{}, fmt.Errorf("%w: user not found", ErrAuthenticationFailed)
	}
	if !user.Active {
		return model.User{}, fmt.Errorf("%w: user is inactive", ErrAuthenticationFailed)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, fmt.Errorf("%w: wrong password", ErrAuthenticationFailed)
	}

	_, err = s.store.CreateActivity(ctx, model.Activity{
		Username:    user.Username,
		FullName:    user.FullName(),
		Kind:        model.ActivityLogin,
		Description: "logged in: " + user.Username,
		Timestamp:   time.Now(),
	})
	if err != nil {
		return model.User{}, err
	}

	s.log.Debug().Str("username", user.Username).Msg("user authenticated")
	return user, nil
}

// Logout records one logout activity for the user.
func (s *Service) Logout(ctx context.Context, user model.User) error {
	_, err := s.store.CreateActivity(ctx, model.Activity{
		Username:    user.Username,
		FullName:    user.FullName(),
		Kind:        model.ActivityLogout,
		Description: "logged out: " + user.Username,
		Timestamp:   time.Now(),
	})
	return err
}

// CreateParams holds the fields for a new user.
type CreateParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Document  string
	Level     model.AccessLevel
}

// Create registers a new user. The actor must be an administrator; one
// create-user activity is recorded in the same transaction as the
// insert. Validation failures leave the store untouched.
func (s *Service) Create(ctx context.Context, params CreateParams, actor model.User) (model.User, error) {
	if !actor.IsAdmin() {
		return model.User{}, ErrNotAdministrator
	}
	if err := s.validateParams(params); err != nil {
		return model.User{}, err
	}

	taken, err := s.store.UsernameExists(ctx, params.Username)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, ErrDuplicateUser
	}
	registered, err := s.store.DocumentExists(ctx, params.Document)
	if err != nil {
		return model.User{}, err
	}
	if registered {
		return model.User{}, ErrDuplicateDocument
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Username:     params.Username,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Document:     params.Document,
		Level:        params.Level,
		Active:       true,
		CreatedAt:    time.Now(),
	}

	err = s.store.WithTx(ctx, func(tx *store.Tx) error {
		id, err := tx.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id

		_, err = tx.CreateActivity(ctx, model.Activity{
			Username:    actor.Username,
			FullName:    actor.FullName(),
			Kind:        model.ActivityCreateUser,
			Description: fmt.Sprintf("user created: %s (%s)", user.Username, user.FullName()),
			Timestamp:   time.Now(),
		})
		return err
	})
	if err != nil {
		return model.User{}, err
	}

	s.log.Info().Str("username", user.Username).Str("level", user.Level.String()).Msg("user created")
	return user, nil
}

// BootstrapAdmin creates the default administrator if the username is
// not taken yet. Returns the existing user otherwise.
func (s *Service) BootstrapAdmin(ctx context.Context, params CreateParams) (model.User, error) {
	existing, found, err := s.store.GetUserByUsername(ctx, params.Username)
	if err != nil {
		return model.User{}, err
	}
	if found {
		return existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Username:     params.Username,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Document:     params.Document,
		Level:        model.LevelAdministrator,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	user.ID, err = s.store.CreateUser(ctx, user)
	if err != nil {
		return model.User{}, err
	}

	s.log.Info().Str("username", user.Username).Msg("default administrator bootstrapped")
	return user, nil
}

// ChangePassword verifies the old password and stores a new hash. One
// change-password activity is recorded.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, found, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: user not found", ErrAuthenticationFailed)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: current password is wrong", ErrAuthenticationFailed)
	}
	if err := validate.Password(newPassword, s.minPasswordLen); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.store.WithTx(ctx, func(tx *store.Tx) error {
		if err := tx.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return err
		}
		_, err := tx.CreateActivity(ctx, model.Activity{
			Username:    user.Username,
			FullName:    user.FullName(),
			Kind:        model.ActivityChangePassword,
			Description: "password changed: " + user.Username,
			Timestamp:   time.Now(),
		})
		return err
	})
}

// Deactivate soft-deletes a user. Administrator only.
func (s *Service) Deactivate(ctx context.Context, username string, actor model.User) error {
	if !actor.IsAdmin() {
		return ErrNotAdministrator
	}
	user, found, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("user %s not found", username)
	}
	return s.store.SetUserActive(ctx, user.ID, false)
}

// List returns every user in creation order.
func (s *Service) List(ctx context.Context) ([]model.User, error) {
	return s.store.Users(ctx)
}

func (s *Service) validateParams(params CreateParams) error {
	if err := validate.Username(params.Username); err != nil {
		return err
	}
	if err := validate.Password(params.Password, s.minPasswordLen); err != nil {
		return err
	}
	if err := validate.PersonName(params.FirstName, "first name"); err != nil {
		return err
	}
	if err := validate.PersonName(params.LastName, "last name"); err != nil {
		return err
	}
	if err := validate.Document(params.Document); err != nil {
		return err
	}
	if params.Level != model.LevelWorker && params.Level != model.LevelAdministrator {
		return fmt.Errorf("unknown access level %d", params.Level)
	}
	return nil
}
