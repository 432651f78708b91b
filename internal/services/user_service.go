package services

import (
	"context"
	"fmt"

	"expensemanager/internal/core"
	"expensemanager/internal/log"
)

// UserService handles account lifecycle: registration, authentication,
// profile changes. Email uniqueness is checked here against storage before
// the entity is ever constructed.
type UserService struct {
	users  UserRepository
	hasher PasswordHasher
	logger *log.Logger
}

func NewUserService(users UserRepository, hasher PasswordHasher, logger *log.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger.WithComponent(log.ComponentUsers),
	}
}

// Register creates an active account. The raw password is hashed here; the
// domain only ever sees the hash+salt pair.
func (s *UserService) Register(ctx context.Context, name, rawEmail, password string) (*core.User, error) {
	email, err := core.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.EmailExists(ctx, email.String())
	if err != nil {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("email %s: %w", email, ErrAlreadyExists)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := core.NewUser(name, email, hashed)
	if err != nil {
		return nil, err
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered",
		log.FieldUserID, user.ID(),
		log.FieldEmail, user.Email().String())

	return user, nil
}

// Authenticate verifies credentials and records the login. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, rawEmail, password string) (*core.User, error) {
	email, err := core.NewEmail(rawEmail)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email.String())
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.Password()) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrUserInactive
	}

	user.RecordLogin()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	return user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*core.User, error) {
	return s.users.GetUser(ctx, id)
}

// UpdateName renames the account.
func (s *UserService) UpdateName(ctx context.Context, id, newName string) (*core.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateName(newName); err != nil {
		return nil, err
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// UpdateEmail changes the account email, keeping emails unique across users.
func (s *UserService) UpdateEmail(ctx context.Context, id, rawEmail string) (*core.User, error) {
	email, err := core.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if other, err := s.users.GetUserByEmail(ctx, email.String()); err == nil && other.ID() != user.ID() {
		return nil, fmt.Errorf("email %s: %w", email, ErrAlreadyExists)
	}

	if err := user.UpdateEmail(email); err != nil {
		return nil, err
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// ChangePassword hashes and stores a new password.
func (s *UserService) ChangePassword(ctx context.Context, id, newPassword string) error {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := user.ChangePassword(hashed); err != nil {
		return err
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	s.logger.InfoContext(ctx, "Password changed", log.FieldUserID, id)
	return nil
}

// Activate re-enables a deactivated account.
func (s *UserService) Activate(ctx context.Context, id string) error {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return err
	}
	user.Activate()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Deactivate disables an account without deleting its data.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return err
	}
	user.Deactivate()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	s.logger.InfoContext(ctx, "User deactivated", log.FieldUserID, id)
	return nil
}
