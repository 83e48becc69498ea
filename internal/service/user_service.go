package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lillringan/Ordersystem/internal/models"
	"github.com/lillringan/Ordersystem/internal/storage"
)

const (
	minUsernameLength   = 10
	maxWorkItemsPerUser = 5
)

var (
	ErrUserValidation = errors.New("validation error")
	ErrUserNotFound   = errors.New("user not found")
)

type UserRepository interface {
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, u models.User) error
	SetUserActive(ctx context.Context, userID string, isActive bool) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUsersBy(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
}

type UserWorkItemRepository interface {
	GetWorkItemsByUser(ctx context.Context, userID string) ([]*models.WorkItem, error)
	AssignWorkItemToUser(ctx context.Context, workItemID, userID string) error
}

type UserService struct {
	tx    txManager
	users UserRepository
	items UserWorkItemRepository
	log   *slog.Logger
}

func NewUserService(tx txManager, users UserRepository, items UserWorkItemRepository, log *slog.Logger) (*UserService, error) {
	if tx == nil {
		return nil, errors.New("tx manager cannot be nil")
	}
	if users == nil {
		return nil, errors.New("users repository cannot be nil")
	}
	if items == nil {
		return nil, errors.New("work items repository cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &UserService{
		tx:    tx,
		users: users,
		items: items,
		log:   log,
	}, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrUserValidation)
	}
	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLength {
		return nil, fmt.Errorf("%w: username too short, at least %d characters required", ErrUserValidation, minUsernameLength)
	}

	created, err := s.users.CreateUser(ctx, models.User{
		Username:  username,
		Firstname: strings.TrimSpace(req.Firstname),
		Lastname:  strings.TrimSpace(req.Lastname),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUsernameTaken):
			return nil, fmt.Errorf("%w: username already taken", ErrUserValidation)
		default:
			return nil, fmt.Errorf("create user: %w", err)
		}
	}
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrUserValidation)
	}

	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("get user: %w", err)
		}
	}
	return u, nil
}

// UpdateUser overwrites the user's fields. Inactive users are immutable
// except for reactivation.
func (s *UserService) UpdateUser(ctx context.Context, req *models.UserUpdateRequest) (*models.User, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrUserValidation)
	}
	userID := strings.TrimSpace(req.ID)
	username := strings.TrimSpace(req.Username)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrUserValidation)
	}
	if len(username) < minUsernameLength {
		return nil, fmt.Errorf("%w: username too short, at least %d characters required", ErrUserValidation, minUsernameLength)
	}

	var updated *models.User
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		existing, err := s.users.GetUser(ctx, userID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrUserNotFound):
				return ErrUserNotFound
			default:
				return fmt.Errorf("get user: %w", err)
			}
		}
		if !existing.IsActive {
			return fmt.Errorf("%w: user is inactive and cannot be updated", ErrUserValidation)
		}

		u := models.User{
			ID:        userID,
			Username:  username,
			Firstname: strings.TrimSpace(req.Firstname),
			Lastname:  strings.TrimSpace(req.Lastname),
		}
		if err := s.users.UpdateUser(ctx, u); err != nil {
			switch {
			case errors.Is(err, storage.ErrUsernameTaken):
				return fmt.Errorf("%w: username already taken", ErrUserValidation)
			default:
				return fmt.Errorf("update user: %w", err)
			}
		}
		u.TeamID = existing.TeamID
		u.IsActive = existing.IsActive
		updated = &u
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserValidation), errors.Is(err, ErrUserNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("update user transaction: %w", err)
		}
	}
	return updated, nil
}

// SetUserActive toggles the soft-delete flag. The toggle is unconditional, so
// repeating it is a no-op rather than an error.
func (s *UserService) SetUserActive(ctx context.Context, userID string, isActive bool) (*models.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrUserValidation)
	}

	u, err := s.users.SetUserActive(ctx, userID, isActive)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, fmt.Errorf("set user active: %w", ErrUserNotFound)
		default:
			return nil, fmt.Errorf("set user active: %w", err)
		}
	}
	return u, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUsersBy(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	filter.Username = strings.TrimSpace(filter.Username)
	filter.Firstname = strings.TrimSpace(filter.Firstname)
	filter.Lastname = strings.TrimSpace(filter.Lastname)

	users, err := s.users.GetUsersBy(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get users by filter: %w", err)
	}
	return users, nil
}

// AddWorkItemToUser assigns ownership of a work item. The user must be active
// and may own at most five active work items; the count check and the write
// run in one transaction.
func (s *UserService) AddWorkItemToUser(ctx context.Context, userID, workItemID string) error {
	userID = strings.TrimSpace(userID)
	workItemID = strings.TrimSpace(workItemID)
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrUserValidation)
	}
	if workItemID == "" {
		return fmt.Errorf("%w: work_item_id is required", ErrUserValidation)
	}

	err := s.tx.Run(ctx, func(ctx context.Context) error {
		user, err := s.users.GetUser(ctx, userID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrUserNotFound):
				return ErrUserNotFound
			default:
				return fmt.Errorf("get user: %w", err)
			}
		}
		if !user.IsActive {
			return fmt.Errorf("%w: user is inactive", ErrUserValidation)
		}

		owned, err := s.items.GetWorkItemsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("get work items by user: %w", err)
		}
		active := 0
		for _, item := range owned {
			if item.IsActive {
				active++
			}
		}
		if active >= maxWorkItemsPerUser {
			return fmt.Errorf("%w: work item limit reached, user already has %d work items", ErrUserValidation, maxWorkItemsPerUser)
		}

		if err := s.items.AssignWorkItemToUser(ctx, workItemID, userID); err != nil {
			switch {
			case errors.Is(err, storage.ErrWorkItemNotFound):
				return ErrWorkItemNotFound
			default:
				return fmt.Errorf("assign work item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserValidation),
			errors.Is(err, ErrUserNotFound),
			errors.Is(err, ErrWorkItemNotFound):
			return err
		default:
			return fmt.Errorf("add work item transaction: %w", err)
		}
	}
	return nil
}

func (s *UserService) GetWorkItemsByUser(ctx context.Context, userID string) ([]*models.WorkItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrUserValidation)
	}

	items, err := s.items.GetWorkItemsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get work items by user: %w", err)
	}
	return items, nil
}
