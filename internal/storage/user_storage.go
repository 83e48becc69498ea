package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lillringan/Ordersystem/internal/models"
	"github.com/lillringan/Ordersystem/pkg/postgres"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type UserStorage struct {
	db  *postgres.Postgres
	log *slog.Logger
}

func NewUserStorage(db *postgres.Postgres, log *slog.Logger) (*UserStorage, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &UserStorage{
		db:  db,
		log: log,
	}, nil
}

func scanTeamID(dest *string, ns sql.NullString) {
	if ns.Valid {
		*dest = ns.String
	} else {
		*dest = ""
	}
}

func (s *UserStorage) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var created models.User
	var teamID sql.NullString
	err := exec.QueryRowContext(ctx, `
        insert into users (id, username, firstname, lastname, is_active)
        values ($1, $2, $3, $4, true)
        returning id, username, firstname, lastname, team_id, is_active`,
		uuid.NewString(), u.Username, u.Firstname, u.Lastname,
	).Scan(&created.ID, &created.Username, &created.Firstname, &created.Lastname, &teamID, &created.IsActive)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		s.log.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("insert user: %w", err)
	}
	scanTeamID(&created.TeamID, teamID)
	return &created, nil
}

func (s *UserStorage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var u models.User
	var teamID sql.NullString
	err := exec.QueryRowContext(ctx, `
        select id, username, firstname, lastname, team_id, is_active
        from users where id = $1`,
		userID,
	).Scan(&u.ID, &u.Username, &u.Firstname, &u.Lastname, &teamID, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	scanTeamID(&u.TeamID, teamID)
	return &u, nil
}

func (s *UserStorage) UpdateUser(ctx context.Context, u models.User) error {
	exec := getExecer(ctx, s.db.DB)
	res, err := exec.ExecContext(ctx, `
        update users set username = $1, firstname = $2, lastname = $3 where id = $4`,
		u.Username, u.Firstname, u.Lastname, u.ID,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrUsernameTaken
		}
		s.log.Error("failed to update user", slog.Any("error", err))
		return fmt.Errorf("update user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update user: %w", ErrUserNotFound)
	}
	return nil
}

func (s *UserStorage) SetUserActive(ctx context.Context, userID string, isActive bool) (*models.User, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var u models.User
	var teamID sql.NullString
	err := exec.QueryRowContext(ctx, `
        update users set is_active = $1 where id = $2
        returning id, username, firstname, lastname, team_id, is_active`,
		isActive, userID,
	).Scan(&u.ID, &u.Username, &u.Firstname, &u.Lastname, &teamID, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set user active: %w", ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set user active: %w", err)
	}
	scanTeamID(&u.TeamID, teamID)
	return &u, nil
}

func (s *UserStorage) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.queryUsers(ctx, `
        select id, username, firstname, lastname, team_id, is_active
        from users order by username`)
}

func (s *UserStorage) GetUsersBy(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	return s.queryUsers(ctx, `
        select id, username, firstname, lastname, team_id, is_active
        from users
        where ($1 = '' or username = $1)
          and ($2 = '' or firstname = $2)
          and ($3 = '' or lastname = $3)
        order by username`,
		filter.Username, filter.Firstname, filter.Lastname)
}

func (s *UserStorage) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Error("failed to query users", slog.Any("error", err))
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		var teamID sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.Firstname, &u.Lastname, &teamID, &u.IsActive); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		scanTeamID(&u.TeamID, teamID)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return users, nil
}

func (s *UserStorage) GetWorkItemsByUser(ctx context.Context, userID string) ([]*models.WorkItem, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	rows, err := exec.QueryContext(ctx, `
        select id, name, status, user_id, team_id, issue_id, is_active
        from work_items where user_id = $1 order by name`,
		userID,
	)
	if err != nil {
		s.log.Error("failed to get work items by user", slog.Any("error", err), slog.String("user_id", userID))
		return nil, fmt.Errorf("get work items by user: %w", err)
	}
	defer rows.Close()
	return scanWorkItems(rows)
}

func (s *UserStorage) AssignWorkItemToUser(ctx context.Context, workItemID, userID string) error {
	exec := getExecer(ctx, s.db.DB)
	res, err := exec.ExecContext(ctx,
		"update work_items set user_id = $1 where id = $2",
		userID, workItemID,
	)
	if err != nil {
		s.log.Error("failed to assign work item", slog.Any("error", err),
			slog.String("work_item_id", workItemID), slog.String("user_id", userID))
		return fmt.Errorf("assign work item to user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("assign work item to user: %w", ErrWorkItemNotFound)
	}
	return nil
}
