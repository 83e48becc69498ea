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
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamExists   = errors.New("team already exists")
)

type TeamStorage struct {
	db  *postgres.Postgres
	log *slog.Logger
}

func NewTeamStorage(db *postgres.Postgres, log *slog.Logger) (*TeamStorage, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &TeamStorage{
		db:  db,
		log: log,
	}, nil
}

func (s *TeamStorage) CreateTeam(ctx context.Context, team models.Team) (*models.Team, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var created models.Team
	err := exec.QueryRowContext(ctx, `
        insert into teams (id, name, is_active) values ($1, $2, true)
        returning id, name, is_active`,
		uuid.NewString(), team.Name,
	).Scan(&created.ID, &created.Name, &created.IsActive)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrTeamExists
		}
		s.log.Error("failed to create team", slog.Any("error", err))
		return nil, fmt.Errorf("insert team %q: %w", team.Name, err)
	}
	return &created, nil
}

func (s *TeamStorage) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var t models.Team
	err := exec.QueryRowContext(ctx,
		"select id, name, is_active from teams where id = $1",
		teamID,
	).Scan(&t.ID, &t.Name, &t.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get team: %w", ErrTeamNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

func (s *TeamStorage) UpdateTeam(ctx context.Context, team models.Team) error {
	exec := getExecer(ctx, s.db.DB)
	res, err := exec.ExecContext(ctx,
		"update teams set name = $1 where id = $2",
		team.Name, team.ID,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrTeamExists
		}
		s.log.Error("failed to update team", slog.Any("error", err))
		return fmt.Errorf("update team: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update team: %w", ErrTeamNotFound)
	}
	return nil
}

func (s *TeamStorage) SetTeamActive(ctx context.Context, teamID string, isActive bool) (*models.Team, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var t models.Team
	err := exec.QueryRowContext(ctx, `
        update teams set is_active = $1 where id = $2
        returning id, name, is_active`,
		isActive, teamID,
	).Scan(&t.ID, &t.Name, &t.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set team active: %w", ErrTeamNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set team active: %w", err)
	}
	return &t, nil
}

// GetAllTeams lists teams in creation order. The allocation rule depends on
// this ordering, seq is a monotonic insert sequence.
func (s *TeamStorage) GetAllTeams(ctx context.Context) ([]*models.Team, error) {
	return s.queryTeams(ctx, "select id, name, is_active from teams order by seq")
}

// GetAllTeamsForUpdate lists teams in creation order and locks the rows for
// the duration of the surrounding transaction, serializing concurrent
// allocations against the member cap.
func (s *TeamStorage) GetAllTeamsForUpdate(ctx context.Context) ([]*models.Team, error) {
	return s.queryTeams(ctx, "select id, name, is_active from teams order by seq for update")
}

func (s *TeamStorage) queryTeams(ctx context.Context, query string) ([]*models.Team, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		s.log.Error("failed to query teams", slog.Any("error", err))
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.IsActive); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	return teams, nil
}

func (s *TeamStorage) GetTeamUsers(ctx context.Context, teamID string) ([]*models.User, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	rows, err := exec.QueryContext(ctx, `
        select id, username, firstname, lastname, team_id, is_active
        from users where team_id = $1 order by username`,
		teamID,
	)
	if err != nil {
		s.log.Error("failed to get team users", slog.Any("error", err), slog.String("team_id", teamID))
		return nil, fmt.Errorf("get team users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		var tid sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.Firstname, &u.Lastname, &tid, &u.IsActive); err != nil {
			return nil, fmt.Errorf("scan team user: %w", err)
		}
		scanTeamID(&u.TeamID, tid)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get team users: %w", err)
	}
	return users, nil
}

func (s *TeamStorage) CountActiveTeamMembers(ctx context.Context, teamID string) (int, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var count int
	err := exec.QueryRowContext(ctx,
		"select count(*) from users where team_id = $1 and is_active",
		teamID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count team members: %w", err)
	}
	return count, nil
}

func (s *TeamStorage) AddUserToTeam(ctx context.Context, userID, teamID string) error {
	exec := getExecer(ctx, s.db.DB)
	res, err := exec.ExecContext(ctx,
		"update users set team_id = $1 where id = $2",
		teamID, userID,
	)
	if err != nil {
		s.log.Error("failed to add user to team", slog.Any("error", err),
			slog.String("user_id", userID), slog.String("team_id", teamID))
		return fmt.Errorf("add user to team: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("add user to team: %w", ErrUserNotFound)
	}
	return nil
}
