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

// teamCapacity caps active members per team. Allocation always picks the
// first team in creation order with a free slot.
const teamCapacity = 10

var (
	ErrTeamValidation = errors.New("validation error")
	ErrTeamNotFound   = errors.New("team not found")
	ErrTeamExists     = errors.New("team already exists")
)

type TeamRepository interface {
	CreateTeam(ctx context.Context, team models.Team) (*models.Team, error)
	GetTeam(ctx context.Context, teamID string) (*models.Team, error)
	UpdateTeam(ctx context.Context, team models.Team) error
	SetTeamActive(ctx context.Context, teamID string, isActive bool) (*models.Team, error)
	GetAllTeams(ctx context.Context) ([]*models.Team, error)
	GetAllTeamsForUpdate(ctx context.Context) ([]*models.Team, error)
	GetTeamUsers(ctx context.Context, teamID string) ([]*models.User, error)
	CountActiveTeamMembers(ctx context.Context, teamID string) (int, error)
	AddUserToTeam(ctx context.Context, userID, teamID string) error
}

type TeamUserRepository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type TeamService struct {
	tx    txManager
	teams TeamRepository
	users TeamUserRepository
	log   *slog.Logger
}

func NewTeamService(tx txManager, teams TeamRepository, users TeamUserRepository, log *slog.Logger) (*TeamService, error) {
	if tx == nil {
		return nil, errors.New("tx manager cannot be nil")
	}
	if teams == nil {
		return nil, errors.New("teams repository cannot be nil")
	}
	if users == nil {
		return nil, errors.New("users repository cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &TeamService{
		tx:    tx,
		teams: teams,
		users: users,
		log:   log,
	}, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, req *models.TeamCreateRequest) (*models.Team, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrTeamValidation)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: team_name is required", ErrTeamValidation)
	}

	created, err := s.teams.CreateTeam(ctx, models.Team{Name: name})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTeamExists):
			return nil, ErrTeamExists
		default:
			return nil, fmt.Errorf("create team: %w", err)
		}
	}
	return created, nil
}

// UpdateTeam renames a team. Inactive teams are immutable except for
// reactivation.
func (s *TeamService) UpdateTeam(ctx context.Context, req *models.TeamUpdateRequest) (*models.Team, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrTeamValidation)
	}
	teamID := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrTeamValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: team_name is required", ErrTeamValidation)
	}

	var updated *models.Team
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		existing, err := s.teams.GetTeam(ctx, teamID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrTeamNotFound):
				return ErrTeamNotFound
			default:
				return fmt.Errorf("get team: %w", err)
			}
		}
		if !existing.IsActive {
			return fmt.Errorf("%w: team is inactive and cannot be updated", ErrTeamValidation)
		}

		team := models.Team{ID: teamID, Name: name, IsActive: existing.IsActive}
		if err := s.teams.UpdateTeam(ctx, team); err != nil {
			switch {
			case errors.Is(err, storage.ErrTeamExists):
				return ErrTeamExists
			default:
				return fmt.Errorf("update team: %w", err)
			}
		}
		updated = &team
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTeamValidation),
			errors.Is(err, ErrTeamNotFound),
			errors.Is(err, ErrTeamExists):
			return nil, err
		default:
			return nil, fmt.Errorf("update team transaction: %w", err)
		}
	}
	return updated, nil
}

func (s *TeamService) SetTeamActive(ctx context.Context, teamID string, isActive bool) (*models.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrTeamValidation)
	}

	t, err := s.teams.SetTeamActive(ctx, teamID, isActive)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTeamNotFound):
			return nil, fmt.Errorf("set team active: %w", ErrTeamNotFound)
		default:
			return nil, fmt.Errorf("set team active: %w", err)
		}
	}
	return t, nil
}

func (s *TeamService) GetAllTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teams.GetAllTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeamUsers(ctx context.Context, teamID string) ([]*models.User, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrTeamValidation)
	}

	if _, err := s.teams.GetTeam(ctx, teamID); err != nil {
		switch {
		case errors.Is(err, storage.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("get team: %w", err)
		}
	}

	users, err := s.teams.GetTeamUsers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team users: %w", err)
	}
	return users, nil
}

// AddUserToTeam places the user in the first active team (creation order)
// with fewer than ten active members, creating "Team N+1" when every team is
// full. The whole check-then-write runs in one transaction with the team rows
// locked, two concurrent allocations cannot both take the last slot.
func (s *TeamService) AddUserToTeam(ctx context.Context, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user_id is required", ErrTeamValidation)
	}

	var assignedTeamID string
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
			return fmt.Errorf("%w: user is inactive", ErrTeamValidation)
		}

		teams, err := s.teams.GetAllTeamsForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("get teams: %w", err)
		}

		for _, team := range teams {
			if !team.IsActive {
				continue
			}
			count, err := s.teams.CountActiveTeamMembers(ctx, team.ID)
			if err != nil {
				return fmt.Errorf("count team members: %w", err)
			}
			if count < teamCapacity {
				if err := s.teams.AddUserToTeam(ctx, userID, team.ID); err != nil {
					return fmt.Errorf("add user to team: %w", err)
				}
				assignedTeamID = team.ID
				return nil
			}
		}

		created, err := s.teams.CreateTeam(ctx, models.Team{
			Name: fmt.Sprintf("Team %d", len(teams)+1),
		})
		if err != nil {
			return fmt.Errorf("create team: %w", err)
		}
		if err := s.teams.AddUserToTeam(ctx, userID, created.ID); err != nil {
			return fmt.Errorf("add user to team: %w", err)
		}
		assignedTeamID = created.ID
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTeamValidation), errors.Is(err, ErrUserNotFound):
			return "", err
		default:
			return "", fmt.Errorf("add user to team transaction: %w", err)
		}
	}
	return assignedTeamID, nil
}
