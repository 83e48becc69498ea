package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lillringan/Ordersystem/internal/models"
)

func newTestTeamStorage(t *testing.T) (*TeamStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	s, err := NewTeamStorage(db, testLogger())
	if err != nil {
		t.Fatalf("NewTeamStorage returned err: %v", err)
	}
	return s, mock
}

func TestTeamStorage_CreateTeam(t *testing.T) {
	s, mock := newTestTeamStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("insert into teams (id, name, is_active) values ($1, $2, true)")).
		WithArgs(sqlmock.AnyArg(), "backend").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).
			AddRow("t1", "backend", true))

	team, err := s.CreateTeam(context.Background(), models.Team{Name: "backend"})
	if err != nil {
		t.Fatalf("CreateTeam returned err: %v", err)
	}
	if team.ID != "t1" || !team.IsActive {
		t.Fatalf("unexpected team: %#v", team)
	}
	verifyExpectations(t, mock)
}

func TestTeamStorage_CreateTeam_Exists(t *testing.T) {
	s, mock := newTestTeamStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("insert into teams")).
		WithArgs(sqlmock.AnyArg(), "backend").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := s.CreateTeam(context.Background(), models.Team{Name: "backend"})
	if !errors.Is(err, ErrTeamExists) {
		t.Fatalf("expected ErrTeamExists, got %v", err)
	}
	verifyExpectations(t, mock)
}

func TestTeamStorage_GetTeam_NotFound(t *testing.T) {
	s, mock := newTestTeamStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("select id, name, is_active from teams where id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}))

	_, err := s.GetTeam(context.Background(), "missing")
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	verifyExpectations(t, mock)
}

func TestTeamStorage_GetAllTeams_CreationOrder(t *testing.T) {
	s, mock := newTestTeamStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("select id, name, is_active from teams order by seq")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).
			AddRow("t1", "Team 1", true).
			AddRow("t2", "Team 2", false))

	teams, err := s.GetAllTeams(context.Background())
	if err != nil {
		t.Fatalf("GetAllTeams returned err: %v", err)
	}
	if len(teams) != 2 || teams[0].ID != "t1" || teams[1].IsActive {
		t.Fatalf("unexpected teams: %#v", teams)
	}
	verifyExpectations(t, mock)
}

func TestTeamStorage_GetAllTeamsForUpdate_LocksRows(t *testing.T) {
	s, mock := newTestTeamStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("select id, name, is_active from teams order by seq for update")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).
			AddRow("t1", "Team 1", true))

	teams, err := s.GetAllTeamsForUpdate(context.Background())
	if err != nil {
		t.Fatalf("GetAllTeamsForUpdate returned err: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(teams))
	}
	verifyExpectations(t, mock)
}

func TestTeamStorage_CountActiveTeamMembers(t *testing.T) {
	s, mock := newTestTeamStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("select count(*) from users where team_id = $1 and is_active")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := s.CountActiveTeamMembers(context.Background(), "t1")
	if err != nil {
		t.Fatalf("CountActiveTeamMembers returned err: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7, got %d", count)
	}
	verifyExpectations(t, mock)
}

func TestTeamStorage_AddUserToTeam_UserNotFound(t *testing.T) {
	s, mock := newTestTeamStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("update users set team_id = $1 where id = $2")).
		WithArgs("t1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.AddUserToTeam(context.Background(), "missing", "t1")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	verifyExpectations(t, mock)
}

func TestTeamStorage_GetTeamUsers(t *testing.T) {
	s, mock := newTestTeamStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("from users where team_id = $1 order by username")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("u1", "ausername01", "Jane", "Doe", "t1", true).
			AddRow("u2", "busername02", "John", "Doe", "t1", false))

	users, err := s.GetTeamUsers(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTeamUsers returned err: %v", err)
	}
	if len(users) != 2 || users[0].TeamID != "t1" || users[1].IsActive {
		t.Fatalf("unexpected users: %#v", users)
	}
	verifyExpectations(t, mock)
}
