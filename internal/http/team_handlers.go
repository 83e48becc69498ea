package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lillringan/Ordersystem/internal/models"
)

type TeamService interface {
	CreateTeam(ctx context.Context, req *models.TeamCreateRequest) (*models.Team, error)
	UpdateTeam(ctx context.Context, req *models.TeamUpdateRequest) (*models.Team, error)
	SetTeamActive(ctx context.Context, teamID string, isActive bool) (*models.Team, error)
	GetAllTeams(ctx context.Context) ([]*models.Team, error)
	GetTeamUsers(ctx context.Context, teamID string) ([]*models.User, error)
	AddUserToTeam(ctx context.Context, userID string) (string, error)
}

func (rtr *router) createTeam(w http.ResponseWriter, r *http.Request) {
	var req models.TeamCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	team, err := rtr.teamService.CreateTeam(r.Context(), &req)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusCreated, &models.TeamResponse{Team: *team})
}

func (rtr *router) updateTeam(w http.ResponseWriter, r *http.Request) {
	var req models.TeamUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	team, err := rtr.teamService.UpdateTeam(r.Context(), &req)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.TeamResponse{Team: *team})
}

func (rtr *router) setTeamActive(w http.ResponseWriter, r *http.Request) {
	var req models.TeamSetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	team, err := rtr.teamService.SetTeamActive(r.Context(), req.ID, req.IsActive)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.TeamResponse{Team: *team})
}

func (rtr *router) getTeamUsers(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	users, err := rtr.teamService.GetTeamUsers(r.Context(), teamID)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.TeamUsersResponse{
		TeamID:  teamID,
		Members: users,
	})
}

func (rtr *router) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := rtr.teamService.GetAllTeams(r.Context())
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.TeamsResponse{Teams: teams})
}

func (rtr *router) assignUserToTeam(w http.ResponseWriter, r *http.Request) {
	var req models.AssignUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	teamID, err := rtr.teamService.AddUserToTeam(r.Context(), req.UserID)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.AssignUserResponse{
		UserID: req.UserID,
		TeamID: teamID,
	})
}
