package models

type Team struct {
	ID       string `json:"team_id"`
	Name     string `json:"team_name"`
	IsActive bool   `json:"is_active"`
}

type TeamCreateRequest struct {
	Name string `json:"team_name" validate:"required"`
}

type TeamUpdateRequest struct {
	ID   string `json:"team_id" validate:"required"`
	Name string `json:"team_name" validate:"required"`
}

type TeamSetActiveRequest struct {
	ID       string `json:"team_id" validate:"required"`
	IsActive bool   `json:"is_active"`
}

type TeamResponse struct {
	Team Team `json:"team"`
}

type TeamsResponse struct {
	Teams []*Team `json:"teams"`
}

type TeamUsersResponse struct {
	TeamID  string  `json:"team_id"`
	Members []*User `json:"members"`
}

type AssignUserRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type AssignUserResponse struct {
	UserID string `json:"user_id"`
	TeamID string `json:"team_id"`
}
