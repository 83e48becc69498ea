package models

type User struct {
	ID        string `json:"user_id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	TeamID    string `json:"team_id,omitempty"`
	IsActive  bool   `json:"is_active"`
}

type UserCreateRequest struct {
	Username  string `json:"username" validate:"required"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type UserUpdateRequest struct {
	ID        string `json:"user_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type UserSetActiveRequest struct {
	ID       string `json:"user_id" validate:"required"`
	IsActive bool   `json:"is_active"`
}

// UserFilter carries optional AND-combined list filters. Empty field means
// "ignore this field".
type UserFilter struct {
	Username  string
	Firstname string
	Lastname  string
}

type UserResponse struct {
	User User `json:"user"`
}

type UsersResponse struct {
	Users []*User `json:"users"`
}

type AddWorkItemRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	WorkItemID string `json:"work_item_id" validate:"required"`
}

type UserWorkItemsResponse struct {
	UserID    string      `json:"user_id"`
	WorkItems []*WorkItem `json:"work_items"`
}
