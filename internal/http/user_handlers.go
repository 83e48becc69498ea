package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lillringan/Ordersystem/internal/models"
)

type UserService interface {
	CreateUser(ctx context.Context, req *models.UserCreateRequest) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, req *models.UserUpdateRequest) (*models.User, error)
	SetUserActive(ctx context.Context, userID string, isActive bool) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUsersBy(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	AddWorkItemToUser(ctx context.Context, userID, workItemID string) error
	GetWorkItemsByUser(ctx context.Context, userID string) ([]*models.WorkItem, error)
}

func (rtr *router) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	user, err := rtr.userService.CreateUser(r.Context(), &req)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusCreated, &models.UserResponse{User: *user})
}

func (rtr *router) updateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	user, err := rtr.userService.UpdateUser(r.Context(), &req)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.UserResponse{User: *user})
}

func (rtr *router) setUserActive(w http.ResponseWriter, r *http.Request) {
	var req models.UserSetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	user, err := rtr.userService.SetUserActive(r.Context(), req.ID, req.IsActive)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.UserResponse{User: *user})
}

func (rtr *router) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := rtr.userService.GetUser(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.UserResponse{User: *user})
}

func (rtr *router) listUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.UserFilter{
		Username:  query.Get("username"),
		Firstname: query.Get("firstname"),
		Lastname:  query.Get("lastname"),
	}

	var users []*models.User
	var err error
	if filter == (models.UserFilter{}) {
		users, err = rtr.userService.GetAllUsers(r.Context())
	} else {
		users, err = rtr.userService.GetUsersBy(r.Context(), filter)
	}
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.UsersResponse{Users: users})
}

func (rtr *router) addWorkItemToUser(w http.ResponseWriter, r *http.Request) {
	var req models.AddWorkItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	if err := rtr.userService.AddWorkItemToUser(r.Context(), req.UserID, req.WorkItemID); err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &req)
}

func (rtr *router) getUserWorkItems(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	items, err := rtr.userService.GetWorkItemsByUser(r.Context(), userID)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.UserWorkItemsResponse{
		UserID:    userID,
		WorkItems: items,
	})
}
