package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lillringan/Ordersystem/internal/models"
)

type WorkItemService interface {
	CreateWorkItem(ctx context.Context, req *models.WorkItemCreateRequest) (*models.WorkItem, error)
	GetWorkItem(ctx context.Context, workItemID string) (*models.WorkItem, error)
	UpdateWorkItem(ctx context.Context, req *models.WorkItemUpdateRequest) (*models.WorkItem, error)
	SetWorkItemActive(ctx context.Context, workItemID string, isActive bool) (*models.WorkItem, error)
	GetAllWorkItems(ctx context.Context) ([]*models.WorkItem, error)
	GetWorkItemsByStatus(ctx context.Context, status models.WorkItemStatus) ([]*models.WorkItem, error)
	GetWorkItemsByTeam(ctx context.Context, teamID string) ([]*models.WorkItem, error)
	ChangeWorkItemStatus(ctx context.Context, workItemID string, status models.WorkItemStatus) (*models.WorkItem, error)
}

func (rtr *router) createWorkItem(w http.ResponseWriter, r *http.Request) {
	var req models.WorkItemCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	item, err := rtr.workItemService.CreateWorkItem(r.Context(), &req)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusCreated, &models.WorkItemResponse{WorkItem: *item})
}

func (rtr *router) updateWorkItem(w http.ResponseWriter, r *http.Request) {
	var req models.WorkItemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	item, err := rtr.workItemService.UpdateWorkItem(r.Context(), &req)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.WorkItemResponse{WorkItem: *item})
}

func (rtr *router) setWorkItemStatus(w http.ResponseWriter, r *http.Request) {
	var req models.WorkItemSetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	item, err := rtr.workItemService.ChangeWorkItemStatus(r.Context(), req.ID, req.Status)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.WorkItemResponse{WorkItem: *item})
}

func (rtr *router) setWorkItemActive(w http.ResponseWriter, r *http.Request) {
	var req models.WorkItemSetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	item, err := rtr.workItemService.SetWorkItemActive(r.Context(), req.ID, req.IsActive)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.WorkItemResponse{WorkItem: *item})
}

func (rtr *router) getWorkItem(w http.ResponseWriter, r *http.Request) {
	item, err := rtr.workItemService.GetWorkItem(r.Context(), r.URL.Query().Get("work_item_id"))
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.WorkItemResponse{WorkItem: *item})
}

// listWorkItems supports optional status or team_id filters; without either
// it returns everything.
func (rtr *router) listWorkItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := query.Get("status")
	teamID := query.Get("team_id")

	var items []*models.WorkItem
	var err error
	switch {
	case status != "":
		items, err = rtr.workItemService.GetWorkItemsByStatus(r.Context(), models.WorkItemStatus(status))
	case teamID != "":
		items, err = rtr.workItemService.GetWorkItemsByTeam(r.Context(), teamID)
	default:
		items, err = rtr.workItemService.GetAllWorkItems(r.Context())
	}
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.WorkItemsResponse{WorkItems: items})
}
