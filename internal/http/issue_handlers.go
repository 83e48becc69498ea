package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lillringan/Ordersystem/internal/models"
)

type IssueService interface {
	AddIssueToWorkItem(ctx context.Context, req *models.IssueAddRequest) (*models.Issue, error)
	UpdateIssue(ctx context.Context, req *models.IssueUpdateRequest) (*models.Issue, error)
	GetIssue(ctx context.Context, issueID string) (*models.Issue, error)
	GetAllIssues(ctx context.Context) ([]*models.Issue, error)
	SetIssueActive(ctx context.Context, issueID string, isActive bool) (*models.Issue, error)
	GetWorkItemsWithIssue(ctx context.Context) ([]*models.WorkItem, error)
}

func (rtr *router) addIssueToWorkItem(w http.ResponseWriter, r *http.Request) {
	var req models.IssueAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	issue, err := rtr.issueService.AddIssueToWorkItem(r.Context(), &req)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusCreated, &models.IssueResponse{Issue: *issue})
}

func (rtr *router) updateIssue(w http.ResponseWriter, r *http.Request) {
	var req models.IssueUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	issue, err := rtr.issueService.UpdateIssue(r.Context(), &req)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.IssueResponse{Issue: *issue})
}

func (rtr *router) setIssueActive(w http.ResponseWriter, r *http.Request) {
	var req models.IssueSetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeBadRequest, "bad json request"))
		return
	}
	if err := rtr.validate.Struct(&req); err != nil {
		rtr.handleError(w, newResponseError(ErrCodeValidation, "validation error: "+err.Error()))
		return
	}

	issue, err := rtr.issueService.SetIssueActive(r.Context(), req.ID, req.IsActive)
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.IssueResponse{Issue: *issue})
}

func (rtr *router) getIssue(w http.ResponseWriter, r *http.Request) {
	issue, err := rtr.issueService.GetIssue(r.Context(), r.URL.Query().Get("issue_id"))
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.IssueResponse{Issue: *issue})
}

func (rtr *router) listIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := rtr.issueService.GetAllIssues(r.Context())
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.IssuesResponse{Issues: issues})
}

func (rtr *router) getWorkItemsWithIssue(w http.ResponseWriter, r *http.Request) {
	items, err := rtr.issueService.GetWorkItemsWithIssue(r.Context())
	if err != nil {
		rtr.handleError(w, err)
		return
	}
	rtr.responseJSON(w, http.StatusOK, &models.WorkItemsResponse{WorkItems: items})
}
