package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lillringan/Ordersystem/internal/models"
	"github.com/lillringan/Ordersystem/internal/service"
)

func TestCreateWorkItem(t *testing.T) {
	handler := newTestRouter(t, nil, nil, &fakeWorkItemService{
		createFn: func(_ context.Context, req *models.WorkItemCreateRequest) (*models.WorkItem, error) {
			return &models.WorkItem{
				ID:       "w1",
				Name:     req.Name,
				Status:   models.StatusUnstarted,
				IsActive: true,
			}, nil
		},
	}, nil)

	body := `{"work_item_name":"implement checkout"}`
	req := httptest.NewRequest(http.MethodPost, "/workItem/create", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.WorkItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.WorkItem.Status != models.StatusUnstarted {
		t.Fatalf("new item must report UNSTARTED, got %q", resp.WorkItem.Status)
	}
}

func TestSetWorkItemStatus(t *testing.T) {
	handler := newTestRouter(t, nil, nil, &fakeWorkItemService{
		changeStatusFn: func(_ context.Context, workItemID string, status models.WorkItemStatus) (*models.WorkItem, error) {
			return &models.WorkItem{ID: workItemID, Name: "item", Status: status, IsActive: true}, nil
		},
	}, nil)

	body := `{"work_item_id":"w1","status":"DONE"}`
	req := httptest.NewRequest(http.MethodPost, "/workItem/setStatus", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.WorkItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.WorkItem.Status != models.StatusDone {
		t.Fatalf("unexpected status: %q", resp.WorkItem.Status)
	}
}

func TestSetWorkItemStatus_UnknownStatus(t *testing.T) {
	handler := newTestRouter(t, nil, nil, &fakeWorkItemService{
		changeStatusFn: func(_ context.Context, _ string, status models.WorkItemStatus) (*models.WorkItem, error) {
			return nil, fmt.Errorf("%w: unknown status %q", service.ErrWorkItemValidation, status)
		},
	}, nil)

	body := `{"work_item_id":"w1","status":"PAUSED"}`
	req := httptest.NewRequest(http.MethodPost, "/workItem/setStatus", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListWorkItems_ByStatus(t *testing.T) {
	handler := newTestRouter(t, nil, nil, &fakeWorkItemService{
		getByStatusFn: func(_ context.Context, status models.WorkItemStatus) ([]*models.WorkItem, error) {
			if status != models.StatusStarted {
				t.Fatalf("unexpected status filter: %q", status)
			}
			return []*models.WorkItem{{ID: "w1", Name: "item", Status: status, IsActive: true}}, nil
		},
		getAllFn: func(context.Context) ([]*models.WorkItem, error) {
			t.Fatalf("unfiltered listing must not run with a status param")
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/workItem/list?status=STARTED", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.WorkItemsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.WorkItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.WorkItems))
	}
}

func TestListWorkItems_ByTeam(t *testing.T) {
	handler := newTestRouter(t, nil, nil, &fakeWorkItemService{
		getByTeamFn: func(_ context.Context, teamID string) ([]*models.WorkItem, error) {
			if teamID != "t1" {
				t.Fatalf("unexpected team filter: %q", teamID)
			}
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/workItem/list?team_id=t1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetWorkItem_NotFound(t *testing.T) {
	handler := newTestRouter(t, nil, nil, &fakeWorkItemService{
		getFn: func(context.Context, string) (*models.WorkItem, error) {
			return nil, service.ErrWorkItemNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/workItem/get?work_item_id=missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
