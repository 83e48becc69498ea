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

func TestCreateUser(t *testing.T) {
	handler := newTestRouter(t, &fakeUserService{
		createFn: func(_ context.Context, req *models.UserCreateRequest) (*models.User, error) {
			return &models.User{
				ID:        "u1",
				Username:  req.Username,
				Firstname: req.Firstname,
				Lastname:  req.Lastname,
				IsActive:  true,
			}, nil
		},
	}, nil, nil, nil)

	body := `{"username":"longenoughname","firstname":"Jane","lastname":"Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/users/create", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.User.ID != "u1" || resp.User.Username != "longenoughname" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestCreateUser_BadJSON(t *testing.T) {
	handler := newTestRouter(t, &fakeUserService{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/users/create", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodeBadRequest {
		t.Fatalf("expected %s, got %s", ErrCodeBadRequest, resp.Error.Code)
	}
}

func TestCreateUser_MissingUsername(t *testing.T) {
	handler := newTestRouter(t, &fakeUserService{
		createFn: func(context.Context, *models.UserCreateRequest) (*models.User, error) {
			t.Fatalf("service must not be called when validation fails")
			return nil, nil
		},
	}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/users/create", strings.NewReader(`{"firstname":"Jane"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodeValidation {
		t.Fatalf("expected %s, got %s", ErrCodeValidation, resp.Error.Code)
	}
}

func TestCreateUser_ShortUsername(t *testing.T) {
	handler := newTestRouter(t, &fakeUserService{
		createFn: func(context.Context, *models.UserCreateRequest) (*models.User, error) {
			return nil, fmt.Errorf("%w: username too short, at least 10 characters required", service.ErrUserValidation)
		},
	}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/users/create", strings.NewReader(`{"username":"short"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodeValidation {
		t.Fatalf("expected %s, got %s", ErrCodeValidation, resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "username too short") {
		t.Fatalf("unexpected message: %q", resp.Error.Message)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	handler := newTestRouter(t, &fakeUserService{
		getFn: func(context.Context, string) (*models.User, error) {
			return nil, service.ErrUserNotFound
		},
	}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/get?user_id=missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodeNotFound {
		t.Fatalf("expected %s, got %s", ErrCodeNotFound, resp.Error.Code)
	}
}

func TestListUsers_NoFilter(t *testing.T) {
	handler := newTestRouter(t, &fakeUserService{
		getAllFn: func(context.Context) ([]*models.User, error) {
			return []*models.User{{ID: "u1", Username: "longenoughname", IsActive: true}}, nil
		},
		getByFn: func(context.Context, models.UserFilter) ([]*models.User, error) {
			t.Fatalf("filtered lookup must not run without query params")
			return nil, nil
		},
	}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/list", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.UsersResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(resp.Users))
	}
}

func TestListUsers_WithFilter(t *testing.T) {
	handler := newTestRouter(t, &fakeUserService{
		getByFn: func(_ context.Context, filter models.UserFilter) ([]*models.User, error) {
			if filter.Username != "longenoughname" {
				t.Fatalf("unexpected filter: %#v", filter)
			}
			return []*models.User{{ID: "u1", Username: "longenoughname", IsActive: true}}, nil
		},
	}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/list?username=longenoughname", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAddWorkItemToUser_LimitReached(t *testing.T) {
	handler := newTestRouter(t, &fakeUserService{
		addItemFn: func(context.Context, string, string) error {
			return fmt.Errorf("%w: work item limit reached, user already has 5 work items", service.ErrUserValidation)
		},
	}, nil, nil, nil)

	body := `{"user_id":"u1","work_item_id":"w6"}`
	req := httptest.NewRequest(http.MethodPost, "/users/addWorkItem", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp.Error.Message, "work item limit reached") {
		t.Fatalf("unexpected message: %q", resp.Error.Message)
	}
}
