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

var (
	ErrWorkItemValidation = errors.New("validation error")
	ErrWorkItemNotFound   = errors.New("work item not found")
)

type WorkItemRepository interface {
	CreateWorkItem(ctx context.Context, item models.WorkItem) (*models.WorkItem, error)
	GetWorkItem(ctx context.Context, workItemID string) (*models.WorkItem, error)
	UpdateWorkItem(ctx context.Context, item models.WorkItem) error
	SetWorkItemActive(ctx context.Context, workItemID string, isActive bool) (*models.WorkItem, error)
	GetAllWorkItems(ctx context.Context) ([]*models.WorkItem, error)
	GetWorkItemsByStatus(ctx context.Context, status models.WorkItemStatus) ([]*models.WorkItem, error)
	GetWorkItemsByTeam(ctx context.Context, teamID string) ([]*models.WorkItem, error)
	SetWorkItemStatus(ctx context.Context, workItemID string, status models.WorkItemStatus) error
}

type WorkItemService struct {
	items WorkItemRepository
	log   *slog.Logger
}

func NewWorkItemService(items WorkItemRepository, log *slog.Logger) (*WorkItemService, error) {
	if items == nil {
		return nil, errors.New("work items repository cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &WorkItemService{
		items: items,
		log:   log,
	}, nil
}

func (s *WorkItemService) CreateWorkItem(ctx context.Context, req *models.WorkItemCreateRequest) (*models.WorkItem, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrWorkItemValidation)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: work_item_name is required", ErrWorkItemValidation)
	}

	created, err := s.items.CreateWorkItem(ctx, models.WorkItem{
		Name:   name,
		Status: models.StatusUnstarted,
	})
	if err != nil {
		return nil, fmt.Errorf("create work item: %w", err)
	}
	return created, nil
}

func (s *WorkItemService) GetWorkItem(ctx context.Context, workItemID string) (*models.WorkItem, error) {
	workItemID = strings.TrimSpace(workItemID)
	if workItemID == "" {
		return nil, fmt.Errorf("%w: work_item_id is required", ErrWorkItemValidation)
	}

	item, err := s.items.GetWorkItem(ctx, workItemID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrWorkItemNotFound):
			return nil, ErrWorkItemNotFound
		default:
			return nil, fmt.Errorf("get work item: %w", err)
		}
	}
	return item, nil
}

func (s *WorkItemService) UpdateWorkItem(ctx context.Context, req *models.WorkItemUpdateRequest) (*models.WorkItem, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrWorkItemValidation)
	}
	workItemID := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)
	if workItemID == "" {
		return nil, fmt.Errorf("%w: work_item_id is required", ErrWorkItemValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: work_item_name is required", ErrWorkItemValidation)
	}

	existing, err := s.items.GetWorkItem(ctx, workItemID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrWorkItemNotFound):
			return nil, ErrWorkItemNotFound
		default:
			return nil, fmt.Errorf("get work item: %w", err)
		}
	}

	if err := s.items.UpdateWorkItem(ctx, models.WorkItem{ID: workItemID, Name: name}); err != nil {
		return nil, fmt.Errorf("update work item: %w", err)
	}
	existing.Name = name
	return existing, nil
}

func (s *WorkItemService) SetWorkItemActive(ctx context.Context, workItemID string, isActive bool) (*models.WorkItem, error) {
	workItemID = strings.TrimSpace(workItemID)
	if workItemID == "" {
		return nil, fmt.Errorf("%w: work_item_id is required", ErrWorkItemValidation)
	}

	item, err := s.items.SetWorkItemActive(ctx, workItemID, isActive)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrWorkItemNotFound):
			return nil, fmt.Errorf("set work item active: %w", ErrWorkItemNotFound)
		default:
			return nil, fmt.Errorf("set work item active: %w", err)
		}
	}
	return item, nil
}

func (s *WorkItemService) GetAllWorkItems(ctx context.Context) ([]*models.WorkItem, error) {
	items, err := s.items.GetAllWorkItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all work items: %w", err)
	}
	return items, nil
}

func (s *WorkItemService) GetWorkItemsByStatus(ctx context.Context, status models.WorkItemStatus) ([]*models.WorkItem, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrWorkItemValidation, status)
	}

	items, err := s.items.GetWorkItemsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("get work items by status: %w", err)
	}
	return items, nil
}

func (s *WorkItemService) GetWorkItemsByTeam(ctx context.Context, teamID string) ([]*models.WorkItem, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrWorkItemValidation)
	}

	items, err := s.items.GetWorkItemsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get work items by team: %w", err)
	}
	return items, nil
}

// ChangeWorkItemStatus overwrites the status. Any value may move to any other
// value, including itself.
func (s *WorkItemService) ChangeWorkItemStatus(ctx context.Context, workItemID string, status models.WorkItemStatus) (*models.WorkItem, error) {
	workItemID = strings.TrimSpace(workItemID)
	if workItemID == "" {
		return nil, fmt.Errorf("%w: work_item_id is required", ErrWorkItemValidation)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrWorkItemValidation, status)
	}

	if err := s.items.SetWorkItemStatus(ctx, workItemID, status); err != nil {
		switch {
		case errors.Is(err, storage.ErrWorkItemNotFound):
			return nil, ErrWorkItemNotFound
		default:
			return nil, fmt.Errorf("change work item status: %w", err)
		}
	}

	item, err := s.items.GetWorkItem(ctx, workItemID)
	if err != nil {
		return nil, fmt.Errorf("get work item: %w", err)
	}
	return item, nil
}
