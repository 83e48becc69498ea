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
	ErrIssueValidation = errors.New("validation error")
	ErrIssueNotFound   = errors.New("issue not found")
)

type IssueRepository interface {
	CreateIssue(ctx context.Context, issue models.Issue) (*models.Issue, error)
	GetIssue(ctx context.Context, issueID string) (*models.Issue, error)
	UpdateIssue(ctx context.Context, issue models.Issue) error
	SetIssueActive(ctx context.Context, issueID string, isActive bool) (*models.Issue, error)
	GetAllIssues(ctx context.Context) ([]*models.Issue, error)
	LinkIssueToWorkItem(ctx context.Context, issueID, workItemID string) error
	GetWorkItemsWithIssue(ctx context.Context) ([]*models.WorkItem, error)
}

type IssueWorkItemRepository interface {
	GetWorkItem(ctx context.Context, workItemID string) (*models.WorkItem, error)
	SetWorkItemStatus(ctx context.Context, workItemID string, status models.WorkItemStatus) error
}

type IssueService struct {
	tx     txManager
	issues IssueRepository
	items  IssueWorkItemRepository
	log    *slog.Logger
}

func NewIssueService(tx txManager, issues IssueRepository, items IssueWorkItemRepository, log *slog.Logger) (*IssueService, error) {
	if tx == nil {
		return nil, errors.New("tx manager cannot be nil")
	}
	if issues == nil {
		return nil, errors.New("issues repository cannot be nil")
	}
	if items == nil {
		return nil, errors.New("work items repository cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &IssueService{
		tx:     tx,
		issues: issues,
		items:  items,
		log:    log,
	}, nil
}

// AddIssueToWorkItem creates the issue when it carries no id, links it to the
// work item, and resets the work item's status to UNSTARTED regardless of its
// prior status. A freshly flagged issue undoes any progress.
func (s *IssueService) AddIssueToWorkItem(ctx context.Context, req *models.IssueAddRequest) (*models.Issue, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrIssueValidation)
	}
	title := strings.TrimSpace(req.Title)
	workItemID := strings.TrimSpace(req.WorkItemID)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrIssueValidation)
	}
	if workItemID == "" {
		return nil, fmt.Errorf("%w: work_item_id is required", ErrIssueValidation)
	}

	var linked *models.Issue
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		if _, err := s.items.GetWorkItem(ctx, workItemID); err != nil {
			switch {
			case errors.Is(err, storage.ErrWorkItemNotFound):
				return ErrWorkItemNotFound
			default:
				return fmt.Errorf("get work item: %w", err)
			}
		}

		issueID := strings.TrimSpace(req.IssueID)
		if issueID == "" {
			created, err := s.issues.CreateIssue(ctx, models.Issue{
				Title:       title,
				Description: req.Description,
			})
			if err != nil {
				return fmt.Errorf("create issue: %w", err)
			}
			linked = created
		} else {
			existing, err := s.issues.GetIssue(ctx, issueID)
			if err != nil {
				switch {
				case errors.Is(err, storage.ErrIssueNotFound):
					return ErrIssueNotFound
				default:
					return fmt.Errorf("get issue: %w", err)
				}
			}
			linked = existing
		}

		if err := s.issues.LinkIssueToWorkItem(ctx, linked.ID, workItemID); err != nil {
			return fmt.Errorf("link issue: %w", err)
		}
		if err := s.items.SetWorkItemStatus(ctx, workItemID, models.StatusUnstarted); err != nil {
			return fmt.Errorf("reset work item status: %w", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrIssueValidation),
			errors.Is(err, ErrIssueNotFound),
			errors.Is(err, ErrWorkItemNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("add issue to work item transaction: %w", err)
		}
	}
	return linked, nil
}

// UpdateIssue overwrites title and description. Unlike users and teams there
// is no active check here, matching the original behavior.
func (s *IssueService) UpdateIssue(ctx context.Context, req *models.IssueUpdateRequest) (*models.Issue, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty body", ErrIssueValidation)
	}
	issueID := strings.TrimSpace(req.ID)
	title := strings.TrimSpace(req.Title)
	if issueID == "" {
		return nil, fmt.Errorf("%w: issue_id is required", ErrIssueValidation)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrIssueValidation)
	}

	existing, err := s.issues.GetIssue(ctx, issueID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrIssueNotFound):
			return nil, ErrIssueNotFound
		default:
			return nil, fmt.Errorf("get issue: %w", err)
		}
	}

	issue := models.Issue{
		ID:          issueID,
		Title:       title,
		Description: req.Description,
		IsActive:    existing.IsActive,
	}
	if err := s.issues.UpdateIssue(ctx, issue); err != nil {
		return nil, fmt.Errorf("update issue: %w", err)
	}
	return &issue, nil
}

func (s *IssueService) GetIssue(ctx context.Context, issueID string) (*models.Issue, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return nil, fmt.Errorf("%w: issue_id is required", ErrIssueValidation)
	}

	issue, err := s.issues.GetIssue(ctx, issueID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrIssueNotFound):
			return nil, ErrIssueNotFound
		default:
			return nil, fmt.Errorf("get issue: %w", err)
		}
	}
	return issue, nil
}

func (s *IssueService) GetAllIssues(ctx context.Context) ([]*models.Issue, error) {
	issues, err := s.issues.GetAllIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all issues: %w", err)
	}
	return issues, nil
}

func (s *IssueService) SetIssueActive(ctx context.Context, issueID string, isActive bool) (*models.Issue, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return nil, fmt.Errorf("%w: issue_id is required", ErrIssueValidation)
	}

	issue, err := s.issues.SetIssueActive(ctx, issueID, isActive)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrIssueNotFound):
			return nil, fmt.Errorf("set issue active: %w", ErrIssueNotFound)
		default:
			return nil, fmt.Errorf("set issue active: %w", err)
		}
	}
	return issue, nil
}

func (s *IssueService) GetWorkItemsWithIssue(ctx context.Context) ([]*models.WorkItem, error) {
	items, err := s.issues.GetWorkItemsWithIssue(ctx)
	if err != nil {
		return nil, fmt.Errorf("get work items with issue: %w", err)
	}
	return items, nil
}
