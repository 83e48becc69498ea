package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lillringan/Ordersystem/internal/models"
	"github.com/lillringan/Ordersystem/pkg/postgres"
)

var ErrIssueNotFound = errors.New("issue not found")

type IssueStorage struct {
	db  *postgres.Postgres
	log *slog.Logger
}

func NewIssueStorage(db *postgres.Postgres, log *slog.Logger) (*IssueStorage, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &IssueStorage{
		db:  db,
		log: log,
	}, nil
}

func (s *IssueStorage) CreateIssue(ctx context.Context, issue models.Issue) (*models.Issue, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var created models.Issue
	err := exec.QueryRowContext(ctx, `
        insert into issues (id, title, description, is_active)
        values ($1, $2, $3, true)
        returning id, title, description, is_active`,
		uuid.NewString(), issue.Title, issue.Description,
	).Scan(&created.ID, &created.Title, &created.Description, &created.IsActive)
	if err != nil {
		s.log.Error("failed to create issue", slog.Any("error", err))
		return nil, fmt.Errorf("insert issue: %w", err)
	}
	return &created, nil
}

func (s *IssueStorage) GetIssue(ctx context.Context, issueID string) (*models.Issue, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var i models.Issue
	err := exec.QueryRowContext(ctx,
		"select id, title, description, is_active from issues where id = $1",
		issueID,
	).Scan(&i.ID, &i.Title, &i.Description, &i.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get issue: %w", ErrIssueNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get issue: %w", err)
	}
	return &i, nil
}

func (s *IssueStorage) UpdateIssue(ctx context.Context, issue models.Issue) error {
	exec := getExecer(ctx, s.db.DB)
	res, err := exec.ExecContext(ctx,
		"update issues set title = $1, description = $2 where id = $3",
		issue.Title, issue.Description, issue.ID,
	)
	if err != nil {
		s.log.Error("failed to update issue", slog.Any("error", err))
		return fmt.Errorf("update issue: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update issue: %w", ErrIssueNotFound)
	}
	return nil
}

func (s *IssueStorage) SetIssueActive(ctx context.Context, issueID string, isActive bool) (*models.Issue, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var i models.Issue
	err := exec.QueryRowContext(ctx, `
        update issues set is_active = $1 where id = $2
        returning id, title, description, is_active`,
		isActive, issueID,
	).Scan(&i.ID, &i.Title, &i.Description, &i.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set issue active: %w", ErrIssueNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set issue active: %w", err)
	}
	return &i, nil
}

func (s *IssueStorage) GetAllIssues(ctx context.Context) ([]*models.Issue, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	rows, err := exec.QueryContext(ctx,
		"select id, title, description, is_active from issues order by title")
	if err != nil {
		s.log.Error("failed to query issues", slog.Any("error", err))
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	issues := make([]*models.Issue, 0)
	for rows.Next() {
		var i models.Issue
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &i.IsActive); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	return issues, nil
}

func (s *IssueStorage) LinkIssueToWorkItem(ctx context.Context, issueID, workItemID string) error {
	exec := getExecer(ctx, s.db.DB)
	res, err := exec.ExecContext(ctx,
		"update work_items set issue_id = $1 where id = $2",
		issueID, workItemID,
	)
	if err != nil {
		s.log.Error("failed to link issue to work item", slog.Any("error", err),
			slog.String("issue_id", issueID), slog.String("work_item_id", workItemID))
		return fmt.Errorf("link issue to work item: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("link issue to work item: %w", ErrWorkItemNotFound)
	}
	return nil
}

func (s *IssueStorage) GetWorkItemsWithIssue(ctx context.Context) ([]*models.WorkItem, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	rows, err := exec.QueryContext(ctx, `
        select w.id, w.name, w.status, w.user_id, w.team_id, w.issue_id, w.is_active
        from work_items w
            join issues i on i.id = w.issue_id
        where i.is_active
        order by w.name`)
	if err != nil {
		s.log.Error("failed to get work items with issue", slog.Any("error", err))
		return nil, fmt.Errorf("get work items with issue: %w", err)
	}
	defer rows.Close()
	return scanWorkItems(rows)
}
