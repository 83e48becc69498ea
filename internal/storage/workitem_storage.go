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

var ErrWorkItemNotFound = errors.New("work item not found")

type WorkItemStorage struct {
	db  *postgres.Postgres
	log *slog.Logger
}

func NewWorkItemStorage(db *postgres.Postgres, log *slog.Logger) (*WorkItemStorage, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &WorkItemStorage{
		db:  db,
		log: log,
	}, nil
}

func scanWorkItems(rows *sql.Rows) ([]*models.WorkItem, error) {
	items := make([]*models.WorkItem, 0)
	for rows.Next() {
		var w models.WorkItem
		var userID, teamID, issueID sql.NullString
		if err := rows.Scan(&w.ID, &w.Name, &w.Status, &userID, &teamID, &issueID, &w.IsActive); err != nil {
			return nil, fmt.Errorf("scan work item: %w", err)
		}
		w.UserID = userID.String
		w.TeamID = teamID.String
		w.IssueID = issueID.String
		items = append(items, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate work items: %w", err)
	}
	return items, nil
}

func (s *WorkItemStorage) CreateWorkItem(ctx context.Context, item models.WorkItem) (*models.WorkItem, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var created models.WorkItem
	var userID, teamID, issueID sql.NullString
	err := exec.QueryRowContext(ctx, `
        insert into work_items (id, name, status, user_id, team_id, is_active)
        values ($1, $2, $3, $4, $5, true)
        returning id, name, status, user_id, team_id, issue_id, is_active`,
		uuid.NewString(), item.Name, item.Status, nullable(item.UserID), nullable(item.TeamID),
	).Scan(&created.ID, &created.Name, &created.Status, &userID, &teamID, &issueID, &created.IsActive)
	if err != nil {
		s.log.Error("failed to create work item", slog.Any("error", err))
		return nil, fmt.Errorf("insert work item: %w", err)
	}
	created.UserID = userID.String
	created.TeamID = teamID.String
	created.IssueID = issueID.String
	return &created, nil
}

func (s *WorkItemStorage) GetWorkItem(ctx context.Context, workItemID string) (*models.WorkItem, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var w models.WorkItem
	var userID, teamID, issueID sql.NullString
	err := exec.QueryRowContext(ctx, `
        select id, name, status, user_id, team_id, issue_id, is_active
        from work_items where id = $1`,
		workItemID,
	).Scan(&w.ID, &w.Name, &w.Status, &userID, &teamID, &issueID, &w.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get work item: %w", ErrWorkItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get work item: %w", err)
	}
	w.UserID = userID.String
	w.TeamID = teamID.String
	w.IssueID = issueID.String
	return &w, nil
}

func (s *WorkItemStorage) UpdateWorkItem(ctx context.Context, item models.WorkItem) error {
	exec := getExecer(ctx, s.db.DB)
	res, err := exec.ExecContext(ctx,
		"update work_items set name = $1 where id = $2",
		item.Name, item.ID,
	)
	if err != nil {
		s.log.Error("failed to update work item", slog.Any("error", err))
		return fmt.Errorf("update work item: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update work item: %w", ErrWorkItemNotFound)
	}
	return nil
}

func (s *WorkItemStorage) SetWorkItemActive(ctx context.Context, workItemID string, isActive bool) (*models.WorkItem, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	var w models.WorkItem
	var userID, teamID, issueID sql.NullString
	err := exec.QueryRowContext(ctx, `
        update work_items set is_active = $1 where id = $2
        returning id, name, status, user_id, team_id, issue_id, is_active`,
		isActive, workItemID,
	).Scan(&w.ID, &w.Name, &w.Status, &userID, &teamID, &issueID, &w.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set work item active: %w", ErrWorkItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set work item active: %w", err)
	}
	w.UserID = userID.String
	w.TeamID = teamID.String
	w.IssueID = issueID.String
	return &w, nil
}

func (s *WorkItemStorage) GetAllWorkItems(ctx context.Context) ([]*models.WorkItem, error) {
	return s.queryWorkItems(ctx, `
        select id, name, status, user_id, team_id, issue_id, is_active
        from work_items order by name`)
}

func (s *WorkItemStorage) GetWorkItemsByStatus(ctx context.Context, status models.WorkItemStatus) ([]*models.WorkItem, error) {
	return s.queryWorkItems(ctx, `
        select id, name, status, user_id, team_id, issue_id, is_active
        from work_items where status = $1 order by name`,
		status)
}

func (s *WorkItemStorage) GetWorkItemsByTeam(ctx context.Context, teamID string) ([]*models.WorkItem, error) {
	return s.queryWorkItems(ctx, `
        select id, name, status, user_id, team_id, issue_id, is_active
        from work_items where team_id = $1 order by name`,
		teamID)
}

func (s *WorkItemStorage) queryWorkItems(ctx context.Context, query string, args ...any) ([]*models.WorkItem, error) {
	exec := getQueryExecer(ctx, s.db.DB)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Error("failed to query work items", slog.Any("error", err))
		return nil, fmt.Errorf("query work items: %w", err)
	}
	defer rows.Close()
	return scanWorkItems(rows)
}

func (s *WorkItemStorage) SetWorkItemStatus(ctx context.Context, workItemID string, status models.WorkItemStatus) error {
	exec := getExecer(ctx, s.db.DB)
	res, err := exec.ExecContext(ctx,
		"update work_items set status = $1 where id = $2",
		status, workItemID,
	)
	if err != nil {
		s.log.Error("failed to set work item status", slog.Any("error", err),
			slog.String("work_item_id", workItemID))
		return fmt.Errorf("set work item status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set work item status: %w", ErrWorkItemNotFound)
	}
	return nil
}
