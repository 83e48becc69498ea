package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lillringan/Ordersystem/internal/models"
)

func newTestIssueStorage(t *testing.T) (*IssueStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	s, err := NewIssueStorage(db, testLogger())
	if err != nil {
		t.Fatalf("NewIssueStorage returned err: %v", err)
	}
	return s, mock
}

func TestIssueStorage_CreateIssue(t *testing.T) {
	s, mock := newTestIssueStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("insert into issues (id, title, description, is_active)")).
		WithArgs(sqlmock.AnyArg(), "payment fails", "stack trace attached").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "is_active"}).
			AddRow("i1", "payment fails", "stack trace attached", true))

	issue, err := s.CreateIssue(context.Background(), models.Issue{
		Title:       "payment fails",
		Description: "stack trace attached",
	})
	if err != nil {
		t.Fatalf("CreateIssue returned err: %v", err)
	}
	if issue.ID != "i1" || !issue.IsActive {
		t.Fatalf("unexpected issue: %#v", issue)
	}
	verifyExpectations(t, mock)
}

func TestIssueStorage_GetIssue_NotFound(t *testing.T) {
	s, mock := newTestIssueStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("select id, title, description, is_active from issues where id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "is_active"}))

	_, err := s.GetIssue(context.Background(), "missing")
	if !errors.Is(err, ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound, got %v", err)
	}
	verifyExpectations(t, mock)
}

func TestIssueStorage_UpdateIssue_NotFound(t *testing.T) {
	s, mock := newTestIssueStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("update issues set title = $1, description = $2 where id = $3")).
		WithArgs("new title", "", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateIssue(context.Background(), models.Issue{ID: "missing", Title: "new title"})
	if !errors.Is(err, ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound, got %v", err)
	}
	verifyExpectations(t, mock)
}

func TestIssueStorage_LinkIssueToWorkItem(t *testing.T) {
	s, mock := newTestIssueStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("update work_items set issue_id = $1 where id = $2")).
		WithArgs("i1", "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.LinkIssueToWorkItem(context.Background(), "i1", "w1"); err != nil {
		t.Fatalf("LinkIssueToWorkItem returned err: %v", err)
	}
	verifyExpectations(t, mock)
}

func TestIssueStorage_LinkIssueToWorkItem_WorkItemNotFound(t *testing.T) {
	s, mock := newTestIssueStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("update work_items set issue_id = $1 where id = $2")).
		WithArgs("i1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.LinkIssueToWorkItem(context.Background(), "i1", "missing")
	if !errors.Is(err, ErrWorkItemNotFound) {
		t.Fatalf("expected ErrWorkItemNotFound, got %v", err)
	}
	verifyExpectations(t, mock)
}

func TestIssueStorage_GetWorkItemsWithIssue(t *testing.T) {
	s, mock := newTestIssueStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("join issues i on i.id = w.issue_id")).
		WillReturnRows(sqlmock.NewRows(workItemColumns()).
			AddRow("w1", "item a", "UNSTARTED", "u1", "t1", "i1", true))

	items, err := s.GetWorkItemsWithIssue(context.Background())
	if err != nil {
		t.Fatalf("GetWorkItemsWithIssue returned err: %v", err)
	}
	if len(items) != 1 || items[0].IssueID != "i1" {
		t.Fatalf("unexpected items: %#v", items)
	}
	verifyExpectations(t, mock)
}
