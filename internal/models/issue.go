package models

type Issue struct {
	ID          string `json:"issue_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type IssueAddRequest struct {
	IssueID     string `json:"issue_id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	WorkItemID  string `json:"work_item_id" validate:"required"`
}

type IssueUpdateRequest struct {
	ID          string `json:"issue_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type IssueSetActiveRequest struct {
	ID       string `json:"issue_id" validate:"required"`
	IsActive bool   `json:"is_active"`
}

type IssueResponse struct {
	Issue Issue `json:"issue"`
}

type IssuesResponse struct {
	Issues []*Issue `json:"issues"`
}
