package models

// WorkItemStatus is a closed set: transitions between any two values are
// allowed, there is no ordering.
type WorkItemStatus string

const (
	StatusUnstarted WorkItemStatus = "UNSTARTED"
	StatusStarted   WorkItemStatus = "STARTED"
	StatusDone      WorkItemStatus = "DONE"
)

func (s WorkItemStatus) Valid() bool {
	switch s {
	case StatusUnstarted, StatusStarted, StatusDone:
		return true
	}
	return false
}

type WorkItem struct {
	ID       string         `json:"work_item_id"`
	Name     string         `json:"work_item_name"`
	Status   WorkItemStatus `json:"status"`
	UserID   string         `json:"user_id,omitempty"`
	TeamID   string         `json:"team_id,omitempty"`
	IssueID  string         `json:"issue_id,omitempty"`
	IsActive bool           `json:"is_active"`
}

type WorkItemCreateRequest struct {
	Name string `json:"work_item_name" validate:"required"`
}

type WorkItemUpdateRequest struct {
	ID   string `json:"work_item_id" validate:"required"`
	Name string `json:"work_item_name" validate:"required"`
}

type WorkItemSetStatusRequest struct {
	ID     string         `json:"work_item_id" validate:"required"`
	Status WorkItemStatus `json:"status" validate:"required"`
}

type WorkItemSetActiveRequest struct {
	ID       string `json:"work_item_id" validate:"required"`
	IsActive bool   `json:"is_active"`
}

type WorkItemResponse struct {
	WorkItem WorkItem `json:"work_item"`
}

type WorkItemsResponse struct {
	WorkItems []*WorkItem `json:"work_items"`
}
