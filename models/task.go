package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusPaused     TaskStatus = "PAUSED"
	StatusFinished   TaskStatus = "FINISHED"
)

// TaskStatuses lists every status a task may hold, in display order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusPaused, StatusFinished}

// ParseTaskStatus accepts only the enumerated values, case-sensitively.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, status := range TaskStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	names := make([]string, len(TaskStatuses))
	for i, status := range TaskStatuses {
		names[i] = string(status)
	}
	return "", BadRequestf("Status not allowed! Possible statuses: %s", strings.Join(names, ", "))
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func ParseTaskPriority(s string) (TaskPriority, error) {
	for _, priority := range TaskPriorities {
		if string(priority) == s {
			return priority, nil
		}
	}
	names := make([]string, len(TaskPriorities))
	for i, priority := range TaskPriorities {
		names[i] = string(priority)
	}
	return "", BadRequestf("Priority not allowed! Possible priorities: %s", strings.Join(names, ", "))
}

type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	ProjectID   int64        `json:"projectId"`
	UserID      *int64       `json:"userId"`
	AssignedTo  *UserSummary `json:"assignedTo"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreateTaskInput is the creation payload. It has no status field:
// new tasks always start as TODO.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	ProjectID   int64   `json:"projectId"`
	UserID      *int64  `json:"userId"`
}

// NewTask is a validated CreateTaskInput ready for the store.
type NewTask struct {
	Title       string
	Description *string
	Priority    TaskPriority
	DueDate     *time.Time
	ProjectID   int64
	UserID      *int64
}

func (in *CreateTaskInput) Validate() (NewTask, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return NewTask{}, BadRequestf("Task title is required")
	}
	if in.ProjectID <= 0 {
		return NewTask{}, BadRequestf("projectId is required")
	}
	task := NewTask{
		Title:       title,
		Description: in.Description,
		Priority:    PriorityMedium,
		ProjectID:   in.ProjectID,
	}
	if in.Priority != nil {
		priority, err := ParseTaskPriority(*in.Priority)
		if err != nil {
			return NewTask{}, err
		}
		task.Priority = priority
	}
	if in.DueDate != nil {
		due, err := ParseDueDate(*in.DueDate)
		if err != nil {
			return NewTask{}, err
		}
		task.DueDate = &due
	}
	if in.UserID != nil {
		if *in.UserID <= 0 {
			return NewTask{}, BadRequestf("userId must be a positive integer")
		}
		task.UserID = in.UserID
	}
	return task, nil
}

var dueDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDueDate accepts ISO 8601 timestamps and plain dates.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, BadRequestf("dueDate must be an ISO 8601 date string")
}

// TaskFilter is a conjunction; nil fields do not constrain the result.
type TaskFilter struct {
	ProjectID *int64
	Status    *TaskStatus
}

// TaskUpdate patches the named fields only.
type TaskUpdate struct {
	Status       *TaskStatus
	Priority     *TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	UserID       *int64
}
