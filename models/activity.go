package models

import "time"

type ActivityAction string

const (
	ActivityProjectCreated ActivityAction = "project.created"
	ActivityTaskCreated    ActivityAction = "task.created"
	ActivityTaskStatus     ActivityAction = "task.status"
	ActivityTaskPriority   ActivityAction = "task.priority"
	ActivityTaskDueDate    ActivityAction = "task.due-date"
	ActivityTaskAssigned   ActivityAction = "task.assigned"
)

// ActivityEntry is one line of a project's history, stored in Firestore
// under projects/{projectId}/activity.
type ActivityEntry struct {
	ProjectID int64          `json:"projectId" firestore:"project_id"`
	TaskID    *int64         `json:"taskId,omitempty" firestore:"task_id,omitempty"`
	ActorID   int64          `json:"actorId" firestore:"actor_id"`
	Action    ActivityAction `json:"action" firestore:"action"`
	Detail    string         `json:"detail,omitempty" firestore:"detail,omitempty"`
	CreatedAt time.Time      `json:"createdAt" firestore:"created_at"`
}
