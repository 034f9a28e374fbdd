package services

import (
	"context"
	"fmt"
	"time"

	"taskboard/models"
	"taskboard/utilities"
)

// ActivityLimit caps a project's history listing.
const ActivityLimit = 50

// history writes activity entries on a best-effort basis: a failed write is
// logged and never fails the mutation it describes.
type history struct {
	recorder ActivityRecorder
	now      func() time.Time
}

func newHistory(recorder ActivityRecorder) history {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return history{recorder: recorder, now: time.Now}
}

func (h history) record(ctx context.Context, entry models.ActivityEntry) {
	entry.CreatedAt = h.now().UTC()
	if err := h.recorder.Record(ctx, entry); err != nil {
		utilities.LogError(err, fmt.Sprintf("failed to record %s for project %d", entry.Action, entry.ProjectID))
	}
}

func (h history) taskEntry(task models.Task, actorID int64, action models.ActivityAction, detail string) models.ActivityEntry {
	taskID := task.ID
	return models.ActivityEntry{
		ProjectID: task.ProjectID,
		TaskID:    &taskID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
	}
}
