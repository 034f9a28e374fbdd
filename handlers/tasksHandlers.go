package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"taskboard/models"
	"taskboard/utilities"
)

// CreateTaskHandler ignores any status in the body; new tasks start as TODO.
func (h *Handler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	caller := identity(r)
	utilities.LogDebug("creating task for user %d", caller.Sub)

	var input models.CreateTaskInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.Tasks.Create(r.Context(), caller.Sub, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogInfo("task created: %s (ID: %d, project: %d)", task.Title, task.ID, task.ProjectID)
	writeJSON(w, http.StatusCreated, task)
}

// ListTasksHandler filters by the optional projectId and status query values.
func (h *Handler) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	// Filters are optional; an empty value means no filter
	projectID, err := optionalQueryID(r, "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	tasks, err := h.Tasks.FindAll(r.Context(), projectID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogDebug("listed %d tasks", len(tasks))
	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.Tasks.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) UpdateTaskStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.Tasks.UpdateStatus(r.Context(), identity(r).Sub, id, body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogInfo("task %d status changed to %s", task.ID, task.Status)
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) UpdateTaskPriorityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body struct {
		Priority string `json:"priority"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.Tasks.UpdatePriority(r.Context(), identity(r).Sub, id, body.Priority)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogInfo("task %d priority changed to %s", task.ID, task.Priority)
	writeJSON(w, http.StatusOK, task)
}

// UpdateTaskDueDateHandler requires the dueDate key; null clears the date.
func (h *Handler) UpdateTaskDueDateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Kept raw so an absent key can be told apart from an explicit null
	var body struct {
		DueDate json.RawMessage `json:"dueDate"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	// Key missing from the body
	if len(body.DueDate) == 0 {
		writeError(w, r, models.BadRequestf("dueDate is required, use null to clear it"))
		return
	}

	// null clears the date, anything else must be a string; the date format
	// itself is checked by the service
	var due *string
	if !bytes.Equal(body.DueDate, []byte("null")) {
		var raw string
		if err := json.Unmarshal(body.DueDate, &raw); err != nil {
			writeError(w, r, models.BadRequestf("dueDate must be an ISO 8601 date string"))
			return
		}
		due = &raw
	}

	utilities.LogDebug("updating due date of task %d", id)
	task, err := h.Tasks.UpdateDueDate(r.Context(), identity(r).Sub, id, due)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) AssignTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body struct {
		UserID int64 `json:"userId"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	// Existence of task and user is checked by the service
	if body.UserID <= 0 {
		writeError(w, r, models.BadRequestf("userId must be a positive integer"))
		return
	}

	task, err := h.Tasks.AssignUser(r.Context(), identity(r).Sub, id, body.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogInfo("task %d assigned to user %d", task.ID, body.UserID)
	writeJSON(w, http.StatusOK, task)
}
