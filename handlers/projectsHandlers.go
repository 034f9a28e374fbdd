package handlers

import (
	"net/http"

	"taskboard/models"
	"taskboard/utilities"
)

func (h *Handler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	caller := identity(r)
	utilities.LogDebug("creating project for user %d", caller.Sub)

	var input models.CreateProjectInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.Projects.Create(r.Context(), caller.Sub, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogInfo("project created: %s (ID: %d)", project.Name, project.ID)
	writeJSON(w, http.StatusCreated, project)
}

func (h *Handler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.Projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// DeleteProjectHandler removes the project together with its tasks.
func (h *Handler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Projects.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogInfo("project deleted: %d by user %d", id, identity(r).Sub)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Project deleted successfully"})
}

func (h *Handler) ProjectActivityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.Projects.Activity(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
