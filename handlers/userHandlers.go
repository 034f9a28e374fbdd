package handlers

import (
	"net/http"

	"taskboard/utilities"

	"github.com/gorilla/mux"
)

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogDebug("listed %d users", len(users))
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUserByEmailHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.ByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
