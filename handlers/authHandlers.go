package handlers

import (
	"net/http"

	"taskboard/models"
	"taskboard/utilities"
)

type registerResponse struct {
	Message string `json:"msg"`
	UserID  int64  `json:"userId"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	Role        models.Role `json:"role"`
}

// RegisterHandler creates an identity. No token is returned.
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("handling registration")

	var input models.RegisterInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Auth.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Message: "User registered successfully", UserID: user.ID})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("handling login")

	var input models.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	token, role, err := h.Auth.Login(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, Role: role})
}

// ProfileHandler echoes the decoded token claims.
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, identity(r))
}

func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	caller := identity(r)
	utilities.LogDebug("handling password change for user %d", caller.Sub)

	var input models.ChangePasswordInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Auth.ChangePassword(r.Context(), caller.Sub, input); err != nil {
		writeError(w, r, err)
		return
	}

	utilities.LogInfo("password changed for user %d", caller.Sub)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}
