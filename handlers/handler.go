package handlers

import (
	"taskboard/auth"
	"taskboard/services"
)

// TokenVerifier is satisfied by auth.TokenIssuer.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Handler holds the services every endpoint delegates to.
type Handler struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Projects *services.ProjectService
	Tasks    *services.TaskService
	Tokens   TokenVerifier
}
