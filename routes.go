package main

import (
	"net/http"

	"taskboard/auth"
	"taskboard/config"
	"taskboard/handlers"
	"taskboard/utilities"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter registers every route behind CORS and panic recovery.
func NewRouter(cfg config.Config, h *handlers.Handler) http.Handler {
	r := mux.NewRouter()

	r.Use(handlers.RequestIDMiddleware)
	r.Use(handlers.LoggingMiddleware)

	// --- Authentication ---
	r.HandleFunc("/auth/register", h.RegisterHandler).Methods("POST")
	r.HandleFunc("/auth/login", h.LoginHandler).Methods("POST")
	r.HandleFunc("/auth/profile", h.Protect(auth.OpProfile, h.ProfileHandler)).Methods("GET")
	r.HandleFunc("/auth/password", h.Protect(auth.OpChangePassword, h.ChangePasswordHandler)).Methods("PATCH")

	api := r.PathPrefix("/api").Subrouter()

	// --- Projects ---
	api.HandleFunc("/projects", h.Protect(auth.OpProjectCreate, h.CreateProjectHandler)).Methods("POST")
	api.HandleFunc("/projects", h.Protect(auth.OpProjectList, h.ListProjectsHandler)).Methods("GET")
	api.HandleFunc("/projects/{id}", h.Protect(auth.OpProjectGet, h.GetProjectHandler)).Methods("GET")
	api.HandleFunc("/projects/{id}", h.Protect(auth.OpProjectDelete, h.DeleteProjectHandler)).Methods("DELETE")
	api.HandleFunc("/projects/{id}/activity", h.Protect(auth.OpProjectHistory, h.ProjectActivityHandler)).Methods("GET")

	// --- Tasks ---
	api.HandleFunc("/tasks", h.Protect(auth.OpTaskCreate, h.CreateTaskHandler)).Methods("POST")
	api.HandleFunc("/tasks", h.Protect(auth.OpTaskList, h.ListTasksHandler)).Methods("GET")
	api.HandleFunc("/tasks/{id}", h.Protect(auth.OpTaskGet, h.GetTaskHandler)).Methods("GET")
	api.HandleFunc("/tasks/{id}/status", h.Protect(auth.OpTaskStatus, h.UpdateTaskStatusHandler)).Methods("PATCH")
	api.HandleFunc("/tasks/{id}/priority", h.Protect(auth.OpTaskPriority, h.UpdateTaskPriorityHandler)).Methods("PATCH")
	api.HandleFunc("/tasks/{id}/due-date", h.Protect(auth.OpTaskDueDate, h.UpdateTaskDueDateHandler)).Methods("PATCH")
	api.HandleFunc("/tasks/{id}/assign", h.Protect(auth.OpTaskAssign, h.AssignTaskHandler)).Methods("PATCH")

	// --- Users ---
	api.HandleFunc("/users", h.Protect(auth.OpUserList, h.ListUsersHandler)).Methods("GET")
	api.HandleFunc("/users/{email}", h.Protect(auth.OpUserGet, h.GetUserByEmailHandler)).Methods("GET")

	headers := gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization", handlers.RequestIDHeader})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	origins := gorillahandlers.AllowedOrigins(cfg.CORSAllowedOrigins)
	exposed := gorillahandlers.ExposedHeaders([]string{handlers.RequestIDHeader})
	utilities.LogInfo("configuring CORS with allowed origins: %v", cfg.CORSAllowedOrigins)

	recovery := gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(utilities.Logger),
		gorillahandlers.PrintRecoveryStack(false),
	)

	return gorillahandlers.CORS(headers, methods, origins, exposed, gorillahandlers.AllowCredentials())(recovery(r))
}
