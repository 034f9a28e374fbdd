package services

import (
	"context"
	"strings"

	"taskboard/models"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) ByEmail(ctx context.Context, email string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, models.BadRequestf("email is required")
	}
	return s.users.UserByEmail(ctx, email)
}
