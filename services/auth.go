package services

import (
	"context"
	"errors"
	"sync"

	"taskboard/models"
	"taskboard/utilities"
)

const invalidCredentials = "Invalid credentials"

type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	issuer TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users UserStore, hasher PasswordHasher, issuer TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, issuer: issuer}
}

// Register stores a new identity. The caller has to log in separately.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (models.User, error) {
	if err := in.Validate(); err != nil {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
	})
	if err != nil {
		return models.User{}, err
	}
	utilities.LogInfo("user registered: id=%d role=%s", user.ID, user.Role)
	return user, nil
}

// Login answers unknown emails and wrong passwords with the same error.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (string, models.Role, error) {
	if err := in.Validate(); err != nil {
		return "", "", err
	}

	user, err := s.users.UserByEmail(ctx, in.Email)
	if errors.Is(err, models.ErrNotFound) {
		// keep the response time close to a real comparison
		s.hasher.Compare(s.placeholderHash(), in.Password)
		return "", "", models.Unauthenticatedf(invalidCredentials)
	}
	if err != nil {
		return "", "", err
	}

	if !s.hasher.Compare(user.PasswordHash, in.Password) {
		return "", "", models.Unauthenticatedf(invalidCredentials)
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ChangePassword replaces the stored hash. Tokens issued earlier stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, in models.ChangePasswordInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(user.PasswordHash, in.CurrentPassword) {
		return models.Unauthenticatedf("Current password is incorrect")
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdateUserPassword(ctx, userID, hash)
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("placeholder-password")
		if err != nil {
			utilities.LogError(err, "failed to build placeholder hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
