package auth

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/auth"
	"github.com/synapsehq/synapse-api/pkg/errors"
	"github.com/synapsehq/synapse-api/pkg/security"
)

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens auth.JWTService
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, tokens auth.JWTService) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error so the endpoint does not leak
// which accounts exist.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.IsCode(err, errors.CodeNotFound) {
			return nil, errors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, errors.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.UserType))
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &model.TokenResponse{
		Token:    token,
		UserID:   user.ID,
		Name:     user.Name,
		UserType: user.UserType,
	}, nil
}

// Register creates a user account with a hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string, userType model.UserType) (*model.User, error) {
	if len(password) < security.MinPasswordLen {
		return nil, errors.Validation("password must have at least 8 characters", "password")
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, errors.Conflict("email is already registered")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, errors.Internal(err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		UserType:     userType,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
