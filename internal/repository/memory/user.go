package memory

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/errors"
)

type userRepository struct {
	s *store[*model.User]
}

func NewUserRepository() repository.UserRepository {
	return &userRepository{s: newStore[*model.User]("User")}
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	r.s.create(user)
	return nil
}

func (r *userRepository) Get(_ context.Context, id int64) (*model.User, error) {
	return r.s.get(id)
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	users := r.s.filter(func(u *model.User) bool {
		return u.Email == email
	})
	if len(users) == 0 {
		return nil, errors.NotFoundf("User", "user with email %s not found", email)
	}
	return users[0], nil
}

func (r *userRepository) Update(_ context.Context, user *model.User) error {
	return r.s.update(user)
}

func (r *userRepository) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

func (r *userRepository) List(_ context.Context) ([]*model.User, error) {
	return r.s.list(), nil
}
