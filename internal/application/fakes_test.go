package application

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/internal/domain/repository"
)

// In-memory repositories backing the service tests. They follow the same
// contract as the mongodb implementations: lookups return (nil, nil) on a
// miss, Save assigns an ID on first insert, and the unique "indexes" surface
// as repository.ErrDuplicateKey.

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[primitive.ObjectID]entity.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[primitive.ObjectID]entity.Role)}
}

func (r *fakeRoleRepo) Save(_ context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.roles {
		if existing.Name == role.Name && id != role.ID {
			return repository.ErrDuplicateKey
		}
	}
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	r.roles[role.ID] = *role
	return nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[id]; ok {
		cp := role
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.Name == name {
			cp := role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) List(_ context.Context, activeOnly bool) ([]entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		if activeOnly && !role.Active {
			continue
		}
		out = append(out, role)
	}
	return out, nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.roles)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]entity.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return repository.ErrDuplicateKey
		}
		if user.Email != "" && existing.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		cp := user
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			cp := user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email != "" && user.Email == email {
			cp := user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, activeOnly bool) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		if activeOnly && !user.Active {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}
