package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/internal/domain/repository"
)

// RoleService is the role directory: CRUD over roles with name uniqueness
// enforced at write time (case-sensitive exact match).
type RoleService struct {
	Repo   repository.RoleRepository
	Logger *logrus.Logger
}

func NewRoleService(repo repository.RoleRepository, logger *logrus.Logger) *RoleService {
	return &RoleService{Repo: repo, Logger: logger}
}

type CreateRoleInput struct {
	Name   string
	Active *bool
}

type UpdateRoleInput struct {
	Name   *string
	Active *bool
}

func (s *RoleService) Create(ctx context.Context, in CreateRoleInput) (*entity.Role, error) {
	existing, err := s.Repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("role %q: %w", in.Name, ErrConflict)
	}

	role := &entity.Role{Name: in.Name, Active: true}
	if in.Active != nil {
		role.Active = *in.Active
	}
	if err := s.Repo.Save(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("role %q: %w", in.Name, ErrConflict)
		}
		return nil, err
	}
	return role, nil
}

func (s *RoleService) FindAll(ctx context.Context) ([]entity.Role, error) {
	return s.Repo.List(ctx, false)
}

func (s *RoleService) FindActive(ctx context.Context) ([]entity.Role, error) {
	return s.Repo.List(ctx, true)
}

// FindByID treats a malformed id the same as an absent one.
func (s *RoleService) FindByID(ctx context.Context, id string) (*entity.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("role %q: %w", id, ErrNotFound)
	}
	role, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role %q: %w", id, ErrNotFound)
	}
	return role, nil
}

func (s *RoleService) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	role, err := s.Repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role %q: %w", name, ErrNotFound)
	}
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id string, in UpdateRoleInput) (*entity.Role, error) {
	role, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != role.Name {
		existing, err := s.Repo.GetByName(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("role %q: %w", *in.Name, ErrConflict)
		}
		role.Name = *in.Name
	}
	if in.Active != nil {
		role.Active = *in.Active
	}

	if err := s.Repo.Save(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("role %q: %w", role.Name, ErrConflict)
		}
		return nil, err
	}
	return role, nil
}

// Remove deactivates the role (soft delete). Users already holding the role
// keep their embedded copy and are unaffected.
func (s *RoleService) Remove(ctx context.Context, id string) (*entity.Role, error) {
	role, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Active = false
	if err := s.Repo.Save(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete purges the role document (hard delete).
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.Repo.Delete(ctx, role.ID)
}
