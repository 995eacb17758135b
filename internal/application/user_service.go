package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/internal/domain/repository"
	"github.com/medisync/user-service/pkg/helpers"
)

// UserService is the user directory. It owns password hashing on every write
// path and resolves role references through the role directory, embedding a
// snapshot of the role into the user document.
type UserService struct {
	Repo         repository.UserRepository
	Roles        *RoleService
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(repo repository.UserRepository, roles *RoleService, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{
		Repo:         repo,
		Roles:        roles,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	RoleID    string
	Active    *bool
	PushToken string
}

type UpdateUserInput struct {
	Username  *string
	Email     *string
	Password  *string
	Active    *bool
	PushToken *string
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	existing, err := s.Repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q: %w", in.Username, ErrConflict)
	}
	if in.Email != "" {
		existing, err = s.Repo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("email %q: %w", in.Email, ErrConflict)
		}
	}

	// Resolve the role live; its current state is embedded into the user.
	role, err := s.Roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		Role:      *role,
		PushToken: in.PushToken,
		Active:    true,
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if err := s.Repo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("username %q: %w", in.Username, ErrConflict)
		}
		return nil, err
	}
	s.indexUser(ctx, user)
	return user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx, false)
}

func (s *UserService) FindActive(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx, true)
}

// FindByID rejects malformed identifiers before hitting the store.
func (s *UserService) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", id, ErrInvalidID)
	}
	user, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return user, nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	return user, nil
}

func (s *UserService) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		existing, err := s.Repo.GetByUsername(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("username %q: %w", *in.Username, ErrConflict)
		}
		user.Username = *in.Username
	}
	if in.Email != nil && *in.Email != user.Email {
		if *in.Email != "" {
			existing, err := s.Repo.GetByEmail(ctx, *in.Email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("email %q: %w", *in.Email, ErrConflict)
			}
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if in.PushToken != nil {
		user.PushToken = *in.PushToken
	}

	if err := s.Repo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("user %q: %w", user.Username, ErrConflict)
		}
		return nil, err
	}
	s.indexUser(ctx, user)
	return user, nil
}

// AssignRole re-fetches the role and replaces the user's embedded copy whole.
func (s *UserService) AssignRole(ctx context.Context, id, roleID string) (*entity.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.Roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	user.Role = *role
	if err := s.Repo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.indexUser(ctx, user)
	return user, nil
}

// RecordLogin stamps the last-login time and, when provided, stores the
// caller's push-notification token. One save covers both.
func (s *UserService) RecordLogin(ctx context.Context, id, pushToken string) (*entity.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user.LastLoginAt = &now
	if pushToken != "" {
		user.PushToken = pushToken
	}
	if err := s.Repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateLastLogin(ctx context.Context, id string) (*entity.User, error) {
	return s.RecordLogin(ctx, id, "")
}

// Remove deactivates the user (soft delete); the document is retained.
func (s *UserService) Remove(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Active = false
	if err := s.Repo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.indexUser(ctx, user)
	return user, nil
}

// Delete purges the user document (hard delete).
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.Repo.Delete(ctx, user.ID)
}

// ValidatePassword delegates to the credential hasher.
func (s *UserService) ValidatePassword(plain, hash string) bool {
	return helpers.CompareHashAndPassword(hash, plain)
}

// indexUser pushes the user's searchable fields to Elasticsearch.
// Best effort: a missing or failing ES never fails the write path.
func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID.Hex(),
		"username":   u.Username,
		"email":      u.Email,
		"role":       u.Role.Name,
		"active":     u.Active,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID.Hex(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID.Hex()).Warn("es index response error")
	}
}

// Search performs a multi_match query on username and email.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
