package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/pkg/events"
	"github.com/medisync/user-service/pkg/helpers"
)

// AuthService composes the user directory, the credential hasher, and the
// token service into login / refresh / validate flows. It holds no state of
// its own beyond its collaborators.
type AuthService struct {
	Users  *UserService
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewAuthService(users *UserService, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Pub: pub, Logger: logger}
}

type LoginInput struct {
	Username  string
	Password  string
	PushToken string
	IP        string
	UserAgent string
}

type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *entity.User `json:"user"`
	ExpiresIn    int          `json:"expiresIn"`
}

type RefreshResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// Identity is the decoded claims set returned by Validate.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login authenticates a username/password pair and issues a token pair.
// Unknown user and wrong password both come back as ErrInvalidCredentials so
// the response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.Users.FindByUsername(ctx, in.Username)
	if err != nil {
		// Only an absent account is coerced; a store failure stays a
		// server error, not a credentials one.
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.Users.ValidatePassword(in.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	user, err = s.Users.RecordLogin(ctx, user.ID.Hex(), in.PushToken)
	if err != nil {
		return nil, err
	}

	access, _, err := s.JWT.GenerateAccessToken(user.ID.Hex(), user.Username, user.Role.Name)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.JWT.GenerateRefreshToken(user.ID.Hex(), user.Username, user.Role.Name)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.AuthEvent{
		UserID:    user.ID.Hex(),
		Username:  user.Username,
		Action:    events.ActionLogin,
		IP:        in.IP,
		UserAgent: in.UserAgent,
		At:        time.Now().UTC(),
	})

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
		ExpiresIn:    int(s.JWT.AccessTTL.Seconds()),
	}, nil
}

// Refresh verifies a refresh token, rechecks the account, and issues a fresh
// access token stamped with the user's current username and role. The refresh
// token itself is returned unchanged; there is no rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.lookupSubject(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	access, _, err := s.JWT.GenerateAccessToken(user.ID.Hex(), user.Username, user.Role.Name)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.AuthEvent{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Action:   events.ActionRefresh,
		At:       time.Now().UTC(),
	})

	return &RefreshResult{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.JWT.AccessTTL.Seconds()),
	}, nil
}

// Validate verifies an access token and rechecks that the account still
// exists and is active. Returns the decoded claims; no new token is issued.
func (s *AuthService) Validate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if _, err := s.lookupSubject(ctx, claims.Subject); err != nil {
		return nil, err
	}
	return &Identity{
		UserID:   claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// lookupSubject re-fetches the token subject and rejects absent, malformed,
// or deactivated accounts as ErrInvalidCredentials. Store failures pass
// through unchanged.
func (s *AuthService) lookupSubject(ctx context.Context, subject string) (*entity.User, error) {
	user, err := s.Users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// publish enqueues an audit event. Best effort: the auth flow never fails
// because the broker is down or absent.
func (s *AuthService) publish(ctx context.Context, ev events.AuthEvent) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("action", ev.Action).Warn("audit event publish failed")
	}
}
