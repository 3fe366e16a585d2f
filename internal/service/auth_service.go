package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// disconnectTimeout bounds the best-effort DISCONNECT sent on logout.
const disconnectTimeout = 3 * time.Second

// SessionLink is the connection side of the session the auth flows drive.
type SessionLink interface {
	session.Exchanger
	Connect(ctx context.Context) error
	Disconnect()
}

// AuthService provides login, logout and liveness checks.
type AuthService struct {
	link      SessionLink
	identity  *session.Identity
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(link SessionLink, identity *session.Identity, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{link: link, identity: identity, validator: validate, logger: logger}
}

// Login connects if needed and authenticates. On success the user becomes
// the current identity; on failure the identity is left unset.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if err := s.link.Connect(ctx); err != nil {
		return nil, err
	}

	resp, err := exchange(ctx, s.link, protocol.CommandLogin, protocol.Payload{
		"email":    req.Email,
		"password": req.Password,
	}, "authentication failed")
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	rec, ok, err := resp.Data.Record()
	if err != nil {
		return nil, parseFailure(err, "failed to read user data")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrParse, "server reply has no user data")
	}

	user := userFromRecord(rec)
	if user.Email == "" {
		user.Email = req.Email
	}
	if !user.IsTeacher() {
		s.logger.Warn("login refused for non-teacher account", zap.Int("user_id", user.ID), zap.String("type", user.TypeName))
		s.leave(ctx, user.ID)
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers can use this application")
	}
	s.identity.Set(user)
	s.logger.Info("logged in", zap.Int("user_id", user.ID), zap.String("email", user.Email))
	return &user, nil
}

// Logout tells the server the user leaves, then clears the identity and
// closes the connection whatever the notification outcome.
func (s *AuthService) Logout(ctx context.Context) {
	user, ok := s.identity.Current()
	s.identity.Clear()
	if !ok {
		s.link.Disconnect()
		return
	}
	s.leave(ctx, user.ID)
}

// leave sends a best-effort DISCONNECT for userID and closes the connection.
func (s *AuthService) leave(ctx context.Context, userID int) {
	if s.link.IsConnected() {
		notifyCtx, cancel := context.WithTimeout(ctx, disconnectTimeout)
		_, err := exchange(notifyCtx, s.link, protocol.CommandDisconnect, protocol.Payload{"userId": userID}, "disconnect failed")
		cancel()
		if err != nil {
			s.logger.Warn("disconnect notification failed", zap.Int("user_id", userID), zap.Error(err))
		}
	}
	s.link.Disconnect()
}

// CurrentUser returns the authenticated user.
func (s *AuthService) CurrentUser() (*models.User, error) {
	user, err := requireUser(s.identity)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IsAuthenticated reports whether a user is logged in.
func (s *AuthService) IsAuthenticated() bool {
	return s.identity.IsAuthenticated()
}

// IsConnected reports whether the server connection is open.
func (s *AuthService) IsConnected() bool {
	return s.link.IsConnected()
}

// Ping checks that the server still answers on the current connection.
func (s *AuthService) Ping(ctx context.Context) error {
	_, err := exchange(ctx, s.link, protocol.CommandPing, nil, "ping failed")
	return err
}
