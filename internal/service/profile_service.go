package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
	"github.com/noah-isme/elores-client/pkg/security"
)

// UpdateProfileRequest carries the editable profile fields. Empty fields are
// not sent.
type UpdateProfileRequest struct {
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=200"`
	Phone1  string `json:"phone1" validate:"omitempty,max=20"`
	Phone2  string `json:"phone2" validate:"omitempty,max=20"`
}

// ChangePasswordRequest carries a new password.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ProfileService reads and edits user profiles.
type ProfileService struct {
	exchanger session.Exchanger
	identity  *session.Identity
	hasher    security.Hasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(exchanger session.Exchanger, identity *session.Identity, hasher security.Hasher, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if hasher == nil {
		hasher = security.BcryptHasher{Cost: security.DefaultCost}
	}
	return &ProfileService{exchanger: exchanger, identity: identity, hasher: hasher, validator: validate, logger: logger}
}

// Get returns the profile of userID, the current user when zero.
func (s *ProfileService) Get(ctx context.Context, userID int) (*models.Profile, error) {
	user, err := requireUser(s.identity)
	if err != nil {
		return nil, err
	}
	if userID <= 0 {
		userID = user.ID
	}

	resp, err := exchange(ctx, s.exchanger, protocol.CommandGetProfile, protocol.Payload{"userId": userID}, "failed to load profile")
	if err != nil {
		return nil, err
	}

	rec, ok, err := resp.Data.Record()
	if err != nil {
		return nil, parseFailure(err, "failed to read profile data")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrParse, "server reply has no profile data")
	}

	profile := profileFromRecord(rec)
	return &profile, nil
}

// Update sends the changed contact fields of the current user. The session
// identity keeps the email it logged in with.
func (s *ProfileService) Update(ctx context.Context, req UpdateProfileRequest) error {
	user, err := requireUser(s.identity)
	if err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	payload := protocol.Payload{"userId": user.ID}
	for key, value := range map[string]string{
		"email":     req.Email,
		"direccion": req.Address,
		"telefono1": req.Phone1,
		"telefono2": req.Phone2,
	} {
		if value != "" {
			payload[key] = value
		}
	}
	if len(payload) == 1 {
		return appErrors.Clone(appErrors.ErrValidation, "nothing to update")
	}

	if _, err := exchange(ctx, s.exchanger, protocol.CommandUpdateProfile, payload, "failed to update profile"); err != nil {
		return err
	}

	s.logger.Info("profile updated", zap.Int("user_id", user.ID))
	return nil
}

// ChangePassword hashes the new password and sends the hash.
func (s *ProfileService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	user, err := requireUser(s.identity)
	if err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password payload")
	}

	hashed, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if _, err := exchange(ctx, s.exchanger, protocol.CommandUpdateProfile, protocol.Payload{
		"userId":   user.ID,
		"password": hashed,
	}, "failed to change password"); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.Int("user_id", user.ID))
	return nil
}
