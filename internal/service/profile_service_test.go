package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
	"github.com/noah-isme/elores-client/pkg/security"
)

func TestProfileServiceGet(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetProfile, `{"status":{"code":200},"message":"ok","data":"{`+
		`\"id\":7,\"email\":\"ane@elorrieta.eus\",\"nombre\":\"Ane\",\"direccion\":\"Kalea 1\",\"argazkia_url\":\"http://img/7.png\"}"}`)
	svc := NewProfileService(link, loggedIn(7), nil, nil, nil)

	profile, err := svc.Get(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 7, profile.ID)
	assert.Equal(t, "Kalea 1", profile.Address)
	assert.Equal(t, "http://img/7.png", profile.AvatarURL)
	assert.EqualValues(t, 7, link.lastPayload(t)["userId"])
}

func TestProfileServiceUpdateSendsOnlyChangedFields(t *testing.T) {
	link := newFakeLink()
	identity := loggedIn(7)
	svc := NewProfileService(link, identity, nil, nil, nil)

	require.NoError(t, svc.Update(context.Background(), UpdateProfileRequest{Email: "new@elorrieta.eus", Phone1: "600000000"}))

	payload := link.lastPayload(t)
	assert.Equal(t, "new@elorrieta.eus", payload["email"])
	assert.Equal(t, "600000000", payload["telefono1"])
	assert.NotContains(t, payload, "direccion")
	assert.NotContains(t, payload, "telefono2")

	user, ok := identity.Current()
	require.True(t, ok)
	assert.Equal(t, "ane@elorrieta.eus", user.Email)
}

func TestProfileServiceUpdateAfterLogoutLeavesIdentityEmpty(t *testing.T) {
	link := newFakeLink()
	identity := loggedIn(7)
	svc := NewProfileService(link, identity, nil, nil, nil)

	require.NoError(t, svc.Update(context.Background(), UpdateProfileRequest{Email: "new@elorrieta.eus"}))
	identity.Clear()
	require.ErrorIs(t, svc.Update(context.Background(), UpdateProfileRequest{Email: "other@elorrieta.eus"}), appErrors.ErrUnauthenticated)

	assert.False(t, identity.IsAuthenticated())
	assert.Len(t, link.sent(), 1)
}

func TestProfileServiceUpdateValidation(t *testing.T) {
	link := newFakeLink()
	svc := NewProfileService(link, loggedIn(7), nil, nil, nil)

	assert.ErrorIs(t, svc.Update(context.Background(), UpdateProfileRequest{}), appErrors.ErrValidation)
	assert.ErrorIs(t, svc.Update(context.Background(), UpdateProfileRequest{Email: "nope"}), appErrors.ErrValidation)
	assert.Empty(t, link.sent())

	svc = NewProfileService(link, session.NewIdentity(), nil, nil, nil)
	assert.ErrorIs(t, svc.Update(context.Background(), UpdateProfileRequest{Email: "a@b.eus"}), appErrors.ErrUnauthenticated)
}

func TestProfileServiceChangePasswordSendsHash(t *testing.T) {
	link := newFakeLink()
	svc := NewProfileService(link, loggedIn(7), security.BcryptHasher{Cost: bcrypt.MinCost}, nil, nil)

	require.NoError(t, svc.ChangePassword(context.Background(), ChangePasswordRequest{NewPassword: "Elorrieta2024"}))

	payload := link.lastPayload(t)
	hashed, ok := payload["password"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "Elorrieta2024", hashed)
	assert.True(t, security.Verify("Elorrieta2024", hashed))

	assert.ErrorIs(t, svc.ChangePassword(context.Background(), ChangePasswordRequest{NewPassword: "short"}), appErrors.ErrValidation)
}
