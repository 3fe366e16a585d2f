package service

import (
	"context"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// exchange sends one command and turns a non-200 reply into a server error
// carrying the server message, or fallback when it sent none.
func exchange(ctx context.Context, ex session.Exchanger, cmd protocol.Command, payload interface{}, fallback string) (*protocol.Response, error) {
	if !ex.IsConnected() {
		return nil, appErrors.Clone(appErrors.ErrNotConnected, "")
	}

	req, err := protocol.NewRequest(cmd, payload)
	if err != nil {
		return nil, err
	}

	resp, err := ex.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, appErrors.Server(resp.Status.Code, resp.ErrorMessage(fallback))
	}
	return resp, nil
}

// requireUser returns the authenticated user or fails without a round trip.
func requireUser(identity *session.Identity) (models.User, error) {
	user, ok := identity.Current()
	if !ok {
		return models.User{}, appErrors.Clone(appErrors.ErrUnauthenticated, "")
	}
	return user, nil
}

// parseFailure wraps a data decoding failure with the operation context.
func parseFailure(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, message)
}
