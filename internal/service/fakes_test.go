package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// fakeLink answers requests from a table of canned reply lines keyed by
// command, recording every request it sees.
type fakeLink struct {
	mu          sync.Mutex
	connected   bool
	connectErr  error
	replies     map[protocol.Command]string
	errs        map[protocol.Command]error
	requests    []*protocol.Request
	connects    int
	disconnects int
}

func newFakeLink() *fakeLink {
	return &fakeLink{
		connected: true,
		replies:   map[protocol.Command]string{},
		errs:      map[protocol.Command]error{},
	}
}

func (f *fakeLink) reply(cmd protocol.Command, line string) *fakeLink {
	f.replies[cmd] = line
	return f
}

func (f *fakeLink) fail(cmd protocol.Command, err error) *fakeLink {
	f.errs[cmd] = err
	return f
}

func (f *fakeLink) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeLink) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	f.connected = false
}

func (f *fakeLink) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeLink) Execute(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return nil, appErrors.ErrNotConnected
	}
	f.requests = append(f.requests, req)
	if err := f.errs[req.Action]; err != nil {
		return nil, err
	}
	line, ok := f.replies[req.Action]
	if !ok {
		line = `{"status":{"code":200,"description":"OK"},"message":"ok","data":null}`
	}
	return protocol.DecodeResponse([]byte(line))
}

func (f *fakeLink) sent() []*protocol.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*protocol.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeLink) lastPayload(t *testing.T) map[string]interface{} {
	t.Helper()
	reqs := f.sent()
	require.NotEmpty(t, reqs)
	var payload map[string]interface{}
	require.NoError(t, reqs[len(reqs)-1].DecodePayload(&payload))
	return payload
}

var _ SessionLink = (*fakeLink)(nil)

func loggedIn(id int) *session.Identity {
	identity := session.NewIdentity()
	identity.Set(models.User{ID: id, Email: "ane@elorrieta.eus", FirstName: "Ane", LastName: "Etxeberria"})
	return identity
}
