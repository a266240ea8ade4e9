package auth

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/session"
	"github.com/unicrm/unicli/core/user"
)

// State of the auth machine. Loading is the initial state, left for good
// once the persisted session has been examined.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

var errLoginFailed = errors.New("login failed")

type (
	// Channel is the slice of the realtime service the auth machine
	// drives: opened on login/restore, torn down on logout.
	Channel interface {
		Connect(ctx context.Context, token string) error
		Disconnect()
		Connected() bool
	}

	// Snapshot is the auth state exposed to the rest of the client.
	Snapshot struct {
		User            *user.User
		IsAuthenticated bool
		IsLoading       bool
	}

	// Service orchestrates login/register/logout against the backend,
	// the token store and the realtime channel. A mutex serializes
	// transitions; only one may be in flight at a time.
	Service struct {
		api      core.APIClient
		store    *session.Store
		channel  Channel
		notifier core.Notifier
		logger   core.Logger

		mu    sync.Mutex
		state State
		usr   user.User
	}
)

func NewService(api core.APIClient, store *session.Store, channel Channel, notifier core.Notifier, logger core.Logger) *Service {
	return &Service{
		api:      api,
		store:    store,
		channel:  channel,
		notifier: notifier,
		logger:   logger,
		state:    StateLoading,
	}
}

// loginResponse is the /auth/login (and /auth/register) success payload.
type loginResponse struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

// Init restores a persisted session on startup: both keys present and the
// token unexpired means authenticated (and the realtime channel opens);
// anything else clears stale storage and lands unauthenticated.
func (svc *Service) Init(ctx context.Context) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	sess, ok := session.Load(svc.store)
	if !ok {
		_ = svc.store.Clear()
		svc.setUnauthenticated()
		return
	}

	svc.state = StateAuthenticated
	svc.usr = sess.User
	svc.connect(ctx, sess.Token)
}

// Login authenticates with the backend. On success the token and user are
// persisted together and the realtime channel opens; on any failure the
// state is unauthenticated with nothing persisted, never a partial
// session. No retry is attempted; the caller decides whether to re-prompt.
func (svc *Service) Login(ctx context.Context, creds user.Login) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if err := creds.Validate(); err != nil {
		svc.setUnauthenticated()
		return err
	}

	var res loginResponse
	if err := svc.api.Post(ctx, "/auth/login", creds, &res); err != nil {
		svc.setUnauthenticated()
		return err
	}
	if res.Token == "" || res.User.ID == "" {
		svc.setUnauthenticated()
		return errLoginFailed
	}

	if err := svc.store.Save(res.Token, res.User); err != nil {
		_ = svc.store.Clear()
		svc.setUnauthenticated()
		return err
	}

	svc.state = StateAuthenticated
	svc.usr = res.User
	svc.connect(ctx, res.Token)
	svc.notifier.Success("Login successful!")
	return nil
}

// Register creates an account but does NOT authenticate it: on success the
// state stays unauthenticated with a success notice and the user logs in
// explicitly.
func (svc *Service) Register(ctx context.Context, data user.Register) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if err := data.Validate(); err != nil {
		svc.setUnauthenticated()
		return err
	}

	if err := svc.api.Post(ctx, "/auth/register", data, nil); err != nil {
		svc.setUnauthenticated()
		return err
	}

	svc.setUnauthenticated()
	svc.notifier.Success("Registration successful! Please log in.")
	return nil
}

// Logout clears the persisted session, closes the realtime channel and
// lands unauthenticated, unconditionally and with no backend confirmation.
func (svc *Service) Logout() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	_ = svc.store.Clear()
	svc.channel.Disconnect()
	svc.setUnauthenticated()
	svc.notifier.Success("Logged out successfully")
}

// Current returns a snapshot of {user, isAuthenticated, isLoading}.
func (svc *Service) Current() Snapshot {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	snap := Snapshot{
		IsAuthenticated: svc.state == StateAuthenticated,
		IsLoading:       svc.state == StateLoading,
	}
	if snap.IsAuthenticated {
		usr := svc.usr
		snap.User = &usr
	}
	return snap
}

// CurrentState exposes the raw machine state.
func (svc *Service) CurrentState() State {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.state
}

func (svc *Service) setUnauthenticated() {
	svc.state = StateUnauthenticated
	svc.usr = user.User{}
}

// connect opens the realtime channel; a failure is logged, not fatal;
// the session itself is already established.
func (svc *Service) connect(ctx context.Context, token string) {
	if err := svc.channel.Connect(ctx, token); err != nil {
		svc.logger.Warn("auth: realtime connect failed", err)
	}
}
