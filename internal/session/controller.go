package session

import (
	"context"
	"sync"
	"time"

	"github.com/clauselens/clauselens/backend/go-services/internal/auth"
	"github.com/clauselens/clauselens/backend/go-services/internal/token"
	"github.com/clauselens/clauselens/backend/go-services/pkg/logger"
)

// User is the in-memory view of the authenticated identity, derived from a
// valid credential. Absent (nil) means Anonymous.
type User struct {
	Email string `json:"email"`
}

// Authenticator is the slice of the auth service the controller delegates to.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (auth.Result, error)
	Register(ctx context.Context, email, password string) (auth.Result, error)
	SocialLogin(ctx context.Context, provider string) (auth.Result, error)
}

// Controller owns the derived session state: Anonymous or Authenticated.
// It is the only writer of the in-memory user value and keeps it in step
// with the credential slot.
//
// Operations are not guarded against overlapping calls; callers are expected
// to gate concurrent auth attempts themselves (the UI disables its triggers
// while a call is outstanding).
type Controller struct {
	store Store
	authn Authenticator

	mu    sync.RWMutex
	user  *User
	hooks []func()
}

// NewController builds the controller and performs the initial transition:
// an invalid or expired stored credential is cleared and the session starts
// Anonymous; a valid one yields Authenticated without any service call.
func NewController(ctx context.Context, store Store, authn Authenticator) *Controller {
	c := &Controller{store: store, authn: authn}
	c.resume(ctx)
	return c
}

func (c *Controller) resume(ctx context.Context) {
	cred, err := c.store.Get(ctx)
	if err != nil {
		if err != ErrNoCredential {
			logger.Warnf("session resume: store read failed: %v", err)
		}
		return
	}
	claims, err := token.Decode(cred)
	if err != nil || !claims.Valid(time.Now()) {
		// Stale or garbage slot. Clear it and stay Anonymous; never raise.
		if cerr := c.store.Clear(ctx); cerr != nil {
			logger.Warnf("session resume: failed to clear stale credential: %v", cerr)
		}
		return
	}
	c.user = &User{Email: claims.Subject}
}

// CurrentUser returns the authenticated user, or nil when Anonymous.
func (c *Controller) CurrentUser() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Login delegates to the auth service and transitions to Authenticated on
// success. On a domain failure the session state is untouched and the error
// string is surfaced in the result.
func (c *Controller) Login(ctx context.Context, email, password string) (auth.Result, error) {
	res, err := c.authn.Login(ctx, email, password)
	return c.apply(res, err)
}

func (c *Controller) Register(ctx context.Context, email, password string) (auth.Result, error) {
	res, err := c.authn.Register(ctx, email, password)
	return c.apply(res, err)
}

func (c *Controller) SocialLogin(ctx context.Context, provider string) (auth.Result, error) {
	res, err := c.authn.SocialLogin(ctx, provider)
	return c.apply(res, err)
}

func (c *Controller) apply(res auth.Result, err error) (auth.Result, error) {
	if err != nil {
		return auth.Result{}, err
	}
	if res.OK {
		c.mu.Lock()
		c.user = &User{Email: res.Email}
		c.mu.Unlock()
	}
	return res, nil
}

// OnLogout registers a hook invoked whenever Logout runs. The workflow
// controller uses this to discard all in-progress analysis state: logout is
// a hard reset of everything downstream, not just an identity change.
func (c *Controller) OnLogout(hook func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// Logout transitions to Anonymous and unconditionally clears the slot.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.user = nil
	hooks := c.hooks
	c.mu.Unlock()
	err := c.store.Clear(ctx)
	for _, h := range hooks {
		h()
	}
	return err
}
