package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/maxaizer/career-dashboard/internal/domain/events"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var ErrNoSession = errors.New("no active session")

type identityAPI interface {
	Me(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
}

type navigator interface {
	Navigate(route pages.Route)
}

// Session is the identity of one visitor, read once from the API and kept
// until it is invalidated by logout or by a failed refresh.
type Session struct {
	api       identityAPI
	navigator navigator

	mu    sync.RWMutex
	user  *models.User
	ended []func(events.SessionEndReason)

	group singleflight.Group
}

func New(api identityAPI, navigator navigator) *Session {
	return &Session{api: api, navigator: navigator}
}

// OnEnded registers a hook called after logout or expiry.
func (s *Session) OnEnded(hook func(reason events.SessionEndReason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, hook)
}

// Ensure returns the current user, asking the API only when none is cached.
// When the API does not know the visitor they are sent to the login screen.
func (s *Session) Ensure(ctx context.Context) (models.User, error) {
	if user, ok := s.User(); ok {
		return user, nil
	}

	value, err, _ := s.group.Do("me", func() (any, error) {
		return s.api.Me(ctx)
	})
	if err != nil {
		log.Debugf("session check failed: %v", err)
		s.Invalidate()
		s.navigator.Navigate(pages.RouteLogin)
		return models.User{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	user := value.(models.User)
	s.Set(user)
	return user, nil
}

func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) Set(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Expire is called when the API refused to refresh the credentials.
func (s *Session) Expire() {
	s.Invalidate()
	s.navigator.Navigate(pages.RouteLogin)
	s.notify(events.ReasonExpired)
}

// Logout signs out on the server and forgets the user even if that call fails.
func (s *Session) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if err != nil {
		log.Infof("logout call failed: %v", err)
	}

	s.Invalidate()
	s.navigator.Navigate(pages.RouteLogin)
	s.notify(events.ReasonLogout)
	return err
}

func (s *Session) notify(reason events.SessionEndReason) {
	s.mu.RLock()
	hooks := append([]func(events.SessionEndReason){}, s.ended...)
	s.mu.RUnlock()

	for _, hook := range hooks {
		hook(reason)
	}
}
