package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/career-dashboard/internal/clients/storage"
	"github.com/maxaizer/career-dashboard/internal/domain/events"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/maxaizer/career-dashboard/internal/metrics"
	"github.com/oklog/ulid/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type sessionRepository interface {
	Save(ctx context.Context, workspaceID string, cookies []byte) error
	Load(ctx context.Context, workspaceID string) ([]byte, error)
	Remove(ctx context.Context, workspaceID string) error
}

// Store keeps live workspaces in memory. An idle workspace expires after the
// ttl; its credentials survive in the sessions repository and are restored on
// the next visit.
type Store struct {
	options  Options
	uploader *storage.Uploader
	sessions sessionRepository
	bus      EventBus.Bus
	cache    *gocache.Cache
	mu       sync.Mutex
}

func NewStore(options Options, uploader *storage.Uploader, sessions sessionRepository, bus EventBus.Bus,
	ttl time.Duration) (*Store, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if ttl <= 0 {
		return nil, errors.New("workspace ttl must be positive")
	}

	s := &Store{
		options:  options,
		uploader: uploader,
		sessions: sessions,
		bus:      bus,
		cache:    gocache.New(ttl, ttl/2),
	}

	s.cache.OnEvicted(func(string, interface{}) {
		metrics.ActiveWorkspacesGauge.Set(float64(s.cache.ItemCount()))
	})

	if err := bus.Subscribe(events.SessionStartedTopic, s.onSessionStarted); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.SessionRefreshedTopic, s.onSessionRefreshed); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.SessionEndedTopic, s.onSessionEnded); err != nil {
		return nil, err
	}

	return s, nil
}

func NewID() string {
	return ulid.Make().String()
}

// Get returns the workspace with the given id, creating it on first use.
// Every access extends its lifetime.
func (s *Store) Get(ctx context.Context, id string) (*Workspace, error) {
	if id == "" {
		return nil, errors.New("workspace id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if value, found := s.cache.Get(id); found {
		ws := value.(*Workspace)
		s.cache.SetDefault(id, ws)
		return ws, nil
	}

	ws, err := New(id, s.options, s.uploader)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.restore(ctx, ws)
	s.wire(ws)

	s.cache.SetDefault(id, ws)
	metrics.ActiveWorkspacesGauge.Set(float64(s.cache.ItemCount()))
	return ws, nil
}

// Peek returns a live workspace without creating or touching it.
func (s *Store) Peek(id string) (*Workspace, bool) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	return value.(*Workspace), true
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}

func (s *Store) restore(ctx context.Context, ws *Workspace) {
	if s.sessions == nil {
		return
	}

	cookies, err := s.sessions.Load(ctx, ws.ID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load session of %s: %v", ws.ID, err)
		return
	}
	if cookies == nil {
		return
	}

	if err = ws.Client.ImportCookies(cookies); err != nil {
		log.Warnf("dropping unreadable session of %s: %v", ws.ID, err)
		_ = s.sessions.Remove(ctx, ws.ID)
	}
}

func (s *Store) wire(ws *Workspace) {
	ws.Login.OnLoggedIn(func(user models.User) {
		ws.Session.Set(user)
		s.bus.Publish(events.SessionStartedTopic, events.SessionStarted{WorkspaceID: ws.ID, Email: user.Email})
	})

	ws.Client.OnSessionRefreshed(func() {
		s.bus.Publish(events.SessionRefreshedTopic, events.SessionRefreshed{WorkspaceID: ws.ID})
	})

	ws.Session.OnEnded(func(reason events.SessionEndReason) {
		s.bus.Publish(events.SessionEndedTopic, events.SessionEnded{WorkspaceID: ws.ID, Reason: reason})
	})
}

func (s *Store) onSessionStarted(event events.SessionStarted) {
	if s.persist(event.WorkspaceID) {
		log.Infof("session started in workspace %s", event.WorkspaceID)
	}
}

func (s *Store) onSessionRefreshed(event events.SessionRefreshed) {
	if s.persist(event.WorkspaceID) {
		log.Debugf("session of workspace %s refreshed", event.WorkspaceID)
	}
}

// persist saves the current credentials of a live workspace.
func (s *Store) persist(workspaceID string) bool {
	if s.sessions == nil {
		return false
	}

	ws, found := s.Peek(workspaceID)
	if !found {
		return false
	}

	cookies, err := ws.Client.ExportCookies()
	if err != nil {
		log.Errorf("failed to export cookies of %s: %v", ws.ID, err)
		return false
	}

	if err = s.sessions.Save(context.Background(), ws.ID, cookies); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to save session of %s: %v", ws.ID, err)
		return false
	}
	return true
}

func (s *Store) onSessionEnded(event events.SessionEnded) {
	if s.sessions == nil {
		return
	}

	if err := s.sessions.Remove(context.Background(), event.WorkspaceID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to remove session of %s: %v", event.WorkspaceID, err)
		return
	}
	log.Infof("session of workspace %s ended: %s", event.WorkspaceID, event.Reason)
}
