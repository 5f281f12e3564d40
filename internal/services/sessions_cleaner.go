package services

import (
	"context"
	"time"

	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type SessionCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error)
}

// SessionsCleaner drops stored visitor sessions nobody has used for a while.
type SessionsCleaner struct {
	sessions             SessionCleanupRepository
	cron                 *cron.Cron
	expirationTimeInDays int
	now                  func() time.Time
}

func NewSessionsCleaner(sessions SessionCleanupRepository, expirationInDays int) (*SessionsCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	sc := &SessionsCleaner{
		sessions:             sessions,
		cron:                 cron.New(),
		expirationTimeInDays: expirationInDays,
		now:                  time.Now,
	}

	_, err := sc.cron.AddFunc("0 0 * * *", sc.cleanOldSessions)
	if err != nil {
		return nil, err
	}

	return sc, nil
}

func (sc *SessionsCleaner) Start() {
	sc.cron.Start()
	log.Infof("sessions cleaner started, expiration in days: %d", sc.expirationTimeInDays)
}

func (sc *SessionsCleaner) Stop() {
	<-sc.cron.Stop().Done()
}

func (sc *SessionsCleaner) cleanOldSessions() {
	expirationTime := sc.now().Add(-time.Duration(sc.expirationTimeInDays) * 24 * time.Hour)
	rowsAffected, err := sc.sessions.RemoveOlderThan(context.Background(), expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clean old sessions: %v", err)
	} else {
		log.Infof("old sessions were cleaned at %v, affected rows: %v", sc.now(), rowsAffected)
	}
}
