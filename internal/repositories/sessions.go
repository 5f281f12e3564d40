package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Sessions stores the API cookies of each workspace so a restart does not sign visitors out.
type Sessions struct {
	db *gorm.DB
}

func NewSessionsRepository(db *gorm.DB) *Sessions {
	return &Sessions{db: db}
}

func (repo *Sessions) Save(ctx context.Context, workspaceID string, cookies []byte) error {
	var existing models.StoredSession
	err := repo.db.WithContext(ctx).First(&existing, "id = ?", workspaceID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.db.WithContext(ctx).Create(&models.StoredSession{ID: workspaceID, Cookies: cookies}).Error
	}

	existing.Cookies = cookies
	return repo.db.WithContext(ctx).Save(&existing).Error
}

// Load returns nil without an error when nothing is stored for the workspace.
func (repo *Sessions) Load(ctx context.Context, workspaceID string) ([]byte, error) {
	session := &models.StoredSession{}
	err := repo.db.WithContext(ctx).First(session, "id = ?", workspaceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session.Cookies, nil
}

func (repo *Sessions) Remove(ctx context.Context, workspaceID string) error {
	return repo.db.WithContext(ctx).Delete(&models.StoredSession{}, "id = ?", workspaceID).Error
}

func (repo *Sessions) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&models.StoredSession{}, "updated_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
