package models

import "time"

// StoredSession keeps the API cookies of one visitor across restarts.
type StoredSession struct {
	ID        string `gorm:"primaryKey"`
	Cookies   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
