package models

import (
	"path"
	"time"
)

type Document struct {
	ID         string    `json:"id"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
	Parsed     bool      `json:"parsed"`
}

// FileName is the last path element of the file URL.
func (d Document) FileName() string {
	if d.FileURL == "" {
		return ""
	}
	return path.Base(d.FileURL)
}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}
