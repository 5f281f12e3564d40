package api

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

const (
	PDFContentType    = "application/pdf"
	MaxFileNameLength = 255
)

var (
	ErrFileNameEmpty   = fmt.Errorf("%w: file name is empty", ErrInvalidRequest)
	ErrFileNameTooLong = fmt.Errorf("%w: filename too long", ErrInvalidRequest)
	ErrNotPDF          = fmt.Errorf("%w: only PDF files allowed", ErrInvalidRequest)
)

type presignRequest struct {
	FileName    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type confirmRequest struct {
	ObjectKey string `json:"object_key"`
}

func (c *Client) Documents(ctx context.Context) ([]models.Document, error) {
	var documents []models.Document
	err := c.send(ctx, call{name: "documents", method: http.MethodGet, path: "/documents/"}, &documents)
	return documents, err
}

// PresignUpload asks for a time-limited URL the file can be PUT to directly.
func (c *Client) PresignUpload(ctx context.Context, fileName string) (models.PresignedUpload, error) {
	if err := ValidateFileName(fileName); err != nil {
		return models.PresignedUpload{}, err
	}

	var upload models.PresignedUpload
	err := c.send(ctx, call{name: "presign_upload", method: http.MethodPost, path: "/documents/presigned/",
		payload: presignRequest{FileName: fileName, ContentType: PDFContentType}}, &upload)
	return upload, err
}

func (c *Client) ConfirmUpload(ctx context.Context, objectKey string) (models.Document, error) {
	if objectKey == "" {
		return models.Document{}, fmt.Errorf("%w: object key is empty", ErrInvalidRequest)
	}

	var document models.Document
	err := c.send(ctx, call{name: "confirm_upload", method: http.MethodPost, path: "/documents/confirm/",
		payload: confirmRequest{ObjectKey: objectKey}}, &document)
	return document, err
}

// ValidateFileName accepts PDF names the API is willing to presign.
func ValidateFileName(fileName string) error {
	if fileName == "" {
		return ErrFileNameEmpty
	}
	if utf8.RuneCountInString(fileName) > MaxFileNameLength {
		return ErrFileNameTooLong
	}
	if !strings.EqualFold(path.Ext(fileName), ".pdf") {
		return ErrNotPDF
	}
	return nil
}
