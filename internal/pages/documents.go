package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
	Size        int64
}

type DocumentsPage struct {
	documents     documentsAPI
	uploader      fileUploader
	extractSkills bool
	list          *list[models.Document]
	guard         busyGuard
	formErr       formError
	mu            sync.RWMutex
	notice        string
}

func NewDocumentsPage(documents documentsAPI, uploader fileUploader, extractSkills bool) *DocumentsPage {
	return &DocumentsPage{
		documents:     documents,
		uploader:      uploader,
		extractSkills: extractSkills,
		list:          newList("documents", documents.Documents),
	}
}

func (p *DocumentsPage) Load(ctx context.Context) Result[[]models.Document] {
	return p.list.Load(ctx)
}

func (p *DocumentsPage) Documents() []models.Document {
	return p.list.Items()
}

func (p *DocumentsPage) Loading() bool {
	return p.list.Loading()
}

// Upload presigns, puts the file to object storage, confirms it, optionally
// extracts skills from it and finally reads the document list again.
func (p *DocumentsPage) Upload(ctx context.Context, upload Upload) error {
	return p.guard.run(func() error {
		p.setNotice("")

		err := p.upload(ctx, upload)
		if err != nil {
			p.formErr.set(api.Message(err, uploadErrorMessage(err)))
		} else {
			p.formErr.set("")
		}

		p.list.Load(ctx)
		return err
	})
}

func (p *DocumentsPage) upload(ctx context.Context, upload Upload) error {
	if err := api.ValidateFileName(upload.FileName); err != nil {
		return err
	}
	contentType := upload.ContentType
	if contentType == "" {
		contentType = api.PDFContentType
	}
	if !strings.HasPrefix(contentType, api.PDFContentType) {
		return api.ErrNotPDF
	}

	presigned, err := p.documents.PresignUpload(ctx, upload.FileName)
	if err != nil {
		return fmt.Errorf("presign: %w", err)
	}

	if err := p.uploader.Put(ctx, presigned, api.PDFContentType, upload.Body, upload.Size); err != nil {
		return fmt.Errorf("put: %w", err)
	}

	document, err := p.documents.ConfirmUpload(ctx, presigned.ObjectKey)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}

	if !p.extractSkills {
		p.setNotice(fmt.Sprintf("Uploaded %s", upload.FileName))
		return nil
	}

	extraction, err := p.documents.ExtractSkills(ctx, document.ID, false)
	if err != nil {
		log.Infof("skill extraction for document %s failed: %v", document.ID, err)
		p.setNotice(fmt.Sprintf("Uploaded %s. Skills could not be extracted yet.", upload.FileName))
		return nil
	}

	p.setNotice(fmt.Sprintf("Uploaded %s. Extracted %d skills.", upload.FileName, len(extraction.Extracted)))
	return nil
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrNotPDF):
		return "Only PDF files allowed"
	case errors.Is(err, api.ErrFileNameTooLong):
		return "Filename too long"
	case errors.Is(err, api.ErrFileNameEmpty):
		return "Choose a PDF file to upload"
	default:
		return "Upload failed"
	}
}

func (p *DocumentsPage) setNotice(notice string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notice = notice
}

// Notice is the outcome line of the last successful upload.
func (p *DocumentsPage) Notice() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.notice
}

func (p *DocumentsPage) Error() string {
	return p.formErr.Message()
}

func (p *DocumentsPage) Busy() bool {
	return p.guard.Busy()
}
