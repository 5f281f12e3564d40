package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/maxaizer/career-dashboard/internal/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Uploader puts files to presigned object storage URLs. It never sends API
// credentials: the URL itself carries the authorization.
type Uploader struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewUploader() *Uploader {
	return &Uploader{httpClient: &http.Client{Timeout: 2 * time.Minute}}
}

func (u *Uploader) SetHTTPClient(client HTTPClient) {
	u.httpClient = client
}

func (u *Uploader) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		u.rateLimiter = nil
		return
	}
	u.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (u *Uploader) Put(ctx context.Context, upload models.PresignedUpload, contentType string,
	body io.Reader, size int64) error {

	if upload.UploadURL == "" {
		return fmt.Errorf("presigned upload has no url")
	}

	if u.rateLimiter != nil {
		if err := u.rateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, upload.UploadURL, body)
	if err != nil {
		return fmt.Errorf("error creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if size >= 0 {
		req.ContentLength = size
	}

	started := time.Now()
	resp, err := u.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues("storage_put").Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.APIRequestsCounter.WithLabelValues("storage_put", "error").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("error uploading %s: %v", upload.ObjectKey, err)
		return fmt.Errorf("error sending upload request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	metrics.APIRequestsCounter.WithLabelValues("storage_put", fmt.Sprint(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("upload of %s rejected with status %d", upload.ObjectKey, resp.StatusCode)
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	return nil
}
