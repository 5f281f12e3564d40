package pages

import (
	"context"
	"errors"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/maxaizer/career-dashboard/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// Result is the outcome of a read at the fetch boundary.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// OrDefault yields the value on success and def on failure.
func (r Result[T]) OrDefault(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Fetch runs one read and records how it went. It never panics on a failed read.
func Fetch[T any](ctx context.Context, page string, read func(ctx context.Context) (T, error)) Result[T] {
	value, err := read(ctx)
	if err != nil {
		metrics.PageLoadsCounter.WithLabelValues(page, "failed").Inc()
		logFetchError(page, err)
		return Fail[T](err)
	}
	metrics.PageLoadsCounter.WithLabelValues(page, "ok").Inc()
	return Ok(value)
}

func logFetchError(page string, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		log.Debugf("%s read canceled", page)
	case api.IsUnauthorized(err):
		log.Infof("%s read rejected: %v", page, err)
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAPI).Warnf("%s read failed: %v", page, err)
	}
}
