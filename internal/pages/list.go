package pages

import (
	"context"
	"sync"
)

type LoadState string

const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// list holds one server-backed collection of a page. A failed read leaves it
// empty and not loading.
type list[T any] struct {
	page  string
	read  func(ctx context.Context) ([]T, error)
	mu    sync.RWMutex
	items []T
	state LoadState
}

func newList[T any](page string, read func(ctx context.Context) ([]T, error)) *list[T] {
	return &list[T]{page: page, read: read, items: []T{}, state: StateLoading}
}

func (l *list[T]) Load(ctx context.Context) Result[[]T] {
	l.mu.Lock()
	l.state = StateLoading
	l.mu.Unlock()

	result := Fetch(ctx, l.page, l.read)

	l.mu.Lock()
	defer l.mu.Unlock()
	if result.IsOk() {
		l.items = result.OrDefault(nil)
		if l.items == nil {
			l.items = []T{}
		}
		l.state = StateReady
	} else {
		l.items = []T{}
		l.state = StateFailed
	}
	return result
}

func (l *list[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T{}, l.items...)
}

func (l *list[T]) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateLoading
}

func (l *list[T]) State() LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// value holds a single server-backed aggregate of a page.
type value[T any] struct {
	page  string
	read  func(ctx context.Context) (T, error)
	mu    sync.RWMutex
	data  T
	state LoadState
}

func newValue[T any](page string, read func(ctx context.Context) (T, error)) *value[T] {
	return &value[T]{page: page, read: read, state: StateLoading}
}

func (v *value[T]) Load(ctx context.Context) Result[T] {
	v.mu.Lock()
	v.state = StateLoading
	v.mu.Unlock()

	result := Fetch(ctx, v.page, v.read)

	v.mu.Lock()
	defer v.mu.Unlock()
	var zero T
	v.data = result.OrDefault(zero)
	if result.IsOk() {
		v.state = StateReady
	} else {
		v.state = StateFailed
	}
	return result
}

func (v *value[T]) Get() (T, LoadState) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.data, v.state
}
