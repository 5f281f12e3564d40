package pages

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

var (
	ErrBusy       = errors.New("a submission is already in progress")
	ErrEmptyInput = errors.New("input is empty")
)

// busyGuard rejects a submit while the previous one is still outstanding.
type busyGuard struct {
	busy atomic.Bool
}

func (g *busyGuard) run(submit func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer g.busy.Store(false)
	return submit()
}

func (g *busyGuard) Busy() bool {
	return g.busy.Load()
}

// field is a text input owned by a page.
type field struct {
	mu    sync.Mutex
	value string
}

func (f *field) Set(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
}

func (f *field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// take clears the input and returns what it held, trimmed.
func (f *field) take() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	value := strings.TrimSpace(f.value)
	f.value = ""
	return value
}

// formError is the inline message shown next to a form.
type formError struct {
	mu      sync.Mutex
	message string
}

func (e *formError) set(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = message
}

func (e *formError) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}
