// Package pageview keeps the server-side state of one rendered page: which form
// is presented and what has been typed into both. A page view lives until its
// TTL runs out; reloading the page always starts a new one.
package pageview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/authforms/internal/forms"
)

var (
	// ErrPageNotFound is returned for unknown or expired page views.
	ErrPageNotFound = errors.New("page view not found")
	// ErrUnknownMode is returned when parsing a mode other than registration or login.
	ErrUnknownMode = errors.New("unknown mode")
)

// DefaultTTL is how long an idle page view is kept.
const DefaultTTL = 30 * time.Minute

// Mode is the form currently presented as the active one.
type Mode string

const (
	ModeRegistration Mode = "registration"
	ModeLogin        Mode = "login"
)

// ParseMode validates a mode coming from a request. An empty string selects
// registration.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeRegistration, nil
	case ModeRegistration, ModeLogin:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Class is the CSS class placed on the page root for this mode.
func (m Mode) Class() string {
	return string(m) + "-mode"
}

// Page is one page view.
type Page struct {
	ID           uuid.UUID          `json:"id"`
	Owner        string             `json:"owner"`
	Mode         Mode               `json:"mode"`
	Registration forms.Registration `json:"registration"`
	Login        forms.Login        `json:"login"`
	CreatedAt    time.Time          `json:"created_at"`
}

// New returns an empty page view owned by owner.
func New(owner string, mode Mode) *Page {
	return &Page{
		ID:        uuid.New(),
		Owner:     owner,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}
}

// Form returns the form of the given kind. The returned value points into p.
func (p *Page) Form(kind forms.Kind) (forms.Form, error) {
	switch kind {
	case forms.KindRegister:
		return &p.Registration, nil
	case forms.KindLogin:
		return &p.Login, nil
	}
	return nil, fmt.Errorf("%w: %q", forms.ErrUnknownKind, kind)
}

// Store persists page views for their lifetime.
type Store interface {
	// Create stores a new empty page view.
	Create(ctx context.Context, owner string, mode Mode) (*Page, error)
	// Get returns a copy of the page view.
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	// Update applies fn to the page view atomically and returns the stored
	// result. If fn returns an error nothing is written.
	Update(ctx context.Context, id uuid.UUID, fn func(*Page) error) (*Page, error)
	// Close releases the store's resources.
	Close() error
}
