// Package views holds one controller per dashboard screen. A controller loads its data through
// the API facades, renders it as text to an io.Writer and runs the screen's mutations.
package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"transitpay/internal/clients"
	"transitpay/internal/format"
	"transitpay/internal/notice"
	"transitpay/internal/session"
)

// ErrNoActiveJourney is returned by tap-out when the user has no journey in progress.
var ErrNoActiveJourney = errors.New("no active journey found")

// ValidationError is an input problem caught before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Deps is what every controller needs. Controllers never share state beyond it.
type Deps struct {
	API     *clients.API
	Session *session.Store
	Notices *notice.Slot
	Out     io.Writer
	Logger  *zap.Logger
	Now     func() time.Time
	// Color enables ANSI status badges.
	Color bool
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) notify(level notice.Level, message string) {
	if d.Notices != nil {
		d.Notices.Show(level, message)
	}
}

func (d Deps) printf(format string, args ...any) {
	fmt.Fprintf(d.Out, format, args...)
}

func (d Deps) badge(status string) string {
	return format.StatusBadge(status).Render(d.Color)
}

// userID resolves the logged in user or fails with session.ErrNotAuthenticated.
func (d Deps) userID(ctx context.Context) (int64, error) {
	if !d.Session.IsAuthenticated(ctx) {
		return 0, session.ErrNotAuthenticated
	}
	return d.Session.UserID(ctx)
}

// loadFailed is the per-screen failure boundary: the section renders a placeholder instead of
// aborting the screen. An expired session is still returned so the caller can stop.
func (d Deps) loadFailed(what string, err error) error {
	if errors.Is(err, clients.ErrSessionExpired) {
		return err
	}
	d.logger().Debug("section load failed", zap.String("section", what), zap.Error(err))
	d.printf("Failed to load %s: %s\n", what, err.Error())
	return nil
}

// actionFailed reports a failed mutation in the notice slot and returns err unchanged.
func (d Deps) actionFailed(what string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		d.notify(notice.Danger, verr.Message)
		return err
	}
	d.notify(notice.Danger, fmt.Sprintf("Failed to %s: %s", what, err.Error()))
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
