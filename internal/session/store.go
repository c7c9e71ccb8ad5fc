package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"transitpay/internal/models"
)

// ErrNotAuthenticated is returned when a value that requires a login is absent.
var ErrNotAuthenticated = errors.New("session: not logged in")

// Store is the client's view of its persisted login: bearer token, cached user and user id.
type Store struct {
	storage  Storage
	logger   *zap.Logger
	onLogout []func()
}

// Option customises a Store.
type Option func(*Store)

// WithLogoutHook registers fn to run after Clear removed the session, the CLI analogue of
// navigating back to the login page.
func WithLogoutHook(fn func()) Option {
	return func(s *Store) {
		if fn != nil {
			s.onLogout = append(s.onLogout, fn)
		}
	}
}

// NewStore wraps storage.
func NewStore(storage Storage, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{storage: storage, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	return token, nil
}

// SetToken persists the bearer token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.storage.Set(ctx, KeyToken, token)
}

// User returns the cached user, or nil when none is stored.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("session: read user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("session: decode user: %w", err)
	}
	return &user, nil
}

// SetUser caches user and mirrors its id under KeyUserID.
func (s *Store) SetUser(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, KeyUser, string(data)); err != nil {
		return err
	}
	return s.storage.Set(ctx, KeyUserID, strconv.FormatInt(user.ID, 10))
}

// Save stores token and user together after a successful login.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	if err := s.SetToken(ctx, token); err != nil {
		return err
	}
	if err := s.SetUser(ctx, user); err != nil {
		// keep the pair consistent
		_ = s.storage.Delete(ctx, KeyToken, KeyUser, KeyUserID)
		return err
	}
	s.logger.Debug("session saved", zap.Int64("user_id", user.ID))
	return nil
}

// UserID returns the mirrored user id.
func (s *Store) UserID(ctx context.Context) (int64, error) {
	raw, ok, err := s.storage.Get(ctx, KeyUserID)
	if err != nil {
		return 0, fmt.Errorf("session: read user id: %w", err)
	}
	if !ok || raw == "" {
		return 0, ErrNotAuthenticated
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session: invalid user id %q: %w", raw, err)
	}
	return id, nil
}

// IsAuthenticated reports whether a token is present. Storage errors count as logged out.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	token, err := s.Token(ctx)
	if err != nil {
		s.logger.Warn("session lookup failed", zap.Error(err))
		return false
	}
	return token != ""
}

// Clear removes token, user and user id, then runs the logout hooks.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, KeyToken, KeyUser, KeyUserID); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	s.logger.Info("session cleared")
	for _, fn := range s.onLogout {
		fn()
	}
	return nil
}
