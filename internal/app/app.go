package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"transitpay/internal/clients"
	"transitpay/internal/config"
	"transitpay/internal/format"
	"transitpay/internal/metrics"
	"transitpay/internal/notice"
	"transitpay/internal/session"
	"transitpay/internal/views"
	"transitpay/libs/db"
	libredis "transitpay/libs/redis"
)

// App wires the transitctl dependencies for one invocation.
type App struct {
	Config  *config.Config
	Session *session.Store
	API     *clients.API
	Notices *notice.Slot
	Metrics *metrics.Client

	deps        views.Deps
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

type options struct {
	httpClient clients.HTTPDoer
	noticeOut  io.Writer
	color      bool
	now        func() time.Time
}

// Option customises New.
type Option func(*options)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c clients.HTTPDoer) Option {
	return func(o *options) { o.httpClient = c }
}

// WithNoticeWriter sends notices somewhere other than out.
func WithNoticeWriter(w io.Writer) Option {
	return func(o *options) { o.noticeOut = w }
}

// WithColor enables ANSI colours in badges and notices.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// WithClock replaces time.Now for rendering.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the application graph. Views render to out.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{noticeOut: out, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = clients.NewDefaultHTTPClient(cfg.APITimeout())
	}

	a := &App{Config: cfg, logger: logger}

	storage, err := a.openStorage(ctx, cfg.Session)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Notices = notice.NewSlot(cfg.NoticeTTL(), notice.WithListener(printNotices(o.noticeOut, o.color)))
	a.Session = session.NewStore(storage, logger, session.WithLogoutHook(func() {
		logger.Debug("session ended")
	}))
	a.Metrics = metrics.NewClient()

	base := clients.NewBaseClient(cfg.API.BaseURL, o.httpClient, a.Session, logger, clients.WithMetrics(a.Metrics))
	a.API = clients.NewAPI(base)

	a.deps = views.Deps{
		API:     a.API,
		Session: a.Session,
		Notices: a.Notices,
		Out:     out,
		Logger:  logger,
		Now:     o.now,
		Color:   o.color,
	}
	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg config.Session) (session.Storage, error) {
	var (
		storage session.Storage
		err     error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		storage = session.NewMemoryStorage()
	case config.BackendFile:
		path := cfg.Path
		if path == "" {
			if path, err = defaultPath("session.json"); err != nil {
				return nil, err
			}
		}
		storage = session.NewFileStorage(path)
	case config.BackendSQLite, config.BackendPostgres:
		driver, dsn := db.DriverPostgres, cfg.DSN
		if cfg.Backend == config.BackendSQLite {
			driver = db.DriverSQLite
			if dsn == "" {
				if dsn, err = defaultPath("session.db"); err != nil {
					return nil, err
				}
			}
		}
		if a.db, err = db.Open(ctx, driver, dsn); err != nil {
			return nil, fmt.Errorf("app: open session database: %w", err)
		}
		if storage, err = session.NewSQLStorage(ctx, a.db, driver, cfg.Namespace); err != nil {
			return nil, err
		}
	case config.BackendRedis:
		if a.redisClient, err = libredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			return nil, fmt.Errorf("app: connect session redis: %w", err)
		}
		storage = session.NewRedisStorage(a.redisClient, cfg.Namespace)
	default:
		return nil, fmt.Errorf("app: unknown session backend %q", cfg.Backend)
	}

	if cfg.EncryptionKey == "" {
		return storage, nil
	}
	return session.NewSealedStorage(storage, cfg.EncryptionKey, a.logger)
}

func defaultPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("app: locate config dir: %w", err)
	}
	dir = filepath.Join(dir, "transitctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func printNotices(w io.Writer, color bool) notice.Listener {
	colors := map[notice.Level]string{
		notice.Success: format.ColorSuccess,
		notice.Danger:  format.ColorDanger,
		notice.Warning: format.ColorWarning,
		notice.Info:    format.ColorInfo,
	}
	return func(n *notice.Notice) {
		if n == nil || w == nil {
			return
		}
		msg := n.Message
		if color {
			msg = format.Paint(colors[n.Level], msg)
		}
		fmt.Fprintln(w, msg)
	}
}

// Auth returns the login/register controller.
func (a *App) Auth() *views.AuthController { return views.NewAuthController(a.deps) }

// Dashboard returns the dashboard controller.
func (a *App) Dashboard() *views.DashboardController { return views.NewDashboardController(a.deps) }

// Cards returns the cards controller.
func (a *App) Cards() *views.CardsController { return views.NewCardsController(a.deps) }

// Journeys returns a journeys controller with an empty snapshot.
func (a *App) Journeys() *views.JourneysController { return views.NewJourneysController(a.deps) }

// Transactions returns a transactions controller with an empty snapshot.
func (a *App) Transactions() *views.TransactionsController {
	return views.NewTransactionsController(a.deps)
}

// Profile returns the profile controller.
func (a *App) Profile() *views.ProfileController { return views.NewProfileController(a.deps) }

// Stations returns the stations controller.
func (a *App) Stations() *views.StationsController { return views.NewStationsController(a.deps) }

// Close releases acquired resources and exports metrics when configured.
func (a *App) Close() {
	if a.Notices != nil {
		a.Notices.Close()
	}
	if a.Metrics != nil && a.Config != nil {
		if err := a.Metrics.WriteTextfile(a.Config.Metrics.TextfilePath); err != nil {
			a.logger.Warn("failed to write metrics textfile", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
