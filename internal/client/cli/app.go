package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/melodeck/internal/client/client"
	"github.com/dmitrijs2005/melodeck/internal/client/config"
	"github.com/dmitrijs2005/melodeck/internal/client/models"
	"github.com/dmitrijs2005/melodeck/internal/client/nav"
	"github.com/dmitrijs2005/melodeck/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/melodeck/internal/client/services"
	"github.com/dmitrijs2005/melodeck/internal/client/session"
	"github.com/dmitrijs2005/melodeck/internal/common"
	"github.com/dmitrijs2005/melodeck/internal/filex"
	"github.com/dmitrijs2005/melodeck/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Routes of the interactive views besides nav.RootRoute.
const (
	loginRoute    = "/login"
	registerRoute = "/register"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	reader      *bufio.Reader
	out         io.Writer
	logger      logging.Logger
	db          io.Closer

	mu    sync.Mutex
	route string
	user  models.User
	Mode  Mode
}

func newApp(cfg *config.Config, in io.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{
		config: cfg,
		reader: bufio.NewReader(in),
		out:    out,
		logger: logger.With("component", "cli"),
		route:  nav.RootRoute,
	}
}

// NewApp opens the session database and wires the session store, the API
// client with its failure interceptor and the auth service. The App itself
// is the navigator those components report to.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := newApp(cfg, os.Stdin, os.Stdout, logger)

	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}
	a.db = db

	store := session.Open(ctx, metadata.NewSQLiteRepository(db), a, logger)

	var opts []client.InterceptorOption
	if cfg.LogoutOnUnauthorized {
		opts = append(opts, client.WithLogoutOnUnauthorized(store))
	}
	interceptor := client.NewFailureInterceptor(a, logger, opts...)

	token := func() string {
		u, _ := store.Current()
		return u.Token()
	}
	api := client.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, interceptor, token, logger)

	a.authService = services.NewAuthService(api, store, logger)
	return a, nil
}

// Navigate switches the current view. Arriving at the root view renders it.
func (a *App) Navigate(route string) {
	a.mu.Lock()
	changed := a.route != route
	a.route = route
	user := a.user
	a.mu.Unlock()

	if changed && route == nav.RootRoute {
		a.renderHome(user)
	}
}

// onSession re-renders the home view when the session changes while it is
// on screen.
func (a *App) onSession(u models.User) {
	a.mu.Lock()
	a.user = u
	atRoot := a.route == nav.RootRoute
	a.mu.Unlock()

	if atRoot {
		a.renderHome(u)
	}
}

func (a *App) renderHome(u models.User) {
	if u == nil {
		a.say("Not logged in")
		return
	}
	a.say("Logged in as " + displayName(u))
}

func displayName(u models.User) string {
	if e := u.Email(); e != "" {
		return e
	}
	if id, ok := u.ID(); ok {
		return fmt.Sprintf("user #%d", id)
	}
	return "unknown user"
}

func (a *App) say(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.CurrentUser()
	return ok
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

// getStatus renders the prompt status, e.g. "(a@b.com online)".
func (a *App) getStatus() string {
	a.mu.Lock()
	user, mode := a.user, a.Mode
	a.mu.Unlock()

	s := ""
	if user != nil {
		s = displayName(user)
	}
	if mode != "" {
		if s != "" {
			s += " "
		}
		s += string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the backend now and then every interval
// until ctx is done, switching Mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.checkOnline(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.logger.Debug(ctx, "backend unreachable", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// Run shows the home view and serves commands until the user exits or the
// input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintf(a.out, "Welcome to %s (type 'help' for commands)\n", common.AppName)

	unsubscribe := a.authService.Subscribe(a.onSession)
	defer unsubscribe()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
