package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/config"
	"github.com/dmitrijs2005/juridik/internal/client/services"
	"github.com/dmitrijs2005/juridik/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

const onlineCheckInterval = 30 * time.Second

// Pinger reports whether the backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the managers the App renders.
type Deps struct {
	Auth   services.AuthManager
	Chat   services.ChatManager
	Docs   services.DocumentManager
	Pinger Pinger
}

type App struct {
	config *config.Config
	log    logging.Logger
	auth   services.AuthManager
	chat   services.ChatManager
	docs   services.DocumentManager
	pinger Pinger

	reader   *bufio.Reader
	out      io.Writer
	renderer Renderer

	// files attached with "attach", sent with the next message
	staged []attachments.File

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config, d Deps, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	r, err := newRenderer(c.RenderMarkdown)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   c,
		log:      log.With("component", "cli"),
		auth:     d.Auth,
		chat:     d.Chat,
		docs:     d.Docs,
		pinger:   d.Pinger,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		renderer: r,
	}, nil
}

// Run restores the session if configured, then serves the REPL until the
// user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.chat.Wait()

	printlnFn("Welcome to juridik (type 'help' for commands)")

	if a.config.CheckAuthOnStart {
		a.auth.CheckAuth(ctx)
		if a.isLoggedIn() {
			a.loadWorkspace(ctx)
		}
	}

	if a.pinger != nil {
		go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().Authenticated
}

func (a *App) loadWorkspace(ctx context.Context) {
	a.chat.FetchConversations(ctx)
	if !a.docs.FetchDocuments(ctx) {
		a.docs.ClearError()
	}
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the backend every interval and records
// whether it is reachable. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.pinger.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
