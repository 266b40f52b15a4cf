package app

import (
	"context"
	"net/http"

	"github.com/n0troot/WheresBenny/internal/config"
	"github.com/n0troot/WheresBenny/internal/game"
	"github.com/n0troot/WheresBenny/internal/session"
)

// App owns the HTTP server and the background reaper. One App is one fully
// isolated instance; tests can run several side by side.
type App struct {
	httpServer *http.Server
	reaper     *session.Reaper
	mgr        *game.Manager
}

func New(cfg *config.Config) (*App, error) {
	router, mgr, reaper, err := setupHTTP(cfg)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	return &App{
		httpServer: server,
		reaper:     reaper,
		mgr:        mgr,
	}, nil
}

// Manager exposes the session manager to the chat command layer, which
// creates sessions and receives back shareable URLs.
func (a *App) Manager() *game.Manager {
	return a.mgr
}

// Run starts the reaper and serves HTTP until Shutdown.
func (a *App) Run() error {
	go a.reaper.Run()
	return a.httpServer.ListenAndServe()
}

// Shutdown stops the reaper and drains the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	a.reaper.Stop()
	return a.httpServer.Shutdown(ctx)
}
