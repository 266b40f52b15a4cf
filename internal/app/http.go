package app

import (
	"github.com/gin-gonic/gin"

	"github.com/n0troot/WheresBenny/internal/asset"
	"github.com/n0troot/WheresBenny/internal/config"
	"github.com/n0troot/WheresBenny/internal/game"
	"github.com/n0troot/WheresBenny/internal/session"
)

func setupHTTP(cfg *config.Config) (*gin.Engine, *game.Manager, *session.Reaper, error) {

	// ----------------------------
	// Dependencies
	// ----------------------------

	assetStore, err := asset.NewStore(cfg.AssetDir)
	if err != nil {
		return nil, nil, nil, err
	}

	sessionStore := session.NewStore(session.WithTTL(cfg.SessionTTL))
	mgr := game.NewManager(sessionStore, assetStore, cfg.PublicBaseURL())
	reaper := session.NewReaper(mgr.SweepExpired, cfg.SweepInterval)

	handler := game.NewHandler(mgr)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	handler.RegisterRoutes(router)

	return router, mgr, reaper, nil
}
