package game

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/n0troot/WheresBenny/internal/session"
)

// TapPadding widens the target rectangle during hit validation so a near
// miss on a small touch screen still counts, matching the page's visual
// forgiveness.
const TapPadding = 15

// Handler exposes the three public routes of a session: the page, its image
// and the resolve endpoint. Everything else is a 404.
type Handler struct {
	mgr *Manager
}

// NewHandler builds the HTTP handler around a manager.
func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

// RegisterRoutes attaches the handler's routes and templates to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(pages)

	r.GET("/session/:id", h.view)
	r.GET("/assets/:id", h.asset)
	r.GET("/resolve/:id", h.resolve)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})
}

type viewData struct {
	AssetURL    string
	ResolveURL  string
	SecondsLeft int
}

// view serves the session page. Stale access is one of the three removal
// paths: an expired-but-present record found here is removed on the spot.
func (h *Handler) view(c *gin.Context) {
	id := c.Param("id")

	sess, err := h.mgr.Get(id)
	switch {
	case errors.Is(err, session.ErrExpired):
		h.mgr.Remove(id)
		c.String(http.StatusNotFound, "session expired")
		return
	case err != nil:
		c.String(http.StatusNotFound, "session not found")
		return
	}

	c.HTML(http.StatusOK, "view.html.tmpl", viewData{
		AssetURL:    "/assets/" + sess.ID,
		ResolveURL:  "/resolve/" + sess.ID,
		SecondsLeft: int(h.mgr.Remaining(sess).Seconds()),
	})
}

// asset serves the session's image bytes with the stored content type.
func (h *Handler) asset(c *gin.Context) {
	data, contentType, err := h.mgr.Asset(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "image not found")
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// resolve handles both hit probes and resolution claims.
//
// With x/y and no actor it is a probe: the click is validated server side
// against the hidden target and answered with {"hit":bool}, never touching
// session state. The target rectangle itself is never sent to the client.
//
// Otherwise it is a claim: the session is consumed exactly once, the
// notification dispatched, and a confirmation page returned. Coordinates
// accompanying a claim are validated first; a miss does not consume the
// session. A claim without coordinates is accepted as-is so external callers
// can resolve directly.
func (h *Handler) resolve(c *gin.Context) {
	id := c.Param("id")
	actor, actorPresent := c.GetQuery("actor")

	x, y, hasCoords, err := clickCoords(c)
	if err != nil {
		c.String(http.StatusBadRequest, "bad coordinates")
		return
	}

	if hasCoords {
		sess, err := h.mgr.Peek(id)
		if err != nil {
			c.String(http.StatusNotFound, "session not found")
			return
		}
		hit := sess.Target.Contains(x, y, TapPadding)
		if !hit || !actorPresent {
			c.JSON(http.StatusOK, gin.H{"hit": hit})
			return
		}
	}

	finder := actor
	if finder == "" {
		finder = "Unknown"
	}

	sess, err := h.mgr.Resolve(id, finder)
	if err != nil {
		c.String(http.StatusNotFound, "session not found")
		return
	}

	c.HTML(http.StatusOK, "resolved.html.tmpl", gin.H{
		"Finder":  finder,
		"Creator": sess.CreatorName,
	})
}

// clickCoords extracts the x/y query pair. Both must be present to count;
// a half-supplied or non-numeric pair is an error.
func clickCoords(c *gin.Context) (int, int, bool, error) {
	xs, xok := c.GetQuery("x")
	ys, yok := c.GetQuery("y")
	if !xok && !yok {
		return 0, 0, false, nil
	}
	if !xok || !yok {
		return 0, 0, false, errors.New("missing coordinate")
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, false, err
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, false, err
	}
	return x, y, true, nil
}
