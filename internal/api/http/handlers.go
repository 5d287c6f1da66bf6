package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clio-assist/clio/internal/domain/privacy"
	"github.com/clio-assist/clio/internal/domain/router"
	"github.com/clio-assist/clio/internal/domain/session"
	"github.com/clio-assist/clio/internal/infrastructure/logging"
	"github.com/clio-assist/clio/internal/infrastructure/monitoring"
	"github.com/clio-assist/clio/internal/shared/types"
)

// sessionCookie names the cookie carrying the session ID
const sessionCookie = "clio_session"

// Handlers contains HTTP request handlers
type Handlers struct {
	sessions *session.Manager
	router   *router.Router
	log      *logging.Logger
	metrics  *monitoring.Metrics
	started  time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(sessions *session.Manager, r *router.Router, log *logging.Logger, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		sessions: sessions,
		router:   r,
		log:      log,
		metrics:  metrics,
		started:  time.Now(),
	}
}

// Root handles the root endpoint
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "clio-assistant",
		"version": "1.0.0",
		"status":  "running",
	})
}

// Health handles health checks
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"uptime":   time.Since(h.started).String(),
		"sessions": h.sessions.Count(),
	})
}

// Search handles an assistant query. Every outcome, including failures, is a
// 200 with a text payload; options are present only when the privacy gate
// wants an answer from the user.
func (h *Handlers) Search(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, types.Text("Please enter a valid question."))
		return
	}

	sess := h.session(c)

	// The request may carry an explicit grant flag from the UI.
	if req.HistoryAccess != nil && *req.HistoryAccess && !sess.Authorization().Granted {
		sess.Authorization().Grant(privacy.ScopeSession)
		h.recordGrant(privacy.ScopeSession)
	}

	h.log.Debug("search request",
		zap.String("session", sess.ID),
		zap.Bool("history_access", sess.Authorization().Granted),
	)

	payload := h.router.Route(c.Request.Context(), req.Query, sess, c.Request.UserAgent())
	c.JSON(http.StatusOK, payload)
}

// Privacy handles the user's answer to the authorization prompt
func (h *Handlers) Privacy(c *gin.Context) {
	var req types.PrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, types.Text("Invalid option selected."))
		return
	}

	sess := h.session(c)
	auth := sess.Authorization()
	wasGranted := auth.Granted

	payload := privacy.Apply(auth, req.Option)
	if auth.Granted && !wasGranted {
		h.log.Info("history access granted",
			zap.String("session", sess.ID),
			zap.String("scope", auth.Scope.String()),
		)
		h.recordGrant(auth.Scope)
	}

	c.JSON(http.StatusOK, payload)
}

// EnableHistory grants history access for the session directly
func (h *Handlers) EnableHistory(c *gin.Context) {
	sess := h.session(c)
	if !sess.Authorization().Granted {
		sess.Authorization().Grant(privacy.ScopeSession)
		h.recordGrant(privacy.ScopeSession)
	}

	c.JSON(http.StatusOK, types.Text("History access has been enabled."))
}

// session returns the request's session, creating one and setting the cookie
// on first contact.
func (h *Handlers) session(c *gin.Context) *session.Session {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := h.sessions.Get(id); ok {
			return sess
		}
	}

	sess := h.sessions.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
	h.log.Debug("session created", zap.String("session", sess.ID))
	if h.metrics != nil {
		h.metrics.SessionsActive.Set(float64(h.sessions.Count()))
	}
	return sess
}

func (h *Handlers) recordGrant(scope privacy.Scope) {
	if h.metrics != nil {
		h.metrics.RecordGrant(scope.String())
	}
}
