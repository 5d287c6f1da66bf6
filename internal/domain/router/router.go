package router

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clio-assist/clio/internal/domain/client"
	"github.com/clio-assist/clio/internal/domain/history"
	"github.com/clio-assist/clio/internal/domain/privacy"
	"github.com/clio-assist/clio/internal/domain/session"
	"github.com/clio-assist/clio/internal/infrastructure/logging"
	"github.com/clio-assist/clio/internal/infrastructure/monitoring"
	"github.com/clio-assist/clio/internal/shared/types"
)

// Lookup is the quick-answer collaborator
type Lookup interface {
	Instant(ctx context.Context, query string) (string, bool, error)
}

// Answerer is the generative-model fallback collaborator
type Answerer interface {
	Answer(ctx context.Context, query string, memory []session.Exchange) (string, error)
}

// HistoryFetcher extracts records from a history store
type HistoryFetcher interface {
	Fetch(ctx context.Context, path string, spec history.QuerySpec, authorized bool) ([]history.Record, error)
}

// Resolver maps a client environment to a history store path
type Resolver func(env client.Environment) (string, bool)

const (
	msgEmptyQuery         = "Please enter a valid question."
	msgUnsupportedBrowser = "I couldn't locate a history database for your browser, so I can't answer that."
	msgPermissionDenied   = "History access is not authorized for this session."
	msgUpstreamFailure    = "Sorry, something went wrong while answering that. Please try again."
)

// Router classifies each query and dispatches it to the history pipeline or
// the general-answer collaborators. It always returns a text payload; every
// failure is converted to a message before it leaves this package.
type Router struct {
	lookup    Lookup
	model     Answerer
	extractor HistoryFetcher
	resolver  Resolver

	// overridePath, when set, bypasses the per-OS path table.
	overridePath string

	log     *logging.Logger
	metrics *monitoring.Metrics
}

// New creates a router with the default path resolver.
func New(lookup Lookup, model Answerer, extractor HistoryFetcher, log *logging.Logger) *Router {
	return &Router{
		lookup:    lookup,
		model:     model,
		extractor: extractor,
		resolver:  client.ResolvePath,
		log:       log,
	}
}

// WithResolver replaces the path resolver.
func (r *Router) WithResolver(resolver Resolver) *Router {
	r.resolver = resolver
	return r
}

// WithOverridePath forces all extractions to read the given store.
func (r *Router) WithOverridePath(path string) *Router {
	r.overridePath = path
	return r
}

// WithMetrics attaches a metrics collector.
func (r *Router) WithMetrics(m *monitoring.Metrics) *Router {
	r.metrics = m
	return r
}

// Route handles one query for a session and returns the response payload.
func (r *Router) Route(ctx context.Context, query string, sess *session.Session, userAgent string) types.Payload {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.Text(msgEmptyQuery)
	}

	if IsHistoryQuery(query) {
		r.recordQuery("history")
		return r.routeHistory(ctx, query, sess, userAgent)
	}

	r.recordQuery("general")
	return r.routeGeneral(ctx, query, sess)
}

func (r *Router) routeHistory(ctx context.Context, query string, sess *session.Session, userAgent string) types.Payload {
	auth := sess.Authorization()
	if !auth.Granted {
		r.log.Debug("history query while access denied", zap.String("session", sess.ID))
		if r.metrics != nil {
			r.metrics.RecordPrompt()
		}
		return privacy.Prompt()
	}

	path := r.overridePath
	if path == "" {
		env := client.Detect(userAgent)
		resolved, ok := r.resolver(env)
		if !ok {
			r.log.Info("unsupported browser for history access",
				zap.String("os", string(env.OS)),
				zap.String("browser", string(env.Browser)),
			)
			r.recordExtraction("unsupported", 0)
			return types.Text(msgUnsupportedBrowser)
		}
		path = resolved
	}

	start := time.Now()
	records, err := r.extractor.Fetch(ctx, path, history.ParseQuerySpec(query, time.Now()), auth.Granted)
	if err != nil {
		return r.extractionError(err, time.Since(start))
	}

	r.recordExtraction("ok", time.Since(start))
	return types.Text(history.FormatRecords(records))
}

// extractionError converts a classified extractor error into user text. The
// permission case stays generic; it means a caller skipped the gate.
func (r *Router) extractionError(err error, elapsed time.Duration) types.Payload {
	switch {
	case errors.Is(err, history.ErrPermissionDenied):
		r.log.Error("extractor reached without authorization", zap.Error(err))
		r.recordExtraction("permission_denied", elapsed)
		return types.Text(msgPermissionDenied)
	case errors.Is(err, history.ErrStoreUnavailable):
		r.log.Warn("history store unavailable", zap.Error(err))
		r.recordExtraction("store_unavailable", elapsed)
	case errors.Is(err, history.ErrQueryFailure):
		r.log.Warn("history query failed", zap.Error(err))
		r.recordExtraction("query_failure", elapsed)
	default:
		r.log.Error("unclassified extraction failure", zap.Error(err))
		r.recordExtraction("unknown", elapsed)
	}
	return types.Text("Error fetching browser history: " + err.Error())
}

func (r *Router) routeGeneral(ctx context.Context, query string, sess *session.Session) types.Payload {
	text, ok, err := r.lookup.Instant(ctx, query)
	if err != nil {
		r.log.Warn("quick lookup failed", zap.Error(err))
		r.recordUpstream("lookup", "error")
	} else if ok {
		r.recordUpstream("lookup", "ok")
		sess.Remember(query, text)
		return types.Text(text)
	} else {
		r.recordUpstream("lookup", "miss")
	}

	answer, err := r.model.Answer(ctx, query, sess.Recent())
	if err != nil {
		r.log.Error("generative answer failed", zap.Error(err))
		r.recordUpstream("genai", "error")
		return types.Text(msgUpstreamFailure)
	}

	r.recordUpstream("genai", "ok")
	sess.Remember(query, answer)
	return types.Text(answer)
}

func (r *Router) recordQuery(kind string) {
	if r.metrics != nil {
		r.metrics.RecordQuery(kind)
	}
}

func (r *Router) recordExtraction(outcome string, elapsed time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordExtraction(outcome, elapsed)
	}
}

func (r *Router) recordUpstream(service, status string) {
	if r.metrics != nil {
		r.metrics.RecordUpstream(service, status)
	}
}
