package router

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clio-assist/clio/internal/domain/client"
	"github.com/clio-assist/clio/internal/domain/history"
	"github.com/clio-assist/clio/internal/domain/privacy"
	"github.com/clio-assist/clio/internal/domain/session"
	"github.com/clio-assist/clio/internal/infrastructure/logging"
)

const chromeUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

type fakeLookup struct {
	text  string
	found bool
	err   error
	calls int
}

func (f *fakeLookup) Instant(_ context.Context, _ string) (string, bool, error) {
	f.calls++
	return f.text, f.found, f.err
}

type fakeModel struct {
	answer string
	err    error
	calls  int
	memory []session.Exchange
}

func (f *fakeModel) Answer(_ context.Context, _ string, memory []session.Exchange) (string, error) {
	f.calls++
	f.memory = memory
	return f.answer, f.err
}

type fakeExtractor struct {
	records []history.Record
	err     error
	calls   int
	path    string
}

func (f *fakeExtractor) Fetch(_ context.Context, path string, _ history.QuerySpec, authorized bool) ([]history.Record, error) {
	f.calls++
	f.path = path
	if !authorized {
		return nil, history.ErrPermissionDenied
	}
	return f.records, f.err
}

func fixedResolver(path string, ok bool) Resolver {
	return func(client.Environment) (string, bool) { return path, ok }
}

func newTestRouter(lookup *fakeLookup, model *fakeModel, extractor *fakeExtractor) *Router {
	return New(lookup, model, extractor, logging.NewNop()).
		WithResolver(fixedResolver("/tmp/store", true))
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	m := session.NewManager(time.Minute)
	t.Cleanup(m.Close)
	return m.Create()
}

func TestIsHistoryQuery(t *testing.T) {
	assert.True(t, IsHistoryQuery("show my browser history"))
	assert.True(t, IsHistoryQuery("What did I visit last week?"))
	assert.True(t, IsHistoryQuery("RECENT TABS please"))
	assert.False(t, IsHistoryQuery("What is the capital of France?"))
}

func TestRouteGeneralNeverTouchesHistoryPipeline(t *testing.T) {
	lookup := &fakeLookup{text: "Paris.", found: true}
	model := &fakeModel{}
	extractor := &fakeExtractor{}
	r := newTestRouter(lookup, model, extractor)

	p := r.Route(context.Background(), "What is the capital of France?", newTestSession(t), chromeUA)

	assert.Equal(t, "Paris.", p.Response)
	assert.Empty(t, p.Options)
	assert.Equal(t, 0, extractor.calls)
	assert.Equal(t, 0, model.calls)
}

func TestRouteGeneralFallsBackToModel(t *testing.T) {
	lookup := &fakeLookup{found: false}
	model := &fakeModel{answer: "A generated answer."}
	r := newTestRouter(lookup, model, &fakeExtractor{})
	sess := newTestSession(t)

	p := r.Route(context.Background(), "something obscure", sess, chromeUA)

	assert.Equal(t, "A generated answer.", p.Response)
	assert.Equal(t, 1, lookup.calls)
	assert.Equal(t, 1, model.calls)

	// The exchange is remembered for future model context.
	recent := sess.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "something obscure", recent[0].Query)
}

func TestRouteGeneralUpstreamFailure(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("timeout")}
	model := &fakeModel{err: errors.New("upstream down")}
	r := newTestRouter(lookup, model, &fakeExtractor{})

	p := r.Route(context.Background(), "anything at all", newTestSession(t), chromeUA)

	assert.Equal(t, msgUpstreamFailure, p.Response)
}

func TestRouteHistoryDeniedReturnsPromptWithoutExtraction(t *testing.T) {
	extractor := &fakeExtractor{}
	r := newTestRouter(&fakeLookup{}, &fakeModel{}, extractor)

	p := r.Route(context.Background(), "show my browser history", newTestSession(t), chromeUA)

	assert.Equal(t, []string{privacy.OptionEnable, privacy.OptionProceed}, p.Options)
	assert.Equal(t, 0, extractor.calls)
}

func TestRouteHistoryGrantedReachesExtractor(t *testing.T) {
	extractor := &fakeExtractor{records: []history.Record{
		{URL: "http://b.com", Title: "B", LastVisitedAt: time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)},
	}}
	r := newTestRouter(&fakeLookup{}, &fakeModel{}, extractor)
	sess := newTestSession(t)
	sess.Authorization().Grant(privacy.ScopeSession)

	p := r.Route(context.Background(), "show my browser history", sess, chromeUA)

	assert.Equal(t, 1, extractor.calls)
	assert.Empty(t, p.Options)
	assert.Contains(t, p.Response, "B (http://b.com)")
}

func TestRouteHistoryUnsupportedBrowser(t *testing.T) {
	extractor := &fakeExtractor{}
	r := New(&fakeLookup{}, &fakeModel{}, extractor, logging.NewNop()).
		WithResolver(fixedResolver("", false))
	sess := newTestSession(t)
	sess.Authorization().Grant(privacy.ScopeSession)

	p := r.Route(context.Background(), "show my browser history", sess, chromeUA)

	assert.Equal(t, msgUnsupportedBrowser, p.Response)
	assert.Equal(t, 0, extractor.calls)
}

func TestRouteHistoryOverridePathWinsOverResolver(t *testing.T) {
	extractor := &fakeExtractor{}
	r := New(&fakeLookup{}, &fakeModel{}, extractor, logging.NewNop()).
		WithResolver(fixedResolver("", false)).
		WithOverridePath("/srv/fixtures/History")
	sess := newTestSession(t)
	sess.Authorization().Grant(privacy.ScopeSession)

	r.Route(context.Background(), "show my browser history", sess, chromeUA)

	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, "/srv/fixtures/History", extractor.path)
}

func TestRouteHistoryExtractionErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"store unavailable", history.ErrStoreUnavailable, "Error fetching browser history"},
		{"query failure", history.ErrQueryFailure, "Error fetching browser history"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeLookup{}, &fakeModel{}, &fakeExtractor{err: tt.err})
			sess := newTestSession(t)
			sess.Authorization().Grant(privacy.ScopeSession)

			p := r.Route(context.Background(), "show my browser history", sess, chromeUA)
			assert.Contains(t, p.Response, tt.contains)
		})
	}
}

func TestRouteEmptyQuery(t *testing.T) {
	r := newTestRouter(&fakeLookup{}, &fakeModel{}, &fakeExtractor{})

	p := r.Route(context.Background(), "   ", newTestSession(t), chromeUA)

	assert.Equal(t, msgEmptyQuery, p.Response)
}
