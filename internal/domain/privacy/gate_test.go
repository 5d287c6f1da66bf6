package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptOffersBothChoices(t *testing.T) {
	p := Prompt()

	assert.Equal(t, []string{OptionEnable, OptionProceed}, p.Options)
	assert.Contains(t, p.Response, "History access is disabled")
}

func TestApplyEnable(t *testing.T) {
	var auth Authorization

	p := Apply(&auth, OptionEnable)

	assert.True(t, auth.Granted)
	assert.Equal(t, ScopeSession, auth.Scope)
	assert.Contains(t, p.Response, "enabled")
}

func TestApplyThreeWayVocabulary(t *testing.T) {
	tests := []struct {
		option  string
		granted bool
		scope   Scope
	}{
		{"Enable just for this session", true, ScopeSession},
		{"Enable permanently", true, ScopePermanent},
		{"Ignore this query", false, ScopeNone},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			var auth Authorization
			Apply(&auth, tt.option)

			assert.Equal(t, tt.granted, auth.Granted)
			assert.Equal(t, tt.scope, auth.Scope)
		})
	}
}

func TestApplyProceedLeavesStateDenied(t *testing.T) {
	var auth Authorization

	p := Apply(&auth, OptionProceed)

	assert.False(t, auth.Granted)
	assert.Contains(t, p.Response, "proceeding")
}

func TestApplyInvalidOption(t *testing.T) {
	var auth Authorization

	p := Apply(&auth, "do something else")

	assert.False(t, auth.Granted)
	assert.Equal(t, "Invalid option selected.", p.Response)
}

func TestNoRevocationTransition(t *testing.T) {
	var auth Authorization
	auth.Grant(ScopePermanent)

	// No option reverts a grant.
	Apply(&auth, OptionProceed)
	Apply(&auth, "Ignore this query")

	assert.True(t, auth.Granted)
	assert.Equal(t, ScopePermanent, auth.Scope)
}
