package privacy

import (
	"strings"

	"github.com/clio-assist/clio/internal/shared/types"
)

// Scope describes how long a history-access grant lasts
type Scope int

const (
	ScopeNone Scope = iota
	ScopeSession
	ScopePermanent
)

// String returns the string representation of the scope
func (s Scope) String() string {
	switch s {
	case ScopeSession:
		return "session"
	case ScopePermanent:
		return "permanent"
	default:
		return "none"
	}
}

// Authorization is the per-session history-access state. It starts denied and
// only an explicit user choice flips it. There is no revocation transition;
// a grant lasts until the session expires.
type Authorization struct {
	Granted bool
	Scope   Scope
}

// Grant enables history access with the given scope. This is the only place
// the flag consumed by the extractor is allowed to flip.
func (a *Authorization) Grant(scope Scope) {
	a.Granted = true
	a.Scope = scope
}

// Prompt option vocabulary. The two-option form is what /search emits; the
// three-way phrasings are also accepted on /privacy.
const (
	OptionEnable  = "Enable history access"
	OptionProceed = "Proceed with normal response"

	optionEnableSession   = "enable just for this session"
	optionEnablePermanent = "enable permanently"
	optionIgnore          = "ignore this query"
)

const (
	msgPromptDisabled   = "History access is disabled. Would you like to enable it or proceed with a normal response?"
	msgEnabled          = "History access has been enabled. You can now ask history-related questions."
	msgEnabledSession   = "History access enabled for this session. Please try your query again."
	msgEnabledPermanent = "History access enabled permanently. Please try your query again."
	msgProceed          = "Okay, proceeding with a normal response."
	msgIgnored          = "Okay, ignoring the query related to browser history."
	msgInvalidOption    = "Invalid option selected."
)

// Prompt returns the authorization-choice payload shown when a history-related
// query arrives while access is still denied.
func Prompt() types.Payload {
	return types.Payload{
		Response: msgPromptDisabled,
		Options:  []string{OptionEnable, OptionProceed},
	}
}

// Apply processes the user's answer to the prompt, transitioning the
// authorization state on an enabling choice. Unknown options leave the state
// untouched.
func Apply(auth *Authorization, option string) types.Payload {
	switch strings.ToLower(strings.TrimSpace(option)) {
	case strings.ToLower(OptionEnable):
		auth.Grant(ScopeSession)
		return types.Text(msgEnabled)
	case optionEnableSession:
		auth.Grant(ScopeSession)
		return types.Text(msgEnabledSession)
	case optionEnablePermanent:
		auth.Grant(ScopePermanent)
		return types.Text(msgEnabledPermanent)
	case strings.ToLower(OptionProceed):
		return types.Text(msgProceed)
	case optionIgnore:
		return types.Text(msgIgnored)
	default:
		return types.Text(msgInvalidOption)
	}
}
